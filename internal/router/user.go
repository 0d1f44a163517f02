package router

import (
	"github.com/gin-gonic/gin"

	"github.com/zzincafe/zzincafe-server/internal/validation"
)

func (r *Router) userRoutes(api *gin.RouterGroup) {
	users := api.Group("/users")
	{
		users.GET("/:userId",
			r.validator.Rules(validation.IDParam("userId")),
			r.userHandler.GetProfile)

		// The reset link works logged out; an existing session ends on success.
		users.PATCH("/:userId/password/:token",
			r.sessionMw.OptionalSession(),
			r.validator.Rules(
				validation.IDParam("userId"),
				validation.CurrentPassword(),
				validation.NewPassword(),
				validation.NewPasswordCheck(),
			),
			r.userHandler.CompletePasswordReset)

		protected := users.Group("")
		protected.Use(r.sessionMw.RequireSession())
		{
			protected.PATCH("/:userId",
				r.validator.Rules(validation.IDParam("userId")),
				r.userHandler.UpdateProfile)
			protected.DELETE("/:userId",
				r.validator.Rules(validation.IDParam("userId")),
				r.userHandler.DeleteAccount)
		}
	}
}
