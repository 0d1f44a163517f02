package router

import (
	"github.com/gin-gonic/gin"

	"github.com/zzincafe/zzincafe-server/internal/validation"
)

func (r *Router) authRoutes(api *gin.RouterGroup) {
	auth := api.Group("/auth")
	{
		local := auth.Group("/local")
		{
			local.POST("/new-user",
				r.validator.Rules(
					validation.Name(),
					validation.Email(),
					validation.Password(),
					validation.PasswordConfirmation(),
					validation.PhoneNumber(),
				),
				r.authHandler.Register)

			local.POST("/property/email",
				r.validator.Rules(validation.Email()),
				r.authHandler.CheckEmail)
			local.POST("/property/name",
				r.validator.Rules(validation.Name()),
				r.authHandler.CheckName)

			local.POST("",
				r.validator.Rules(validation.Email()),
				r.authHandler.Login)
			local.DELETE("",
				r.sessionMw.RequireSession(),
				r.authHandler.Logout)
		}

		auth.POST("/email",
			r.validator.Rules(validation.Email()),
			r.authHandler.SendAuthEmail)
		auth.POST("/email-verify",
			r.validator.Rules(validation.Email(), validation.Code()),
			r.authHandler.VerifyAuthEmail)
		auth.POST("/password-reset-email",
			r.validator.Rules(validation.Email()),
			r.authHandler.RequestPasswordReset)
	}
}
