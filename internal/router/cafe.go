package router

import (
	"github.com/gin-gonic/gin"

	"github.com/zzincafe/zzincafe-server/internal/validation"
)

func (r *Router) cafeRoutes(api *gin.RouterGroup) {
	cafes := api.Group("/cafes")
	{
		cafes.GET("", r.cafeHandler.List)
		cafes.GET("/:cafeId",
			r.validator.Rules(validation.IDParam("cafeId")),
			r.cafeHandler.Get)

		protected := cafes.Group("")
		protected.Use(r.sessionMw.RequireSession())
		{
			protected.POST("", r.cafeHandler.Create)
			protected.PATCH("/:cafeId",
				r.validator.Rules(validation.IDParam("cafeId")),
				r.cafeHandler.Update)
			protected.DELETE("/:cafeId",
				r.validator.Rules(validation.IDParam("cafeId")),
				r.cafeHandler.Delete)
		}
	}
}
