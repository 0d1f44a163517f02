package router

import (
	"github.com/gin-gonic/gin"

	"github.com/zzincafe/zzincafe-server/internal/validation"
)

func (r *Router) reviewRoutes(api *gin.RouterGroup) {
	cafes := api.Group("/cafes")
	{
		cafes.GET("/:cafeId/reviews",
			r.validator.Rules(validation.IDParam("cafeId")),
			r.reviewHandler.ListByCafe)

		protected := cafes.Group("")
		protected.Use(r.sessionMw.RequireSession())
		{
			protected.POST("/:cafeId/reviews",
				r.validator.Rules(validation.IDParam("cafeId"), validation.Content()),
				r.reviewHandler.Create)
			protected.GET("/:cafeId/like",
				r.validator.Rules(validation.IDParam("cafeId")),
				r.reviewHandler.LikeStatus)
			protected.POST("/:cafeId/like",
				r.validator.Rules(validation.IDParam("cafeId")),
				r.reviewHandler.Like)
			protected.DELETE("/:cafeId/like",
				r.validator.Rules(validation.IDParam("cafeId")),
				r.reviewHandler.Unlike)
		}
	}

	reviews := api.Group("/reviews")
	reviews.Use(r.sessionMw.RequireSession())
	{
		reviews.PATCH("/:reviewId",
			r.validator.Rules(validation.IDParam("reviewId"), validation.Content()),
			r.reviewHandler.Update)
		reviews.DELETE("/:reviewId",
			r.validator.Rules(validation.IDParam("reviewId")),
			r.reviewHandler.Delete)
	}
}
