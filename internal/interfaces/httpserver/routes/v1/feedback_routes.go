package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/fusbox/chatarbor-alternative/internal/interfaces/httpserver/handlers"
)

func registerFeedbackRoutes(router gin.IRoutes, handler *handlers.FeedbackHandler) {
	router.POST("/feedback", handler.Submit)
	router.GET("/feedback", handler.List)
	router.GET("/feedback/rubric", handler.Rubric)
}
