package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/fusbox/chatarbor-alternative/internal/interfaces/httpserver/handlers"
)

func registerKnowledgeRoutes(router gin.IRoutes, handler *handlers.KnowledgeHandler) {
	router.GET("/knowledge", handler.List)
	router.POST("/knowledge", handler.Create)
	router.GET("/knowledge/:document_id", handler.Get)
	router.PUT("/knowledge/:document_id", handler.Update)
	router.DELETE("/knowledge/:document_id", handler.Delete)
}
