// File: api/handlers/routes.go

package handlers

import "github.com/gin-gonic/gin"

// Register mounts the API on r
func Register(r gin.IRouter, backend Backend, defaultLimit int) {
	search := NewSearchHandler(backend, defaultLimit)
	content := NewContentHandler(backend)
	health := NewHealthHandler(backend)

	api := r.Group("/api")
	{
		api.POST("/search", search.HandleSearch)
		api.GET("/search", search.HandleQuerySearch)
		api.GET("/threads/:id", content.HandleThread)
		api.GET("/posts/:id", content.HandlePost)
		api.GET("/users/:id", content.HandleUser)
		api.GET("/health", health.HandleHealth)
	}
}
