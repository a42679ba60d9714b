package summarize

import "github.com/gin-gonic/gin"

func RegisterRoutes(router gin.IRoutes, svc Summarizer) {
	handler := Handler(svc)

	router.GET("/summarize", handler)
	router.POST("/summarize", handler)
}
