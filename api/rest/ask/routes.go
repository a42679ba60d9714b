package ask

import "github.com/gin-gonic/gin"

func RegisterRoutes(router gin.IRoutes, svc Asker) {
	handler := Handler(svc)

	router.GET("/ask", handler)
	router.POST("/ask", handler)
}
