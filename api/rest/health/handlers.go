package health

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// set at build time with -ldflags
var Version = "dev"

// returns the server health status
func Handler(c *gin.Context) {
	c.JSON(http.StatusOK, Response{
		Status:  "healthy",
		Service: "milodocs",
		Version: Version,
	})
}

// responds with pong for testing
func PingHandler(c *gin.Context) {
	c.String(http.StatusOK, "pong")
}
