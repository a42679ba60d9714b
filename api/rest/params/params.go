package params

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Bind fills dst from the JSON body when one is sent, otherwise from the
// query string. dst fields need both json and form tags.
func Bind(c *gin.Context, dst any) error {
	if c.Request.Method != http.MethodGet && c.Request.ContentLength != 0 {
		return c.ShouldBindJSON(dst)
	}

	return c.ShouldBindQuery(dst)
}
