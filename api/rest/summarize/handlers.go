package summarize

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/lbliii/milodocs/api/rest/params"
	"github.com/lbliii/milodocs/internal/errors"
)

// summarizes the article sent as context
func Handler(svc Summarizer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req Request
		if err := params.Bind(c, &req); err != nil {
			errors.ValidationError(c, err)
			return
		}

		text := req.Context
		if strings.TrimSpace(text) == "" {
			text = defaultContext
		}

		summary, err := svc.Summarize(c.Request.Context(), text)
		if err != nil {
			errors.InternalError(c, "failed to summarize article", err)
			return
		}

		c.JSON(http.StatusOK, Response{Summarization: summary})
	}
}
