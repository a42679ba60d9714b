package ask

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/lbliii/milodocs/api/rest/params"
	"github.com/lbliii/milodocs/internal/assistant"
	"github.com/lbliii/milodocs/internal/errors"
)

// answers a question about the docs
func Handler(svc Asker) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req Request
		if err := params.Bind(c, &req); err != nil {
			errors.ValidationError(c, err)
			return
		}

		query := strings.TrimSpace(req.Query)
		if query == "" {
			query = defaultQuery
		}

		answer, err := svc.Ask(c.Request.Context(), assistant.AskRequest{
			Query:         query,
			ProductFilter: strings.TrimSpace(req.ProductFilter),
		})
		if err != nil {
			errors.InternalError(c, "failed to answer question", err)
			return
		}

		c.JSON(http.StatusOK, Response{Answer: answer})
	}
}
