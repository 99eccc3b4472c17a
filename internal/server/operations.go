package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	operationsdomain "github.com/smallbiznis/menara/internal/operations/domain"
)

func (s *Server) GetOperationsOverview(c *gin.Context) {
	if s.operationsSvc == nil {
		AbortWithError(c, ErrServiceUnavailable)
		return
	}

	sel, err := s.parseSelection(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.operationsSvc.GetOverview(c.Request.Context(), operationsdomain.Request{Selection: sel})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
