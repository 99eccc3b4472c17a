package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	executivedomain "github.com/smallbiznis/menara/internal/executive/domain"
)

func (s *Server) GetExecutiveOverview(c *gin.Context) {
	if s.executiveSvc == nil {
		AbortWithError(c, ErrServiceUnavailable)
		return
	}

	sel, err := s.parseSelection(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.executiveSvc.GetOverview(c.Request.Context(), executivedomain.Request{Selection: sel})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
