package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	locationdomain "github.com/sunstack-labs/sunstack/internal/location/domain"
)

func (s *Server) registerLocationRoutes() {
	s.engine.POST("/location/analyze", s.analyzeLocation)
}

func (s *Server) analyzeLocation(c *gin.Context) {
	var req locationdomain.AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	resp, err := s.locationSvc.Analyze(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
