package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	consumptiondomain "github.com/sunstack-labs/sunstack/internal/consumption/domain"
	consumptionservice "github.com/sunstack-labs/sunstack/internal/consumption/service"
)

func (s *Server) registerConsumptionRoutes() {
	g := s.engine.Group("/consumption")
	g.POST("/predict/manual", s.predictManual)
	g.POST("/predict/csv", s.predictFromCSV)
}

func (s *Server) predictManual(c *gin.Context) {
	var in consumptiondomain.ManualInput
	if err := c.ShouldBindJSON(&in); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	estimate, err := s.consumptionSvc.PredictManual(c.Request.Context(), in)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, estimate)
}

// predictFromCSV accepts a multipart upload (field "file") holding one kWh
// value per row for a full year.
func (s *Server) predictFromCSV(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	defer f.Close()

	hourly, err := consumptionservice.ParseHourlyCSV(f)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	estimate, err := s.consumptionSvc.PredictFromHourly(c.Request.Context(), hourly)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, estimate)
}
