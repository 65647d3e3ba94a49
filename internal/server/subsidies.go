package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	subsidydomain "github.com/sunstack-labs/sunstack/internal/subsidy/domain"
)

func (s *Server) registerSubsidyRoutes() {
	g := s.engine.Group("/subsidies")
	g.POST("", s.createSubsidy)
	g.GET("", s.listSubsidies)
	g.GET("/:id", s.getSubsidy)
	g.POST("/eligible", s.eligibleSubsidies)
}

type createSubsidyRequest struct {
	Name           string   `json:"name"`
	RegionCode     string   `json:"region_code"`
	Kind           string   `json:"type"`
	Value          float64  `json:"value"`
	MaxAmountEUR   *float64 `json:"max_amount_eur"`
	MinKwpRequired float64  `json:"min_kwp_required"`
	MaxKwpEligible *float64 `json:"max_kwp_eligible"`
	EntityType     *string  `json:"entity_type"`
	StartDate      *string  `json:"start_date"`
	EndDate        *string  `json:"end_date"`
	IsActive       *bool    `json:"is_active"`
	ConditionsText *string  `json:"conditions_text"`
	SourceURL      *string  `json:"source_url"`
}

func (s *Server) createSubsidy(c *gin.Context) {
	var req createSubsidyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	create := subsidydomain.CreateRequest{
		Name:           strings.TrimSpace(req.Name),
		RegionCode:     strings.TrimSpace(req.RegionCode),
		Kind:           subsidydomain.Kind(req.Kind),
		Value:          req.Value,
		MaxAmountEUR:   req.MaxAmountEUR,
		MinKwpRequired: req.MinKwpRequired,
		MaxKwpEligible: req.MaxKwpEligible,
		StartDate:      req.StartDate,
		EndDate:        req.EndDate,
		IsActive:       req.IsActive,
		ConditionsText: req.ConditionsText,
		SourceURL:      req.SourceURL,
	}
	if req.EntityType != nil {
		create.EntityType = subsidydomain.EntityType(*req.EntityType)
	}

	record, err := s.subsidySvc.Create(c.Request.Context(), create)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, record)
}

func (s *Server) listSubsidies(c *gin.Context) {
	activeOnly := strings.EqualFold(c.Query("active_only"), "true")

	records, err := s.subsidySvc.List(c.Request.Context(), activeOnly)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"subsidies": records})
}

func (s *Server) getSubsidy(c *gin.Context) {
	record, err := s.subsidySvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

type eligibleSubsidiesRequest struct {
	RegionCode string  `json:"region_code"`
	SystemKwp  float64 `json:"system_kwp"`
	EntityType string  `json:"entity_type"`
	AsOfDate   string  `json:"as_of_date"`
	// TotalInvestmentCost switches the response to priced mode: each record
	// carries its calculated amount and the aggregate total is included.
	TotalInvestmentCost *float64 `json:"total_investment_cost"`
}

func (s *Server) eligibleSubsidies(c *gin.Context) {
	var req eligibleSubsidiesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	query := subsidydomain.EligibilityRequest{
		RegionCode: strings.TrimSpace(req.RegionCode),
		SystemKwp:  req.SystemKwp,
		EntityType: subsidydomain.EntityType(req.EntityType),
		AsOfDate:   strings.TrimSpace(req.AsOfDate),
	}

	if req.TotalInvestmentCost != nil {
		resp, err := s.subsidySvc.Evaluate(c.Request.Context(), subsidydomain.EvaluateRequest{
			EligibilityRequest:  query,
			TotalInvestmentCost: *req.TotalInvestmentCost,
		})
		if err != nil {
			AbortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, resp)
		return
	}

	records, err := s.subsidySvc.FindEligible(c.Request.Context(), query)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	if records == nil {
		records = []subsidydomain.SubsidyRecord{}
	}
	c.JSON(http.StatusOK, gin.H{"subsidies": records})
}
