package domain

import "context"

// CreateRequest carries the caller-supplied fields of a new subsidy.
// The id is assigned by the service.
type CreateRequest struct {
	Name           string
	RegionCode     string
	Kind           Kind
	Value          float64
	MaxAmountEUR   *float64
	MinKwpRequired float64
	MaxKwpEligible *float64
	EntityType     EntityType
	StartDate      *string
	EndDate        *string
	IsActive       *bool
	ConditionsText *string
	SourceURL      *string
}

// EligibilityRequest is the query context an HTTP caller supplies.
// AsOfDate defaults to today when empty.
type EligibilityRequest struct {
	RegionCode string
	SystemKwp  float64
	EntityType EntityType
	AsOfDate   string
}

// EvaluateRequest extends an eligibility query with the cost scenario so
// each eligible subsidy can be priced.
type EvaluateRequest struct {
	EligibilityRequest
	TotalInvestmentCost float64
}

// AppliedSubsidy pairs an eligible record with its calculated value for
// one scenario.
type AppliedSubsidy struct {
	SubsidyRecord
	CalculatedAmountEUR float64 `json:"calculated_amount_eur"`
}

type EvaluateResponse struct {
	Subsidies []AppliedSubsidy `json:"subsidies"`
	// TotalAmountEUR is the plain sum of the per-record amounts. Stacking
	// rules between programmes are not modelled.
	TotalAmountEUR float64 `json:"total_amount_eur"`
}

// Service is the subsidy engine surface.
//
// Note on FindEligible vs CalculateAmount: a record whose max_kwp_eligible
// is below the queried system size is excluded by FindEligible, while the
// calculator would happily prorate a percentage_cost record for exactly
// that case. Both behaviors are kept as the original rules specify them;
// the prorating path is reachable only through direct calculation.
type Service interface {
	Create(ctx context.Context, req CreateRequest) (*SubsidyRecord, error)
	GetByID(ctx context.Context, id string) (*SubsidyRecord, error)
	List(ctx context.Context, activeOnly bool) ([]SubsidyRecord, error)
	FindEligible(ctx context.Context, req EligibilityRequest) ([]SubsidyRecord, error)
	Evaluate(ctx context.Context, req EvaluateRequest) (*EvaluateResponse, error)
}
