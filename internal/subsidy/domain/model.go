// Package domain holds the subsidy catalogue model and its service and
// repository contracts.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// DateLayout is the only accepted calendar-date format. Validity dates are
// stored as TEXT in this layout so lexicographic SQL comparisons order the
// same way the calendar does.
const DateLayout = "2006-01-02"

// Kind selects how a subsidy amount is computed. The three modes are
// mutually exclusive and fix the meaning of Value.
type Kind string

const (
	// KindPercentageCost applies Value (a fraction in [0,1]) to the
	// investment cost.
	KindPercentageCost Kind = "percentage_cost"
	// KindFixedAmount grants Value euros regardless of size or cost.
	KindFixedAmount Kind = "fixed_amount"
	// KindAmountPerKwp grants Value euros per eligible kWp.
	KindAmountPerKwp Kind = "amount_per_kwp"
)

func (k Kind) Valid() bool {
	switch k {
	case KindPercentageCost, KindFixedAmount, KindAmountPerKwp:
		return true
	default:
		return false
	}
}

// EntityType is the class of applicant a subsidy targets.
type EntityType string

const (
	EntityResidential EntityType = "residential"
	EntityBusiness    EntityType = "business"
	EntityCommunity   EntityType = "community"
	// EntityAny matches every query entity type.
	EntityAny EntityType = "any"
)

func (e EntityType) Valid() bool {
	switch e {
	case EntityResidential, EntityBusiness, EntityCommunity, EntityAny:
		return true
	default:
		return false
	}
}

// SubsidyRecord is a government subsidy definition.
//
// RegionCode is a flat tag: a record applies when it equals the query
// region or the configured national sentinel. No hierarchy (province
// within region) is resolved.
type SubsidyRecord struct {
	ID         snowflake.ID `gorm:"primaryKey" json:"id"`
	Name       string       `gorm:"type:text;not null" json:"name"`
	RegionCode string       `gorm:"column:region_code;type:text;not null;index" json:"region_code"`
	Kind       Kind         `gorm:"type:text;not null;index" json:"kind"`
	Value      float64      `gorm:"not null" json:"value"`

	MaxAmountEUR   *float64 `gorm:"column:max_amount_eur" json:"max_amount_eur,omitempty"`
	MinKwpRequired float64  `gorm:"column:min_kwp_required;not null;default:0" json:"min_kwp_required"`
	MaxKwpEligible *float64 `gorm:"column:max_kwp_eligible" json:"max_kwp_eligible,omitempty"`

	EntityType EntityType `gorm:"column:entity_type;type:text;not null" json:"entity_type"`

	// Inclusive validity window, YYYY-MM-DD. Nil means unbounded.
	StartDate *string `gorm:"column:start_date;type:text" json:"start_date,omitempty"`
	EndDate   *string `gorm:"column:end_date;type:text" json:"end_date,omitempty"`

	IsActive bool `gorm:"column:is_active;not null;default:true;index" json:"is_active"`

	ConditionsText *string `gorm:"column:conditions_text;type:text" json:"conditions_text,omitempty"`
	SourceURL      *string `gorm:"column:source_url;type:text" json:"source_url,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (SubsidyRecord) TableName() string { return "subsidies" }

// Validate checks the fields a caller controls on creation. Storage-level
// failures (duplicate id, connection loss) are a separate error class.
func (r *SubsidyRecord) Validate() error {
	if r.Name == "" {
		return ErrInvalidName
	}
	if r.RegionCode == "" {
		return ErrInvalidRegionCode
	}
	if !r.Kind.Valid() {
		return ErrInvalidKind
	}
	if r.Value < 0 {
		return ErrInvalidValue
	}
	if r.Kind == KindPercentageCost && r.Value > 1 {
		return ErrInvalidValue
	}
	if !r.EntityType.Valid() {
		return ErrInvalidEntityType
	}
	if r.MinKwpRequired < 0 {
		return ErrInvalidKwpBound
	}
	if r.MaxKwpEligible != nil && *r.MaxKwpEligible < 0 {
		return ErrInvalidKwpBound
	}
	if r.MaxAmountEUR != nil && *r.MaxAmountEUR < 0 {
		return ErrInvalidMaxAmount
	}
	if err := validateDate(r.StartDate); err != nil {
		return err
	}
	if err := validateDate(r.EndDate); err != nil {
		return err
	}
	return nil
}

func validateDate(s *string) error {
	if s == nil {
		return nil
	}
	if _, err := time.Parse(DateLayout, *s); err != nil {
		return ErrInvalidDate
	}
	return nil
}
