package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
)

// EligibilityQuery is the already-validated query context the repository
// translates into a single WHERE scan.
type EligibilityQuery struct {
	RegionCode string
	// NationalRegion is the sentinel that matches in addition to an exact
	// region match.
	NationalRegion string
	SystemKwp      float64
	EntityType     EntityType
	// AsOf is a YYYY-MM-DD date the validity window is checked against.
	AsOf string
}

type Repository interface {
	Insert(ctx context.Context, record *SubsidyRecord) error
	// FindByID returns (nil, nil) when no record exists, so optimistic
	// probes stay error-free.
	FindByID(ctx context.Context, id snowflake.ID) (*SubsidyRecord, error)
	// List returns records in no contractual order.
	List(ctx context.Context, activeOnly bool) ([]SubsidyRecord, error)
	// FindEligible returns active records matching every eligibility rule,
	// ordered by kind then value descending (display convenience only).
	FindEligible(ctx context.Context, q EligibilityQuery) ([]SubsidyRecord, error)
}
