package domain

import "errors"

var (
	ErrNotFound          = errors.New("not_found")
	ErrInvalidID         = errors.New("invalid_id")
	ErrInvalidName       = errors.New("invalid_name")
	ErrInvalidRegionCode = errors.New("invalid_region_code")
	ErrInvalidKind       = errors.New("invalid_kind")
	ErrInvalidValue      = errors.New("invalid_value")
	ErrInvalidEntityType = errors.New("invalid_entity_type")
	ErrInvalidKwpBound   = errors.New("invalid_kwp_bound")
	ErrInvalidMaxAmount  = errors.New("invalid_max_amount")
	ErrInvalidDate       = errors.New("invalid_date")
	ErrInvalidSystemKwp  = errors.New("invalid_system_kwp")
)
