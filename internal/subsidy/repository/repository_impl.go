package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	subsidydomain "github.com/sunstack-labs/sunstack/internal/subsidy/domain"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) subsidydomain.Repository {
	return &repository{db: db}
}

func (r *repository) Insert(ctx context.Context, record *subsidydomain.SubsidyRecord) error {
	return r.db.WithContext(ctx).Exec(
		`INSERT INTO subsidies (
			id, name, region_code, kind, value, max_amount_eur, min_kwp_required,
			max_kwp_eligible, entity_type, start_date, end_date, is_active,
			conditions_text, source_url, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		record.ID,
		record.Name,
		record.RegionCode,
		record.Kind,
		record.Value,
		record.MaxAmountEUR,
		record.MinKwpRequired,
		record.MaxKwpEligible,
		record.EntityType,
		record.StartDate,
		record.EndDate,
		record.IsActive,
		record.ConditionsText,
		record.SourceURL,
		record.CreatedAt,
		record.UpdatedAt,
	).Error
}

func (r *repository) FindByID(ctx context.Context, id snowflake.ID) (*subsidydomain.SubsidyRecord, error) {
	var record subsidydomain.SubsidyRecord
	err := r.db.WithContext(ctx).Raw(
		`SELECT id, name, region_code, kind, value, max_amount_eur, min_kwp_required,
		        max_kwp_eligible, entity_type, start_date, end_date, is_active,
		        conditions_text, source_url, created_at, updated_at
		 FROM subsidies WHERE id = ?`,
		id,
	).Scan(&record).Error
	if err != nil {
		return nil, err
	}
	if record.ID == 0 {
		return nil, nil
	}
	return &record, nil
}

func (r *repository) List(ctx context.Context, activeOnly bool) ([]subsidydomain.SubsidyRecord, error) {
	var records []subsidydomain.SubsidyRecord
	stmt := r.db.WithContext(ctx).Model(&subsidydomain.SubsidyRecord{})
	if activeOnly {
		stmt = stmt.Where("is_active = ?", true)
	}
	// Ordering by id keeps output stable but is not part of the contract.
	if err := stmt.Order("id asc").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// FindEligible applies every eligibility rule as a single conjunctive scan,
// the same shape the catalogue was originally queried with. Note the last
// condition: a system larger than max_kwp_eligible is disqualified outright,
// not capped.
func (r *repository) FindEligible(ctx context.Context, q subsidydomain.EligibilityQuery) ([]subsidydomain.SubsidyRecord, error) {
	var records []subsidydomain.SubsidyRecord
	err := r.db.WithContext(ctx).
		Model(&subsidydomain.SubsidyRecord{}).
		Where("is_active = ?", true).
		Where("(region_code = ? OR region_code = ?)", q.RegionCode, q.NationalRegion).
		Where("(entity_type = ? OR entity_type = ?)", q.EntityType, subsidydomain.EntityAny).
		Where("(start_date IS NULL OR start_date <= ?)", q.AsOf).
		Where("(end_date IS NULL OR end_date >= ?)", q.AsOf).
		Where("min_kwp_required <= ?", q.SystemKwp).
		Where("(max_kwp_eligible IS NULL OR max_kwp_eligible >= ?)", q.SystemKwp).
		Order("kind asc, value desc").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}
