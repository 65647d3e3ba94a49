package service

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	subsidydomain "github.com/sunstack-labs/sunstack/internal/subsidy/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type ServiceParam struct {
	fx.In

	Log            *zap.Logger
	GenID          *snowflake.Node
	Repository     subsidydomain.Repository
	NationalRegion string `name:"subsidy.national_region"`
}

type Service struct {
	log            *zap.Logger
	genID          *snowflake.Node
	repo           subsidydomain.Repository
	nationalRegion string
}

func NewService(p ServiceParam) subsidydomain.Service {
	return &Service{
		log:            p.Log,
		genID:          p.GenID,
		repo:           p.Repository,
		nationalRegion: p.NationalRegion,
	}
}

func (s *Service) Create(ctx context.Context, req subsidydomain.CreateRequest) (*subsidydomain.SubsidyRecord, error) {
	now := time.Now().UTC()
	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}
	entityType := req.EntityType
	if entityType == "" {
		entityType = subsidydomain.EntityResidential
	}

	record := &subsidydomain.SubsidyRecord{
		ID:             s.genID.Generate(),
		Name:           req.Name,
		RegionCode:     req.RegionCode,
		Kind:           req.Kind,
		Value:          req.Value,
		MaxAmountEUR:   req.MaxAmountEUR,
		MinKwpRequired: req.MinKwpRequired,
		MaxKwpEligible: req.MaxKwpEligible,
		EntityType:     entityType,
		StartDate:      req.StartDate,
		EndDate:        req.EndDate,
		IsActive:       isActive,
		ConditionsText: req.ConditionsText,
		SourceURL:      req.SourceURL,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := record.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Insert(ctx, record); err != nil {
		s.log.Error("insert subsidy", zap.String("name", record.Name), zap.Error(err))
		return nil, err
	}

	s.log.Info("subsidy created",
		zap.Int64("id", record.ID.Int64()),
		zap.String("name", record.Name),
		zap.String("region", record.RegionCode),
		zap.String("kind", string(record.Kind)))
	return record, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*subsidydomain.SubsidyRecord, error) {
	parsed, err := snowflake.ParseString(id)
	if err != nil {
		return nil, subsidydomain.ErrInvalidID
	}
	record, err := s.repo.FindByID(ctx, parsed)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, subsidydomain.ErrNotFound
	}
	return record, nil
}

func (s *Service) List(ctx context.Context, activeOnly bool) ([]subsidydomain.SubsidyRecord, error) {
	return s.repo.List(ctx, activeOnly)
}

func (s *Service) FindEligible(ctx context.Context, req subsidydomain.EligibilityRequest) ([]subsidydomain.SubsidyRecord, error) {
	q, err := s.eligibilityQuery(req)
	if err != nil {
		return nil, err
	}
	records, err := s.repo.FindEligible(ctx, q)
	if err != nil {
		// Read-only and idempotent; the caller may retry.
		s.log.Error("eligibility scan", zap.Error(err))
		return nil, err
	}
	s.log.Info("eligibility query",
		zap.String("region", q.RegionCode),
		zap.Float64("system_kwp", q.SystemKwp),
		zap.String("entity_type", string(q.EntityType)),
		zap.String("as_of", q.AsOf),
		zap.Int("matches", len(records)))
	return records, nil
}

func (s *Service) Evaluate(ctx context.Context, req subsidydomain.EvaluateRequest) (*subsidydomain.EvaluateResponse, error) {
	records, err := s.FindEligible(ctx, req.EligibilityRequest)
	if err != nil {
		return nil, err
	}

	resp := &subsidydomain.EvaluateResponse{
		Subsidies: make([]subsidydomain.AppliedSubsidy, 0, len(records)),
	}
	var total float64
	for i := range records {
		amount := CalculateAmount(&records[i], req.SystemKwp, req.TotalInvestmentCost)
		resp.Subsidies = append(resp.Subsidies, subsidydomain.AppliedSubsidy{
			SubsidyRecord:       records[i],
			CalculatedAmountEUR: amount,
		})
		total += amount
	}
	resp.TotalAmountEUR = roundEUR(total)
	return resp, nil
}

func (s *Service) eligibilityQuery(req subsidydomain.EligibilityRequest) (subsidydomain.EligibilityQuery, error) {
	var q subsidydomain.EligibilityQuery
	if req.RegionCode == "" {
		return q, subsidydomain.ErrInvalidRegionCode
	}
	if req.SystemKwp <= 0 {
		return q, subsidydomain.ErrInvalidSystemKwp
	}
	if !req.EntityType.Valid() {
		return q, subsidydomain.ErrInvalidEntityType
	}
	asOf := req.AsOfDate
	if asOf == "" {
		asOf = time.Now().UTC().Format(subsidydomain.DateLayout)
	} else if _, err := time.Parse(subsidydomain.DateLayout, asOf); err != nil {
		return q, subsidydomain.ErrInvalidDate
	}
	return subsidydomain.EligibilityQuery{
		RegionCode:     req.RegionCode,
		NationalRegion: s.nationalRegion,
		SystemKwp:      req.SystemKwp,
		EntityType:     req.EntityType,
		AsOf:           asOf,
	}, nil
}
