package service

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	subsidydomain "github.com/sunstack-labs/sunstack/internal/subsidy/domain"
	"github.com/sunstack-labs/sunstack/internal/subsidy/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func strPtr(v string) *string { return &v }
func boolPtr(v bool) *bool    { return &v }

func setupService(t *testing.T) subsidydomain.Service {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	// A single connection serializes writers; in-memory sqlite locks the
	// whole database otherwise.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&subsidydomain.SubsidyRecord{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	return NewService(ServiceParam{
		Log:            zap.NewNop(),
		GenID:          node,
		Repository:     repository.NewRepository(db),
		NationalRegion: "ES",
	})
}

func TestService_CreateAndGet(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, subsidydomain.CreateRequest{
		Name:         "Test Subsidy 1",
		RegionCode:   "ES-TEST",
		Kind:         subsidydomain.KindFixedAmount,
		Value:        100.0,
		MaxAmountEUR: f64(100.0),
	})
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.NotZero(t, created.ID)
	assert.Equal(t, "Test Subsidy 1", created.Name)
	assert.Equal(t, 100.0, created.Value)
	// Defaults applied on creation.
	assert.True(t, created.IsActive)
	assert.Equal(t, subsidydomain.EntityResidential, created.EntityType)

	retrieved, err := svc.GetByID(ctx, created.ID.String())
	require.NoError(t, err)
	assert.Equal(t, created.ID, retrieved.ID)
	assert.Equal(t, created.Name, retrieved.Name)
}

func TestService_GetNotFound(t *testing.T) {
	svc := setupService(t)

	_, err := svc.GetByID(context.Background(), "99999")
	assert.ErrorIs(t, err, subsidydomain.ErrNotFound)
}

func TestService_GetInvalidID(t *testing.T) {
	svc := setupService(t)

	_, err := svc.GetByID(context.Background(), "not-a-number")
	assert.ErrorIs(t, err, subsidydomain.ErrInvalidID)
}

func TestService_CreateValidation(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	cases := []struct {
		name string
		req  subsidydomain.CreateRequest
		want error
	}{
		{
			"missing name",
			subsidydomain.CreateRequest{RegionCode: "ES", Kind: subsidydomain.KindFixedAmount, Value: 100},
			subsidydomain.ErrInvalidName,
		},
		{
			"missing region",
			subsidydomain.CreateRequest{Name: "x", Kind: subsidydomain.KindFixedAmount, Value: 100},
			subsidydomain.ErrInvalidRegionCode,
		},
		{
			"unknown kind",
			subsidydomain.CreateRequest{Name: "x", RegionCode: "ES", Kind: "lump_sum", Value: 100},
			subsidydomain.ErrInvalidKind,
		},
		{
			"negative value",
			subsidydomain.CreateRequest{Name: "x", RegionCode: "ES", Kind: subsidydomain.KindFixedAmount, Value: -1},
			subsidydomain.ErrInvalidValue,
		},
		{
			"percentage above one",
			subsidydomain.CreateRequest{Name: "x", RegionCode: "ES", Kind: subsidydomain.KindPercentageCost, Value: 1.5},
			subsidydomain.ErrInvalidValue,
		},
		{
			"malformed date",
			subsidydomain.CreateRequest{Name: "x", RegionCode: "ES", Kind: subsidydomain.KindFixedAmount, Value: 100, StartDate: strPtr("01/06/2024")},
			subsidydomain.ErrInvalidDate,
		},
		{
			"negative kwp bound",
			subsidydomain.CreateRequest{Name: "x", RegionCode: "ES", Kind: subsidydomain.KindFixedAmount, Value: 100, MinKwpRequired: -1},
			subsidydomain.ErrInvalidKwpBound,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tc.req)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestService_ListActiveOnly(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, subsidydomain.CreateRequest{
		Name: "Active Sub", RegionCode: "ES", Kind: subsidydomain.KindFixedAmount, Value: 10,
	})
	require.NoError(t, err)
	_, err = svc.Create(ctx, subsidydomain.CreateRequest{
		Name: "Inactive Sub", RegionCode: "ES", Kind: subsidydomain.KindFixedAmount, Value: 20,
		IsActive: boolPtr(false),
	})
	require.NoError(t, err)

	all, err := svc.List(ctx, false)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	active, err := svc.List(ctx, true)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "Active Sub", active[0].Name)
	assert.True(t, active[0].IsActive)
}

// seedEligibilityFixture inserts the catalogue the eligibility matrix runs
// against: one national residential grant with a validity window, one
// regional grant, plus expired, inactive, future, business and community
// variants.
func seedEligibilityFixture(t *testing.T, svc subsidydomain.Service) {
	t.Helper()
	ctx := context.Background()

	yesterday := time.Now().UTC().AddDate(0, 0, -1).Format(subsidydomain.DateLayout)
	tomorrow := time.Now().UTC().AddDate(0, 0, 1).Format(subsidydomain.DateLayout)

	for _, req := range []subsidydomain.CreateRequest{
		{
			Name: "National Grant", RegionCode: "ES", Kind: subsidydomain.KindAmountPerKwp, Value: 100,
			MinKwpRequired: 1.0, MaxKwpEligible: f64(10.0),
			StartDate: strPtr(yesterday), EndDate: strPtr(tomorrow),
		},
		{
			Name: "Madrid Specific Grant", RegionCode: "ES-MD", Kind: subsidydomain.KindPercentageCost, Value: 0.1,
			MinKwpRequired: 2.0, MaxKwpEligible: f64(8.0),
			StartDate: strPtr(yesterday), EndDate: strPtr(tomorrow),
		},
		{
			Name: "Expired Grant", RegionCode: "ES-MD", Kind: subsidydomain.KindFixedAmount, Value: 50,
			StartDate: strPtr("2023-01-01"), EndDate: strPtr("2023-12-31"),
		},
		{
			Name: "Inactive Grant", RegionCode: "ES-MD", Kind: subsidydomain.KindFixedAmount, Value: 60,
			IsActive: boolPtr(false),
		},
		{
			Name: "Future Grant", RegionCode: "ES", Kind: subsidydomain.KindFixedAmount, Value: 70,
			StartDate: strPtr(tomorrow),
		},
		{
			Name: "National Business Grant", RegionCode: "ES", Kind: subsidydomain.KindAmountPerKwp, Value: 150,
			EntityType: subsidydomain.EntityBusiness,
		},
		{
			Name: "National Grant Community", RegionCode: "ES", Kind: subsidydomain.KindAmountPerKwp, Value: 120,
			EntityType: subsidydomain.EntityCommunity,
		},
	} {
		_, err := svc.Create(ctx, req)
		require.NoError(t, err)
	}
}

func TestService_FindEligible(t *testing.T) {
	svc := setupService(t)
	seedEligibilityFixture(t, svc)

	cases := []struct {
		name       string
		regionCode string
		systemKwp  float64
		entityType subsidydomain.EntityType
		wantNames  []string
	}{
		{"regional and national match", "ES-MD", 5.0, subsidydomain.EntityResidential,
			[]string{"National Grant", "Madrid Specific Grant"}},
		{"national only for uncovered region", "ES-CT", 3.0, subsidydomain.EntityResidential,
			[]string{"National Grant"}},
		{"business entity", "ES", 2.0, subsidydomain.EntityBusiness,
			[]string{"National Business Grant"}},
		{"below minimum size", "ES-MD", 0.5, subsidydomain.EntityResidential,
			[]string{}},
		// A system larger than every max_kwp_eligible matches nothing; the
		// bound disqualifies rather than caps here.
		{"above maximum eligible size", "ES-MD", 15.0, subsidydomain.EntityResidential,
			[]string{}},
		{"unknown region falls back to national", "ES-XX", 5.0, subsidydomain.EntityResidential,
			[]string{"National Grant"}},
		{"community entity", "ES-MD", 5.0, subsidydomain.EntityCommunity,
			[]string{"National Grant Community"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			records, err := svc.FindEligible(context.Background(), subsidydomain.EligibilityRequest{
				RegionCode: tc.regionCode,
				SystemKwp:  tc.systemKwp,
				EntityType: tc.entityType,
			})
			require.NoError(t, err)

			names := make([]string, 0, len(records))
			for _, r := range records {
				names = append(names, r.Name)
			}
			assert.Equal(t, tc.wantNames, names)
		})
	}
}

func TestService_FindEligible_Ordering(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	// Same kind sorts by value descending; kinds sort alphabetically first.
	for _, req := range []subsidydomain.CreateRequest{
		{Name: "per-kwp small", RegionCode: "ES", Kind: subsidydomain.KindAmountPerKwp, Value: 50},
		{Name: "percentage", RegionCode: "ES", Kind: subsidydomain.KindPercentageCost, Value: 0.3},
		{Name: "per-kwp large", RegionCode: "ES", Kind: subsidydomain.KindAmountPerKwp, Value: 200},
		{Name: "fixed", RegionCode: "ES", Kind: subsidydomain.KindFixedAmount, Value: 900},
	} {
		_, err := svc.Create(ctx, req)
		require.NoError(t, err)
	}

	records, err := svc.FindEligible(ctx, subsidydomain.EligibilityRequest{
		RegionCode: "ES",
		SystemKwp:  5.0,
		EntityType: subsidydomain.EntityResidential,
	})
	require.NoError(t, err)
	require.Len(t, records, 4)

	names := []string{records[0].Name, records[1].Name, records[2].Name, records[3].Name}
	assert.Equal(t, []string{"per-kwp large", "per-kwp small", "fixed", "percentage"}, names)
}

func TestService_FindEligible_Validation(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	_, err := svc.FindEligible(ctx, subsidydomain.EligibilityRequest{
		SystemKwp: 5.0, EntityType: subsidydomain.EntityResidential,
	})
	assert.ErrorIs(t, err, subsidydomain.ErrInvalidRegionCode)

	_, err = svc.FindEligible(ctx, subsidydomain.EligibilityRequest{
		RegionCode: "ES", EntityType: subsidydomain.EntityResidential,
	})
	assert.ErrorIs(t, err, subsidydomain.ErrInvalidSystemKwp)

	_, err = svc.FindEligible(ctx, subsidydomain.EligibilityRequest{
		RegionCode: "ES", SystemKwp: 5.0, EntityType: "charity",
	})
	assert.ErrorIs(t, err, subsidydomain.ErrInvalidEntityType)

	_, err = svc.FindEligible(ctx, subsidydomain.EligibilityRequest{
		RegionCode: "ES", SystemKwp: 5.0, EntityType: subsidydomain.EntityResidential,
		AsOfDate: "01-06-2024",
	})
	assert.ErrorIs(t, err, subsidydomain.ErrInvalidDate)
}

func TestService_ConcurrentCreate_UniqueIDs(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	const n = 20
	ids := make(chan string, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			created, err := svc.Create(ctx, subsidydomain.CreateRequest{
				Name:       fmt.Sprintf("Concurrent %d", i),
				RegionCode: "ES",
				Kind:       subsidydomain.KindFixedAmount,
				Value:      10,
			})
			assert.NoError(t, err)
			if created != nil {
				ids <- created.ID.String()
			}
		}(i)
	}
	wg.Wait()
	close(ids)

	seen := make(map[string]bool)
	for id := range ids {
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
	assert.Len(t, seen, n)
}

func TestService_Evaluate(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	for _, req := range []subsidydomain.CreateRequest{
		{
			Name: "National Per-Kwp", RegionCode: "ES", Kind: subsidydomain.KindAmountPerKwp, Value: 100,
			MaxAmountEUR: f64(3000), MinKwpRequired: 1.0, MaxKwpEligible: f64(10.0),
		},
		{
			Name: "Madrid Percentage", RegionCode: "ES-MD", Kind: subsidydomain.KindPercentageCost, Value: 0.2,
			MaxAmountEUR: f64(4000), MinKwpRequired: 2.0,
		},
	} {
		_, err := svc.Create(ctx, req)
		require.NoError(t, err)
	}

	resp, err := svc.Evaluate(ctx, subsidydomain.EvaluateRequest{
		EligibilityRequest: subsidydomain.EligibilityRequest{
			RegionCode: "ES-MD",
			SystemKwp:  5.0,
			EntityType: subsidydomain.EntityResidential,
		},
		TotalInvestmentCost: 10000,
	})
	require.NoError(t, err)
	require.Len(t, resp.Subsidies, 2)

	assert.Equal(t, "National Per-Kwp", resp.Subsidies[0].Name)
	assert.InDelta(t, 500.0, resp.Subsidies[0].CalculatedAmountEUR, 0.001)
	assert.Equal(t, "Madrid Percentage", resp.Subsidies[1].Name)
	assert.InDelta(t, 2000.0, resp.Subsidies[1].CalculatedAmountEUR, 0.001)
	assert.InDelta(t, 2500.0, resp.TotalAmountEUR, 0.001)
}

func TestService_Evaluate_NoMatches(t *testing.T) {
	svc := setupService(t)

	resp, err := svc.Evaluate(context.Background(), subsidydomain.EvaluateRequest{
		EligibilityRequest: subsidydomain.EligibilityRequest{
			RegionCode: "ES-NOWHERE",
			SystemKwp:  5.0,
			EntityType: subsidydomain.EntityResidential,
		},
		TotalInvestmentCost: 10000,
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Subsidies)
	assert.Equal(t, 0.0, resp.TotalAmountEUR)
}
