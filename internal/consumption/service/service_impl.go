package service

import (
	"context"
	"math"
	"math/rand"
	"time"

	"github.com/shopspring/decimal"
	consumptiondomain "github.com/sunstack-labs/sunstack/internal/consumption/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type ServiceParam struct {
	fx.In

	Log    *zap.Logger
	Params consumptiondomain.Params
	// Jitter widens the manual estimate to reflect its uncertainty.
	// Nil selects a seeded 0.95-1.05 uniform draw; tests pin it to 1.
	Jitter func() float64 `optional:"true"`
}

type Service struct {
	log    *zap.Logger
	params consumptiondomain.Params
	jitter func() float64
}

func NewService(p ServiceParam) consumptiondomain.Service {
	jitter := p.Jitter
	if jitter == nil {
		rng := rand.New(rand.NewSource(time.Now().UnixNano()))
		jitter = func() float64 { return 0.95 + rng.Float64()*0.10 }
	}
	return &Service{log: p.Log, params: p.Params, jitter: jitter}
}

func (s *Service) PredictManual(ctx context.Context, in consumptiondomain.ManualInput) (*consumptiondomain.Estimate, error) {
	if in.Occupants <= 0 {
		return nil, consumptiondomain.ErrInvalidOccupants
	}
	if in.AreaM2 <= 0 {
		return nil, consumptiondomain.ErrInvalidArea
	}

	annual := float64(in.Occupants)*s.params.BaseKwhPerPerson + in.AreaM2*s.params.KwhPerM2
	if in.HasEV {
		annual += s.params.KwhForEV
	}
	if in.HasHeatPump {
		annual += s.params.KwhForHeatPump
	}
	annual = round2(annual * s.jitter())

	monthly := s.monthlySplit(annual)
	hourly := s.hourlyExpand(monthly, annual)

	estimate := &consumptiondomain.Estimate{
		AnnualKwh:     annual,
		MonthlyKwh:    monthly,
		HourlyProfile: hourly,
		PeakPowerKw:   round2(maxOf(hourly)),
	}

	s.log.Info("manual consumption estimate",
		zap.Int("occupants", in.Occupants),
		zap.Float64("area_m2", in.AreaM2),
		zap.Bool("has_ev", in.HasEV),
		zap.Bool("has_heat_pump", in.HasHeatPump),
		zap.Float64("annual_kwh", estimate.AnnualKwh),
		zap.Float64("peak_power_kw", estimate.PeakPowerKw))
	return estimate, nil
}

func (s *Service) PredictFromHourly(ctx context.Context, hourly []float64) (*consumptiondomain.Estimate, error) {
	if len(hourly) != consumptiondomain.HoursPerYear {
		return nil, consumptiondomain.ErrInvalidHourlyProfile
	}

	var annual float64
	for _, v := range hourly {
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, consumptiondomain.ErrInvalidHourlyProfile
		}
		annual += v
	}

	monthly := make([]float64, 12)
	hour := 0
	for m, days := range consumptiondomain.DaysInMonth {
		var sum float64
		for i := 0; i < days*24; i++ {
			sum += hourly[hour]
			hour++
		}
		monthly[m] = round2(sum)
	}

	estimate := &consumptiondomain.Estimate{
		AnnualKwh:     round2(annual),
		MonthlyKwh:    monthly,
		HourlyProfile: hourly,
		PeakPowerKw:   round2(maxOf(hourly)),
	}

	s.log.Info("hourly consumption estimate",
		zap.Float64("annual_kwh", estimate.AnnualKwh),
		zap.Float64("peak_power_kw", estimate.PeakPowerKw))
	return estimate, nil
}

// monthlySplit spreads the annual total over the monthly profile and folds
// the rounding remainder into January so the months sum back to the total.
func (s *Service) monthlySplit(annual float64) []float64 {
	monthly := make([]float64, 12)
	var sum float64
	for i, fraction := range s.params.MonthlyProfile {
		monthly[i] = round2(annual * fraction)
		sum += monthly[i]
	}
	if diff := round2(annual - sum); diff != 0 {
		monthly[0] = round2(monthly[0] + diff)
	}
	return monthly
}

// hourlyExpand builds the 8760-value profile from the monthly totals, then
// rescales it when cumulative rounding drifts from the annual total.
func (s *Service) hourlyExpand(monthly []float64, annual float64) []float64 {
	hourly := make([]float64, 0, consumptiondomain.HoursPerYear)
	var sum float64
	for m, monthKwh := range monthly {
		days := consumptiondomain.DaysInMonth[m]
		daily := monthKwh / float64(days)
		for d := 0; d < days; d++ {
			for _, fraction := range s.params.HourlyProfile {
				v := round4(daily * fraction)
				hourly = append(hourly, v)
				sum += v
			}
		}
	}

	if math.Abs(sum-annual) > 0.1 && sum != 0 {
		scale := annual / sum
		for i := range hourly {
			hourly[i] = round4(hourly[i] * scale)
		}
	}
	return hourly
}

func maxOf(values []float64) float64 {
	var max float64
	for _, v := range values {
		if v > max {
			max = v
		}
	}
	return max
}

func round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

func round4(v float64) float64 {
	return decimal.NewFromFloat(v).Round(4).InexactFloat64()
}
