package domain

// Params are the heuristic constants and standard load profiles the
// estimator runs on. They are provided once at wiring time and treated as
// immutable; nothing reads them from package state.
type Params struct {
	// BaseKwhPerPerson is the yearly consumption attributed to each
	// occupant.
	BaseKwhPerPerson float64
	// KwhPerM2 covers general appliances and lighting, not heating.
	KwhPerM2 float64
	// KwhForEV is the yearly surcharge for an electric vehicle.
	KwhForEV float64
	// KwhForHeatPump is a rough average; real values depend on climate and
	// insulation.
	KwhForHeatPump float64

	// HourlyProfile is the fraction of a day's energy used in each hour.
	HourlyProfile [24]float64
	// MonthlyProfile is the fraction of the year's energy used in each
	// month, January first.
	MonthlyProfile [12]float64
}

// DaysInMonth is the non-leap calendar used to expand monthly totals into
// the 8760-hour profile.
var DaysInMonth = [12]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// DefaultParams returns the standard residential profile set. Both profiles
// are normalized so their fractions sum to 1.
func DefaultParams() Params {
	p := Params{
		BaseKwhPerPerson: 1200,
		KwhPerM2:         10,
		KwhForEV:         2000,
		KwhForHeatPump:   3000,
		HourlyProfile: [24]float64{
			0.025, 0.020, 0.018, 0.015, 0.015, 0.020, 0.035, 0.050, // night, morning prep
			0.045, 0.040, 0.038, 0.035, 0.035, 0.038, 0.040, 0.045, // daytime
			0.055, 0.065, 0.075, 0.080, 0.070, 0.060, 0.045, 0.035, // evening peak
		},
		MonthlyProfile: [12]float64{
			0.10, 0.09, 0.08, 0.07, 0.07, 0.06,
			0.07, 0.08, 0.08, 0.09, 0.10, 0.11,
		},
	}
	normalize(p.HourlyProfile[:])
	normalize(p.MonthlyProfile[:])
	return p
}

func normalize(fractions []float64) {
	var sum float64
	for _, f := range fractions {
		sum += f
	}
	if sum == 0 {
		return
	}
	for i := range fractions {
		fractions[i] /= sum
	}
}
