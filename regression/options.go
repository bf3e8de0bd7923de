package regression

import (
	"fmt"

	"github.com/kashenfelter/rloadest/errs"
	"github.com/kashenfelter/rloadest/internal/options"
)

// ResponseKind selects the quantity on the left-hand side of the regression.
type ResponseKind uint8

const (
	// ResponseLoad models ln(load), load = concentration × flow × unit
	// factor. This is the usual target for mass-flux estimation.
	ResponseLoad ResponseKind = iota + 1
	// ResponseConcentration models ln(concentration) directly.
	ResponseConcentration
)

// String returns the response token used in model formulas.
func (k ResponseKind) String() string {
	switch k {
	case ResponseLoad:
		return "ln(Load)"
	case ResponseConcentration:
		return "ln(Conc)"
	default:
		return "ln(?)"
	}
}

// Unit conversion factors for ResponseLoad: load (kg/day) = concentration
// (mg/L) × flow × factor.
const (
	// KgPerDayCFS converts mg/L × ft³/s to kg/day.
	KgPerDayCFS = 2.4465755456
	// KgPerDayCMS converts mg/L × m³/s to kg/day.
	KgPerDayCMS = 86.4
)

// Config holds the knobs shared by Fit, SelectModel and Model.Predict.
// Zero-value fields fall back to the defaults below; entry points apply
// functional options on top.
type Config struct {
	// Response selects load or concentration regression. Default: ResponseLoad.
	Response ResponseKind
	// UnitFactor converts concentration × flow to mass per day. Default:
	// KgPerDayCFS.
	UnitFactor float64
	// Candidates is the specification list SelectModel evaluates. Default:
	// DefaultCandidates().
	Candidates []Spec
	// Correction selects the retransformation bias factor Predict applies.
	// Default: CorrectionDuan.
	Correction Correction
}

func defaultConfig() Config {
	return Config{
		Response:   ResponseLoad,
		UnitFactor: KgPerDayCFS,
		Candidates: DefaultCandidates(),
		Correction: CorrectionDuan,
	}
}

// Option is a functional option for Config.
type Option = options.Option[*Config]

// WithResponseKind selects load or concentration as the modeled quantity.
func WithResponseKind(kind ResponseKind) Option {
	return options.NoError(func(cfg *Config) {
		cfg.Response = kind
	})
}

// WithUnitFactor sets the concentration × flow → mass/day conversion factor.
// The factor must be positive.
func WithUnitFactor(factor float64) Option {
	return options.New(func(cfg *Config) error {
		if factor <= 0 {
			return fmt.Errorf("%w: got %g", errs.ErrInvalidUnitFactor, factor)
		}
		cfg.UnitFactor = factor

		return nil
	})
}

// WithCandidates replaces the candidate library SelectModel evaluates.
func WithCandidates(specs ...Spec) Option {
	return options.New(func(cfg *Config) error {
		if len(specs) == 0 {
			return errs.ErrNoCandidates
		}
		cfg.Candidates = specs

		return nil
	})
}

// WithCorrection selects the retransformation bias factor Predict applies.
func WithCorrection(c Correction) Option {
	return options.NoError(func(cfg *Config) {
		cfg.Correction = c
	})
}
