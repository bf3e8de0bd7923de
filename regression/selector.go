package regression

import (
	"fmt"
	"slices"
	"strings"

	"github.com/kashenfelter/rloadest/errs"
	"github.com/kashenfelter/rloadest/internal/options"
	"github.com/kashenfelter/rloadest/timeseries"
)

// DefaultCandidates returns the classic nine-model candidate library: every
// useful combination of log-flow, quadratic log-flow, decimal-time trend,
// quadratic trend, and first-harmonic seasonality.
//
// The list is ordered from simplest to most complex, and SelectModel
// evaluates it in order.
func DefaultCandidates() []Spec {
	return []Spec{
		NewSpec("Model 1", Linear(FlowLog)),
		NewSpec("Model 2", Quadratic(FlowLog)),
		NewSpec("Model 3", Linear(FlowLog), Linear(DecimalTime)),
		NewSpec("Model 4", Linear(FlowLog), Fourier(1)),
		NewSpec("Model 5", Quadratic(FlowLog), Linear(DecimalTime)),
		NewSpec("Model 6", Quadratic(FlowLog), Fourier(1)),
		NewSpec("Model 7", Linear(FlowLog), Fourier(1), Linear(DecimalTime)),
		NewSpec("Model 8", Quadratic(FlowLog), Fourier(1), Linear(DecimalTime)),
		NewSpec("Model 9", Quadratic(FlowLog), Fourier(1), Quadratic(DecimalTime)),
	}
}

// Candidate is one evaluated specification in a Selection: either a fitted
// model or the error that prevented fitting. Failed candidates stay visible
// so a reviewer sees the whole field, not just the survivors.
type Candidate struct {
	// Spec is the evaluated specification.
	Spec Spec
	// Model is the fitted model, nil when Err is set.
	Model *Model
	// Err is the fit error, nil when Model is set.
	Err error
}

// Fitted reports whether the candidate was fitted successfully.
func (c Candidate) Fitted() bool {
	return c.Err == nil
}

// String returns a one-line table row for the candidate.
func (c Candidate) String() string {
	if c.Err != nil {
		return fmt.Sprintf("%-10s failed: %v", c.Spec.Name, c.Err)
	}

	return fmt.Sprintf("%-10s AIC %10.2f  SPPC %10.2f  R² %.4f  PPCC %.4f",
		c.Spec.Name, c.Model.AIC, c.Model.SPPC, c.Model.RSquared, c.Model.PPCC)
}

// Selection is the complete outcome of a model selection run.
//
// Candidates keeps evaluation order; Ranked derives the AIC ordering. The
// table always contains one entry per candidate specification, fitted or
// not, so automated choice never hides an alternative from review.
type Selection struct {
	// Candidates holds one entry per specification, in evaluation order.
	Candidates []Candidate
}

// SelectModel fits every candidate specification on the dataset and returns
// the full comparison table.
//
// By default the nine-model library from DefaultCandidates is evaluated;
// WithCandidates substitutes a custom list. A candidate that fails to fit
// (rank deficiency, too few observations, unknown covariate) is recorded
// with its error and evaluation continues.
//
// Parameters:
//   - ds: Calibration dataset
//   - opts: WithCandidates, WithResponseKind, WithUnitFactor
//
// Returns:
//   - *Selection: One Candidate per specification, evaluation order
//   - error: errs.ErrEmptyDataset, errs.ErrNoResponse or
//     errs.ErrNoCandidates; per-candidate failures are not errors here
//
// Example:
//
//	selection, err := regression.SelectModel(ds)
//	if err != nil {
//	    return err
//	}
//	best, err := selection.Best()
func SelectModel(ds *timeseries.Dataset, opts ...Option) (*Selection, error) {
	cfg := defaultConfig()
	if err := options.Apply(&cfg, opts...); err != nil {
		return nil, err
	}

	if ds == nil || ds.Len() == 0 {
		return nil, errs.ErrEmptyDataset
	}
	if !ds.HasResponse() {
		return nil, errs.ErrNoResponse
	}
	if len(cfg.Candidates) == 0 {
		return nil, errs.ErrNoCandidates
	}

	selection := &Selection{Candidates: make([]Candidate, len(cfg.Candidates))}
	for i, spec := range cfg.Candidates {
		model, err := fit(ds, spec, cfg)
		selection.Candidates[i] = Candidate{Spec: spec, Model: model, Err: err}
	}

	return selection, nil
}

// Ranked returns the candidates ordered for review: fitted candidates by
// ascending AIC (ties broken by higher PPCC), then failed candidates, both
// keeping evaluation order among equals.
func (s *Selection) Ranked() []Candidate {
	ranked := slices.Clone(s.Candidates)
	slices.SortStableFunc(ranked, func(a, b Candidate) int {
		switch {
		case a.Fitted() && !b.Fitted():
			return -1
		case !a.Fitted() && b.Fitted():
			return 1
		case !a.Fitted():
			return 0
		}

		if a.Model.AIC != b.Model.AIC {
			if a.Model.AIC < b.Model.AIC {
				return -1
			}

			return 1
		}
		if a.Model.PPCC != b.Model.PPCC {
			if a.Model.PPCC > b.Model.PPCC {
				return -1
			}

			return 1
		}

		return 0
	})

	return ranked
}

// Best returns the fitted candidate with the lowest AIC.
//
// This is a convenience for automated pipelines, not a recommendation: the
// criteria cannot see physical plausibility, so review the Ranked table
// before trusting the winner.
//
// Returns:
//   - *Model: The lowest-AIC fitted model
//   - error: errs.ErrNoFittedCandidate when every candidate failed
func (s *Selection) Best() (*Model, error) {
	for _, c := range s.Ranked() {
		if c.Fitted() {
			return c.Model, nil
		}
	}

	return nil, fmt.Errorf("%w: %d candidates evaluated", errs.ErrNoFittedCandidate, len(s.Candidates))
}

// String returns the ranked comparison table, one candidate per line.
func (s *Selection) String() string {
	var b strings.Builder
	for _, c := range s.Ranked() {
		b.WriteString(c.String())
		b.WriteByte('\n')
	}

	return b.String()
}
