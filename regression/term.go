package regression

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/kashenfelter/rloadest/errs"
)

// Variable identifies a built-in explanatory variable derived from the
// dataset: the natural log of daily flow, or the decimal-year clock.
type Variable uint8

const (
	// FlowLog is the natural log of daily flow.
	FlowLog Variable = iota + 1
	// DecimalTime is the decimal-year clock (2003-10-01 ~ 2003.748).
	DecimalTime
)

// String returns the column token for the variable.
func (v Variable) String() string {
	switch v {
	case FlowLog:
		return "lnQ"
	case DecimalTime:
		return "dectime"
	default:
		return "unknown(" + strconv.Itoa(int(v)) + ")"
	}
}

// TermKind discriminates the term variants a specification can combine.
type TermKind uint8

const (
	// KindLinear is a single centered column of a built-in variable.
	KindLinear TermKind = iota + 1
	// KindQuadratic is a centered column plus its square.
	KindQuadratic
	// KindFourier is one sin/cos column pair per harmonic of the annual
	// cycle.
	KindFourier
	// KindCovariate is a named dataset column used as-is.
	KindCovariate
)

// Term is one additive piece of a model specification.
//
// A Term is a plain value: build one with Linear, Quadratic, Fourier or
// Covariate and combine them in a Spec. Which fields are meaningful depends
// on Kind; the constructors set exactly the right ones.
type Term struct {
	// Kind selects the variant.
	Kind TermKind
	// Variable is the built-in source for Linear and Quadratic terms.
	Variable Variable
	// Order is the highest harmonic for Fourier terms.
	Order int
	// Column names the dataset column for Covariate terms.
	Column string
}

// Linear creates a term with one centered column of v.
func Linear(v Variable) Term {
	return Term{Kind: KindLinear, Variable: v}
}

// Quadratic creates a term with a centered column of v plus its square.
//
// The center is not the plain mean: it is chosen so the linear and squared
// columns are orthogonal, which keeps their coefficients interpretable
// separately.
func Quadratic(v Variable) Term {
	return Term{Kind: KindQuadratic, Variable: v}
}

// Fourier creates a seasonal term with sin/cos column pairs for harmonics
// 1..order of the annual cycle, evaluated on decimal time.
//
// Order 1 captures a single annual peak; order 2 adds a semiannual
// component.
func Fourier(order int) Term {
	return Term{Kind: KindFourier, Order: order}
}

// Covariate creates a term that uses the named dataset column as-is, e.g. a
// hysteresis column produced by the timeseries package.
func Covariate(name string) Term {
	return Term{Kind: KindCovariate, Column: name}
}

// columnNames returns the design-matrix column names the term expands to, in
// design order.
func (t Term) columnNames() []string {
	switch t.Kind {
	case KindLinear:
		return []string{t.Variable.String()}
	case KindQuadratic:
		v := t.Variable.String()
		return []string{v, v + "2"}
	case KindFourier:
		names := make([]string, 0, 2*t.Order)
		for j := 1; j <= t.Order; j++ {
			names = append(names, "sin"+strconv.Itoa(j), "cos"+strconv.Itoa(j))
		}

		return names
	case KindCovariate:
		return []string{t.Column}
	default:
		return nil
	}
}

// width returns the number of design-matrix columns the term expands to.
func (t Term) width() int {
	switch t.Kind {
	case KindQuadratic:
		return 2
	case KindFourier:
		return 2 * t.Order
	default:
		return 1
	}
}

// String returns the term as it appears in a model formula.
func (t Term) String() string {
	return strings.Join(t.columnNames(), " + ")
}

func (t Term) validate() error {
	switch t.Kind {
	case KindLinear, KindQuadratic:
		if t.Variable != FlowLog && t.Variable != DecimalTime {
			return fmt.Errorf("%w: variable %d", errs.ErrInvalidTerm, t.Variable)
		}
	case KindFourier:
		if t.Order < 1 {
			return fmt.Errorf("%w: got %d", errs.ErrInvalidHarmonic, t.Order)
		}
	case KindCovariate:
		if t.Column == "" {
			return fmt.Errorf("%w: covariate with empty column name", errs.ErrInvalidTerm)
		}
	default:
		return fmt.Errorf("%w: kind %d", errs.ErrInvalidTerm, t.Kind)
	}

	return nil
}

// Spec is a model specification: a name for reporting plus the additive
// terms of the regression. The intercept is implicit and always present.
type Spec struct {
	Name  string
	Terms []Term
}

// NewSpec creates a Spec from terms in regression order.
//
// Example:
//
//	spec := regression.NewSpec("lnQ2 sin cos dectime dQ1",
//	    regression.Quadratic(regression.FlowLog),
//	    regression.Fourier(2),
//	    regression.Linear(regression.DecimalTime),
//	    regression.Covariate("dQ1"),
//	)
func NewSpec(name string, terms ...Term) Spec {
	return Spec{Name: name, Terms: terms}
}

// RightHandSide returns the explanatory side of the model formula, intercept
// first.
func (s Spec) RightHandSide() string {
	parts := make([]string, 0, len(s.Terms)+1)
	parts = append(parts, "Intercept")
	for _, t := range s.Terms {
		parts = append(parts, t.String())
	}

	return strings.Join(parts, " + ")
}

// String returns the spec name and its right-hand side.
func (s Spec) String() string {
	if s.Name == "" {
		return s.RightHandSide()
	}

	return s.Name + ": " + s.RightHandSide()
}

func (s Spec) validate() error {
	if len(s.Terms) == 0 {
		return fmt.Errorf("%w: spec %q", errs.ErrNoTerms, s.Name)
	}

	for _, t := range s.Terms {
		if err := t.validate(); err != nil {
			return fmt.Errorf("spec %q: %w", s.Name, err)
		}
	}

	return nil
}
