// Package regression fits and diagnoses water-quality load models:
// least-squares regressions of log-transformed constituent load on flow,
// trend, season, and custom covariates such as hysteresis metrics.
//
// # Model Form
//
// Every model is linear in log space with an implicit intercept:
//
//	ln(Load) = β₀ + β₁·lnQ + β₂·lnQ² + β₃·sin(2πt) + β₄·cos(2πt) + β₅·t + ... + ε
//
// where lnQ is centered log flow and t is centered decimal time.
// Specifications are composed from four term constructors instead of parsed
// from formula strings, so an impossible model is a compile error or an
// immediate validation error, never a malformed string at fit time:
//
//   - Linear(v): one centered column of lnQ or decimal time
//   - Quadratic(v): centered column plus its square, orthogonally centered
//   - Fourier(k): sin/cos pairs for harmonics 1..k of the annual cycle
//   - Covariate(name): a dataset column used as-is (e.g. "dQ1")
//
// # Fitting
//
//	spec := regression.NewSpec("storm model",
//	    regression.Quadratic(regression.FlowLog),
//	    regression.Fourier(2),
//	    regression.Linear(regression.DecimalTime),
//	    regression.Covariate("dQ1"),
//	)
//	model, err := regression.Fit(ds, spec)
//	if err != nil {
//	    return err
//	}
//	fmt.Print(model.Summary())
//
// Fit reports coefficients with standard errors, t statistics and p-values,
// plus R², AIC, SPPC, PPCC and percent bias. Rank-deficient designs fail
// with errs.ErrRankDeficient rather than silently dropping a column.
//
// # Model Selection
//
// SelectModel fits a candidate library (the classic nine-model set by
// default) and surfaces the complete comparison table. The lowest-AIC
// candidate is a convenience, not a verdict:
//
//	selection, err := regression.SelectModel(ds)
//	if err != nil {
//	    return err
//	}
//	fmt.Print(selection)          // ranked table, failures included
//	best, err := selection.Best() // lowest AIC
//
// # Bias Correction and Prediction
//
// Back-transforming log-space estimates with plain exp is biased low; the
// package carries two correction factors per model, Duan's smearing
// estimator (default) and the lognormal MLE factor:
//
//	pred, err := model.Predict(est)                                          // Duan
//	pred, err = model.Predict(est, regression.WithCorrection(regression.CorrectionMLE))
//	byYear := pred.TotalsByWaterYear()
//
// # Determinism
//
// Fitting is pure computation: the same dataset, specification and options
// reproduce every coefficient, residual and statistic bit for bit.
package regression
