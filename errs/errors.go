// Package errs defines the sentinel errors returned by rloadest packages.
//
// Errors fall into three kinds, each with a predicate for callers that only
// care about the class of failure rather than the specific condition:
//
//   - Invalid argument: the caller passed a value the operation cannot accept
//     (bad lag, empty input, unknown column). Check with IsInvalidArgument.
//   - Format: input data is malformed (duplicate or unsorted dates, corrupt
//     archive bytes). Check with IsFormat.
//   - Fit: a regression could not be estimated from the given data
//     (rank-deficient design, too few observations). Check with IsFit.
//
// Call sites wrap sentinels with fmt.Errorf("%w: ...") to add context, so
// always test with errors.Is or the predicates below, never with equality.
package errs

import "errors"

// Invalid argument errors.
var (
	// ErrInvalidLag indicates a hysteresis lag smaller than 1 day.
	ErrInvalidLag = errors.New("lag must be at least 1")

	// ErrSeriesTooShort indicates a series with fewer observations than the
	// requested operation needs.
	ErrSeriesTooShort = errors.New("series too short")

	// ErrEmptySeries indicates a series or sample set with no observations.
	ErrEmptySeries = errors.New("empty series")

	// ErrEmptyResiduals indicates a bias-correction request with no residuals.
	ErrEmptyResiduals = errors.New("empty residual vector")

	// ErrEmptyDataset indicates a dataset with no rows.
	ErrEmptyDataset = errors.New("empty dataset")

	// ErrUnknownColumn indicates a reference to a column the dataset does not
	// carry.
	ErrUnknownColumn = errors.New("unknown column")

	// ErrDuplicateColumn indicates two dataset columns sharing one name.
	ErrDuplicateColumn = errors.New("duplicate column")

	// ErrMissingValue indicates a NaN or absent value where a finite one is
	// required.
	ErrMissingValue = errors.New("missing value")

	// ErrNonPositiveValue indicates a zero or negative value where a
	// log transform requires a positive one.
	ErrNonPositiveValue = errors.New("value must be positive")

	// ErrInvalidUnitFactor indicates a non-positive load unit conversion
	// factor.
	ErrInvalidUnitFactor = errors.New("unit factor must be positive")

	// ErrInvalidHarmonic indicates a Fourier term with order < 1.
	ErrInvalidHarmonic = errors.New("harmonic order must be at least 1")

	// ErrNoCandidates indicates a model selection request with an empty
	// candidate list.
	ErrNoCandidates = errors.New("no candidate specifications")

	// ErrNoTerms indicates a model specification without any terms.
	ErrNoTerms = errors.New("specification has no terms")

	// ErrInvalidTerm indicates a malformed term: an unset kind or an unknown
	// built-in variable.
	ErrInvalidTerm = errors.New("invalid term")

	// ErrInvalidCorrection indicates an unknown bias-correction selector.
	ErrInvalidCorrection = errors.New("invalid bias correction")

	// ErrNoResponse indicates a calibration request on a dataset without a
	// response column.
	ErrNoResponse = errors.New("dataset has no response column")

	// ErrGappedSeries indicates a daily series with missing calendar days
	// where a gap-free record is required.
	ErrGappedSeries = errors.New("series has calendar gaps")
)

// Format errors.
var (
	// ErrDuplicateDate indicates two observations sharing one date in a
	// series that requires unique dates.
	ErrDuplicateDate = errors.New("duplicate date")

	// ErrUnsortedDates indicates observations out of ascending date order.
	ErrUnsortedDates = errors.New("dates not ascending")

	// ErrInvalidMagic indicates archive bytes that do not start with the
	// expected magic number.
	ErrInvalidMagic = errors.New("invalid archive magic")

	// ErrUnsupportedVersion indicates an archive written by an unknown
	// format version.
	ErrUnsupportedVersion = errors.New("unsupported archive version")

	// ErrUnknownCodec indicates an archive compressed with a codec this
	// build does not recognize.
	ErrUnknownCodec = errors.New("unknown compression codec")

	// ErrChecksumMismatch indicates archive payload bytes whose checksum
	// does not match the header.
	ErrChecksumMismatch = errors.New("checksum mismatch")

	// ErrTruncatedArchive indicates archive bytes shorter than their header
	// claims.
	ErrTruncatedArchive = errors.New("truncated archive")
)

// Fit errors.
var (
	// ErrRankDeficient indicates a design matrix with linearly dependent
	// columns, so the least-squares system has no unique solution.
	ErrRankDeficient = errors.New("design matrix is rank deficient")

	// ErrTooFewObservations indicates fewer usable rows than coefficients.
	ErrTooFewObservations = errors.New("too few observations for model")

	// ErrNoFittedCandidate indicates that every candidate specification
	// failed during model selection.
	ErrNoFittedCandidate = errors.New("no candidate could be fitted")
)

var (
	invalidArgumentErrors = []error{
		ErrInvalidLag,
		ErrSeriesTooShort,
		ErrEmptySeries,
		ErrEmptyResiduals,
		ErrEmptyDataset,
		ErrUnknownColumn,
		ErrDuplicateColumn,
		ErrMissingValue,
		ErrNonPositiveValue,
		ErrInvalidUnitFactor,
		ErrInvalidHarmonic,
		ErrNoCandidates,
		ErrNoTerms,
		ErrInvalidTerm,
		ErrInvalidCorrection,
		ErrNoResponse,
		ErrGappedSeries,
	}
	formatErrors = []error{
		ErrDuplicateDate,
		ErrUnsortedDates,
		ErrInvalidMagic,
		ErrUnsupportedVersion,
		ErrUnknownCodec,
		ErrChecksumMismatch,
		ErrTruncatedArchive,
	}
	fitErrors = []error{
		ErrRankDeficient,
		ErrTooFewObservations,
		ErrNoFittedCandidate,
	}
)

func isAny(err error, targets []error) bool {
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}

	return false
}

// IsInvalidArgument reports whether err is, or wraps, an invalid-argument
// sentinel.
func IsInvalidArgument(err error) bool {
	return isAny(err, invalidArgumentErrors)
}

// IsFormat reports whether err is, or wraps, a malformed-input sentinel.
func IsFormat(err error) bool {
	return isAny(err, formatErrors)
}

// IsFit reports whether err is, or wraps, a fit-failure sentinel.
func IsFit(err error) bool {
	return isAny(err, fitErrors)
}
