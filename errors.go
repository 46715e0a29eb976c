package psychroflow

import "fmt"

// ValidationError is returned for inputs that are outside their allowed
// range or logically inconsistent with each other (negative humidity
// ratio, relative humidity outside [0, 1], pressure mismatch between
// flows that are being mixed, no dry air present).
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func newValidationError(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// DomainError is returned when a temperature lies outside the fit range
// of a property correlation.
type DomainError struct {
	// Quantity is the name of the correlated property.
	Quantity string
	// TMin and TMax bound the valid fit range, degree C.
	TMin float64
	TMax float64
	// T is the offending temperature, degree C.
	T float64
}

func (e *DomainError) Error() string {
	return fmt.Sprintf(
		"%s: invalid temperature range %.2f°C<=t<=%.2f°C; t=%.2f°C",
		e.Quantity, e.TMin, e.TMax, e.T,
	)
}

// ConvergenceError is returned when a bracketed root-finder fails to
// converge within its iteration budget, or when the supplied bracket
// does not contain a sign change.
type ConvergenceError struct {
	Msg string
	// Bracket is the interval the solver was working on.
	Bracket [2]float64
	// Residual is the function value at the last evaluated point.
	Residual float64
}

func (e *ConvergenceError) Error() string {
	return fmt.Sprintf(
		"%s; bracket=[%g, %g], residual=%g",
		e.Msg, e.Bracket[0], e.Bracket[1], e.Residual,
	)
}

// CondensationError is returned by the dry-only mixing operations when
// the mix would produce condensate. The excess water mass flow is kept
// for diagnostics since it tells the caller how far off the inputs are.
type CondensationError struct {
	// ExcessWaterMassFlow is the condensate mass flow that would form, kg/s.
	ExcessWaterMassFlow float64
}

func (e *CondensationError) Error() string {
	return fmt.Sprintf(
		"condensation: excess water mass flow = %g kg/s",
		e.ExcessWaterMassFlow,
	)
}
