package errors

import "fmt"

// MissingDataError reports a metric required by the active variant that has
// no count or no label. Assembly aborts on the first one found.
type MissingDataError struct {
	Metric string // metric name, e.g. "previous_studies"
	Field  string // "count" or "label"
}

// Error implements the error interface.
func (e *MissingDataError) Error() string {
	return fmt.Sprintf("%s: %s", ErrCodeMissingData, e.UserMessage())
}

// UserMessage names the missing metric.
func (e *MissingDataError) UserMessage() string {
	if e.Field == "" {
		return fmt.Sprintf("missing data for %q", e.Metric)
	}
	return fmt.Sprintf("missing %s for %q", e.Field, e.Metric)
}

// Code returns the error code for this error type.
func (e *MissingDataError) Code() Code { return ErrCodeMissingData }

// MalformedExclusionTableError reports a reason/count list that cannot be
// parsed or holds invalid values.
type MalformedExclusionTableError struct {
	Metric string // "dbr_excluded" or "other_excluded"
	Row    int    // 1-based row within the table, 0 when unknown
	Cause  error
}

// Error implements the error interface.
func (e *MalformedExclusionTableError) Error() string {
	msg := fmt.Sprintf("%s: %s", ErrCodeMalformedExclusion, e.UserMessage())
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// UserMessage names the table and row.
func (e *MalformedExclusionTableError) UserMessage() string {
	if e.Row > 0 {
		return fmt.Sprintf("malformed exclusion table %q at row %d", e.Metric, e.Row)
	}
	return fmt.Sprintf("malformed exclusion table %q", e.Metric)
}

// Unwrap returns the underlying cause.
func (e *MalformedExclusionTableError) Unwrap() error { return e.Cause }

// Code returns the error code for this error type.
func (e *MalformedExclusionTableError) Code() Code { return ErrCodeMalformedExclusion }

// UnresolvedURLWarning records a box without a hyperlink target.
// It is returned alongside a successful overlay, never as its error.
type UnresolvedURLWarning struct {
	Box string
}

// Error implements the error interface.
func (w *UnresolvedURLWarning) Error() string {
	return fmt.Sprintf("%s: no URL for box %q", ErrCodeUnresolvedURL, w.Box)
}

// Code returns the error code for this error type.
func (w *UnresolvedURLWarning) Code() Code { return ErrCodeUnresolvedURL }

// RasterizationError wraps a failure of the external SVG converter.
// It is surfaced as-is and never retried.
type RasterizationError struct {
	Format string // "pdf" or "png"
	Cause  error
}

// Error implements the error interface.
func (e *RasterizationError) Error() string {
	return fmt.Sprintf("%s: %s export: %v", ErrCodeRasterization, e.Format, e.Cause)
}

// UserMessage describes the failed export.
func (e *RasterizationError) UserMessage() string {
	return fmt.Sprintf("%s export failed: %v", e.Format, e.Cause)
}

// Unwrap returns the underlying cause.
func (e *RasterizationError) Unwrap() error { return e.Cause }

// Code returns the error code for this error type.
func (e *RasterizationError) Code() Code { return ErrCodeRasterization }
