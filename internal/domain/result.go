package domain

// Status tags an aggregator result. Every status other than StatusOK is a
// data-insufficiency condition, not a failure.
type Status string

const (
	// StatusOK means Data holds a valid (possibly empty) result.
	StatusOK Status = "ok"
	// StatusNoMatchingRows means the active predicates selected nothing.
	StatusNoMatchingRows Status = "no_matching_rows"
	// StatusInsufficientHistory means no company had the two years a YoY change needs.
	StatusInsufficientHistory Status = "insufficient_history"
	// StatusInsufficientSampleSize means a distribution view got fewer than 2 points.
	StatusInsufficientSampleSize Status = "insufficient_sample_size"
	// StatusNoPositiveValues means a positive-only view has nothing left to show.
	StatusNoPositiveValues Status = "no_positive_values"
)

// Result is the tagged variant every aggregator returns. A non-OK result never
// carries data, so the presentation layer can render a specific message
// instead of a blank chart.
type Result[T any] struct {
	Status  Status `json:"status"`
	Message string `json:"message,omitempty"`
	Data    T      `json:"data"`
}

// OK wraps data in a successful result.
func OK[T any](data T) Result[T] {
	return Result[T]{Status: StatusOK, Data: data}
}

// Empty builds a data-insufficiency result.
func Empty[T any](status Status, message string) Result[T] {
	return Result[T]{Status: status, Message: message}
}

// NoMatchingRows is shorthand for Empty(StatusNoMatchingRows, message).
func NoMatchingRows[T any](message string) Result[T] {
	return Empty[T](StatusNoMatchingRows, message)
}

// IsOK reports whether the result carries data.
func (r Result[T]) IsOK() bool {
	return r.Status == StatusOK
}
