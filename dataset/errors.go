package dataset

import "fmt"

// InputError reports malformed parameters: a nonsensical simulation request,
// or a resampling request the data cannot satisfy.
type InputError struct {
	Reason string
}

func (e InputError) Error() string {
	return "invalid input: " + e.Reason
}

// Inputf builds an InputError from a format string.
func Inputf(format string, args ...interface{}) InputError {
	return InputError{Reason: fmt.Sprintf(format, args...)}
}

// EmptyClassError reports that a class required by an operation has zero rows,
// e.g. no minority rows in an analysis set handed to a down-sampler, or a
// class absent from a prediction set handed to a metric.
type EmptyClassError struct {
	Class Class
}

func (e EmptyClassError) Error() string {
	return fmt.Sprintf("no %s rows present", e.Class)
}
