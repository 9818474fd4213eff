package skills

import "fmt"

// RecognizerError wraps a failed entity recognition call.
type RecognizerError struct {
	Recognizer string
	Cause      error
}

func (e *RecognizerError) Error() string {
	return fmt.Sprintf("%s recognizer failed: %v", e.Recognizer, e.Cause)
}

func (e *RecognizerError) Unwrap() error {
	return e.Cause
}

// ResponseError reports a model response that does not decode into entities.
// Shape names the JSON form that was expected.
type ResponseError struct {
	Shape string
	Cause error
}

func (e *ResponseError) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("invalid recognizer response: %s", e.Shape)
	}
	return fmt.Sprintf("invalid recognizer response: %s: %v", e.Shape, e.Cause)
}

func (e *ResponseError) Unwrap() error {
	return e.Cause
}
