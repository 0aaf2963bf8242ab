package usecase

// ValidationError reports input rejected before any side effect took place.
// The HTTP boundary renders it as a 400 with the message verbatim.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string { return e.msg }

func invalidInput(msg string) error { return &ValidationError{msg: msg} }
