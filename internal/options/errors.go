package options

// ParseError reports a malformed command line: an unknown flag, a missing
// flag value, or any other failure surfaced by the flag parser. The message
// comes from the parser and is shown to the user after the usage text.
type ParseError struct {
	err error
}

// NewParseError wraps a flag-parser failure as a ParseError.
func NewParseError(err error) *ParseError {
	return &ParseError{err: err}
}

// Error returns the parser-supplied message.
func (e *ParseError) Error() string {
	return e.err.Error()
}

// Unwrap exposes the underlying parser error.
func (e *ParseError) Unwrap() error {
	return e.err
}

// ValidationError reports a well-formed command line whose flag and argument
// combination violates the range resolution rules, such as mutually exclusive
// flags or excess positional arguments.
type ValidationError struct {
	msg string
}

// NewValidationError builds a ValidationError with the given message.
func NewValidationError(msg string) *ValidationError {
	return &ValidationError{msg: msg}
}

// Error returns the rule-violation message.
func (e *ValidationError) Error() string {
	return e.msg
}
