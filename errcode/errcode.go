package errcode

// Code is a stable driver status identifier.
// It is a string newtype, comparable, allocation-free, and implements error.
type Code string

func (c Code) Error() string { return string(c) }

// Canonical codes (short, stable).
const (
	OK Code = "ok"

	// Transport bring-up failed or the first handshake transaction failed.
	InitializationError Code = "initialization_error"
	// A transaction's byte exchange failed.
	CommunicationError Code = "communication_error"
	// Channel index outside 0..7 or a value outside its encoded bit width.
	InvalidParameter Code = "invalid_parameter"
	// A fault bit was observed where the operation requires fault-free state.
	HardwareFault Code = "hardware_fault"
	// Transport-reported timeout, passed through unchanged.
	Timeout Code = "timeout"

	Error Code = "error" // generic fallback
)

// Optional wrapper when we want to keep context and a cause.
type E struct {
	C   Code
	Op  string
	Msg string
	Err error
}

func (e *E) Error() string {
	if e.Msg != "" {
		return string(e.C) + ": " + e.Msg
	}
	return string(e.C)
}
func (e *E) Unwrap() error { return e.Err }
func (e *E) Code() Code    { return e.C }

// Is makes a wrapped E match its bare Code through errors.Is.
func (e *E) Is(target error) bool {
	if c, ok := target.(Code); ok {
		return e.C == c
	}
	return false
}

// Of extracts a Code from an error, defaulting to Error.
func Of(err error) Code {
	if err == nil {
		return OK
	}
	if c, ok := err.(Code); ok {
		return c
	}
	type coder interface{ Code() Code }
	if x, ok := err.(coder); ok {
		return x.Code()
	}
	return Error
}
