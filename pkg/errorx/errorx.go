package errorx

import "fmt"

type Code int

const (
	Validation Code = iota + 1
	NotFound
	Conflict
	Unauthorized
	Internal
)

// Error is the only error kind the HTTP layer knows how to render. Everything
// crossing a domain boundary is translated into one of these.
type Error struct {
	Code    Code
	Message string
}

func (e Error) Error() string {
	return e.Message
}

func New(code Code, format string, args ...any) Error {
	return Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

var Unknown = Error{Code: Internal, Message: "An internal server error occurred."}
