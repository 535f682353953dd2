package httperr

import "errors"

// BusinessError is a user-correctable failure. Code is stable for clients,
// Message is the text shown to the mechanic.
type BusinessError struct {
	Code    string
	Message string
}

func (e BusinessError) Error() string {
	if e.Message != "" {
		return e.Code + ": " + e.Message
	}
	return e.Code
}

func NewBusiness(code, message string) error {
	return BusinessError{Code: code, Message: message}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

func AsBusiness(err error) (BusinessError, bool) {
	var be BusinessError
	ok := errors.As(err, &be)
	return be, ok
}

// ServerError is a failure of a dependency or of the store. Message is safe
// to return to callers; Err keeps the cause for logs.
type ServerError struct {
	Code    string
	Message string
	Err     error
}

func (e *ServerError) Error() string {
	if e.Err != nil {
		return e.Code + ": " + e.Err.Error()
	}
	return e.Code
}

func (e *ServerError) Unwrap() error {
	return e.Err
}

func NewServer(code, message string, err error) error {
	return &ServerError{Code: code, Message: message, Err: err}
}

func AsServer(err error) (*ServerError, bool) {
	var se *ServerError
	ok := errors.As(err, &se)
	return se, ok
}
