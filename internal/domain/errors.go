package domain

import (
	"errors"
	"fmt"
)

var (
	ErrBlankQuery      = errors.New("query must be non-empty")
	ErrCityNotFound    = errors.New("city not found")
	ErrDataUnavailable = errors.New("forecast data not available for location")
)

// Texts shown in the error region.
const (
	MsgCityNotFound    = "City not found"
	MsgDataUnavailable = "Data not available for this location."
)

// TransportError is a network, DNS or HTTP status failure talking to an
// external service. Its message is shown to the user unchanged.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return e.Err.Error()
}

func (e *TransportError) Unwrap() error { return e.Err }

// HTTPStatusError records a non-2xx response from an external service.
type HTTPStatusError struct {
	Code int
	Body string
}

func (e *HTTPStatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("Code %d", e.Code)
	}
	return fmt.Sprintf("Code %d: %s", e.Code, e.Body)
}

// UserMessage maps an error from a submission to the text shown in the
// error region.
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrCityNotFound):
		return MsgCityNotFound
	case errors.Is(err, ErrDataUnavailable):
		return MsgDataUnavailable
	}

	var te *TransportError
	if errors.As(err, &te) {
		return te.Error()
	}
	return err.Error()
}
