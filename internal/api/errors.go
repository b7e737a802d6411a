package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/michaeelnguyen/michaeelnguyen-pep-project/internal/service"
)

type ApiError struct {
	StatusCode int    `json:"status_code"`
	Message    string `json:"message"`
	Err        error  `json:"-"`
}

func (e *ApiError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s", e.Message, e.Err.Error())
	}

	return e.Message
}

func (e *ApiError) Unwrap() error {
	return e.Err
}

func lower(s string) string {
	return strings.ToLower(s)
}

func NewBadRequestError() *ApiError {
	return &ApiError{
		StatusCode: http.StatusBadRequest,
		Message:    lower(http.StatusText(http.StatusBadRequest)),
	}
}

// NewBadRequestFromError keeps the reason of a validation failure and
// hides everything else behind the generic message.
func NewBadRequestFromError(err error) *ApiError {
	var validationErr *service.ValidationError
	if errors.As(err, &validationErr) {
		return &ApiError{
			StatusCode: http.StatusBadRequest,
			Message:    validationErr.Reason,
			Err:        err,
		}
	}

	errResp := NewBadRequestError()
	errResp.Err = err
	return errResp
}

func NewInternalServerError(err error) *ApiError {
	return &ApiError{
		StatusCode: http.StatusInternalServerError,
		Message:    lower(http.StatusText(http.StatusInternalServerError)),
		Err:        err,
	}
}

func NewUnauthorizedError() *ApiError {
	return &ApiError{
		StatusCode: http.StatusUnauthorized,
		Message:    lower(http.StatusText(http.StatusUnauthorized)),
	}
}
