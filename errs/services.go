package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// External-Service Errors
var (
	ErrUploadFailed   = errors.New("media upload failed")
	ErrDeliveryFailed = errors.New("email delivery failed")
	ErrMissingConfig  = errors.New("missing configuration")
)

// NewUploadError wraps a failed call to the media store.
func NewUploadError(asset string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrUploadFailed,
		Details:    fmt.Sprintf("Failed to upload %s to media store", asset),
		Cause:      cause,
		Field:      asset,
	}
}

// NewDeliveryError wraps a failed call to the mail relay.
func NewDeliveryError(cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrDeliveryFailed,
		Details:    "Failed to send message. Please try again later.",
		Cause:      cause,
	}
}

// NewConfigurationError reports required credentials that are not set.
func NewConfigurationError(what string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrMissingConfig,
		Details:    fmt.Sprintf("%s configuration is missing", what),
	}
}

// External-Service Error Type Checkers
func IsUploadError(err error) bool {
	return errors.Is(err, ErrUploadFailed)
}

func IsDeliveryError(err error) bool {
	return errors.Is(err, ErrDeliveryFailed)
}

func IsConfigurationError(err error) bool {
	return errors.Is(err, ErrMissingConfig)
}
