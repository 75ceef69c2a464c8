package types

import (
	"fmt"
	"net/http"
)

// ResultCode is the closed outcome classification shared by client and server.
type ResultCode string

const (
	ResultCodeSuccess               ResultCode = "success"
	ResultCodeSystemError           ResultCode = "system-error"
	ResultCodeClientRequestError    ResultCode = "client-request-error"
	ResultCodeInvalidResponseFormat ResultCode = "invalid-response-format"
	ResultCodeNotFound              ResultCode = "not-found"
	ResultCodeAmbiguousIdentifier   ResultCode = "ambiguous-identifier"
	ResultCodeTimeout               ResultCode = "timeout"
	ResultCodeHTTPError             ResultCode = "http-error"
	ResultCodeCancelled             ResultCode = "cancelled"
)

func ParseResultCode(code string) (ResultCode, error) {
	switch code {
	case "success":
		return ResultCodeSuccess, nil
	case "system-error":
		return ResultCodeSystemError, nil
	case "client-request-error":
		return ResultCodeClientRequestError, nil
	case "invalid-response-format":
		return ResultCodeInvalidResponseFormat, nil
	case "not-found":
		return ResultCodeNotFound, nil
	case "ambiguous-identifier":
		return ResultCodeAmbiguousIdentifier, nil
	case "timeout":
		return ResultCodeTimeout, nil
	case "http-error":
		return ResultCodeHTTPError, nil
	case "cancelled":
		return ResultCodeCancelled, nil
	default:
		return "", fmt.Errorf("unsupported result code %q", code)
	}
}

// Result classifies the outcome of one API operation. Code and message
// always travel together; every synthetic failure produced locally uses
// the same constructors as decoded wire results.
type Result struct {
	Code    ResultCode `json:"code" bson:"code"`
	Message string     `json:"message" bson:"message"`
}

func (r Result) IsSuccess() bool {
	return r.Code == ResultCodeSuccess
}

func Success(message string) Result {
	return Result{Code: ResultCodeSuccess, Message: message}
}

func SystemError(message string) Result {
	return Result{Code: ResultCodeSystemError, Message: message}
}

func ClientRequestError(message string) Result {
	return Result{Code: ResultCodeClientRequestError, Message: message}
}

func InvalidResponseFormat(message string) Result {
	return Result{Code: ResultCodeInvalidResponseFormat, Message: message}
}

func Timeout(message string) Result {
	return Result{Code: ResultCodeTimeout, Message: message}
}

func Cancelled(message string) Result {
	return Result{Code: ResultCodeCancelled, Message: message}
}

func NotFound(message string) Result {
	return Result{Code: ResultCodeNotFound, Message: message}
}

func Ambiguous(message string) Result {
	return Result{Code: ResultCodeAmbiguousIdentifier, Message: message}
}

// HTTPError maps a non-2xx transport status to a result, preserving the
// original status in the message for diagnostics.
func HTTPError(status int) Result {
	switch status {
	case http.StatusNotFound:
		return Result{Code: ResultCodeNotFound, Message: fmt.Sprintf("HTTP %d: %s", status, http.StatusText(status))}
	case http.StatusUnprocessableEntity:
		return Result{Code: ResultCodeAmbiguousIdentifier, Message: fmt.Sprintf("HTTP %d: %s", status, http.StatusText(status))}
	case http.StatusRequestTimeout:
		return Result{Code: ResultCodeTimeout, Message: fmt.Sprintf("HTTP %d: %s", status, http.StatusText(status))}
	default:
		return Result{Code: ResultCodeHTTPError, Message: fmt.Sprintf("HTTP %d: %s", status, http.StatusText(status))}
	}
}

// FromLegacySuccess upgrades a v3-era boolean body to the coded model.
func FromLegacySuccess(success bool, message string) Result {
	if success {
		return Success(message)
	}
	return SystemError(message)
}
