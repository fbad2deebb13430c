package query

import (
	"context"
	"errors"
	"net"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/retry"
	"github.com/aws/smithy-go"
	"github.com/thirukguru/aws-list-all/service/awsapi"
	"github.com/thirukguru/aws-list-all/service/registry"
)

// ErrorKind groups call failures by how the engine reacts to them.
type ErrorKind int

const (
	KindOther ErrorKind = iota
	KindPermission
	KindThrottle
	KindTransient
	KindUnsupported
	KindUnknownService
)

// ErrCredentials marks a failure to resolve credentials before a run.
var ErrCredentials = errors.New("unable to resolve AWS credentials")

func (k ErrorKind) String() string {
	switch k {
	case KindPermission:
		return "permission"
	case KindThrottle:
		return "throttle"
	case KindTransient:
		return "transient"
	case KindUnsupported:
		return "unsupported"
	case KindUnknownService:
		return "unknown-service"
	default:
		return "other"
	}
}

// Retryable reports whether a failure of this kind is worth another attempt.
func (k ErrorKind) Retryable() bool {
	return k == KindThrottle || k == KindTransient
}

var permissionCodes = map[string]bool{
	"AccessDenied":                true,
	"AccessDeniedException":       true,
	"AuthorizationError":          true,
	"AuthorizationErrorException": true,
	"Forbidden":                   true,
	"ForbiddenException":          true,
	"NotAuthorized":               true,
	"UnauthorizedOperation":       true,
	"UnauthorizedException":       true,
	"UnauthorizedAccess":          true,
}

var unsupportedCodes = map[string]bool{
	"InvalidAction":                 true,
	"UnsupportedOperation":          true,
	"UnsupportedOperationException": true,
	"UnknownOperationException":     true,
	"OptInRequired":                 true,
	"SubscriptionRequiredException": true,
	"InvalidClientTokenId":          true,
}

var transientCodes = map[string]bool{
	"InternalError":               true,
	"InternalFailure":             true,
	"InternalServerError":         true,
	"InternalServerException":     true,
	"ServiceUnavailable":          true,
	"ServiceUnavailableException": true,
}

var (
	throttleCodes = retry.ThrottleErrorCode{Codes: retry.DefaultThrottleErrorCodes}
	retryCodes    = retry.RetryableErrorCode{Codes: retry.DefaultRetryableErrorCodes}
	retryStatus   = retry.RetryableHTTPStatusCode{Codes: retry.DefaultRetryableHTTPStatusCodes}
)

type httpStatusError interface {
	HTTPStatusCode() int
}

// Classify maps a Provider error onto an ErrorKind.
func Classify(err error) ErrorKind {
	if err == nil {
		return KindOther
	}
	switch {
	case errors.Is(err, awsapi.ErrUnknownService):
		return KindUnknownService
	case errors.Is(err, registry.ErrUnsupportedOperation):
		return KindUnsupported
	case errors.Is(err, awsapi.ErrInvalidParameters):
		return KindOther
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		code := apiErr.ErrorCode()
		switch {
		case permissionCodes[code]:
			return KindPermission
		case unsupportedCodes[code]:
			return KindUnsupported
		case transientCodes[code]:
			return KindTransient
		}
	}
	if throttleCodes.IsErrorThrottle(err) == aws.TrueTernary {
		return KindThrottle
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) && dnsErr.IsNotFound {
		return KindUnsupported
	}

	var statusErr httpStatusError
	if errors.As(err, &statusErr) {
		switch statusErr.HTTPStatusCode() {
		case 403:
			return KindPermission
		case 429:
			return KindThrottle
		}
	}

	if errors.Is(err, context.DeadlineExceeded) ||
		retryCodes.IsErrorRetryable(err) == aws.TrueTernary ||
		retryStatus.IsErrorRetryable(err) == aws.TrueTernary ||
		(retry.RetryableConnectionError{}).IsErrorRetryable(err) == aws.TrueTernary {
		return KindTransient
	}
	return KindOther
}

// ErrorCode extracts the service error code, if any.
func ErrorCode(err error) string {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorCode()
	}
	switch Classify(err) {
	case KindUnknownService:
		return "UnknownService"
	case KindUnsupported:
		return "UnsupportedOperation"
	}
	return ""
}
