package app

import (
	"errors"

	"github.com/alexanderramin/studyweek/internal/domain"
)

// ValidationError is returned by ingestion use cases when a record is
// rejected before anything is written.
type ValidationError = domain.ValidationError

// IsInvalidArgument reports whether err is a caller mistake rather than a
// storage or availability failure.
func IsInvalidArgument(err error) bool {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return true
	}
	var rerr *ReflectError
	return errors.As(err, &rerr) && rerr.Code == ReflectErrInvalidArgument
}

// IsUpstreamUnavailable reports whether err means a mandatory source could
// not be read.
func IsUpstreamUnavailable(err error) bool {
	var rerr *ReflectError
	return errors.As(err, &rerr) && rerr.Code == ReflectErrUpstreamUnavailable
}
