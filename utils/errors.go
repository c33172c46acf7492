package utils

import (
	"github.com/pkg/errors"

	"go.viam.com/gridplan/logging"
)

// NewConfigValidationFieldRequiredError is used when a config field is missing.
func NewConfigValidationFieldRequiredError(path, field string) error {
	return NewConfigValidationError(path, errors.Errorf("%q is required", field))
}

// NewConfigValidationError returns a config validation error occurring at a given path.
func NewConfigValidationError(path string, err error) error {
	return errors.Wrapf(err, "error validating %q", path)
}

// UncheckedError logs an error that has nowhere to be returned to, such as one from a deferred
// Close.
func UncheckedError(err error) {
	if err != nil {
		logging.Global().Debugw("unchecked error", "error", err)
	}
}
