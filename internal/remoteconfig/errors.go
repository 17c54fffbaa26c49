package remoteconfig

import (
	"errors"
	"fmt"
)

const (
	configurationNotFoundMessageConstant = "configuration file not found"
	configurationExistsMessageConstant   = "configuration file already exists"
	notFoundErrorTemplateConstant        = "%s: %s"
	parseErrorTemplateConstant           = "failed to parse %s: %v"
	parseErrorWithoutPathTemplate        = "failed to parse configuration: %v"
	validationErrorTemplateConstant      = "invalid configuration %s at %s: %s"
	validationErrorWithoutPathTemplate   = "invalid configuration at %s: %s"
)

var (
	// ErrConfigurationNotFound indicates the configuration document does not exist.
	ErrConfigurationNotFound = errors.New(configurationNotFoundMessageConstant)
	// ErrConfigurationExists indicates Save refused to overwrite an existing document.
	ErrConfigurationExists = errors.New(configurationExistsMessageConstant)
)

// NotFoundError reports a missing configuration document.
type NotFoundError struct {
	Path string
}

// Error describes the missing document.
func (notFoundError *NotFoundError) Error() string {
	return fmt.Sprintf(notFoundErrorTemplateConstant, configurationNotFoundMessageConstant, notFoundError.Path)
}

// Is matches ErrConfigurationNotFound.
func (notFoundError *NotFoundError) Is(target error) bool {
	return target == ErrConfigurationNotFound
}

// ParseError reports a document that could not be decoded.
type ParseError struct {
	Path string
	Err  error
}

// Error describes the decoding failure.
func (parseError *ParseError) Error() string {
	if len(parseError.Path) == 0 {
		return fmt.Sprintf(parseErrorWithoutPathTemplate, parseError.Err)
	}
	return fmt.Sprintf(parseErrorTemplateConstant, parseError.Path, parseError.Err)
}

// Unwrap exposes the decoder error.
func (parseError *ParseError) Unwrap() error {
	return parseError.Err
}

// ValidationError reports a decoded document that violates the schema.
type ValidationError struct {
	Path     string
	Location string
	Reason   string
}

// Error describes the violation.
func (validationError *ValidationError) Error() string {
	if len(validationError.Path) == 0 {
		return fmt.Sprintf(validationErrorWithoutPathTemplate, validationError.Location, validationError.Reason)
	}
	return fmt.Sprintf(validationErrorTemplateConstant, validationError.Path, validationError.Location, validationError.Reason)
}
