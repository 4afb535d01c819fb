// Package errors provides standardized error handling for mirrorpick.
// It defines common error types, constants, and helper functions for consistent
// error creation, wrapping, and handling across the application.
package errors

import (
	"errors"
	"fmt"
)

// Standard errors package errors that we re-export for convenience
var (
	// Unwrap unwraps an error to access the underlying error
	Unwrap = errors.Unwrap
	// Is reports whether any error in err's chain matches target
	Is = errors.Is
	// As finds the first error in err's chain that matches target
	As = errors.As
)

// Common error constants for frequently occurring errors
var (
	ErrNoMirrors = NewExportError("no mirrors to export", "", nil)
)

// ErrorKind represents the kind of error
type ErrorKind int

// Error kinds
const (
	Unknown ErrorKind = iota
	// File error kinds
	FileNotFound
	FileAccessDenied
	InvalidPath
	// Config error kinds
	InvalidConfig
	ConfigNotFound
	// Mirror status error kinds
	FetchFailed
	DecodeFailed
	CacheFailed
	// Export error kinds
	ExportFailed
)

func (k ErrorKind) String() string {
	switch k {
	case FileNotFound:
		return "file_not_found"
	case FileAccessDenied:
		return "file_access_denied"
	case InvalidPath:
		return "invalid_path"
	case InvalidConfig:
		return "invalid_config"
	case ConfigNotFound:
		return "config_not_found"
	case FetchFailed:
		return "fetch_failed"
	case DecodeFailed:
		return "decode_failed"
	case CacheFailed:
		return "cache_failed"
	case ExportFailed:
		return "export_failed"
	default:
		return "unknown"
	}
}

// ApplicationError is the base error type for all application errors
type ApplicationError struct {
	msg  string
	err  error
	kind ErrorKind
}

// Error returns the error message
func (e *ApplicationError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.err)
	}
	return e.msg
}

// Unwrap returns the wrapped error
func (e *ApplicationError) Unwrap() error {
	return e.err
}

// Kind returns the kind of error
func (e *ApplicationError) Kind() ErrorKind {
	return e.kind
}

// FileError represents errors related to file operations
type FileError struct {
	ApplicationError
	path string
}

// NewFileError creates a new file error
func NewFileError(msg string, path string, kind ErrorKind, err error) *FileError {
	return &FileError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: kind,
		},
		path: path,
	}
}

// Error returns the file error message
func (e *FileError) Error() string {
	if e.path != "" {
		if e.err != nil {
			return fmt.Sprintf("%s: %s: %v", e.msg, e.path, e.err)
		}
		return fmt.Sprintf("%s: %s", e.msg, e.path)
	}
	return e.ApplicationError.Error()
}

// Path returns the file path associated with the error
func (e *FileError) Path() string {
	return e.path
}

// ConfigError represents errors related to configuration
type ConfigError struct {
	ApplicationError
	param string
}

// NewConfigError creates a new configuration error
func NewConfigError(msg string, param string, kind ErrorKind, err error) *ConfigError {
	return &ConfigError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: kind,
		},
		param: param,
	}
}

// Error returns the config error message
func (e *ConfigError) Error() string {
	if e.param != "" {
		if e.err != nil {
			return fmt.Sprintf("%s: %s: %v", e.msg, e.param, e.err)
		}
		return fmt.Sprintf("%s: %s", e.msg, e.param)
	}
	return e.ApplicationError.Error()
}

// Param returns the configuration parameter associated with the error
func (e *ConfigError) Param() string {
	return e.param
}

// FetchError represents a failure to retrieve or decode the mirror status.
type FetchError struct {
	ApplicationError
	url        string
	statusCode int
}

// NewFetchError creates a new fetch error. statusCode is 0 when no response was received.
func NewFetchError(msg string, url string, statusCode int, kind ErrorKind, err error) *FetchError {
	return &FetchError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: kind,
		},
		url:        url,
		statusCode: statusCode,
	}
}

// Error returns the fetch error message
func (e *FetchError) Error() string {
	switch {
	case e.url == "":
		return e.ApplicationError.Error()
	case e.statusCode != 0 && e.err != nil:
		return fmt.Sprintf("%s: %s (status %d): %v", e.msg, e.url, e.statusCode, e.err)
	case e.statusCode != 0:
		return fmt.Sprintf("%s: %s (status %d)", e.msg, e.url, e.statusCode)
	case e.err != nil:
		return fmt.Sprintf("%s: %s: %v", e.msg, e.url, e.err)
	default:
		return fmt.Sprintf("%s: %s", e.msg, e.url)
	}
}

// URL returns the requested URL
func (e *FetchError) URL() string {
	return e.url
}

// StatusCode returns the HTTP status code, or 0 if the request never completed
func (e *FetchError) StatusCode() int {
	return e.statusCode
}

// ExportError represents errors raised while writing the mirrorlist
type ExportError struct {
	ApplicationError
	target string
}

// NewExportError creates a new export error
func NewExportError(msg string, target string, err error) *ExportError {
	return &ExportError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: ExportFailed,
		},
		target: target,
	}
}

// Error returns the export error message
func (e *ExportError) Error() string {
	if e.target != "" {
		if e.err != nil {
			return fmt.Sprintf("%s: %s: %v", e.msg, e.target, e.err)
		}
		return fmt.Sprintf("%s: %s", e.msg, e.target)
	}
	return e.ApplicationError.Error()
}

// Target returns the export destination
func (e *ExportError) Target() string {
	return e.target
}

// New creates a new error with a message
func New(msg string) error {
	return &ApplicationError{
		msg:  msg,
		kind: Unknown,
	}
}

// Newf creates a new error with a formatted message
func Newf(format string, args ...interface{}) error {
	return &ApplicationError{
		msg:  fmt.Sprintf(format, args...),
		kind: Unknown,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return &ApplicationError{
		msg:  msg,
		err:  err,
		kind: Unknown,
	}
}

// Wrapf wraps an existing error with additional formatted context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &ApplicationError{
		msg:  fmt.Sprintf(format, args...),
		err:  err,
		kind: Unknown,
	}
}

// KindOf returns the kind of the first kinded error in err's chain.
func KindOf(err error) ErrorKind {
	var kinded interface{ Kind() ErrorKind }
	if errors.As(err, &kinded) {
		return kinded.Kind()
	}
	return Unknown
}

// IsFileNotFound checks if the error is a file not found error
func IsFileNotFound(err error) bool {
	var fileErr *FileError
	if errors.As(err, &fileErr) {
		return fileErr.Kind() == FileNotFound
	}
	return false
}

// IsInvalidConfig checks if the error is an invalid configuration error
func IsInvalidConfig(err error) bool {
	var configErr *ConfigError
	if errors.As(err, &configErr) {
		return configErr.Kind() == InvalidConfig
	}
	return false
}

// IsFetchFailed checks if the error came from retrieving the mirror status
func IsFetchFailed(err error) bool {
	var fetchErr *FetchError
	if errors.As(err, &fetchErr) {
		return fetchErr.Kind() == FetchFailed
	}
	return false
}

// IsDecodeFailed checks if the mirror status could not be parsed
func IsDecodeFailed(err error) bool {
	var fetchErr *FetchError
	if errors.As(err, &fetchErr) {
		return fetchErr.Kind() == DecodeFailed
	}
	return false
}

// IsExportError checks if the error is an export error
func IsExportError(err error) bool {
	var exportErr *ExportError
	return errors.As(err, &exportErr)
}
