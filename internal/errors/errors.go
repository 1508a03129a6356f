// Package errors provides standardized error handling for speedread.
// It defines the error kinds raised while ingesting dropped documents and
// loading configuration, plus helpers for consistent creation and wrapping.
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

// ErrorKind represents the kind of error
type ErrorKind int

// Error kinds
const (
	Unknown ErrorKind = iota
	// File error kinds
	FileNotFound
	FileAccessDenied
	// Document error kinds
	UnsupportedMime
	DecodeFailed
	EmptyDocument
	// Config error kinds
	InvalidConfig
	ConfigNotFound
)

var kindNames = map[ErrorKind]string{
	Unknown:          "unknown",
	FileNotFound:     "file_not_found",
	FileAccessDenied: "file_access_denied",
	UnsupportedMime:  "unsupported_mime",
	DecodeFailed:     "decode_failed",
	EmptyDocument:    "empty_document",
	InvalidConfig:    "invalid_config",
	ConfigNotFound:   "config_not_found",
}

// String returns the snake_case name of the kind
func (k ErrorKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Sentinels for errors.Is checks. Matching is by kind, so any error of the
// same kind satisfies Is regardless of message or wrapped cause.
var (
	ErrFileNotFound    = NewFileError("file not found", "", FileNotFound, nil)
	ErrFileAccess      = NewFileError("file access denied", "", FileAccessDenied, nil)
	ErrUnsupportedMime = NewDocumentError("unsupported media type", "", UnsupportedMime, nil)
	ErrDecode          = NewDocumentError("document is not valid UTF-8", "", DecodeFailed, nil)
	ErrEmptyDocument   = NewDocumentError("document contains no words", "", EmptyDocument, nil)
	ErrInvalidConfig   = NewConfigError("invalid configuration", "", InvalidConfig, nil)
)

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

type kinded interface {
	Kind() ErrorKind
}

// Is matches any target of the same non-Unknown kind.
func (e *ApplicationError) Is(target error) bool {
	t, ok := target.(kinded)
	if !ok {
		return false
	}
	return e.kind != Unknown && t.Kind() == e.kind
}

// FileError represents errors related to reading dropped files
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

// DocumentError represents a dropped document that could not become a
// word sequence.
type DocumentError struct {
	ApplicationError
	document string
}

// NewDocumentError creates a new document error
func NewDocumentError(msg string, document string, kind ErrorKind, err error) *DocumentError {
	return &DocumentError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: kind,
		},
		document: document,
	}
}

// Error returns the document error message
func (e *DocumentError) Error() string {
	if e.document != "" {
		if e.err != nil {
			return fmt.Sprintf("%s: %s: %v", e.msg, e.document, e.err)
		}
		return fmt.Sprintf("%s: %s", e.msg, e.document)
	}
	return e.ApplicationError.Error()
}

// Document returns the name of the offending document
func (e *DocumentError) Document() string {
	return e.document
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

// Wrap wraps an existing error with additional context. The wrapper keeps
// the kind of err.
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return &ApplicationError{
		msg:  msg,
		err:  err,
		kind: KindOf(err),
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
		kind: KindOf(err),
	}
}

// KindOf returns the kind of the first typed error in err's chain.
func KindOf(err error) ErrorKind {
	var k kinded
	if errors.As(err, &k) {
		return k.Kind()
	}
	return Unknown
}

// IsUnsupportedMime checks if the error is a rejected drop
func IsUnsupportedMime(err error) bool {
	return errors.Is(err, ErrUnsupportedMime)
}

// IsDecodeError checks if the error is a UTF-8 decoding failure
func IsDecodeError(err error) bool {
	return errors.Is(err, ErrDecode)
}

// IsEmptyDocument checks if the error reports a document without words
func IsEmptyDocument(err error) bool {
	return errors.Is(err, ErrEmptyDocument)
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
