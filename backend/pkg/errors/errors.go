package errors

import (
	"errors"
	"fmt"
	"time"
)

// ErrorType represents the category of error
type ErrorType string

const (
	// ErrorTypeOntology represents failures reading or parsing the ontology document
	ErrorTypeOntology ErrorType = "ontology"
	// ErrorTypeKnowledge represents knowledge base query errors
	ErrorTypeKnowledge ErrorType = "knowledge"
	// ErrorTypeInput represents rejected user input
	ErrorTypeInput ErrorType = "input"
	// ErrorTypeGraph represents graph database errors
	ErrorTypeGraph ErrorType = "graph"
	// ErrorTypeConfig represents configuration errors
	ErrorTypeConfig ErrorType = "config"
)

// BaseError is the base error type with common fields
type BaseError struct {
	Type      ErrorType
	Message   string
	Timestamp time.Time
	Err       error // Wrapped error
}

// Error implements the error interface
func (e *BaseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap returns the wrapped error for error unwrapping
func (e *BaseError) Unwrap() error {
	return e.Err
}

// Kind returns the error category
func (e *BaseError) Kind() ErrorType {
	return e.Type
}

// NewBaseError creates a new base error
func NewBaseError(errType ErrorType, message string, err error) *BaseError {
	return &BaseError{
		Type:      errType,
		Message:   message,
		Timestamp: time.Now(),
		Err:       err,
	}
}

// Ontology Errors

// ErrOntologyAccess is returned when the ontology document cannot be read
// (missing file, permissions). The OS error is wrapped, so
// errors.Is(err, fs.ErrNotExist) keeps working.
type ErrOntologyAccess struct {
	*BaseError
	Path string
}

func NewOntologyAccess(path string, err error) *ErrOntologyAccess {
	return &ErrOntologyAccess{
		BaseError: NewBaseError(ErrorTypeOntology, fmt.Sprintf("cannot read ontology: %s", path), err),
		Path:      path,
	}
}

// ErrOntologyFormat is returned when the document is not well-formed markup
type ErrOntologyFormat struct {
	*BaseError
	Path string
}

func NewOntologyFormat(path string, err error) *ErrOntologyFormat {
	return &ErrOntologyFormat{
		BaseError: NewBaseError(ErrorTypeOntology, fmt.Sprintf("malformed ontology: %s", path), err),
		Path:      path,
	}
}

// Knowledge Errors

// ErrGameNotFound is returned when a query names a game id that is not in the knowledge base
type ErrGameNotFound struct {
	*BaseError
	GameID string
}

func NewGameNotFound(gameID string) *ErrGameNotFound {
	return &ErrGameNotFound{
		BaseError: NewBaseError(ErrorTypeKnowledge, fmt.Sprintf("game not found: %s", gameID), nil),
		GameID:    gameID,
	}
}

// ErrInvalidComplexity is returned when a complexity level is not light, medium or heavy
type ErrInvalidComplexity struct {
	*BaseError
	Level string
}

func NewInvalidComplexity(level string) *ErrInvalidComplexity {
	return &ErrInvalidComplexity{
		BaseError: NewBaseError(ErrorTypeKnowledge, fmt.Sprintf("invalid complexity level: %q", level), nil),
		Level:     level,
	}
}

// Input Errors

// ErrInputInvalid is returned when user input fails validation.
// Reason is suitable for showing to the user.
type ErrInputInvalid struct {
	*BaseError
	Reason string
}

func NewInputInvalid(reason string) *ErrInputInvalid {
	return &ErrInputInvalid{
		BaseError: NewBaseError(ErrorTypeInput, reason, nil),
		Reason:    reason,
	}
}

// Graph Errors

// ErrGraphConnectionFailed is returned when Neo4j connection fails
type ErrGraphConnectionFailed struct {
	*BaseError
	URI string
}

func NewGraphConnectionFailed(uri string, err error) *ErrGraphConnectionFailed {
	return &ErrGraphConnectionFailed{
		BaseError: NewBaseError(ErrorTypeGraph, fmt.Sprintf("failed to connect to Neo4j: %s", uri), err),
		URI:       uri,
	}
}

// ErrGraphQueryFailed is returned when a graph query fails
type ErrGraphQueryFailed struct {
	*BaseError
	Operation string
}

func NewGraphQueryFailed(operation string, err error) *ErrGraphQueryFailed {
	return &ErrGraphQueryFailed{
		BaseError: NewBaseError(ErrorTypeGraph, fmt.Sprintf("query failed: %s", operation), err),
		Operation: operation,
	}
}

// Config Errors

// ErrConfigValidationFailed is returned when configuration validation fails
type ErrConfigValidationFailed struct {
	*BaseError
	Field  string
	Reason string
}

func NewConfigValidationFailed(field, reason string) *ErrConfigValidationFailed {
	return &ErrConfigValidationFailed{
		BaseError: NewBaseError(ErrorTypeConfig, fmt.Sprintf("config validation failed: %s - %s", field, reason), nil),
		Field:     field,
		Reason:    reason,
	}
}

// ErrConfigMissingRequired is returned when a required config value is missing
type ErrConfigMissingRequired struct {
	*BaseError
	Field string
}

func NewConfigMissingRequired(field string) *ErrConfigMissingRequired {
	return &ErrConfigMissingRequired{
		BaseError: NewBaseError(ErrorTypeConfig, fmt.Sprintf("missing required config: %s", field), nil),
		Field:     field,
	}
}

// Helper functions

// IsErrorType reports whether any error in err's chain carries errType.
// Typed errors embed *BaseError, so they expose Kind through promotion.
func IsErrorType(err error, errType ErrorType) bool {
	for err != nil {
		if k, ok := err.(interface{ Kind() ErrorType }); ok && k.Kind() == errType {
			return true
		}
		err = errors.Unwrap(err)
	}
	return false
}

// IsNotFound reports whether err is, or wraps, an ErrGameNotFound.
func IsNotFound(err error) bool {
	var nf *ErrGameNotFound
	return errors.As(err, &nf)
}

// IsRetryable checks if an error is retryable. Only graph connectivity
// problems are; everything else is deterministic.
func IsRetryable(err error) bool {
	var connErr *ErrGraphConnectionFailed
	return errors.As(err, &connErr)
}
