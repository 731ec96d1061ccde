package shared

import "fmt"

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNotFound            = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists       = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput        = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrConcurrencyConflict = NewDomainError("CONCURRENCY_CONFLICT", "Resource was modified by another process")
	ErrForbidden           = NewDomainError("FORBIDDEN", "Access to this resource is forbidden")
	ErrInvalidState        = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
	ErrInsufficientStock   = NewDomainError("INSUFFICIENT_STOCK", "Insufficient stock available")
	ErrWarehouseInactive   = NewDomainError("WAREHOUSE_INACTIVE", "Warehouse is inactive, stock mutations are not allowed")
)

// QuotaExceededError is returned when a tenant attempts to exceed a
// subscription plan limit. It carries the current usage and the limit so
// callers can render messages like "3/3 slots used".
type QuotaExceededError struct {
	Resource string
	Used     int64
	Limit    int64
}

// Error implements the error interface
func (e *QuotaExceededError) Error() string {
	return fmt.Sprintf("%s quota exceeded: %d/%d slots used", e.Resource, e.Used, e.Limit)
}

// NewQuotaExceededError creates a new quota exceeded error
func NewQuotaExceededError(resource string, used, limit int64) *QuotaExceededError {
	return &QuotaExceededError{Resource: resource, Used: used, Limit: limit}
}
