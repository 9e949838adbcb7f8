package domain

import "fmt"

type DomainError struct {
	message string
}

func NewDomainError(format string, args ...interface{}) *DomainError {
	return &DomainError{message: fmt.Sprintf(format, args...)}
}

func (e *DomainError) Error() string {
	return e.message
}

var (
	ErrInvalidAccount = NewDomainError("account needs both an alias and an IBAN")
	ErrInvalidAmount  = NewDomainError("amount must be a positive decimal number")
	ErrCorruptStore   = NewDomainError("accounts file is not a valid JSON array")
	ErrEncoding       = NewDomainError("payment could not be encoded")
)
