package service

import (
	"errors"
	"fmt"
	"strings"

	"rentdesk/internal/repository"

	"gorm.io/gorm"
)

var (
	ErrNotFound            = errors.New("not found")
	ErrRescheduleLimit     = errors.New("maximum number of reschedules reached")
	ErrInsufficientBalance = repository.ErrInsufficientBalance
	ErrAlreadyPaid         = errors.New("maintenance request is already paid")
	ErrVendorAssigned      = errors.New("maintenance request already has a vendor")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrEmailExists         = errors.New("email already registered")
	ErrForbidden           = errors.New("forbidden")
	ErrInvalidAmount       = errors.New("amount must be greater than zero")
	ErrSelfPayment         = errors.New("payer and payee must differ")
	ErrPaymentUnverified   = errors.New("payment could not be verified with the gateway")
	ErrInvalidPeriod       = errors.New("month must be between 1 and 12")
)

// NotFoundError names the missing entity. It matches ErrNotFound.
type NotFoundError struct {
	Entity string
}

func (e *NotFoundError) Error() string { return e.Entity + " not found" }

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

func notFound(entity string) error { return &NotFoundError{Entity: entity} }

// MissingSubcategoriesError lists subcategory ids that do not exist.
type MissingSubcategoriesError struct {
	IDs []string
}

func (e *MissingSubcategoriesError) Error() string {
	return fmt.Sprintf("subcategories not found: %s", strings.Join(e.IDs, ", "))
}

func (e *MissingSubcategoriesError) Is(target error) bool { return target == ErrNotFound }

// lookupErr converts gorm's missing-row error into a NotFoundError for entity.
func lookupErr(err error, entity string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound(entity)
	}
	return err
}

// IsDomainRule reports errors that reject a request on business grounds.
func IsDomainRule(err error) bool {
	return errors.Is(err, ErrRescheduleLimit) ||
		errors.Is(err, ErrInsufficientBalance) ||
		errors.Is(err, ErrInvalidAmount) ||
		errors.Is(err, ErrSelfPayment) ||
		errors.Is(err, ErrPaymentUnverified) ||
		errors.Is(err, ErrInvalidPeriod)
}
