package service

import (
	"fmt"

	"barber-pos-api/pkg/validator"
)

// ErrorKind classifies failures so the HTTP layer can pick a status code.
type ErrorKind string

const (
	KindValidation ErrorKind = "validation"
	KindConflict   ErrorKind = "conflict"
	KindNotFound   ErrorKind = "not_found"
	KindInUse      ErrorKind = "in_use"
	KindAuth       ErrorKind = "unauthorized"
	KindInternal   ErrorKind = "internal"
)

// Error is a classified service failure. Message is safe to show to clients.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil && e.Kind == KindInternal {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches on kind; a target carrying a message must also match the message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Message == "" || t.Message == e.Message)
}

func newErr(kind ErrorKind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

// Kind sentinels, for errors.Is(err, service.ErrConflict) style checks.
var (
	ErrValidation = &Error{Kind: KindValidation}
	ErrConflict   = &Error{Kind: KindConflict}
	ErrNotFound   = &Error{Kind: KindNotFound}
	ErrInUse      = &Error{Kind: KindInUse}
	ErrAuth       = &Error{Kind: KindAuth}
	ErrInternal   = &Error{Kind: KindInternal}
)

var (
	ErrDuplicateInvoice   = newErr(KindConflict, "Invoice number already exists")
	ErrRecordingFailed    = newErr(KindInternal, "Failed to record transaction")
	ErrImportInconsistent = newErr(KindValidation, "Import document is inconsistent: duplicate or dangling references")

	ErrCategoryExists   = newErr(KindConflict, "Category name already exists")
	ErrBarcodeExists    = newErr(KindConflict, "Barcode already exists")
	ErrPhoneExists      = newErr(KindConflict, "Phone number already exists")
	ErrUserExists       = newErr(KindConflict, "Username or email already exists")
	ErrSetupDone        = newErr(KindConflict, "Setup already completed")
	ErrCategoryNotFound = newErr(KindNotFound, "Category not found")
	ErrProductNotFound  = newErr(KindNotFound, "Product not found")
	ErrEmployeeNotFound = newErr(KindNotFound, "Employee not found")
	ErrUserNotFound     = newErr(KindNotFound, "User not found")
	ErrSaleNotFound     = newErr(KindNotFound, "Sale not found")
	ErrPurchaseNotFound = newErr(KindNotFound, "Purchase invoice not found")

	ErrCategoryInUse = newErr(KindInUse, "Cannot delete category. It is being used by products.")
	ErrEmployeeInUse = newErr(KindInUse, "Cannot delete employee. They have sales records.")
	ErrProductInUse  = newErr(KindInUse, "Cannot delete product. It has been used in sales or purchases.")

	ErrInvalidCredentials = newErr(KindAuth, "Invalid username or password")
	ErrUserInactive       = newErr(KindAuth, "User account is inactive")
)

func validationErr(msg string) *Error {
	return newErr(KindValidation, msg)
}

func internalErr(msg string, err error) *Error {
	return &Error{Kind: KindInternal, Message: msg, Err: err}
}

// validate runs struct tags and reports the first failure the usual way.
func validate(req interface{}) error {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return validationErr(fmt.Sprintf("Validation failed: Field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag))
	}
	return nil
}
