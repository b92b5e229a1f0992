package appErrors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
)

// ErrorCode identifies an application error class.
type ErrorCode string

// AppError is the application-level error carried across service boundaries.
type AppError struct {
	Code     ErrorCode   `json:"code"`
	Message  string      `json:"message"`
	Details  interface{} `json:"details,omitempty"`
	Err      error       `json:"-"`
	HTTPCode int         `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code ErrorCode, message string, httpCode int) *AppError {
	return &AppError{
		Code:     code,
		Message:  message,
		HTTPCode: httpCode,
	}
}

func Wrap(err error, code ErrorCode, message string, httpCode int) *AppError {
	return &AppError{
		Code:     code,
		Message:  message,
		Err:      err,
		HTTPCode: httpCode,
	}
}

func (e *AppError) WithDetails(details interface{}) *AppError {
	return &AppError{
		Code:     e.Code,
		Message:  e.Message,
		Details:  details,
		Err:      e.Err,
		HTTPCode: e.HTTPCode,
	}
}

func (e *AppError) MarshalJSON() ([]byte, error) {
	type alias struct {
		Code    ErrorCode   `json:"code"`
		Message string      `json:"message"`
		Details interface{} `json:"details,omitempty"`
	}
	return json.Marshal(&alias{
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
	})
}

// Is wraps the standard errors.Is.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As wraps the standard errors.As.
func As(err error, target interface{}) bool {
	return stderrors.As(err, target)
}

// Predeclared errors.
var (
	// Authentication
	ErrInvalidCredentials = New(CodeInvalidCredentials, "Invalid email or password", http.StatusUnauthorized)
	ErrUnauthorized       = New(CodeUnauthorized, "Authentication required", http.StatusUnauthorized)
	ErrForbidden          = New(CodeForbidden, "Access denied", http.StatusForbidden)
	ErrInvalidToken       = New(CodeInvalidToken, "Invalid or expired token", http.StatusUnauthorized)

	// Resources
	ErrUserNotFound         = New(CodeUserNotFound, "User not found", http.StatusNotFound)
	ErrPairScoreNotFound    = New(CodePairScoreNotFound, "Pair score not found", http.StatusNotFound)
	ErrProposalNotFound     = New(CodeProposalNotFound, "Proposal not found", http.StatusNotFound)
	ErrMatchNotFound        = New(CodeMatchNotFound, "Match not found", http.StatusNotFound)
	ErrOrganizationNotFound = New(CodeOrganizationNotFound, "Organization not found", http.StatusNotFound)

	// Validation
	ErrValidationFailed = New(CodeValidationFailed, "Validation failed", http.StatusBadRequest)
	ErrSelfPairing      = New(CodeSelfPairing, "Cannot pair a user with themselves", http.StatusBadRequest)
	ErrInvalidUserRole  = New(CodeInvalidUserRole, "Pair must consist of a seeker and a supporter", http.StatusBadRequest)

	// Matching business logic
	ErrDuplicateProposal  = New(CodeDuplicateProposal, "An open proposal already exists for this pair", http.StatusConflict)
	ErrDuplicateMatch     = New(CodeDuplicateMatch, "An active match already exists for this pair", http.StatusConflict)
	ErrProposalClosed     = New(CodeProposalClosed, "Proposal is already closed", http.StatusBadRequest)
	ErrProposalExpired    = New(CodeProposalExpired, "Proposal has expired", http.StatusBadRequest)
	ErrPairNotMatchable   = New(CodePairNotMatchable, "Pair does not pass the matchability constraints", http.StatusBadRequest)
	ErrUserAlreadyMatched = New(CodeUserAlreadyMatched, "User is already in an active match", http.StatusConflict)
	ErrUserInOpenProposal = New(CodeUserInOpenProposal, "User is already in an open proposal", http.StatusConflict)
	ErrNotParticipant     = New(CodeNotParticipant, "User is not a participant of this pairing", http.StatusForbidden)
	ErrWrongConfirmRole   = New(CodeWrongConfirmRole, "Only the seeker side may confirm a proposal", http.StatusForbidden)
	ErrSupportMatchReport = New(CodeSupportMatchReport, "Support matches cannot be self-reported", http.StatusBadRequest)
	ErrMatchInactive      = New(CodeMatchInactive, "Match is already inactive", http.StatusBadRequest)
)

func ValidationError(details interface{}) *AppError {
	return ErrValidationFailed.WithDetails(details)
}

func InternalError(err error) *AppError {
	return Wrap(err, CodeInternalError, "Internal server error", http.StatusInternalServerError)
}

// ClassifierConflict marks a journey-classification consistency violation.
// This is a programmer error, never routine bad input.
func ClassifierConflict(err error) *AppError {
	return Wrap(err, CodeClassifierConflict, "Journey classifier consistency violation", http.StatusInternalServerError)
}
