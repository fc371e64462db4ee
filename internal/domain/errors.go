package domain

import (
	"slices"
	"strings"
)

// ErrorKind is the stable tag reported to callers alongside the message
type ErrorKind string

const (
	KindEmptyNewPassword  ErrorKind = "EMPTY_NEW_PASSWORD"
	KindEnvironmentLocked ErrorKind = "ENVIRONMENT_LOCKED"
	KindWrongOldPassword  ErrorKind = "WRONG_OLD_PASSWORD"
	KindDeletionDenied    ErrorKind = "DELETION_DENIED"
	KindMalformedRow      ErrorKind = "MALFORMED_ROW"
	KindNotFound          ErrorKind = "NOT_FOUND"
	KindInvalidAccount    ErrorKind = "INVALID_ACCOUNT"
	KindUnauthorized      ErrorKind = "UNAUTHORIZED"
)

// DenialReason explains why a deletion was refused
type DenialReason string

const (
	ReasonProtectedAccount DenialReason = "PROTECTED_ACCOUNT"
	ReasonSelfDeletion     DenialReason = "SELF_DELETION"
)

// Error is a recoverable, caller-facing failure.
//
// Two errors match under errors.Is when their kinds are equal and every
// reason listed on the target is also present on the error.
type Error struct {
	Kind    ErrorKind
	Reasons []DenialReason
	Message string
}

func (e *Error) Error() string {
	if len(e.Reasons) == 0 {
		return e.Message
	}
	reasons := make([]string, len(e.Reasons))
	for i, r := range e.Reasons {
		reasons[i] = string(r)
	}
	return e.Message + " (" + strings.Join(reasons, ", ") + ")"
}

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || t.Kind != e.Kind {
		return false
	}
	for _, r := range t.Reasons {
		if !slices.Contains(e.Reasons, r) {
			return false
		}
	}
	return true
}

// HasReason reports whether r is among the denial reasons
func (e *Error) HasReason(r DenialReason) bool {
	return slices.Contains(e.Reasons, r)
}

var (
	ErrEmptyNewPassword  = &Error{Kind: KindEmptyNewPassword, Message: "new password must not be blank"}
	ErrEnvironmentLocked = &Error{Kind: KindEnvironmentLocked, Message: "password changes are disabled in the demo environment"}
	ErrWrongOldPassword  = &Error{Kind: KindWrongOldPassword, Message: "old password is incorrect"}
	ErrDeletionDenied    = &Error{Kind: KindDeletionDenied, Message: "deletion denied"}
	ErrProtectedAccount  = &Error{Kind: KindDeletionDenied, Reasons: []DenialReason{ReasonProtectedAccount}, Message: "the system administrator cannot be deleted"}
	ErrSelfDeletion      = &Error{Kind: KindDeletionDenied, Reasons: []DenialReason{ReasonSelfDeletion}, Message: "the current user cannot be deleted"}
	ErrMalformedRow      = &Error{Kind: KindMalformedRow, Message: "aggregate row is malformed"}
	ErrNotFound          = &Error{Kind: KindNotFound, Message: "account not found"}
	ErrInvalidAccount    = &Error{Kind: KindInvalidAccount, Message: "account is invalid"}
	ErrUnauthorized      = &Error{Kind: KindUnauthorized, Message: "invalid credentials"}
)

// DeletionDenied builds a denial carrying every reason that applied
func DeletionDenied(reasons ...DenialReason) *Error {
	msg := ErrDeletionDenied.Message
	if len(reasons) > 0 && reasons[0] == ReasonProtectedAccount {
		msg = ErrProtectedAccount.Message
	} else if len(reasons) > 0 {
		msg = ErrSelfDeletion.Message
	}
	return &Error{Kind: KindDeletionDenied, Reasons: reasons, Message: msg}
}

// MalformedRow builds a MALFORMED_ROW error naming the offending row
func MalformedRow(detail string) *Error {
	return &Error{Kind: KindMalformedRow, Message: ErrMalformedRow.Message + ": " + detail}
}

// InvalidAccount builds an INVALID_ACCOUNT error with detail
func InvalidAccount(detail string) *Error {
	return &Error{Kind: KindInvalidAccount, Message: detail}
}
