package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

const (
	RoleAdmin = "admin"
	RoleDonor = "donor"

	DateLayout = "2006-01-02"
)

var BloodGroups = []string{"A+", "A-", "B+", "B-", "AB+", "AB-", "O+", "O-"}

func IsBloodGroup(s string) bool {
	for _, g := range BloodGroups {
		if g == s {
			return true
		}
	}
	return false
}

var (
	MessageFailedProcessRequest = "failed to process request"
	MessageFailedBodyRequest    = "failed to parse request body"
	MessageFailedGetToken       = "failed to get token"
	MessageFailedTokenInvalid   = "failed to token invalid"
	MessageSuccessGetBloodGroup = "blood groups retrieved successfully"
)

// Error kinds. Every error returned by a service unwraps to exactly one of these.
var (
	ErrValidation       = errors.New("validation error")
	ErrPermissionDenied = errors.New("permission denied")
	ErrNotFound         = errors.New("not found")
	ErrConflict         = errors.New("conflict")
	ErrInvalidState     = errors.New("invalid state")
	ErrUnauthenticated  = errors.New("unauthenticated")
)

// Error is a concrete domain failure tagged with its kind.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func NewError(kind error, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// NewValidationError wraps a validator or parse failure.
func NewValidationError(err error) error {
	if err == nil {
		return nil
	}
	var de *Error
	if errors.As(err, &de) && errors.Is(de.Kind, ErrValidation) {
		return de
	}
	return &Error{Kind: ErrValidation, Message: err.Error()}
}

var (
	ErrParseUUID      = NewError(ErrValidation, "failed to parse UUID")
	ErrInvalidDate    = NewError(ErrValidation, "invalid date, expected YYYY-MM-DD")
	ErrUserNotAllowed = NewError(ErrPermissionDenied, "user not allowed")
	ErrNotLoggedIn    = NewError(ErrUnauthenticated, "authentication required")
	ErrTokenNotFound  = NewError(ErrUnauthenticated, "failed to token not found")
	ErrTokenExpired   = NewError(ErrUnauthenticated, "token expired")
	ErrTokenInvalid   = NewError(ErrUnauthenticated, "token invalid")
)

// Principal is the authenticated caller of an operation.
type Principal struct {
	UserID string
	Role   string
}

func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

func (p Principal) IsDonor() bool {
	return p.Role == RoleDonor
}

func (p Principal) Authenticated() bool {
	return p.UserID != "" && (p.Role == RoleAdmin || p.Role == RoleDonor)
}

func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

// ParseID parses a path or body identifier.
func ParseID(s string) (uuid.UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, ErrParseUUID
	}
	return id, nil
}
