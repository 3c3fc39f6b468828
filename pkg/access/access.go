// Package access holds the authorization policies shared by every service.
// A policy is checked before any other validation and never mutates state.
package access

import (
	"bloodbank/domain"
)

// Policy reports whether the principal may proceed.
type Policy func(p domain.Principal) error

var (
	// Authenticated admits any known admin or donor.
	Authenticated Policy = func(p domain.Principal) error {
		if p.UserID == "" {
			return domain.ErrNotLoggedIn
		}
		if !p.Authenticated() {
			return domain.ErrUserNotAllowed
		}
		return nil
	}

	Admin Policy = func(p domain.Principal) error {
		if p.UserID == "" {
			return domain.ErrNotLoggedIn
		}
		if !p.IsAdmin() {
			return domain.ErrUserNotAllowed
		}
		return nil
	}

	Donor Policy = func(p domain.Principal) error {
		if p.UserID == "" {
			return domain.ErrNotLoggedIn
		}
		if !p.IsDonor() {
			return domain.ErrUserNotAllowed
		}
		return nil
	}
)

// OwnerOrAdmin admits admins and the principal whose id equals ownerID.
func OwnerOrAdmin(ownerID string, denied error) Policy {
	return func(p domain.Principal) error {
		if err := Authenticated(p); err != nil {
			return err
		}
		if p.IsAdmin() || p.UserID == ownerID {
			return nil
		}
		return denied
	}
}

// Check runs the policies in order and returns the first failure.
func Check(p domain.Principal, policies ...Policy) error {
	for _, policy := range policies {
		if err := policy(p); err != nil {
			return err
		}
	}
	return nil
}

// Guard runs fn only when every policy admits the principal.
func Guard[T any](p domain.Principal, policy Policy, fn func() (T, error)) (T, error) {
	if err := Check(p, policy); err != nil {
		var zero T
		return zero, err
	}
	return fn()
}
