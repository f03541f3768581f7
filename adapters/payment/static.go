package payment

import (
	"context"

	"github.com/muadel/muadel/ports"
)

// Static answers every entitlement check with a fixed value. Used for
// local development and tests.
type Static struct {
	Privileged bool
}

// IsPrivileged returns the configured answer.
func (s Static) IsPrivileged(ctx context.Context, userID string) (bool, error) {
	return s.Privileged, nil
}

// Noop is the provider when billing is disabled: nobody is privileged.
type Noop struct{}

// IsPrivileged always returns false.
func (Noop) IsPrivileged(ctx context.Context, userID string) (bool, error) {
	return false, nil
}

var (
	_ ports.Entitlements = Static{}
	_ ports.Entitlements = Noop{}
)
