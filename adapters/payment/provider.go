// Package payment provides entitlement providers. The rest of the app
// only ever sees the opaque "is this caller privileged" boolean; billing
// mechanics stay behind this package.
package payment

import (
	"fmt"

	"github.com/muadel/muadel/ports"
)

// Config selects and configures an entitlement provider.
type Config struct {
	// Mode is "stripe", "static", or "none"/"".
	Mode string

	// StripeSecretKey authenticates against Stripe when Mode is "stripe".
	StripeSecretKey string

	// StaticPrivileged is the fixed answer when Mode is "static"
	// (local development and tests).
	StaticPrivileged bool
}

// NewEntitlements creates an entitlement provider based on config.
func NewEntitlements(cfg Config) (ports.Entitlements, error) {
	switch cfg.Mode {
	case "stripe":
		if cfg.StripeSecretKey == "" {
			return nil, fmt.Errorf("stripe secret key is required")
		}
		return NewStripeEntitlements(cfg.StripeSecretKey), nil

	case "static":
		return Static{Privileged: cfg.StaticPrivileged}, nil

	case "none", "":
		return Noop{}, nil

	default:
		return nil, fmt.Errorf("unknown entitlement provider: %s", cfg.Mode)
	}
}
