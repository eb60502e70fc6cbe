package service

import "context"

// Entitlements supplies the "unlocked" signal from the commerce collaborator.
// It gates how many trips and users may be created on the free tier; it never
// participates in the ordering or relational core.
type Entitlements interface {
	// Unlocked reports whether the premium entitlement is active.
	Unlocked(ctx context.Context) bool
}

// StaticEntitlements is an Entitlements with a fixed answer, configured at
// startup. Stands in until a real commerce integration is wired.
type StaticEntitlements struct {
	Premium bool
}

// Unlocked implements Entitlements.
func (s StaticEntitlements) Unlocked(context.Context) bool {
	return s.Premium
}
