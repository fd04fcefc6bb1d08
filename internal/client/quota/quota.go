// Package quota implements the free-tier scan entitlement state machine.
//
// A profile is in one of three states: under the free limit, at the free
// limit, or premium. Reaching the limit is not a fault; it is an expected
// flow branch that the UI answers with an upgrade prompt. Premium is
// one-directional here — downgrade and expiry belong to the external billing
// system.
package quota

import "github.com/drfoodie/nutritrack/internal/client/models"

// FreeScanLimit is the number of AI scans a free-tier profile gets.
const FreeScanLimit = 3

// State is the entitlement state derived from a profile.
type State string

const (
	FreeUnderLimit State = "free_under_limit"
	FreeAtLimit    State = "free_at_limit"
	Premium        State = "premium"
)

// StateOf derives the entitlement state from the profile's premium flag and
// scan counter.
func StateOf(p models.Profile) State {
	switch {
	case p.IsPremium:
		return Premium
	case p.ScanCount >= FreeScanLimit:
		return FreeAtLimit
	default:
		return FreeUnderLimit
	}
}

// CanScan reports whether a new AI-backed meal scan is permitted. Premium
// profiles always pass regardless of the counter.
func CanScan(p models.Profile) bool {
	return StateOf(p) != FreeAtLimit
}
