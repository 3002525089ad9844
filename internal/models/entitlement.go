package models

// Reason codes returned with entitlement denials. The HTTP layer renders
// them as a 200 payload so the client can show upgrade prompts instead of
// error pages.
type DenyReason string

const (
	ReasonNotLoggedIn      DenyReason = "not_logged_in"
	ReasonEmailNotVerified DenyReason = "email_not_verified"
	ReasonTierConfigError  DenyReason = "tier_config_error"
	ReasonLimitReached     DenyReason = "limit_reached"
	ReasonUpgradeRequired  DenyReason = "upgrade_required"
	ReasonNotOwner         DenyReason = "not_owner"
)

// Decision is the closed result type of every entitlement check. Count
// fields are only set for count-gated denials so callers can render
// "X/Y used".
type Decision struct {
	Allowed      bool       `json:"allowed"`
	Reason       DenyReason `json:"reason,omitempty"`
	CurrentCount int        `json:"current_count,omitempty"`
	MaxAllowed   int        `json:"max_allowed,omitempty"`
}

func Allow() Decision {
	return Decision{Allowed: true}
}

func Deny(reason DenyReason) Decision {
	return Decision{Allowed: false, Reason: reason}
}

func DenyWithCounts(reason DenyReason, current, max int) Decision {
	return Decision{Allowed: false, Reason: reason, CurrentCount: current, MaxAllowed: max}
}

// Limit is the in-process form of a tier's numeric limit. The -1 sentinel
// from the tier table is translated here once so business logic never
// re-checks the magic number.
type Limit struct {
	Unlimited bool
	Max       int
}

func LimitFromMax(max int) Limit {
	if max == UnlimitedSentinel {
		return Limit{Unlimited: true}
	}
	return Limit{Max: max}
}

// Allows reports whether one more resource fits under the limit given the
// current count.
func (l Limit) Allows(current int) bool {
	return l.Unlimited || current < l.Max
}
