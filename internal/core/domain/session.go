package domain

import "time"

// Session is the identity snapshot bound to a session handle. It is captured
// once at login or registration and is never refreshed from the directory.
type Session struct {
	ID        string    `json:"-"`
	Username  string    `json:"username"`
	Role      Role      `json:"role"`
	Tags      []string  `json:"tags"`
	CreatedAt time.Time `json:"created_at"`
}

// NewSession snapshots u.
func NewSession(id string, u *User, now time.Time) *Session {
	return &Session{
		ID:        id,
		Username:  u.Username,
		Role:      u.Role,
		Tags:      u.Tags.Sorted(),
		CreatedAt: now,
	}
}

// AuthPolicy selects where an authorization check reads the caller's role.
type AuthPolicy int

const (
	// TrustSnapshot uses the role captured in the session, which may be stale.
	TrustSnapshot AuthPolicy = iota
	// RevalidateAgainstDirectory reloads the caller's record on every check.
	RevalidateAgainstDirectory
)

func (p AuthPolicy) String() string {
	switch p {
	case TrustSnapshot:
		return "trust_snapshot"
	case RevalidateAgainstDirectory:
		return "revalidate"
	default:
		return "unknown"
	}
}
