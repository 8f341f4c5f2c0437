package models

// UserRecord is the canonical user shape persisted in the users collection.
// Points only increase; badges form a set of badge ids.
type UserRecord struct {
	ID       string   `json:"id"`
	Username string   `json:"username"`
	Email    string   `json:"email,omitempty"`
	Avatar   string   `json:"avatar,omitempty"`
	Bio      string   `json:"bio,omitempty"`
	Points   int      `json:"points"`
	Badges   []string `json:"badges"`
	Mock     bool     `json:"mock,omitempty"`
}

// HasBadge reports whether the user already holds the given badge.
func (u *UserRecord) HasBadge(badgeID string) bool {
	for _, b := range u.Badges {
		if b == badgeID {
			return true
		}
	}
	return false
}

// Merge overlays the non-zero profile fields of other onto u, the way a
// repeat sign-in refreshes an existing user without resetting points/badges.
func (u *UserRecord) Merge(other UserRecord) {
	if other.Username != "" {
		u.Username = other.Username
	}
	if other.Email != "" {
		u.Email = other.Email
	}
	if other.Avatar != "" {
		u.Avatar = other.Avatar
	}
	if other.Bio != "" {
		u.Bio = other.Bio
	}
}
