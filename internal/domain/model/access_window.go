package model

import "time"

// AccessWindow is the per-user record of how long paid access remains
// valid. The expiry is monotonically non-decreasing: every successful
// redemption extends from the later of "now" and the current expiry.
type AccessWindow struct {
	UserID         string
	ExpiresAt      time.Time
	LastExtendedAt time.Time
}

// ActiveAt reports whether the window still covers the given instant.
func (w *AccessWindow) ActiveAt(t time.Time) bool {
	return w != nil && w.ExpiresAt.After(t)
}

// ExtendBy advances the expiry by the given day count, anchored at the
// later of now and the existing expiry. A nil receiver is treated as a
// first redemption anchored at now; the extended window is returned.
func (w *AccessWindow) ExtendBy(userID string, days int, now time.Time) *AccessWindow {
	base := now
	if w != nil && w.ExpiresAt.After(now) {
		base = w.ExpiresAt
	}
	return &AccessWindow{
		UserID:         userID,
		ExpiresAt:      base.Add(time.Duration(days) * 24 * time.Hour),
		LastExtendedAt: now,
	}
}
