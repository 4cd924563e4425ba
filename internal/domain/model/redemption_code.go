package model

import (
	"strings"
	"time"

	"vendor-pricelist-platform/internal/domain"
)

type CodeStatus string

const (
	CodeStatusIdle    CodeStatus = "idle"
	CodeStatusUsed    CodeStatus = "used"
	CodeStatusExpired CodeStatus = "expired"
)

type CodeDuration string

const (
	CodeDurationDaily   CodeDuration = "daily"
	CodeDurationWeekly  CodeDuration = "weekly"
	CodeDurationMonthly CodeDuration = "monthly"
)

// RedemptionCode is a single-use code that extends a user's access window
// by a fixed number of days. Codes are created by the superadmin tooling
// and flip exactly once, from idle to used.
type RedemptionCode struct {
	Code       string
	Duration   CodeDuration
	Status     CodeStatus
	RedeemedBy *string    // user id once used
	UsedAt     *time.Time // nil until used
	CreatedAt  time.Time
}

// NormalizeCode canonicalizes operator input: trimmed, upper-cased.
func NormalizeCode(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}

// Days maps the code's duration class to a whole-day count.
// An unrecognized class is fatal for the redemption, never retried.
func (c *RedemptionCode) Days() (int, error) {
	switch c.Duration {
	case CodeDurationDaily:
		return 1, nil
	case CodeDurationWeekly:
		return 7, nil
	case CodeDurationMonthly:
		return 30, nil
	default:
		return 0, domain.ErrInvalidData
	}
}

// MarkUsed transitions the code from idle to used.
func (c *RedemptionCode) MarkUsed(userID string, at time.Time) error {
	if c.Status != CodeStatusIdle {
		return domain.ErrCodeAlreadyUsed
	}
	c.Status = CodeStatusUsed
	c.RedeemedBy = &userID
	c.UsedAt = &at
	return nil
}
