package usecase

import (
	"fmt"

	"vendor-pricelist-platform/internal/domain"
)

// invalid wraps domain.ErrInvalidInput with a user-facing message.
func invalid(msg string) error {
	return fmt.Errorf("%w: %s", domain.ErrInvalidInput, msg)
}
