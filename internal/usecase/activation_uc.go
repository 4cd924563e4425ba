package usecase

import (
	"context"
	"crypto/rand"
	"errors"
	"io"
	"time"

	"github.com/jackc/pgx/v4"

	"vendor-pricelist-platform/internal/domain"
	"vendor-pricelist-platform/internal/domain/model"
	"vendor-pricelist-platform/internal/domain/ports/repository"
	"vendor-pricelist-platform/internal/infra/metrics"
)

// ActivationUseCase redeems single-use codes and manages access windows.
type ActivationUseCase struct {
	codes   repository.RedemptionCodeRepository
	windows repository.AccessWindowRepository
	txm     repository.TransactionManager
	now     func() time.Time
}

func NewActivationUseCase(
	codes repository.RedemptionCodeRepository,
	windows repository.AccessWindowRepository,
	txm repository.TransactionManager,
) *ActivationUseCase {
	return &ActivationUseCase{codes: codes, windows: windows, txm: txm, now: time.Now}
}

// Redeem validates a code for the given user and extends their access
// window. Marking the code used and extending the window happen in one
// transaction: a failure rolls both back, so a code can never be consumed
// without the window moving.
func (uc *ActivationUseCase) Redeem(ctx context.Context, userID, rawCode string) (*model.AccessWindow, error) {
	if userID == "" {
		return nil, domain.ErrUnauthenticated
	}
	code := model.NormalizeCode(rawCode)
	if code == "" {
		return nil, domain.ErrInvalidInput
	}

	var next *model.AccessWindow
	err := uc.txm.WithTx(ctx, pgx.TxOptions{}, func(ctx context.Context, tx repository.Tx) error {
		rc, err := uc.codes.FindByCode(ctx, tx, code)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return domain.ErrCodeNotFound
			}
			return err
		}
		days, err := rc.Days()
		if err != nil {
			return err
		}

		now := uc.now()
		if err := rc.MarkUsed(userID, now); err != nil {
			return err
		}

		cur, err := uc.windows.FindByUser(ctx, tx, userID)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return err
		}
		next = cur.ExtendBy(userID, days, now)

		if err := uc.codes.Save(ctx, tx, rc); err != nil {
			return err
		}
		return uc.windows.Upsert(ctx, tx, next)
	})
	if err != nil {
		metrics.IncRedemption(redemptionOutcome(err))
		return nil, err
	}
	metrics.IncRedemption("success")
	return next, nil
}

func redemptionOutcome(err error) string {
	switch {
	case errors.Is(err, domain.ErrCodeNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrCodeAlreadyUsed):
		return "already_used"
	case errors.Is(err, domain.ErrInvalidData):
		return "invalid_data"
	default:
		return "error"
	}
}

// Window returns the caller's current access window.
func (uc *ActivationUseCase) Window(ctx context.Context, userID string) (*model.AccessWindow, error) {
	if userID == "" {
		return nil, domain.ErrUnauthenticated
	}
	return uc.windows.FindByUser(ctx, nil, userID)
}

const codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
const codeLength = 16

// generateCode creates a secure random redemption code.
func generateCode() (string, error) {
	buf := make([]byte, codeLength)
	if _, err := io.ReadFull(rand.Reader, buf); err != nil {
		return "", err
	}
	for i := range buf {
		buf[i] = codeAlphabet[int(buf[i])%len(codeAlphabet)]
	}
	return string(buf), nil
}

// GenerateCodes mints count idle codes of the given duration class.
// Count is clamped to 1..50 per batch.
func (uc *ActivationUseCase) GenerateCodes(ctx context.Context, duration model.CodeDuration, count int) ([]string, error) {
	if _, err := (&model.RedemptionCode{Duration: duration}).Days(); err != nil {
		return nil, domain.ErrInvalidInput
	}
	if count < 1 {
		count = 1
	}
	if count > 50 {
		count = 50
	}

	out := make([]string, 0, count)
	for i := 0; i < count; i++ {
		code, err := generateCode()
		if err != nil {
			return out, err
		}
		rc := &model.RedemptionCode{
			Code:      code,
			Duration:  duration,
			Status:    model.CodeStatusIdle,
			CreatedAt: uc.now(),
		}
		if err := uc.codes.Save(ctx, nil, rc); err != nil {
			return out, err
		}
		out = append(out, code)
	}
	metrics.AddCodesGenerated(len(out))
	return out, nil
}

// ListCodes returns the newest codes for the superadmin listing.
func (uc *ActivationUseCase) ListCodes(ctx context.Context, limit int) ([]*model.RedemptionCode, error) {
	if limit <= 0 || limit > 200 {
		limit = 200
	}
	return uc.codes.ListRecent(ctx, nil, limit)
}
