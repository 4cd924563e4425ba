package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"vendor-pricelist-platform/internal/domain"
	"vendor-pricelist-platform/internal/domain/model"
	"vendor-pricelist-platform/internal/domain/ports/repository"
	"vendor-pricelist-platform/internal/infra/security"
)

var _ repository.VendorRepository = (*vendorRepo)(nil)

// vendorRepo stores vendor profiles. The bank account number is encrypted
// at rest; everything else is plaintext.
type vendorRepo struct {
	pool *pgxpool.Pool
	enc  *security.EncryptionService
}

func NewVendorRepo(pool *pgxpool.Pool, enc *security.EncryptionService) repository.VendorRepository {
	return &vendorRepo{pool: pool, enc: enc}
}

func (r *vendorRepo) Save(ctx context.Context, tx repository.Tx, v *model.VendorProfile) error {
	account := v.BankAccountNumber
	if account != "" && r.enc != nil {
		enc, err := r.enc.Encrypt(account)
		if err != nil {
			return err
		}
		account = enc
	}

	const q = `
INSERT INTO vendors (user_id, name, address, whatsapp, email, npwp, bank_name, bank_account_number, bank_account_holder, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
ON CONFLICT (user_id) DO UPDATE SET
  name = EXCLUDED.name,
  address = EXCLUDED.address,
  whatsapp = EXCLUDED.whatsapp,
  email = EXCLUDED.email,
  npwp = EXCLUDED.npwp,
  bank_name = EXCLUDED.bank_name,
  bank_account_number = EXCLUDED.bank_account_number,
  bank_account_holder = EXCLUDED.bank_account_holder,
  updated_at = EXCLUDED.updated_at;
`
	_, err := execSQL(ctx, r.pool, tx, q,
		v.UserID, v.Name, v.Address, v.WhatsApp, v.Email, v.NPWP,
		v.BankName, account, v.BankAccountHolder, v.UpdatedAt,
	)
	return err
}

func (r *vendorRepo) FindByUser(ctx context.Context, tx repository.Tx, userID string) (*model.VendorProfile, error) {
	const q = `
SELECT user_id, name, address, whatsapp, email, npwp, bank_name, bank_account_number, bank_account_holder, updated_at
  FROM vendors
 WHERE user_id = $1;
`
	row, err := pickRow(ctx, r.pool, tx, q, userID)
	if err != nil {
		return nil, err
	}

	var v model.VendorProfile
	err = row.Scan(
		&v.UserID, &v.Name, &v.Address, &v.WhatsApp, &v.Email, &v.NPWP,
		&v.BankName, &v.BankAccountNumber, &v.BankAccountHolder, &v.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, domain.ErrReadDatabaseRow
	}
	if v.BankAccountNumber != "" && r.enc != nil {
		plain, err := r.enc.Decrypt(v.BankAccountNumber)
		if err != nil {
			return nil, err
		}
		v.BankAccountNumber = plain
	}
	return &v, nil
}
