package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"

	"github.com/subtrack-dev/subtrack/internal/model"
)

const schemaVersion = 1

const schemaV1 = `
CREATE TABLE IF NOT EXISTS schema_meta (
	version INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS subscriptions (
	id             TEXT PRIMARY KEY,
	owner_id       TEXT NOT NULL,
	merchant       TEXT NOT NULL,
	amount         TEXT NOT NULL,
	period         TEXT NOT NULL,
	next_bill_date TEXT NOT NULL,
	notes          TEXT NOT NULL DEFAULT '',
	status         TEXT NOT NULL DEFAULT 'active',
	created_at     TEXT NOT NULL,
	updated_at     TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_subscriptions_owner ON subscriptions(owner_id);
CREATE INDEX IF NOT EXISTS idx_subscriptions_owner_status ON subscriptions(owner_id, status);
`

// SQLite is a Store backed by a local SQLite database.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens (or creates) the database at path and ensures the
// schema is at the current version.
func OpenSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	if err := migrate(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate schema: %w", err)
	}

	return &SQLite{db: db}, nil
}

func migrate(db *sql.DB) error {
	if _, err := db.Exec(schemaV1); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}

	var version int
	err := db.QueryRow("SELECT version FROM schema_meta LIMIT 1").Scan(&version)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		if _, err := db.Exec("INSERT INTO schema_meta (version) VALUES (?)", schemaVersion); err != nil {
			return fmt.Errorf("record schema version: %w", err)
		}
	case err != nil:
		return fmt.Errorf("check schema version: %w", err)
	case version != schemaVersion:
		return fmt.Errorf("unsupported schema version %d (want %d)", version, schemaVersion)
	}
	return nil
}

// Close closes the underlying database.
func (s *SQLite) Close() error {
	return s.db.Close()
}

const subscriptionColumns = "id, owner_id, merchant, amount, period, next_bill_date, notes, status, created_at, updated_at"

// List returns the owner's subscriptions ordered by merchant name.
func (s *SQLite) List(ctx context.Context, ownerID string) ([]model.Subscription, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+subscriptionColumns+" FROM subscriptions WHERE owner_id = ? ORDER BY merchant COLLATE NOCASE, id",
		ownerID)
	if err != nil {
		return nil, fmt.Errorf("listing subscriptions: %w", err)
	}
	defer rows.Close()

	var subs []model.Subscription
	for rows.Next() {
		sub, err := scanSubscription(rows)
		if err != nil {
			return nil, err
		}
		subs = append(subs, sub)
	}
	return subs, rows.Err()
}

// Create inserts a new active subscription and returns the stored row.
func (s *SQLite) Create(ctx context.Context, ownerID string, input model.SubscriptionInput) (model.Subscription, error) {
	// Truncate to seconds so the returned struct matches the RFC3339
	// round-trip through the database.
	now := time.Now().UTC().Truncate(time.Second)
	sub := model.Subscription{
		ID:           uuid.NewString(),
		OwnerID:      ownerID,
		Merchant:     strings.TrimSpace(input.Merchant),
		Amount:       input.Amount,
		Period:       input.Period,
		NextBillDate: input.NextBillDate,
		Notes:        strings.TrimSpace(input.Notes),
		Status:       model.StatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO subscriptions ("+subscriptionColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
		sub.ID, sub.OwnerID, sub.Merchant, sub.Amount.String(), string(sub.Period),
		sub.NextBillDate, sub.Notes, string(sub.Status),
		sub.CreatedAt.Format(time.RFC3339), sub.UpdatedAt.Format(time.RFC3339))
	if err != nil {
		return model.Subscription{}, fmt.Errorf("inserting subscription: %w", err)
	}
	return sub, nil
}

// Get returns one subscription, or ErrNotFound when the id does not exist
// for this owner.
func (s *SQLite) Get(ctx context.Context, ownerID, id string) (model.Subscription, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+subscriptionColumns+" FROM subscriptions WHERE owner_id = ? AND id = ?",
		ownerID, id)
	sub, err := scanSubscription(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Subscription{}, ErrNotFound
	}
	return sub, err
}

// Update applies a partial update and returns the updated row.
func (s *SQLite) Update(ctx context.Context, ownerID, id string, patch UpdatePatch) (model.Subscription, error) {
	sub, err := s.Get(ctx, ownerID, id)
	if err != nil {
		return model.Subscription{}, err
	}

	if patch.Merchant != nil {
		sub.Merchant = strings.TrimSpace(*patch.Merchant)
	}
	if patch.Amount != nil {
		sub.Amount = *patch.Amount
	}
	if patch.Period != nil {
		sub.Period = *patch.Period
	}
	if patch.NextBillDate != nil {
		sub.NextBillDate = *patch.NextBillDate
	}
	if patch.Notes != nil {
		sub.Notes = strings.TrimSpace(*patch.Notes)
	}
	sub.UpdatedAt = time.Now().UTC().Truncate(time.Second)

	_, err = s.db.ExecContext(ctx,
		"UPDATE subscriptions SET merchant = ?, amount = ?, period = ?, next_bill_date = ?, notes = ?, updated_at = ? WHERE owner_id = ? AND id = ?",
		sub.Merchant, sub.Amount.String(), string(sub.Period), sub.NextBillDate, sub.Notes,
		sub.UpdatedAt.Format(time.RFC3339), ownerID, id)
	if err != nil {
		return model.Subscription{}, fmt.Errorf("updating subscription: %w", err)
	}
	return sub, nil
}

// Delete removes a subscription. Returns ErrNotFound when nothing matched.
func (s *SQLite) Delete(ctx context.Context, ownerID, id string) error {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM subscriptions WHERE owner_id = ? AND id = ?", ownerID, id)
	if err != nil {
		return fmt.Errorf("deleting subscription: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting subscription: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// SetStatus flips a subscription between active and canceled.
func (s *SQLite) SetStatus(ctx context.Context, ownerID, id string, status model.Status) (model.Subscription, error) {
	sub, err := s.Get(ctx, ownerID, id)
	if err != nil {
		return model.Subscription{}, err
	}

	sub.Status = status
	sub.UpdatedAt = time.Now().UTC().Truncate(time.Second)

	_, err = s.db.ExecContext(ctx,
		"UPDATE subscriptions SET status = ?, updated_at = ? WHERE owner_id = ? AND id = ?",
		string(sub.Status), sub.UpdatedAt.Format(time.RFC3339), ownerID, id)
	if err != nil {
		return model.Subscription{}, fmt.Errorf("updating status: %w", err)
	}
	return sub, nil
}

// rowScanner matches both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanSubscription(row rowScanner) (model.Subscription, error) {
	var sub model.Subscription
	var amount, period, status, createdAt, updatedAt string

	err := row.Scan(&sub.ID, &sub.OwnerID, &sub.Merchant, &amount, &period,
		&sub.NextBillDate, &sub.Notes, &status, &createdAt, &updatedAt)
	if err != nil {
		return model.Subscription{}, err
	}

	sub.Amount, err = decimal.NewFromString(amount)
	if err != nil {
		return model.Subscription{}, fmt.Errorf("parsing amount %q: %w", amount, err)
	}
	sub.Period = model.Period(period)
	sub.Status = model.Status(status)
	sub.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return model.Subscription{}, fmt.Errorf("parsing created_at %q: %w", createdAt, err)
	}
	sub.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt)
	if err != nil {
		return model.Subscription{}, fmt.Errorf("parsing updated_at %q: %w", updatedAt, err)
	}
	return sub, nil
}
