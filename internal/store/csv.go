package store

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/subtrack-dev/subtrack/internal/model"
)

// Header is the CSV header for subscription exports.
const Header = "id,owner_id,merchant,amount,period,next_bill_date,notes,status,created_at,updated_at"

const (
	numFields    = 10
	colID        = 0
	colOwnerID   = 1
	colMerchant  = 2
	colAmount    = 3
	colPeriod    = 4
	colNextBill  = 5
	colNotes     = 6
	colStatus    = 7
	colCreatedAt = 8
	colUpdatedAt = 9
)

// ReadSubscriptions reads all subscriptions from a CSV export.
func ReadSubscriptions(r io.Reader) ([]model.Subscription, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading subscriptions CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	// Skip header row.
	var subs []model.Subscription
	for i, rec := range records[1:] {
		sub, err := UnmarshalSubscription(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		subs = append(subs, sub)
	}
	return subs, nil
}

// WriteSubscriptions writes subscriptions to a CSV export (including header).
func WriteSubscriptions(w io.Writer, subs []model.Subscription) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, sub := range subs {
		if err := cw.Write(MarshalSubscription(sub)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

// MarshalSubscription converts a Subscription to a CSV record.
func MarshalSubscription(sub model.Subscription) []string {
	return []string{
		sub.ID,
		sub.OwnerID,
		sub.Merchant,
		sub.Amount.String(),
		string(sub.Period),
		sub.NextBillDate,
		sub.Notes,
		string(sub.Status),
		sub.CreatedAt.Format(time.RFC3339),
		sub.UpdatedAt.Format(time.RFC3339),
	}
}

// UnmarshalSubscription converts a CSV record to a Subscription.
func UnmarshalSubscription(rec []string) (model.Subscription, error) {
	amount, err := decimal.NewFromString(rec[colAmount])
	if err != nil {
		return model.Subscription{}, fmt.Errorf("parsing amount %q: %w", rec[colAmount], err)
	}

	createdAt, err := time.Parse(time.RFC3339, rec[colCreatedAt])
	if err != nil {
		return model.Subscription{}, fmt.Errorf("parsing created_at %q: %w", rec[colCreatedAt], err)
	}

	updatedAt, err := time.Parse(time.RFC3339, rec[colUpdatedAt])
	if err != nil {
		return model.Subscription{}, fmt.Errorf("parsing updated_at %q: %w", rec[colUpdatedAt], err)
	}

	return model.Subscription{
		ID:           rec[colID],
		OwnerID:      rec[colOwnerID],
		Merchant:     rec[colMerchant],
		Amount:       amount,
		Period:       model.Period(rec[colPeriod]),
		NextBillDate: rec[colNextBill],
		Notes:        rec[colNotes],
		Status:       model.Status(rec[colStatus]),
		CreatedAt:    createdAt,
		UpdatedAt:    updatedAt,
	}, nil
}
