package model

import (
	"github.com/shopspring/decimal"
)

// DateFormat is the canonical date layout for all record and subscription dates.
const DateFormat = "2006-01-02"

// Cadence is the inferred billing frequency of a recurring charge.
type Cadence string

const (
	CadenceWeekly  Cadence = "weekly"
	CadenceMonthly Cadence = "monthly"
	CadenceAnnual  Cadence = "annual"
	CadenceUnknown Cadence = "unknown"
)

// TransactionRecord is one parsed ledger row. Amount is always the charge
// magnitude: the parser folds the ledger's debit/credit sign away.
type TransactionRecord struct {
	Date        string          `json:"date"` // YYYY-MM-DD when coercible, raw text otherwise
	MerchantRaw string          `json:"merchantRaw"`
	MerchantKey string          `json:"merchantKey"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description,omitempty"`
}
