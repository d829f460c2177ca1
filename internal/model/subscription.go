package model

import (
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Period is the billing period of a confirmed subscription.
type Period string

const (
	PeriodMonthly Period = "monthly"
	PeriodAnnual  Period = "annual"
)

// Status represents the lifecycle state of a subscription.
type Status string

const (
	StatusActive   Status = "active"
	StatusCanceled Status = "canceled"
)

// Subscription is a confirmed recurring charge owned by one person.
type Subscription struct {
	ID           string          `json:"id"`
	OwnerID      string          `json:"ownerId"`
	Merchant     string          `json:"merchant"`
	Amount       decimal.Decimal `json:"amount"`
	Period       Period          `json:"period"`
	NextBillDate string          `json:"nextBillDate"` // YYYY-MM-DD
	Notes        string          `json:"notes,omitempty"`
	Status       Status          `json:"status"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// SubscriptionInput holds the caller-supplied fields for creating a subscription.
type SubscriptionInput struct {
	Merchant     string          `json:"merchant"`
	Amount       decimal.Decimal `json:"amount"`
	Period       Period          `json:"period"`
	NextBillDate string          `json:"nextBillDate"`
	Notes        string          `json:"notes,omitempty"`
}

var isoDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// Validate returns a list of problems with the input, empty when valid.
func (in SubscriptionInput) Validate() []string {
	var problems []string
	if strings.TrimSpace(in.Merchant) == "" {
		problems = append(problems, "merchant required")
	}
	if !in.Amount.IsPositive() {
		problems = append(problems, "amount must be a positive number")
	}
	if in.Period != PeriodMonthly && in.Period != PeriodAnnual {
		problems = append(problems, "period must be 'monthly' or 'annual'")
	}
	if !isoDatePattern.MatchString(in.NextBillDate) {
		problems = append(problems, "nextBillDate must be YYYY-MM-DD")
	}
	return problems
}
