package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RevaluationNarration tags every journal this job owns. The reconciliation
// policy matches on it exactly, so it must stay stable across releases.
const RevaluationNarration = "Daily Veeqo stock revaluation"

// Journal statuses used by the ledger.
const (
	StatusPosted = "POSTED"
	StatusVoided = "VOIDED"
)

// JournalLine is one leg of a double-entry journal. A positive amount debits
// the account, a negative amount credits it.
type JournalLine struct {
	AccountCode string
	Amount      decimal.Decimal
}

// Journal is a balanced manual journal. The ledger owns posted journals; this
// job only constructs, submits and voids them.
type Journal struct {
	Narration string
	Date      time.Time
	Status    string
	Lines     []JournalLine
}

// Balanced reports whether the journal's lines sum to exactly zero.
func (j Journal) Balanced() bool {
	sum := decimal.Zero
	for _, l := range j.Lines {
		sum = sum.Add(l.Amount)
	}
	return sum.IsZero()
}

// BuildRevaluation constructs the two-line stock revaluation journal for date:
// a debit of total against the stock-on-hand account and an equal credit
// against the adjustment account.
func BuildRevaluation(total decimal.Decimal, stockAccount, adjustmentAccount string, date time.Time) Journal {
	return Journal{
		Narration: RevaluationNarration,
		Date:      date,
		Status:    StatusPosted,
		Lines: []JournalLine{
			{AccountCode: stockAccount, Amount: total},
			{AccountCode: adjustmentAccount, Amount: total.Neg()},
		},
	}
}
