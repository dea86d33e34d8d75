package domain

import (
	"time"
)

// EntryKind tags how bet and win amounts combine into a balance delta.
type EntryKind string

const (
	EntryDebit       EntryKind = "debit"
	EntryCredit      EntryKind = "credit"
	EntryDebitCredit EntryKind = "debit_credit"
)

// Valid reports whether k is a known entry kind.
func (k EntryKind) Valid() bool {
	switch k {
	case EntryDebit, EntryCredit, EntryDebitCredit:
		return true
	}
	return false
}

// LedgerEntry is the immutable record of one applied settlement. TxnID
// is the provider-supplied idempotency key: at most one entry per TxnID
// ever exists, and replays are answered from BalanceAfter.
type LedgerEntry struct {
	ID           string
	TxnID        string
	AccountID    string
	Kind         EntryKind
	BetCents     int64
	WinCents     int64
	ProviderCode string
	GameCode     string
	Sampled      bool
	BalanceAfter int64
	CreatedAt    time.Time
}

// Delta returns the signed balance delta this entry represents.
func (e *LedgerEntry) Delta() int64 {
	switch e.Kind {
	case EntryDebit:
		return -e.BetCents
	case EntryCredit:
		return e.WinCents
	default:
		return e.WinCents - e.BetCents
	}
}
