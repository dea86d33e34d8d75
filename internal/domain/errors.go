package domain

import "errors"

var (
	// Account errors
	ErrAccountNotFound   = errors.New("account not found")
	ErrInsufficientFunds = errors.New("insufficient funds")

	// Settlement errors
	ErrInvalidRequest       = errors.New("invalid settlement request")
	ErrInvalidAmount        = errors.New("amount must be positive")
	ErrDuplicateTransaction = errors.New("transaction already settled")
	ErrEntryNotFound        = errors.New("ledger entry not found")

	// Payment errors
	ErrPaymentNotFound   = errors.New("payment not found")
	ErrPaymentNotPending = errors.New("payment is not pending")

	// Affiliate errors
	ErrReferralNotFound = errors.New("referral not found")

	// Chest errors
	ErrChestNotFound = errors.New("chest not found")
	ErrChestLocked   = errors.New("chest is still locked")
	ErrChestClaimed  = errors.New("chest already claimed")
	ErrChestNotOwned = errors.New("chest belongs to another account")

	// Auth errors
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")
)
