package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	ErrAuctionNotFound = errors.New("auction not found")
	ErrBidderNotFound  = errors.New("bidder not found")
	// ErrAuctionNotOpen covers both "too early" and "already closed";
	// the caller must not retry the same request.
	ErrAuctionNotOpen = errors.New("auction is not open for bidding")
	ErrBidTooLow      = errors.New("bid amount does not exceed current highest bid")
	ErrInvalidAmount  = errors.New("amount must be a positive value")
	// ErrConflict is transient: the per-auction serialization unit could not
	// be acquired. The bidding engine retries these before surfacing.
	ErrConflict          = errors.New("concurrent update conflict")
	ErrStorage           = errors.New("storage failure")
	ErrInvalidTimeWindow = errors.New("auction start time must be before end time")
	ErrResultExists      = errors.New("auction result already recorded")
)

// BidTooLowError carries the highest bid the rejected amount failed to beat,
// so the client can recompute and retry with a corrected amount.
type BidTooLowError struct {
	Highest decimal.Decimal
}

func (e *BidTooLowError) Error() string {
	return fmt.Sprintf("bid amount does not exceed current highest bid %s", e.Highest)
}

func (e *BidTooLowError) Is(target error) bool { return target == ErrBidTooLow }

// StorageError wraps a driver-level failure so callers can branch on
// ErrStorage while logs keep the underlying cause.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string { return fmt.Sprintf("%s: %v", e.Op, e.Err) }

func (e *StorageError) Unwrap() error { return e.Err }

func (e *StorageError) Is(target error) bool { return target == ErrStorage }
