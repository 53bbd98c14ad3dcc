// Package memory holds an in-memory implementation of the auction store,
// used by tests and local development. The per-auction mutex plays the role
// the row lock plays in the postgres implementation: one writer per auction,
// different auctions fully independent.
package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/catfo435/auctionarena/internal/auction/domain"
)

type auctionRecord struct {
	mu      sync.Mutex // per-auction serialization unit
	auction domain.Auction
	bids    []domain.Bid
	result  *domain.AuctionResult
}

// Store is a concurrency-safe in-memory auction store. It implements
// domain.Store, domain.AuctionRepository, domain.BidRepository and
// domain.BidderResolver.
type Store struct {
	mu       sync.RWMutex
	auctions map[uuid.UUID]*auctionRecord
	bidders  map[uuid.UUID]struct{}
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{
		auctions: make(map[uuid.UUID]*auctionRecord),
		bidders:  make(map[uuid.UUID]struct{}),
	}
}

// AddAuction registers an auction. Intended for test setup and seeding.
func (s *Store) AddAuction(a *domain.Auction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.auctions[a.ID] = &auctionRecord{auction: *a}
}

// AddBidder registers a resolvable bidder identity.
func (s *Store) AddBidder(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bidders[id] = struct{}{}
}

func (s *Store) record(id uuid.UUID) (*auctionRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.auctions[id]
	return rec, ok
}

// WithAuction runs fn inside the per-auction unit of mutual exclusion.
// Changes staged through the AuctionTx become visible only if fn returns
// nil, mirroring the transactional postgres store.
func (s *Store) WithAuction(ctx context.Context, id uuid.UUID, fn func(ctx context.Context, tx domain.AuctionTx) error) error {
	rec, ok := s.record(id)
	if !ok {
		return domain.ErrAuctionNotFound
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()

	tx := &memTx{rec: rec, auction: rec.auction}
	if err := fn(ctx, tx); err != nil {
		return err
	}
	tx.commit()
	return nil
}

// memTx stages mutations against one locked auction record.
type memTx struct {
	rec       *auctionRecord
	auction   domain.Auction
	newBids   []domain.Bid
	newStatus *domain.AuctionStatus
	newResult *domain.AuctionResult
}

func (t *memTx) Auction() *domain.Auction { return &t.auction }

func (t *memTx) HighestBid(ctx context.Context) (*domain.Bid, error) {
	var top *domain.Bid
	scan := func(bids []domain.Bid) {
		for i := range bids {
			b := bids[i]
			if top == nil || b.Amount.GreaterThan(top.Amount) {
				top = &b
			}
		}
	}
	scan(t.rec.bids)
	scan(t.newBids)
	if top == nil {
		return nil, nil
	}
	cp := *top
	return &cp, nil
}

func (t *memTx) AppendBid(ctx context.Context, bid *domain.Bid) error {
	t.newBids = append(t.newBids, *bid)
	return nil
}

func (t *memTx) UpdateStatus(ctx context.Context, status domain.AuctionStatus) error {
	t.newStatus = &status
	t.auction.Status = status
	return nil
}

func (t *memTx) SaveResult(ctx context.Context, result *domain.AuctionResult) error {
	if t.rec.result != nil || t.newResult != nil {
		return domain.ErrResultExists
	}
	cp := *result
	t.newResult = &cp
	return nil
}

func (t *memTx) commit() {
	t.rec.bids = append(t.rec.bids, t.newBids...)
	if t.newStatus != nil {
		t.rec.auction.Status = *t.newStatus
	}
	if t.newResult != nil {
		t.rec.result = t.newResult
	}
}

// GetByID returns a copy of the auction.
func (s *Store) GetByID(ctx context.Context, id uuid.UUID) (*domain.Auction, error) {
	rec, ok := s.record(id)
	if !ok {
		return nil, domain.ErrAuctionNotFound
	}
	rec.mu.Lock()
	defer rec.mu.Unlock()
	cp := rec.auction
	return &cp, nil
}

// ListUnfinished returns every auction not yet ended.
func (s *Store) ListUnfinished(ctx context.Context) ([]*domain.Auction, error) {
	s.mu.RLock()
	recs := make([]*auctionRecord, 0, len(s.auctions))
	for _, rec := range s.auctions {
		recs = append(recs, rec)
	}
	s.mu.RUnlock()

	var out []*domain.Auction
	for _, rec := range recs {
		rec.mu.Lock()
		if rec.auction.Status != domain.StatusEnded {
			cp := rec.auction
			out = append(out, &cp)
		}
		rec.mu.Unlock()
	}
	return out, nil
}

// ListByAuction returns all bids for an auction in placement order.
func (s *Store) ListByAuction(ctx context.Context, auctionID uuid.UUID) ([]*domain.Bid, error) {
	rec, ok := s.record(auctionID)
	if !ok {
		return nil, domain.ErrAuctionNotFound
	}
	rec.mu.Lock()
	defer rec.mu.Unlock()
	out := make([]*domain.Bid, 0, len(rec.bids))
	for i := range rec.bids {
		cp := rec.bids[i]
		out = append(out, &cp)
	}
	return out, nil
}

// Resolve implements domain.BidderResolver.
func (s *Store) Resolve(ctx context.Context, bidderID uuid.UUID) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.bidders[bidderID]; !ok {
		return domain.ErrBidderNotFound
	}
	return nil
}

// Result returns the recorded winner for an auction, if any.
func (s *Store) Result(auctionID uuid.UUID) (*domain.AuctionResult, bool) {
	rec, ok := s.record(auctionID)
	if !ok {
		return nil, false
	}
	rec.mu.Lock()
	defer rec.mu.Unlock()
	if rec.result == nil {
		return nil, false
	}
	cp := *rec.result
	return &cp, true
}
