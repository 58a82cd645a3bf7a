package storage

import (
	"context"
	"log/slog"
	"sync"

	"github.com/mmynk/dinesplit/internal/models"
)

// BillsKey is the KV key holding the serialized bill collection.
const BillsKey = "@bills"

// Ensure BillStore implements Store
var _ Store = (*BillStore)(nil)

// BillStore implements Store on top of a KV medium. The whole collection is
// one JSON blob: every mutation reads it, changes it and writes it back. A
// mutex serializes those cycles within the process; when the medium is an
// AtomicKV the cycle also runs as one optimistic transaction, so processes
// sharing the medium cannot lose each other's updates either.
type BillStore struct {
	kv  KV
	key string
	mu  sync.Mutex
}

// NewBillStore creates a BillStore keeping its collection under BillsKey.
func NewBillStore(kv KV) *BillStore {
	return &BillStore{kv: kv, key: BillsKey}
}

// Close closes the underlying medium.
func (s *BillStore) Close() error {
	return s.kv.Close()
}

// List returns all bills in insertion order.
func (s *BillStore) List(ctx context.Context) ([]models.Bill, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

// Get retrieves a bill by ID.
func (s *BillStore) Get(ctx context.Context, billID string) (models.Bill, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	bills, err := s.load(ctx)
	if err != nil {
		return models.Bill{}, false, err
	}
	if i := indexOf(bills, billID); i >= 0 {
		return bills[i], true, nil
	}
	return models.Bill{}, false, nil
}

// Upsert inserts or replaces a bill by ID.
func (s *BillStore) Upsert(ctx context.Context, bill models.Bill) error {
	if err := bill.Validate(); err != nil {
		return err
	}
	return s.mutate(ctx, func(bills []models.Bill) ([]models.Bill, bool, error) {
		return upsert(bills, bill.Clone()), true, nil
	})
}

// Update applies fn to the stored bill and saves the result in one cycle.
// Errors from fn abort the update without writing.
func (s *BillStore) Update(ctx context.Context, billID string, fn func(models.Bill) (models.Bill, error)) (models.Bill, bool, error) {
	var (
		result models.Bill
		found  bool
	)
	err := s.mutate(ctx, func(bills []models.Bill) ([]models.Bill, bool, error) {
		idx := indexOf(bills, billID)
		found = idx >= 0
		if !found {
			return bills, false, nil
		}
		result = bills[idx]

		updated, err := fn(bills[idx].Clone())
		if err != nil {
			return bills, false, err
		}
		// The bill keeps its identity even if fn tried to change it.
		updated.ID = billID
		if err := updated.Validate(); err != nil {
			return bills, false, err
		}
		bills[idx] = updated
		result = updated
		return bills, true, nil
	})
	if err != nil {
		if !found {
			return models.Bill{}, false, err
		}
		return result, true, err
	}
	if !found {
		return models.Bill{}, false, nil
	}
	return result, true, nil
}

// Delete removes a bill. Missing IDs are ignored.
func (s *BillStore) Delete(ctx context.Context, billID string) error {
	return s.mutate(ctx, func(bills []models.Bill) ([]models.Bill, bool, error) {
		filtered := make([]models.Bill, 0, len(bills))
		for _, b := range bills {
			if b.ID != billID {
				filtered = append(filtered, b)
			}
		}
		return filtered, len(filtered) != len(bills), nil
	})
}

// InitializeIfEmpty writes seed only if no collection has been stored yet
// or the stored collection is empty.
func (s *BillStore) InitializeIfEmpty(ctx context.Context, seed models.Bill) (bool, error) {
	if err := seed.Validate(); err != nil {
		return false, err
	}

	var seeded bool
	err := s.mutate(ctx, func(bills []models.Bill) ([]models.Bill, bool, error) {
		seeded = len(bills) == 0
		if !seeded {
			return bills, false, nil
		}
		return []models.Bill{seed.Clone()}, true, nil
	})
	if err != nil {
		return false, err
	}
	if seeded {
		slog.Info("Seeded empty bill store", "bill_id", seed.ID, "name", seed.Name)
	}
	return seeded, nil
}

// mutate runs one read-modify-write cycle. fn gets the decoded collection
// and reports whether its result must be written. fn may run more than once
// on an AtomicKV, so it must only set variables it also resets.
func (s *BillStore) mutate(ctx context.Context, fn func([]models.Bill) ([]models.Bill, bool, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	akv, ok := s.kv.(AtomicKV)
	if !ok {
		bills, err := s.load(ctx)
		if err != nil {
			return err
		}
		out, write, err := fn(bills)
		if err != nil || !write {
			return err
		}
		return s.save(ctx, out)
	}

	var fnErr error
	err := akv.Modify(ctx, s.key, func(raw []byte, found bool) ([]byte, bool, error) {
		fnErr = nil
		bills, err := decodeStored(raw, found)
		if err != nil {
			fnErr = err
			return nil, false, err
		}
		out, write, err := fn(bills)
		if err != nil {
			fnErr = err
			return nil, false, err
		}
		if !write {
			return nil, false, nil
		}
		next, err := encodeBills(out)
		if err != nil {
			fnErr = &models.StorageError{Op: "encode", Err: err}
			return nil, false, fnErr
		}
		return next, true, nil
	})
	if fnErr != nil {
		return fnErr
	}
	if err != nil {
		return &models.StorageError{Op: "write", Err: err}
	}
	return nil
}

// load reads and decodes the collection. Callers hold s.mu.
func (s *BillStore) load(ctx context.Context) ([]models.Bill, error) {
	raw, found, err := s.kv.Get(ctx, s.key)
	if err != nil {
		return nil, &models.StorageError{Op: "read", Err: err}
	}
	return decodeStored(raw, found)
}

// save encodes and writes the full collection. Callers hold s.mu.
func (s *BillStore) save(ctx context.Context, bills []models.Bill) error {
	raw, err := encodeBills(bills)
	if err != nil {
		return &models.StorageError{Op: "encode", Err: err}
	}
	if err := s.kv.Set(ctx, s.key, raw); err != nil {
		return &models.StorageError{Op: "write", Err: err}
	}
	return nil
}

func decodeStored(raw []byte, found bool) ([]models.Bill, error) {
	if !found || len(raw) == 0 {
		return []models.Bill{}, nil
	}
	bills, err := decodeBills(raw)
	if err != nil {
		return nil, &models.StorageError{Op: "decode", Err: err}
	}
	return bills, nil
}

func indexOf(bills []models.Bill, billID string) int {
	for i := range bills {
		if bills[i].ID == billID {
			return i
		}
	}
	return -1
}

func upsert(bills []models.Bill, bill models.Bill) []models.Bill {
	for i := range bills {
		if bills[i].ID == bill.ID {
			bills[i] = bill
			return bills
		}
	}
	return append(bills, bill)
}
