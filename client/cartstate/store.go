// Package cartstate holds the working set of items a customer intends to
// purchase. It lives entirely on the client side of the API: nothing here
// touches the server until checkout, when the line items are shipped to the
// order endpoint and re-priced there. Every mutation is persisted
// synchronously through a pluggable blob Storage under a fixed key.
package cartstate

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// LensConfig is the optional lens add-on attached to a line item.
type LensConfig struct {
	Type               string  `json:"lens_type"`
	Package            string  `json:"lens_package"`
	Thickness          string  `json:"lens_thickness"`
	PrescriptionOption string  `json:"prescription_option,omitempty"`
	PrescriptionImage  string  `json:"prescription_image,omitempty"`
	TotalLensPrice     float64 `json:"total_lens_price"`
}

// LineItem is one cart entry. ID is a local synthetic identifier used only
// for list operations; merging is keyed on product/variant/lens fields.
type LineItem struct {
	ID        string      `json:"id"`
	ProductID uint        `json:"product_id"`
	VariantID uint        `json:"variant_id,omitempty"` // 0 means no variant
	Name      string      `json:"name"`
	Image     string      `json:"image"`
	UnitPrice float64     `json:"unit_price"`
	Color     string      `json:"color,omitempty"`
	Quantity  int         `json:"quantity"`
	Lens      *LensConfig `json:"lens,omitempty"`
}

// mergeKey is the logical identity of a line for de-duplication.
type mergeKey struct {
	productID uint
	variantID uint
	lensType  string
	lensPkg   string
	lensThick string
}

func keyOf(item LineItem) mergeKey {
	k := mergeKey{productID: item.ProductID, variantID: item.VariantID}
	if item.Lens != nil {
		k.lensType = item.Lens.Type
		k.lensPkg = item.Lens.Package
		k.lensThick = item.Lens.Thickness
	}
	return k
}

// Store owns the cart lines and derived totals. Construct one explicitly
// with New and share it; all methods are safe for concurrent use.
type Store struct {
	mu      sync.Mutex
	items   []LineItem
	isOpen  bool
	storage Storage
	subs    []func([]LineItem)
}

// New builds a store backed by storage and loads any previously persisted
// state. A missing blob is an empty cart, not an error.
func New(ctx context.Context, storage Storage) (*Store, error) {
	s := &Store{storage: storage}

	data, err := storage.Load(ctx, StorageKey)
	if err != nil {
		if err == ErrNotFound {
			return s, nil
		}
		return nil, fmt.Errorf("load cart state: %w", err)
	}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &s.items); err != nil {
			return nil, fmt.Errorf("decode cart state: %w", err)
		}
	}
	return s, nil
}

// Subscribe registers a callback invoked with a snapshot of the lines after
// every mutation. Callbacks run synchronously on the mutating call.
func (s *Store) Subscribe(fn func([]LineItem)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}

// AddItem inserts a line. If an existing line shares the same
// (product, variant, lens type, lens package, lens thickness) the incoming
// quantity is merged into it and the existing line's other fields are left
// unchanged; otherwise a new line with a fresh id is appended.
func (s *Store) AddItem(ctx context.Context, item LineItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if item.Quantity < 1 {
		item.Quantity = 1
	}

	key := keyOf(item)
	merged := false
	for i := range s.items {
		if keyOf(s.items[i]) == key {
			s.items[i].Quantity += item.Quantity
			merged = true
			break
		}
	}
	if !merged {
		item.ID = uuid.NewString()
		s.items = append(s.items, item)
	}

	return s.persistLocked(ctx)
}

// matches implements the removal predicate: product and variant must match
// exactly (variantID 0 matches only variant-less lines); an empty lensType
// matches every lens configuration, a non-empty one must equal the line's.
func matches(item LineItem, productID, variantID uint, lensType string) bool {
	if item.ProductID != productID || item.VariantID != variantID {
		return false
	}
	if lensType == "" {
		return true
	}
	return item.Lens != nil && item.Lens.Type == lensType
}

// RemoveItem deletes every line matching the predicate. With an empty
// lensType this removes all lens configurations of the product/variant
// pair, which is the intended broad-match behavior.
func (s *Store) RemoveItem(ctx context.Context, productID, variantID uint, lensType string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removeLocked(productID, variantID, lensType)
	return s.persistLocked(ctx)
}

func (s *Store) removeLocked(productID, variantID uint, lensType string) {
	kept := s.items[:0]
	for _, item := range s.items {
		if !matches(item, productID, variantID, lensType) {
			kept = append(kept, item)
		}
	}
	s.items = kept
}

// UpdateQuantity sets quantity on all lines matching the predicate. A
// quantity of zero or less removes the matching lines instead; no line ever
// survives with quantity below one.
func (s *Store) UpdateQuantity(ctx context.Context, productID, variantID uint, quantity int, lensType string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if quantity <= 0 {
		s.removeLocked(productID, variantID, lensType)
	} else {
		for i := range s.items {
			if matches(s.items[i], productID, variantID, lensType) {
				s.items[i].Quantity = quantity
			}
		}
	}
	return s.persistLocked(ctx)
}

// Clear empties the cart.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
	return s.persistLocked(ctx)
}

// Items returns a snapshot of the current lines.
func (s *Store) Items() []LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// TotalItems is the sum of quantities across all lines.
func (s *Store) TotalItems() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	var count int
	for _, item := range s.items {
		count += item.Quantity
	}
	return count
}

// TotalPrice is the sum of (unit price + lens add-on) * quantity.
func (s *Store) TotalPrice() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	var total float64
	for _, item := range s.items {
		lens := 0.0
		if item.Lens != nil {
			lens = item.Lens.TotalLensPrice
		}
		total += (item.UnitPrice + lens) * float64(item.Quantity)
	}
	return total
}

// Open, Close and Toggle drive the cart drawer visibility. Pure UI state.
func (s *Store) Open() { s.mu.Lock(); s.isOpen = true; s.mu.Unlock() }

func (s *Store) Close() { s.mu.Lock(); s.isOpen = false; s.mu.Unlock() }

func (s *Store) Toggle() { s.mu.Lock(); s.isOpen = !s.isOpen; s.mu.Unlock() }

func (s *Store) IsOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isOpen
}

// persistLocked writes the serialized lines through the storage backend and
// notifies subscribers. In-memory state is already applied when this runs,
// so a failed write leaves the cart usable and returns the error.
func (s *Store) persistLocked(ctx context.Context) error {
	data, err := json.Marshal(s.items)
	if err != nil {
		return fmt.Errorf("encode cart state: %w", err)
	}

	snapshot := s.snapshotLocked()
	for _, fn := range s.subs {
		fn(snapshot)
	}

	if err := s.storage.Save(ctx, StorageKey, data); err != nil {
		return fmt.Errorf("persist cart state: %w", err)
	}
	return nil
}

func (s *Store) snapshotLocked() []LineItem {
	out := make([]LineItem, len(s.items))
	copy(out, s.items)
	return out
}
