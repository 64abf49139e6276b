// Package wishliststate keeps a client-side cache of which products the
// signed-in user has marked, backed by the wishlist endpoints as the source
// of truth. Toggles apply optimistically and roll back when the server
// disagrees; a fetch always replaces the local set wholesale.
package wishliststate

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
)

// ErrToggleInFlight is returned when a toggle for the same product is
// already outstanding. Dropping the second call keeps overlapping toggles
// from racing each other's optimistic snapshots.
var ErrToggleInFlight = errors.New("wishliststate: toggle already in flight for product")

const (
	signInMessage  = "Please sign in to use your wishlist"
	genericFailure = "Could not update wishlist, please try again"
)

// Notifier receives the toast-style notifications the manager raises.
type Notifier interface {
	Success(message string)
	Error(message string)
}

// NopNotifier discards notifications.
type NopNotifier struct{}

func (NopNotifier) Success(string) {}
func (NopNotifier) Error(string)   {}

// Manager holds the membership set. Construct with New and share; all
// methods are safe for concurrent use.
type Manager struct {
	mu       sync.Mutex
	products map[uint]struct{}
	loading  bool
	inflight map[uint]bool

	client  *http.Client
	baseURL string
	token   string
	notify  Notifier
}

func New(client *http.Client, baseURL, token string, notify Notifier) *Manager {
	if client == nil {
		client = http.DefaultClient
	}
	if notify == nil {
		notify = NopNotifier{}
	}
	return &Manager{
		products: make(map[uint]struct{}),
		inflight: make(map[uint]bool),
		client:   client,
		baseURL:  strings.TrimRight(baseURL, "/"),
		token:    token,
		notify:   notify,
	}
}

type wishlistEntry struct {
	Product struct {
		ID uint `json:"id"`
	} `json:"product"`
}

type toggleResponse struct {
	Message    string `json:"message"`
	InWishlist bool   `json:"in_wishlist"`
}

// Fetch replaces the local set with the server's wishlist. A failed fetch
// is logged and leaves the prior set untouched; the next mount retries
// implicitly.
func (m *Manager) Fetch(ctx context.Context) {
	m.setLoading(true)
	defer m.setLoading(false)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, m.baseURL+"/user/wishlist", nil)
	if err != nil {
		slog.Error("build wishlist request", "error", err)
		return
	}
	req.Header.Set("Authorization", m.token)

	resp, err := m.client.Do(req)
	if err != nil {
		slog.Error("fetch wishlist", "error", err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		slog.Error("fetch wishlist", "status", resp.StatusCode)
		return
	}

	var entries []wishlistEntry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		slog.Error("decode wishlist", "error", err)
		return
	}

	next := make(map[uint]struct{}, len(entries))
	for _, e := range entries {
		next[e.Product.ID] = struct{}{}
	}

	m.mu.Lock()
	m.products = next
	m.mu.Unlock()
}

// Toggle flips membership for productID optimistically, then confirms with
// the server. Any non-success outcome restores the pre-toggle state: a 401
// raises the sign-in prompt, everything else the generic failure message.
// On success the optimistic state stands and the server message surfaces.
func (m *Manager) Toggle(ctx context.Context, productID uint) error {
	m.mu.Lock()
	if m.inflight[productID] {
		m.mu.Unlock()
		return ErrToggleInFlight
	}
	m.inflight[productID] = true

	_, wasIn := m.products[productID]
	if wasIn {
		delete(m.products, productID)
	} else {
		m.products[productID] = struct{}{}
	}
	m.mu.Unlock()

	defer func() {
		m.mu.Lock()
		delete(m.inflight, productID)
		m.mu.Unlock()
	}()

	body, _ := json.Marshal(map[string]uint{"product_id": productID})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		m.baseURL+"/user/wishlist/toggle", bytes.NewReader(body))
	if err != nil {
		m.rollback(productID, wasIn)
		m.notify.Error(genericFailure)
		return fmt.Errorf("build toggle request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", m.token)

	resp, err := m.client.Do(req)
	if err != nil {
		m.rollback(productID, wasIn)
		m.notify.Error(genericFailure)
		return fmt.Errorf("toggle wishlist: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		m.rollback(productID, wasIn)
		m.notify.Error(signInMessage)
		return fmt.Errorf("toggle wishlist: unauthorized")
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		m.rollback(productID, wasIn)
		m.notify.Error(genericFailure)
		return fmt.Errorf("toggle wishlist: status %d", resp.StatusCode)
	}

	var result toggleResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&result); err == nil && result.Message != "" {
		m.notify.Success(result.Message)
	} else {
		m.notify.Success("Wishlist updated")
	}
	return nil
}

// Contains reports membership in the current local set.
func (m *Manager) Contains(productID uint) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.products[productID]
	return ok
}

// Loading reports whether a fetch is in progress.
func (m *Manager) Loading() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loading
}

func (m *Manager) setLoading(v bool) {
	m.mu.Lock()
	m.loading = v
	m.mu.Unlock()
}

func (m *Manager) rollback(productID uint, wasIn bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if wasIn {
		m.products[productID] = struct{}{}
	} else {
		delete(m.products, productID)
	}
}
