package wishliststate

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingNotifier struct {
	mu        sync.Mutex
	successes []string
	errors    []string
}

func (n *recordingNotifier) Success(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.successes = append(n.successes, msg)
}

func (n *recordingNotifier) Error(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.errors = append(n.errors, msg)
}

func TestFetchReplacesLocalSet(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/user/wishlist", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"product":{"id":3}}]`))
	}))
	defer srv.Close()

	m := New(srv.Client(), srv.URL, "token", nil)

	// Seed local state that a fetch must not merge with.
	m.products[1] = struct{}{}
	m.products[2] = struct{}{}

	m.Fetch(context.Background())

	assert.False(t, m.Contains(1))
	assert.False(t, m.Contains(2))
	assert.True(t, m.Contains(3))
	assert.False(t, m.Loading())
}

func TestFetchFailureKeepsPriorSet(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	m := New(srv.Client(), srv.URL, "token", nil)
	m.products[1] = struct{}{}

	m.Fetch(context.Background())

	assert.True(t, m.Contains(1))
	assert.False(t, m.Loading())
}

func TestToggleOptimisticCommit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/user/wishlist/toggle", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"message":"Added to wishlist","in_wishlist":true}`))
	}))
	defer srv.Close()

	notifier := &recordingNotifier{}
	m := New(srv.Client(), srv.URL, "token", notifier)

	require.False(t, m.Contains(1))
	require.NoError(t, m.Toggle(context.Background(), 1))

	assert.True(t, m.Contains(1))
	require.Len(t, notifier.successes, 1)
	assert.Equal(t, "Added to wishlist", notifier.successes[0])
}

func TestToggleRollsBackOnUnauthorized(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(entered)
		<-release
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	notifier := &recordingNotifier{}
	m := New(srv.Client(), srv.URL, "token", notifier)

	done := make(chan error, 1)
	go func() { done <- m.Toggle(context.Background(), 1) }()

	// The optimistic flip is visible while the request is still in flight.
	<-entered
	assert.True(t, m.Contains(1))
	close(release)

	err := <-done
	require.Error(t, err)
	assert.False(t, m.Contains(1))
	require.Len(t, notifier.errors, 1)
	assert.Contains(t, notifier.errors[0], "sign in")
}

func TestToggleRollsBackOnServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	notifier := &recordingNotifier{}
	m := New(srv.Client(), srv.URL, "token", notifier)

	err := m.Toggle(context.Background(), 1)
	require.Error(t, err)
	assert.False(t, m.Contains(1))
	require.Len(t, notifier.errors, 1)
	assert.Equal(t, genericFailure, notifier.errors[0])
}

func TestToggleRollsBackOnTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	notifier := &recordingNotifier{}
	m := New(http.DefaultClient, srv.URL, "token", notifier)
	m.products[1] = struct{}{}

	err := m.Toggle(context.Background(), 1)
	require.Error(t, err)

	// Removal was rolled back.
	assert.True(t, m.Contains(1))
	require.Len(t, notifier.errors, 1)
	assert.Equal(t, genericFailure, notifier.errors[0])
}

func TestToggleDropsOverlappingRequestForSameProduct(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(entered)
		<-release
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"message":"Added to wishlist"}`))
	}))
	defer srv.Close()

	m := New(srv.Client(), srv.URL, "token", nil)

	done := make(chan error, 1)
	go func() { done <- m.Toggle(context.Background(), 1) }()
	<-entered

	// Second toggle while the first is outstanding is refused.
	err := m.Toggle(context.Background(), 1)
	assert.ErrorIs(t, err, ErrToggleInFlight)

	close(release)
	require.NoError(t, <-done)
	assert.True(t, m.Contains(1))
}
