package saved

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamasalanang-gerald/Servify-sub000/internal/credstore"
	"github.com/mamasalanang-gerald/Servify-sub000/internal/gateway"
	"github.com/mamasalanang-gerald/Servify-sub000/internal/session"
)

func newSet(t *testing.T, handler http.Handler, authenticated bool) *Set {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	store := credstore.NewMemory()
	sess := session.NewAccessor(store)
	if authenticated {
		require.NoError(t, sess.SetUser(session.User{
			Role:  session.RoleClient,
			Email: "dana@example.com",
			Token: "tok",
			ID:    "u-1",
		}))
	}

	gw, err := gateway.New(gateway.Config{BaseURL: server.URL, Store: store})
	require.NoError(t, err)
	return NewSet(gw, sess)
}

func TestSet_Refresh(t *testing.T) {
	set := newSet(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/saved-services", r.URL.Path)
		json.NewEncoder(w).Encode([]map[string]string{
			{"service_id": "svc-1"},
			{"id": "svc-2"},
		})
	}), true)

	require.NoError(t, set.Refresh(context.Background()))
	assert.True(t, set.IsSaved("svc-1"))
	assert.True(t, set.IsSaved("svc-2"))
	assert.False(t, set.IsSaved("svc-3"))
	assert.Len(t, set.IDs(), 2)
}

func TestSet_RefreshUnauthenticatedIsEmpty(t *testing.T) {
	var calls int32
	set := newSet(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	}), false)

	require.NoError(t, set.Refresh(context.Background()))
	assert.Zero(t, atomic.LoadInt32(&calls), "no network call without a session")
	assert.Empty(t, set.IDs())
}

func TestSet_SaveOptimisticThenConfirmed(t *testing.T) {
	set := newSet(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/saved-services/svc-42", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]string{"service_id": "svc-42"})
	}), true)

	require.NoError(t, set.Save(context.Background(), "svc-42"))
	assert.True(t, set.IsSaved("svc-42"))
}

// Scenario: the remote call rejects with a network error; membership is
// false both before and after the call settles.
func TestSet_SaveRollsBackOnFailure(t *testing.T) {
	server := httptest.NewServer(nil)
	serverURL := server.URL
	server.Close() // every call now fails at the transport

	store := credstore.NewMemory()
	sess := session.NewAccessor(store)
	require.NoError(t, sess.SetUser(session.User{Role: session.RoleClient, Email: "d@e.f", Token: "tok"}))

	gw, err := gateway.New(gateway.Config{BaseURL: serverURL, Store: store})
	require.NoError(t, err)
	set := NewSet(gw, sess)

	assert.False(t, set.IsSaved("svc-42"))
	err = set.Save(context.Background(), "svc-42")
	require.Error(t, err)
	assert.False(t, set.IsSaved("svc-42"), "failed save must leave no trace")
}

func TestSet_UnsaveRollsBackOnFailure(t *testing.T) {
	set := newSet(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			json.NewEncoder(w).Encode([]map[string]string{{"service_id": "svc-1"}})
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
	}), true)

	require.NoError(t, set.Refresh(context.Background()))
	require.True(t, set.IsSaved("svc-1"))

	err := set.Unsave(context.Background(), "svc-1")
	require.Error(t, err)
	assert.True(t, set.IsSaved("svc-1"), "failed unsave must restore membership")
}

func TestSet_RequiresAuthentication(t *testing.T) {
	var calls int32
	set := newSet(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	}), false)

	require.ErrorIs(t, set.Save(context.Background(), "svc-1"), ErrNotAuthenticated)
	require.ErrorIs(t, set.Unsave(context.Background(), "svc-1"), ErrNotAuthenticated)
	assert.Zero(t, atomic.LoadInt32(&calls))
}
