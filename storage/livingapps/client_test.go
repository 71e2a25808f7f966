package livingapps

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mnogodumalon/kurs96/core"
	"github.com/mnogodumalon/kurs96/core/record"
)

const testAppID = "6356d1f3c9a26c3f2cbf99a1"

func newTestStore(t *testing.T, handler http.HandlerFunc) record.Store {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewStore(Options{
		BaseURL: srv.URL,
		Token:   "secret-token",
		Client:  srv.Client(),
	})
}

func TestList(t *testing.T) {
	store := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/rest/apps/"+testAppID+"/records", r.URL.Path)
		assert.Equal(t, "Bearer secret-token", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"record_id": "rec1", "fields": {"name": "Dr. Anna Weber"}},
			{"record_id": "rec2", "fields": {"name": "Prof. Jonas Keller"}}
		]`))
	})

	recs, err := store.List(context.Background(), testAppID)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "rec1", recs[0].ID)
	assert.Equal(t, "Dr. Anna Weber", recs[0].Fields["name"])
}

func TestGet(t *testing.T) {
	store := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rest/apps/"+testAppID+"/records/rec1", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"record_id": "rec1", "fields": {"name": "Dr. Anna Weber"}}`))
	})

	rec, err := store.Get(context.Background(), testAppID, "rec1")
	require.NoError(t, err)
	assert.Equal(t, "rec1", rec.ID)
}

func TestGetNotFound(t *testing.T) {
	store := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no such record", http.StatusNotFound)
	})

	_, err := store.Get(context.Background(), testAppID, "nope")
	assert.ErrorIs(t, err, record.ErrNotFound)
}

func TestCreate(t *testing.T) {
	store := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/rest/apps/"+testAppID+"/records", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		// the payload travels inside a fields envelope
		var body struct {
			Fields map[string]interface{} `json:"fields"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Dr. Anna Weber", body.Fields["name"])

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"record_id": "rec1", "fields": {"name": "Dr. Anna Weber"}}`))
	})

	rec, err := store.Create(context.Background(), testAppID, map[string]interface{}{"name": "Dr. Anna Weber"})
	require.NoError(t, err)
	assert.Equal(t, "rec1", rec.ID)
}

func TestCreateValidationError(t *testing.T) {
	store := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error": "record rejected", "fields": {"email": "not a valid email address"}}`))
	})

	_, err := store.Create(context.Background(), testAppID, map[string]interface{}{"email": "nope"})
	require.Error(t, err)

	var vErr *core.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "record rejected", vErr.Error())
	require.Len(t, vErr.Fields, 1)
	assert.Equal(t, core.FieldError{Field: "email", Error: "not a valid email address"}, vErr.Fields[0])
}

func TestCreateValidationErrorEmptyBody(t *testing.T) {
	store := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
	})

	_, err := store.Create(context.Background(), testAppID, nil)
	require.Error(t, err)

	var vErr *core.ValidationError
	assert.ErrorAs(t, err, &vErr)
}

func TestUpdate(t *testing.T) {
	store := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/rest/apps/"+testAppID+"/records/rec1", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	})

	err := store.Update(context.Background(), testAppID, "rec1", map[string]interface{}{"name": "X"})
	assert.NoError(t, err)
}

func TestDelete(t *testing.T) {
	store := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/rest/apps/"+testAppID+"/records/rec1", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	})

	assert.NoError(t, store.Delete(context.Background(), testAppID, "rec1"))
}

func TestServerError(t *testing.T) {
	store := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	_, err := store.List(context.Background(), testAppID)
	require.Error(t, err)

	var tErr *record.TransportError
	require.ErrorAs(t, err, &tErr)
	assert.Contains(t, tErr.Error(), "500")
}

func TestNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close() // connection refused from here on

	store := NewStore(Options{BaseURL: srv.URL})
	_, err := store.List(context.Background(), testAppID)
	require.Error(t, err)

	var tErr *record.TransportError
	assert.ErrorAs(t, err, &tErr)
}

func TestBadResponseBody(t *testing.T) {
	store := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{not json`))
	})

	_, err := store.List(context.Background(), testAppID)
	require.Error(t, err)

	var tErr *record.TransportError
	assert.ErrorAs(t, err, &tErr)
}
