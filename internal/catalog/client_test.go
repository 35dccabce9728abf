package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/davidrenteria/shopvista-backend/pkg/config"
	pkgerrors "github.com/davidrenteria/shopvista-backend/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const feedBody = `[
	{"id":1,"title":"Backpack","price":109.95,"description":"Fits laptops","category":"men's clothing","image":"https://img.test/1.jpg","rating":{"rate":3.9,"count":120}},
	{"id":2,"title":"SSD","price":64,"description":"External drive","category":"electronics","image":"https://img.test/2.jpg"},
	{"id":0,"title":"Broken","price":5,"description":"missing id","category":"junk","image":""},
	{"id":3,"title":"","price":10,"description":"missing title","category":"junk","image":""}
]`

func newTestClient(t *testing.T, url string) *Client {
	t.Helper()
	client, err := NewClient(ClientParams{Config: config.CatalogConfig{URL: url}})
	require.NoError(t, err)
	return client
}

func TestFetchValidatesAndQuarantines(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(feedBody))
	}))
	defer server.Close()

	cat, err := newTestClient(t, server.URL).Fetch(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, cat.Len(), "malformed records should be quarantined")

	p, ok := cat.FindByID(1)
	require.True(t, ok)
	assert.Equal(t, "Backpack", p.Title)
	require.NotNil(t, p.Rating)
	assert.InDelta(t, 3.9, p.Rating.Rate, 0.001)

	_, ok = cat.FindByID(3)
	assert.False(t, ok, "blank-title record should be dropped")
}

func TestFetchServerErrorIsCatalogUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := newTestClient(t, server.URL).Fetch(context.Background())
	require.Error(t, err)

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeCatalogUnavailable, typed.Code())
}

func TestFetchMalformedBodyIsCatalogUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"not":"an array"`))
	}))
	defer server.Close()

	_, err := newTestClient(t, server.URL).Fetch(context.Background())
	require.Error(t, err)

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeCatalogUnavailable, typed.Code())
}

func TestFetchUnreachableSourceIsCatalogUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	_, err := newTestClient(t, server.URL).Fetch(context.Background())
	require.Error(t, err)

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeCatalogUnavailable, typed.Code())
}

func TestNewClientRequiresURL(t *testing.T) {
	_, err := NewClient(ClientParams{Config: config.CatalogConfig{URL: "  "}})
	require.Error(t, err)
}
