package qdrant

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/poiesic/docqa/vectorstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, search http.HandlerFunc) (*httptest.Server, *[]map[string]any) {
	t.Helper()

	var upserted []map[string]any
	mux := http.NewServeMux()
	mux.HandleFunc("PUT /collections/docs", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"result": true, "status": "ok"}`))
	})
	mux.HandleFunc("PUT /collections/docs/points", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Points []map[string]any `json:"points"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		upserted = append(upserted, body.Points...)
		w.Write([]byte(`{"result": {"status": "completed"}, "status": "ok"}`))
	})
	if search != nil {
		mux.HandleFunc("POST /collections/docs/points/search", search)
	}

	return httptest.NewServer(mux), &upserted
}

func TestUpsertSendsPoints(t *testing.T) {
	srv, upserted := newTestServer(t, nil)
	defer srv.Close()

	ix, err := NewIndex(context.Background(), Config{
		URL:        srv.URL,
		Collection: "docs",
		Dimension:  3,
	})
	require.NoError(t, err)

	err = ix.Upsert(context.Background(), []vectorstore.Entry{
		{ID: "p1", Text: "chunk one", Vector: []float32{1, 2, 3}, Metadata: map[string]string{"Header 1": "Intro"}},
	})
	require.NoError(t, err)

	require.Len(t, *upserted, 1)
	payload := (*upserted)[0]["payload"].(map[string]any)
	assert.Equal(t, "chunk one", payload["text"])
	assert.Equal(t, "Intro", payload["Header 1"])
}

func TestSearchParsesMatches(t *testing.T) {
	srv, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, float64(5), req["limit"])

		w.Write([]byte(`{"result": [
			{"id": "p1", "score": 0.92, "payload": {"text": "best", "Header 1": "A"}},
			{"id": "p2", "score": 0.41, "payload": {"text": "worse"}}
		], "status": "ok"}`))
	})
	defer srv.Close()

	ix, err := NewIndex(context.Background(), Config{URL: srv.URL, Collection: "docs", Dimension: 3})
	require.NoError(t, err)

	matches, err := ix.Search(context.Background(), []float32{1, 0, 0}, 5)
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, "best", matches[0].Entry.Text)
	assert.Equal(t, "A", matches[0].Entry.Metadata["Header 1"])
	assert.InDelta(t, 0.92, matches[0].Score, 1e-6)
}

func TestSearchUnavailable(t *testing.T) {
	srv, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
	})
	defer srv.Close()

	ix, err := NewIndex(context.Background(), Config{URL: srv.URL, Collection: "docs", Dimension: 3})
	require.NoError(t, err)

	_, err = ix.Search(context.Background(), []float32{1}, 5)
	assert.ErrorIs(t, err, vectorstore.ErrUnavailable)
}

func TestNewIndexValidation(t *testing.T) {
	ctx := context.Background()

	_, err := NewIndex(ctx, Config{Collection: "docs", Dimension: 3})
	assert.Error(t, err)

	_, err = NewIndex(ctx, Config{URL: "http://localhost:6333", Dimension: 3})
	assert.Error(t, err)

	_, err = NewIndex(ctx, Config{URL: "http://localhost:6333", Collection: "docs"})
	assert.Error(t, err)
}
