package sink

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) Client {
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(Config{BaseURL: srv.URL, Token: "tok"})
}

func TestList(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/tables/reservas/records", r.URL.Path)
		assert.Equal(t, "R1", r.URL.Query().Get("cod_reserva"))
		assert.Equal(t, "tok", r.Header.Get("X-Api-Token"))

		w.Write([]byte(`{"data":{"items":[{"id_resv":7,"cod_reserva":"R1"}]}}`))
	})

	items, err := client.List(context.Background(), "reservas", map[string]string{"cod_reserva": "R1"})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, float64(7), items[0]["id_resv"])
}

func TestList_Empty(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":{"items":[]}}`))
	})

	items, err := client.List(context.Background(), "reservas", nil)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestCreate_EchoesID(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)

		var body Record
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "R1", body["cod_reserva"])

		body["id_resv"] = 42
		json.NewEncoder(w).Encode(map[string]any{"data": body})
	})

	rec, err := client.Create(context.Background(), "reservas", Record{"cod_reserva": "R1"})
	require.NoError(t, err)
	assert.Equal(t, float64(42), rec["id_resv"])
}

func TestCreate_NoEcho(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	})

	_, err := client.Create(context.Background(), "reservas", Record{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "echoed no record")
}

func TestUpdate_NonSuccessStatus(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		http.Error(w, "bad column", http.StatusUnprocessableEntity)
	})

	err := client.Update(context.Background(), "reservas", Record{"id_resv": 42})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "422")
}
