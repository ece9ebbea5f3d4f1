package source

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

func TestGetReservation(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/reservations/R1", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(Reservation{
			ID:        "R1",
			Type:      "booked",
			Status:    "Confirmada",
			ListingID: "L1",
			CheckIn:   "2026-09-01",
			CheckOut:  "2026-09-05",
		})
	})

	res, err := client.GetReservation(context.Background(), "R1")
	require.NoError(t, err)
	assert.Equal(t, "R1", res.ID)
	assert.Equal(t, "L1", res.ListingID)
}

func TestGetListing_NotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := client.GetListing(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetGuest_ServerError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	_, err := client.GetGuest(context.Background(), "G1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}

func TestSearchReservations_Paged(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/reservations/search", r.URL.Path)
		page := r.URL.Query().Get("page")

		switch page {
		case "1":
			json.NewEncoder(w).Encode(searchPage{
				Items: []Reservation{{ID: "R1"}, {ID: "R2"}},
				Page:  1,
				Pages: 2,
			})
		case "2":
			json.NewEncoder(w).Encode(searchPage{
				Items: []Reservation{{ID: "R3"}},
				Page:  2,
				Pages: 2,
			})
		default:
			t.Fatalf("unexpected page %q", page)
		}
	})

	all, err := client.SearchReservations(context.Background(), SearchQuery{
		From: "2026-09-01", To: "2026-09-30", ListingID: "L1",
	})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "R3", all[2].ID)
}
