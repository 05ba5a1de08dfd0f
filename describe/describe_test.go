package describe

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"gridnav/geodesy"
)

var testPoint = geodesy.Coordinate{Lat: 28.6139, Lng: 77.2090}

func TestDescribe(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("lat") == "" || r.URL.Query().Get("lng") == "" {
			t.Error("missing coordinate parameters")
		}
		w.Write([]byte(`{"description": "Ridge north of the river crossing"}`))
	}))
	defer server.Close()

	got := New(server.URL).Describe(context.Background(), testPoint)
	if got != "Ridge north of the river crossing" {
		t.Errorf("description = %q", got)
	}
}

func TestDescribeFallsBack(t *testing.T) {
	failing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	defer failing.Close()
	empty := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"description": "  "}`))
	}))
	defer empty.Close()

	cases := []struct {
		name   string
		client *Client
	}{
		{"service error", New(failing.URL)},
		{"empty result", New(empty.URL)},
		{"no endpoint", New("")},
		{"unreachable", New("http://127.0.0.1:1")},
	}
	for _, c := range cases {
		if got := c.client.Describe(context.Background(), testPoint); got != Fallback {
			t.Errorf("%s: got %q, want fallback", c.name, got)
		}
	}

	if got := New(failing.URL).Describe(context.Background(), geodesy.Coordinate{Lat: 99}); got != Fallback {
		t.Errorf("invalid coordinate: got %q, want fallback", got)
	}
}
