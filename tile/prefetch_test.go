package tile

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"gridnav/zone"
)

func testZone(minZoom, maxZoom int) zone.Zone {
	return zone.Zone{
		Name:    "Test Sector",
		Bounds:  zone.Bounds{MinLat: 28, MinLng: 76.5, MaxLat: 29, MaxLng: 77.5},
		MinZoom: minZoom,
		MaxZoom: maxZoom,
	}
}

func drain(t *testing.T, ch <-chan Progress) Progress {
	t.Helper()
	var last Progress
	for p := range ch {
		last = p
	}
	if last.Outcome == OutcomeNone {
		t.Fatal("progress stream ended without a terminal outcome")
	}
	return last
}

func TestFetchAlreadyCached(t *testing.T) {
	var requests atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
	}))
	defer server.Close()

	z := testZone(10, 10)
	layer := Layer{Key: "topo", URLTemplate: server.URL + "/{z}/{x}/{y}.png"}

	reg := NewMemoryRegistry()
	reg.Add(CacheKey(z, layer))

	p := NewPrefetcher(server.Client(), reg, nil, nil)
	last := drain(t, p.Fetch(context.Background(), z, layer))
	if last.Outcome != OutcomeAlreadyCached {
		t.Fatalf("outcome = %v, want OutcomeAlreadyCached", last.Outcome)
	}
	if requests.Load() != 0 {
		t.Errorf("issued %d requests for a cached zone, want 0", requests.Load())
	}
}

func TestFetchSuccessRegisters(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("tile"))
	}))
	defer server.Close()

	z := testZone(10, 10) // 16 tiles
	layer := Layer{Key: "topo", URLTemplate: server.URL + "/{z}/{x}/{y}.png"}
	reg := NewMemoryRegistry()
	store, _ := NewMemoryStore(64)

	p := NewPrefetcher(server.Client(), reg, store, nil)
	last := drain(t, p.Fetch(context.Background(), z, layer))

	if last.Outcome != OutcomeDone {
		t.Fatalf("outcome = %v, want OutcomeDone", last.Outcome)
	}
	if last.Fetched != 16 || last.Failed != 0 {
		t.Errorf("fetched %d failed %d, want 16/0", last.Fetched, last.Failed)
	}
	if !reg.Contains(CacheKey(z, layer)) {
		t.Error("completed zone not registered")
	}
	if store.Len() != 16 {
		t.Errorf("store holds %d tiles, want 16", store.Len())
	}
}

func TestFetchFailureThreshold(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	z := testZone(10, 10)
	layer := Layer{Key: "topo", URLTemplate: server.URL + "/{z}/{x}/{y}.png"}
	reg := NewMemoryRegistry()

	p := NewPrefetcher(server.Client(), reg, nil, nil)
	last := drain(t, p.Fetch(context.Background(), z, layer))

	if last.Outcome != OutcomeFailed {
		t.Fatalf("outcome = %v, want OutcomeFailed", last.Outcome)
	}
	if reg.Contains(CacheKey(z, layer)) {
		t.Error("failed run must not register the zone")
	}
}

func TestFetchToleratesSparseFailures(t *testing.T) {
	// One failure out of 16 tiles is under the 10% threshold.
	var requests atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if requests.Add(1) == 1 {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		w.Write([]byte("tile"))
	}))
	defer server.Close()

	z := testZone(10, 10)
	layer := Layer{Key: "topo", URLTemplate: server.URL + "/{z}/{x}/{y}.png"}
	reg := NewMemoryRegistry()

	p := NewPrefetcher(server.Client(), reg, nil, nil)
	last := drain(t, p.Fetch(context.Background(), z, layer))

	if last.Outcome != OutcomeDone {
		t.Fatalf("outcome = %v, want OutcomeDone", last.Outcome)
	}
	if last.Failed != 1 {
		t.Errorf("failed = %d, want 1", last.Failed)
	}
	if !reg.Contains(CacheKey(z, layer)) {
		t.Error("run under the failure threshold should register")
	}
}

func TestFetchCancelMidBatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(5 * time.Millisecond)
		w.Write([]byte("tile"))
	}))
	defer server.Close()

	z := testZone(10, 12) // 226 tiles: several chunks
	layer := Layer{Key: "topo", URLTemplate: server.URL + "/{z}/{x}/{y}.png"}
	reg := NewMemoryRegistry()

	ctx, cancel := context.WithCancel(context.Background())
	p := NewPrefetcher(server.Client(), reg, nil, nil)
	ch := p.Fetch(ctx, z, layer)

	// Cancel after the first chunk reports.
	<-ch
	cancel()

	last := drain(t, ch)
	if last.Outcome != OutcomeCancelled {
		t.Fatalf("outcome = %v, want OutcomeCancelled", last.Outcome)
	}
	if reg.Contains(CacheKey(z, layer)) {
		t.Error("cancelled run must leave the registry unchanged")
	}
}

func TestFetchSupersedesPriorRun(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(5 * time.Millisecond)
		w.Write([]byte("tile"))
	}))
	defer server.Close()

	zA := testZone(10, 12)
	zB := testZone(10, 10)
	zB.Name = "Other Sector"
	layer := Layer{Key: "topo", URLTemplate: server.URL + "/{z}/{x}/{y}.png"}
	reg := NewMemoryRegistry()

	p := NewPrefetcher(server.Client(), reg, nil, nil)
	chA := p.Fetch(context.Background(), zA, layer)
	<-chA // first run is underway
	chB := p.Fetch(context.Background(), zB, layer)

	if last := drain(t, chA); last.Outcome != OutcomeCancelled {
		t.Fatalf("first run outcome = %v, want OutcomeCancelled", last.Outcome)
	}
	if last := drain(t, chB); last.Outcome != OutcomeDone {
		t.Fatalf("second run outcome = %v, want OutcomeDone", last.Outcome)
	}
	if reg.Contains(CacheKey(zA, layer)) {
		t.Error("superseded run must not register its zone")
	}
	if !reg.Contains(CacheKey(zB, layer)) {
		t.Error("second run should register its zone")
	}
}
