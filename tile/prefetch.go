package tile

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"gridnav/zone"
)

const (
	chunkSize  = 50                    // tiles requested per batch
	chunkPause = 50 * time.Millisecond // breather between batches
)

// Outcome is the terminal state of a prefetch run.
type Outcome int

const (
	OutcomeNone          Outcome = iota // run still in progress
	OutcomeAlreadyCached                // zone/layer was already registered
	OutcomeDone                         // fetched and registered
	OutcomeFailed                       // more than 10% of tiles failed
	OutcomeCancelled                    // cancelled before completion
)

// Progress is emitted after each chunk and once at the end of a run.
type Progress struct {
	Fetched int
	Failed  int
	Total   int
	Outcome Outcome
}

// Prefetcher downloads every tile covering a zone and records the
// completed zone/layer pair in the registry. At most one run is active:
// starting a new one cancels the previous run first.
type Prefetcher struct {
	client   *http.Client
	registry Registry
	store    Store
	log      *slog.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
}

// NewPrefetcher wires a prefetcher to its collaborators. A nil client
// uses http.DefaultClient; a nil logger uses the process default.
func NewPrefetcher(client *http.Client, registry Registry, store Store, logger *slog.Logger) *Prefetcher {
	if client == nil {
		client = http.DefaultClient
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Prefetcher{client: client, registry: registry, store: store, log: logger}
}

// CacheKey is the registry key for a zone/layer pair.
func CacheKey(z zone.Zone, layer Layer) string {
	return z.Key() + "_" + layer.Key
}

// Fetch starts a prefetch run and returns its progress stream. The
// channel is closed after the terminal Progress is sent. Cancellation
// is cooperative: the supplied context (and any later Fetch call) stops
// the run at the next chunk boundary without registering the zone.
func (p *Prefetcher) Fetch(ctx context.Context, z zone.Zone, layer Layer) <-chan Progress {
	p.mu.Lock()
	if p.cancel != nil {
		p.cancel()
	}
	ctx, p.cancel = context.WithCancel(ctx)
	p.mu.Unlock()

	ch := make(chan Progress, 1)
	go p.run(ctx, z, layer, ch)
	return ch
}

// Cancel stops the in-flight run, if any.
func (p *Prefetcher) Cancel() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
}

func (p *Prefetcher) run(ctx context.Context, z zone.Zone, layer Layer, ch chan<- Progress) {
	defer close(ch)

	key := CacheKey(z, layer)
	if p.registry.Contains(key) {
		ch <- Progress{Outcome: OutcomeAlreadyCached}
		return
	}

	addrs := Plan(z)
	total := len(addrs)
	p.log.Info("prefetch starting", "zone", z.Name, "layer", layer.Key, "tiles", total)

	var failed atomic.Int64
	fetched := 0

	for start := 0; start < total; start += chunkSize {
		if ctx.Err() != nil {
			p.log.Info("prefetch cancelled", "zone", z.Name, "fetched", fetched)
			ch <- Progress{Fetched: fetched, Failed: int(failed.Load()), Total: total, Outcome: OutcomeCancelled}
			return
		}

		end := start + chunkSize
		if end > total {
			end = total
		}

		g, gctx := errgroup.WithContext(ctx)
		for _, addr := range addrs[start:end] {
			addr := addr
			g.Go(func() error {
				if err := p.fetchTile(gctx, layer, addr); err != nil {
					failed.Add(1)
					p.log.Debug("tile fetch failed", "tile", addr.String(), "err", err)
				}
				return nil
			})
		}
		g.Wait()

		fetched = end
		ch <- Progress{Fetched: fetched, Failed: int(failed.Load()), Total: total}

		if end < total {
			select {
			case <-ctx.Done():
			case <-time.After(chunkPause):
			}
		}
	}

	nFailed := int(failed.Load())
	if float64(nFailed) > 0.10*float64(total) {
		p.log.Warn("prefetch failed", "zone", z.Name, "failed", nFailed, "total", total)
		ch <- Progress{Fetched: fetched, Failed: nFailed, Total: total, Outcome: OutcomeFailed}
		return
	}

	if err := p.registry.Add(key); err != nil {
		// Persistence trouble is logged but doesn't fail the run; the
		// tiles are cached either way.
		p.log.Error("registry write failed", "key", key, "err", err)
	}
	ch <- Progress{Fetched: fetched, Failed: nFailed, Total: total, Outcome: OutcomeDone}
}

func (p *Prefetcher) fetchTile(ctx context.Context, layer Layer, addr Address) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, layer.URL(addr), nil)
	if err != nil {
		return err
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("tile server returned %s", resp.Status)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if p.store != nil {
		p.store.Put(layer.Key, addr, data)
	}
	return nil
}
