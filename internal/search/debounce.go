// Package search implements the debounced autocomplete pattern used by the
// dashboard's lookup fields: a minimum query length, a debounce interval,
// and cancellation of the previous in-flight request before each new one.
package search

import (
	"context"
	"sync"
	"time"

	"mediadesk/internal/async"
	"mediadesk/internal/logging"
)

// Suggestion is one autocomplete result.
type Suggestion struct {
	Value    string `json:"value"`
	Label    string `json:"label"`
	Resource string `json:"resource,omitempty"`
}

// Func runs one search request. It must honor ctx cancellation.
type Func func(ctx context.Context, query string) ([]Suggestion, error)

// Config tunes the debouncer.
type Config struct {
	MinQueryLength int
	Interval       time.Duration
	MaxSuggestions int
}

// DefaultConfig matches the dashboard defaults.
func DefaultConfig() Config {
	return Config{MinQueryLength: 2, Interval: 250 * time.Millisecond, MaxSuggestions: 8}
}

// Debouncer coalesces keystrokes into at most one in-flight search. Each
// Query resets the timer; when it fires the previous request's context is
// cancelled before the new request goes out, and results from superseded
// requests are dropped.
type Debouncer struct {
	cfg       Config
	search    Func
	onResults func([]Suggestion)
	onError   func(error)
	logger    logging.Logger

	mu     sync.Mutex
	timer  *time.Timer
	cancel context.CancelFunc
	seq    int
	closed bool
}

// NewDebouncer wires the search function to the result callbacks. Either
// callback may be nil.
func NewDebouncer(cfg Config, search Func, onResults func([]Suggestion), onError func(error), logger logging.Logger) *Debouncer {
	if cfg.MinQueryLength <= 0 {
		cfg.MinQueryLength = DefaultConfig().MinQueryLength
	}
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultConfig().Interval
	}
	if cfg.MaxSuggestions <= 0 {
		cfg.MaxSuggestions = DefaultConfig().MaxSuggestions
	}
	return &Debouncer{
		cfg:       cfg,
		search:    search,
		onResults: onResults,
		onError:   onError,
		logger:    logging.OrNop(logger),
	}
}

// Query registers a keystroke. Queries shorter than the minimum clear any
// pending work and deliver an empty suggestion set.
func (d *Debouncer) Query(q string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return
	}

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}

	if len([]rune(q)) < d.cfg.MinQueryLength {
		d.cancelInflightLocked()
		d.seq++
		if d.onResults != nil {
			d.onResults(nil)
		}
		return
	}

	d.timer = time.AfterFunc(d.cfg.Interval, func() {
		d.fire(q)
	})
}

func (d *Debouncer) fire(q string) {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.cancelInflightLocked()
	d.seq++
	seq := d.seq
	ctx, cancel := context.WithCancel(context.Background())
	d.cancel = cancel
	d.mu.Unlock()

	async.Go(d.logger, "autocomplete-search", func() {
		results, err := d.search(ctx, q)

		d.mu.Lock()
		superseded := seq != d.seq || d.closed
		d.mu.Unlock()
		if superseded || ctx.Err() != nil {
			return // a newer keystroke owns the field now
		}

		if err != nil {
			if d.onError != nil {
				d.onError(err)
			}
			return
		}
		if len(results) > d.cfg.MaxSuggestions {
			results = results[:d.cfg.MaxSuggestions]
		}
		if d.onResults != nil {
			d.onResults(results)
		}
	})
}

// Close cancels pending and in-flight work.
func (d *Debouncer) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closed = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.cancelInflightLocked()
}

func (d *Debouncer) cancelInflightLocked() {
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
}
