// Package asset fetches the card's remote static assets and turns their
// completion into the single "asset ready" signal a mochi.Session waits for.
package asset

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/phanxgames/mochi"
)

// DefaultTimeout bounds a whole Preload when Fetcher.Timeout is zero.
const DefaultTimeout = 30 * time.Second

// DefaultMaxBytes caps a single asset body.
const DefaultMaxBytes = 64 << 20

// ErrTooLarge is returned when an asset body exceeds Fetcher.MaxBytes.
var ErrTooLarge = errors.New("asset: body too large")

// StatusError reports a non-2xx response.
type StatusError struct {
	URL    string
	Status int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("asset: GET %s: %d %s", e.URL, e.Status, http.StatusText(e.Status))
}

// Fetcher downloads assets over HTTP. The zero value is usable.
type Fetcher struct {
	Client   *http.Client  // nil means http.DefaultClient
	Timeout  time.Duration // whole-preload budget; 0 means DefaultTimeout
	MaxBytes int64         // per-asset cap; 0 means DefaultMaxBytes
}

func (f *Fetcher) client() *http.Client {
	if f.Client != nil {
		return f.Client
	}
	return http.DefaultClient
}

// Fetch downloads url and returns its body.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("asset: %w", err)
	}
	resp, err := f.client().Do(req)
	if err != nil {
		return nil, fmt.Errorf("asset: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{URL: url, Status: resp.StatusCode}
	}
	limit := f.MaxBytes
	if limit <= 0 {
		limit = DefaultMaxBytes
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return nil, fmt.Errorf("asset: read %s: %w", url, err)
	}
	if int64(len(body)) > limit {
		return nil, fmt.Errorf("%w: %s", ErrTooLarge, url)
	}
	return body, nil
}

// Preload fetches every non-empty url concurrently and returns the first
// failure. Empty urls stand for local assets and succeed immediately.
func (f *Fetcher) Preload(ctx context.Context, urls ...string) error {
	timeout := f.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)
	for _, url := range urls {
		if url == "" {
			continue
		}
		g.Go(func() error {
			start := time.Now()
			body, err := f.Fetch(ctx, url)
			if err != nil {
				return err
			}
			mochi.Debugf("asset %s: %d bytes in %v", url, len(body), time.Since(start).Round(time.Millisecond))
			return nil
		})
	}
	return g.Wait()
}

// Receiver is what a finished load is delivered to; *mochi.Session is one.
type Receiver interface {
	AssetReady()
}

// Load is a Preload running in the background. Its result is handed to the
// host loop through Deliver, so the receiver is only ever touched from the
// goroutine that polls.
type Load struct {
	done      chan struct{}
	err       error
	delivered bool
}

// Start runs Preload in a new goroutine. Cancel ctx to abandon it; an
// abandoned load fails and the card stays loading.
func (f *Fetcher) Start(ctx context.Context, urls ...string) *Load {
	l := &Load{done: make(chan struct{})}
	go func() {
		defer close(l.done)
		l.err = f.Preload(ctx, urls...)
	}()
	return l
}

// Ready returns a finished, successful load. Use it for cards whose model is
// local.
func Ready() *Load {
	l := &Load{done: make(chan struct{})}
	close(l.done)
	return l
}

// Done is closed once the load has finished.
func (l *Load) Done() <-chan struct{} {
	return l.done
}

// Err returns the load's failure. It is only meaningful after Done is closed.
func (l *Load) Err() error {
	select {
	case <-l.done:
		return l.err
	default:
		return nil
	}
}

// Deliver is called from the host loop every frame. Once the load has
// finished it signals r on success, or logs the failure and leaves r
// untouched, and reports true. Later calls do nothing and report true.
func (l *Load) Deliver(r Receiver) bool {
	if l.delivered {
		return true
	}
	select {
	case <-l.done:
	default:
		return false
	}
	l.delivered = true
	if l.err != nil {
		mochi.Debugf("asset load failed, staying in loading: %v", l.err)
		return true
	}
	r.AssetReady()
	return true
}
