// Package imagesub implements asynchronous image substitution for asset
// slots: fetch the bytes behind a URI, decode them, install the decoded
// image on the slot, and release the extra reference once installed.
//
// Scheduling never blocks the caller. Fetch and decode failures are
// reported only on the error channel, decoupled from the scheduling call;
// the previously installed image is left unchanged and nothing is retried.
//
// At most one substitution per asset is in flight: scheduling a newer one
// cancels the older via context, so the last scheduled request wins instead
// of racing.
package imagesub

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"net/url"
	"os"
	"sync"
	"time"

	"github.com/arthur-debert/marionette/pkg/errors"
	"github.com/arthur-debert/marionette/pkg/logging"
	"github.com/arthur-debert/marionette/pkg/runtime"
)

// DefaultMaxBytes caps fetched image payloads at 32 MiB
const DefaultMaxBytes = 32 << 20

// Error is one failed substitution, delivered on the error channel
type Error struct {
	Asset string
	URI   string
	Err   error
}

func (e Error) Error() string {
	return fmt.Sprintf("substituting %s from %s: %v", e.Asset, e.URI, e.Err)
}

// Options configures a Substituter
type Options struct {
	// Client is the HTTP client for http/https URIs.
	// Defaults to a client with a 30 second timeout.
	Client *http.Client

	// MaxBytes caps the fetched payload size. Defaults to DefaultMaxBytes.
	MaxBytes int64

	// UserAgent is sent on HTTP requests when non-empty
	UserAgent string

	// ErrorBuffer sizes the error channel. Defaults to 16.
	ErrorBuffer int
}

// Substituter schedules and runs image substitutions
type Substituter struct {
	client    *http.Client
	maxBytes  int64
	userAgent string

	errs chan Error

	mu       sync.Mutex
	inflight map[string]*task
	closed   bool
	wg       sync.WaitGroup
}

// task identifies one in-flight substitution so a finished task only clears
// its own inflight entry, never a superseding one's
type task struct {
	cancel context.CancelFunc
}

// New creates a Substituter
func New(opts Options) *Substituter {
	client := opts.Client
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	maxBytes := opts.MaxBytes
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	buffer := opts.ErrorBuffer
	if buffer <= 0 {
		buffer = 16
	}

	return &Substituter{
		client:    client,
		maxBytes:  maxBytes,
		userAgent: opts.UserAgent,
		errs:      make(chan Error, buffer),
		inflight:  make(map[string]*task),
	}
}

// Errors returns the error-observation channel. Failed substitutions are
// reported here asynchronously; when nobody drains the channel, entries
// beyond its buffer are dropped rather than blocking substitution work.
func (s *Substituter) Errors() <-chan Error {
	return s.errs
}

// Schedule starts an asynchronous substitution of the asset's image from
// the given URI and returns immediately. An in-flight substitution for the
// same asset is cancelled and superseded.
func (s *Substituter) Schedule(asset runtime.Asset, uri string) {
	logger := logging.GetLogger("imagesub")

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		logger.Warn().Str("asset", asset.Name()).Msg("Substituter closed, dropping request")
		return
	}
	if prev, ok := s.inflight[asset.Name()]; ok {
		logger.Debug().Str("asset", asset.Name()).Msg("Superseding in-flight substitution")
		prev.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	tk := &task{cancel: cancel}
	s.inflight[asset.Name()] = tk
	s.wg.Add(1)
	s.mu.Unlock()

	go s.run(ctx, tk, asset, uri)
}

// Close waits for in-flight substitutions to finish and closes the error
// channel. In-flight work is not cancelled; no further scheduling is
// accepted.
func (s *Substituter) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.mu.Unlock()

	s.wg.Wait()
	close(s.errs)
}

func (s *Substituter) run(ctx context.Context, tk *task, asset runtime.Asset, uri string) {
	logger := logging.GetLogger("imagesub")
	defer s.wg.Done()
	defer tk.cancel()
	defer s.clearInflight(asset.Name(), tk)

	img, err := s.fetchAndDecode(ctx, uri)
	if err != nil {
		if ctx.Err() != nil {
			// superseded; the newer request reports its own outcome
			logger.Debug().Str("asset", asset.Name()).Str("uri", uri).Msg("Substitution superseded")
			return
		}
		s.report(Error{Asset: asset.Name(), URI: uri, Err: err})
		return
	}

	if ctx.Err() != nil {
		img.Release()
		logger.Debug().Str("asset", asset.Name()).Str("uri", uri).Msg("Substitution superseded after decode")
		return
	}

	err = asset.ReplaceImage(img)
	// the runtime holds its own reference now; drop ours either way
	img.Release()
	if err != nil {
		s.report(Error{Asset: asset.Name(), URI: uri,
			Err: errors.Wrap(err, errors.ErrInternal, "installing decoded image")})
		return
	}

	logger.Debug().Str("asset", asset.Name()).Str("uri", uri).Msg("Image installed")
}

func (s *Substituter) clearInflight(key string, tk *task) {
	s.mu.Lock()
	defer s.mu.Unlock()
	// only clear our own entry; a superseding request may have replaced it
	if current, ok := s.inflight[key]; ok && current == tk {
		delete(s.inflight, key)
	}
}

func (s *Substituter) report(err Error) {
	select {
	case s.errs <- err:
	default:
		logger := logging.GetLogger("imagesub")
		logger.Warn().
			Str("asset", err.Asset).
			Err(err.Err).
			Msg("Error channel full, dropping substitution error")
	}
}

func (s *Substituter) fetchAndDecode(ctx context.Context, uri string) (*Image, error) {
	data, err := s.fetch(ctx, uri)
	if err != nil {
		return nil, err
	}

	decoded, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrDecodeFailed, "decoding image from %s", uri)
	}

	return &Image{img: decoded, format: format}, nil
}

func (s *Substituter) fetch(ctx context.Context, uri string) ([]byte, error) {
	parsed, err := url.Parse(uri)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFetchFailed, "parsing URI %s", uri)
	}

	switch parsed.Scheme {
	case "http", "https":
		return s.fetchHTTP(ctx, uri)
	case "file", "":
		return s.fetchFile(parsed.Path)
	}
	return nil, errors.Newf(errors.ErrFetchFailed, "unsupported URI scheme %q", parsed.Scheme)
}

func (s *Substituter) fetchHTTP(ctx context.Context, uri string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFetchFailed, "building request for %s", uri)
	}
	if s.userAgent != "" {
		req.Header.Set("User-Agent", s.userAgent)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFetchFailed, "fetching %s", uri)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Newf(errors.ErrFetchFailed, "fetching %s: status %d", uri, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, s.maxBytes+1))
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFetchFailed, "reading %s", uri)
	}
	if int64(len(data)) > s.maxBytes {
		return nil, errors.Newf(errors.ErrFetchFailed, "%s exceeds the %d byte limit", uri, s.maxBytes)
	}
	return data, nil
}

func (s *Substituter) fetchFile(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFetchFailed, "reading %s", path)
	}
	if info.Size() > s.maxBytes {
		return nil, errors.Newf(errors.ErrFetchFailed, "%s exceeds the %d byte limit", path, s.maxBytes)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFetchFailed, "reading %s", path)
	}
	return data, nil
}
