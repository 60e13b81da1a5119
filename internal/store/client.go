package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/epochline/epochline/internal/timeline"
	logpkg "github.com/epochline/epochline/pkg/log"
)

// Version is the store's opaque version token. It changes on every
// successful write and has no meaning beyond equality comparison.
type Version string

// Options configures the store client.
type Options struct {
	// BaseURL is the remote store's base URL, without trailing slash.
	BaseURL string
	// DocPath is the document path under BaseURL, with leading slash.
	DocPath string
	// AuthToken is sent as a bearer token when non-empty.
	AuthToken string
	// HTTPClient overrides the default client (10s timeout).
	HTTPClient *http.Client
	// CacheTTL bounds the read cache. Zero disables caching.
	CacheTTL time.Duration
	// Logger receives read/write telemetry.
	Logger logpkg.Logger
}

// Client reads and writes the single timeline document against the remote
// versioned store.
type Client struct {
	docURL    string
	authToken string
	hc        *http.Client
	cache     *docCache
	logger    logpkg.Logger
}

// New constructs a Client.
func New(opts Options) (*Client, error) {
	if opts.BaseURL == "" {
		return nil, errors.New("store: Options.BaseURL is required")
	}
	if opts.DocPath == "" {
		return nil, errors.New("store: Options.DocPath is required")
	}
	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: 10 * time.Second}
	}
	logger := opts.Logger
	if logger == nil {
		logger = logpkg.NewLogger(logpkg.WithOutput(logpkg.NewNullOutput()))
	}
	return &Client{
		docURL:    strings.TrimRight(opts.BaseURL, "/") + opts.DocPath,
		authToken: opts.AuthToken,
		hc:        hc,
		cache:     newDocCache(opts.CacheTTL),
		logger:    logger.With(logpkg.Component("store")),
	}, nil
}

// Read fetches the current document and its version token from the remote
// store. The returned collection is always fully parsed; a malformed remote
// document is a read failure, not a partial result. A successful read primes
// the read cache.
func (c *Client) Read(ctx context.Context) (timeline.Collection, Version, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.docURL, nil)
	if err != nil {
		return timeline.Collection{}, "", &UnavailableError{Op: "read", Err: err}
	}
	c.setHeaders(req)

	resp, err := c.hc.Do(req)
	if err != nil {
		return timeline.Collection{}, "", &UnavailableError{Op: "read", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return timeline.Collection{}, "", &UnavailableError{Op: "read", Status: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return timeline.Collection{}, "", &UnavailableError{Op: "read", Err: err}
	}

	var col timeline.Collection
	if err := json.Unmarshal(body, &col); err != nil {
		return timeline.Collection{}, "", &UnavailableError{Op: "read", Err: fmt.Errorf("malformed document: %w", err)}
	}

	ver := versionFromETag(resp.Header.Get("ETag"))
	c.cache.put(col, ver)
	c.logger.Debug("document read", logpkg.Str("version", string(ver)), logpkg.Int("events", len(col.Events)))
	return col, ver, nil
}

// CachedRead serves the collection from the TTL-boxed read cache when fresh,
// falling back to a remote Read. Mutations never consult the cache; it only
// trims read traffic on the public list path.
func (c *Client) CachedRead(ctx context.Context) (timeline.Collection, Version, error) {
	if col, ver, ok := c.cache.get(); ok {
		return col, ver, nil
	}
	return c.Read(ctx)
}

// writeEnvelope is the PUT body: the serialized document plus the short
// human-readable change description the store attaches to its history.
type writeEnvelope struct {
	Content json.RawMessage `json:"content"`
	Message string          `json:"message"`
}

type writeResponse struct {
	Version string `json:"version"`
}

// Write replaces the document, preconditioned on the supplied version token.
// An empty token requests create-if-absent semantics. On success the read
// cache is invalidated and the new token returned.
func (c *Client) Write(ctx context.Context, col timeline.Collection, ver Version, message string) (Version, error) {
	doc, err := json.MarshalIndent(col, "", "  ")
	if err != nil {
		return "", &UnavailableError{Op: "write", Err: err}
	}
	body, err := json.Marshal(writeEnvelope{Content: doc, Message: message})
	if err != nil {
		return "", &UnavailableError{Op: "write", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.docURL, bytes.NewReader(body))
	if err != nil {
		return "", &UnavailableError{Op: "write", Err: err}
	}
	c.setHeaders(req)
	req.Header.Set("Content-Type", "application/json")
	if ver == "" {
		req.Header.Set("If-None-Match", "*")
	} else {
		req.Header.Set("If-Match", string(ver))
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return "", &UnavailableError{Op: "write", Err: err}
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
	case http.StatusConflict, http.StatusPreconditionFailed:
		io.Copy(io.Discard, resp.Body)
		return "", &ConflictError{Supplied: ver}
	default:
		io.Copy(io.Discard, resp.Body)
		return "", &UnavailableError{Op: "write", Status: resp.StatusCode}
	}

	newVer := versionFromETag(resp.Header.Get("ETag"))
	if newVer == "" {
		var wr writeResponse
		if err := json.NewDecoder(resp.Body).Decode(&wr); err == nil {
			newVer = Version(wr.Version)
		}
	}

	c.cache.invalidate()
	c.logger.Debug("document written",
		logpkg.Str("version", string(newVer)),
		logpkg.Str("message", message),
		logpkg.Int("events", len(col.Events)))
	return newVer, nil
}

func (c *Client) setHeaders(req *http.Request) {
	if c.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.authToken)
	}
	req.Header.Set("Accept", "application/json")
}

// versionFromETag strips weak-validator prefixes and quotes from an ETag
// header value. The result stays opaque.
func versionFromETag(v string) Version {
	v = strings.TrimPrefix(v, "W/")
	v = strings.Trim(v, `"`)
	return Version(v)
}
