package runtime

import (
	"context"
	"errors"
	"net/http"
	"path/filepath"
	"time"

	"github.com/epochline/epochline/internal/audit"
	cfgpkg "github.com/epochline/epochline/internal/config"
	pebblestore "github.com/epochline/epochline/internal/storage/pebble"
	"github.com/epochline/epochline/internal/store"
	"github.com/epochline/epochline/pkg/id"
	logpkg "github.com/epochline/epochline/pkg/log"
)

// Options for building the Runtime.
type Options struct {
	DataDir string
	Config  cfgpkg.Config
	Logger  logpkg.Logger
	// HTTPClient overrides the store client's transport, used by tests.
	HTTPClient *http.Client
}

// Runtime wires the remote store client, the local audit trail, and config
// for a single-node instance.
type Runtime struct {
	db     *pebblestore.DB
	store  *store.Client
	audit  *audit.Log
	ids    *id.Generator
	config cfgpkg.Config
	logger logpkg.Logger
}

// Open validates the config, opens the local audit database, and builds the
// store client.
func Open(opts Options) (*Runtime, error) {
	if err := opts.Config.Validate(); err != nil {
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = logpkg.NewLogger()
	}
	if opts.DataDir == "" {
		opts.DataDir = cfgpkg.DefaultDataDir()
	}

	db, err := pebblestore.Open(pebblestore.Options{
		DataDir: filepath.Join(opts.DataDir, "audit"),
		Fsync:   pebblestore.FsyncModeAlways,
	})
	if err != nil {
		return nil, err
	}

	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: time.Duration(opts.Config.Store.RequestTimeoutMs) * time.Millisecond}
	}
	client, err := store.New(store.Options{
		BaseURL:    opts.Config.Store.BaseURL,
		DocPath:    opts.Config.Store.DocPath,
		AuthToken:  opts.Config.Store.AuthToken,
		HTTPClient: hc,
		CacheTTL:   time.Duration(opts.Config.CacheTTLMs) * time.Millisecond,
		Logger:     logger,
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Runtime{
		db:     db,
		store:  client,
		audit:  audit.New(db),
		ids:    id.NewGenerator(),
		config: opts.Config,
		logger: logger,
	}, nil
}

// Close closes underlying resources.
func (r *Runtime) Close() error {
	if r.db == nil {
		return nil
	}
	return r.db.Close()
}

// CheckHealth verifies the local database is serving.
func (r *Runtime) CheckHealth(ctx context.Context) error {
	if r.db == nil {
		return errors.New("db not open")
	}
	it, err := r.db.NewIter(nil)
	if err != nil {
		return err
	}
	it.Close()
	return nil
}

// Store exposes the remote document store client.
func (r *Runtime) Store() *store.Client { return r.store }

// Audit exposes the local audit trail.
func (r *Runtime) Audit() *audit.Log { return r.audit }

// IDs exposes the process-wide id generator.
func (r *Runtime) IDs() *id.Generator { return r.ids }

// Config returns the runtime configuration.
func (r *Runtime) Config() cfgpkg.Config { return r.config }

// Logger returns the process logger.
func (r *Runtime) Logger() logpkg.Logger { return r.logger }
