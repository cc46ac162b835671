// Package pb holds the application's one PocketBase handle.
//
// Call Init early (main does) to bind the handle to a configured URL. Any
// code that calls Get before that gets a handle bound to DefaultURL.
package pb

import (
	"context"
	"sync"

	"github.com/jbassil/agence/internal/models"
	"github.com/jbassil/agence/internal/pocketbase"
)

// DefaultURL is the hosted backend used when nothing else is configured.
const DefaultURL = "https://jbassil-agence.pockethost.io/"

// Client is the shared handle with typed accessors for the known collections.
// The underlying client is bound once and cannot be swapped by importers.
type Client struct {
	c *pocketbase.Client
}

// NewClient builds a handle. It does not touch the network.
func NewClient(baseURL string, opts ...pocketbase.Option) (*Client, error) {
	c, err := pocketbase.New(baseURL, opts...)
	if err != nil {
		return nil, err
	}
	return &Client{c: c}, nil
}

func (c *Client) BaseURL() string {
	return c.c.BaseURL()
}

func (c *Client) AuthStore() *pocketbase.AuthStore {
	return c.c.AuthStore()
}

func (c *Client) Health(ctx context.Context) (*pocketbase.HealthCheck, error) {
	return c.c.Health(ctx)
}

// Users returns the typed record service for the users collection.
func (c *Client) Users() *pocketbase.RecordService[models.UsersRecord] {
	return pocketbase.Collection[models.UsersRecord](c.c, models.Users)
}

var (
	mu     sync.RWMutex
	shared *Client
)

// Init builds the shared handle. Only the first successful call has any
// effect; a failed call leaves the handle unset so it can be retried.
func Init(baseURL string, opts ...pocketbase.Option) error {
	mu.Lock()
	defer mu.Unlock()

	if shared != nil {
		return nil
	}

	c, err := NewClient(baseURL, opts...)
	if err != nil {
		return err
	}
	shared = c
	return nil
}

// Get returns the shared handle, building it from DefaultURL on first use.
// It panics if that construction fails.
func Get() *Client {
	mu.RLock()
	c := shared
	mu.RUnlock()
	if c != nil {
		return c
	}

	if err := Init(DefaultURL); err != nil {
		panic(err)
	}

	mu.RLock()
	defer mu.RUnlock()
	return shared
}

// Override swaps the shared handle, e.g. for one pointing at a test server.
// The returned func puts the previous handle back.
func Override(c *Client) (restore func()) {
	mu.Lock()
	prev := shared
	shared = c
	mu.Unlock()

	return func() {
		mu.Lock()
		shared = prev
		mu.Unlock()
	}
}
