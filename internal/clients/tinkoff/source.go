package tinkoff

import "sync"

// Source holds the active API client and allows swapping it at runtime
// when the user saves a new token. Services keep a *Source and call
// Client() per request instead of caching the client.
type Source struct {
	mu     sync.RWMutex
	client *Client
}

// NewSource creates a source around an initial client
func NewSource(client *Client) *Source {
	return &Source{client: client}
}

// Client returns the active client.
func (s *Source) Client() *Client {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.client
}

// Swap replaces the active client.
func (s *Source) Swap(client *Client) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.client = client
}
