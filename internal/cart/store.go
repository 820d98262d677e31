package cart

import "context"

// Store persists carts keyed by browser session id. Load on an unknown
// session returns an empty cart, never an error.
type Store interface {
	Load(ctx context.Context, sessionID string) (*Cart, error)
	Save(ctx context.Context, sessionID string, cart *Cart) error
	Delete(ctx context.Context, sessionID string) error
}
