// Package delivery defines the contract every transport server implements.
package delivery

import "context"

// Delivery is a transport-facing server (HTTP today) started by the
// application container.
type Delivery interface {
	// Serve blocks until the server stops or fails.
	Serve(ctx context.Context) error
}
