// Package delivery defines the contract every transport (HTTP, worker)
// implements so cmd wiring can start them uniformly.
package delivery

import "context"

// Delivery is a servable transport.
type Delivery interface {
	Serve(ctx context.Context) error
}
