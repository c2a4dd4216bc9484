// Package delivery defines the transports the binaries start.
package delivery

import "context"

// Delivery is a long-running transport such as the API or the shipment worker server.
type Delivery interface {
	Serve(ctx context.Context) error
}
