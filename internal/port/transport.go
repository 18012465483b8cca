// Package port defines the primary ports (interfaces) for the application.
// This follows the Ports and Adapters (Hexagonal Architecture) pattern.
package port

import (
	"context"
	"errors"

	"github.com/xonestonex/supervisor/internal/pkg/wire"
)

//go:generate mockgen -source=internal/port/transport.go -destination=internal/mock/transport.go -package=mock

var (
	// ErrSchemaMismatch is returned when the network daemon rejects an
	// update because a field's type or name does not match its schema. This
	// is always a programming defect in the generated settings, never a
	// transient condition.
	ErrSchemaMismatch = errors.New("settings rejected: schema mismatch")

	// ErrTransportFailure is returned when the call to the network daemon
	// itself failed. Transient; callers may retry.
	ErrTransportFailure = errors.New("settings transport failure")
)

// SettingsTransport is a port for the connection-profile surface of the
// network daemon. One transport addresses one persisted profile.
type SettingsTransport interface {
	// Fetch returns the profile's current settings. With preserveTypes the
	// leaf variants keep the signatures declared by the daemon, which the
	// codec needs for exact decoding; without it the values are re-wrapped
	// with inferred signatures, which is enough for convenience reads.
	Fetch(ctx context.Context, preserveTypes bool) (wire.Settings, error)

	// Update replaces the profile's settings. The daemon rejects the call
	// if any field's tagged type does not match its schema.
	Update(ctx context.Context, conn wire.Settings) error

	// Subscribe delivers one element per profile-changed notification. The
	// events carry no payload; each is a trigger to re-fetch. The channel
	// is closed when the subscription ends.
	Subscribe(ctx context.Context) (<-chan struct{}, error)

	// Close tears down the profile binding and its subscription.
	Close() error
}
