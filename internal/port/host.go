package port

import "github.com/xonestonex/supervisor/internal/types"

//go:generate mockgen -source=internal/port/host.go -destination=internal/mock/host.go -package=mock

// HostLink is a port for reading live interface state from the host. It is
// used to verify configured interfaces exist and to seed static
// configurations from the addresses currently on the link.
type HostLink interface {
	// Describe returns the interface's current state, or an error if no such
	// link exists.
	Describe(name string) (types.Interface, error)
}
