package port

import "context"

// ProfileSyncManager is the primary port for profile synchronization. The
// serve command drives one of these per configured interface.
type ProfileSyncManager interface {
	// Run watches the profile for changes and keeps its cache fresh until
	// the context is cancelled.
	Run(ctx context.Context) error

	// GetInterfaceName returns the name of the network interface managed by
	// this manager.
	GetInterfaceName() string
}
