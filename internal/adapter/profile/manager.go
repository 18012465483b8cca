// Package profile keeps one network interface's connection profile in sync
// with the network daemon: it pushes generated settings, refreshes a local
// cache when the daemon reports changes, and guarantees at most one fetch is
// in flight per profile.
package profile

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/xonestonex/supervisor/internal/pkg/logging"
	"github.com/xonestonex/supervisor/internal/pkg/settings"
	"github.com/xonestonex/supervisor/internal/pkg/wire"
	"github.com/xonestonex/supervisor/internal/port"
	"github.com/xonestonex/supervisor/internal/types"
)

// ErrClosed is returned by explicit operations after the profile binding has
// been torn down.
var ErrClosed = errors.New("profile binding closed")

// Ensure Manager implements the ProfileSyncManager port
var _ port.ProfileSyncManager = (*Manager)(nil)

// Manager synchronizes one connection profile. Its refresh protocol coalesces
// change notifications: while a fetch is in flight, any number of further
// notifications collapse into exactly one follow-up fetch, so the cache ends
// on the state as of the last notification.
type Manager struct {
	name      string
	identity  types.ConnectionIdentity
	transport port.SettingsTransport
	cache     *Cache
	log       *logrus.Entry

	// fetchMu serializes every settings fetch for this profile, explicit or
	// notification-driven.
	fetchMu sync.Mutex

	mu         sync.Mutex
	refreshing bool
	pending    bool
	closed     bool
}

// NewManager creates a sync manager for the named interface. The interface
// must exist on the host; the profile identity is taken as-is and never
// regenerated.
func NewManager(name string, identity types.ConnectionIdentity, transport port.SettingsTransport, host port.HostLink) (*Manager, error) {
	if _, err := host.Describe(name); err != nil {
		return nil, fmt.Errorf("interface not found: %w", err)
	}
	return &Manager{
		name:      name,
		identity:  identity,
		transport: transport,
		cache:     NewCache(),
		log:       logging.WithComponentAndInterface("profile", name),
	}, nil
}

// GetInterfaceName returns the name of the network interface managed by this
// manager.
func (m *Manager) GetInterfaceName() string {
	return m.name
}

// Identity returns the profile identity this manager writes under.
func (m *Manager) Identity() types.ConnectionIdentity {
	return m.identity
}

// Cache returns the profile's settings cache.
func (m *Manager) Cache() *Cache {
	return m.cache
}

// Fetch retrieves the profile's settings from the daemon and replaces the
// cache. It serializes against notification-driven refreshes, so no two
// fetches for the profile ever overlap.
func (m *Manager) Fetch(ctx context.Context) error {
	m.fetchMu.Lock()
	defer m.fetchMu.Unlock()
	if m.isClosed() {
		return fmt.Errorf("fetch settings for %s: %w", m.name, ErrClosed)
	}
	return m.fetchAndStore(ctx)
}

// Apply generates settings for the interface and sends them to the daemon.
// The cache is not touched: authoritative state is only adopted through a
// fetch, normally triggered by the change notification the update provokes.
func (m *Manager) Apply(ctx context.Context, iface types.Interface) error {
	conn, err := settings.Generate(iface, m.identity)
	if err != nil {
		return err
	}
	return m.ApplySettings(ctx, conn)
}

// ApplySettings sends a caller-provided settings mapping to the daemon.
func (m *Manager) ApplySettings(ctx context.Context, conn wire.Settings) error {
	if m.isClosed() {
		return fmt.Errorf("update profile %s: %w", m.name, ErrClosed)
	}
	if err := m.transport.Update(ctx, conn); err != nil {
		return fmt.Errorf("update profile %s: %w", m.name, err)
	}
	m.log.Debug("Profile settings updated")
	return nil
}

// Run subscribes to the profile's change notifications and refreshes the
// cache on each one, until the context is cancelled or the subscription
// ends. Notification-driven refresh failures are logged and leave the cache
// unchanged; they never propagate out of Run.
func (m *Manager) Run(ctx context.Context) error {
	events, err := m.transport.Subscribe(ctx)
	if err != nil {
		return fmt.Errorf("subscribe to profile %s: %w", m.name, err)
	}
	m.log.Info("Watching profile for changes")

	for {
		select {
		case <-ctx.Done():
			m.markClosed()
			m.log.Info("Profile watch stopped due to context cancellation")
			return ctx.Err()
		case _, ok := <-events:
			if !ok {
				m.markClosed()
				m.log.Info("Profile change subscription ended")
				return nil
			}
			m.scheduleRefresh(ctx)
		}
	}
}

// scheduleRefresh starts a refresh, or coalesces the trigger into the one
// pending slot when a fetch is already in flight.
func (m *Manager) scheduleRefresh(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return
	}
	if m.refreshing {
		m.pending = true
		return
	}
	m.refreshing = true
	go m.refreshLoop(ctx)
}

func (m *Manager) refreshLoop(ctx context.Context) {
	for {
		m.fetchMu.Lock()
		err := m.fetchAndStore(ctx)
		m.fetchMu.Unlock()
		if err != nil {
			m.log.WithError(err).Warn("Settings refresh failed, keeping cached settings")
		}

		m.mu.Lock()
		if m.pending && !m.closed {
			m.pending = false
			m.mu.Unlock()
			continue
		}
		m.refreshing = false
		m.mu.Unlock()
		return
	}
}

// fetchAndStore performs one typed fetch and swaps the cache. Results that
// arrive after the binding was torn down are discarded.
func (m *Manager) fetchAndStore(ctx context.Context) error {
	conn, err := m.transport.Fetch(ctx, true)
	if err != nil {
		return fmt.Errorf("fetch settings for %s: %w", m.name, err)
	}
	snap, err := newSnapshot(conn)
	if err != nil {
		return fmt.Errorf("decode settings for %s: %w", m.name, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return nil
	}
	m.cache.Replace(snap)
	return nil
}

func (m *Manager) markClosed() {
	m.mu.Lock()
	m.closed = true
	m.mu.Unlock()
}

func (m *Manager) isClosed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}
