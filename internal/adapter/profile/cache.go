package profile

import (
	"fmt"
	"sync"

	"github.com/xonestonex/supervisor/internal/pkg/wire"
)

// Snapshot is one decoded view of a profile's settings. Snapshots are
// immutable; the cache swaps whole snapshots so readers never observe a
// partial update.
type Snapshot struct {
	settings   wire.Settings
	id         string
	uuid       string
	ipv4Method string
	ipv6Method string
}

// newSnapshot decodes the commonly read fields out of freshly fetched
// settings. The connection identity must be present and well typed; the
// per-family methods are optional.
func newSnapshot(conn wire.Settings) (*Snapshot, error) {
	id, err := decodeString(conn, wire.SectionConnection, "id")
	if err != nil {
		return nil, err
	}
	uuid, err := decodeString(conn, wire.SectionConnection, "uuid")
	if err != nil {
		return nil, err
	}

	snap := &Snapshot{settings: conn, id: id, uuid: uuid}
	if _, ok := conn.Field(wire.SectionIPv4, "method"); ok {
		if snap.ipv4Method, err = decodeString(conn, wire.SectionIPv4, "method"); err != nil {
			return nil, err
		}
	}
	if _, ok := conn.Field(wire.SectionIPv6, "method"); ok {
		if snap.ipv6Method, err = decodeString(conn, wire.SectionIPv6, "method"); err != nil {
			return nil, err
		}
	}
	return snap, nil
}

func decodeString(conn wire.Settings, section, field string) (string, error) {
	v, ok := conn.Field(section, field)
	if !ok {
		return "", fmt.Errorf("%w: missing %s.%s", wire.ErrMalformedValue, section, field)
	}
	decoded, err := wire.Decode(wire.KindString, v)
	if err != nil {
		return "", fmt.Errorf("decode %s.%s: %w", section, field, err)
	}
	return decoded.(string), nil
}

// ID returns the profile's connection id.
func (s *Snapshot) ID() string { return s.id }

// UUID returns the profile's connection uuid.
func (s *Snapshot) UUID() string { return s.uuid }

// IPv4Method returns the wire method of the ipv4 section, or "" if absent.
func (s *Snapshot) IPv4Method() string { return s.ipv4Method }

// IPv6Method returns the wire method of the ipv6 section, or "" if absent.
func (s *Snapshot) IPv6Method() string { return s.ipv6Method }

// Settings returns a copy of the full settings mapping.
func (s *Snapshot) Settings() wire.Settings { return s.settings.Clone() }

// Cache holds the last successfully fetched snapshot for one profile.
type Cache struct {
	mu      sync.RWMutex
	current *Snapshot
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{}
}

// Get returns the current snapshot, reporting false before the first
// successful fetch.
func (c *Cache) Get() (*Snapshot, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.current, c.current != nil
}

// Replace atomically swaps in a new snapshot.
func (c *Cache) Replace(snap *Snapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = snap
}
