// Package netbus implements the SettingsTransport port over the system
// message bus using the godbus library, against the network daemon's
// Settings.Connection interface.
package netbus

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/godbus/dbus/v5"

	"github.com/xonestonex/supervisor/internal/pkg/wire"
	"github.com/xonestonex/supervisor/internal/port"
)

const (
	nmService      = "org.freedesktop.NetworkManager"
	nmSettingsPath = "/org/freedesktop/NetworkManager/Settings"
	nmSettingsIntf = "org.freedesktop.NetworkManager.Settings"
	nmProfileIntf  = "org.freedesktop.NetworkManager.Settings.Connection"

	methodGetByUUID   = nmSettingsIntf + ".GetConnectionByUuid"
	methodGetSettings = nmProfileIntf + ".GetSettings"
	methodUpdate      = nmProfileIntf + ".Update"
	signalUpdated     = "Updated"
)

// Bus wraps one system bus connection shared by all profile transports.
type Bus struct {
	conn *dbus.Conn
}

// ConnectSystem opens the system message bus.
func ConnectSystem() (*Bus, error) {
	conn, err := dbus.ConnectSystemBus()
	if err != nil {
		return nil, fmt.Errorf("%w: connect system bus: %v", port.ErrTransportFailure, err)
	}
	return &Bus{conn: conn}, nil
}

// Close closes the bus connection and every transport created from it.
func (b *Bus) Close() error {
	return b.conn.Close()
}

// ProfileByUUID resolves a profile's object path by its uuid and returns a
// transport bound to it.
func (b *Bus) ProfileByUUID(ctx context.Context, uuid string) (*ProfileTransport, error) {
	settingsObj := b.conn.Object(nmService, nmSettingsPath)
	var path dbus.ObjectPath
	if err := settingsObj.CallWithContext(ctx, methodGetByUUID, 0, uuid).Store(&path); err != nil {
		return nil, mapCallError(fmt.Sprintf("resolve profile %s", uuid), err)
	}
	return &ProfileTransport{
		conn: b.conn,
		path: path,
		obj:  b.conn.Object(nmService, path),
	}, nil
}

// ProfileTransport is a SettingsTransport bound to one profile object path.
type ProfileTransport struct {
	conn *dbus.Conn
	path dbus.ObjectPath
	obj  dbus.BusObject

	mu      sync.Mutex
	signals chan *dbus.Signal
	events  chan struct{}
	closed  bool
}

// Ensure ProfileTransport implements the SettingsTransport port
var _ port.SettingsTransport = (*ProfileTransport)(nil)

// Path returns the profile's object path on the bus.
func (t *ProfileTransport) Path() string {
	return string(t.path)
}

// Fetch retrieves the profile's settings. preserveTypes keeps the daemon's
// declared signatures on every leaf variant; otherwise values are re-wrapped
// with signatures inferred from their native form.
func (t *ProfileTransport) Fetch(ctx context.Context, preserveTypes bool) (wire.Settings, error) {
	var raw map[string]map[string]dbus.Variant
	if err := t.obj.CallWithContext(ctx, methodGetSettings, 0).Store(&raw); err != nil {
		return nil, mapCallError(fmt.Sprintf("get settings of %s", t.path), err)
	}
	conn := wire.Settings(raw)
	if !preserveTypes {
		conn = unpackSignatures(conn)
	}
	return conn, nil
}

// Update replaces the profile's settings on the daemon.
func (t *ProfileTransport) Update(ctx context.Context, conn wire.Settings) error {
	payload := map[string]map[string]dbus.Variant(conn)
	if call := t.obj.CallWithContext(ctx, methodUpdate, 0, payload); call.Err != nil {
		return mapCallError(fmt.Sprintf("update %s", t.path), call.Err)
	}
	return nil
}

// Subscribe matches the profile's Updated signal and forwards each delivery
// as an empty trigger. The trigger channel has a single-slot buffer: when a
// trigger is already pending, further signals collapse into it, which loses
// no information since the events carry no payload.
func (t *ProfileTransport) Subscribe(ctx context.Context) (<-chan struct{}, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return nil, fmt.Errorf("%w: transport closed", port.ErrTransportFailure)
	}
	if t.events != nil {
		return t.events, nil
	}

	err := t.conn.AddMatchSignalContext(ctx,
		dbus.WithMatchObjectPath(t.path),
		dbus.WithMatchInterface(nmProfileIntf),
		dbus.WithMatchMember(signalUpdated),
	)
	if err != nil {
		return nil, mapCallError(fmt.Sprintf("subscribe to %s", t.path), err)
	}

	t.signals = make(chan *dbus.Signal, 16)
	t.events = make(chan struct{}, 1)
	t.conn.Signal(t.signals)

	go t.forward()
	return t.events, nil
}

func (t *ProfileTransport) forward() {
	for sig := range t.signals {
		if sig.Path != t.path || sig.Name != nmProfileIntf+"."+signalUpdated {
			continue
		}
		select {
		case t.events <- struct{}{}:
		default:
		}
	}
	close(t.events)
}

// Close tears down the signal subscription. In-flight calls finish on their
// own; their results are discarded by the consumer.
func (t *ProfileTransport) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return nil
	}
	t.closed = true
	if t.signals != nil {
		if err := t.conn.RemoveMatchSignal(
			dbus.WithMatchObjectPath(t.path),
			dbus.WithMatchInterface(nmProfileIntf),
			dbus.WithMatchMember(signalUpdated),
		); err != nil {
			return mapCallError(fmt.Sprintf("unsubscribe from %s", t.path), err)
		}
		t.conn.RemoveSignal(t.signals)
		close(t.signals)
		t.signals = nil
	}
	return nil
}

// unpackSignatures re-wraps every leaf with a signature inferred from its
// native value, dropping the daemon's declared types.
func unpackSignatures(conn wire.Settings) wire.Settings {
	out := make(wire.Settings, len(conn))
	for section, fields := range conn {
		cp := make(map[string]dbus.Variant, len(fields))
		for name, v := range fields {
			cp[name] = dbus.MakeVariant(v.Value())
		}
		out[section] = cp
	}
	return out
}

// mapCallError classifies a bus call failure. Settings rejections reported by
// the daemon's Settings.Connection error namespace are schema mismatches, a
// programming defect in the generated mapping; everything else is a
// transport failure.
func mapCallError(op string, err error) error {
	var dbusErr dbus.Error
	if errors.As(err, &dbusErr) && strings.HasPrefix(dbusErr.Name, nmProfileIntf+".") {
		return fmt.Errorf("%s: %w: %s", op, port.ErrSchemaMismatch, dbusErr.Name)
	}
	return fmt.Errorf("%s: %w: %v", op, port.ErrTransportFailure, err)
}
