//go:build unit

package netbus

import (
	"testing"

	"github.com/godbus/dbus/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xonestonex/supervisor/internal/pkg/wire"
	"github.com/xonestonex/supervisor/internal/port"
)

func TestMapCallError(t *testing.T) {
	t.Run("SettingsRejection", func(t *testing.T) {
		err := mapCallError("update", dbus.Error{
			Name: nmProfileIntf + ".InvalidProperty",
		})
		assert.ErrorIs(t, err, port.ErrSchemaMismatch)
	})

	t.Run("OtherBusError", func(t *testing.T) {
		err := mapCallError("update", dbus.Error{
			Name: "org.freedesktop.DBus.Error.NoReply",
		})
		assert.ErrorIs(t, err, port.ErrTransportFailure)
	})

	t.Run("PlainError", func(t *testing.T) {
		err := mapCallError("fetch", assert.AnError)
		assert.ErrorIs(t, err, port.ErrTransportFailure)
	})
}

func TestUnpackSignatures(t *testing.T) {
	conn := wire.Settings{
		wire.SectionConnection: {
			// The daemon declares timestamp as t; after unpacking the
			// inferred signature wins.
			"timestamp": dbus.MakeVariantWithSignature(uint64(1598125548), dbus.ParseSignatureMust("t")),
			"id":        dbus.MakeVariant("Wired connection 1"),
		},
	}

	out := unpackSignatures(conn)

	v, ok := out.Field(wire.SectionConnection, "timestamp")
	require.True(t, ok)
	assert.Equal(t, uint64(1598125548), v.Value())

	v, ok = out.Field(wire.SectionConnection, "id")
	require.True(t, ok)
	assert.Equal(t, "Wired connection 1", v.Value())
}
