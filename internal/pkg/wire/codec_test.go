//go:build unit

package wire

import (
	"testing"

	"github.com/godbus/dbus/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPackIPv4(t *testing.T) {
	t.Run("RoundTrip", func(t *testing.T) {
		packed, err := PackIPv4("192.168.2.148")
		require.NoError(t, err)
		assert.Equal(t, uint32(2483202240), packed)
		assert.Equal(t, "192.168.2.148", UnpackIPv4(2483202240))
	})

	t.Run("Gateway", func(t *testing.T) {
		packed, err := PackIPv4("192.168.2.1")
		require.NoError(t, err)
		assert.Equal(t, uint32(16951488), packed)
	})

	t.Run("NotAnAddress", func(t *testing.T) {
		_, err := PackIPv4("not-an-ip")
		assert.ErrorIs(t, err, ErrMalformedValue)
	})

	t.Run("IPv6Input", func(t *testing.T) {
		_, err := PackIPv4("2001:db8::1")
		assert.ErrorIs(t, err, ErrMalformedValue)
	})
}

func TestPackIPv4Route(t *testing.T) {
	route := IPv4Route{
		Destination: "192.168.122.0",
		Prefix:      24,
		NextHop:     "10.10.10.1",
		Metric:      0,
	}

	tuple, err := PackIPv4Route(route)
	require.NoError(t, err)
	assert.Equal(t, []uint32{8038592, 24, 17435146, 0}, tuple)

	decoded, err := UnpackIPv4Route(tuple)
	require.NoError(t, err)
	assert.Equal(t, route, decoded)
}

func TestPackIPv4Address(t *testing.T) {
	addr := IPv4Address{
		Address: "192.168.2.148",
		Prefix:  24,
		Gateway: "192.168.2.1",
	}

	tuple, err := PackIPv4Address(addr)
	require.NoError(t, err)
	assert.Equal(t, []uint32{2483202240, 24, 16951488}, tuple)

	decoded, err := UnpackIPv4Address(tuple)
	require.NoError(t, err)
	assert.Equal(t, addr, decoded)
}

func TestPackIPv6(t *testing.T) {
	t.Run("RoundTrip", func(t *testing.T) {
		packed, err := PackIPv6("2001:db8::1")
		require.NoError(t, err)
		require.Len(t, packed, 16)

		addr, err := UnpackIPv6(packed)
		require.NoError(t, err)
		assert.Equal(t, "2001:db8::1", addr)
	})

	t.Run("EmptyIsZero", func(t *testing.T) {
		packed, err := PackIPv6("")
		require.NoError(t, err)
		assert.Equal(t, make([]byte, 16), packed)

		addr, err := UnpackIPv6(packed)
		require.NoError(t, err)
		assert.Equal(t, "", addr)
	})

	t.Run("WrongLength", func(t *testing.T) {
		_, err := UnpackIPv6([]byte{1, 2, 3})
		assert.ErrorIs(t, err, ErrMalformedValue)
	})
}

func TestPackIPv6Address(t *testing.T) {
	addr := IPv6Address{Address: "fd00::2", Prefix: 64, Gateway: "fd00::1"}

	tuple, err := PackIPv6Address(addr)
	require.NoError(t, err)
	require.Len(t, tuple, 3)

	decoded, err := UnpackIPv6Address(tuple)
	require.NoError(t, err)
	assert.Equal(t, addr, decoded)
}

func TestEncode(t *testing.T) {
	t.Run("Signatures", func(t *testing.T) {
		cases := []struct {
			name string
			kind Kind
			in   interface{}
			sig  string
		}{
			{"Bool", KindBool, true, "b"},
			{"String", KindString, "auto", "s"},
			{"Uint32", KindUint32, uint32(24), "u"},
			{"Uint64", KindUint64, uint64(1598125548), "t"},
			{"Int32", KindInt32, int32(0), "i"},
			{"StringList", KindStringList, []string{"lan"}, "as"},
			{"ByteSequence", KindByteSequence, []byte{78, 69, 84, 84}, "ay"},
			{"Uint32List", KindUint32List, []uint32{16951488}, "au"},
			{"Uint32TupleList", KindUint32TupleList, [][]uint32{{8038592, 24, 17435146, 0}}, "aau"},
			{"RecordList", KindRecordList, []map[string]dbus.Variant{}, "aa{sv}"},
			{"IPv4Address", KindIPv4Address, IPv4Address{Address: "192.168.2.148", Prefix: 24}, "au"},
			{"IPv4Route", KindIPv4Route, IPv4Route{Destination: "192.168.122.0", Prefix: 24}, "au"},
			{"IPv6Address", KindIPv6Address, IPv6Address{Address: "fd00::2", Prefix: 64}, "(ayuay)"},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				v, err := Encode(tc.kind, tc.in)
				require.NoError(t, err)
				assert.Equal(t, tc.sig, v.Signature().String())
			})
		}
	})

	t.Run("WrongNativeType", func(t *testing.T) {
		_, err := Encode(KindUint32, "24")
		assert.ErrorIs(t, err, ErrMalformedValue)
	})

	t.Run("UnsupportedKind", func(t *testing.T) {
		_, err := Encode(Kind(99), true)
		assert.ErrorIs(t, err, ErrUnsupportedKind)
	})
}

func TestDecode(t *testing.T) {
	t.Run("RoundTrip", func(t *testing.T) {
		addr := IPv4Address{Address: "192.168.2.148", Prefix: 24, Gateway: "192.168.2.1"}
		v, err := Encode(KindIPv4Address, addr)
		require.NoError(t, err)

		decoded, err := Decode(KindIPv4Address, v)
		require.NoError(t, err)
		assert.Equal(t, addr, decoded)
	})

	t.Run("WrongShape", func(t *testing.T) {
		_, err := Decode(KindIPv4Route, dbus.MakeVariant([]uint32{8038592, 24}))
		assert.ErrorIs(t, err, ErrMalformedValue)
	})

	t.Run("WrongType", func(t *testing.T) {
		_, err := Decode(KindUint32, dbus.MakeVariant("24"))
		assert.ErrorIs(t, err, ErrMalformedValue)
	})

	t.Run("UnsupportedKind", func(t *testing.T) {
		_, err := Decode(Kind(99), dbus.MakeVariant(true))
		assert.ErrorIs(t, err, ErrUnsupportedKind)
	})
}

func TestSettingsField(t *testing.T) {
	conn := Settings{
		SectionIPv4: {"method": dbus.MakeVariant("auto")},
	}

	t.Run("Present", func(t *testing.T) {
		v, ok := conn.Field(SectionIPv4, "method")
		require.True(t, ok)
		assert.Equal(t, "auto", v.Value())
	})

	t.Run("AbsentField", func(t *testing.T) {
		_, ok := conn.Field(SectionIPv4, "gateway")
		assert.False(t, ok)
	})

	t.Run("AbsentSection", func(t *testing.T) {
		_, ok := conn.Field(SectionIPv6, "method")
		assert.False(t, ok)
	})
}

func TestSettingsClone(t *testing.T) {
	conn := Settings{
		SectionIPv4: {"method": dbus.MakeVariant("auto")},
	}

	clone := conn.Clone()
	clone[SectionIPv4]["method"] = dbus.MakeVariant("manual")

	v, ok := conn.Field(SectionIPv4, "method")
	require.True(t, ok)
	assert.Equal(t, "auto", v.Value())
}
