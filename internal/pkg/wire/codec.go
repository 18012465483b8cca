// Package wire encodes and decodes values against the network daemon's typed
// settings schema. Connection settings travel as a nested mapping of
// section name -> field name -> variant, where every leaf carries a D-Bus
// signature. The codec owns the packed integer address forms the schema uses
// in place of labeled records.
package wire

import (
	"errors"
	"fmt"
	"net"

	"github.com/godbus/dbus/v5"
)

var (
	// ErrUnsupportedKind is returned when a value kind outside the schema
	// enumeration is passed to Encode or Decode.
	ErrUnsupportedKind = errors.New("unsupported wire value kind")

	// ErrMalformedValue is returned when a wire value's shape does not match
	// the expected kind, e.g. wrong arity in a packed tuple.
	ErrMalformedValue = errors.New("malformed wire value")
)

// Settings is the nested section -> field -> typed value mapping exchanged
// with the network daemon.
type Settings map[string]map[string]dbus.Variant

// Kind identifies one wire value type from the settings schema.
type Kind int

const (
	KindInvalid Kind = iota
	KindBool
	KindString
	KindUint32
	KindUint64
	KindInt32
	KindStringList
	KindByteSequence
	KindUint32List
	KindUint32TupleList
	KindRecordList
	KindIPv4Address
	KindIPv4Route
	KindIPv6Address
)

// IPv4Address is the unpacked form of a legacy ipv4 address tuple
// [address, prefix, gateway].
type IPv4Address struct {
	Address string
	Prefix  uint32
	Gateway string
}

// IPv4Route is the unpacked form of a legacy ipv4 route tuple
// [destination, prefix, next-hop, metric].
type IPv4Route struct {
	Destination string
	Prefix      uint32
	NextHop     string
	Metric      uint32
}

// IPv6Address is the unpacked form of a legacy ipv6 address tuple
// (16-byte address, prefix, 16-byte gateway). The tuple layout follows the
// a(ayuay) signature the daemon declares for the ipv6 addresses field.
type IPv6Address struct {
	Address string
	Prefix  uint32
	Gateway string
}

// godbus cannot infer struct signatures from []interface{} rows, so ipv6
// tuple variants carry an explicit signature.
var (
	ipv6AddressSignature     = dbus.ParseSignatureMust("(ayuay)")
	ipv6AddressListSignature = dbus.ParseSignatureMust("a(ayuay)")
)

// IPv6AddressListVariant packs addresses into the legacy a(ayuay) array
// variant, the shape of the ipv6 addresses field.
func IPv6AddressListVariant(addrs []IPv6Address) (dbus.Variant, error) {
	rows := make([][]interface{}, 0, len(addrs))
	for _, a := range addrs {
		row, err := PackIPv6Address(a)
		if err != nil {
			return dbus.Variant{}, err
		}
		rows = append(rows, row)
	}
	return dbus.MakeVariantWithSignature(rows, ipv6AddressListSignature), nil
}

// PackIPv4 converts a dotted-decimal IPv4 address to the packed integer form
// used by the legacy tuple fields: the four octets are read left to right as
// the bytes of a little-endian unsigned 32-bit integer.
func PackIPv4(addr string) (uint32, error) {
	ip := net.ParseIP(addr)
	if ip == nil {
		return 0, fmt.Errorf("%w: %q is not an IP address", ErrMalformedValue, addr)
	}
	v4 := ip.To4()
	if v4 == nil {
		return 0, fmt.Errorf("%w: %q is not an IPv4 address", ErrMalformedValue, addr)
	}
	return uint32(v4[0]) | uint32(v4[1])<<8 | uint32(v4[2])<<16 | uint32(v4[3])<<24, nil
}

// UnpackIPv4 reverses PackIPv4, recovering the dotted-decimal form by
// extracting successive least-significant bytes.
func UnpackIPv4(packed uint32) string {
	return fmt.Sprintf("%d.%d.%d.%d",
		byte(packed), byte(packed>>8), byte(packed>>16), byte(packed>>24))
}

// PackIPv6 converts a colon-hex IPv6 address to its 16-byte wire form. The
// empty string packs to all zeroes, matching a tuple slot with no gateway.
func PackIPv6(addr string) ([]byte, error) {
	if addr == "" {
		return make([]byte, net.IPv6len), nil
	}
	ip := net.ParseIP(addr)
	if ip == nil {
		return nil, fmt.Errorf("%w: %q is not an IP address", ErrMalformedValue, addr)
	}
	return []byte(ip.To16()), nil
}

// UnpackIPv6 reverses PackIPv6. An all-zero sequence unpacks to the empty
// string.
func UnpackIPv6(packed []byte) (string, error) {
	if len(packed) != net.IPv6len {
		return "", fmt.Errorf("%w: ipv6 sequence has %d bytes, want %d", ErrMalformedValue, len(packed), net.IPv6len)
	}
	ip := net.IP(packed)
	if ip.Equal(net.IPv6zero) {
		return "", nil
	}
	return ip.String(), nil
}

// PackIPv4Address builds the legacy [address, prefix, gateway] tuple. An
// empty gateway packs to zero.
func PackIPv4Address(a IPv4Address) ([]uint32, error) {
	addr, err := PackIPv4(a.Address)
	if err != nil {
		return nil, err
	}
	var gw uint32
	if a.Gateway != "" {
		if gw, err = PackIPv4(a.Gateway); err != nil {
			return nil, err
		}
	}
	return []uint32{addr, a.Prefix, gw}, nil
}

// UnpackIPv4Address reverses PackIPv4Address.
func UnpackIPv4Address(tuple []uint32) (IPv4Address, error) {
	if len(tuple) != 3 {
		return IPv4Address{}, fmt.Errorf("%w: ipv4 address tuple has %d elements, want 3", ErrMalformedValue, len(tuple))
	}
	a := IPv4Address{Address: UnpackIPv4(tuple[0]), Prefix: tuple[1]}
	if tuple[2] != 0 {
		a.Gateway = UnpackIPv4(tuple[2])
	}
	return a, nil
}

// PackIPv4Route builds the legacy [destination, prefix, next-hop, metric]
// tuple.
func PackIPv4Route(r IPv4Route) ([]uint32, error) {
	dest, err := PackIPv4(r.Destination)
	if err != nil {
		return nil, err
	}
	var hop uint32
	if r.NextHop != "" {
		if hop, err = PackIPv4(r.NextHop); err != nil {
			return nil, err
		}
	}
	return []uint32{dest, r.Prefix, hop, r.Metric}, nil
}

// UnpackIPv4Route reverses PackIPv4Route.
func UnpackIPv4Route(tuple []uint32) (IPv4Route, error) {
	if len(tuple) != 4 {
		return IPv4Route{}, fmt.Errorf("%w: ipv4 route tuple has %d elements, want 4", ErrMalformedValue, len(tuple))
	}
	r := IPv4Route{Destination: UnpackIPv4(tuple[0]), Prefix: tuple[1], Metric: tuple[3]}
	if tuple[2] != 0 {
		r.NextHop = UnpackIPv4(tuple[2])
	}
	return r, nil
}

// PackIPv6Address builds one row of the a(ayuay) legacy ipv6 address array.
func PackIPv6Address(a IPv6Address) ([]interface{}, error) {
	addr, err := PackIPv6(a.Address)
	if err != nil {
		return nil, err
	}
	gw, err := PackIPv6(a.Gateway)
	if err != nil {
		return nil, err
	}
	return []interface{}{addr, a.Prefix, gw}, nil
}

// UnpackIPv6Address reverses PackIPv6Address.
func UnpackIPv6Address(tuple []interface{}) (IPv6Address, error) {
	if len(tuple) != 3 {
		return IPv6Address{}, fmt.Errorf("%w: ipv6 address tuple has %d elements, want 3", ErrMalformedValue, len(tuple))
	}
	addrBytes, ok := tuple[0].([]byte)
	if !ok {
		return IPv6Address{}, fmt.Errorf("%w: ipv6 address slot is %T, want []byte", ErrMalformedValue, tuple[0])
	}
	prefix, ok := tuple[1].(uint32)
	if !ok {
		return IPv6Address{}, fmt.Errorf("%w: ipv6 prefix slot is %T, want uint32", ErrMalformedValue, tuple[1])
	}
	gwBytes, ok := tuple[2].([]byte)
	if !ok {
		return IPv6Address{}, fmt.Errorf("%w: ipv6 gateway slot is %T, want []byte", ErrMalformedValue, tuple[2])
	}
	addr, err := UnpackIPv6(addrBytes)
	if err != nil {
		return IPv6Address{}, err
	}
	gw, err := UnpackIPv6(gwBytes)
	if err != nil {
		return IPv6Address{}, err
	}
	return IPv6Address{Address: addr, Prefix: prefix, Gateway: gw}, nil
}

// Encode wraps a native value as a typed wire variant for the given kind.
func Encode(kind Kind, value interface{}) (dbus.Variant, error) {
	switch kind {
	case KindBool:
		v, ok := value.(bool)
		if !ok {
			return dbus.Variant{}, encodeTypeErr(kind, value, "bool")
		}
		return dbus.MakeVariant(v), nil
	case KindString:
		v, ok := value.(string)
		if !ok {
			return dbus.Variant{}, encodeTypeErr(kind, value, "string")
		}
		return dbus.MakeVariant(v), nil
	case KindUint32:
		v, ok := value.(uint32)
		if !ok {
			return dbus.Variant{}, encodeTypeErr(kind, value, "uint32")
		}
		return dbus.MakeVariant(v), nil
	case KindUint64:
		v, ok := value.(uint64)
		if !ok {
			return dbus.Variant{}, encodeTypeErr(kind, value, "uint64")
		}
		return dbus.MakeVariant(v), nil
	case KindInt32:
		v, ok := value.(int32)
		if !ok {
			return dbus.Variant{}, encodeTypeErr(kind, value, "int32")
		}
		return dbus.MakeVariant(v), nil
	case KindStringList:
		v, ok := value.([]string)
		if !ok {
			return dbus.Variant{}, encodeTypeErr(kind, value, "[]string")
		}
		return dbus.MakeVariant(v), nil
	case KindByteSequence:
		v, ok := value.([]byte)
		if !ok {
			return dbus.Variant{}, encodeTypeErr(kind, value, "[]byte")
		}
		return dbus.MakeVariant(v), nil
	case KindUint32List:
		v, ok := value.([]uint32)
		if !ok {
			return dbus.Variant{}, encodeTypeErr(kind, value, "[]uint32")
		}
		return dbus.MakeVariant(v), nil
	case KindUint32TupleList:
		v, ok := value.([][]uint32)
		if !ok {
			return dbus.Variant{}, encodeTypeErr(kind, value, "[][]uint32")
		}
		return dbus.MakeVariant(v), nil
	case KindRecordList:
		v, ok := value.([]map[string]dbus.Variant)
		if !ok {
			return dbus.Variant{}, encodeTypeErr(kind, value, "[]map[string]dbus.Variant")
		}
		return dbus.MakeVariant(v), nil
	case KindIPv4Address:
		v, ok := value.(IPv4Address)
		if !ok {
			return dbus.Variant{}, encodeTypeErr(kind, value, "wire.IPv4Address")
		}
		tuple, err := PackIPv4Address(v)
		if err != nil {
			return dbus.Variant{}, err
		}
		return dbus.MakeVariant(tuple), nil
	case KindIPv4Route:
		v, ok := value.(IPv4Route)
		if !ok {
			return dbus.Variant{}, encodeTypeErr(kind, value, "wire.IPv4Route")
		}
		tuple, err := PackIPv4Route(v)
		if err != nil {
			return dbus.Variant{}, err
		}
		return dbus.MakeVariant(tuple), nil
	case KindIPv6Address:
		v, ok := value.(IPv6Address)
		if !ok {
			return dbus.Variant{}, encodeTypeErr(kind, value, "wire.IPv6Address")
		}
		tuple, err := PackIPv6Address(v)
		if err != nil {
			return dbus.Variant{}, err
		}
		return dbus.MakeVariantWithSignature(tuple, ipv6AddressSignature), nil
	}
	return dbus.Variant{}, fmt.Errorf("%w: %d", ErrUnsupportedKind, kind)
}

// Decode unwraps a typed wire variant to its native value for the given kind.
func Decode(kind Kind, variant dbus.Variant) (interface{}, error) {
	value := variant.Value()
	switch kind {
	case KindBool:
		if v, ok := value.(bool); ok {
			return v, nil
		}
		return nil, decodeTypeErr(kind, value, "bool")
	case KindString:
		if v, ok := value.(string); ok {
			return v, nil
		}
		return nil, decodeTypeErr(kind, value, "string")
	case KindUint32:
		if v, ok := value.(uint32); ok {
			return v, nil
		}
		return nil, decodeTypeErr(kind, value, "uint32")
	case KindUint64:
		if v, ok := value.(uint64); ok {
			return v, nil
		}
		return nil, decodeTypeErr(kind, value, "uint64")
	case KindInt32:
		if v, ok := value.(int32); ok {
			return v, nil
		}
		return nil, decodeTypeErr(kind, value, "int32")
	case KindStringList:
		if v, ok := value.([]string); ok {
			return v, nil
		}
		return nil, decodeTypeErr(kind, value, "[]string")
	case KindByteSequence:
		if v, ok := value.([]byte); ok {
			return v, nil
		}
		return nil, decodeTypeErr(kind, value, "[]byte")
	case KindUint32List:
		if v, ok := value.([]uint32); ok {
			return v, nil
		}
		return nil, decodeTypeErr(kind, value, "[]uint32")
	case KindUint32TupleList:
		if v, ok := value.([][]uint32); ok {
			return v, nil
		}
		return nil, decodeTypeErr(kind, value, "[][]uint32")
	case KindRecordList:
		if v, ok := value.([]map[string]dbus.Variant); ok {
			return v, nil
		}
		return nil, decodeTypeErr(kind, value, "[]map[string]dbus.Variant")
	case KindIPv4Address:
		tuple, ok := value.([]uint32)
		if !ok {
			return nil, decodeTypeErr(kind, value, "[]uint32")
		}
		return UnpackIPv4Address(tuple)
	case KindIPv4Route:
		tuple, ok := value.([]uint32)
		if !ok {
			return nil, decodeTypeErr(kind, value, "[]uint32")
		}
		return UnpackIPv4Route(tuple)
	case KindIPv6Address:
		tuple, ok := value.([]interface{})
		if !ok {
			return nil, decodeTypeErr(kind, value, "[]interface{}")
		}
		return UnpackIPv6Address(tuple)
	}
	return nil, fmt.Errorf("%w: %d", ErrUnsupportedKind, kind)
}

func encodeTypeErr(kind Kind, value interface{}, want string) error {
	return fmt.Errorf("%w: cannot encode %T as kind %d, want %s", ErrMalformedValue, value, kind, want)
}

func decodeTypeErr(kind Kind, value interface{}, want string) error {
	return fmt.Errorf("%w: kind %d carries %T, want %s", ErrMalformedValue, kind, value, want)
}
