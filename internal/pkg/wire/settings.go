package wire

import "github.com/godbus/dbus/v5"

// Section and field names of the connection settings schema used by this
// daemon.
const (
	SectionConnection = "connection"
	SectionIPv4       = "ipv4"
	SectionIPv6       = "ipv6"
	SectionProxy      = "proxy"
	SectionEthernet   = "802-3-ethernet"
	SectionWireless   = "802-11-wireless"
)

// Field returns the variant stored for section/field, reporting whether the
// field is present. Absence of a field is meaningful in this schema and is
// distinct from an empty value.
func (s Settings) Field(section, field string) (dbus.Variant, bool) {
	fields, ok := s[section]
	if !ok {
		return dbus.Variant{}, false
	}
	v, ok := fields[field]
	return v, ok
}

// Clone returns a deep copy of the section/field map structure. Variant
// payloads are immutable once constructed and are shared.
func (s Settings) Clone() Settings {
	out := make(Settings, len(s))
	for section, fields := range s {
		cp := make(map[string]dbus.Variant, len(fields))
		for name, v := range fields {
			cp[name] = v
		}
		out[section] = cp
	}
	return out
}
