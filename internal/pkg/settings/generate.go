// Package settings derives a connection profile's wire representation from
// the local interface model. Generation is pure: no I/O, no clock, no
// randomness. The same interface and identity always produce the same
// mapping.
package settings

import (
	"fmt"

	"github.com/godbus/dbus/v5"

	"github.com/xonestonex/supervisor/internal/pkg/wire"
	"github.com/xonestonex/supervisor/internal/types"
)

// addrGenModeDefault is the ipv6 address-generation mode sent when the model
// does not specify one.
const addrGenModeDefault = int32(0)

// Generate builds the wire settings mapping for the interface under the given
// profile identity. The identity is carried through untouched; it is owned by
// the caller and survives repeated calls for the same logical interface.
func Generate(iface types.Interface, identity types.ConnectionIdentity) (wire.Settings, error) {
	connType := wire.SectionEthernet
	if iface.Wireless != nil {
		connType = wire.SectionWireless
	}

	conn := wire.Settings{
		wire.SectionConnection: {
			"id":             dbus.MakeVariant(identity.ID),
			"uuid":           dbus.MakeVariant(identity.UUID),
			"type":           dbus.MakeVariant(connType),
			"interface-name": dbus.MakeVariant(iface.Name),
			"autoconnect":    dbus.MakeVariant(true),
		},
		// The daemon expects the proxy section even when nothing is set.
		wire.SectionProxy: {},
		wire.SectionEthernet: {
			"auto-negotiate":        dbus.MakeVariant(false),
			"mac-address-blacklist": dbus.MakeVariant([]string{}),
			"s390-options":          dbus.MakeVariant(map[string]string{}),
		},
	}

	ipv4, err := generateFamily(familyIPv4, iface.IPv4)
	if err != nil {
		return nil, fmt.Errorf("generate ipv4 settings for %s: %w", iface.Name, err)
	}
	conn[wire.SectionIPv4] = ipv4

	ipv6, err := generateFamily(familyIPv6, iface.IPv6)
	if err != nil {
		return nil, fmt.Errorf("generate ipv6 settings for %s: %w", iface.Name, err)
	}
	ipv6["addr-gen-mode"] = dbus.MakeVariant(addrGenModeDefault)
	conn[wire.SectionIPv6] = ipv6

	if iface.Wireless != nil {
		// Security, mode and powersave belong to a higher layer and are
		// never written from here.
		conn[wire.SectionWireless] = map[string]dbus.Variant{
			"ssid": dbus.MakeVariant([]byte(iface.Wireless.SSID)),
		}
	}

	return conn, nil
}

// generateFamily builds one IP section. Address, gateway and DNS fields are
// emitted only for static configurations; for every other method the keys
// must be absent so the daemon falls back to automatic acquisition. The route
// fields are always present, empty or not.
func generateFamily(f family, cfg types.IPConfig) (map[string]dbus.Variant, error) {
	policy, ok := policyFor(f, cfg.Method)
	if !ok {
		return nil, fmt.Errorf("no policy for %s method %q", f, cfg.Method)
	}

	section := map[string]dbus.Variant{
		"method": dbus.MakeVariant(policy.wireMethod),
	}

	if policy.staticFields {
		if err := addStaticFields(f, cfg, section); err != nil {
			return nil, err
		}
	}

	if err := addRouteFields(f, cfg.Routes, section); err != nil {
		return nil, err
	}

	return section, nil
}

func addStaticFields(f family, cfg types.IPConfig, section map[string]dbus.Variant) error {
	addressData := make([]map[string]dbus.Variant, 0, len(cfg.Addresses))
	for _, addr := range cfg.Addresses {
		addressData = append(addressData, map[string]dbus.Variant{
			"address": dbus.MakeVariant(addr.IP),
			"prefix":  dbus.MakeVariant(addr.Prefix),
		})
	}
	section["address-data"] = dbus.MakeVariant(addressData)

	switch f {
	case familyIPv4:
		legacy := make([][]uint32, 0, len(cfg.Addresses))
		for _, addr := range cfg.Addresses {
			tuple, err := wire.PackIPv4Address(wire.IPv4Address{
				Address: addr.IP,
				Prefix:  addr.Prefix,
				Gateway: cfg.Gateway,
			})
			if err != nil {
				return err
			}
			legacy = append(legacy, tuple)
		}
		section["addresses"] = dbus.MakeVariant(legacy)

		dns := make([]uint32, 0, len(cfg.Nameservers))
		for _, server := range cfg.Nameservers {
			packed, err := wire.PackIPv4(server)
			if err != nil {
				return err
			}
			dns = append(dns, packed)
		}
		section["dns"] = dbus.MakeVariant(dns)

	case familyIPv6:
		addrs := make([]wire.IPv6Address, 0, len(cfg.Addresses))
		for _, addr := range cfg.Addresses {
			addrs = append(addrs, wire.IPv6Address{
				Address: addr.IP,
				Prefix:  addr.Prefix,
				Gateway: cfg.Gateway,
			})
		}
		legacy, err := wire.IPv6AddressListVariant(addrs)
		if err != nil {
			return err
		}
		section["addresses"] = legacy

		dns := make([][]byte, 0, len(cfg.Nameservers))
		for _, server := range cfg.Nameservers {
			packed, err := wire.PackIPv6(server)
			if err != nil {
				return err
			}
			dns = append(dns, packed)
		}
		section["dns"] = dbus.MakeVariant(dns)
	}

	if cfg.Gateway != "" {
		section["gateway"] = dbus.MakeVariant(cfg.Gateway)
	}

	search := cfg.Search
	if search == nil {
		search = []string{}
	}
	section["dns-search"] = dbus.MakeVariant(search)

	return nil
}

func addRouteFields(f family, routes []types.Route, section map[string]dbus.Variant) error {
	routeData := make([]map[string]dbus.Variant, 0, len(routes))
	for _, route := range routes {
		record := map[string]dbus.Variant{
			"dest":   dbus.MakeVariant(route.Destination),
			"prefix": dbus.MakeVariant(route.Prefix),
			"metric": dbus.MakeVariant(route.Metric),
		}
		if route.NextHop != "" {
			record["next-hop"] = dbus.MakeVariant(route.NextHop)
		}
		routeData = append(routeData, record)
	}
	section["route-data"] = dbus.MakeVariant(routeData)

	// The packed integer form only exists for ipv4; the ipv6 legacy field is
	// sent empty and the daemon reads route-data instead.
	legacy := make([][]uint32, 0, len(routes))
	if f == familyIPv4 {
		for _, route := range routes {
			tuple, err := wire.PackIPv4Route(wire.IPv4Route{
				Destination: route.Destination,
				Prefix:      route.Prefix,
				NextHop:     route.NextHop,
				Metric:      route.Metric,
			})
			if err != nil {
				return err
			}
			legacy = append(legacy, tuple)
		}
	}
	section["routes"] = dbus.MakeVariant(legacy)

	return nil
}
