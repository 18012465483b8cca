// Package hostlink implements the HostLink port using the vishvananda/netlink
// library. It offers a read-only view of live interface state; all writes go
// through the network daemon.
package hostlink

import (
	"fmt"

	"github.com/vishvananda/netlink"

	"github.com/xonestonex/supervisor/internal/port"
	"github.com/xonestonex/supervisor/internal/types"
)

// Reader is an adapter that reads interface state via netlink.
type Reader struct{}

// Ensure Reader implements the HostLink port
var _ port.HostLink = (*Reader)(nil)

// NewReader creates a new host link reader.
func NewReader() *Reader {
	return &Reader{}
}

// Describe returns the named link's current addresses as a static-style
// interface description. The per-family methods are reported as static when
// addresses are present and disabled otherwise; the caller decides what to
// do with them.
func (r *Reader) Describe(name string) (types.Interface, error) {
	link, err := netlink.LinkByName(name)
	if err != nil {
		return types.Interface{}, fmt.Errorf("failed to get netlink interface %s: %w", name, err)
	}

	iface := types.Interface{Name: link.Attrs().Name}

	v4, err := familyConfig(link, netlink.FAMILY_V4)
	if err != nil {
		return types.Interface{}, err
	}
	iface.IPv4 = v4

	v6, err := familyConfig(link, netlink.FAMILY_V6)
	if err != nil {
		return types.Interface{}, err
	}
	iface.IPv6 = v6

	if link.Type() == "wlan" {
		iface.Wireless = &types.WirelessConfig{}
	}

	return iface, nil
}

func familyConfig(link netlink.Link, fam int) (types.IPConfig, error) {
	addrs, err := netlink.AddrList(link, fam)
	if err != nil {
		return types.IPConfig{}, fmt.Errorf("failed to list addresses: %w", err)
	}

	cfg := types.IPConfig{Method: types.MethodDisabled}
	for _, addr := range addrs {
		ones, _ := addr.IPNet.Mask.Size()
		cfg.Addresses = append(cfg.Addresses, types.Address{
			IP:     addr.IPNet.IP.String(),
			Prefix: uint32(ones),
		})
	}
	if len(cfg.Addresses) > 0 {
		cfg.Method = types.MethodStatic
	}
	return cfg, nil
}
