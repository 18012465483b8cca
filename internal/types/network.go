// Package types defines common types used across the application.
package types

// InterfaceMethod is the address configuration method for one IP family.
type InterfaceMethod string

const (
	MethodDisabled  InterfaceMethod = "disabled"
	MethodStatic    InterfaceMethod = "static"
	MethodAuto      InterfaceMethod = "auto"
	MethodLinkLocal InterfaceMethod = "link-local"
)

// Valid reports whether the method is one of the known configuration methods.
func (m InterfaceMethod) Valid() bool {
	switch m {
	case MethodDisabled, MethodStatic, MethodAuto, MethodLinkLocal:
		return true
	}
	return false
}

// Address is an IP address with its routing prefix length.
type Address struct {
	IP     string
	Prefix uint32
}

// Route describes one static route entry.
type Route struct {
	Destination string
	Prefix      uint32
	NextHop     string
	Metric      uint32
}

// IPConfig is the desired configuration of one IP family on an interface.
// Addresses, Gateway, Nameservers and Search only apply when Method is static;
// Routes apply regardless of method.
type IPConfig struct {
	Method      InterfaceMethod
	Addresses   []Address
	Gateway     string
	Nameservers []string
	Search      []string
	Routes      []Route
}

// WirelessConfig carries the wireless fields owned by this daemon. Security
// settings belong to a higher layer and are deliberately absent.
type WirelessConfig struct {
	SSID string
}

// Interface is the desired configuration of one network interface. It is
// read-only input to the settings generator and the profile sync manager.
type Interface struct {
	Name     string
	IPv4     IPConfig
	IPv6     IPConfig
	Wireless *WirelessConfig
}

// ConnectionIdentity addresses one persisted connection profile on the
// network daemon. It is supplied by the caller and never regenerated here.
type ConnectionIdentity struct {
	ID   string
	UUID string
}
