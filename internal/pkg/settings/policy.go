package settings

import "github.com/xonestonex/supervisor/internal/types"

// family distinguishes the two IP sections of a connection profile.
type family string

const (
	familyIPv4 family = "ipv4"
	familyIPv6 family = "ipv6"
)

// fieldPolicy captures what a (family, method) pair puts on the wire. The
// daemon treats a present-but-empty address or DNS field differently from an
// absent one (absence defers to automatic acquisition), so inclusion is an
// explicit decision here rather than an emptiness check at encode time.
type fieldPolicy struct {
	// wireMethod is the method string sent in the section.
	wireMethod string
	// staticFields includes the address list (both forms), gateway and DNS
	// fields. Routes are not covered: they are always emitted.
	staticFields bool
}

type familyMethod struct {
	family family
	method types.InterfaceMethod
}

// policyTable enumerates every supported (family, method) combination.
// IPv6 has no wire notion of "disabled"; it degrades to link-local.
var policyTable = map[familyMethod]fieldPolicy{
	{familyIPv4, types.MethodDisabled}:  {wireMethod: "disabled"},
	{familyIPv4, types.MethodStatic}:    {wireMethod: "manual", staticFields: true},
	{familyIPv4, types.MethodAuto}:      {wireMethod: "auto"},
	{familyIPv4, types.MethodLinkLocal}: {wireMethod: "link-local"},
	{familyIPv6, types.MethodDisabled}:  {wireMethod: "link-local"},
	{familyIPv6, types.MethodStatic}:    {wireMethod: "manual", staticFields: true},
	{familyIPv6, types.MethodAuto}:      {wireMethod: "auto"},
	{familyIPv6, types.MethodLinkLocal}: {wireMethod: "link-local"},
}

func policyFor(f family, method types.InterfaceMethod) (fieldPolicy, bool) {
	p, ok := policyTable[familyMethod{family: f, method: method}]
	return p, ok
}
