package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/xonestonex/supervisor/internal/pkg/logging"
	"github.com/xonestonex/supervisor/internal/types"
)

// InterfaceConfig represents the desired configuration for one network
// interface and its connection profile.
type InterfaceConfig struct {
	Connection ConnectionConfig `yaml:"connection"`
	IPv4       *FamilyConfig    `yaml:"ipv4,omitempty"`
	IPv6       *FamilyConfig    `yaml:"ipv6,omitempty"`
	WiFi       *WiFiConfig      `yaml:"wifi,omitempty"`
}

// ConnectionConfig identifies the connection profile on the network daemon.
// A missing UUID is filled in once at load time and kept for the process
// lifetime, so repeated generation for the same interface stays stable.
type ConnectionConfig struct {
	ID   string `yaml:"id,omitempty"`
	UUID string `yaml:"uuid,omitempty"`
}

// FamilyConfig configures one IP family.
type FamilyConfig struct {
	Method      string        `yaml:"method"`
	Addresses   []string      `yaml:"addresses,omitempty"`
	Gateway     string        `yaml:"gateway,omitempty"`
	Nameservers []string      `yaml:"nameservers,omitempty"`
	Search      []string      `yaml:"search,omitempty"`
	Routes      []RouteConfig `yaml:"routes,omitempty"`
}

// RouteConfig is one static route. Dest uses CIDR notation.
type RouteConfig struct {
	Dest    string `yaml:"dest"`
	NextHop string `yaml:"next_hop,omitempty"`
	Metric  uint32 `yaml:"metric,omitempty"`
}

// WiFiConfig carries the wireless fields this daemon owns.
type WiFiConfig struct {
	SSID string `yaml:"ssid"`
}

// Config represents the main configuration structure
type Config struct {
	Logging    logging.LogConfig          `yaml:"logging"`
	Interfaces map[string]InterfaceConfig `yaml:"interfaces"`
}

// Load loads configuration from a YAML file and assigns profile identities
// to interfaces that do not declare one.
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", configPath, err)
	}

	for name, iface := range config.Interfaces {
		if iface.Connection.ID == "" {
			iface.Connection.ID = "Supervisor " + name
		}
		if iface.Connection.UUID == "" {
			iface.Connection.UUID = uuid.NewString()
		}
		config.Interfaces[name] = iface
	}

	return &config, nil
}

// GetInterfaceConfig returns the configuration for a specific interface
func (c *Config) GetInterfaceConfig(interfaceName string) (InterfaceConfig, bool) {
	config, exists := c.Interfaces[interfaceName]
	return config, exists
}

// Identity returns the profile identity configured for an interface.
func (c *Config) Identity(interfaceName string) (types.ConnectionIdentity, bool) {
	iface, exists := c.Interfaces[interfaceName]
	if !exists {
		return types.ConnectionIdentity{}, false
	}
	return types.ConnectionIdentity{ID: iface.Connection.ID, UUID: iface.Connection.UUID}, true
}

// Interface converts an interface's configuration into the domain model
// consumed by the settings generator.
func (c *Config) Interface(interfaceName string) (types.Interface, error) {
	cfg, exists := c.Interfaces[interfaceName]
	if !exists {
		return types.Interface{}, fmt.Errorf("interface %s not configured", interfaceName)
	}

	iface := types.Interface{Name: interfaceName}

	v4, err := familyModel(interfaceName, cfg.IPv4)
	if err != nil {
		return types.Interface{}, err
	}
	iface.IPv4 = v4

	v6, err := familyModel(interfaceName, cfg.IPv6)
	if err != nil {
		return types.Interface{}, err
	}
	iface.IPv6 = v6

	if cfg.WiFi != nil {
		iface.Wireless = &types.WirelessConfig{SSID: cfg.WiFi.SSID}
	}

	return iface, nil
}

// familyModel converts one family block. An absent block means the family is
// not managed and defaults to automatic acquisition.
func familyModel(interfaceName string, cfg *FamilyConfig) (types.IPConfig, error) {
	if cfg == nil {
		return types.IPConfig{Method: types.MethodAuto}, nil
	}

	out := types.IPConfig{
		Method:      types.InterfaceMethod(cfg.Method),
		Gateway:     cfg.Gateway,
		Nameservers: cfg.Nameservers,
		Search:      cfg.Search,
	}

	for _, addr := range cfg.Addresses {
		parsed, err := parsePrefixed(addr)
		if err != nil {
			return types.IPConfig{}, fmt.Errorf("interface %s: %w", interfaceName, err)
		}
		out.Addresses = append(out.Addresses, parsed)
	}

	for _, route := range cfg.Routes {
		dest, err := parsePrefixed(route.Dest)
		if err != nil {
			return types.IPConfig{}, fmt.Errorf("interface %s: %w", interfaceName, err)
		}
		out.Routes = append(out.Routes, types.Route{
			Destination: dest.IP,
			Prefix:      dest.Prefix,
			NextHop:     route.NextHop,
			Metric:      route.Metric,
		})
	}

	return out, nil
}

// parsePrefixed parses "address/prefix" keeping the host part of the address.
func parsePrefixed(s string) (types.Address, error) {
	host, prefixPart, found := strings.Cut(s, "/")
	if !found {
		return types.Address{}, fmt.Errorf("address %q: missing prefix length", s)
	}
	if net.ParseIP(host) == nil {
		return types.Address{}, fmt.Errorf("address %q: invalid IP", s)
	}
	prefix, err := strconv.ParseUint(prefixPart, 10, 32)
	if err != nil {
		return types.Address{}, fmt.Errorf("address %q: invalid prefix length", s)
	}
	return types.Address{IP: host, Prefix: uint32(prefix)}, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if len(c.Interfaces) == 0 {
		return fmt.Errorf("no interfaces configured")
	}

	for name, iface := range c.Interfaces {
		if iface.IPv4 == nil && iface.IPv6 == nil {
			return fmt.Errorf("interface %s: must configure at least one IP family", name)
		}
		if err := validateFamilyConfig(name, "ipv4", iface.IPv4); err != nil {
			return err
		}
		if err := validateFamilyConfig(name, "ipv6", iface.IPv6); err != nil {
			return err
		}
		if iface.WiFi != nil && iface.WiFi.SSID == "" {
			return fmt.Errorf("interface %s: wifi ssid is required", name)
		}
	}

	return nil
}

func validateFamilyConfig(interfaceName, fam string, cfg *FamilyConfig) error {
	if cfg == nil {
		return nil
	}
	method := types.InterfaceMethod(cfg.Method)
	if !method.Valid() {
		return fmt.Errorf("interface %s: unknown %s method %q", interfaceName, fam, cfg.Method)
	}
	if method == types.MethodStatic && len(cfg.Addresses) == 0 {
		return fmt.Errorf("interface %s: static %s configuration requires addresses", interfaceName, fam)
	}
	if method != types.MethodStatic && (len(cfg.Addresses) > 0 || cfg.Gateway != "" || len(cfg.Nameservers) > 0) {
		return fmt.Errorf("interface %s: %s addresses, gateway and nameservers require the static method", interfaceName, fam)
	}
	return nil
}
