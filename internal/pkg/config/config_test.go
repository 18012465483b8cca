//go:build unit

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xonestonex/supervisor/internal/types"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	configFile := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(configFile, []byte(content), 0644))
	return configFile
}

func TestLoad(t *testing.T) {
	t.Run("ValidConfig", func(t *testing.T) {
		configContent := `logging:
  level: info
  format: compact

interfaces:
  eth0:
    connection:
      id: Wired connection 1
      uuid: 0c23631e-2118-355c-bbb0-8943229cb0d6
    ipv4:
      method: static
      addresses: ["192.168.2.148/24"]
      gateway: 192.168.2.1
      nameservers: ["192.168.2.1"]
      routes:
        - dest: 192.168.122.0/24
          next_hop: 10.10.10.1
    ipv6:
      method: disabled
  wlan0:
    ipv4:
      method: auto
    wifi:
      ssid: NETT
`
		config, err := Load(writeConfig(t, configContent))
		require.NoError(t, err)
		assert.Equal(t, "info", config.Logging.Level)
		assert.Equal(t, "compact", config.Logging.Format)
		assert.Len(t, config.Interfaces, 2)

		eth0, exists := config.GetInterfaceConfig("eth0")
		require.True(t, exists)
		assert.Equal(t, "Wired connection 1", eth0.Connection.ID)
		assert.Equal(t, "0c23631e-2118-355c-bbb0-8943229cb0d6", eth0.Connection.UUID)
		require.NotNil(t, eth0.IPv4)
		assert.Equal(t, "static", eth0.IPv4.Method)
		assert.Equal(t, []string{"192.168.2.148/24"}, eth0.IPv4.Addresses)
		require.Len(t, eth0.IPv4.Routes, 1)
		assert.Equal(t, "192.168.122.0/24", eth0.IPv4.Routes[0].Dest)

		wlan0, exists := config.GetInterfaceConfig("wlan0")
		require.True(t, exists)
		require.NotNil(t, wlan0.WiFi)
		assert.Equal(t, "NETT", wlan0.WiFi.SSID)
	})

	t.Run("FillsMissingIdentity", func(t *testing.T) {
		configContent := `interfaces:
  eth0:
    ipv4:
      method: auto
`
		config, err := Load(writeConfig(t, configContent))
		require.NoError(t, err)

		eth0 := config.Interfaces["eth0"]
		assert.Equal(t, "Supervisor eth0", eth0.Connection.ID)
		_, err = uuid.Parse(eth0.Connection.UUID)
		assert.NoError(t, err)

		// The assigned identity is stable for the lifetime of the config.
		identity, ok := config.Identity("eth0")
		require.True(t, ok)
		assert.Equal(t, eth0.Connection.UUID, identity.UUID)
	})

	t.Run("NonExistentFile", func(t *testing.T) {
		_, err := Load("/nonexistent/config.yml")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read config file")
	})

	t.Run("InvalidYAML", func(t *testing.T) {
		_, err := Load(writeConfig(t, "invalid: yaml: content: [\n"))
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse config file")
	})
}

func TestConfig_Interface(t *testing.T) {
	config := &Config{
		Interfaces: map[string]InterfaceConfig{
			"eth0": {
				Connection: ConnectionConfig{ID: "Wired connection 1", UUID: "0c23631e-2118-355c-bbb0-8943229cb0d6"},
				IPv4: &FamilyConfig{
					Method:      "static",
					Addresses:   []string{"192.168.2.148/24"},
					Gateway:     "192.168.2.1",
					Nameservers: []string{"192.168.2.1"},
					Routes: []RouteConfig{
						{Dest: "192.168.122.0/24", NextHop: "10.10.10.1"},
					},
				},
				IPv6: &FamilyConfig{Method: "disabled"},
			},
		},
	}

	t.Run("Conversion", func(t *testing.T) {
		iface, err := config.Interface("eth0")
		require.NoError(t, err)

		assert.Equal(t, "eth0", iface.Name)
		assert.Equal(t, types.MethodStatic, iface.IPv4.Method)
		assert.Equal(t, []types.Address{{IP: "192.168.2.148", Prefix: 24}}, iface.IPv4.Addresses)
		assert.Equal(t, "192.168.2.1", iface.IPv4.Gateway)
		assert.Equal(t, []types.Route{
			{Destination: "192.168.122.0", Prefix: 24, NextHop: "10.10.10.1", Metric: 0},
		}, iface.IPv4.Routes)
		assert.Equal(t, types.MethodDisabled, iface.IPv6.Method)
		assert.Nil(t, iface.Wireless)
	})

	t.Run("AbsentFamilyDefaultsToAuto", func(t *testing.T) {
		cfg := &Config{
			Interfaces: map[string]InterfaceConfig{
				"eth1": {IPv4: &FamilyConfig{Method: "auto"}},
			},
		}

		iface, err := cfg.Interface("eth1")
		require.NoError(t, err)
		assert.Equal(t, types.MethodAuto, iface.IPv6.Method)
	})

	t.Run("BadAddress", func(t *testing.T) {
		cfg := &Config{
			Interfaces: map[string]InterfaceConfig{
				"eth0": {
					IPv4: &FamilyConfig{Method: "static", Addresses: []string{"192.168.2.148"}},
				},
			},
		}

		_, err := cfg.Interface("eth0")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "missing prefix length")
	})

	t.Run("NotConfigured", func(t *testing.T) {
		_, err := config.Interface("eth99")
		assert.Error(t, err)
	})
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Interfaces: map[string]InterfaceConfig{
				"eth0": {
					IPv4: &FamilyConfig{
						Method:    "static",
						Addresses: []string{"192.168.2.148/24"},
					},
					IPv6: &FamilyConfig{Method: "disabled"},
				},
			},
		}
	}

	t.Run("ValidConfig", func(t *testing.T) {
		assert.NoError(t, valid().Validate())
	})

	t.Run("NoInterfaces", func(t *testing.T) {
		config := &Config{Interfaces: map[string]InterfaceConfig{}}

		err := config.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "no interfaces configured")
	})

	t.Run("NoFamilies", func(t *testing.T) {
		config := &Config{
			Interfaces: map[string]InterfaceConfig{"eth0": {}},
		}

		err := config.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "at least one IP family")
	})

	t.Run("UnknownMethod", func(t *testing.T) {
		config := valid()
		iface := config.Interfaces["eth0"]
		iface.IPv4.Method = "shared"
		config.Interfaces["eth0"] = iface

		err := config.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "unknown ipv4 method")
	})

	t.Run("StaticWithoutAddresses", func(t *testing.T) {
		config := valid()
		iface := config.Interfaces["eth0"]
		iface.IPv4.Addresses = nil
		config.Interfaces["eth0"] = iface

		err := config.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "requires addresses")
	})

	t.Run("AutoWithAddresses", func(t *testing.T) {
		config := valid()
		iface := config.Interfaces["eth0"]
		iface.IPv4.Method = "auto"
		config.Interfaces["eth0"] = iface

		err := config.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "require the static method")
	})

	t.Run("WiFiWithoutSSID", func(t *testing.T) {
		config := valid()
		iface := config.Interfaces["eth0"]
		iface.WiFi = &WiFiConfig{}
		config.Interfaces["eth0"] = iface

		err := config.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "wifi ssid is required")
	})
}
