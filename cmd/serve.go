package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/xonestonex/supervisor/internal/adapter/infrastructure/hostlink"
	"github.com/xonestonex/supervisor/internal/adapter/infrastructure/netbus"
	"github.com/xonestonex/supervisor/internal/adapter/profile"
	"github.com/xonestonex/supervisor/internal/pkg/config"
	"github.com/xonestonex/supervisor/internal/pkg/logging"
	"github.com/xonestonex/supervisor/internal/port"
)

var (
	configFlag string
)

// createProfileSyncManager binds one configured interface to its connection
// profile on the daemon and returns the manager that keeps them in sync.
func createProfileSyncManager(ctx context.Context, bus *netbus.Bus, host port.HostLink, cfg *config.Config, ifaceName string) (*profile.Manager, error) {
	logger := logging.GetLogger()

	identity, ok := cfg.Identity(ifaceName)
	if !ok {
		return nil, fmt.Errorf("interface %s not configured", ifaceName)
	}

	transport, err := bus.ProfileByUUID(ctx, identity.UUID)
	if err != nil {
		return nil, fmt.Errorf("no profile for interface %s: %w", ifaceName, err)
	}

	manager, err := profile.NewManager(ifaceName, identity, transport, host)
	if err != nil {
		return nil, err
	}

	logger.WithField("interface", ifaceName).WithField("profile", transport.Path()).Info("Bound connection profile")
	return manager, nil
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Apply configured settings and keep connection profiles in sync",
	Run: func(cmd *cobra.Command, args []string) {
		// Load and validate configuration
		cfg, err := config.Load(configFlag)
		if err != nil {
			fmt.Printf("Config error: %v\n", err)
			return
		}

		if err := cfg.Validate(); err != nil {
			fmt.Printf("Config validation error: %v\n", err)
			return
		}

		// Initialize logging
		logging.InitLogger(cfg.Logging)

		logger := logging.GetLogger()
		logger.WithField("config_file", configFlag).Info("Starting daemon")

		// Create context for graceful shutdown
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		// Handle shutdown signals
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			sig := <-sigChan
			logger.WithField("signal", sig.String()).Info("Received shutdown signal")
			cancel()
		}()

		bus, err := netbus.ConnectSystem()
		if err != nil {
			logger.WithError(err).Error("Failed to connect to the system bus")
			return
		}
		defer bus.Close()

		host := hostlink.NewReader()

		// Bind every configured interface to its profile and push the
		// desired settings before watching for changes.
		var managers []*profile.Manager

		for ifaceName := range cfg.Interfaces {
			manager, err := createProfileSyncManager(ctx, bus, host, cfg, ifaceName)
			if err != nil {
				logger.WithField("interface", ifaceName).WithError(err).Error("Failed to bind connection profile")
				continue
			}

			desired, err := cfg.Interface(ifaceName)
			if err != nil {
				logger.WithField("interface", ifaceName).WithError(err).Error("Invalid interface configuration")
				continue
			}

			if err := manager.Apply(ctx, desired); err != nil {
				logger.WithField("interface", ifaceName).WithError(err).Error("Failed to apply profile settings")
				continue
			}
			if err := manager.Fetch(ctx); err != nil {
				logger.WithField("interface", ifaceName).WithError(err).Warn("Failed to read back profile settings")
			}

			managers = append(managers, manager)
		}

		if len(managers) == 0 {
			logger.Warn("No connection profiles bound")
			return
		}

		logger.WithField("profile_count", len(managers)).Info("Watching connection profiles")

		// Watch all profiles concurrently
		var wg sync.WaitGroup
		for _, manager := range managers {
			wg.Add(1)
			go func(mgr port.ProfileSyncManager) {
				defer wg.Done()

				if err := mgr.Run(ctx); err != nil {
					if err != context.Canceled {
						logger.WithField("interface", mgr.GetInterfaceName()).WithError(err).Error("Profile watch failed")
					}
				}
			}(manager)
		}

		// Wait for all watchers to complete
		wg.Wait()
		logger.Info("All profile watchers stopped")
	},
}

func init() {
	serveCmd.Flags().StringVarP(&configFlag, "config", "f", "", "Path to config file (YAML)")
	if err := serveCmd.MarkFlagRequired("config"); err != nil {
		panic(err) // This should never happen during initialization
	}
	rootCmd.AddCommand(serveCmd)
}
