// picosensingkit exposes the motion, position and environment sensors of the
// host through a small HTTP API, and optionally streams every reading to an
// MQTT broker or CSV files.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"text/tabwriter"

	"github.com/benbjohnson/clock"
	"github.com/charmbracelet/fang"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"github.com/CristiGvl/picoSensingKit/api"
	"github.com/CristiGvl/picoSensingKit/internal/config"
	"github.com/CristiGvl/picoSensingKit/internal/logger"
	"github.com/CristiGvl/picoSensingKit/internal/mqtt"
	"github.com/CristiGvl/picoSensingKit/internal/native"
	"github.com/CristiGvl/picoSensingKit/internal/platform"
	"github.com/CristiGvl/picoSensingKit/internal/sensor"
	"github.com/CristiGvl/picoSensingKit/internal/sink"
)

var version = "dev"

func main() {
	root := &cobra.Command{
		Use:   "picosensingkit",
		Short: "Serve host sensor readings over HTTP",
		Long: `picosensingkit registers the motion, position and environment sensors
found on this host, starts sensing and serves their state and latest readings
over HTTP. Readings can also be published to MQTT and recorded to CSV.

Configuration is read from sensingkit.yaml, PICOSENSINGKIT_* environment
variables and the flags below.`,
		Version:      version,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.String("config", "", "path to a config file")
	flags.Int("port", 8080, "port to run the server on")
	flags.String("bind", "0.0.0.0", "IP address to bind the server to")
	flags.String("backend", config.BackendNative, "sensor backend (native or synthetic)")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(sensorsCmd())

	if err := fang.Execute(context.Background(), root); err != nil {
		os.Exit(1)
	}
}

func sensorsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sensors",
		Short: "List sensor kinds and their availability on this host",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			manager, err := newManager(cfg.Platform)
			if err != nil {
				return err
			}
			defer closeManager(manager)

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "KIND\tSENSOR\tAVAILABLE\tREASON")
			for _, st := range sensor.NewKit(manager).Statuses() {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", st.Kind, st.SensorName, strconv.FormatBool(st.Available), st.Reason)
			}
			return w.Flush()
		},
	}
}

func loadConfig(cmd *cobra.Command) (config.AppConfig, error) {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return config.AppConfig{}, err
	}
	if err := logger.SetLevel(cfg.General.LogLevel); err != nil {
		return config.AppConfig{}, err
	}
	return cfg, nil
}

func newManager(cfg config.PlatformConfig) (native.Manager, error) {
	if cfg.Backend == config.BackendSynthetic {
		return native.NewPollingManager(cfg.APILevel, native.SyntheticSources(clock.New())), nil
	}

	// Validate platform support
	if err := platform.ValidateSupport(); err != nil {
		return nil, err
	}
	return native.NewManager(cfg.APILevel), nil
}

func closeManager(manager native.Manager) {
	if closer, ok := manager.(interface{ Close() }); ok {
		closer.Close()
	}
}

func run(cmd *cobra.Command) error {
	ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	manager, err := newManager(cfg.Platform)
	if err != nil {
		return errors.Wrap(err, "platform validation failed")
	}
	defer closeManager(manager)

	kit := sensor.NewKit(manager)

	metrics, err := sink.NewMetrics(prometheus.DefaultRegisterer)
	if err != nil {
		return err
	}
	sinks := []sensor.Listener{metrics}

	if cfg.MQTT.Enabled {
		codec, err := sink.NewCodec(cfg.MQTT.Codec)
		if err != nil {
			return err
		}
		client, err := mqtt.NewClient(mqtt.ClientOpts{
			Broker:   cfg.MQTT.Broker,
			ClientID: cfg.MQTT.ClientID,
			Username: cfg.MQTT.Username,
			Password: cfg.MQTT.Password,
		}, logger.Default())
		if err != nil {
			return err
		}
		defer client.Disconnect()
		sinks = append(sinks, sink.NewMQTT(client, codec, cfg.MQTT.TopicPrefix, logger.Default()))
	}

	if cfg.Recorder.Enabled {
		recorder, err := sink.NewRecorder(cfg.Recorder.Dir, logger.Default())
		if err != nil {
			return err
		}
		defer func() {
			if err := recorder.Close(); err != nil {
				logger.Warn("failed to close recordings", "error", err)
			}
		}()
		sinks = append(sinks, recorder)
	}

	server := api.NewServer(api.Options{
		Kit:       kit,
		Sinks:     sinks,
		Gatherer:  prometheus.DefaultGatherer,
		Backend:   cfg.Platform.Backend,
		AccessLog: cfg.General.LogLevel == "debug",
	})

	for _, kind := range cfg.Sensors.Enabled {
		if err := server.Register(kind); err != nil {
			logger.Warn("failed to register sensor", "kind", kind.String(), "error", err)
		}
	}
	// Kinds this host cannot serve are logged and left idle.
	if err := kit.StartAll(); err != nil {
		logger.Info("some sensors are not available", "count", len(multierr.Errors(err)))
	}

	address := cfg.Server.Bind + ":" + strconv.Itoa(cfg.Server.Port)
	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting picoSensingKit server", "address", address, "backend", cfg.Platform.Backend)
		errCh <- server.Start(address)
	}()

	select {
	case err := <-errCh:
		_ = kit.Close()
		return errors.Wrap(err, "server stopped")
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	var shutdownErr error
	shutdownErr = multierr.Append(shutdownErr, server.Shutdown())
	shutdownErr = multierr.Append(shutdownErr, kit.Close())
	return shutdownErr
}
