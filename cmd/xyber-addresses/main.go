package main

import (
	"context"
	"os"
	"os/signal"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/xyber-labs/xyber-server/pkg/metrics"
)

const metricsShutdownTimeout = 5 * time.Second

var configPath string

var cmd = cobra.Command{
	Use:           "xyber-addresses",
	Short:         "Derive the on-chain addresses of xyber tokens",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(c *cobra.Command, _ []string) error {
		config, err := loadConfig(configPath)
		if err != nil {
			return err
		}

		metricsProvider, err := newMetricsProvider(config)
		if err != nil {
			return err
		}
		configureLogger(config, metricsProvider)

		if metricsProvider != nil {
			c.SetContext(metrics.NewContext(c.Context(), metricsProvider))
			cobra.OnFinalize(func() {
				metricsProvider.Shutdown(metricsShutdownTimeout)
			})
		}
		return nil
	},
}

func init() {
	cmd.PersistentFlags().StringVar(&configPath, "config", "", "configuration file path")

	cmd.AddCommand(
		newDeriveCmd(),
		newProgramAddressCmd(),
		newAssociatedAccountCmd(),
	)
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := cmd.ExecuteContext(ctx); err != nil {
		logrus.StandardLogger().WithError(err).Error("command failed")
		os.Exit(1)
	}
}
