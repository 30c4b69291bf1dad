package cmd

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/open-feature/go-sdk-lite/pkg/hook"
	"github.com/open-feature/go-sdk-lite/pkg/openfeature"
	"github.com/open-feature/go-sdk-lite/pkg/runtime"
	"github.com/open-feature/go-sdk-lite/pkg/service"
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the flag evaluation http service",
	Long:  ``,
	Run: func(cmd *cobra.Command, args []string) {
		providerImpl, closeProvider := mustFindProvider(
			viper.GetString("provider"),
			viper.GetString("uri"),
			viper.GetString("resync-schedule"),
		)
		defer closeProvider()

		serviceImpl := &service.HTTPService{
			HTTPServiceConfiguration: &service.HTTPServiceConfiguration{
				Port:          viper.GetInt32("port"),
				ClientName:    viper.GetString("client-name"),
				ClientVersion: viper.GetString("client-version"),
			},
		}

		api := openfeature.Global()
		metricsHook, err := hook.NewMetricsHook(prometheus.DefaultRegisterer)
		if err != nil {
			log.Fatal(err)
		}
		api.AddHooks(
			hook.NewLoggingHook(log.StandardLogger(), viper.GetBool("log-evaluation-context")),
			metricsHook,
			hook.NewTracingHook(nil),
		)

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if err := runtime.Start(ctx, api, serviceImpl, providerImpl); err != nil {
			log.Error(err)
			return
		}
		log.Info("shut down")
	},
}

func init() {
	startCmd.Flags().Int32P("port", "p", 8080, "Port to listen on")
	startCmd.Flags().Bool("log-evaluation-context", false, "include evaluation context in evaluation logs")
	rootCmd.AddCommand(startCmd)
}
