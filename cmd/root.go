package cmd

import (
	"fmt"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const envPrefix = "OPENFEATURE"

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "openfeature",
	Short: "Evaluate feature flags against a pluggable provider",
	Long:  ``,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := viper.BindPFlags(cmd.Flags()); err != nil {
			return fmt.Errorf("unable to bind flags: %w", err)
		}
		return configureLogging(viper.GetString("log-level"))
	},
}

// Execute adds all child commands to the root command and runs it.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (yaml, json or toml)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().StringP("provider", "y", "noop", "provider to use: noop, inmemory or filepath")
	rootCmd.PersistentFlags().StringP("uri", "f", "", "flag definition file for filepath, initial storage file for inmemory")
	rootCmd.PersistentFlags().String("resync-schedule", "", "cron schedule to reload the filepath provider, e.g. @every 1m")
	rootCmd.PersistentFlags().String("client-name", "openfeature-cli", "name reported in client metadata")
	rootCmd.PersistentFlags().String("client-version", "", "version reported in client metadata")
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		if err := viper.ReadInConfig(); err != nil {
			log.Fatalf("unable to read config file %s: %v", cfgFile, err)
		}
		log.Debugf("using config file %s", viper.ConfigFileUsed())
	}
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

func configureLogging(level string) error {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}
	log.SetLevel(lvl)
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	return nil
}
