package main

import (
	"fmt"
	"os"

	"github.com/Voltaic314/ShelfDB/config"
	"github.com/Voltaic314/ShelfDB/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

func main() {
	if err := newRootCommand(viper.New()).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand(v *viper.Viper) *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:           "shelfdb",
		Short:         "Per-account object and contents storage",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a JSON config file")
	cmd.PersistentFlags().String("data-dir", "data", "directory holding the tenant databases")
	cmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	cmd.PersistentFlags().String("log-format", "json", "log format (json or console)")
	mustBind(v, "storage.data_dir", cmd.PersistentFlags().Lookup("data-dir"))
	mustBind(v, "log.level", cmd.PersistentFlags().Lookup("log-level"))
	mustBind(v, "log.format", cmd.PersistentFlags().Lookup("log-format"))

	load := func() (*config.Config, *zap.Logger, error) {
		cfg, err := config.Load(v, configPath)
		if err != nil {
			return nil, nil, err
		}
		log, err := logger.New(cfg.Log.Level, cfg.Log.Format)
		if err != nil {
			return nil, nil, err
		}
		return cfg, log, nil
	}

	cmd.AddCommand(newServeCommand(v, load))
	cmd.AddCommand(newTenantCommand(load))
	return cmd
}

type loadFunc func() (*config.Config, *zap.Logger, error)

// mustBind ties a flag to a config key so an explicit flag overrides the
// config file and the environment.
func mustBind(v *viper.Viper, key string, flag *pflag.Flag) {
	if err := v.BindPFlag(key, flag); err != nil {
		panic(err)
	}
}
