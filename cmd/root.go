package cmd

import (
	"bytes"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	configFiles []string
	level       string
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "destructure",
	Short: "generate destructure-pattern companions for struct types",
	Long: "destructure scans a Go package for struct types carrying a " +
		"//destructure:derive marker and generates their opened, borrowed " +
		"and mutable companion types.",
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVarP(&level, "level", "l", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringSliceVar(&configFiles, "config", []string{}, "config file(s) - multiple config files are merged with last specified file having highest priority")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	var ll slog.Level
	if err := (&ll).UnmarshalText([]byte(level)); err != nil {
		panic("invalid log level: " + level)
	}
	l := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: ll}))
	slog.SetDefault(l)

	if len(configFiles) > 0 {
		// Use config file from the flag.
		viper.SetConfigFile(configFiles[0])
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".destructure")
	}

	viper.SetEnvPrefix("destructure")
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		l.With("config", viper.ConfigFileUsed()).Debug("using config file(s)")
	}
	if len(configFiles) > 1 {
		for _, file := range configFiles[1:] {
			configBytes, err := os.ReadFile(file)
			if err != nil {
				l.With("error", err, "file", file).Warn("failed to read config file")
				continue
			}
			if err = viper.MergeConfig(bytes.NewReader(configBytes)); err != nil {
				l.With("error", err, "file", file).Warn("failed to merge config file")
			} else {
				l.With("file", file).Debug("merged config file")
			}
		}
	}

	if llstr := viper.GetString("log.level"); llstr != "" && !strings.EqualFold(llstr, level) {
		if err := ll.UnmarshalText([]byte(llstr)); err == nil {
			slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: ll})))
		}
	}
}
