// Package cmd implements the pyed command line.
package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/w3xpt/pyed/config"
	"github.com/w3xpt/pyed/editor"
	"github.com/w3xpt/pyed/log"
)

var (
	version = "dev"
	cfgFile string
	cfg     config.Config
)

var rootCmd = &cobra.Command{
	Use:     "pyed [file]",
	Short:   "A terminal code editor for Python",
	Long:    `A terminal code editor for Python with syntax highlighting, line numbering, and direct script execution through an external interpreter.`,
	Version: version,
	Args:    cobra.MaximumNArgs(1),
	RunE:    runApp,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ~/.config/pyed/config.yaml)")
	rootCmd.Flags().StringP("interpreter", "i", "",
		"command used to run scripts")
	rootCmd.Flags().Int("tab-size", 0,
		"spaces per indentation level")
	rootCmd.Flags().Bool("debug", false,
		"write a debug log")

	_ = viper.BindPFlag("interpreter", rootCmd.Flags().Lookup("interpreter"))
	_ = viper.BindPFlag("tab_size", rootCmd.Flags().Lookup("tab-size"))
	_ = viper.BindPFlag("debug", rootCmd.Flags().Lookup("debug"))
}

func initConfig() {
	defaults := config.Defaults()
	viper.SetDefault("interpreter", defaults.Interpreter)
	viper.SetDefault("tab_size", defaults.TabSize)
	viper.SetDefault("use_tabs", defaults.UseTabs)
	viper.SetDefault("auto_reload", defaults.AutoReload)
	viper.SetDefault("log_file", defaults.LogFile)

	viper.SetEnvPrefix("pyed")
	viper.AutomaticEnv()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else if dir := config.DefaultConfigDir(); dir != "" {
		viper.AddConfigPath(dir)
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	if err := viper.ReadInConfig(); err != nil {
		// No config file anywhere, create the default one
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			defaultPath := filepath.Join(config.DefaultConfigDir(), "config.yaml")
			if writeErr := config.WriteDefaultConfig(defaultPath); writeErr == nil {
				viper.SetConfigFile(defaultPath)
				_ = viper.ReadInConfig()
			}
			// If the write fails, continue with defaults
		}
	}

	_ = viper.Unmarshal(&cfg)
}

func runApp(cmd *cobra.Command, args []string) error {
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if cfg.Debug || os.Getenv("PYED_DEBUG") != "" {
		closeLog, err := log.Init(cfg.LogFile)
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		defer closeLog()
		log.Info(log.CatConfig, "starting", "version", version, "config", viper.ConfigFileUsed())
	}

	var filePath string
	if len(args) > 0 {
		filePath = args[0]
	}

	app := editor.New(cfg, filePath)
	return app.Run()
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
