/*
Copyright © 2024 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/EO-DataHub/eodhp-resource-services/db"
	"github.com/EO-DataHub/eodhp-resource-services/internal/appconfig"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	logLevel   string
	configPath string
	host       string
	port       int
	appCfg     *appconfig.Config
)

var rootCmd = &cobra.Command{
	Use:   "resource-services",
	Short: "Resource Services",
	Long:  `Resource Services is a REST API for managing user and product collections stored as whole JSON documents.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "warn",
		"sets the log level")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", os.Getenv("CONFIG_PATH"),
		"path to the YAML config file (defaults are used when empty)")
}

// commonSetUp sets the log level and loads the config into appCfg.
func commonSetUp() {
	setLogging(logLevel)

	if configPath == "" {
		log.Info().Msg("No config file given, using defaults")
		appCfg = appconfig.Default()
		return
	}

	var err error
	appCfg, err = appconfig.LoadConfig(configPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", configPath).Msg("Failed to load config")
	}
}

// openStore opens the configured collection store or exits.
func openStore(ctx context.Context) db.CollectionStore {
	store, err := db.NewCollectionStore(ctx, appCfg.Store, &log.Logger)
	if err != nil {
		log.Fatal().Err(err).Str("backend", appCfg.Store.Backend).Msg("Failed to open collection store")
	}
	log.Info().Str("backend", appCfg.Store.Backend).Msg("Collection store ready")
	return store
}

func setLogging(level string) {
	zerolog.TimestampFunc = func() time.Time {
		return time.Now().UTC()
	}

	switch strings.ToLower(level) {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	case "fatal":
		zerolog.SetGlobalLevel(zerolog.FatalLevel)
	case "panic":
		zerolog.SetGlobalLevel(zerolog.PanicLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	}
}
