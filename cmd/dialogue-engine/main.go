// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the dialogue-engine CLI.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/dialogue-engine/internal/logging"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the dialogue-engine CLI.
var rootCmd = &cobra.Command{
	Use:   "dialogue-engine",
	Short: "Toolkit for knowledge-grounded dialogue datasets",
	Long: `dialogue-engine loads knowledge-grounded dialogue transcripts, reshapes
them into per-turn training examples through teacher variants, drives live
or simulated conversations against a response-generating agent, and indexes
generated examples for full-text retrieval.

Each stage is a subcommand: stats, teach, index, and interact.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
			level = slog.LevelDebug
		}
		format, _ := cmd.Flags().GetString("log-format")
		logging.Init(level, format)
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./dialogue-engine.yaml or ~/.config/dialogue-engine/config.yaml)")
	rootCmd.PersistentFlags().Bool("verbose", false, "enable debug logging")
	rootCmd.PersistentFlags().String("log-format", "text", "log format: text or json")
	rootCmd.PersistentFlags().String("data-path", "data", "base directory holding per-task dataset folders")
	rootCmd.PersistentFlags().String("task", "topical_chat", "dataset folder name")
	rootCmd.PersistentFlags().String("split", "train", "dataset split: train, valid, or test")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("dialogue-engine")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "dialogue-engine"))
		}
	}

	viper.SetEnvPrefix("DIALOGUE_ENGINE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
