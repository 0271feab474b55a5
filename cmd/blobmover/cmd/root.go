// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/scc-digitalhub/blobmover/sdk/utils"
)

var (
	envName  string
	provider string
	logLevel string

	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "blobmover",
	Short: "Copy blobs between folders and containers of an object store",
	Long: `blobmover reorganizes blobs with server-side copies.

Each manifest entry is turned into a destination path by a policy:
  - sibling  move a file into an existing sibling folder of its base
  - move     move within the same base or swap the base
  - rebase   replace the base folder
  - folder   put the file under the folder listed in a second manifest
  - langmap  file language records under their language folder (records command)

Settings come from ~/.blobmover.ini, a .env file in the working directory
and environment variables.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&envName, "env", "e", "", "Configuration environment (INI section)")
	rootCmd.PersistentFlags().StringVarP(&provider, "provider", "p", "", "Object store provider (azure, s3, gcs, minio, memory)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
}

// setup loads the configuration and builds the logger shared by all commands.
func setup(cmd *cobra.Command, _ []string) error {
	boot, err := utils.NewLogger(cmd.ErrOrStderr(), "warn")
	if err != nil {
		return err
	}
	var envs []string
	if envName != "" {
		envs = append(envs, envName)
	}
	if err := utils.LoadConfig(boot, envs...); err != nil {
		return err
	}

	if provider != "" {
		viper.Set(utils.StoreProvider, provider)
	}
	if logLevel != "" {
		viper.Set(utils.LogLevel, logLevel)
	}

	logger, err = utils.NewLogger(cmd.ErrOrStderr(), viper.GetString(utils.LogLevel))
	if err != nil {
		return err
	}
	logger.Debug("configuration loaded", "environment", viper.GetString(utils.CurrentEnvironment))
	return nil
}

// Execute runs the root command until it finishes or the process is
// interrupted.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}
