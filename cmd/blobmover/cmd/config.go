// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/scc-digitalhub/blobmover/sdk/utils"
)

var configOutput string

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or save configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the resolved configuration, secrets masked",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configSaveCmd = &cobra.Command{
	Use:   "save",
	Short: "Persist the resolved configuration into the INI file",
	Args:  cobra.NoArgs,
	RunE:  runConfigSave,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSaveCmd)
	configShowCmd.Flags().StringVarP(&configOutput, "output", "o", "yaml", "Output format (yaml, json)")
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	out, err := utils.Render(utils.Settings(), configOutput)
	if err != nil {
		return fmt.Errorf("failed to render config: %w", err)
	}
	_, err = cmd.OutOrStdout().Write(out)
	return err
}

func runConfigSave(cmd *cobra.Command, _ []string) error {
	if _, err := utils.BuildConfig(); err != nil {
		return err
	}
	env, err := utils.SaveConfig(envName)
	if err != nil {
		return err
	}
	newConsole(cmd.OutOrStdout()).Infof("Configuration saved to environment '%s'", env)
	return nil
}
