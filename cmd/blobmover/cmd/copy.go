// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/scc-digitalhub/blobmover/sdk/services/resolve"
	"github.com/scc-digitalhub/blobmover/sdk/utils"
)

var (
	copyPolicy       string
	copyManifest     string
	copyDestinations string
)

var copyCmd = &cobra.Command{
	Use:   "copy",
	Short: "Copy the entries of a text manifest",
	Long: `Copy every "source/path : target" line of a manifest with the chosen policy.

With --policy folder the manifest lists source paths only and --destinations
lists the destination folder of each line.`,
	Args: cobra.NoArgs,
	RunE: runCopy,
}

func init() {
	rootCmd.AddCommand(copyCmd)
	copyCmd.Flags().StringVar(&copyPolicy, "policy", string(resolve.PolicyMove), "Destination policy (sibling, move, rebase, folder)")
	copyCmd.Flags().StringVarP(&copyManifest, "manifest", "m", "", "Manifest file (default source_file)")
	copyCmd.Flags().StringVarP(&copyDestinations, "destinations", "d", "", "Destination folders for --policy folder (default destination_file)")
}

func runCopy(cmd *cobra.Command, _ []string) error {
	policy, err := resolve.ParsePolicy(copyPolicy)
	if err != nil {
		return err
	}
	if policy == resolve.PolicyLangMap {
		return errors.New("the langmap policy reads records, use the records command")
	}

	manifestPath := firstNonEmpty(copyManifest, viper.GetString(utils.SourceFile))
	if manifestPath == "" {
		return fmt.Errorf("no manifest given (--manifest or %s)", utils.SourceFile)
	}

	svc, err := newRelocateService(cmd.Context(), cmd.OutOrStdout())
	if err != nil {
		return err
	}

	if policy == resolve.PolicyFolder {
		destinations := firstNonEmpty(copyDestinations, viper.GetString(utils.DestinationFile))
		if destinations == "" {
			return fmt.Errorf("no destinations manifest given (--destinations or %s)", utils.DestinationFile)
		}
		return finish(svc.RunPaired(cmd.Context(), manifestPath, destinations))
	}
	return finish(svc.RunText(cmd.Context(), policy, manifestPath))
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
