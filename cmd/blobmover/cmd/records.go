// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/scc-digitalhub/blobmover/sdk/utils"
)

var (
	recordsFile   string
	recordsPrefix string
)

var recordsCmd = &cobra.Command{
	Use:   "records",
	Short: "Copy the assets of JSON/YAML language records",
	Long: `Copy every asset listed in language records to <language folder>/<asset type>/<file>.

Records are read from a local file (--file) or from every .json, .yaml and .yml
blob stored under a prefix of the source container (--prefix).`,
	Args: cobra.NoArgs,
	RunE: runRecords,
}

func init() {
	rootCmd.AddCommand(recordsCmd)
	recordsCmd.Flags().StringVarP(&recordsFile, "file", "f", "", "Local record manifest")
	recordsCmd.Flags().StringVar(&recordsPrefix, "prefix", "", "Key prefix of record manifests in the source container (default manifest_prefix)")
	recordsCmd.MarkFlagsMutuallyExclusive("file", "prefix")
}

func runRecords(cmd *cobra.Command, _ []string) error {
	prefix := firstNonEmpty(recordsPrefix, viper.GetString(utils.ManifestPrefix))
	if recordsFile == "" && prefix == "" {
		return fmt.Errorf("no records given (--file, --prefix or %s)", utils.ManifestPrefix)
	}

	svc, err := newRelocateService(cmd.Context(), cmd.OutOrStdout())
	if err != nil {
		return err
	}
	if recordsFile != "" {
		return finish(svc.RunRecordFile(cmd.Context(), recordsFile))
	}
	return finish(svc.RunDiscovered(cmd.Context(), prefix))
}
