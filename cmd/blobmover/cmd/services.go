// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/viper"

	"github.com/scc-digitalhub/blobmover/sdk/config"
	"github.com/scc-digitalhub/blobmover/sdk/services/relocate"
	"github.com/scc-digitalhub/blobmover/sdk/services/resolve"
	"github.com/scc-digitalhub/blobmover/sdk/services/transfer"
	"github.com/scc-digitalhub/blobmover/sdk/utils"
)

// newStore is swapped in tests.
var newStore = config.NewObjectStore

func newConsole(w io.Writer) *utils.Console {
	return utils.NewConsole(w, w == os.Stdout && !color.NoColor)
}

// newRelocateService wires store, executor and batch driver from the loaded
// configuration.
func newRelocateService(ctx context.Context, out io.Writer) (*relocate.RelocateService, error) {
	cfg, err := utils.BuildConfig()
	if err != nil {
		return nil, err
	}
	if cfg.Copy.SourceContainer == "" {
		return nil, errors.New("source container is not configured (source_container)")
	}

	store, err := newStore(ctx, cfg.Store)
	if err != nil {
		return nil, fmt.Errorf("store init failed: %w", err)
	}

	console := newConsole(out)
	tr, err := transfer.NewTransferService(ctx, cfg,
		transfer.WithStore(store),
		transfer.WithConsole(console),
		transfer.WithLogger(logger))
	if err != nil {
		return nil, err
	}

	languages := resolve.DefaultLanguages()
	if path := viper.GetString(utils.LanguageMapFile); path != "" {
		if languages, err = resolve.LoadLanguageMap(path); err != nil {
			return nil, err
		}
		logger.Debug("language map loaded", "path", path, "ids", len(languages.IDs()))
	}

	return relocate.NewRelocateService(tr,
		relocate.WithConsole(console),
		relocate.WithLogger(logger),
		relocate.WithLanguages(languages)), nil
}

// finish turns a run outcome into the command result. A missing or
// unreadable manifest is logged and is not an error for the shell.
func finish(summary *relocate.Summary, err error) error {
	if errors.Is(err, relocate.ErrManifestNotFound) || errors.Is(err, relocate.ErrManifestInvalid) {
		logger.Error("nothing to process", "error", err)
		return nil
	}
	if err != nil {
		return err
	}
	logger.Info("run summary",
		"run_id", summary.RunID,
		"entries", summary.Entries,
		"copied", summary.Copied,
		"failed", summary.Failed,
		"skipped", summary.Skipped)
	return nil
}
