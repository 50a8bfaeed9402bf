package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"tagtree/internal/ledger"
	"tagtree/internal/logging"
	"tagtree/internal/organizer"
)

// runOrganize implements the root invocation: resolve both directories to
// absolute paths, build the configured logger and optional ledger, and run
// the organizer. Success is silent; failures surface through main.
func runOrganize(ctx *commandContext, cmd *cobra.Command, args []string) error {
	source, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("resolve source folder: %w", err)
	}
	dest, err := filepath.Abs(args[1])
	if err != nil {
		return fmt.Errorf("resolve destination folder: %w", err)
	}

	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		return err
	}

	var store *ledger.Store
	if store, err = ctx.openLedger(); err != nil {
		logger.Warn("run history unavailable", logging.Error(err))
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	return organizer.NewWithLedger(cfg, logger, store).Run(cmd.Context(), source, dest)
}
