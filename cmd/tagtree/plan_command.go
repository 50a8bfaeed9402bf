package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"tagtree/internal/logging"
	"tagtree/internal/organizer"
)

func newPlanCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "plan <source_folder> <destination_folder>",
		Short: "Show the copies an organize run would perform, without writing",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
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

			ops, err := organizer.New(cfg, logging.NewNop()).Plan(source, dest)
			if err != nil {
				return err
			}
			if len(ops) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No files to organize.")
				return nil
			}

			rows := make([][]string, 0, len(ops))
			for _, op := range ops {
				rows = append(rows, []string{op.Record.Original, op.Dest})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"SOURCE", "DESTINATION"}, rows))
			fmt.Fprintf(cmd.OutOrStdout(), "%d file(s) would be copied.\n", len(ops))
			return nil
		},
	}
}
