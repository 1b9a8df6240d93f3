package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/yukirin/cplist/internal/cli"
	"github.com/yukirin/cplist/internal/config"
	"github.com/yukirin/cplist/internal/engine"
	"github.com/yukirin/cplist/internal/export"
	"github.com/yukirin/cplist/internal/model"
	"github.com/yukirin/cplist/internal/sheets"
)

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the active shopping list",
	}

	cmd.AddCommand(exportCSVCmd())
	cmd.AddCommand(exportSheetsCmd())

	return cmd
}

// loadSortedBooths fetches the active list's booths in display order,
// pinned booths first in their stored order.
func loadSortedBooths(cmd *cobra.Command) (string, []model.BoothRecord, error) {
	ctx := cmd.Context()
	store, err := initStorage(ctx)
	if err != nil {
		return "", nil, err
	}
	defer func() { _ = store.Close() }()

	list, err := resolveList(ctx, store, false)
	if err != nil {
		return "", nil, err
	}

	booths, err := store.GetBooths(ctx, list.ID)
	if err != nil {
		return "", nil, err
	}

	return list.Name, engine.Arrange(booths), nil
}

func exportCSVCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "csv",
		Short: "Write the list as a CSV file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			name, booths, err := loadSortedBooths(cmd)
			if err != nil {
				return err
			}
			if len(booths) == 0 {
				fmt.Println(cli.FormatWarning(fmt.Sprintf("清单 %q 还是空的", name)))
				return nil
			}

			outPath, _ := cmd.Flags().GetString("output")
			out := os.Stdout
			if outPath != "" && outPath != "-" {
				f, err := os.Create(outPath)
				if err != nil {
					return fmt.Errorf("failed to create %s: %w", outPath, err)
				}
				defer func() { _ = f.Close() }()
				out = f
			}

			if err := export.WriteCSV(out, booths); err != nil {
				return err
			}

			if outPath != "" && outPath != "-" {
				fmt.Println(cli.FormatSuccess(fmt.Sprintf("已导出 %d 个摊位到 %s", len(booths), outPath)))
			}
			return nil
		},
	}

	cmd.Flags().StringP("output", "o", "", "output file (default: stdout)")
	return cmd
}

func exportSheetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sheets",
		Short: "Upload the list to Google Sheets",
		Long: `Upload the grouped list to a Google spreadsheet. Authentication comes
from the config file or GOOGLE_SHEETS_* environment variables; either a
service account key or OAuth2 client credentials work.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			name, booths, err := loadSortedBooths(cmd)
			if err != nil {
				return err
			}
			if len(booths) == 0 {
				return fmt.Errorf("清单 %q 还是空的，没有可导出的内容", name)
			}

			sheetsConfig, err := config.LoadSheetsConfig()
			if err != nil {
				return fmt.Errorf("sheets configuration: %w", err)
			}

			ctx := cmd.Context()
			writer, err := sheets.NewWriter(ctx, *sheetsConfig, slog.Default())
			if err != nil {
				return err
			}

			groups := engine.GroupBooths(booths)
			if err := writer.Write(ctx, name, groups); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("已上传 %d 个摊位到 Google Sheets", len(booths))))
			return nil
		},
	}
}
