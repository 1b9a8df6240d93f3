package main

import (
	"errors"
	"fmt"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/yukirin/cplist/internal/cli"
	"github.com/yukirin/cplist/internal/model"
	"github.com/yukirin/cplist/internal/parser"
	"github.com/yukirin/cplist/internal/sheet"
	"github.com/yukirin/cplist/internal/tui"
)

func importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import booths into the active shopping list",
	}

	cmd.AddCommand(importTextCmd())
	cmd.AddCommand(importCSVCmd())

	return cmd
}

func importTextCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "text [file]",
		Short: "Import booths from announcement text",
		Long: `Parse free text (a pasted announcement, a 【摊位号】 template, or
one-booth-per-line notes) and save the recognized booths. Reads the
named file, or stdin when no file (or "-") is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) > 0 {
				path = args[0]
			}

			text, err := readInput(path)
			if err != nil {
				return err
			}

			entries := parser.ParseText(text)
			return saveEntries(cmd, entries)
		},
	}

	addImportFlags(cmd)
	return cmd
}

func importCSVCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "csv <file>",
		Short: "Import booths from a CSV spreadsheet export",
		Long: `Decode a spreadsheet export. The header row is located automatically
(it does not have to be the first row); sheets without any header are
decoded by inferring which columns hold booth numbers and prices.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := openInput(args[0])
			if err != nil {
				return err
			}
			defer func() { _ = f.Close() }()

			rows, err := sheet.ReadGrid(f)
			if err != nil {
				return err
			}

			bar := progressbar.NewOptions(len(rows),
				progressbar.OptionSetDescription("解析表格"),
				progressbar.OptionClearOnFinish(),
			)

			entries, err := sheet.ParseWithProgress(rows, func(done, _ int) {
				_ = bar.Set(done)
			})
			if errors.Is(err, sheet.ErrNoUsableData) {
				return fmt.Errorf("表格里找不到摊位号或制品列: %w", err)
			}
			if err != nil {
				return err
			}

			return saveEntries(cmd, entries)
		},
	}

	addImportFlags(cmd)
	return cmd
}

func addImportFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("review", false, "interactively choose which booths to keep before saving")
	cmd.Flags().Bool("dry-run", false, "print what would be imported without saving")
}

// saveEntries applies the review and dry-run flags, then persists the
// entries into the active list.
func saveEntries(cmd *cobra.Command, entries []model.BoothEntry) error {
	if len(entries) == 0 {
		fmt.Println(cli.FormatWarning("未识别到任何摊位，无事可做"))
		return nil
	}

	review, _ := cmd.Flags().GetBool("review")
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	if review {
		kept, aborted, err := tui.Review(entries)
		if err != nil {
			return err
		}
		if aborted {
			fmt.Println(cli.FormatWarning("导入已取消"))
			return nil
		}
		entries = kept
		if len(entries) == 0 {
			fmt.Println(cli.FormatWarning("没有保留任何摊位"))
			return nil
		}
	}

	if dryRun {
		fmt.Print(renderEntries(entries))
		fmt.Println(cli.SubtleStyle.Render("dry-run：未写入数据库"))
		return nil
	}

	ctx := cmd.Context()
	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	list, err := resolveList(ctx, store, true)
	if err != nil {
		return err
	}

	stats, err := store.SaveImportedBooths(ctx, list.ID, entries)
	if err != nil {
		return err
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf(
		"已导入到 %q：新增 %d 摊位，合并 %d 摊位，共 %d 件制品",
		list.Name, stats.NewBooths, stats.MergedBooths, stats.Products)))
	return nil
}
