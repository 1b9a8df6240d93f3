package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yukirin/cplist/internal/cli"
	"github.com/yukirin/cplist/internal/model"
	"github.com/yukirin/cplist/internal/parser"
	"github.com/yukirin/cplist/internal/venue"
)

func parseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parse [file]",
		Short: "Parse booth announcement text without saving anything",
		Long: `Run the booth recognizer over free text and print what it finds.
Reads the named file, or stdin when no file (or "-") is given. Nothing
is written to the database; use "import text" for that.`,
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
			if len(entries) == 0 {
				fmt.Println(cli.FormatWarning("未识别到任何摊位"))
				return nil
			}

			fmt.Print(renderEntries(entries))
			return nil
		},
	}
}

// renderEntries formats parsed entries for terminal display.
func renderEntries(entries []model.BoothEntry) string {
	var b strings.Builder

	for _, e := range entries {
		header := fmt.Sprintf("%s  %s", e.Number, e.Name)
		if e.Zone != "" {
			header += cli.SubtleStyle.Render("  [" + e.Zone + "]")
		}
		header += cli.SubtleStyle.Render("  " + venue.Label(e.Type, e.Number))
		b.WriteString(cli.BoldStyle.Render(header) + "\n")

		for _, p := range e.Products {
			line := fmt.Sprintf("    %s  ¥%.10g", p.Name, p.Price)
			if p.Quantity > 1 {
				line += fmt.Sprintf(" ×%d", p.Quantity)
			}
			b.WriteString(line + "\n")
		}
	}

	b.WriteString(cli.SubtleStyle.Render(fmt.Sprintf("共 %d 个摊位", len(entries))) + "\n")
	return b.String()
}
