package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yukirin/cplist/internal/cli"
	"github.com/yukirin/cplist/internal/engine"
	"github.com/yukirin/cplist/internal/model"
	"github.com/yukirin/cplist/internal/service"
)

func listCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show the active shopping list grouped by venue hall",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			list, err := resolveList(ctx, store, false)
			if err != nil {
				return err
			}

			filter := service.BoothFilter{}
			if venueType, _ := cmd.Flags().GetString("type"); venueType != "" {
				t := model.VenueType(venueType)
				if !t.IsValid() {
					return fmt.Errorf("invalid venue type %q (doujin, enterprise, creative)", venueType)
				}
				filter.Type = t
			}
			if pinned, _ := cmd.Flags().GetBool("pinned"); pinned {
				v := true
				filter.Pinned = &v
			}

			booths, err := store.GetBoothsFiltered(ctx, list.ID, filter)
			if err != nil {
				return err
			}
			if len(booths) == 0 {
				fmt.Println(cli.FormatWarning(fmt.Sprintf("清单 %q 还是空的", list.Name)))
				return nil
			}

			fmt.Print(renderList(list.Name, booths))
			return nil
		},
	}

	cmd.Flags().String("type", "", "only show one venue type (doujin, enterprise, creative)")
	cmd.Flags().Bool("pinned", false, "only show pinned booths")
	return cmd
}

// renderList formats a booth list as a pinned section followed by
// venue-hall sections, with a grand total at the bottom.
func renderList(name string, booths []model.BoothRecord) string {
	var b strings.Builder
	b.WriteString(cli.FormatTitle(name) + "\n")

	var grandTotal float64
	groups := engine.GroupBooths(booths)
	for _, g := range groups {
		b.WriteString(cli.FormatHall(g.Label, len(g.Booths)) + "\n")
		for _, booth := range g.Booths {
			b.WriteString(renderBooth(&booth))
			grandTotal += booth.Total()
		}
		b.WriteString("\n")
	}

	b.WriteString(cli.TotalStyle.Render(
		fmt.Sprintf("共 %d 个摊位，总计 ¥%.10g", len(booths), grandTotal)) + "\n")
	return b.String()
}

func renderBooth(booth *model.BoothRecord) string {
	var b strings.Builder

	header := fmt.Sprintf("  %s  %s", booth.Number, booth.Name)
	if booth.Pinned {
		header = cli.PinStyle.Render(cli.PinIcon) + header
	}
	if booth.Zone != "" {
		header += cli.SubtleStyle.Render("  [" + booth.Zone + "]")
	}
	b.WriteString(header + "\n")

	for _, p := range booth.Products {
		line := fmt.Sprintf("    %s %s  ¥%.10g", statusMark(p.Status), p.Name, p.Price)
		if p.Quantity > 1 {
			line += fmt.Sprintf(" ×%d", p.Quantity)
		}
		if p.StatusNote != "" {
			line += cli.SubtleStyle.Render("  (" + p.StatusNote + ")")
		}
		if p.Status == model.StatusMissed {
			line = cli.SubtleStyle.Render(line)
		}
		b.WriteString(line + "\n")
	}

	if booth.Note != "" {
		b.WriteString(cli.SubtleStyle.Render("    备注："+booth.Note) + "\n")
	}
	return b.String()
}

func statusMark(s model.ProductStatus) string {
	switch s {
	case model.StatusBought:
		return cli.SuccessStyle.Render(cli.SuccessIcon)
	case model.StatusMissed:
		return cli.ErrorStyle.Render(cli.ErrorIcon)
	default:
		return "·"
	}
}
