package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/yukirin/cplist/internal/cli"
	"github.com/yukirin/cplist/internal/model"
)

func statusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status <booth-number> [product-index]",
		Short: "Cycle a product's purchase status",
		Long: `Advance a product through 待购 → 已购 → 没货 → 待购. The product index
is 1-based within the booth; with no index, a one-product booth cycles
its only product. Use --set to jump to a specific status instead of
cycling.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
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

			booth, err := store.GetBoothByNumber(ctx, list.ID, args[0])
			if err != nil {
				return err
			}
			if len(booth.Products) == 0 {
				return fmt.Errorf("booth %s has no products", args[0])
			}

			idx := 1
			if len(args) > 1 {
				idx, err = strconv.Atoi(args[1])
				if err != nil {
					return fmt.Errorf("invalid product index %q: %w", args[1], err)
				}
			} else if len(booth.Products) > 1 {
				return fmt.Errorf("booth %s has %d products, pass an index (1-%d)",
					args[0], len(booth.Products), len(booth.Products))
			}
			if idx < 1 || idx > len(booth.Products) {
				return fmt.Errorf("product index %d out of range (1-%d)", idx, len(booth.Products))
			}

			product := booth.Products[idx-1]

			next := product.Status.Next()
			if set, _ := cmd.Flags().GetString("set"); set != "" {
				next = model.ProductStatus(set)
			}

			flagNote, _ := cmd.Flags().GetString("note")
			note := statusNoteFor(next, flagNote, product.StatusNote)

			if err := store.UpdateProductStatus(ctx, product.ID, next, note); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("%s / %s → %s",
				args[0], product.Name, statusLabel(next))))
			return nil
		},
	}

	cmd.Flags().String("set", "", "set a specific status (pending, bought, missed) instead of cycling")
	cmd.Flags().String("note", "", "note for a missed product (e.g. 补货时间); other statuses drop it")
	return cmd
}

// statusNoteFor resolves the note to store with a status change. Notes
// only make sense on missed products; any other status clears the note.
func statusNoteFor(status model.ProductStatus, flagNote, existing string) string {
	if status != model.StatusMissed {
		return ""
	}
	if flagNote != "" {
		return flagNote
	}
	return existing
}

func statusLabel(s model.ProductStatus) string {
	switch s {
	case model.StatusBought:
		return "已购 " + cli.SuccessIcon
	case model.StatusMissed:
		return "没货 " + cli.ErrorIcon
	default:
		return "待购"
	}
}
