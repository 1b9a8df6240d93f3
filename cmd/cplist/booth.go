package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/yukirin/cplist/internal/cli"
	"github.com/yukirin/cplist/internal/model"
)

func removeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <booth-number>",
		Short: "Remove a booth and its products from the active list",
		Args:  cobra.ExactArgs(1),
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

			if err := store.DeleteBooth(ctx, booth.ID); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("已删除摊位 %s（%d 件制品）",
				booth.Number, len(booth.Products))))
			return nil
		},
	}
}

func noteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "note <booth-number> <text>",
		Short: "Set a booth's note",
		Long:  `Replace the booth's note. Pass an empty string to clear it.`,
		Args:  cobra.ExactArgs(2),
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

			if err := store.UpdateBoothNote(ctx, booth.ID, args[1]); err != nil {
				return err
			}

			if args[1] == "" {
				fmt.Println(cli.FormatSuccess(fmt.Sprintf("已清除 %s 的备注", booth.Number)))
			} else {
				fmt.Println(cli.FormatSuccess(fmt.Sprintf("已更新 %s 的备注", booth.Number)))
			}
			return nil
		},
	}
}

func productCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "product",
		Short: "Add or remove products on a booth",
	}

	cmd.AddCommand(productAddCmd())
	cmd.AddCommand(productDeleteCmd())

	return cmd
}

func productAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <booth-number> <name>",
		Short: "Add a product to a booth",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			price, _ := cmd.Flags().GetFloat64("price")
			qty, _ := cmd.Flags().GetInt("qty")

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

			product := model.ProductRecord{
				Name:     args[1],
				Price:    price,
				Quantity: qty,
				Status:   model.StatusPending,
			}
			if err := product.Validate(); err != nil {
				return err
			}

			if err := store.AddProduct(ctx, booth.ID, product); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("%s + %s ¥%.10g ×%d",
				booth.Number, product.Name, product.Price, product.Quantity)))
			return nil
		},
	}

	cmd.Flags().Float64("price", 0, "unit price")
	cmd.Flags().Int("qty", 1, "quantity")
	return cmd
}

func productDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <booth-number> <product-index>",
		Short: "Remove a product from a booth",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			idx, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid product index %q: %w", args[1], err)
			}

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
			if idx < 1 || idx > len(booth.Products) {
				return fmt.Errorf("product index %d out of range (1-%d)", idx, len(booth.Products))
			}

			product := booth.Products[idx-1]
			if err := store.DeleteProduct(ctx, product.ID); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("已删除 %s / %s", booth.Number, product.Name)))
			return nil
		},
	}
}
