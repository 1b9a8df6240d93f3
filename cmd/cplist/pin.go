package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/yukirin/cplist/internal/cli"
)

func pinCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pin <booth-number>",
		Short: "Pin a booth to the top of the list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return setPinned(cmd, args[0], true)
		},
	}
}

func unpinCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unpin <booth-number>",
		Short: "Unpin a booth",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return setPinned(cmd, args[0], false)
		},
	}
}

func setPinned(cmd *cobra.Command, number string, pinned bool) error {
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

	booth, err := store.GetBoothByNumber(ctx, list.ID, number)
	if err != nil {
		return err
	}

	if err := store.UpdateBoothPinned(ctx, booth.ID, pinned); err != nil {
		return err
	}

	if pinned {
		fmt.Println(cli.FormatSuccess(fmt.Sprintf("%s 已置顶 %s", cli.PinIcon, number)))
	} else {
		fmt.Println(cli.FormatSuccess(fmt.Sprintf("已取消置顶 %s", number)))
	}
	return nil
}

func orderCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "order <booth-number> <position|none>",
		Short: "Set a booth's manual position within its hall",
		Long: `Booths with a manual position sort ahead of the rest of their hall,
in position order. Pass "none" to go back to the automatic order.`,
		Args: cobra.ExactArgs(2),
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

			if args[1] == "none" {
				if err := store.UpdateBoothManualOrder(ctx, booth.ID, nil); err != nil {
					return err
				}
				fmt.Println(cli.FormatSuccess(fmt.Sprintf("%s 恢复自动排序", args[0])))
				return nil
			}

			pos, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid position %q: %w", args[1], err)
			}

			if err := store.UpdateBoothManualOrder(ctx, booth.ID, &pos); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("%s 手动排到第 %d 位", args[0], pos)))
			return nil
		},
	}
}
