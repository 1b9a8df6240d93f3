package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/yukirin/cplist/internal/cli"
)

func listsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lists",
		Short: "Manage shopping lists",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			lists, err := store.GetLists(ctx)
			if err != nil {
				return err
			}
			if len(lists) == 0 {
				fmt.Println(cli.FormatWarning("还没有任何清单"))
				return nil
			}

			for _, l := range lists {
				fmt.Printf("%3d  %s  %s\n", l.ID, l.Name,
					cli.SubtleStyle.Render(l.CreatedAt.Format("2006-01-02")))
			}
			return nil
		},
	}

	cmd.AddCommand(listsCreateCmd())
	cmd.AddCommand(listsRenameCmd())
	cmd.AddCommand(listsDeleteCmd())
	cmd.AddCommand(listsUseCmd())

	return cmd
}

func listsCreateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create <name>",
		Short: "Create a new shopping list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			list, err := store.CreateList(ctx, args[0])
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("已创建清单 %q (id %d)", list.Name, list.ID)))
			return nil
		},
	}
}

func listsRenameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rename <id> <new-name>",
		Short: "Rename a shopping list",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid list id %q: %w", args[0], err)
			}

			ctx := cmd.Context()
			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.RenameList(ctx, id, args[1]); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("清单 %d 已改名为 %q", id, args[1])))
			return nil
		},
	}
}

func listsDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a shopping list and everything in it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid list id %q: %w", args[0], err)
			}

			yes, _ := cmd.Flags().GetBool("yes")
			if !yes {
				return fmt.Errorf("deleting a list removes all its booths; re-run with --yes to confirm")
			}

			ctx := cmd.Context()
			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			lists, err := store.GetLists(ctx)
			if err != nil {
				return err
			}
			if len(lists) <= 1 {
				return fmt.Errorf("不能删除最后一个清单")
			}

			if err := store.DeleteList(ctx, id); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("清单 %d 已删除", id)))
			return nil
		},
	}

	cmd.Flags().Bool("yes", false, "skip the confirmation")
	return cmd
}

func listsUseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "use <name>",
		Short: "Switch the active shopping list",
		Long: `Make the named list the default for all commands. The choice is saved
to the config file; --list still overrides it per invocation.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			list, err := store.GetListByName(ctx, args[0])
			if err != nil {
				return fmt.Errorf("清单 %q 不存在: %w", args[0], err)
			}

			viper.Set("list.active", list.Name)
			if err := writeActiveList(); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("当前清单切换为 %q", list.Name)))
			return nil
		},
	}
}

// writeActiveList persists viper's state, creating the config file on
// first use.
func writeActiveList() error {
	if err := viper.WriteConfig(); err == nil {
		return nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}

	dir := filepath.Join(home, ".config", "cplist")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := viper.WriteConfigAs(filepath.Join(dir, "config.yaml")); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
