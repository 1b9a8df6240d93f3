package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yukirin/cplist/internal/cli"
	"github.com/yukirin/cplist/internal/model"
	"github.com/yukirin/cplist/internal/share"
)

func shareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "share",
		Short: "Print a share token for the active list",
		Long: `Encode the active list as a compact token that fits in a URL or a chat
message. Another cplist user restores it with "share import".`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			name, booths, err := loadSortedBooths(cmd)
			if err != nil {
				return err
			}
			if len(booths) == 0 {
				return fmt.Errorf("清单 %q 还是空的，没有可分享的内容", name)
			}

			token, err := share.Encode(&share.Payload{Name: name, Booths: booths})
			if err != nil {
				return err
			}

			fmt.Println(token)
			return nil
		},
	}

	cmd.AddCommand(shareImportCmd())
	return cmd
}

func shareImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <token>",
		Short: "Restore a shared list from a token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload, err := share.Decode(args[0])
			if err != nil {
				return err
			}
			if len(payload.Booths) == 0 {
				fmt.Println(cli.FormatWarning("分享的清单是空的"))
				return nil
			}

			name, _ := cmd.Flags().GetString("as")
			if name == "" {
				name = payload.Name
			}
			if name == "" {
				name = defaultListName
			}

			ctx := cmd.Context()
			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			list, err := store.CreateList(ctx, name)
			if err != nil {
				return err
			}

			entries := make([]model.BoothEntry, 0, len(payload.Booths))
			for _, b := range payload.Booths {
				entries = append(entries, model.BoothEntry{
					Type:     b.Type,
					Number:   b.Number,
					Name:     b.Name,
					Zone:     b.Zone,
					Note:     b.Note,
					Products: b.Products,
				})
			}

			stats, err := store.SaveImportedBooths(ctx, list.ID, entries)
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf(
				"已恢复清单 %q：%d 摊位，%d 件制品", name, stats.NewBooths, stats.Products)))
			return nil
		},
	}

	cmd.Flags().String("as", "", "restore under a different list name")
	return cmd
}
