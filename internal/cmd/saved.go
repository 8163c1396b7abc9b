package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/mamasalanang-gerald/Servify-sub000/internal/saved"
)

var savedCmd = &cobra.Command{
	Use:   "saved",
	Short: "Manage saved services",
}

var savedListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved service ids",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		if _, err := a.requireSession(); err != nil {
			return err
		}

		set := saved.NewSet(a.gw, a.session)
		if err := set.Refresh(cmd.Context()); err != nil {
			return err
		}

		ids := set.IDs()
		if len(ids) == 0 {
			fmt.Println("No saved services.")
			return nil
		}
		sort.Strings(ids)
		for _, id := range ids {
			fmt.Println(id)
		}
		return nil
	},
}

var savedAddCmd = &cobra.Command{
	Use:   "add <service-id>",
	Short: "Save a service",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}

		set := saved.NewSet(a.gw, a.session)
		if err := set.Refresh(cmd.Context()); err != nil {
			return err
		}
		if err := set.Save(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Printf("Saved %s\n", args[0])
		return nil
	},
}

var savedRemoveCmd = &cobra.Command{
	Use:   "remove <service-id>",
	Short: "Remove a saved service",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}

		set := saved.NewSet(a.gw, a.session)
		if err := set.Refresh(cmd.Context()); err != nil {
			return err
		}
		if err := set.Unsave(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Printf("Removed %s\n", args[0])
		return nil
	},
}

func init() {
	savedCmd.AddCommand(savedListCmd)
	savedCmd.AddCommand(savedAddCmd)
	savedCmd.AddCommand(savedRemoveCmd)
	rootCmd.AddCommand(savedCmd)
}
