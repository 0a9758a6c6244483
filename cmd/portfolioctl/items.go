package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"portfolio/internal/service/admin"
)

var itemsCmd = &cobra.Command{
	Use:   "items",
	Short: "List, create, edit and delete sub-items",
}

var itemsListCmd = &cobra.Command{
	Use:   "list <section-id>",
	Short: "List a section's sub-items in display order",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withAdmin(cmd.Context(), func(a *app) error {
			if _, ok := a.controller.Section(args[0]); !ok {
				return fmt.Errorf("section %s not found", args[0])
			}
			state := a.controller.Snapshot()

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tORDER\tTYPE\tTITLE\tMEDIA")
			for _, item := range state.SubItems[args[0]] {
				fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%d\n", item.ID, item.OrderIndex, item.EffectiveType(), item.Title, len(item.MediaItems))
			}
			return tw.Flush()
		})
	},
}

var itemsCreateCmd = &cobra.Command{
	Use:   "create <section-id>",
	Short: "Create a sub-item in a section",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withAdmin(cmd.Context(), func(a *app) error {
			if _, ok := a.controller.Section(args[0]); !ok {
				return fmt.Errorf("section %s not found", args[0])
			}
			ed := a.controller.Editor()
			ed.OpenCreate(admin.KindSubItem, args[0])
			if err := submit(cmd, ed, func(d *admin.Draft) { applyItemFlags(cmd, d) }); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Sub-item created")
			return nil
		})
	},
}

var itemsEditCmd = &cobra.Command{
	Use:   "edit <item-id>",
	Short: "Change the given fields of a sub-item",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withAdmin(cmd.Context(), func(a *app) error {
			item, ok := a.controller.SubItem(args[0])
			if !ok {
				return fmt.Errorf("sub-item %s not found", args[0])
			}
			ed := a.controller.Editor()
			if err := ed.OpenEdit(admin.SubItemEntity(&item)); err != nil {
				return err
			}
			if err := submit(cmd, ed, func(d *admin.Draft) { applyItemFlags(cmd, d) }); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Sub-item updated")
			return nil
		})
	},
}

var itemsDeleteCmd = &cobra.Command{
	Use:   "delete <item-id>",
	Short: "Delete a sub-item",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withAdmin(cmd.Context(), func(a *app) error {
			if err := a.controller.Remove(cmd.Context(), admin.KindSubItem, args[0], ""); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Sub-item deleted")
			return nil
		})
	},
}

func init() {
	for _, c := range []*cobra.Command{itemsCreateCmd, itemsEditCmd} {
		c.Flags().String("title", "", "sub-item title")
		c.Flags().String("description", "", "markdown description")
		c.Flags().String("type", "", "gallery or youtube")
		c.Flags().Int("order", 0, "display position within the section")
	}
	itemsCmd.AddCommand(itemsListCmd, itemsCreateCmd, itemsEditCmd, itemsDeleteCmd)
}

// applyItemFlags copies the flags the user set into d
func applyItemFlags(cmd *cobra.Command, d *admin.Draft) {
	flags := cmd.Flags()
	if flags.Changed("title") {
		d.Title, _ = flags.GetString("title")
	}
	if flags.Changed("description") {
		d.Description, _ = flags.GetString("description")
	}
	if flags.Changed("type") {
		d.Type, _ = flags.GetString("type")
	}
	if flags.Changed("order") {
		order, _ := flags.GetInt("order")
		d.OrderIndex = &order
	}
}
