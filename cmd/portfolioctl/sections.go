package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"portfolio/internal/service/admin"
)

var sectionsCmd = &cobra.Command{
	Use:   "sections",
	Short: "List, create, edit and delete sections",
}

var sectionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List sections in display order",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withAdmin(cmd.Context(), func(a *app) error {
			state := a.controller.Snapshot()

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tORDER\tICON\tTITLE\tITEMS")
			for _, s := range state.Sections {
				fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%d\n", s.ID, s.OrderIndex, s.Icon, s.Title, len(state.SubItems[s.ID]))
			}
			return tw.Flush()
		})
	},
}

var sectionsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a section",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withAdmin(cmd.Context(), func(a *app) error {
			ed := a.controller.Editor()
			ed.OpenCreate(admin.KindSection, "")
			if err := submit(cmd, ed, func(d *admin.Draft) { applySectionFlags(cmd, d) }); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Section created")
			return nil
		})
	},
}

var sectionsEditCmd = &cobra.Command{
	Use:   "edit <section-id>",
	Short: "Change the given fields of a section",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withAdmin(cmd.Context(), func(a *app) error {
			section, ok := a.controller.Section(args[0])
			if !ok {
				return fmt.Errorf("section %s not found", args[0])
			}
			ed := a.controller.Editor()
			if err := ed.OpenEdit(admin.SectionEntity(&section)); err != nil {
				return err
			}
			if err := submit(cmd, ed, func(d *admin.Draft) { applySectionFlags(cmd, d) }); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Section updated")
			return nil
		})
	},
}

var sectionsDeleteCmd = &cobra.Command{
	Use:   "delete <section-id>",
	Short: "Delete a section and all of its sub-items",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withAdmin(cmd.Context(), func(a *app) error {
			if err := a.controller.Remove(cmd.Context(), admin.KindSection, args[0], ""); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Section deleted")
			return nil
		})
	},
}

func init() {
	for _, c := range []*cobra.Command{sectionsCreateCmd, sectionsEditCmd} {
		c.Flags().String("title", "", "section title")
		c.Flags().String("description", "", "markdown description")
		c.Flags().String("icon", "", "emoji or icon name")
		c.Flags().String("color", "", "accent color")
		c.Flags().Int("order", 0, "display position")
	}
	sectionsCmd.AddCommand(sectionsListCmd, sectionsCreateCmd, sectionsEditCmd, sectionsDeleteCmd)
}

// applySectionFlags copies the flags the user set into d
func applySectionFlags(cmd *cobra.Command, d *admin.Draft) {
	flags := cmd.Flags()
	if flags.Changed("title") {
		d.Title, _ = flags.GetString("title")
	}
	if flags.Changed("description") {
		d.Description, _ = flags.GetString("description")
	}
	if flags.Changed("icon") {
		d.Icon, _ = flags.GetString("icon")
	}
	if flags.Changed("color") {
		d.Color, _ = flags.GetString("color")
	}
	if flags.Changed("order") {
		order, _ := flags.GetInt("order")
		d.OrderIndex = &order
	}
}

// submit fills the open editor and saves it. A failed save closes the
// dialog; the CLI has no form to return to.
func submit(cmd *cobra.Command, ed *admin.Editor, fill func(d *admin.Draft)) error {
	if err := ed.Update(fill); err != nil {
		return err
	}
	if err := ed.Submit(cmd.Context()); err != nil {
		ed.Close()
		return err
	}
	return nil
}
