package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"portfolio/internal/service/admin"
	"portfolio/internal/service/media"
)

var mediaCmd = &cobra.Command{
	Use:   "media",
	Short: "Manage a sub-item's images and videos",
}

var mediaListCmd = &cobra.Command{
	Use:   "list <item-id>",
	Short: "List a sub-item's media items",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withAdmin(cmd.Context(), func(a *app) error {
			item, ok := a.controller.SubItem(args[0])
			if !ok {
				return fmt.Errorf("sub-item %s not found", args[0])
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "INDEX\tTYPE\tTITLE\tURL")
			for i, m := range item.MediaItems {
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", i, m.Type, m.Title, m.URL)
			}
			return tw.Flush()
		})
	},
}

var mediaAddCmd = &cobra.Command{
	Use:   "add <item-id> <file>...",
	Short: "Upload image files to a sub-item",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		files := make([]media.File, 0, len(args)-1)
		for _, p := range args[1:] {
			info, err := os.Stat(p)
			if err != nil {
				return err
			}
			files = append(files, media.File{
				Name: filepath.Base(p),
				Size: info.Size(),
				Open: func() (io.ReadCloser, error) { return os.Open(p) },
			})
		}
		return editMedia(cmd, args[0], func(ctx context.Context, w *media.Widget) error {
			return w.AddFiles(ctx, files)
		})
	},
}

var mediaYoutubeCmd = &cobra.Command{
	Use:   "youtube <item-id> <url>",
	Short: "Add a YouTube video to a sub-item",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return editMedia(cmd, args[0], func(ctx context.Context, w *media.Widget) error {
			return w.AddYoutubeLink(args[1])
		})
	},
}

var mediaRemoveCmd = &cobra.Command{
	Use:   "remove <item-id> <index>",
	Short: "Remove a media item by position",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		index, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid index %q", args[1])
		}
		return editMedia(cmd, args[0], func(ctx context.Context, w *media.Widget) error {
			return w.RemoveItem(ctx, index)
		})
	},
}

var mediaOrphansCmd = &cobra.Command{
	Use:   "orphans",
	Short: "List uploaded files no sub-item references",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.close(ctx)

		objects, err := a.storage.List(ctx, settings.MediaFolder)
		if err != nil {
			return err
		}
		referenced, err := a.subItems.ListStoragePaths(ctx)
		if err != nil {
			return err
		}

		orphans := media.Orphans(settings.MediaFolder, objects, referenced)
		for _, p := range orphans {
			fmt.Fprintln(cmd.OutOrStdout(), p)
		}

		if purge, _ := cmd.Flags().GetBool("delete"); purge && len(orphans) > 0 {
			if err := a.storage.Delete(ctx, orphans...); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d files\n", len(orphans))
		}
		return nil
	},
}

func init() {
	mediaOrphansCmd.Flags().Bool("delete", false, "delete the orphaned files")
	mediaCmd.AddCommand(mediaListCmd, mediaAddCmd, mediaYoutubeCmd, mediaRemoveCmd, mediaOrphansCmd)
}

// editMedia runs op against the sub-item's media and prints the result
func editMedia(cmd *cobra.Command, id string, op admin.MediaOp) error {
	return withAdmin(cmd.Context(), func(a *app) error {
		res, err := a.controller.EditMedia(cmd.Context(), a.storage, settings.MediaFolder, id, op)
		if err != nil {
			return err
		}
		if res.Warning != "" {
			fmt.Fprintln(cmd.ErrOrStderr(), "warning:", res.Warning)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d media items\n", len(res.Items))
		return res.Err()
	})
}
