package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"portfolio/internal/importer"
	"portfolio/internal/service/admin"
)

var importCmd = &cobra.Command{
	Use:   "import <section-id> <file>...",
	Short: "Create sub-items from markdown, HTML or text files",
	Long: `Each file becomes one sub-item. Markdown files may start with front
matter giving title, type, images and youtube links; the body becomes the
description. HTML is sanitized and converted to markdown.`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		sectionID := args[0]
		registry := importer.NewRegistry()

		return withAdmin(cmd.Context(), func(a *app) error {
			if _, ok := a.controller.Section(sectionID); !ok {
				return fmt.Errorf("section %s not found", sectionID)
			}

			var failed int
			for _, path := range args[1:] {
				raw, err := os.ReadFile(path)
				if err != nil {
					return err
				}
				doc, err := registry.Convert(cmd.Context(), path, raw)
				if err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", path, err)
					failed++
					continue
				}

				ed := a.controller.Editor()
				ed.OpenCreate(admin.KindSubItem, sectionID)
				if err := submit(cmd, ed, doc.Apply); err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", path, err)
					failed++
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Imported %s as %q\n", path, doc.Title)
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d files failed", failed, len(args)-1)
			}
			return nil
		})
	},
}
