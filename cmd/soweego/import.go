package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// getImportCmd triggers a catalog's dump download/parse/load cycle. The
// download and format-specific parsing are entirely out of core scope
// (§4.13): this command only exercises the CatalogImporter handoff point.
func getImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import {catalog}",
		Short: "download and load a catalog's authority dump into the catalog store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog := args[0]

			importer, err := requireImporter()
			if err != nil {
				return err
			}
			if err := importer.Import(cmd.Context(), catalog); err != nil {
				return err
			}
			fmt.Printf("imported catalog %q\n", catalog)
			return nil
		},
	}
}
