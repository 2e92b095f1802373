package main

import (
	"fmt"

	"github.com/soweego-go/soweego/internal/iovalidate/biodata"
	"github.com/soweego-go/soweego/internal/iovalidate/deadid"
	"github.com/soweego-go/soweego/internal/iovalidate/link"
	"github.com/soweego-go/soweego/pkg/model"
	"github.com/spf13/cobra"
)

// getIngestCmd groups the edit-submission commands: they take a
// validator's recommendation and push it back to the knowledge base (or,
// for mnm, to the curation queue) through the EditBot/MixNMatchUploader
// collaborators. Entirely out-of-core-scope glue (§4.13): nothing here
// touches the record-linkage pipeline itself.
func getIngestCmd() *cobra.Command {
	ingestCmd := &cobra.Command{
		Use:   "ingest",
		Short: "submit validator recommendations back to the knowledge base",
	}

	ingestCmd.PersistentFlags().StringVar(&property, "property", "",
		"knowledge-base property carrying this catalog's identifier (e.g. P2963)")

	ingestCmd.AddCommand(
		getIngestIdentifiersCmd(),
		getIngestPeopleCmd(),
		getIngestWorksCmd(),
		getIngestDeleteCmd(),
		getIngestDeprecateCmd(),
		getIngestMnmCmd(),
	)

	return ingestCmd
}

func getIngestIdentifiersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "identifiers {catalog} {entity}",
		Short: "add the external-ID/URL claims the links validator recommends",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, entity := args[0], args[1]
			if property == "" {
				return fmt.Errorf("--property is required")
			}
			ctx := cmd.Context()

			kb, err := requireKB()
			if err != nil {
				return err
			}
			bot, err := requireEditBot()
			if err != nil {
				return err
			}
			store, db, err := openCatalogStore()
			if err != nil {
				return err
			}
			defer closeGormDB(db)

			recs, err := link.Check(ctx, kb, store, FormatterRegistry, catalog, entity, "ingest", model.PropertyID(property))
			if err != nil {
				return err
			}

			submitted := 0
			for _, addition := range recs.ExternalIDs {
				if err := bot.AddStatement(ctx, addition.QID, addition.PID, addition.Value); err != nil {
					return err
				}
				submitted++
			}
			for _, addition := range recs.URLs {
				if err := bot.AddStatement(ctx, addition.QID, model.DescribedAtURL, addition.URL); err != nil {
					return err
				}
				submitted++
			}
			fmt.Printf("submitted %d identifier/URL claims for %s/%s\n", submitted, catalog, entity)
			return nil
		},
	}
}

func getIngestPeopleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "people {catalog} {entity}",
		Short: "add the biographical statements the bio validator recommends",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, entity := args[0], args[1]
			if property == "" {
				return fmt.Errorf("--property is required")
			}
			ctx := cmd.Context()

			kb, err := requireKB()
			if err != nil {
				return err
			}
			bot, err := requireEditBot()
			if err != nil {
				return err
			}
			store, db, err := openCatalogStore()
			if err != nil {
				return err
			}
			defer closeGormDB(db)

			recs, err := biodata.Check(ctx, kb, store, catalog, entity, "ingest", model.PropertyID(property))
			if err != nil {
				return err
			}

			submitted := 0
			for _, addition := range recs.Add {
				if err := bot.AddStatement(ctx, addition.QID, addition.PID, addition.Value); err != nil {
					return err
				}
				submitted++
			}
			fmt.Printf("submitted %d biographical statements for %s/%s\n", submitted, catalog, entity)
			return nil
		},
	}
}

func getIngestWorksCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "works {catalog} {entity}",
		Short: "add credited-work relationships the catalog carries but the KB doesn't",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return fmt.Errorf("works ingestion needs a dedicated relationship schema not yet modeled; " +
				"use 'ingest people'/'ingest identifiers' for the entity-level claims")
		},
	}
}

func getIngestDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete {qid} {pid} {value}",
		Short: "remove a single statement from the knowledge base",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			bot, err := requireEditBot()
			if err != nil {
				return err
			}
			if err := bot.RemoveStatement(cmd.Context(), model.QID(args[0]), model.PropertyID(args[1]), args[2]); err != nil {
				return err
			}
			fmt.Printf("removed %s %s %q\n", args[0], args[1], args[2])
			return nil
		},
	}
}

func getIngestDeprecateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "deprecate {catalog} {entity}",
		Short: "deprecate the identifier statements the dead-ID validator flags",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, entity := args[0], args[1]
			if property == "" {
				return fmt.Errorf("--property is required")
			}
			ctx := cmd.Context()

			claims, err := currentClaims(cmd, catalog, entity)
			if err != nil {
				return err
			}
			bot, err := requireEditBot()
			if err != nil {
				return err
			}
			store, db, err := openCatalogStore()
			if err != nil {
				return err
			}
			defer closeGormDB(db)

			recs, err := deadid.Check(ctx, store, catalog, entity, claims)
			if err != nil {
				return err
			}

			submitted := 0
			for _, rec := range recs {
				for _, qid := range rec.QIDs {
					err := bot.DeprecateStatement(ctx, qid, model.PropertyID(property), string(rec.TID), "catalog no longer has this identifier")
					if err != nil {
						return err
					}
					submitted++
				}
			}
			fmt.Printf("deprecated %d statements for %s/%s\n", submitted, catalog, entity)
			return nil
		},
	}
}

func getIngestMnmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mnm {algorithm} {catalog} {entity}",
		Short: "classify and upload below-threshold candidates to Mix'n'match",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Equivalent to `linker link --upload --no-classify=false`, kept
			// as its own entry point since curation uploads are an
			// out-of-core-scope concern (§4.13) separate from linking.
			linkCmd := getLinkerLinkCmd()
			if err := linkCmd.Flags().Set("upload", "true"); err != nil {
				return err
			}
			linkCmd.SetContext(cmd.Context())
			linkCmd.SetArgs(args)
			return linkCmd.RunE(linkCmd, args)
		},
	}
}
