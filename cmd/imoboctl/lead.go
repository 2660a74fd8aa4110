package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/imobo/imobo/internal/importer"
	"github.com/imobo/imobo/internal/lead"
	leadStore "github.com/imobo/imobo/internal/lead/store"
)

var leadCmd = &cobra.Command{
	Use:   "lead",
	Short: "Manage listing-portal leads",
}

var leadImportCmd = &cobra.Command{
	Use:   "import <csv-file>",
	Short: "Import a listing-portal CSV export",
	Long: `Import parses a CSV export downloaded from a listing portal
(idealista, imovirtual, or a generic export) and inserts the contained
leads. The portal format and character encoding are auto-detected.

Rows matching an existing lead by email or phone are reported as
conflicts and nothing is inserted; clean up the file and re-run.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("open export: %w", err)
		}
		defer f.Close()

		params, err := importer.NewService().Import(f)
		if err != nil {
			return fmt.Errorf("parse export: %w", err)
		}

		if len(params) == 0 {
			fmt.Println("no leads found in file")
			return nil
		}

		svc := lead.NewService(leadStore.New(a.db))

		result, err := svc.ImportBatch(cmd.Context(), params[0].Source, params)
		if err != nil {
			return err
		}

		if len(result.Conflicts) > 0 {
			fmt.Printf("%d rows conflict with existing leads, nothing imported:\n", len(result.Conflicts))

			for _, c := range result.Conflicts {
				fmt.Printf("  %s (%s %s) matches lead %s\n",
					c.Incoming.Name, c.Incoming.Email, c.Incoming.Phone, c.Existing.ID)
			}

			return nil
		}

		fmt.Printf("imported %d leads from %s\n", len(result.Imported), params[0].Source)

		return nil
	},
}

var leadListCmd = &cobra.Command{
	Use:   "list",
	Short: "List leads",
	RunE: func(cmd *cobra.Command, args []string) error {
		var filter lead.ListFilter

		if leadListStatus != "" {
			status := lead.Status(leadListStatus)
			filter.Status = &status
		}

		if leadListSource != "" {
			filter.Source = &leadListSource
		}

		svc := lead.NewService(leadStore.New(a.db))

		leads, err := svc.List(cmd.Context(), filter)
		if err != nil {
			return err
		}

		for _, l := range leads {
			fmt.Printf("%s  %-10s  %-12s  %s (%s %s)\n",
				l.ID, l.Status, l.Source, l.Name, l.Email, l.Phone)
		}

		fmt.Printf("%d leads\n", len(leads))

		return nil
	},
}

var (
	leadListStatus string
	leadListSource string
)

func init() {
	leadListCmd.Flags().StringVar(&leadListStatus, "status", "", "filter by status")
	leadListCmd.Flags().StringVar(&leadListSource, "source", "", "filter by source portal")

	leadCmd.AddCommand(leadImportCmd, leadListCmd)
	rootCmd.AddCommand(leadCmd)
}
