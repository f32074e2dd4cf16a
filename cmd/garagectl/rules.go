package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"garage/internal/domain"
	"garage/internal/nominal"
)

func newRulesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Manage nominal code rules",
	}
	cmd.AddCommand(newRulesImportCmd(), newRulesMatchCmd())
	return cmd
}

func newRulesImportCmd() *cobra.Command {
	var dryRun bool
	cmd := &cobra.Command{
		Use:   "import <file.yaml>",
		Short: "Validate a rule file and replace the stored rule set",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := nominal.LoadRules(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d codes, %d rules valid\n", len(file.Codes), len(file.Rules))
			if dryRun {
				return nil
			}
			svc, closeFn, err := openService(cmd.Context(), "rules-import")
			if err != nil {
				return err
			}
			defer closeFn()
			if err := svc.ImportRules(cmd.Context(), file); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "imported")
			return nil
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "validate only, do not write to the database")
	return cmd
}

func newRulesMatchCmd() *cobra.Command {
	var (
		entity      string
		description string
		labor       string
		courtesyCar bool
		storage     bool
	)
	cmd := &cobra.Command{
		Use:   "match <file.yaml>",
		Short: "Show which nominal code a line item would get, without a database",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := nominal.LoadRules(args[0])
			if err != nil {
				return err
			}
			item := domain.LineItem{
				Description:     description,
				IsCourtesyCar:   courtesyCar,
				IsStorageCharge: storage,
			}
			switch labor {
			case "":
			case "true":
				v := true
				item.IsLabor = &v
			case "false":
				v := false
				item.IsLabor = &v
			default:
				return fmt.Errorf("--labor must be true or false, got %q", labor)
			}

			got := nominal.AssignAll([]domain.LineItem{item}, entity, file.Rules)[0]
			code := "Unassigned"
			if got.NominalCodeID != nil {
				code = *got.NominalCodeID
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", got.ItemType, code)
			return nil
		},
	}
	cmd.Flags().StringVar(&entity, "entity", domain.AllEntities, "business entity id")
	cmd.Flags().StringVar(&description, "description", "", "line item description")
	cmd.Flags().StringVar(&labor, "labor", "", "true for labour, false for parts, empty for a purchase")
	cmd.Flags().BoolVar(&courtesyCar, "courtesy-car", false, "item is a courtesy car charge")
	cmd.Flags().BoolVar(&storage, "storage", false, "item is a storage charge")
	_ = cmd.MarkFlagRequired("description")
	return cmd
}
