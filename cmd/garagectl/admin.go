package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"garage/migrations"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pool, logger, err := connect(cmd.Context(), "migrate")
			if err != nil {
				return err
			}
			defer pool.Close()
			ran, err := migrations.Apply(cmd.Context(), pool, logger)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d migrations applied\n", len(ran))
			return nil
		},
	}
}

func newEntitiesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "entities",
		Short: "Manage business entities",
	}

	var name, shortCode string
	add := &cobra.Command{
		Use:   "add",
		Short: "Register a business entity and print its id",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, closeFn, err := openService(cmd.Context(), "entities-add")
			if err != nil {
				return err
			}
			defer closeFn()
			e, err := svc.CreateEntity(cmd.Context(), name, shortCode)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", e.ID, e.ShortCode, e.Name)
			return nil
		},
	}
	add.Flags().StringVar(&name, "name", "", "entity name")
	add.Flags().StringVar(&shortCode, "short-code", "", "reference prefix, e.g. BPP")
	_ = add.MarkFlagRequired("name")
	_ = add.MarkFlagRequired("short-code")

	cmd.AddCommand(add)
	return cmd
}
