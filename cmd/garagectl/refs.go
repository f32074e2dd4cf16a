package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"garage/internal/sequence"
)

func newRefsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "refs",
		Short: "Reserve business references",
	}

	var entity, kind string
	next := &cobra.Command{
		Use:   "next",
		Short: "Reserve and print the next reference for an entity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			k := sequence.Kind(kind)
			if _, err := k.Prefix(); err != nil {
				return err
			}
			svc, closeFn, err := openService(cmd.Context(), "refs-next")
			if err != nil {
				return err
			}
			defer closeFn()
			ref, err := svc.ReserveReference(cmd.Context(), entity, k)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ref)
			return nil
		},
	}
	next.Flags().StringVar(&entity, "entity", "", "business entity id")
	next.Flags().StringVar(&kind, "kind", string(sequence.KindJob), "estimate, job, invoice, purchase-order or purchase")
	_ = next.MarkFlagRequired("entity")

	cmd.AddCommand(next)
	return cmd
}
