package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/spf13/cobra"

	"cubicacion/collections"
	"cubicacion/services"
	"cubicacion/store"
)

// newSummaryCmd prints the order text of one calculator, e.g.
//
//	cubicacion resumen volcanita --detalle
func newSummaryCmd(app *pocketbase.PocketBase, st *store.Store) *cobra.Command {
	var detailed bool

	cmd := &cobra.Command{
		Use:       "resumen <" + strings.Join(services.Calculators, "|") + ">",
		Short:     "Imprime el resumen de pedido de una calculadora",
		Args:      cobra.ExactArgs(1),
		ValidArgs: services.Calculators,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := collections.Setup(app); err != nil {
				return err
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			in, err := st.SummaryInput(ctx, args[0])
			if err != nil {
				return err
			}
			text, err := services.Summary(args[0], in, detailed)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), text)
			return err
		},
	}
	cmd.Flags().BoolVar(&detailed, "detalle", false, "incluye el detalle por piso y por elemento")
	return cmd
}
