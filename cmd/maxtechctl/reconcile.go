package main

import (
	"fmt"
	"time"

	"github.com/Kariqs/maxtech-api/initializers"
	"github.com/spf13/cobra"
)

func reconcileCmd() *cobra.Command {
	var olderThan time.Duration

	cmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Poll the payment gateway for payments still pending",
		Long: `Checks every PENDING payment created before --older-than with the gateway
and records the outcome, for webhooks that never arrived.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := initializers.NewOrderService(initializers.Cfg, nil)
			n, err := svc.ReconcilePending(cmd.Context(), olderThan)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Reconciled %d pending payment(s)\n", n)
			return nil
		},
	}

	cmd.Flags().DurationVar(&olderThan, "older-than", 15*time.Minute, "only check payments older than this")
	return cmd
}
