package main

import (
	"fmt"

	"github.com/aschepis/backscratcher/aifast/ratelimit"
	"github.com/spf13/cobra"
)

func newLimitsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "limits",
		Short: "Show the advisory rate limits",
		Long: `Show the advisory rate limits applied to complete and chat calls.

Limits are tracked per process. Token limits are informational only.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			limits := ratelimit.NewTracker(ratelimit.WithLimits(a.cfg.RateLimit)).GetRateLimits()
			fmt.Fprintf(cmd.OutOrStdout(), "requests_per_min: %d\ntokens_per_min: %d\n", limits.RequestsPerMin, limits.TokensPerMin)
			return nil
		},
	}
}
