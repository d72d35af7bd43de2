package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"cardinal-portal/internal/client"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Render the portal with reachability badges",
	Long: `Fetch the portal configuration with the stored token, render one card
per enabled service, probe every service concurrently, and print the
dashboard again once all badges have settled.`,
	Args: cobra.NoArgs,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
	statusCmd.Flags().Duration("probe-timeout", client.DefaultProbeTimeout, "per-service probe timeout")
}

func runStatus(cmd *cobra.Command, args []string) error {
	agent, cleanup, err := newAgent(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(cmd.Context(), 60*time.Second)
	defer cancel()

	auth, err := agent.BootstrapCheck(ctx)
	if err != nil {
		return err
	}
	if !auth.Authenticated {
		fmt.Fprintln(cmd.OutOrStdout(), "Not logged in; run `portal login <username>` first")
		return nil
	}

	doc, err := agent.FetchPortal(ctx)
	if err != nil {
		return fmt.Errorf("fetch portal: %w", err)
	}

	cards := client.BuildCards(doc)
	out := cmd.OutOrStdout()
	client.RenderText(out, doc, cards)

	if len(cards) == 0 {
		return nil
	}

	probeTimeout, _ := cmd.Flags().GetDuration("probe-timeout")
	prober := client.NewProber(probeTimeout)
	defer prober.Close()

	fmt.Fprintln(out, "\nProbing services...")
	for result := range prober.ProbeAll(ctx, cards) {
		cards[result.Index].Status = result.Status
	}

	fmt.Fprintln(out)
	client.RenderText(out, doc, cards)
	return nil
}
