package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the authenticated user, verifying the stored token",
	Args:  cobra.NoArgs,
	RunE:  runWhoami,
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}

func runWhoami(cmd *cobra.Command, args []string) error {
	agent, cleanup, err := newAgent(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(cmd.Context(), 15*time.Second)
	defer cancel()

	status, err := agent.BootstrapCheck(ctx)
	if err != nil {
		return err
	}
	if !status.Authenticated {
		fmt.Fprintln(cmd.OutOrStdout(), "Not logged in")
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s\n", status.User.Username)
	return nil
}
