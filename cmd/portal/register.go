package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var registerCmd = &cobra.Command{
	Use:   "register <username>",
	Short: "Create a new account (does not log in)",
	Args:  cobra.ExactArgs(1),
	RunE:  runRegister,
}

func init() {
	rootCmd.AddCommand(registerCmd)
	registerCmd.Flags().String("password", "", "password (omit to be prompted)")
}

func runRegister(cmd *cobra.Command, args []string) error {
	agent, cleanup, err := newAgent(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	password, err := passwordFromFlagOrPrompt(cmd)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer cancel()

	if err := agent.Register(ctx, args[0], password); err != nil {
		return fmt.Errorf("registration failed: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Registered %s; log in to continue\n", args[0])
	return nil
}
