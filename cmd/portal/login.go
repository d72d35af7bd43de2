package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var loginCmd = &cobra.Command{
	Use:   "login <username>",
	Short: "Authenticate and store the token locally",
	Args:  cobra.ExactArgs(1),
	RunE:  runLogin,
}

func init() {
	rootCmd.AddCommand(loginCmd)
	loginCmd.Flags().String("password", "", "password (omit to be prompted)")
}

func runLogin(cmd *cobra.Command, args []string) error {
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

	user, err := agent.Login(ctx, args[0], password)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s\n", user.Username)
	return nil
}
