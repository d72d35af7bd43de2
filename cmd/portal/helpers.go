package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"cardinal-portal/internal/client"
	"cardinal-portal/internal/client/state"
)

// newAgent builds the auth agent from the persistent flags. The returned
// cleanup closes the state database.
func newAgent(cmd *cobra.Command) (*client.Agent, func(), error) {
	server, _ := cmd.Flags().GetString("server")
	statePath, _ := cmd.Flags().GetString("state")

	if statePath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, nil, fmt.Errorf("resolve home dir: %w", err)
		}
		statePath = filepath.Join(home, ".cardinal-portal", "state.db")
	}

	store, err := state.Open(statePath)
	if err != nil {
		return nil, nil, fmt.Errorf("open state store: %w", err)
	}

	agent := client.NewAgent(client.NewClient(server), store)
	return agent, func() { _ = store.Close() }, nil
}

// promptPassword reads a password from the terminal without echo.
func promptPassword() (string, error) {
	fmt.Fprint(os.Stderr, "Enter password: ")
	pw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", err
	}
	return string(pw), nil
}

// passwordFromFlagOrPrompt prefers the --password flag (scripting) and falls
// back to an interactive no-echo prompt.
func passwordFromFlagOrPrompt(cmd *cobra.Command) (string, error) {
	password, _ := cmd.Flags().GetString("password")
	if password != "" {
		return password, nil
	}
	return promptPassword()
}
