// Package main is the entry point for the portal CLI client.
//
// The CLI talks to a running portal server: it logs in, keeps the issued
// token in a local state database, and renders the service directory with
// live reachability badges.
//
// Usage:
//
//	portal login admin          # authenticate and store the token
//	portal status               # render the portal with status badges
//	portal whoami               # show the authenticated user
//	portal logout               # tear down the session and clear state
package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "portal",
	Short: "Client for the Cardinal Portal",
	Long: `Command-line client for the Cardinal Portal.

Authenticates against a portal server, caches the bearer token locally,
and renders the service directory with per-service reachability badges.`,
	// No Run means the bare command shows help.
}

func init() {
	rootCmd.PersistentFlags().String("server", "http://localhost:4040", "portal server base URL")
	rootCmd.PersistentFlags().String("state", "", "auth state database path (default ~/.cardinal-portal/state.db)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		// cobra already printed the error
		os.Exit(1)
	}
}
