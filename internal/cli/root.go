// Package cli implements the bibcat command-line client.
package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tmcampos/biblioteca/internal/client"
)

var serverURL string

var rootCmd = &cobra.Command{
	Use:           "bibcat",
	Short:         "Browse the library catalog from the terminal",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command and prints any error to stderr.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	defaultServer := os.Getenv("BIBCAT_SERVER")
	if defaultServer == "" {
		defaultServer = "http://localhost:8080"
	}
	rootCmd.PersistentFlags().StringVarP(&serverURL, "server", "s", defaultServer, "server URL")
}

// tokenPath returns the file where the session token is cached.
func tokenPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("finding config dir: %w", err)
	}
	return filepath.Join(dir, "bibcat", "token"), nil
}

func saveToken(token string) error {
	path, err := tokenPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(token), 0600); err != nil {
		return fmt.Errorf("saving token: %w", err)
	}
	return nil
}

func loadToken() string {
	path, err := tokenPath()
	if err != nil {
		return ""
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

func clearToken() {
	if path, err := tokenPath(); err == nil {
		os.Remove(path)
	}
}

// newClient returns a client for the configured server with the cached
// session token, if any.
func newClient() *client.Client {
	c := client.New(serverURL)
	c.Token = loadToken()
	return c
}

// requireSession returns a client or an error when no session token is cached.
func requireSession() (*client.Client, error) {
	c := newClient()
	if c.Token == "" {
		return nil, fmt.Errorf("not logged in, run 'bibcat login' first")
	}
	return c, nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
