package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func init() {
	rootCmd.AddCommand(loginCmd, logoutCmd, whoamiCmd, passwdCmd)
}

// readPassword reads a password with terminal masking. When stdin is not a
// terminal it falls back to a plain line read.
func readPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	if term.IsTerminal(int(syscall.Stdin)) {
		bytePassword, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Println()
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(bytePassword)), nil
	}

	scanner := bufio.NewScanner(os.Stdin)
	if !scanner.Scan() {
		return "", fmt.Errorf("reading password: %w", scanner.Err())
	}
	return strings.TrimSpace(scanner.Text()), nil
}

var loginCmd = &cobra.Command{
	Use:   "login <username>",
	Short: "Log in and cache a session token",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		password, err := readPassword("Password: ")
		if err != nil {
			return err
		}

		c := newClient()
		result, err := c.Login(cmd.Context(), args[0], password)
		if err != nil {
			return err
		}
		if err := saveToken(result.Token); err != nil {
			return err
		}

		fmt.Printf("Logged in as %s (%s)\n", result.User.Name, result.User.Role)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Revoke the session and forget the cached token",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := requireSession()
		if err != nil {
			return err
		}

		// Forget the token even if revocation fails; the server side
		// expires it within a day regardless.
		if err := c.Logout(cmd.Context()); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		}
		clearToken()
		fmt.Println("Logged out.")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the logged-in user",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := requireSession()
		if err != nil {
			return err
		}

		user, err := c.Me(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Printf("%s <%s> (%s)\n", user.Name, user.Email, user.Role)
		return nil
	},
}

var passwdCmd = &cobra.Command{
	Use:   "passwd",
	Short: "Change your password",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := requireSession()
		if err != nil {
			return err
		}

		current, err := readPassword("Current password: ")
		if err != nil {
			return err
		}
		newPassword, err := readPassword("New password: ")
		if err != nil {
			return err
		}
		confirm, err := readPassword("Repeat new password: ")
		if err != nil {
			return err
		}
		if newPassword != confirm {
			return fmt.Errorf("passwords do not match")
		}

		if err := c.ChangePassword(cmd.Context(), current, newPassword); err != nil {
			return err
		}
		fmt.Println("Password changed.")
		return nil
	},
}
