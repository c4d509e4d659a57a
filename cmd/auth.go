package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/theirongolddev/gastos/internal/tracker"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	flagLoginEmail     string
	flagRegisterName   string
	flagRegisterEmail  string
	flagRegisterBudget string
	flagPasswordStdin  bool
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in and store the session locally",
	Args:  cobra.NoArgs,
	RunE:  runLogin,
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account",
	Args:  cobra.NoArgs,
	RunE:  runRegister,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored session and cached data",
	Args:  cobra.NoArgs,
	RunE:  runLogout,
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in user",
	Args:  cobra.NoArgs,
	RunE:  runWhoami,
}

func init() {
	loginCmd.Flags().StringVarP(&flagLoginEmail, "email", "e", "", "Account email (prompted when omitted)")
	loginCmd.Flags().BoolVar(&flagPasswordStdin, "password-stdin", false, "Read the password from stdin")

	registerCmd.Flags().StringVar(&flagRegisterName, "name", "", "Display name")
	registerCmd.Flags().StringVarP(&flagRegisterEmail, "email", "e", "", "Account email")
	registerCmd.Flags().StringVar(&flagRegisterBudget, "budget", "", "Initial budget, greater than 0 (prompted when omitted)")
	registerCmd.Flags().BoolVar(&flagPasswordStdin, "password-stdin", false, "Read the password from stdin")

	rootCmd.AddCommand(loginCmd, registerCmd, logoutCmd, whoamiCmd)
}

func runLogin(cmd *cobra.Command, _ []string) error {
	s, err := openSession(false)
	if err != nil {
		return err
	}
	defer s.Close()

	in := bufio.NewReader(cmd.InOrStdin())
	email, err := promptLine(in, "Email", flagLoginEmail)
	if err != nil {
		return err
	}
	password, err := readPassword(in, "Password")
	if err != nil {
		return err
	}

	progress("Signing in to %s...", s.client.BaseURL())
	sess, err := s.tracker.Login(cmd.Context(), email, password)
	if err != nil {
		return err
	}
	fmt.Printf("  Logged in as %s\n", sess.Email)

	// Login already synced the profile.
	if s.tracker.Phase() == tracker.PhaseNeedsBudget {
		fmt.Println("  No budget yet. Set one with: gastos budget set <amount>")
	}
	return nil
}

func runRegister(cmd *cobra.Command, _ []string) error {
	s, err := openSession(false)
	if err != nil {
		return err
	}
	defer s.Close()

	in := bufio.NewReader(cmd.InOrStdin())
	name, err := promptLine(in, "Name", flagRegisterName)
	if err != nil {
		return err
	}
	email, err := promptLine(in, "Email", flagRegisterEmail)
	if err != nil {
		return err
	}
	password, err := readPassword(in, "Password")
	if err != nil {
		return err
	}
	budget, err := promptLine(in, "Initial budget", flagRegisterBudget)
	if err != nil {
		return err
	}

	progress("Creating account...")
	p, err := s.tracker.Register(cmd.Context(), name, email, password, budget)
	if err != nil {
		return err
	}
	fmt.Printf("  Account created for %s. Sign in with: gastos login -e %s\n", p.Email, p.Email)
	return nil
}

func runLogout(_ *cobra.Command, _ []string) error {
	s, err := openSession(false)
	if err != nil {
		return err
	}
	defer s.Close()

	if !s.tracker.IsAuthenticated() {
		fmt.Println("  Not logged in")
		return nil
	}
	if err := s.tracker.Logout(); err != nil {
		return err
	}
	fmt.Println("  Logged out")
	return nil
}

func runWhoami(cmd *cobra.Command, _ []string) error {
	s, err := openSession(false)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.requireAuth(); err != nil {
		return err
	}
	sess := s.tracker.Session()
	fmt.Printf("  Email:   %s\n", sess.Email)
	fmt.Printf("  User ID: %s\n", sess.UserID)
	fmt.Printf("  Server:  %s\n", s.client.BaseURL())
	fmt.Printf("  State:   %s\n", s.store.Path())
	if err := s.tracker.SyncProfile(cmd.Context()); err == nil {
		fmt.Printf("  Phase:   %s\n", s.tracker.Phase())
	}
	return nil
}

// promptLine returns preset when non-empty, otherwise asks on stderr.
func promptLine(in *bufio.Reader, label, preset string) (string, error) {
	if v := strings.TrimSpace(preset); v != "" {
		return v, nil
	}
	fmt.Fprintf(os.Stderr, "  %s: ", label)
	line, err := in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// readPassword reads without echo on a terminal and a plain line otherwise.
func readPassword(in *bufio.Reader, label string) (string, error) {
	fd := int(os.Stdin.Fd())
	if flagPasswordStdin || !term.IsTerminal(fd) {
		line, err := in.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return "", err
		}
		return strings.TrimRight(line, "\r\n"), nil
	}
	fmt.Fprintf(os.Stderr, "  %s: ", label)
	b, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return string(b), nil
}
