package cmd

import (
	"fmt"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/mamasalanang-gerald/Servify-sub000/internal/api"
	"github.com/mamasalanang-gerald/Servify-sub000/internal/session"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in and store credentials locally",
	RunE: func(cmd *cobra.Command, args []string) error {
		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")
		if email == "" {
			return fmt.Errorf("--email is required")
		}
		if password == "" {
			fmt.Print("Password: ")
			raw, err := term.ReadPassword(int(syscall.Stdin))
			fmt.Println()
			if err != nil {
				return fmt.Errorf("read password: %w", err)
			}
			password = string(raw)
		}

		a, err := newApp()
		if err != nil {
			return err
		}

		sess, err := a.api.Login(cmd.Context(), email, password)
		if err != nil {
			return fmt.Errorf("login failed: %w", err)
		}

		fmt.Printf("Signed in as %s (%s)\n", sess.Email, sess.Role)
		return nil
	},
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a new account",
	RunE: func(cmd *cobra.Command, args []string) error {
		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")
		name, _ := cmd.Flags().GetString("name")
		phone, _ := cmd.Flags().GetString("phone")
		asProvider, _ := cmd.Flags().GetBool("provider")

		if email == "" || password == "" || name == "" {
			return fmt.Errorf("--email, --password and --name are required")
		}

		a, err := newApp()
		if err != nil {
			return err
		}

		req := api.RegisterRequest{
			FullName:    name,
			Email:       email,
			Password:    password,
			PhoneNumber: phone,
		}
		if asProvider {
			err = a.api.RegisterProvider(cmd.Context(), req)
		} else {
			err = a.api.Register(cmd.Context(), req)
		}
		if err != nil {
			return fmt.Errorf("registration failed: %w", err)
		}

		fmt.Println("Account created. Run `servify login` to sign in.")
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and clear stored credentials",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		if err := a.api.Logout(cmd.Context()); err != nil {
			return err
		}
		fmt.Println("Signed out.")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current session",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}

		sess := a.session.GetUser()
		if sess == nil {
			fmt.Println("Not logged in.")
			return nil
		}

		fmt.Printf("Email: %s\n", sess.Email)
		fmt.Printf("Role:  %s\n", sess.Role)
		if sess.FullName != "" {
			fmt.Printf("Name:  %s\n", sess.FullName)
		}
		fmt.Printf("Home:  %s\n", session.HomeRoute(sess.Role))

		if sess.Token != "" {
			if claims, err := session.ParseTokenClaims(sess.Token); err == nil && !claims.ExpiresAt.IsZero() {
				fmt.Printf("Token expires: %s\n", claims.ExpiresAt.Format("2006-01-02 15:04:05 MST"))
			}
		} else {
			fmt.Println("No access token stored; the next request will refresh or fail.")
		}
		return nil
	},
}

var promoteCmd = &cobra.Command{
	Use:   "promote",
	Short: "Upgrade the account from client to provider",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		if _, err := a.requireSession(); err != nil {
			return err
		}
		if err := a.api.Promote(cmd.Context()); err != nil {
			return err
		}
		fmt.Println("Account promoted to provider. The current session keeps working.")
		return nil
	},
}

func init() {
	loginCmd.Flags().String("email", "", "account email")
	loginCmd.Flags().String("password", "", "account password (prompted when omitted)")

	registerCmd.Flags().String("email", "", "account email")
	registerCmd.Flags().String("password", "", "account password")
	registerCmd.Flags().String("name", "", "full name")
	registerCmd.Flags().String("phone", "", "phone number")
	registerCmd.Flags().Bool("provider", false, "register as a service provider")

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(promoteCmd)
}
