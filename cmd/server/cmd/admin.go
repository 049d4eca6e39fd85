package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"artha/internal/app/server"
	"artha/internal/domain/user"
)

var (
	adminEmail string
	adminName  string
)

// readPassword prompts without echo; swapped in tests.
var readPassword = func(prompt string) (string, error) {
	fmt.Print(prompt)
	password, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return string(password), nil
}

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Administrator bootstrap",
	Long:  `Roles cannot be changed over HTTP. These commands are the only way to grant admin access.`,
}

var promoteCmd = &cobra.Command{
	Use:   "promote",
	Short: "Grant the admin role to an existing account",
	Long: `Promotes the account with --email (or ADMIN_EMAIL) to admin.
The user must log in again for the new role to reach their token.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		email, err := resolveEmail(adminEmail, cfg.Auth.AdminEmail)
		if err != nil {
			return err
		}

		return withUsers(cmd.Context(), func(users *user.Service) error {
			u, err := users.PromoteToAdmin(cmd.Context(), email)
			if err != nil {
				if errors.Is(err, user.ErrNotFound) {
					return fmt.Errorf("no account registered for %s", email)
				}
				return err
			}
			fmt.Printf("%s is now an admin\n", u.Email)
			return nil
		})
	},
}

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Register a new account with the admin role",
	RunE: func(cmd *cobra.Command, _ []string) error {
		email, err := resolveEmail(adminEmail, cfg.Auth.AdminEmail)
		if err != nil {
			return err
		}
		if strings.TrimSpace(adminName) == "" {
			return errors.New("--name is required")
		}

		password, err := confirmPassword(readPassword)
		if err != nil {
			return err
		}

		return withUsers(cmd.Context(), func(users *user.Service) error {
			if _, err := users.Register(cmd.Context(), adminName, email, password); err != nil {
				if errors.Is(err, user.ErrDuplicate) {
					return fmt.Errorf("%s is already registered, use `admin promote`", email)
				}
				return err
			}

			u, err := users.PromoteToAdmin(cmd.Context(), email)
			if err != nil {
				return err
			}
			fmt.Printf("Admin %s created\n", u.Email)
			return nil
		})
	},
}

func resolveEmail(flag, fallback string) (string, error) {
	email := user.NormalizeEmail(flag)
	if email == "" {
		email = user.NormalizeEmail(fallback)
	}
	if email == "" {
		return "", errors.New("email is required: pass --email or set ADMIN_EMAIL")
	}
	return email, nil
}

func confirmPassword(read func(prompt string) (string, error)) (string, error) {
	password, err := read("Password: ")
	if err != nil {
		return "", err
	}

	confirm, err := read("Repeat password: ")
	if err != nil {
		return "", err
	}

	if password != confirm {
		return "", errors.New("passwords do not match")
	}
	return password, nil
}

func withUsers(ctx context.Context, fn func(users *user.Service) error) (err error) {
	app, err := server.Open(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := app.Close(context.Background()); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	return fn(app.Users())
}

func init() {
	adminCmd.PersistentFlags().StringVar(&adminEmail, "email", "", "account email (defaults to ADMIN_EMAIL)")
	createCmd.Flags().StringVar(&adminName, "name", "", "display name of the new admin")
}
