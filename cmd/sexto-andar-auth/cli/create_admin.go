package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/SextoAndar/sexto-andar-auth/internal/core/ports"
	"github.com/SextoAndar/sexto-andar-auth/internal/core/service"
	"github.com/SextoAndar/sexto-andar-auth/internal/infrastructure/config"
	mongodb "github.com/SextoAndar/sexto-andar-auth/internal/infrastructure/db/mongo"
	"github.com/SextoAndar/sexto-andar-auth/pkg/logger"
)

// noopPublisher satisfies ports.EventPublisher for the CLI path, where no
// lifecycle events can occur.
type noopPublisher struct{}

func (noopPublisher) Publish(ports.AccountEvent) {}

func newCreateAdminCmd() *cobra.Command {
	var (
		username string
		fullName string
		email    string
		phone    string
		password string
	)

	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create an administrator account",
		Long: `Create an administrator account directly against the database.

This is the only way to create the first administrator: the HTTP API
requires an existing administrator session for admin creation.`,
		Example: `  sexto-andar-auth create-admin --username root --full-name "Root Admin" --email root@example.com --phone 11987654321
  sexto-andar-auth create-admin --username root --full-name "Root Admin" --email root@example.com --phone 11987654321 --password secret123`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCreateAdmin(username, fullName, email, phone, password)
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "Admin username (required)")
	cmd.Flags().StringVar(&fullName, "full-name", "", "Admin full name (required)")
	cmd.Flags().StringVar(&email, "email", "", "Admin email address (required)")
	cmd.Flags().StringVar(&phone, "phone", "", "Admin phone number (required)")
	cmd.Flags().StringVar(&password, "password", "", "Admin password (prompted if omitted)")
	cmd.MarkFlagRequired("username")
	cmd.MarkFlagRequired("full-name")
	cmd.MarkFlagRequired("email")
	cmd.MarkFlagRequired("phone")

	return cmd
}

func runCreateAdmin(username, fullName, email, phone, password string) error {
	if password == "" {
		fmt.Print("Password: ")
		pwBytes, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
		fmt.Println()
		password = string(pwBytes)

		fmt.Print("Confirm password: ")
		confirmBytes, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err != nil {
			return fmt.Errorf("failed to read confirmation: %w", err)
		}
		fmt.Println()

		if password != string(confirmBytes) {
			return fmt.Errorf("passwords do not match")
		}
	}

	if len(password) < 8 {
		return fmt.Errorf("password must be at least 8 characters")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: true})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		return err
	}
	defer client.Disconnect(context.Background())

	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		return err
	}

	admins := service.NewAdminService(
		mongodb.NewAccountRepository(db),
		mongodb.NewAuditRepository(db),
		service.NewPasswordHasher(cfg.Password.BcryptCost),
		noopPublisher{},
		log,
	)

	account, err := admins.BootstrapCreate(ctx, ports.RegisterInput{
		Username:    username,
		FullName:    fullName,
		Email:       email,
		PhoneNumber: phone,
		Password:    password,
	})
	if err != nil {
		return fmt.Errorf("create admin: %w", err)
	}

	fmt.Printf("Created admin %q (id %s)\n", account.Username, account.ID)
	return nil
}
