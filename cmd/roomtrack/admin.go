package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"syscall"
	"text/tabwriter"

	"golang.org/x/term"

	"github.com/roomtrack/roomtrack/internal/adapter/postgres"
	"github.com/roomtrack/roomtrack/internal/config"
	"github.com/roomtrack/roomtrack/internal/domain/user"
	"github.com/roomtrack/roomtrack/internal/service"
)

// runAdmin dispatches admin subcommands (create-user, list-users).
func runAdmin(cfg *config.Config, args []string) error {
	if len(args) == 0 || args[0] == "help" || args[0] == "--help" {
		printAdminHelp()
		return nil
	}

	switch args[0] {
	case "create-user":
		return runAdminCreateUser(cfg, args[1:])
	case "list-users":
		return runAdminListUsers(cfg, args[1:])
	default:
		printAdminHelp()
		return fmt.Errorf("unknown admin command: %s", args[0])
	}
}

func printAdminHelp() {
	fmt.Fprintf(os.Stderr, `Usage: roomtrack admin <command> [options]

Commands:
  create-user   Create a new user
  list-users    List all users
  help          Show this help message

Examples:
  roomtrack admin create-user --username admin --email admin@localhost --role admin
  roomtrack admin create-user --username jane --email jane@test.com --role landlord
  roomtrack admin list-users
`)
}

func loadAdminDeps(cfg *config.Config) (*service.UserService, func(), error) {
	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.Postgres)
	if err != nil {
		return nil, nil, fmt.Errorf("connect to database: %w", err)
	}

	store := postgres.NewStore(pool)
	userSvc := service.NewUserService(store, cfg.Auth.BcryptCost)

	cleanup := func() {
		pool.Close()
	}
	return userSvc, cleanup, nil
}

func runAdminCreateUser(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("create-user", flag.ContinueOnError)
	username := fs.String("username", "", "username (required)")
	email := fs.String("email", "", "email address (required)")
	role := fs.String("role", string(user.RoleTenant), "role: admin, landlord, or tenant")
	fullName := fs.String("full-name", "", "display name")
	password := fs.String("password", "", "password (prompted if not provided)") //nolint:gosec // CLI flag
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *username == "" {
		return fmt.Errorf("--username is required")
	}
	if *email == "" {
		return fmt.Errorf("--email is required")
	}

	pass := *password
	if pass == "" {
		var err error
		pass, err = promptPassword("Password: ")
		if err != nil {
			return fmt.Errorf("read password: %w", err)
		}
		confirm, err := promptPassword("Confirm password: ")
		if err != nil {
			return fmt.Errorf("read password: %w", err)
		}
		if pass != confirm {
			return fmt.Errorf("passwords do not match")
		}
	}

	userSvc, cleanup, err := loadAdminDeps(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx := context.Background()
	u, err := userSvc.Register(ctx, user.CreateRequest{
		Username: *username,
		Email:    *email,
		Password: pass,
		Role:     user.Role(*role),
		FullName: *fullName,
	})
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}

	fmt.Fprintf(os.Stderr, "User created: %s (id=%s, role=%s)\n", u.Username, u.ID, u.Role)
	return nil
}

func runAdminListUsers(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("list-users", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	userSvc, cleanup, err := loadAdminDeps(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	admin := &user.User{Role: user.RoleAdmin}
	users, err := userSvc.List(context.Background(), admin)
	if err != nil {
		return fmt.Errorf("list users: %w", err)
	}

	if len(users) == 0 {
		fmt.Println("No users found.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tUSERNAME\tEMAIL\tROLE\tCREATED")
	for i := range users {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			users[i].ID, users[i].Username, users[i].Email, users[i].Role,
			users[i].CreatedAt.Format("2006-01-02"))
	}
	return w.Flush()
}

// promptPassword reads a password from the terminal without echoing.
func promptPassword(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	b, err := term.ReadPassword(int(syscall.Stdin)) //nolint:unconvert // int conversion needed on some platforms
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
