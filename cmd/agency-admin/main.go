package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/nardonidigital/agency-api/config"
	"github.com/nardonidigital/agency-api/internal/bootstrap"
)

type commandFn func(ctx *commandContext, args []string) error

type command struct {
	name        string
	description string
	run         commandFn
}

type commandContext struct {
	Ctx    context.Context
	Logger *slog.Logger
	Config config.AppConfig
}

const defaultMigrationTimeout = 5 * time.Minute

func main() {
	logger := bootstrap.InitLogger()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(2) //nolint:forbidigo // CLI must exit with failure status when no command is provided
	}

	cmdName := os.Args[1]
	cmd, ok := commands()[cmdName]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", cmdName)
		printUsage()
		os.Exit(2) //nolint:forbidigo // CLI must exit with failure status when command is unknown
	}

	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		logger.ErrorContext(context.Background(), "load config", "error", err)
		os.Exit(1) //nolint:forbidigo // CLI must signal configuration load failure to shell scripts
	}

	cmdCtx := &commandContext{
		Ctx:    context.Background(),
		Logger: logger,
		Config: cfg,
	}
	if runErr := cmd.run(cmdCtx, os.Args[2:]); runErr != nil {
		logger.ErrorContext(cmdCtx.Ctx, "command failed", "command", cmdName, "error", runErr)
		os.Exit(1) //nolint:forbidigo // CLI must propagate command execution failure to callers
	}
}

func commands() map[string]command {
	return map[string]command{
		"migrate": {
			name:        "migrate",
			description: "Run database migrations",
			run:         runMigrate,
		},
		"db-seed": {
			name:        "db-seed",
			description: "Run database migrations and seed development data",
			run:         runDBSeed,
		},
		"whoami": {
			name:        "whoami",
			description: "Sign in against the configured identity provider and print the resolved identity",
			run:         runWhoami,
		},
	}
}

func printUsage() {
	fmt.Fprintf(os.Stdout, "Usage: agency-admin <command> [flags]\n\n")
	fmt.Fprintf(os.Stdout, "Available commands:\n")
	for _, c := range commands() {
		fmt.Fprintf(os.Stdout, "  %-12s %s\n", c.name, c.description)
	}
}

func runWhoami(cmdCtx *commandContext, args []string) error {
	fs := flag.NewFlagSet("whoami", flag.ContinueOnError)
	email := fs.String("email", "", "login email")
	password := fs.String("password", "", "login password")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *email == "" || *password == "" {
		return fmt.Errorf("whoami requires -email and -password")
	}

	ctx := cmdCtx.Ctx
	provider, err := bootstrap.BuildIdentityProvider(cmdCtx.Config.Auth, cmdCtx.Config.IsDev, cmdCtx.Logger)
	if err != nil {
		return err
	}

	auth := newAuthService(provider, cmdCtx.Logger)
	result := auth.Login(ctx, *email, *password)
	if !result.Success {
		return fmt.Errorf("login failed: %s", result.Error)
	}

	state := auth.State()
	fmt.Fprintf(os.Stdout, "id:          %s\n", state.User.ID)
	fmt.Fprintf(os.Stdout, "email:       %s\n", state.User.Email)
	fmt.Fprintf(os.Stdout, "name:        %s\n", state.User.Name)
	fmt.Fprintf(os.Stdout, "role:        %s\n", state.User.Role)
	fmt.Fprintf(os.Stdout, "super_admin: %t\n", auth.SuperAdmin(ctx))
	fmt.Fprintf(os.Stdout, "refreshed:   %s\n", state.User.RefreshedAt.Format(time.RFC3339))

	auth.Logout(ctx)
	return nil
}
