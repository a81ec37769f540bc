// authctl is a small operator tool that writes through the same service
// layer as the server. Its only command, create-user, seeds an account
// without going through the HTTP API.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/dmitrijs2005/authkeeper/internal/common"
	"github.com/dmitrijs2005/authkeeper/internal/logging"
	"github.com/dmitrijs2005/authkeeper/internal/server/auth"
	"github.com/dmitrijs2005/authkeeper/internal/server/cache"
	"github.com/dmitrijs2005/authkeeper/internal/server/config"
	"github.com/dmitrijs2005/authkeeper/internal/server/services"
	"github.com/dmitrijs2005/authkeeper/internal/server/shared/db"
	"github.com/joho/godotenv"
	"golang.org/x/term"
)

// readPassword is a test seam for term.ReadPassword.
var readPassword = term.ReadPassword

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "authctl: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) < 1 || args[0] != "create-user" {
		return errors.New("usage: authctl create-user -e <email> -n <name>")
	}

	fs := flag.NewFlagSet("create-user", flag.ExitOnError)
	email := fs.String("e", "", "account email")
	name := fs.String("n", "", "account name")
	if err := fs.Parse(args[1:]); err != nil {
		return err
	}

	_ = godotenv.Load()
	cfg := config.LoadConfig()

	password, err := promptPassword()
	if err != nil {
		return err
	}

	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})))

	ctx := context.Background()

	manager := db.NewManager(cfg.DatabaseDSN, logger)
	if err := manager.Open(ctx); err != nil {
		return fmt.Errorf("store open error: %w", err)
	}
	defer manager.Close()

	service := services.NewAuthService(
		manager.Users(),
		auth.NewBcryptHasher(cfg.BcryptCost),
		auth.NewJWTCodec([]byte(cfg.SecretKey), cfg.TokenValidity),
		cache.NewLocal(cfg.LocalCacheTTL, cfg.LocalCacheMaxSize),
		nil,
		logger,
	)

	userID, err := service.CreateUser(ctx, *email, password, *name)
	if err != nil {
		var ve *common.ValidationError
		switch {
		case errors.As(err, &ve):
			return fmt.Errorf("invalid input: %v", ve)
		case errors.Is(err, common.ErrAlreadyExists):
			return fmt.Errorf("%s already exists", *email)
		default:
			return err
		}
	}

	fmt.Printf("created user %s\n", userID)
	return nil
}

// promptPassword reads the password twice from the terminal without echo
// and requires both entries to match.
func promptPassword() (string, error) {
	fmt.Print("Enter password: ")
	first, err := readPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", err
	}

	fmt.Print("Repeat password: ")
	second, err := readPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", err
	}

	if string(first) != string(second) {
		return "", errors.New("passwords do not match")
	}
	if len(first) == 0 {
		return "", errors.New("password must not be empty")
	}

	return string(first), nil
}
