// Command issue_token prints a bearer token for a user id, signed with the
// configured JWT secret. It is meant for local development and scripts.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/SscSPs/finance_tracker/internal/platform/config"
	"github.com/SscSPs/finance_tracker/internal/utils"
	"github.com/google/uuid"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	userID := flag.String("user", "", "user id to put in the token subject (random when empty)")
	expiry := flag.Duration("expiry", 0, "token lifetime, defaults to JWT_EXPIRY_DURATION")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	subject := *userID
	if subject == "" {
		subject = uuid.NewString()
	} else if err := uuid.Validate(subject); err != nil {
		logger.Error("User id must be a UUID", slog.String("user", subject))
		os.Exit(2)
	}

	lifetime := cfg.JWTExpiryDuration
	if *expiry > 0 {
		lifetime = *expiry
	}

	token, err := utils.GenerateJWT(subject, cfg.JWTSecret, lifetime, cfg.JWTIssuer)
	if err != nil {
		logger.Error("Failed to sign token", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("Token issued",
		slog.String("user_id", subject),
		slog.String("expires_at", time.Now().Add(lifetime).UTC().Format(time.RFC3339)))
	fmt.Println(token)
}
