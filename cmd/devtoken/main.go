// Command devtoken signs an access token for local development and prints it.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/bizcore/backend/internal/infrastructure/auth"
	"github.com/bizcore/backend/internal/infrastructure/config"
	"github.com/bizcore/backend/internal/infrastructure/logger"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	var (
		tenant   string
		user     string
		username string
		ttl      time.Duration
	)
	flag.StringVar(&tenant, "tenant", "", "Tenant UUID (a new one is generated when empty)")
	flag.StringVar(&user, "user", "", "User UUID (a new one is generated when empty)")
	flag.StringVar(&username, "username", "dev", "Username claim")
	flag.DurationVar(&ttl, "ttl", 0, "Token lifetime (default: jwt.access_token_expiration)")
	flag.Parse()

	// stdout carries only the token
	log, err := logger.New(&logger.Config{
		Level:      "info",
		Format:     "console",
		Output:     "stderr",
		TimeFormat: "2006-01-02 15:04:05",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	tenantID := parseOrNew(log, "tenant", tenant)
	userID := parseOrNew(log, "user", user)

	token, err := auth.NewJWTService(cfg.JWT).GenerateAccessToken(auth.GenerateTokenInput{
		TenantID: tenantID,
		UserID:   userID,
		Username: username,
		TTL:      ttl,
	})
	if err != nil {
		log.Fatal("Failed to sign token", zap.Error(err))
	}

	log.Info("Token issued",
		zap.String("tenant_id", tenantID.String()),
		zap.String("user_id", userID.String()),
		zap.Time("expires_at", token.ExpiresAt),
	)
	fmt.Println(token.Token)
}

func parseOrNew(log *zap.Logger, name, raw string) uuid.UUID {
	if raw == "" {
		return uuid.New()
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		log.Fatal("Invalid UUID", zap.String("flag", name), zap.Error(err))
	}
	return id
}
