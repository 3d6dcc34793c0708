// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command admintoken signs a bearer token for the admin API.
//
// It reads JWT_PRIVATE_KEY_PATH and JWT_PUBLIC_KEY_PATH through the same
// configuration loader as the server and prints the token to stdout.
//
// Usage:
//
//	admintoken -user ops -ttl 12h
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/taibuivan/catalog/internal/platform/constants"
	"github.com/taibuivan/catalog/internal/platform/sec"
	"github.com/taibuivan/catalog/pkg/uuid"
)

// keyConfig is the subset of the server configuration needed for signing.
type keyConfig struct {
	JWTPubKeyPath  string `env:"JWT_PUBLIC_KEY_PATH,required"`
	JWTPrivKeyPath string `env:"JWT_PRIVATE_KEY_PATH,required"`
}

func main() {
	log := slog.New(slog.NewTextHandler(os.Stderr, nil))

	username := flag.String("user", "admin", "username embedded in the token")
	role := flag.String("role", string(sec.RoleAdmin), "role claim (admin or member)")
	ttl := flag.Duration("ttl", constants.AdminTokenTTL, "token lifetime")
	flag.Parse()

	if err := run(*username, sec.UserRole(*role), *ttl); err != nil {
		log.Error("admintoken_failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(username string, role sec.UserRole, ttl time.Duration) error {
	if role != sec.RoleAdmin && role != sec.RoleMember {
		return fmt.Errorf("unknown role %q", role)
	}
	if ttl <= 0 {
		return fmt.Errorf("ttl must be positive, got %s", ttl)
	}

	_ = godotenv.Load()

	var cfg keyConfig
	if err := env.Parse(&cfg); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	tokens, err := sec.NewTokenService(cfg.JWTPrivKeyPath, cfg.JWTPubKeyPath, constants.AuthIssuer)
	if err != nil {
		return err
	}

	token, err := tokens.GenerateAccessToken(uuid.New(), username, string(role), ttl)
	if err != nil {
		return err
	}

	fmt.Println(token)
	return nil
}
