package main

import (
	"user_admin/internal/config"     // Custom import path (Config)
	"user_admin/internal/credential" // Password digest for the root account
	"user_admin/internal/db"         // Custom import path (Database)

	"github.com/sirupsen/logrus" // Logrus for structured logging
)

// Main entry point for migration
func main() {
	cfg := config.LoadConfig() // Load configuration

	digester, err := credential.NewDigester(cfg.PasswordDigest) // Same digest the server uses
	if err != nil {
		logrus.Fatalf("invalid password digest: %v", err)
	}
	db.Migrate(cfg.DSN(), cfg.ProtectedID, digester.Digest(cfg.RootPassword))
}
