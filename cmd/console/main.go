package main

import (
	"context"
	"log/slog"
	"os"
)

// @title Asset Movements Console API
// @version 1.0
// @description Back-office wizard for registering asset transactions against the operations backend.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	if err := rootCmd().ExecuteContext(context.Background()); err != nil {
		slog.Error("Command failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
