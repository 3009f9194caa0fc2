// Command seed-admin creates an admin account. Self-registration never grants
// the admin role, so the first administrator is created here.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	flag "github.com/spf13/pflag"

	"github.com/staylink/booking-api/internal/core/domain"
	"github.com/staylink/booking-api/internal/core/ports"
	"github.com/staylink/booking-api/internal/core/service"
	"github.com/staylink/booking-api/internal/infrastructure/db/mongo"
	"github.com/staylink/booking-api/pkg/logger"
)

func main() {
	var (
		name     string
		email    string
		password string
		mongoURI string
		database string
	)
	flag.StringVar(&name, "name", "Administrator", "display name of the admin")
	flag.StringVar(&email, "email", "", "admin email (required)")
	flag.StringVar(&password, "password", os.Getenv("ADMIN_PASSWORD"), "admin password, defaults to $ADMIN_PASSWORD")
	flag.StringVar(&mongoURI, "mongo-uri", envOr("MONGO_URI", "mongodb://localhost:27017"), "MongoDB connection string")
	flag.StringVar(&database, "mongo-db", envOr("MONGO_DB", "booking"), "MongoDB database name")
	flag.Parse()

	log := logger.Init(logger.Options{Level: "info", Pretty: true, Service: "seed-admin"})

	if email == "" || password == "" {
		fmt.Fprintln(os.Stderr, "seed-admin: --email and --password are required")
		flag.Usage()
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, db, err := mongo.Connect(ctx, mongo.Config{URI: mongoURI, Database: database})
	if err != nil {
		log.Fatal().Err(err).Msg("connect")
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	users := mongo.NewUserRepository(db)
	if err := mongo.EnsureIndexes(ctx, users); err != nil {
		log.Fatal().Err(err).Msg("indexes")
	}

	admin, err := service.NewUserService(users, log).Create(ctx, ports.CreateUserInput{
		Name:     name,
		Email:    email,
		Password: password,
		Role:     string(domain.RoleAdmin),
	})
	switch {
	case errors.Is(err, domain.ErrUserExists):
		log.Warn().Str("email", email).Msg("account already exists, nothing to do")
		return
	case err != nil:
		log.Fatal().Err(err).Msg("create admin")
	}
	log.Info().Str("user_id", admin.ID).Str("email", admin.Email).Msg("admin created")
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
