// Command createadmin creates a staff account or promotes an existing one.
//
//	go run ./cmd/tools/createadmin -email ops@example.com -password ... -role superadmin
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/tastycheddar/salt-scoville-ecommerce-sub000/internal/access"
	"github.com/tastycheddar/salt-scoville-ecommerce-sub000/internal/config"
	"github.com/tastycheddar/salt-scoville-ecommerce-sub000/internal/database"
	"github.com/tastycheddar/salt-scoville-ecommerce-sub000/internal/modules/auth"
	"github.com/tastycheddar/salt-scoville-ecommerce-sub000/internal/modules/users"
)

func main() {
	email := flag.String("email", "", "account e-mail")
	password := flag.String("password", "", "password for a new account")
	roleFlag := flag.String("role", "superadmin", "moderator|admin|superadmin")
	flag.Parse()

	role, ok := access.ParseRequired(*roleFlag)
	if !ok || *email == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	db, err := database.Open(cfg.DB, slog.New(slog.NewTextHandler(os.Stderr, nil)))
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	repo := users.NewRepo(db)
	u, err := repo.GetByEmail(ctx, *email)
	switch {
	case errors.Is(err, users.ErrNotFound):
		if *password == "" {
			log.Fatal("-password is required for a new account")
		}
		svc := auth.NewService(repo, auth.NewSessionStore(db, cfg.Session.TTL))
		if u, err = svc.Signup(ctx, auth.SignupInput{Email: *email, Password: *password}); err != nil {
			log.Fatalf("Failed to create user: %v", err)
		}
	case err != nil:
		log.Fatalf("Failed to load user: %v", err)
	}

	if err := db.WithContext(ctx).Model(&users.User{}).
		Where("id = ?", u.ID).
		Updates(map[string]any{"role": role, "updated_at": time.Now()}).Error; err != nil {
		log.Fatalf("Failed to set role: %v", err)
	}
	fmt.Printf("✓ %s is now %s\n", u.Email, role)
}
