// Command devtoken mints a session token for local testing and can register
// the matching user row so names show up in listings.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"go-staffhub/internal/app"
	"go-staffhub/internal/authz"
	"go-staffhub/internal/config"
	"go-staffhub/internal/identity"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	userID := flag.String("user", "", "user id (uuid); generated when empty")
	role := flag.String("role", authz.RoleEmployee, "EMPLOYEE, MANAGER or ADMIN")
	ttl := flag.Duration("ttl", 12*time.Hour, "token lifetime")
	name := flag.String("name", "", "also upsert a users row with this display name")
	email := flag.String("email", "", "email stored with -name")
	flag.Parse()

	cfg := config.Load()
	if cfg.JWTSecret == "" {
		fmt.Fprintln(os.Stderr, "JWT_SECRET is required")
		os.Exit(1)
	}

	id := *userID
	if id == "" {
		id = uuid.NewString()
	}
	parsed, err := uuid.Parse(id)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid -user: %v\n", err)
		os.Exit(1)
	}

	actor := identity.Actor{ID: parsed.String(), Role: authz.EffectiveRole(*role)}

	if *name != "" {
		logger := zap.NewNop()
		db, err := app.OpenDatabase(cfg, logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "open database: %v\n", err)
			os.Exit(1)
		}
		user := &identity.User{ID: parsed, Name: *name, Email: *email, Role: actor.Role}
		if err := identity.UpsertUser(context.Background(), db, user); err != nil {
			fmt.Fprintf(os.Stderr, "upsert user: %v\n", err)
			os.Exit(1)
		}
	}

	token, err := identity.IssueToken(cfg.JWTSecret, actor, *ttl)
	if err != nil {
		fmt.Fprintf(os.Stderr, "issue token: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("user_id=%s role=%s\n%s\n", actor.ID, actor.Role, token)
}
