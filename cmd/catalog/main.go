// Command catalog manages the ingredient catalog and mints admin tokens.
//
//	catalog seed -file catalog.yaml
//	catalog token -role ADMIN
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"tacocloud/internal/config"
	"tacocloud/internal/db"
	"tacocloud/internal/ingredient"
	"tacocloud/internal/logger"
	"tacocloud/internal/session"
)

func main() {
	// Load environment variables
	_ = godotenv.Load()

	log := logger.New(logger.Config{
		Level:  envOr("LOG_LEVEL", "info"),
		Format: "text",
	}).WithComponent("catalog")

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "seed":
		err = seed(os.Args[2:], log)
	case "token":
		err = token(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}

	if err != nil {
		log.Error(os.Args[1]+" failed", "error", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: catalog seed -file catalog.yaml | catalog token -role ADMIN")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// seed validates a YAML catalog as a whole and inserts the new entries.
func seed(args []string, log *logger.Logger) error {
	fs := flag.NewFlagSet("seed", flag.ExitOnError)
	file := fs.String("file", "", "YAML catalog to load")
	dsn := fs.String("database-url", os.Getenv("DATABASE_URL"), "postgres DSN")
	_ = fs.Parse(args)

	if *file == "" {
		return fmt.Errorf("-file is required")
	}

	items, err := ingredient.LoadYAML(*file)
	if err != nil {
		return err
	}
	catalog, err := ingredient.NewCatalog(items)
	if err != nil {
		return err
	}

	ctx := context.Background()
	pgDB, err := db.Connect(ctx, *dsn, log)
	if err != nil {
		return err
	}
	defer pgDB.Close()

	added, err := db.SeedIngredients(ctx, pgDB, catalog.All())
	if err != nil {
		return err
	}

	log.Info("catalog seeded", "file", *file, "entries", catalog.Len(), "added", added)
	return nil
}

func token(args []string) error {
	fs := flag.NewFlagSet("token", flag.ExitOnError)
	role := fs.String("role", string(session.RoleAdmin), "CUSTOMER or ADMIN")
	_ = fs.Parse(args)

	r := session.Role(strings.ToUpper(*role))
	if r != session.RoleAdmin && r != session.RoleCustomer {
		return fmt.Errorf("unknown role %q", *role)
	}

	cfg, err := config.FromEnv(os.Getenv)
	if err != nil {
		return err
	}

	issuer, err := session.NewIssuer(cfg.SessionSecret, cfg.SessionTTL)
	if err != nil {
		return err
	}

	claims, signed, err := issuer.Start(r)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "session %s expires %s\n", claims.SessionID, claims.ExpiresAt.Format("2006-01-02 15:04"))
	fmt.Println(signed)
	return nil
}
