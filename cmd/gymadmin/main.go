// Command gymadmin is the operator's console for gym logins.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"softgym/internal/adapters/console"
	"softgym/internal/adapters/logging"
	"softgym/internal/adapters/storage"
	"softgym/internal/adapters/storage/txn"
	"softgym/internal/config"
)

func main() {
	envFile := flag.String("env", ".env", "optional .env file")
	dbPath := flag.String("db", "", "database path (defaults to SOFTGYM_DB_PATH)")
	flag.Parse()

	if err := run(*envFile, *dbPath); err != nil {
		fmt.Fprintln(os.Stderr, "gymadmin:", err)
		os.Exit(1)
	}
}

func run(envFile, dbPath string) error {
	cfg, err := config.Load(envFile)
	if err != nil {
		return err
	}
	// Only warnings reach the terminal so the menu stays readable.
	flush, err := logging.Install("warn", true)
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer flush()

	if dbPath == "" {
		dbPath = cfg.DBPath
	}
	db, err := storage.Open(dbPath)
	if err != nil {
		return err
	}
	defer db.Close()
	if err := storage.MigrateDB(db); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}

	deps := console.Deps{Stores: txn.Bind(db), Tx: txn.New(db)}
	return console.New(os.Stdin, os.Stdout, deps).Run(context.Background())
}
