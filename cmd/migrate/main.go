// Command migrate 對資料庫套用、回滾 schema migration 或查詢目前版本
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"storefront/internal/database"
)

var (
	migrateUp   = database.RunMigrations
	migrateDown = database.RollbackAll
	version     = database.Version
	exitFunc    = os.Exit
)

var errUsage = errors.New("usage: migrate [-database-url URL] <up|down|version>")

func databaseURL(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	v := viper.New()
	v.AutomaticEnv()
	return v.GetString("DATABASE_URL")
}

func run(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("migrate", flag.ContinueOnError)
	fs.SetOutput(out)
	urlFlag := fs.String("database-url", "", "Postgres 連線字串，預設讀取 DATABASE_URL")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errUsage
	}

	dbURL := databaseURL(*urlFlag)
	if dbURL == "" {
		return errors.New("DATABASE_URL is required")
	}

	switch strings.ToLower(strings.TrimSpace(fs.Arg(0))) {
	case "up":
		if err := migrateUp(dbURL); err != nil {
			return fmt.Errorf("migrate up: %w", err)
		}
		fmt.Fprintln(out, "migrations applied")
	case "down":
		if err := migrateDown(dbURL); err != nil {
			return fmt.Errorf("migrate down: %w", err)
		}
		fmt.Fprintln(out, "migrations rolled back")
	case "version":
		v, dirty, err := version(dbURL)
		if err != nil {
			return fmt.Errorf("migrate version: %w", err)
		}
		fmt.Fprintf(out, "version=%d dirty=%t\n", v, dirty)
	default:
		return errUsage
	}
	return nil
}

func main() {
	_ = godotenv.Load()
	if err := run(os.Args[1:], os.Stdout); err != nil {
		log.Print(err)
		exitFunc(1)
	}
}
