// ABOUTME: Entry point for the torque-tracker CLI
// ABOUTME: Local administration of accounts, vehicles, and mileage stats

package main

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"github.com/fatih/color"

	"github.com/torquelabs/torque-tracker/internal/config"
	"github.com/torquelabs/torque-tracker/internal/store"
	"github.com/torquelabs/torque-tracker/internal/tracker"
)

// Version is set by goreleaser at build time.
var version = "dev"

const banner = `
  _                                 _                  _
 | |_ ___  _ __ __ _ _   _  ___    | |_ _ __ __ _  ___| | _____ _ __
 | __/ _ \| '__/ _' | | | |/ _ \   | __| '__/ _' |/ __| |/ / _ \ '__|
 | || (_) | | | (_| | |_| |  __/   | |_| | | (_| | (__|   <  __/ |
  \__\___/|_|  \__, |\__,_|\___|    \__|_|  \__,_|\___|_|\_\___|_|
                  |_|
`

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: torque-tracker <command>")
		fmt.Println()
		fmt.Println("Commands:")
		fmt.Println("  init                        Create a default config file")
		fmt.Println("  bootstrap --username NAME   Create the initial admin account")
		fmt.Println("  accounts                    List accounts")
		fmt.Println("  vehicles --account ID       List an account's vehicles")
		fmt.Println("  stats --vehicle ID          Show mileage stats for a vehicle")
		fmt.Println("  version                     Print version information")
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var err error
	switch os.Args[1] {
	case "init":
		err = runInit()
	case "bootstrap":
		err = runBootstrap(ctx)
	case "accounts":
		err = runAccounts(ctx)
	case "vehicles":
		err = runVehicles(ctx)
	case "stats":
		err = runStats(ctx)
	case "version":
		color.New(color.FgCyan).Print(banner)
		color.New(color.FgHiBlack).Printf("    version: %s\n", version)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", os.Args[1])
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig loads the config file, falling back to defaults when none exists.
func loadConfig() (*config.Config, error) {
	path := config.DefaultPath()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return config.Default(), nil
	}
	return config.Load(path)
}

func setupLogger(cfg config.LoggingConfig) *slog.Logger {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	return slog.New(handler)
}

// openStore loads config, installs the logger, and opens the database.
// The caller must Close the returned store on every exit path.
func openStore() (*store.SQLiteStore, *config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}

	slog.SetDefault(setupLogger(cfg.Logging))

	s, err := store.NewSQLiteStore(cfg.Database.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening store: %w", err)
	}
	return s, cfg, nil
}

func runInit() error {
	configPath := config.DefaultPath()

	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("config file already exists: %s", configPath)
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	dbPath := filepath.Join(config.DataDir(), "tracker.db")
	configContent := fmt.Sprintf(`# torque-tracker configuration
# Generated by torque-tracker init

database:
  path: "%s"

auth:
  # Accept plaintext credentials from pre-hashing databases and migrate
  # them on first login. Turn off once no legacy credentials remain.
  allow_legacy_credentials: true

logging:
  level: "info"
  format: "text"
`, dbPath)

	if err := os.WriteFile(configPath, []byte(configContent), 0600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	green := color.New(color.FgGreen)
	green.Print("  ✓ ")
	fmt.Printf("Created %s\n", configPath)
	return nil
}

func runBootstrap(ctx context.Context) error {
	// Supports both "--username value" and "--username=value" formats
	var username string
	args := os.Args[2:]
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--username" || arg == "-u":
			if i+1 >= len(args) {
				return fmt.Errorf("--username requires a value")
			}
			username = args[i+1]
			i++
		case strings.HasPrefix(arg, "--username="):
			username = strings.TrimPrefix(arg, "--username=")
		case strings.HasPrefix(arg, "-"):
			return fmt.Errorf("unknown flag: %s", arg)
		default:
			return fmt.Errorf("unexpected argument: %s", arg)
		}
	}

	if strings.TrimSpace(username) == "" {
		return fmt.Errorf("--username flag is required")
	}

	s, cfg, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	accounts := tracker.NewAccountsWithOptions(s, tracker.AccountsOptions{
		AllowLegacyCredentials: cfg.Auth.AllowLegacyCredentials,
	})

	existing, err := accounts.List(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return fmt.Errorf("accounts already exist; bootstrap is for first-run setup only")
	}

	fmt.Print("Password for the new admin account: ")
	reader := bufio.NewReader(os.Stdin)
	password, err := reader.ReadString('\n')
	if err != nil {
		return fmt.Errorf("reading password: %w", err)
	}
	password = strings.TrimRight(password, "\r\n")

	account, err := accounts.Create(ctx, username, password, true)
	if err != nil {
		return err
	}

	green := color.New(color.FgGreen)
	green.Print("  ✓ ")
	fmt.Printf("Created admin account %q (id %d)\n", account.Username, account.ID)
	return nil
}

func runAccounts(ctx context.Context) error {
	s, cfg, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	accounts := tracker.NewAccountsWithOptions(s, tracker.AccountsOptions{
		AllowLegacyCredentials: cfg.Auth.AllowLegacyCredentials,
	})

	all, err := accounts.List(ctx)
	if err != nil {
		return err
	}

	if len(all) == 0 {
		fmt.Println("No accounts. Run 'torque-tracker bootstrap --username NAME' to create one.")
		return nil
	}

	cyan := color.New(color.FgCyan)
	yellow := color.New(color.FgYellow)
	for _, account := range all {
		fmt.Printf("%6d  ", account.ID)
		cyan.Printf("%-20s", account.Username)
		if account.Admin {
			yellow.Print("  admin")
		}
		fmt.Println()
	}
	return nil
}

func runVehicles(ctx context.Context) error {
	ownerID, err := idFlag("--account")
	if err != nil {
		return err
	}

	s, _, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	vehicles := tracker.NewVehicles(s)
	list, err := vehicles.ListForOwner(ctx, ownerID)
	if err != nil {
		return err
	}

	if len(list) == 0 {
		fmt.Println("No vehicles for this account.")
		return nil
	}

	cyan := color.New(color.FgCyan)
	gray := color.New(color.FgHiBlack)
	for _, vehicle := range list {
		fmt.Printf("%6d  ", vehicle.ID)
		cyan.Printf("%-30s", vehicle.DisplayName())
		if vehicle.Plate != "" {
			gray.Printf("  %s", vehicle.Plate)
		}
		fmt.Println()
	}
	return nil
}

func runStats(ctx context.Context) error {
	vehicleID, err := idFlag("--vehicle")
	if err != nil {
		return err
	}

	s, _, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	vehicles := tracker.NewVehicles(s)
	mileage := tracker.NewMileage(s)

	vehicle, err := vehicles.Get(ctx, vehicleID)
	if err != nil {
		return err
	}
	if vehicle == nil {
		return fmt.Errorf("no vehicle with id %d", vehicleID)
	}

	count, err := mileage.Count(ctx, vehicleID)
	if err != nil {
		return err
	}
	total, err := mileage.TotalMiles(ctx, vehicleID)
	if err != nil {
		return err
	}

	cyan := color.New(color.FgCyan)
	green := color.New(color.FgGreen)

	cyan.Printf("%s\n", vehicle.DisplayName())
	green.Print("  ▶ ")
	fmt.Printf("Entries:      %d\n", count)

	if latest, ok, err := mileage.LatestOdometer(ctx, vehicleID); err != nil {
		return err
	} else if ok {
		green.Print("  ▶ ")
		fmt.Printf("Latest:       %.1f mi\n", latest)
	}

	green.Print("  ▶ ")
	fmt.Printf("Total logged: %.1f mi\n", total)
	return nil
}

// idFlag parses a single required integer flag from the command arguments.
func idFlag(name string) (int64, error) {
	args := os.Args[2:]
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == name:
			if i+1 >= len(args) {
				return 0, fmt.Errorf("%s requires a value", name)
			}
			return parseID(name, args[i+1])
		case strings.HasPrefix(arg, name+"="):
			return parseID(name, strings.TrimPrefix(arg, name+"="))
		}
	}
	return 0, fmt.Errorf("%s flag is required", name)
}

func parseID(name, value string) (int64, error) {
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer id: %q", name, value)
	}
	return id, nil
}
