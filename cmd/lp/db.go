package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/kanthai/launchpad/internal/config"
	"github.com/kanthai/launchpad/internal/db"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

func newDBCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "db",
		Short: "Database management commands",
	}

	cmd.AddCommand(newDBInitCmd())
	cmd.AddCommand(newDBResetCmd())
	return cmd
}

func newDBInitCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize the Launchpad database",
		Long:  "Creates the MySQL database, migrates all tables, and seeds templates and role defaults.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDBInit(cmd, configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "launchpad.yaml", "path to Launchpad config file")
	return cmd
}

func runDBInit(cmd *cobra.Command, configPath string) error {
	out := cmd.OutOrStdout()

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	fmt.Fprintf(out, "Loaded config for owner %q from %s\n", cfg.Owner, configPath)

	adminDB, err := db.ConnectAdmin(cfg.Database.Host, cfg.Database.Port)
	if err != nil {
		return fmt.Errorf("connect to MySQL at %s:%d: %w", cfg.Database.Host, cfg.Database.Port, err)
	}
	fmt.Fprintf(out, "Connected to MySQL at %s:%d\n", cfg.Database.Host, cfg.Database.Port)

	if err := db.CreateDatabase(adminDB, cfg.Database.Name); err != nil {
		return err
	}
	fmt.Fprintf(out, "Database %s ready\n", cfg.Database.Name)

	gormDB, err := db.Connect(cfg.Database.Host, cfg.Database.Port, cfg.Database.Name)
	if err != nil {
		return fmt.Errorf("connect to %s: %w", cfg.Database.Name, err)
	}

	if err := initSchema(cmd, gormDB, cfg); err != nil {
		return err
	}

	fmt.Fprintln(out, "\nLaunchpad database initialized successfully.")
	return nil
}

// initSchema migrates tables and seeds templates plus role defaults.
func initSchema(cmd *cobra.Command, gormDB *gorm.DB, cfg *config.Config) error {
	out := cmd.OutOrStdout()

	if err := db.AutoMigrate(gormDB); err != nil {
		return err
	}
	fmt.Fprintf(out, "Migrated %d tables\n", len(db.AllModels()))

	if err := db.SeedTemplates(gormDB); err != nil {
		return err
	}
	fmt.Fprintln(out, "Seeded launch templates")

	if len(cfg.RoleDefaults) > 0 {
		if err := db.SeedRoleDefaults(gormDB, cfg.RoleDefaults); err != nil {
			return err
		}
		fmt.Fprintf(out, "Seeded %d role defaults:", len(cfg.RoleDefaults))
		for _, rd := range cfg.RoleDefaults {
			fmt.Fprintf(out, " %s", rd.Role)
		}
		fmt.Fprintln(out)
	}
	return nil
}

func newDBResetCmd() *cobra.Command {
	var (
		configPath string
		dbName     string
		yes        bool
	)

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Drop and re-initialize the Launchpad database",
		Long: `Drops the Launchpad database and optionally re-creates it from config.

By default, reads the config file to determine the database name, drops it,
then re-initializes (migrate + seed). With --database, drops the named
database without re-init.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDBReset(cmd, configPath, dbName, yes)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "launchpad.yaml", "path to Launchpad config file")
	cmd.Flags().StringVar(&dbName, "database", "", "explicit database name (skip re-init)")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip confirmation prompt")
	return cmd
}

func runDBReset(cmd *cobra.Command, configPath, dbName string, skipConfirm bool) error {
	out := cmd.OutOrStdout()

	var cfg *config.Config
	reinit := false

	if dbName == "" {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		dbName = cfg.Database.Name
		reinit = true
		fmt.Fprintf(out, "Loaded config for owner %q from %s\n", cfg.Owner, configPath)
	}

	if !skipConfirm {
		if !confirmReset(cmd, dbName) {
			fmt.Fprintln(out, "Aborted.")
			return nil
		}
	}

	host := "127.0.0.1"
	port := 3306
	if cfg != nil {
		host = cfg.Database.Host
		port = cfg.Database.Port
	}

	adminDB, err := db.ConnectAdmin(host, port)
	if err != nil {
		return fmt.Errorf("connect to MySQL at %s:%d: %w", host, port, err)
	}
	fmt.Fprintf(out, "Connected to MySQL at %s:%d\n", host, port)

	if err := db.DropDatabase(adminDB, dbName); err != nil {
		return err
	}
	fmt.Fprintf(out, "Dropped database %s\n", dbName)

	if !reinit {
		fmt.Fprintln(out, "\nDatabase dropped successfully.")
		return nil
	}

	if err := db.CreateDatabase(adminDB, dbName); err != nil {
		return err
	}
	fmt.Fprintf(out, "Database %s re-created\n", dbName)

	gormDB, err := db.Connect(host, port, dbName)
	if err != nil {
		return fmt.Errorf("connect to %s: %w", dbName, err)
	}

	if err := initSchema(cmd, gormDB, cfg); err != nil {
		return err
	}

	fmt.Fprintln(out, "\nLaunchpad database reset and re-initialized successfully.")
	return nil
}

// confirmReset prompts for interactive confirmation before dropping data.
func confirmReset(cmd *cobra.Command, dbName string) bool {
	out := cmd.OutOrStdout()
	in := cmd.InOrStdin()

	fmt.Fprintf(out, "WARNING: This will permanently delete all data in database %q.\n", dbName)
	fmt.Fprintln(out, "This action cannot be undone.")
	fmt.Fprintln(out)
	fmt.Fprint(out, "Type \"yes\" to confirm: ")

	scanner := bufio.NewScanner(in)
	if scanner.Scan() {
		return strings.TrimSpace(scanner.Text()) == "yes"
	}
	return false
}
