// Package cli provides the lojactl command line: schema migration and the
// read-only reports, run straight against the database.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"loja-admin/internal/config"
	"loja-admin/internal/repository"
	"loja-admin/internal/service"
	"loja-admin/pkg/database"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gorm.io/gorm"
)

// Opener connects to the database named by dsn.
type Opener func(dsn string) (*gorm.DB, error)

func postgresOpener(dsn string) (*gorm.DB, error) {
	return database.ConnectDB(dsn), nil
}

type app struct {
	v      *viper.Viper
	open   Opener
	db     *gorm.DB
	loc    *time.Location
	logger *slog.Logger
}

// NewRootCommand builds the command tree. A nil opener connects to Postgres.
func NewRootCommand(open Opener) *cobra.Command {
	if open == nil {
		open = postgresOpener
	}
	a := &app{v: viper.New(), open: open}
	defaults := config.Load()

	root := &cobra.Command{
		Use:           "lojactl",
		Short:         "Loja back-office maintenance and reports",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	root.PersistentFlags().String("dsn", defaults.DatabaseDSN, "database connection string")
	root.PersistentFlags().String("timezone", defaults.Location.String(), "time zone for calendar dates")
	root.PersistentFlags().String("log-level", "info", "log level: debug|info|warn|error")

	for _, name := range []string{"dsn", "timezone", "log-level"} {
		_ = a.v.BindPFlag(name, root.PersistentFlags().Lookup(name))
	}
	a.v.SetEnvPrefix("LOJA")
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()

	root.AddCommand(
		a.migrateCmd(),
		a.revenueCmd(),
		a.monthlyRevenueCmd(),
		a.monthlySalesCmd(),
	)
	return root
}

// Execute runs lojactl with os.Args.
func Execute() error {
	return NewRootCommand(nil).Execute()
}

func (a *app) setup(cmd *cobra.Command) error {
	lvl := slog.LevelInfo
	switch strings.ToLower(a.v.GetString("log-level")) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn", "warning":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	}
	a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: lvl}))

	loc, err := time.LoadLocation(a.v.GetString("timezone"))
	if err != nil {
		return fmt.Errorf("invalid timezone %q: %w", a.v.GetString("timezone"), err)
	}
	a.loc = loc

	db, err := a.open(a.v.GetString("dsn"))
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	a.db = db
	return nil
}

func (a *app) migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			start := time.Now()
			if err := database.Migrate(a.db); err != nil {
				a.logger.Error("migrate failed", "error", err)
				return err
			}
			a.logger.Info("schema migrated", "duration_ms", time.Since(start).Milliseconds())
			return nil
		},
	}
}

func (a *app) revenueService() service.RevenueService {
	return service.NewRevenueService(repository.NewSaleRepo(a.db), repository.NewProductRepo(a.db), a.loc)
}

func (a *app) revenueCmd() *cobra.Command {
	var from, to string
	cmd := &cobra.Command{
		Use:   "receita",
		Short: "Revenue, cost and profit between two dates (inclusive)",
		RunE: func(cmd *cobra.Command, args []string) error {
			start, err := time.Parse("2006-01-02", from)
			if err != nil {
				return fmt.Errorf("--inicio: %w", err)
			}
			end, err := time.Parse("2006-01-02", to)
			if err != nil {
				return fmt.Errorf("--fim: %w", err)
			}
			report, err := a.revenueService().Compute(start, end)
			if err != nil {
				return err
			}
			a.logger.Debug("revenue computed", "start", from, "end", to)
			return printJSON(cmd.OutOrStdout(), report)
		},
	}
	cmd.Flags().StringVar(&from, "inicio", "", "first day, YYYY-MM-DD")
	cmd.Flags().StringVar(&to, "fim", "", "last day, YYYY-MM-DD")
	_ = cmd.MarkFlagRequired("inicio")
	_ = cmd.MarkFlagRequired("fim")
	return cmd
}

func (a *app) monthlyRevenueCmd() *cobra.Command {
	var year, month int
	cmd := &cobra.Command{
		Use:   "receita-mensal",
		Short: "Revenue per month of a year, or of a single month with --mes",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := a.revenueService()
			if cmd.Flags().Changed("mes") {
				m, err := svc.ComputeForMonth(year, month)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), m)
			}
			months, err := svc.ComputeMonthly(year)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), months)
		},
	}
	cmd.Flags().IntVar(&year, "ano", time.Now().Year(), "year")
	cmd.Flags().IntVar(&month, "mes", 0, "month, 1-12")
	return cmd
}

func (a *app) monthlySalesCmd() *cobra.Command {
	var year int
	cmd := &cobra.Command{
		Use:   "vendas-mensal",
		Short: "Number of sales per month of a year (months without sales omitted)",
		RunE: func(cmd *cobra.Command, args []string) error {
			products := repository.NewProductRepo(a.db)
			movements := repository.NewStockMovementRepo(a.db)
			sales := service.NewSaleService(
				products,
				repository.NewSaleRepo(a.db),
				service.NewStockLedger(products, movements),
				a.db, nil, a.loc,
			)
			counts, err := sales.CountByMonth(year)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), counts)
		},
	}
	cmd.Flags().IntVar(&year, "ano", time.Now().Year(), "year")
	return cmd
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
