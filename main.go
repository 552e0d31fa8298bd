package main

import (
	"os"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"cubicacion/collections"
	"cubicacion/config"
	"cubicacion/handlers"
	"cubicacion/services"
	"cubicacion/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config")
	}
	setupLogger(cfg)

	app := pocketbase.NewWithConfig(pocketbase.Config{
		DefaultDataDir: cfg.DataDir,
		DefaultDev:     !cfg.Production(),
	})
	st := store.New(app, store.Options{
		InsulationPrices: cfg.InsulationPrices,
		BoardPrices:      cfg.BoardPrices,
		Contributors:     cfg.Contributors,
	})
	store.BindHooks(app)

	app.RootCmd.AddCommand(newSummaryCmd(app, st))

	// Create collections, fix up stored data and seed on startup
	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		if err := collections.Setup(app); err != nil {
			return err
		}
		if err := collections.MigrateDefaultDosage(app); err != nil {
			log.Warn().Err(err).Msg("dosage migration failed")
		}
		if n, err := collections.MigrateStaleDerived(app, store.DerivedFixes()...); err != nil {
			log.Warn().Err(err).Msg("derived value migration failed")
		} else if n > 0 {
			log.Info().Int("rows", n).Msg("recomputed stale derived values")
		}
		if err := collections.Seed(app); err != nil {
			log.Warn().Err(err).Msg("seed data failed")
		}
		return se.Next()
	})

	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		se.Router.BindFunc(handlers.RequestLogger(log.Logger))

		// ── Catalog ──────────────────────────────────────────────
		se.Router.GET("/items", handlers.HandleItemList(st))
		se.Router.POST("/items", handlers.HandleItemCreate(st))
		se.Router.GET("/items/{id}", handlers.HandleItemGet(st))
		se.Router.PATCH("/items/{id}", handlers.HandleItemUpdate(st))
		se.Router.DELETE("/items/{id}", handlers.HandleItemDelete(st))
		se.Router.GET("/items/{id}/expenses", handlers.HandleItemExpenses(st))

		// ── Expenses ─────────────────────────────────────────────
		se.Router.GET("/expenses", handlers.HandleExpenseList(st))
		se.Router.POST("/expenses", handlers.HandleExpenseCreate(st))
		se.Router.GET("/expenses/{id}", handlers.HandleExpenseGet(st))
		se.Router.PATCH("/expenses/{id}", handlers.HandleExpenseUpdate(st))
		se.Router.DELETE("/expenses/{id}", handlers.HandleExpenseDelete(st))
		se.Router.POST("/expenses/{id}/toggle-paid", handlers.HandleExpenseTogglePaid(st))
		se.Router.POST("/expenses/{id}/quantity", handlers.HandleExpenseQuantity(st))

		// ── Calculators ──────────────────────────────────────────
		handlers.RegisterCalculator(se.Router, st, "/insulation", services.CalcInsulation, st.Insulation)
		handlers.RegisterCalculator(se.Router, st, "/volcanita", services.CalcVolcanita, st.Volcanita)
		handlers.RegisterCalculator(se.Router, st, "/sika", services.CalcConcrete, st.Concrete)

		// ── Dosage ───────────────────────────────────────────────
		se.Router.GET("/sika-config", handlers.HandleDosageList(st))
		se.Router.GET("/sika-config/{tipo}", handlers.HandleDosageGet(st))
		se.Router.PATCH("/sika-config/{tipo}", handlers.HandleDosageUpdate(st))

		// ── Overview, summaries and exports ──────────────────────
		se.Router.GET("/dashboard", handlers.HandleDashboard(st))
		se.Router.GET("/summary/{calculator}", handlers.HandleSummary(st))
		se.Router.GET("/export/takeoff.xlsx", handlers.HandleExportTakeoff(st))
		se.Router.GET("/export/{file}", handlers.HandleExportPDF(st))

		return se.Next()
	})

	// Running the binary without a command serves on the configured address.
	if len(os.Args) == 1 {
		os.Args = append(os.Args, "serve", "--http="+cfg.Addr)
	}

	if err := app.Start(); err != nil {
		log.Fatal().Err(err).Msg("app stopped")
	}
}

// setupLogger configures the global zerolog logger: human-readable console
// output in development, JSON in production.
func setupLogger(cfg *config.Config) {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339

	if cfg.Production() {
		log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
	} else {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"})
	}
	// zerolog.Ctx falls back to this outside request handlers.
	zerolog.DefaultContextLogger = &log.Logger
}
