package main

import (
	"fmt"
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jared-cannon/app-registry/internal/api"
	"github.com/jared-cannon/app-registry/internal/config"
	"github.com/jared-cannon/app-registry/internal/services"
	"github.com/jared-cannon/app-registry/internal/storage"
	"github.com/jared-cannon/app-registry/internal/websocket"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const version = "0.1.0"

var cfgFile string

var rootCmd = &cobra.Command{
	Use:     "app-registry",
	Short:   "Register application descriptions and browse them in a table",
	Version: version,
	RunE:    runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web server (default)",
	RunE:  runServe,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the stored applications",
	RunE:  runList,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (YAML)")
	rootCmd.PersistentFlags().String("port", "", "HTTP port (env PORT)")
	rootCmd.PersistentFlags().String("db-path", "", "SQLite database path (env DB_PATH)")
	rootCmd.PersistentFlags().String("store-backend", "", "sqlite or keyring (env STORE_BACKEND)")

	rootCmd.AddCommand(serveCmd, listCmd)
}

// loadConfig merges flags over env, file and defaults
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	v := viper.New()
	for key, flag := range map[string]string{
		"port":          "port",
		"db_path":       "db-path",
		"store_backend": "store-backend",
	} {
		if f := cmd.Flags().Lookup(flag); f != nil && f.Changed {
			v.Set(key, f.Value.String())
		}
	}
	return config.Load(v, cfgFile)
}

// openStore opens the configured key-value backend
func openStore(cfg config.Config) (storage.KeyValueStore, func(), error) {
	switch cfg.StoreBackend {
	case config.BackendKeyring:
		kv, err := storage.OpenKeyring("app-registry", cfg.KeyringDir, cfg.KeyringPassword)
		if err != nil {
			return nil, nil, err
		}
		log.Printf("🔐 Keyring store initialized")
		return kv, func() {}, nil

	default:
		db, err := storage.OpenSQLite(cfg.DBPath, nil)
		if err != nil {
			return nil, nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, nil, fmt.Errorf("failed to get database connection: %w", err)
		}
		log.Printf("📦 Database initialized at %s", cfg.DBPath)
		return storage.NewSQLiteStore(db), func() { sqlDB.Close() }, nil
	}
}

// newApp wires the handlers into a Fiber app
func newApp(cfg config.Config, store *services.RecordStore, hub *websocket.Hub) (*fiber.App, error) {
	pages, err := api.NewPages()
	if err != nil {
		return nil, err
	}

	var notifier services.Notifier
	if hub != nil {
		notifier = hub
	}
	persist := services.NewPersistPathway(store, notifier, cfg.SuccessRedirect)
	quick := services.NewQuickPathway(cfg.ListingPage, cfg.RedirectDelay)

	app := fiber.New(fiber.Config{
		AppName: "App Registry",
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))

	apiGroup := app.Group("/api/v1")

	apiGroup.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "app-registry",
			"version": version,
			"slot":    store.Slot(),
		})
	})

	appsHandler := api.NewAppsHandler(store, persist, quick, pages)
	appsHandler.RegisterRoutes(app)
	appsHandler.RegisterAPIRoutes(apiGroup)

	if hub != nil {
		wsHandler := api.NewWebSocketHandler(hub)
		wsHandler.RegisterRoutes(app)
	}

	return app, nil
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	kv, closeStore, err := openStore(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize store: %w", err)
	}
	defer closeStore()

	store := services.NewRecordStore(kv, cfg.StorageSlot)

	hub := websocket.NewHub()
	go hub.Run()
	defer hub.Shutdown()
	log.Printf("🔌 WebSocket hub initialized")

	app, err := newApp(cfg, store, hub)
	if err != nil {
		return err
	}

	log.Printf("🚀 Server starting on port %s (%s)", cfg.Port, cfg.Env)
	return app.Listen(":" + cfg.Port)
}

func runList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	kv, closeStore, err := openStore(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize store: %w", err)
	}
	defer closeStore()

	store := services.NewRecordStore(kv, cfg.StorageSlot)
	return printTable(cmd.OutOrStdout(), services.ListingTable(store, nil))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Printf("Error: %v", err)
		os.Exit(1)
	}
}
