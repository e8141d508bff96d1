package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"site-settings/core/loader"
	"site-settings/core/logger"
	"site-settings/core/middleware/auth"
	"site-settings/core/middleware/rayid"

	"site-settings/feature/archive"
	"site-settings/feature/integrity"
	"site-settings/feature/servers"
	"site-settings/feature/templates"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "site-settings/docs/swagger"
)

// @title Site Settings API
// @version 1.0
// @description API for managing versioned server configuration snapshots.
// @host localhost:8080
// @BasePath /

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the site settings server",
	Long:  `Starts the HTTP server and initializes all enabled features.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApplication()
		if err != nil {
			return err
		}
		defer a.close()

		if err := a.cfg.Server.Validate(); err != nil {
			return err
		}
		logg := a.logger
		zap.ReplaceGlobals(logg)

		app := fiber.New(fiber.Config{
			DisableStartupMessage: true,
			BodyLimit:             a.cfg.Server.BodyLimit(),
		})

		mgr := loader.NewManager()
		mgr.Register(servers.NewFeature(a.servers))
		mgr.Register(templates.NewFeature(a.templates))
		mgr.Register(integrity.NewFeature(a.integrity))
		mgr.Register(archive.NewFeature(a.archive))

		// RayID first so every later log line carries it.
		app.Use(rayid.New())
		app.Use(logger.Middleware(logg))

		// Public endpoints
		app.Get("/swagger/*", swagger.HandlerDefault)
		app.Get("/metrics", a.metrics.FiberHandler())

		app.Use(auth.New(auth.Config{ApiKey: a.cfg.Server.ApiKey}))

		app.Get("/workspace", func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{
				"config_root":       a.resolver.ConfigRoot(),
				"servers_root":      a.resolver.ServersRoot(),
				"personal_template": a.templates.PersonalPath(),
				"shared_template":   a.templates.SharedPath(),
			})
		})

		loaded, err := mgr.LoadAll(app)
		if err != nil {
			return err
		}
		logg.Info("Features loaded", zap.Strings("features", loaded))

		go func() {
			logg.Info("Starting server",
				zap.String("port", a.cfg.Server.Port),
				zap.String("servers_root", a.resolver.ServersRoot()))
			if err := app.Listen(":" + a.cfg.Server.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		return app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
