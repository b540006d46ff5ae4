package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/metadesigner/internal/adapters/web"
	"github.com/kamal-hamza/metadesigner/pkg/ui"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the upload web UI",
	Long: `Start the web server with the designer upload page and JSON API.

Endpoints:
  GET  /                     Upload page
  POST /api/designers        Register a designer (multipart: name, images)
  GET  /api/designers        List designers
  GET  /api/designers/:hash  Show one dataset
  POST /api/train            Training (not implemented yet)
  GET  /healthz              Health check
  GET  /metrics              Prometheus metrics

Examples:
  metadesigner serve
  metadesigner serve --port 8080
  METADESIGNER_HOST=127.0.0.1 metadesigner serve`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("host", "", "address to bind (default 0.0.0.0)")
	serveCmd.Flags().Int("port", 0, "port to listen on (default 12002)")
	serveCmd.Flags().Bool("debug", false, "run gin in debug mode")
	_ = appViper.BindPFlag("host", serveCmd.Flags().Lookup("host"))
	_ = appViper.BindPFlag("port", serveCmd.Flags().Lookup("port"))
	_ = appViper.BindPFlag("debug", serveCmd.Flags().Lookup("debug"))
}

func runServe(cmd *cobra.Command, args []string) error {
	server, err := web.NewServer(web.ServerConfig{
		Host:         appConfig.Host,
		Port:         appConfig.Port,
		Debug:        appConfig.Debug,
		EnableCORS:   appConfig.EnableCORS,
		CORSOrigins:  appConfig.CORSOrigins,
		ReadTimeout:  secondsToDuration(appConfig.ReadTimeoutSeconds),
		WriteTimeout: secondsToDuration(appConfig.WriteTimeoutSeconds),
		MaxUploadMB:  appConfig.MaxUploadMB,
	}, web.Dependencies{
		Register: registerService,
		List:     listService,
		Train:    trainService,
		Logger:   appLogger,
		Gatherer: metricsRegistry,
	})
	if err != nil {
		fmt.Println(ui.FormatError("Failed to start web server"))
		return err
	}

	fmt.Println(ui.FormatRocket(fmt.Sprintf("Serving on http://%s", server.Addr())))
	fmt.Println(ui.FormatMuted("Datasets: " + appWorkspace.CachePath))
	fmt.Println(ui.FormatMuted("Press Ctrl+C to stop"))
	fmt.Println()

	if err := server.Start(getContext()); err != nil {
		fmt.Println(ui.FormatError("Web server stopped with an error"))
		return err
	}

	fmt.Println()
	fmt.Println(ui.FormatMuted("Server stopped"))
	return nil
}
