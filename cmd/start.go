package cmd

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"tsl-devserver/core/config"
	"tsl-devserver/core/loader"
	"tsl-devserver/core/logger"
	"tsl-devserver/core/server"
	"tsl-devserver/feature/static"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the HTTPS dev server",
	Long: `Checks for the certificate pair, then serves the configured directory over TLS
until interrupted. Every response carries the COOP/COEP and CORS headers.`,
	Args: cobra.NoArgs,
	RunE: runStart,
}

func runStart(cmd *cobra.Command, args []string) error {
	// 1. Load Configuration
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// 2. Initialize Logger
	logg, err := logger.New(&cfg.Log)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logg.Sync()
	zap.ReplaceGlobals(logg)

	// 3. Certificates must exist before anything is bound
	if err := server.CheckCertificates(cfg.Server); err != nil {
		var cfgErr *server.ConfigurationError
		if errors.As(err, &cfgErr) {
			fmt.Fprint(cmd.OutOrStdout(), cfgErr.Guidance())
		}
		return err
	}

	// 4. Initialize Fiber App and features
	app := server.NewApp(logg)

	site := static.NewFeature(cfg.Static, logg)
	mgr := loader.NewManager()
	mgr.Register(site)

	loaded, err := mgr.LoadAll(app)
	if err != nil {
		return err
	}
	logg.Debug("Features loaded", zap.Strings("features", loaded))

	// 5. Bind TLS listener
	srv, err := server.New(cfg.Server, app, logg)
	if err != nil {
		return err
	}
	if err := srv.Listen(); err != nil {
		return err
	}

	// 6. Run until interrupted
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(c)

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- srv.Serve()
	}()

	printBanner(cmd.OutOrStdout(), srv.URL(), site.Root(), cfg.Server.Examples)

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("server stopped: %w", err)
		}
		return nil
	case <-c:
	}

	logg.Info("Shutting down server...")
	if err := srv.Shutdown(); err != nil {
		logg.Warn("Shutdown incomplete", zap.Error(err))
	}
	if err := <-serveErr; err != nil {
		logg.Warn("Server exited with error", zap.Error(err))
	}
	fmt.Fprintln(cmd.OutOrStdout(), "\nServer stopped")
	return nil
}

func printBanner(w io.Writer, url, root string, examples []string) {
	fmt.Fprintln(w, "TSL Shader Server running at:")
	fmt.Fprintf(w, "   %s\n", url)
	if len(examples) > 0 {
		fmt.Fprintf(w, "   %s/%s\n", url, examples[0])
	}
	fmt.Fprintf(w, "\nServing files from: %s\n", root)
	fmt.Fprintln(w, "HTTPS enabled (required for WebGPU)")
	if len(examples) > 0 {
		fmt.Fprintln(w, "\nAvailable examples:")
		for _, e := range examples {
			fmt.Fprintf(w, "   - %s/%s\n", url, e)
		}
	}
	fmt.Fprintln(w, "\nOpen your browser and navigate to the URLs above")
	fmt.Fprintln(w, "   Press Ctrl+C to stop the server")
}

func init() {
	RootCmd.AddCommand(startCmd)
}
