package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/jbassil/agence/internal/api"
	"github.com/jbassil/agence/internal/config"
	"github.com/jbassil/agence/internal/pb"
	"github.com/jbassil/agence/internal/pocketbase"
)

func main() {
	cfg, cfgErr := config.LoadConfig()
	if cfgErr != nil {
		log.Fatalf("Could not load config: %v", cfgErr)
	}

	if err := config.ConfigureLogger(cfg.Logs); err != nil {
		log.Fatalf("Could not configure logging: %v", err)
	}

	log.Info("Starting agence server...")

	err := run(cfg)
	if err != nil {
		log.Fatalf("Could not start server: %v", err)
	}
}

// Binds the shared PocketBase handle, then runs the HTTP server until it
// fails or the process is interrupted
func run(cfg *config.Config) error {
	opts := []pocketbase.Option{
		pocketbase.WithRateLimit(cfg.PocketBase.RateLimit, cfg.PocketBase.RateBurst),
	}
	if cfg.PocketBase.Token != "" {
		opts = append(opts, pocketbase.WithToken(cfg.PocketBase.Token))
	}
	if err := pb.Init(cfg.PocketBase.URL, opts...); err != nil {
		return errors.Wrap(err, "could not initialize pocketbase client")
	}
	log.WithField("url", pb.Get().BaseURL()).Info("PocketBase client ready")

	// Main HTTP request router
	mux := http.NewServeMux()
	api.RegisterRoutes(mux, pb.Get())

	// Create TCP address listener "l"
	addr := fmt.Sprintf(":%s", cfg.Port)
	l, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	log.Infof("Server listening on http://localhost%s", addr)
	s := &http.Server{
		Handler:      mux,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
	}

	errc := make(chan error, 1)

	go func() {
		errc <- s.Serve(l)
	}()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt)

	select {
	case err := <-errc:
		log.Errorf("Server error. Failed to serve: %v", err)
	case sig := <-sigs:
		log.Infof("Received signal %v. Shutting down server...", sig)
	}

	// Stop accepting new connections and give in-flight requests 10 seconds
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()

	return s.Shutdown(ctx)
}
