package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/FocusWW/SiteAPI/internal/api/siteapi"
	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger"
)

type siteAPIOpts struct {
	httpAddr    string
	swaggerPath string

	onListen func(httpAddr string)
}

func runSiteAPI(ctx context.Context, opts siteAPIOpts, api *siteapi.SiteAPI) error {
	if opts.swaggerPath != "" {
		if _, err := os.Stat(opts.swaggerPath); os.IsNotExist(err) {
			return fmt.Errorf("swagger file not found: %s", opts.swaggerPath)
		}
	}

	lis, err := net.Listen("tcp", opts.httpAddr)
	if err != nil {
		return err
	}

	if opts.onListen != nil {
		opts.onListen(lis.Addr().String())
	}

	r := chi.NewRouter()
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	if opts.swaggerPath != "" {
		swaggerPath := opts.swaggerPath
		r.Get("/swagger.json", func(w http.ResponseWriter, r *http.Request) {
			http.ServeFile(w, r, swaggerPath)
		})
		r.Get("/docs/*", httpSwagger.Handler(
			httpSwagger.URL("/swagger.json"),
		))
	}

	r.Mount("/", api.Router())

	srv := &http.Server{Handler: r}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	slog.Info("HTTP server listening", "addr", lis.Addr().String())
	return srv.Serve(lis)
}
