// Package server serves a generated documentation directory for local
// preview.
package server

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
)

const shutdownTimeout = 5 * time.Second

var indexTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{if .Title}}{{.Title}} | {{end}}Index</title>
</head>
<body>
<h1>{{if .Title}}{{.Title}}{{else}}Documentation{{end}}</h1>
<ul class="docs-list">
{{- range .Units}}
<li class="docs-link"><a href="./{{.}}.html">{{.}}</a></li>
{{- end}}
</ul>
</body>
</html>
`))

// NewHandler returns a router serving the pages under dir. The root path
// lists the units that have a page.
func NewHandler(dir, title string, log logrus.FieldLogger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(log))

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		units, err := listUnits(dir)
		if err != nil {
			log.WithError(err).Error("Failed to list pages")
			http.Error(w, "failed to list pages", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := indexTemplate.Execute(w, struct {
			Title string
			Units []string
		}{title, units}); err != nil {
			log.WithError(err).Error("Failed to render index")
		}
	})
	r.Handle("/*", http.FileServer(http.Dir(dir)))
	return r
}

func requestLogger(log logrus.FieldLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			log.WithFields(logrus.Fields{
				"method":   r.Method,
				"path":     r.URL.Path,
				"status":   ww.Status(),
				"duration": time.Since(start),
			}).Debug("Served request")
		})
	}
}

func listUnits(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var units []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || filepath.Ext(name) != ".html" {
			continue
		}
		units = append(units, strings.TrimSuffix(name, ".html"))
	}
	sort.Strings(units)
	return units, nil
}

// Serve listens on addr until ctx is cancelled, then shuts down.
func Serve(ctx context.Context, addr string, h http.Handler, log logrus.FieldLogger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", addr).Info("Serving documentation")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("failed to serve: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down: %w", err)
	}
	log.Info("Server stopped")
	return nil
}
