package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/commission-cli/internal/commission"
	"github.com/sells-group/commission-cli/internal/config"
	"github.com/sells-group/commission-cli/internal/dataset"
	"github.com/sells-group/commission-cli/internal/export"
	"github.com/sells-group/commission-cli/internal/fetcher"
	"github.com/sells-group/commission-cli/internal/model"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the commission upload server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if servePort != 0 {
			cfg.Server.Port = servePort
		}
		if err := cfg.Validate("serve"); err != nil {
			return err
		}

		eng, err := newEngine(cfg)
		if err != nil {
			return err
		}

		srv := &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
			Handler:           buildRouter(cfg, eng),
			ReadHeaderTimeout: 10 * time.Second,
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			srv.Shutdown(shutdownCtx) //nolint:errcheck
		}()

		zap.L().Info("starting server", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

// buildRouter wires the health check and the upload endpoint.
func buildRouter(c *config.Config, eng *commission.Engine) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: c.Server.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		ExposedHeaders: []string{"Content-Disposition"},
		MaxAge:         300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Post("/v1/commission", commissionHandler(c, eng))
	return r
}

// commissionResponse is the JSON body of a successful upload.
type commissionResponse struct {
	Report  commission.Report          `json:"report"`
	Orders  []model.OrderSummary       `json:"orders"`
	Summary []model.SalespersonSummary `json:"summary"`
	Header  []string                   `json:"header"`
	Rows    [][]string                 `json:"rows"`
}

func commissionHandler(c *config.Config, eng *commission.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := c.Server.MaxUploadBytes
		if r.ContentLength > limit {
			writeError(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("upload exceeds %d bytes", limit))
			return
		}
		r.Body = http.MaxBytesReader(w, r.Body, limit)

		format := r.URL.Query().Get("format")
		switch format {
		case "":
			format = "json"
		case "json", "xlsx", "csv":
		default:
			writeError(w, http.StatusBadRequest, fmt.Sprintf("unsupported format %q (want json, xlsx or csv)", format))
			return
		}

		if err := r.ParseMultipartForm(limit); err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				writeError(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("upload exceeds %d bytes", limit))
				return
			}
			writeError(w, http.StatusBadRequest, "expected a multipart form")
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			writeError(w, http.StatusBadRequest, "missing form field \"file\"")
			return
		}
		defer file.Close() //nolint:errcheck

		data, err := io.ReadAll(file)
		if err != nil {
			writeError(w, http.StatusBadRequest, "read upload")
			return
		}

		log := zap.L().With(
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.String("file", header.Filename),
		)

		tbl, err := fetcher.ReadTableBytes(header.Filename, data, loadOptions(c, r.URL.Query().Get("sheet")))
		if err != nil {
			writeCalcError(w, log, err)
			return
		}

		calc, err := calculate(r.Context(), eng, tbl)
		if err != nil {
			writeCalcError(w, log, err)
			return
		}
		logReport(calc.result.Report)

		if format == "json" {
			writeJSON(w, http.StatusOK, commissionResponse{
				Report:  calc.result.Report,
				Orders:  calc.result.Orders,
				Summary: calc.summary,
				Header:  calc.annotated.Header,
				Rows:    calc.annotated.Rows,
			})
			return
		}

		var buf bytes.Buffer
		if err := writeOutput(&buf, calc, format, c.Output); err != nil {
			log.Error("serve: write output", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "write output")
			return
		}
		name := export.DefaultFileName(time.Now(), format)
		w.Header().Set("Content-Type", export.ContentType(format))
		w.Header().Set("Content-Disposition", "attachment; filename*=UTF-8''"+url.PathEscape(name))
		w.WriteHeader(http.StatusOK)
		w.Write(buf.Bytes()) //nolint:errcheck
	}
}

// writeCalcError maps input errors to client statuses: 422 for missing
// columns, 400 for unreadable files or rows.
func writeCalcError(w http.ResponseWriter, log *zap.Logger, err error) {
	if se, ok := dataset.IsSchemaError(err); ok {
		log.Warn("serve: schema error", zap.Strings("missing", se.Missing))
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"error":           se.Error(),
			"missing_columns": se.Missing,
		})
		return
	}
	if pe, ok := dataset.IsParseError(err); ok {
		log.Warn("serve: parse error", zap.Error(err))
		body := map[string]any{"error": pe.Error()}
		if pe.Row > 0 {
			body["row"] = pe.Row
			body["column"] = pe.Column
		}
		writeJSON(w, http.StatusBadRequest, body)
		return
	}
	log.Error("serve: calculation failed", zap.Error(err))
	writeError(w, http.StatusInternalServerError, "calculation failed")
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
