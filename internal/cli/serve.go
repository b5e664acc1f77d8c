package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/matzehuels/featureviewer/pkg/buildinfo"
	"github.com/matzehuels/featureviewer/pkg/errors"
	"github.com/matzehuels/featureviewer/pkg/io"
	"github.com/matzehuels/featureviewer/pkg/observability"
	"github.com/matzehuels/featureviewer/pkg/pipeline"
	"github.com/matzehuels/featureviewer/pkg/record"
	"github.com/matzehuels/featureviewer/pkg/render/interactive"
	"github.com/matzehuels/featureviewer/pkg/render/static"
)

const shutdownTimeout = 5 * time.Second

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		width   float64
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve [record files...]",
		Short: "Serve interactive feature maps over HTTP",
		Long: `Serve the records of one or more files over HTTP.

Routes:
  /                           interactive document of the first record
  /figure.svg, /figure.png    static figures of the first record
  /document.json              interactive document model of the first record
  /records                    record names
  /records/{name}/...         the same routes for a named record
  /healthz                    liveness and version`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.renderDefaults()
			if cmd.Flags().Changed("width") {
				opts.Width = width
			}
			if !cmd.Flags().Changed("addr") && c.Config.Serve.Addr != "" {
				addr = c.Config.Serve.Addr
			}
			return c.runServe(cmd.Context(), args, addr, opts, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "localhost:8080", "listen address")
	cmd.Flags().Float64Var(&width, "width", 0, "figure width in inches (default 5)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, inputs []string, addr string, opts pipeline.Options, noCache bool) error {
	var recs []record.Record
	for _, input := range inputs {
		rs, err := io.ImportRecords(input)
		if err != nil {
			return fmt.Errorf("load %s: %w", input, err)
		}
		recs = append(recs, rs...)
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	srv, err := newServer(runner, recs, opts, c.Logger)
	if err != nil {
		return err
	}

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           srv.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- httpServer.ListenAndServe() }()

	printSuccess("Serving %d records", len(srv.names))
	printKeyValue("url", StyleLink.Render("http://"+addr+"/"))
	for _, name := range srv.names {
		printDetail("/records/%s/", name)
	}

	select {
	case err := <-errc:
		return fmt.Errorf("serve %s: %w", addr, err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	c.Logger.Info("shutting down", "addr", addr)
	return httpServer.Shutdown(shutdownCtx)
}

// =============================================================================
// HTTP Server
// =============================================================================

// server renders records on request. Static figures and the HTML page go
// through the caching runner; the document model is built by a coordinator
// created once for the server.
type server struct {
	runner  *pipeline.Runner
	coord   *pipeline.Coordinator
	records map[string]record.Record
	names   []string
	opts    pipeline.Options
	logger  *log.Logger
}

func newServer(runner *pipeline.Runner, recs []record.Record, opts pipeline.Options, logger *log.Logger) (*server, error) {
	if len(recs) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "no records to serve")
	}
	opts.SetDefaults()
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	coord, err := pipeline.NewCoordinator(
		pipeline.WithStatic(pipeline.Static(static.New(opts.LayoutOptions()))),
		pipeline.WithLogger(logger),
	)
	if err != nil {
		return nil, err
	}

	s := &server{
		runner:  runner,
		coord:   coord,
		records: make(map[string]record.Record, len(recs)),
		opts:    opts,
		logger:  logger,
	}
	for _, rec := range recs {
		name := sanitizeName(rec.Name)
		for i := 2; ; i++ {
			if _, dup := s.records[name]; !dup {
				break
			}
			name = sanitizeName(rec.Name) + "-" + strconv.Itoa(i)
		}
		s.records[name] = rec
		s.names = append(s.names, name)
	}
	return s, nil
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.observe)

	r.Get("/healthz", s.handleHealth)
	r.Get("/records", s.handleList)
	s.recordRoutes(r)
	r.Route("/records/{name}", s.recordRoutes)

	return r
}

func (s *server) recordRoutes(r chi.Router) {
	r.Get("/", s.handleArtifact(pipeline.FormatHTML, "text/html; charset=utf-8"))
	r.Get("/figure.svg", s.handleArtifact(pipeline.FormatSVG, "image/svg+xml"))
	r.Get("/figure.png", s.handleArtifact(pipeline.FormatPNG, "image/png"))
	r.Get("/layout.json", s.handleArtifact(pipeline.FormatJSON, "application/json"))
	r.Get("/document.json", s.handleDocument)
}

// observe reports every request to the HTTP hooks and the debug log.
func (s *server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hooks := observability.HTTP()
		hooks.OnRequest(r.Context(), r.Method, r.URL.Path)

		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		dur := time.Since(start)
		hooks.OnResponse(r.Context(), r.Method, r.URL.Path, status, dur)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"bytes", ww.BytesWritten(),
			"duration", dur,
			"request_id", middleware.GetReqID(r.Context()))
	})
}

// record resolves the {name} parameter; without one it is the first record.
func (s *server) record(r *http.Request) (record.Record, error) {
	name := chi.URLParam(r, "name")
	if name == "" {
		return s.records[s.names[0]], nil
	}
	if err := errors.ValidatePath(name); err != nil {
		return record.Record{}, err
	}
	rec, ok := s.records[name]
	if !ok {
		return record.Record{}, errors.New(errors.ErrCodeNotFound, "record %q not found", name)
	}
	return rec, nil
}

func (s *server) handleArtifact(format, contentType string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec, err := s.record(r)
		if err != nil {
			s.writeError(w, err)
			return
		}

		opts := s.opts
		opts.Formats = []string{format}
		result, err := s.runner.Execute(r.Context(), rec, opts)
		if err != nil {
			s.writeError(w, err)
			return
		}

		w.Header().Set("Content-Type", contentType)
		w.Header().Set("X-Record-Hash", result.RecordHash)
		w.Write(result.Artifacts[format])
	}
}

func (s *server) handleDocument(w http.ResponseWriter, r *http.Request) {
	rec, err := s.record(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	doc, err := s.coord.RenderInteractive(r.Context(), rec, s.opts.Width)
	if err != nil {
		s.writeError(w, err)
		return
	}
	data, err := interactive.RenderJSON(doc)
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

func (s *server) handleList(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"records": s.names})
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"version": buildinfo.Version,
		"records": len(s.names),
	})
}

func (s *server) writeError(w http.ResponseWriter, err error) {
	status := httpStatus(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "err", err)
	}
	writeJSON(w, status, map[string]any{
		"error": errors.UserMessage(err),
		"code":  errors.GetCode(err),
	})
}

// httpStatus maps error codes to HTTP status codes.
func httpStatus(err error) int {
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidPath, errors.ErrCodeConfiguration:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case errors.ErrCodeMissingDependency:
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
