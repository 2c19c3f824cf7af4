// Package server exposes the license check over HTTP.
//
// Routes:
//
//	POST /v1/check       run a lockfile through the pipeline
//	GET  /v1/collectors  list supported lockfiles
//	GET  /healthz        liveness probe
//
// A check request carries the lockfile path (used only to select a
// collector), its content and optionally a policy, either in the native
// form or as licrc TOML text:
//
//	{
//	  "lockfile": "package-lock.json",
//	  "content": "{...}",
//	  "policy": {"default": "deny", "licenses": {"MIT": "allow"}}
//	}
package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/matzehuels/licensebat/pkg/buildinfo"
	"github.com/matzehuels/licensebat/pkg/deps"
	errs "github.com/matzehuels/licensebat/pkg/errors"
	"github.com/matzehuels/licensebat/pkg/pipeline"
	"github.com/matzehuels/licensebat/pkg/policy"
)

// maxBodyBytes bounds check requests. Large monorepo lockfiles stay well
// below it.
const maxBodyBytes = 16 << 20

// Options configures the HTTP handler.
type Options struct {
	// AllowedOrigins for CORS. Empty disables cross-origin requests.
	AllowedOrigins []string
	// Logger receives request logs. Nil discards them.
	Logger *log.Logger
}

type handler struct {
	coord  *pipeline.Coordinator
	logger *log.Logger
}

// New returns the API handler running checks through coord.
func New(coord *pipeline.Coordinator, opts Options) http.Handler {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	h := &handler{coord: coord, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(h.logRequests)
	if len(opts.AllowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: opts.AllowedOrigins,
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type"},
			MaxAge:         300,
		}))
	}

	r.Get("/healthz", h.health)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/collectors", h.listCollectors)
		r.Post("/check", h.check)
	})
	return r
}

// CheckRequest is the body of POST /v1/check.
type CheckRequest struct {
	Lockfile string          `json:"lockfile"`
	Content  string          `json:"content"`
	Policy   json.RawMessage `json:"policy,omitempty"`
	Licrc    string          `json:"licrc,omitempty"`
	Sort     bool            `json:"sort,omitempty"`
}

// CheckResponse is the body of a successful check.
type CheckResponse struct {
	ID           string                     `json:"id"`
	Lockfile     string                     `json:"lockfile"`
	Collector    string                     `json:"collector"`
	Validated    bool                       `json:"validated"`
	Summary      Summary                    `json:"summary"`
	Dependencies []deps.RetrievedDependency `json:"dependencies"`
}

// Summary counts the records of a response.
type Summary struct {
	Total   int `json:"total"`
	Valid   int `json:"valid"`
	Invalid int `json:"invalid"`
	Ignored int `json:"ignored"`
	Errored int `json:"errored"`
}

// Collector describes one supported lockfile.
type Collector struct {
	Name               string `json:"name"`
	DependencyFilename string `json:"dependency_filename"`
}

type errorResponse struct {
	Code    errs.Code `json:"code"`
	Message string    `json:"message"`
}

func (h *handler) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "version": buildinfo.Current().Version})
}

func (h *handler) listCollectors(w http.ResponseWriter, r *http.Request) {
	out := []Collector{}
	for _, c := range h.coord.Collectors() {
		out = append(out, Collector{Name: c.Name(), DependencyFilename: c.DependencyFilename()})
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *handler) check(w http.ResponseWriter, r *http.Request) {
	var req CheckRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		h.fail(w, errs.Wrap(errs.ErrCodeInvalidInput, err, "decode request"))
		return
	}
	if err := errs.ValidateLockfilePath(req.Lockfile); err != nil {
		h.fail(w, err)
		return
	}

	pol, err := requestPolicy(req)
	if err != nil {
		h.fail(w, err)
		return
	}

	res, err := h.coord.Execute(r.Context(), req.Lockfile, req.Content, pol)
	if err != nil {
		h.fail(w, err)
		return
	}
	if req.Sort {
		deps.SortByName(res.Dependencies)
	}

	s := policy.Summarize(res.Dependencies)
	writeJSON(w, http.StatusOK, CheckResponse{
		ID:        res.ID,
		Lockfile:  res.Lockfile,
		Collector: res.Collector,
		Validated: res.Validated,
		Summary: Summary{
			Total: s.Total, Valid: s.Valid, Invalid: s.Invalid,
			Ignored: s.Ignored, Errored: s.Errored,
		},
		Dependencies: res.Dependencies,
	})
}

func requestPolicy(req CheckRequest) (*policy.Policy, error) {
	switch {
	case len(req.Policy) > 0 && req.Licrc != "":
		return nil, errs.New(errs.ErrCodeInvalidPolicy, "send either policy or licrc, not both")
	case len(req.Policy) > 0:
		// JSON is a subset of YAML, so the native loader reads it as is.
		return policy.ParseYAML(req.Policy)
	case req.Licrc != "":
		return policy.ParseLicrc([]byte(req.Licrc))
	}
	return nil, nil
}

func (h *handler) fail(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error("check failed", "error", err)
	}
	code := errs.GetCode(err)
	if code == "" {
		code = errs.ErrCodeInternal
	}
	writeJSON(w, status, errorResponse{Code: code, Message: errs.UserMessage(err)})
}

func statusFor(err error) int {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	switch errs.GetCode(err) {
	case errs.ErrCodeInvalidInput, errs.ErrCodeInvalidPath, errs.ErrCodeInvalidLockfile, errs.ErrCodeInvalidPolicy:
		return http.StatusBadRequest
	case errs.ErrCodeUnsupportedLockfile:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func (h *handler) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		h.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start).Round(time.Millisecond),
			"request_id", middleware.GetReqID(r.Context()))
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
