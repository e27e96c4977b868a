package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/yannn/strictdata/internal/values"
	"github.com/yannn/strictdata/pkg/domain"
	"github.com/yannn/strictdata/pkg/registry"
	"github.com/yannn/strictdata/pkg/schema"
	"github.com/yannn/strictdata/pkg/store"
)

// maxBodyBytes bounds validation request bodies.
const maxBodyBytes = 1 << 20

// Server exposes schema inspection and record validation over HTTP.
type Server struct {
	Registry *registry.Registry
	Version  string
	Logger   *slog.Logger

	gatherer prometheus.Gatherer
}

type Option func(*Server)

// WithMetrics mounts /metrics serving g.
func WithMetrics(g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.gatherer = g
	}
}

// WithVersion sets the version reported by /info.
func WithVersion(v string) Option {
	return func(s *Server) {
		s.Version = v
	}
}

// NewHandler creates a new HTTP handler for the registry.
func NewHandler(reg *registry.Registry, opts ...Option) http.Handler {
	s := &Server{
		Registry: reg,
		Version:  "unknown",
		Logger:   reg.Logger(),
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(requestID)
	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	r.Get("/classes", s.ListClasses)
	r.Get("/classes/{class}", s.GetClass)
	r.Get("/classes/{class}/jsonschema", s.GetJSONSchema)
	r.Post("/classes/{class}/validate", s.Validate)
	if s.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}
	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequestIDHeader carries the request identifier in both directions.
const RequestIDHeader = "X-Request-Id"

type requestIDKey struct{}

// requestID keeps a caller-supplied UUID or assigns a new one.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(r.Header.Get(RequestIDHeader))
		if err != nil {
			id = uuid.New()
		}
		w.Header().Set(RequestIDHeader, id.String())
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey{}, id.String())))
	})
}

// RequestID returns the identifier assigned to the request carried by ctx.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// ViolationResponse describes one rejected property.
type ViolationResponse struct {
	Property string `json:"property,omitempty"`
	Kind     string `json:"kind"`
	Message  string `json:"message"`
}

// ValidateResponse is the body returned by POST /classes/{class}/validate.
type ValidateResponse struct {
	RequestID  string              `json:"request_id"`
	Class      string              `json:"class"`
	Valid      bool                `json:"valid"`
	Values     map[string]any      `json:"values,omitempty"`
	Violations []ViolationResponse `json:"violations,omitempty"`
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"app":     "strictdata-http",
		"version": s.Version,
	})
}

// ListClasses handles the GET /classes request. Only classes already built are listed.
func (s *Server) ListClasses(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"classes": s.Registry.Classes(),
		"stats":   s.Registry.Stats(),
	})
}

// GetClass handles the GET /classes/{class} request.
func (s *Server) GetClass(w http.ResponseWriter, r *http.Request) {
	c, ok := s.resolve(w, chi.URLParam(r, "class"))
	if !ok {
		return
	}
	s.writeJSON(w, http.StatusOK, c.View())
}

// GetJSONSchema handles the GET /classes/{class}/jsonschema request.
func (s *Server) GetJSONSchema(w http.ResponseWriter, r *http.Request) {
	c, ok := s.resolve(w, chi.URLParam(r, "class"))
	if !ok {
		return
	}
	s.writeJSON(w, http.StatusOK, c.JSONSchema())
}

// Validate handles the POST /classes/{class}/validate request.
// The body is a JSON object of property values, checked all-or-nothing.
func (s *Server) Validate(w http.ResponseWriter, r *http.Request) {
	c, ok := s.resolve(w, chi.URLParam(r, "class"))
	if !ok {
		return
	}

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.UseNumber()
	var body map[string]any
	if err := dec.Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.Logger.Warn("Validate: Invalid request body", "class", c.Name, "request_id", RequestID(r.Context()), "error", err)
		return
	}

	obj := store.New(c,
		store.WithTypes(s.Registry.Types()),
		store.WithLogger(s.Logger),
		store.WithHooks(s.Registry.Hooks()),
	)

	resp := ValidateResponse{RequestID: RequestID(r.Context()), Class: c.Name}
	err := obj.Assign(values.Normalize(body).(map[string]any))
	switch {
	case err == nil:
		resp.Valid = true
		resp.Values = obj.Snapshot()
		s.writeJSON(w, http.StatusOK, resp)
	case errors.Is(err, domain.ErrSchemaDefinition):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		s.Logger.Error("Validate: schema definition error", "class", c.Name, "request_id", resp.RequestID, "error", err)
	default:
		for _, e := range domain.ValidationErrors(err) {
			resp.Violations = append(resp.Violations, violation(e))
		}
		s.Logger.Debug("Validate: record rejected", "class", c.Name, "request_id", resp.RequestID, "violations", len(resp.Violations))
		s.writeJSON(w, http.StatusUnprocessableEntity, resp)
	}
}

func (s *Server) resolve(w http.ResponseWriter, class string) (*schema.Class, bool) {
	c, err := s.Registry.Resolve(class)
	switch {
	case err == nil:
		return c, true
	case errors.Is(err, domain.ErrClassNotFound):
		http.Error(w, fmt.Sprintf("class %s not found", class), http.StatusNotFound)
	case errors.Is(err, domain.ErrSchemaDefinition):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
		s.Logger.Error("Resolve failed", "class", class, "error", err)
	}
	return nil, false
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.Logger.Error("response encode failed", "error", err)
	}
}

func violation(err error) ViolationResponse {
	v := ViolationResponse{Kind: "error", Message: err.Error()}
	var pe *domain.PropertyError
	if errors.As(err, &pe) {
		v.Property = pe.Property
		v.Kind = string(pe.Kind)
	}
	return v
}
