// Package webui exposes the HTTP surface of the vehicle tracker: a JSON API
// for CRUD, popularity counting and analysis, CSV import/export endpoints,
// and an embedded admin page.
//
// Routes:
//
//	GET    /api/vehicles       → list
//	POST   /api/vehicles       → create
//	PUT    /api/vehicles/{id}  → update
//	DELETE /api/vehicles/{id}  → delete
//	GET    /api/analysis       → vehicles + total count
//	POST   /api/count/{id}     → increment popularity (404 on unknown id)
//	GET    /api/export         → CSV attachment
//	POST   /api/import         → multipart CSV upload
//	GET    /                   → embedded admin page (or an on-disk static dir)
package webui

import (
	"context"
	_ "embed"
	"encoding/csv"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"vehicletracker/internal/exporter"
	"vehicletracker/internal/importer"
	"vehicletracker/internal/vehicle"
)

// Inventory is the repository surface the handlers consume. Tests inject a
// fake; production wires *vehicle.Repository.
type Inventory interface {
	importer.Inventory
	Create(ctx context.Context, make, model string, year int) (int64, error)
	Update(ctx context.Context, id int64, make, model string, year int) (int64, error)
	Delete(ctx context.Context, id int64) error
	IncrementCount(ctx context.Context, id int64) (int, error)
	Analyze(ctx context.Context) (vehicle.Analysis, error)
}

// Config controls server construction.
type Config struct {
	Addr      string
	StaticDir string // optional; when set, overrides the embedded page
}

// Server wires the mux, the repository, and the static front end.
type Server struct {
	cfg Config
	mux *http.ServeMux
	inv Inventory
}

func NewServer(cfg Config, inv Inventory) *Server {
	s := &Server{cfg: cfg, mux: http.NewServeMux(), inv: inv}
	s.routes()
	return s
}

// Handler exposes the routed mux so main can own the http.Server lifecycle.
func (s *Server) Handler() http.Handler { return s.mux }

// ListenAndServe starts the server on the configured address without
// graceful shutdown; main wires its own http.Server for that.
func (s *Server) ListenAndServe() error { return http.ListenAndServe(s.cfg.Addr, s.mux) }

func (s *Server) routes() {
	s.mux.HandleFunc("GET /api/vehicles", s.handleList)
	s.mux.HandleFunc("POST /api/vehicles", s.handleCreate)
	s.mux.HandleFunc("PUT /api/vehicles/{id}", s.handleUpdate)
	s.mux.HandleFunc("DELETE /api/vehicles/{id}", s.handleDelete)
	s.mux.HandleFunc("GET /api/analysis", s.handleAnalysis)
	s.mux.HandleFunc("POST /api/count/{id}", s.handleCount)
	s.mux.HandleFunc("GET /api/export", s.handleExport)
	s.mux.HandleFunc("POST /api/import", s.handleImport)

	if s.cfg.StaticDir != "" {
		s.mux.Handle("GET /", http.FileServer(http.Dir(s.cfg.StaticDir)))
	} else {
		s.mux.HandleFunc("GET /", s.handleIndex)
	}
}

// vehiclePayload is the request body shared by create and update.
type vehiclePayload struct {
	Make  string `json:"make"`
	Model string `json:"model"`
	Year  int    `json:"year"`
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	vehicles, err := s.inv.List(r.Context())
	if err != nil {
		s.fail(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, vehicles)
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var p vehiclePayload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		s.fail(w, http.StatusBadRequest, err)
		return
	}
	// No field validation: empty or odd values are passed through as-is.
	// A known gap in the API contract, not a feature.
	id, err := s.inv.Create(r.Context(), p.Make, p.Model, p.Year)
	if err != nil {
		s.fail(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "id": id})
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.fail(w, http.StatusBadRequest, err)
		return
	}
	var p vehiclePayload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		s.fail(w, http.StatusBadRequest, err)
		return
	}
	// Zero affected rows (unknown id) still reports success; updates are
	// silently tolerant of missing ids.
	if _, err := s.inv.Update(r.Context(), id, p.Make, p.Model, p.Year); err != nil {
		s.fail(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.fail(w, http.StatusBadRequest, err)
		return
	}
	if err := s.inv.Delete(r.Context(), id); err != nil {
		s.fail(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (s *Server) handleAnalysis(w http.ResponseWriter, r *http.Request) {
	analysis, err := s.inv.Analyze(r.Context())
	if err != nil {
		s.fail(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, analysis)
}

func (s *Server) handleCount(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.fail(w, http.StatusBadRequest, err)
		return
	}
	count, err := s.inv.IncrementCount(r.Context(), id)
	if errors.Is(err, vehicle.ErrNotFound) {
		s.fail(w, http.StatusNotFound, err)
		return
	}
	if err != nil {
		s.fail(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "Count updated", "newCount": count})
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	vehicles, err := s.inv.List(r.Context())
	if err != nil {
		s.fail(w, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment; filename="+exporter.Filename)
	if err := exporter.Write(w, vehicles); err != nil {
		log.Printf("webui: export write: %v", err)
	}
}

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	file, _, err := r.FormFile("file")
	if err != nil {
		s.fail(w, http.StatusBadRequest, errors.New("no file uploaded"))
		return
	}
	defer file.Close()

	sum, err := importer.Run(r.Context(), s.inv, file)
	if err != nil {
		var parseErr *csv.ParseError
		status := http.StatusInternalServerError
		if errors.As(err, &parseErr) {
			status = http.StatusBadRequest
		}
		s.fail(w, status, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": sum.Message()})
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(indexHTML))
}

// fail logs the server-side error and converts it to the JSON {error} shape
// the browser client expects.
func (s *Server) fail(w http.ResponseWriter, status int, err error) {
	log.Printf("webui: %d %v", status, err)
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("webui: encode response: %v", err)
	}
}

func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(r.PathValue("id"), 10, 64)
}

// indexHTML is the embedded fallback admin page.
//
//go:embed index.html
var indexHTML string
