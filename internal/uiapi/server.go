package uiapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/amadiallo/solsize/internal/engine"
	"github.com/amadiallo/solsize/internal/library"
	"github.com/amadiallo/solsize/internal/store"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server exposes the sizing engine and the configuration store over
// HTTP. Every request loads one configuration, mutates it, and saves it
// back, so registry writes are serialized through the store.
type Server struct {
	store   *store.Store
	catalog library.Catalog
}

// NewServer creates a server over the given store and catalog
func NewServer(st *store.Store, catalog library.Catalog) *Server {
	return &Server{
		store:   st,
		catalog: catalog,
	}
}

// configName picks the configuration a request operates on
func configName(r *http.Request) string {
	if name := r.URL.Query().Get("config"); name != "" {
		return name
	}
	return "default"
}

func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	// CORS for local development
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
			if r.Method == "OPTIONS" {
				w.WriteHeader(http.StatusOK)
				return
			}
			next.ServeHTTP(w, r)
		})
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/status", s.handleStatus)

		r.Get("/appliances", s.handleListAppliances)
		r.Post("/appliances", s.handleAddAppliance)
		r.Get("/appliances/{name}", s.handleGetAppliance)
		r.Put("/appliances/{name}", s.handleEditAppliance)
		r.Delete("/appliances/{name}", s.handleRemoveAppliance)
		r.Delete("/appliances", s.handleClearAppliances)

		r.Get("/profile", s.handleProfile)
		r.Post("/sizing", s.handleSizing)
		r.Post("/report", s.handleReport)

		r.Get("/configurations", s.handleListConfigurations)
		r.Put("/configurations/{name}", s.handleSaveConfiguration)
		r.Post("/configurations/{name}/load", s.handleLoadConfiguration)
		r.Delete("/configurations/{name}", s.handleDeleteConfiguration)

		r.Get("/library", s.handleLibrary)
	})

	return r
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "ok",
		"version": "1.0.0",
	})
}

func (s *Server) handleListAppliances(w http.ResponseWriter, r *http.Request) {
	reg, err := s.store.LoadConfiguration(configName(r))
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"appliances":   reg.List(),
		"total_power":  reg.TotalPower(),
		"total_energy": reg.TotalEnergy(),
	})
}

type applianceRequest struct {
	Name      string  `json:"name"`
	Power     int     `json:"power"`
	Time      float64 `json:"time"`
	StartHour int     `json:"start_hour"`
}

func (s *Server) handleAddAppliance(w http.ResponseWriter, r *http.Request) {
	var req applianceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	cfg := configName(r)
	reg, err := s.store.LoadConfiguration(cfg)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if err := reg.Add(req.Name, req.Power, req.Time, req.StartHour); err != nil {
		respondEngineError(w, err)
		return
	}
	if err := s.store.SaveConfiguration(cfg, reg); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	added, _ := reg.Find(req.Name)
	respondJSON(w, http.StatusCreated, added)
}

func (s *Server) handleGetAppliance(w http.ResponseWriter, r *http.Request) {
	reg, err := s.store.LoadConfiguration(configName(r))
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	appliance, ok := reg.Find(chi.URLParam(r, "name"))
	if !ok {
		respondError(w, http.StatusNotFound, "appliance not found")
		return
	}
	respondJSON(w, http.StatusOK, appliance)
}

func (s *Server) handleEditAppliance(w http.ResponseWriter, r *http.Request) {
	var req applianceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	cfg := configName(r)
	reg, err := s.store.LoadConfiguration(cfg)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	target := chi.URLParam(r, "name")
	if err := reg.Edit(target, req.Name, req.Power, req.Time, req.StartHour); err != nil {
		respondEngineError(w, err)
		return
	}
	if err := s.store.SaveConfiguration(cfg, reg); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	edited, _ := reg.Find(req.Name)
	respondJSON(w, http.StatusOK, edited)
}

func (s *Server) handleRemoveAppliance(w http.ResponseWriter, r *http.Request) {
	cfg := configName(r)
	reg, err := s.store.LoadConfiguration(cfg)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	name := chi.URLParam(r, "name")
	if err := reg.Remove(name); err != nil {
		respondEngineError(w, err)
		return
	}
	if err := s.store.SaveConfiguration(cfg, reg); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "deleted", "name": name})
}

func (s *Server) handleClearAppliances(w http.ResponseWriter, r *http.Request) {
	cfg := configName(r)
	reg, err := s.store.LoadConfiguration(cfg)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	reg.Clear()
	if err := s.store.SaveConfiguration(cfg, reg); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "cleared"})
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	reg, err := s.store.LoadConfiguration(configName(r))
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"hourly_profile": reg.HourlyProfile(),
		"total_power":    reg.TotalPower(),
		"total_energy":   reg.TotalEnergy(),
	})
}

func (s *Server) handleSizing(w http.ResponseWriter, r *http.Request) {
	var params engine.SizingParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	reg, err := s.store.LoadConfiguration(configName(r))
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	result, err := engine.SizeSystem(reg, params)
	if err != nil {
		respondEngineError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

type reportRequest struct {
	Sizing engine.SizingParams `json:"sizing"`
	Costs  engine.CostParams   `json:"costs"`
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	var req reportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	reg, err := s.store.LoadConfiguration(configName(r))
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	sizing, err := engine.SizeSystem(reg, req.Sizing)
	if err != nil {
		respondEngineError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, engine.Report{
		Appliances:    reg.List(),
		HourlyProfile: reg.HourlyProfile(),
		Sizing:        sizing,
		Economics:     engine.Evaluate(sizing, req.Costs),
	})
}

func (s *Server) handleListConfigurations(w http.ResponseWriter, r *http.Request) {
	configs, err := s.store.ListConfigurations()
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, configs)
}

// handleSaveConfiguration snapshots the working configuration under a
// new name
func (s *Server) handleSaveConfiguration(w http.ResponseWriter, r *http.Request) {
	reg, err := s.store.LoadConfiguration(configName(r))
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	name := chi.URLParam(r, "name")
	if err := s.store.SaveConfiguration(name, reg); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "saved", "name": name})
}

// handleLoadConfiguration copies a saved configuration over the working
// one
func (s *Server) handleLoadConfiguration(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	reg, err := s.store.LoadConfiguration(name)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if err := s.store.SaveConfiguration(configName(r), reg); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message":    "loaded",
		"name":       name,
		"appliances": reg.List(),
	})
}

func (s *Server) handleDeleteConfiguration(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if err := s.store.DeleteConfiguration(name); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "deleted", "name": name})
}

func (s *Server) handleLibrary(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.catalog)
}

// respondEngineError maps the engine's typed errors to HTTP statuses;
// localization of the message is the client's concern
func respondEngineError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, engine.ErrDuplicateName):
		respondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, engine.ErrNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, engine.ErrInvalidParameter):
		respondError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		respondError(w, http.StatusInternalServerError, err.Error())
	}
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
