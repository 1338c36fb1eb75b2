package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"officespace/internal/catalog"
	"officespace/internal/config"
	"officespace/internal/domain"
	"officespace/internal/export"
	"officespace/internal/metrics"
	"officespace/internal/models"
	"officespace/internal/session"

	"github.com/rs/zerolog"
)

// HTTPServer exposes the workspace catalog and the booking flow over HTTP.
type HTTPServer struct {
	cfg        config.APIConfig
	catalog    *catalog.Catalog
	manager    *session.Manager
	store      domain.ReservationStore
	exportPath string
	server     *http.Server
	auth       *HTTPAuth
	logger     zerolog.Logger
}

func NewHTTPServer(
	cfg config.APIConfig,
	cat *catalog.Catalog,
	manager *session.Manager,
	store domain.ReservationStore,
	exportPath string,
	logger *zerolog.Logger,
) *HTTPServer {
	base := zerolog.Nop()
	if logger != nil {
		base = logger.With().Str("component", "http").Logger()
	}

	mux := http.NewServeMux()
	srv := &HTTPServer{
		cfg:        cfg,
		catalog:    cat,
		manager:    manager,
		store:      store,
		exportPath: exportPath,
		logger:     base,
	}
	srv.auth = NewHTTPAuth(cfg)

	mux.HandleFunc("/api/v1/workspaces", srv.handleWorkspaces)
	mux.HandleFunc("/api/v1/workspaces/", srv.handleWorkspace)
	mux.HandleFunc("/api/v1/reservations", srv.handleReservations)
	mux.HandleFunc("/api/v1/reservations/export", srv.handleExport)
	mux.HandleFunc("/healthz", srv.handleHealth)

	handler := srv.loggingMiddleware(srv.auth.Wrap(mux))

	srv.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
	}

	return srv
}

func (s *HTTPServer) Start() error {
	if s.server == nil {
		return fmt.Errorf("http server is not initialized")
	}
	s.logger.Info().Str("addr", s.server.Addr).Msg("HTTP API listening")
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *HTTPServer) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

func (s *HTTPServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type workspaceResponse struct {
	models.Workspace
	DeskEquipmentCategories  []string `json:"desk_equipment_categories"`
	FloorEquipmentCategories []string `json:"floor_equipment_categories"`
}

func toWorkspaceResponse(ws models.Workspace) workspaceResponse {
	resp := workspaceResponse{Workspace: ws}
	for _, item := range ws.DeskEquipment {
		resp.DeskEquipmentCategories = append(resp.DeskEquipmentCategories, models.CategorizeEquipment(item))
	}
	for _, item := range ws.FloorEquipment {
		resp.FloorEquipmentCategories = append(resp.FloorEquipmentCategories, models.CategorizeEquipment(item))
	}
	return resp
}

func (s *HTTPServer) handleWorkspaces(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("workspaces")
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	workspaces := s.catalog.List()
	out := make([]workspaceResponse, 0, len(workspaces))
	for _, ws := range workspaces {
		out = append(out, toWorkspaceResponse(ws))
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"workspaces": out,
		"stats": map[string]any{
			"available": s.catalog.AvailableCount(),
			"total":     s.catalog.Len(),
			"floors":    s.catalog.Floors(),
		},
	})
}

func (s *HTTPServer) handleWorkspace(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("workspace")
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	const prefix = "/api/v1/workspaces/"
	id := strings.TrimSpace(strings.TrimPrefix(r.URL.Path, prefix))
	if id == "" || strings.Contains(id, "/") {
		writeError(w, http.StatusBadRequest, "workspace id is required")
		return
	}

	ws, err := s.catalog.Get(id)
	if err != nil {
		writeError(w, http.StatusNotFound, "workspace not found")
		return
	}

	writeJSON(w, http.StatusOK, toWorkspaceResponse(ws))
}

func (s *HTTPServer) handleReservations(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.listReservations(w, r)
	case http.MethodPost:
		s.createReservation(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *HTTPServer) listReservations(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("reservations_list")

	start, end, err := parseRange(r.URL.Query().Get("from"), r.URL.Query().Get("to"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	reservations, err := s.store.GetReservationsByRange(r.Context(), start, end)
	if err != nil {
		s.logger.Error().Err(err).Msg("list reservations")
		writeError(w, http.StatusInternalServerError, "failed to list reservations")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"reservations": reservations})
}

func (s *HTTPServer) createReservation(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("reservations_create")

	type request struct {
		WorkspaceID string `json:"workspace_id"`
		Duration    string `json:"duration"`
		Notes       string `json:"notes"`
	}

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	var body request
	if err := decoder.Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if body.WorkspaceID == "" {
		writeError(w, http.StatusBadRequest, "workspace_id is required")
		return
	}

	duration, err := models.ParseDuration(body.Duration)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	sess, err := s.manager.Open(r.Context(), body.WorkspaceID)
	if err != nil {
		if errors.Is(err, catalog.ErrWorkspaceNotFound) {
			writeError(w, http.StatusNotFound, "workspace not found")
			return
		}
		s.logger.Error().Err(err).Msg("open session")
		writeError(w, http.StatusInternalServerError, "failed to open session")
		return
	}
	defer func() {
		// Release the session unless it already reached a terminal state.
		if st := sess.State(); st != session.StateConfirmed && st != session.StateFailed && st != session.StateClosed {
			_ = sess.Close()
		}
	}()

	if err := sess.SelectDuration(duration); err != nil {
		s.writeSessionError(w, err)
		return
	}
	if body.Notes != "" {
		if err := sess.SetNotes(body.Notes); err != nil {
			s.writeSessionError(w, err)
			return
		}
	}

	window, err := sess.RequestConfirmation()
	if err != nil {
		s.writeSessionError(w, err)
		return
	}

	if err := sess.Submit(r.Context()); err != nil {
		s.writeSessionError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"session_id": sess.ID(),
		"state":      string(sess.State()),
		"window": map[string]any{
			"start": window.Start,
			"end":   window.End,
		},
	})
}

func (s *HTTPServer) writeSessionError(w http.ResponseWriter, err error) {
	var gatewayErr *session.GatewayError
	switch {
	case errors.Is(err, session.ErrWorkspaceUnavailable):
		writeError(w, http.StatusConflict, "workspace is currently occupied")
	case errors.Is(err, session.ErrMissingSelection), errors.Is(err, session.ErrInvalidInput):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.As(err, &gatewayErr):
		writeError(w, http.StatusBadGateway, gatewayErr.Error())
	default:
		s.logger.Error().Err(err).Msg("booking session error")
		writeError(w, http.StatusInternalServerError, "failed to create reservation")
	}
}

func (s *HTTPServer) handleExport(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("reservations_export")
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	start, end, err := parseRange(r.URL.Query().Get("from"), r.URL.Query().Get("to"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	reservations, err := s.store.GetReservationsByRange(r.Context(), start, end)
	if err != nil {
		s.logger.Error().Err(err).Msg("export reservations")
		writeError(w, http.StatusInternalServerError, "failed to load reservations")
		return
	}

	filePath, err := export.WriteReservationsReport(s.exportPath, start, end, reservations, &s.logger)
	if err != nil {
		s.logger.Error().Err(err).Msg("write export")
		writeError(w, http.StatusInternalServerError, "failed to write export")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"file_path": filePath,
		"count":     len(reservations),
	})
}

func parseRange(fromRaw, toRaw string) (time.Time, time.Time, error) {
	fromRaw = strings.TrimSpace(fromRaw)
	toRaw = strings.TrimSpace(toRaw)
	if fromRaw == "" || toRaw == "" {
		return time.Time{}, time.Time{}, fmt.Errorf("from and to are required")
	}

	start, err := time.Parse("2006-01-02", fromRaw)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid from date; expected YYYY-MM-DD")
	}
	end, err := time.Parse("2006-01-02", toRaw)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid to date; expected YYYY-MM-DD")
	}
	if !end.After(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("to must be after from")
	}
	return start, end, nil
}

func (s *HTTPServer) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(recorder, r)
		s.logger.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", recorder.status).
			Dur("duration", time.Since(start)).
			Msg("http request")
	})
}

func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, map[string]string{"error": message})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
