package app

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/aptwatch/internal/scrape"
)

// Router exposes the snapshot over HTTP. Every request fetches the page
// afresh; nothing is stored between requests.
func (a *App) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/health", a.handleHealth).Methods(http.MethodGet)
	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/snapshot", a.handleSnapshot).Methods(http.MethodGet)
	api.HandleFunc("/available", a.handleAvailable).Methods(http.MethodGet)
	return r
}

// Serve listens on cfg.ListenAddr until ctx is cancelled.
func (a *App) Serve(ctx context.Context) error {
	srv := &http.Server{
		Addr:              a.cfg.ListenAddr,
		Handler:           a.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("serving")
		errc <- srv.ListenAndServe()
	}()
	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

func (a *App) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

func (a *App) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	var beds []int
	for _, v := range r.URL.Query()["beds"] {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "beds must be a non-negative integer")
			return
		}
		beds = append(beds, n)
	}
	snap, err := a.Snapshot(r.Context())
	if err != nil {
		a.upstreamError(w, err)
		return
	}
	snap.Categories = scrape.CategoriesWithBedrooms(snap, beds)
	if snap.Categories == nil {
		snap.Categories = []scrape.Category{}
	}
	writeJSONResponse(w, http.StatusOK, snap)
}

type availableResponse struct {
	SourceURL  string             `json:"source_url"`
	FloorPlans []scrape.FloorPlan `json:"floor_plans"`
}

func (a *App) handleAvailable(w http.ResponseWriter, r *http.Request) {
	names := r.URL.Query()["plan"]
	if len(names) == 0 {
		writeError(w, http.StatusBadRequest, "at least one plan parameter is required")
		return
	}
	snap, err := a.Snapshot(r.Context())
	if err != nil {
		a.upstreamError(w, err)
		return
	}
	plans := scrape.AvailablePlans(snap, names)
	if plans == nil {
		plans = []scrape.FloorPlan{}
	}
	writeJSONResponse(w, http.StatusOK, availableResponse{SourceURL: snap.SourceURL, FloorPlans: plans})
}

func (a *App) upstreamError(w http.ResponseWriter, err error) {
	log.Error().Err(err).Msg("snapshot failed")
	writeError(w, http.StatusBadGateway, err.Error())
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSONResponse(w, status, map[string]string{"error": msg})
}

func writeJSONResponse(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := writeJSON(w, v); err != nil {
		log.Warn().Err(err).Msg("write response")
	}
}
