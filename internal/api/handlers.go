package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/lox/koppen/internal/hythergraph"
	"github.com/lox/koppen/internal/koppen"
	"github.com/lox/koppen/internal/metrics"
	"github.com/lox/koppen/internal/models"
)

// ClassifyRequest is the body of POST /api/classify and POST /hythergraph:
// one location's year of monthly observations.
type ClassifyRequest struct {
	Name     string    `json:"name"`
	Southern bool      `json:"southern"`
	Precip   []float64 `json:"precip"`
	Temp     []float64 `json:"temp"`
}

// ClassifyResponse carries the code together with the statistics and
// threshold it was derived from, for reporting consumers.
type ClassifyResponse struct {
	Name      string       `json:"name,omitempty"`
	Code      string       `json:"code"`
	Threshold float64      `json:"threshold"`
	Stats     koppen.Stats `json:"stats"`
}

func (s *Server) handleClassify(w http.ResponseWriter, r *http.Request) {
	var req ClassifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("decode request: %w", err))
		return
	}

	res, err := koppen.Classify(req.Precip, req.Temp, req.Southern)
	if err != nil {
		writeError(w, statusForError(err), err)
		return
	}
	s.recordResult(req.Name, res)

	if r.URL.Query().Get("save") == "1" {
		if req.Name == "" {
			writeError(w, http.StatusBadRequest, errors.New("save requires a location name"))
			return
		}
		loc := models.Location{
			Name:      req.Name,
			Southern:  req.Southern,
			Precip:    req.Precip,
			Temp:      req.Temp,
			Code:      res.Code,
			Threshold: res.Threshold,
			TempMean:  res.Stats.TempMean,
			PrecipSum: res.Stats.PrecipSum,
		}
		if err := s.store.SaveLocation(loc); err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
	}

	writeJSON(w, http.StatusOK, ClassifyResponse{
		Name:      req.Name,
		Code:      res.Code,
		Threshold: res.Threshold,
		Stats:     res.Stats,
	})
}

func (s *Server) handleListLocations(w http.ResponseWriter, r *http.Request) {
	var (
		locations []models.Location
		err       error
	)
	if code := r.URL.Query().Get("code"); code != "" {
		locations, err = s.store.ListLocationsByCode(code)
	} else {
		locations, err = s.store.ListLocations()
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if locations == nil {
		locations = []models.Location{}
	}
	writeJSON(w, http.StatusOK, locations)
}

func (s *Server) handleGetLocation(w http.ResponseWriter, r *http.Request) {
	loc, err := s.store.GetLocation(r.PathValue("name"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if loc == nil {
		writeError(w, http.StatusNotFound, errors.New("location not found"))
		return
	}
	writeJSON(w, http.StatusOK, loc)
}

func (s *Server) handleDeleteLocation(w http.ResponseWriter, r *http.Request) {
	deleted, err := s.store.DeleteLocation(r.PathValue("name"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if !deleted {
		writeError(w, http.StatusNotFound, errors.New("location not found"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleHythergraph(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		writeError(w, http.StatusBadRequest, errors.New("name query parameter required"))
		return
	}

	loc, err := s.store.GetLocation(name)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if loc == nil {
		writeError(w, http.StatusNotFound, errors.New("location not found"))
		return
	}

	title := fmt.Sprintf("%s (%s)", loc.Name, loc.Code)
	s.writeHythergraph(w, loc.Precip, loc.Temp, title)
}

func (s *Server) handleHythergraphPost(w http.ResponseWriter, r *http.Request) {
	var req ClassifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("decode request: %w", err))
		return
	}
	title := req.Name
	if title == "" {
		title = "Climograph"
	}
	s.writeHythergraph(w, req.Precip, req.Temp, title)
}

func (s *Server) writeHythergraph(w http.ResponseWriter, precip, temp []float64, title string) {
	data, err := hythergraph.RenderPNG(precip, temp, title)
	if err != nil {
		writeError(w, statusForError(err), err)
		return
	}
	metrics.HythergraphsRendered.Inc()
	w.Header().Set("Content-Type", "image/png")
	w.Write(data)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// recordResult bumps the classification counters and logs fallback codes.
// An Unknown result means the rule table did not cover the derived
// statistics, which should not happen for physically realizable inputs.
func (s *Server) recordResult(name string, res koppen.Result) {
	metrics.ClassificationsTotal.WithLabelValues(res.Group()).Inc()
	if res.Code == koppen.CodeUnknown {
		metrics.UnknownClassificationsTotal.Inc()
		s.log.Warnw("classification fell through every group rule",
			"name", name,
			"temp_min", res.Stats.TempMin,
			"temp_max", res.Stats.TempMax,
			"precip_sum", res.Stats.PrecipSum,
			"threshold", res.Threshold,
		)
	}
}

func statusForError(err error) int {
	if errors.Is(err, koppen.ErrInvalidInput) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
