package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/samber/lo"

	"github.com/shubhamdevjs/Reddit-Masterming/internal/core"
	"github.com/shubhamdevjs/Reddit-Masterming/internal/demo"
	"github.com/shubhamdevjs/Reddit-Masterming/internal/input"
	"github.com/shubhamdevjs/Reddit-Masterming/internal/persistence/campaigns"
	"github.com/shubhamdevjs/Reddit-Masterming/internal/pipeline"
	"github.com/shubhamdevjs/Reddit-Masterming/internal/planner"
)

const maxBodySize = 1 << 20

func (s *Server) listCampaigns(w http.ResponseWriter, r *http.Request) {
	list, err := s.Campaigns.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, lo.Map(list, func(c core.Campaign, _ int) campaignSummary {
		return newCampaignSummary(c)
	}))
}

func (s *Server) createCampaign(w http.ResponseWriter, r *http.Request) {
	var in input.Input
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize)).Decode(&in); err != nil {
		writeError(w, r, fmt.Errorf("%w: %w", input.ErrInvalidInput, err))
		return
	}

	in = in.Normalize()
	if err := in.Validate(); err != nil {
		writeError(w, r, err)
		return
	}

	campaign, err := s.Pipeline.Create(r.Context(), in.CampaignInput())
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := s.Campaigns.Put(r.Context(), campaign); err != nil {
		writeError(w, r, err)
		return
	}

	logger(r.Context()).Info("campaign created", "id", campaign.ID, "posts", len(campaign.Posts))
	writeJSON(w, http.StatusCreated, newCampaignResponse(campaign))
}

func (s *Server) createDemoCampaign(w http.ResponseWriter, r *http.Request) {
	campaign := demo.Campaign(time.Now())

	if err := s.Campaigns.Put(r.Context(), campaign); err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, newCampaignResponse(campaign))
}

func (s *Server) getCampaign(w http.ResponseWriter, r *http.Request) {
	campaign, err := s.Campaigns.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, newCampaignResponse(campaign))
}

// deleteCampaign removes the local snapshot. The backend copy, if any, is removed best-effort.
func (s *Server) deleteCampaign(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	campaign, err := s.Campaigns.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := s.Campaigns.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}

	if campaign.BackendID != "" {
		if err := s.Pipeline.Delete(r.Context(), campaign.BackendID); err != nil {
			logger(r.Context()).Warn("failed to delete campaign on the backend", "id", id, "backend_id", campaign.BackendID, "error", err)
		}
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) getCalendar(w http.ResponseWriter, r *http.Request) {
	campaign, err := s.Campaigns.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	cal, err := planner.Calendar(r.Context(), campaign)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, newCalendarResponse(campaign.ID, cal))
}

func (s *Server) getWeek(w http.ResponseWriter, r *http.Request) {
	n, err := strconv.Atoi(chi.URLParam(r, "week"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: "week must be a number"})
		return
	}

	campaign, err := s.Campaigns.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	week, err := planner.WeekView(r.Context(), campaign, n)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, newWeekResponse(week))
}

type errorResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body) //nolint:errcheck
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	message := err.Error()

	switch {
	case errors.Is(err, campaigns.ErrNotFound), errors.Is(err, campaigns.ErrInvalidID):
		status = http.StatusNotFound
	case errors.Is(err, planner.ErrWeekOutOfRange):
		status = http.StatusNotFound
	case errors.Is(err, input.ErrInvalidInput):
		status = http.StatusBadRequest
	case errors.Is(err, pipeline.ErrBackend):
		status = http.StatusBadGateway
	default:
		message = http.StatusText(status)
	}

	if status >= http.StatusInternalServerError {
		logger(r.Context()).Error("request failed", "status", status, "error", err)
	}

	writeJSON(w, status, errorResponse{Message: message})
}
