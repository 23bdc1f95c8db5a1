package handlers

import (
	"errors"
	"net/http"

	"github.com/Danthemainman1/debate-scheduler/middleware"
	"github.com/Danthemainman1/debate-scheduler/services"
)

type ScheduleHandler struct {
	scheduleService services.ScheduleService
	exportService   services.ExportService
}

func NewScheduleHandler(ss services.ScheduleService, es services.ExportService) *ScheduleHandler {
	return &ScheduleHandler{
		scheduleService: ss,
		exportService:   es,
	}
}

func (h *ScheduleHandler) callerAndTournament(w http.ResponseWriter, r *http.Request) (int, int, bool) {
	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, "authentication required")
		return 0, 0, false
	}
	tournamentID, err := urlIntParam(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, err)
		return 0, 0, false
	}
	return userID, tournamentID, true
}

// Generate handles POST /tournaments/{tournamentID}/schedule/generate.
func (h *ScheduleHandler) Generate(w http.ResponseWriter, r *http.Request) {
	userID, tournamentID, ok := h.callerAndTournament(w, r)
	if !ok {
		return
	}

	var opts services.GenerateOptions
	if err := readOptionalJSON(w, r, &opts); err != nil {
		badRequestResponse(w, err)
		return
	}

	tournament, err := h.scheduleService.Generate(r.Context(), userID, tournamentID, opts)
	if err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, jsonResponse{"tournament": tournament})
}

// Shuffle handles POST /tournaments/{tournamentID}/schedule/shuffle.
func (h *ScheduleHandler) Shuffle(w http.ResponseWriter, r *http.Request) {
	userID, tournamentID, ok := h.callerAndTournament(w, r)
	if !ok {
		return
	}

	var opts services.GenerateOptions
	if err := readOptionalJSON(w, r, &opts); err != nil {
		badRequestResponse(w, err)
		return
	}

	tournament, err := h.scheduleService.Shuffle(r.Context(), userID, tournamentID, opts)
	if err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, jsonResponse{"tournament": tournament})
}

// AssignVenues handles POST /tournaments/{tournamentID}/schedule/venues.
func (h *ScheduleHandler) AssignVenues(w http.ResponseWriter, r *http.Request) {
	userID, tournamentID, ok := h.callerAndTournament(w, r)
	if !ok {
		return
	}

	tournament, err := h.scheduleService.AssignVenues(r.Context(), userID, tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}

	writeJSON(w, http.StatusOK, jsonResponse{"tournament": tournament})
}

// AssignTimes handles POST /tournaments/{tournamentID}/schedule/times.
func (h *ScheduleHandler) AssignTimes(w http.ResponseWriter, r *http.Request) {
	userID, tournamentID, ok := h.callerAndTournament(w, r)
	if !ok {
		return
	}

	var input struct {
		BaseTime string `json:"base_time"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, err)
		return
	}
	if input.BaseTime == "" {
		badRequestResponse(w, errors.New("base_time is required"))
		return
	}

	tournament, err := h.scheduleService.AssignTimes(r.Context(), userID, tournamentID, input.BaseTime)
	if err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}

	writeJSON(w, http.StatusOK, jsonResponse{"tournament": tournament})
}

// GetFull handles GET /tournaments/{tournamentID}/schedule.
func (h *ScheduleHandler) GetFull(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := urlIntParam(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, err)
		return
	}

	tournament, err := h.scheduleService.GetFull(r.Context(), tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}

	writeJSON(w, http.StatusOK, jsonResponse{"tournament": tournament})
}

// UpdateRound handles PATCH /tournaments/{tournamentID}/rounds/{roundNumber}.
func (h *ScheduleHandler) UpdateRound(w http.ResponseWriter, r *http.Request) {
	userID, tournamentID, ok := h.callerAndTournament(w, r)
	if !ok {
		return
	}
	roundNumber, err := urlIntParam(r, "roundNumber")
	if err != nil {
		badRequestResponse(w, err)
		return
	}

	var input services.RoundUpdateInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, err)
		return
	}

	round, err := h.scheduleService.UpdateRound(r.Context(), userID, tournamentID, roundNumber, input)
	if err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}

	writeJSON(w, http.StatusOK, jsonResponse{"round": round})
}

// UpdateMatch handles PATCH /tournaments/{tournamentID}/matches/{matchID}.
func (h *ScheduleHandler) UpdateMatch(w http.ResponseWriter, r *http.Request) {
	userID, tournamentID, ok := h.callerAndTournament(w, r)
	if !ok {
		return
	}
	matchID, err := urlIntParam(r, "matchID")
	if err != nil {
		badRequestResponse(w, err)
		return
	}

	var input services.MatchUpdateInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, err)
		return
	}

	match, err := h.scheduleService.UpdateMatch(r.Context(), userID, tournamentID, matchID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}

	writeJSON(w, http.StatusOK, jsonResponse{"match": match})
}

// RecordResult handles POST /tournaments/{tournamentID}/matches/{matchID}/result.
func (h *ScheduleHandler) RecordResult(w http.ResponseWriter, r *http.Request) {
	userID, tournamentID, ok := h.callerAndTournament(w, r)
	if !ok {
		return
	}
	matchID, err := urlIntParam(r, "matchID")
	if err != nil {
		badRequestResponse(w, err)
		return
	}

	var input struct {
		WinnerID int `json:"winner_id"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, err)
		return
	}
	if input.WinnerID < 1 {
		badRequestResponse(w, errors.New("winner_id is required"))
		return
	}

	match, err := h.scheduleService.RecordResult(r.Context(), userID, tournamentID, matchID, input.WinnerID)
	if err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}

	writeJSON(w, http.StatusOK, jsonResponse{"match": match})
}

// Conflicts handles GET /tournaments/{tournamentID}/conflicts.
func (h *ScheduleHandler) Conflicts(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := urlIntParam(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, err)
		return
	}

	conflicts, err := h.scheduleService.Conflicts(r.Context(), tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}

	writeJSON(w, http.StatusOK, jsonResponse{"conflicts": conflicts})
}

// Standings handles GET /tournaments/{tournamentID}/standings.
func (h *ScheduleHandler) Standings(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := urlIntParam(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, err)
		return
	}

	standings, err := h.scheduleService.Standings(r.Context(), tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}

	writeJSON(w, http.StatusOK, jsonResponse{"standings": standings})
}

// Export handles GET /tournaments/{tournamentID}/export.
func (h *ScheduleHandler) Export(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := urlIntParam(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, err)
		return
	}

	doc, err := h.exportService.Document(r.Context(), tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}

	writeJSON(w, http.StatusOK, doc)
}

// ExportPrintable handles GET /tournaments/{tournamentID}/export/printable.
func (h *ScheduleHandler) ExportPrintable(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := urlIntParam(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, err)
		return
	}

	listing, err := h.exportService.Printable(r.Context(), tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(listing)); err != nil {
		serverErrorResponse(w, err)
	}
}

// Publish handles POST /tournaments/{tournamentID}/export/publish.
func (h *ScheduleHandler) Publish(w http.ResponseWriter, r *http.Request) {
	userID, tournamentID, ok := h.callerAndTournament(w, r)
	if !ok {
		return
	}

	result, err := h.exportService.Publish(r.Context(), userID, tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, jsonResponse{"upload": result})
}

// Import handles POST /tournaments/{tournamentID}/import.
func (h *ScheduleHandler) Import(w http.ResponseWriter, r *http.Request) {
	userID, tournamentID, ok := h.callerAndTournament(w, r)
	if !ok {
		return
	}

	raw, err := readRawBody(w, r)
	if err != nil {
		badRequestResponse(w, err)
		return
	}

	result, err := h.exportService.Import(r.Context(), userID, tournamentID, raw)
	if err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}

	writeJSON(w, http.StatusOK, jsonResponse{"import": result})
}
