package handlers

import (
	"net/http"

	"github.com/Danthemainman1/debate-scheduler/middleware"
	"github.com/Danthemainman1/debate-scheduler/services"
)

type TeamHandler struct {
	teamService services.TeamService
}

func NewTeamHandler(ts services.TeamService) *TeamHandler {
	return &TeamHandler{teamService: ts}
}

// List handles GET /tournaments/{tournamentID}/teams.
func (h *TeamHandler) List(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := urlIntParam(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, err)
		return
	}

	teams, err := h.teamService.List(r.Context(), tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}

	writeJSON(w, http.StatusOK, jsonResponse{"teams": teams})
}

// Add handles POST /tournaments/{tournamentID}/teams.
func (h *TeamHandler) Add(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, "authentication required")
		return
	}

	tournamentID, err := urlIntParam(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, err)
		return
	}

	var input services.TeamInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, err)
		return
	}

	team, err := h.teamService.Add(r.Context(), userID, tournamentID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, jsonResponse{"team": team})
}

// Update handles PATCH /tournaments/{tournamentID}/teams/{teamID}.
func (h *TeamHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, "authentication required")
		return
	}

	tournamentID, err := urlIntParam(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, err)
		return
	}
	teamID, err := urlIntParam(r, "teamID")
	if err != nil {
		badRequestResponse(w, err)
		return
	}

	var input services.TeamInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, err)
		return
	}

	team, err := h.teamService.Update(r.Context(), userID, tournamentID, teamID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}

	writeJSON(w, http.StatusOK, jsonResponse{"team": team})
}

// Remove handles DELETE /tournaments/{tournamentID}/teams/{teamID}.
func (h *TeamHandler) Remove(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, "authentication required")
		return
	}

	tournamentID, err := urlIntParam(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, err)
		return
	}
	teamID, err := urlIntParam(r, "teamID")
	if err != nil {
		badRequestResponse(w, err)
		return
	}

	if err := h.teamService.Remove(r.Context(), userID, tournamentID, teamID); err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
