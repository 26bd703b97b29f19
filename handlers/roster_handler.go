package handlers

import (
	"errors"
	"net/http"

	"github.com/Dosada05/matchday-system/services"
)

type RosterHandler struct {
	rosterService services.RosterService
}

func NewRosterHandler(rosterService services.RosterService) *RosterHandler {
	return &RosterHandler{rosterService: rosterService}
}

func (h *RosterHandler) GetRoster(w http.ResponseWriter, r *http.Request) {
	matchID, err := urlParam(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	view, err := h.rosterService.View(r.Context(), matchID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"roster": view}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// InvitePlayer lets a team manager invite a player to the match roster.
// POST /matches/{matchID}/invitations
func (h *RosterHandler) InvitePlayer(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFrom(r)
	if !ok {
		unauthorizedResponse(w, r, "authentication required")
		return
	}

	matchID, err := urlParam(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input struct {
		TeamID   string `json:"team_id"`
		PlayerID string `json:"player_id"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if input.TeamID == "" || input.PlayerID == "" {
		badRequestResponse(w, r, errors.New("team_id and player_id are required"))
		return
	}

	invitation, err := h.rosterService.InvitePlayer(r.Context(), session, matchID, input.TeamID, input.PlayerID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"invitation": invitation}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// RespondInvitation accepts or declines the caller's own invitation.
// POST /invitations/{invitationID}/respond
func (h *RosterHandler) RespondInvitation(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFrom(r)
	if !ok {
		unauthorizedResponse(w, r, "authentication required")
		return
	}

	invitationID, err := urlParam(r, "invitationID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input struct {
		Accept bool `json:"accept"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.rosterService.RespondInvitation(r.Context(), session, invitationID, input.Accept); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Apply lets an external player apply to join an open match.
// POST /matches/{matchID}/applications
func (h *RosterHandler) Apply(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFrom(r)
	if !ok {
		unauthorizedResponse(w, r, "authentication required")
		return
	}

	matchID, err := urlParam(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.rosterService.Apply(r.Context(), session, matchID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
}

// RespondApplication lets the match manager accept or reject an application.
// POST /matches/{matchID}/applications/{playerID}/respond
func (h *RosterHandler) RespondApplication(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFrom(r)
	if !ok {
		unauthorizedResponse(w, r, "authentication required")
		return
	}

	matchID, err := urlParam(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	playerID, err := urlParam(r, "playerID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input struct {
		Accept bool `json:"accept"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.rosterService.RespondApplication(r.Context(), session, matchID, playerID, input.Accept); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// RemovePlayer lets the match manager drop a confirmed player before kickoff.
// DELETE /matches/{matchID}/roster/{playerID}
func (h *RosterHandler) RemovePlayer(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFrom(r)
	if !ok {
		unauthorizedResponse(w, r, "authentication required")
		return
	}

	matchID, err := urlParam(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	playerID, err := urlParam(r, "playerID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.rosterService.RemovePlayer(r.Context(), session, matchID, playerID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Challenge lets a manager challenge a match that is waiting for an opponent.
// POST /matches/{matchID}/challenges
func (h *RosterHandler) Challenge(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFrom(r)
	if !ok {
		unauthorizedResponse(w, r, "authentication required")
		return
	}

	matchID, err := urlParam(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	challenge, err := h.rosterService.Challenge(r.Context(), session, matchID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"challenge": challenge}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// RespondChallenge lets the host manager accept or decline a pending challenge.
// POST /challenges/{challengeID}/respond
func (h *RosterHandler) RespondChallenge(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFrom(r)
	if !ok {
		unauthorizedResponse(w, r, "authentication required")
		return
	}

	challengeID, err := urlParam(r, "challengeID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input struct {
		Accept bool `json:"accept"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.rosterService.RespondChallenge(r.Context(), session, challengeID, input.Accept); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
