package handler

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/gustavopolonio/nlw-journey/internal/api"
)

const msgParticipantNotFound = "Participant not found"

// InviteParticipants handles POST /trips/{tripId}/invite.
func (s *Server) InviteParticipants(w http.ResponseWriter, r *http.Request) {
	tripID, err := pathUUID(r, "tripId")
	if err != nil {
		s.fail(w, r, err, msgTripNotFound)
		return
	}
	var body api.InviteRequest
	if err := decodeBody(r, &body, func(b *api.InviteRequest) {
		for i, e := range b.EmailsToInvite {
			b.EmailsToInvite[i] = strings.TrimSpace(e)
		}
	}); err != nil {
		s.fail(w, r, err, msgTripNotFound)
		return
	}

	created, err := s.participants.Invite(r.Context(), tripID, body.EmailsToInvite)
	if err != nil {
		s.fail(w, r, err, msgTripNotFound)
		return
	}
	resp := api.ParticipantIDsResponse{ParticipantsID: make([]uuid.UUID, len(created))}
	for i, p := range created {
		resp.ParticipantsID[i] = p.ID
	}
	writeJSON(w, http.StatusCreated, resp)
}

// ListParticipants handles GET /trips/{tripId}/participants.
func (s *Server) ListParticipants(w http.ResponseWriter, r *http.Request) {
	tripID, err := pathUUID(r, "tripId")
	if err != nil {
		s.fail(w, r, err, msgTripNotFound)
		return
	}
	participants, err := s.participants.ListByTripID(r.Context(), tripID)
	if err != nil {
		s.fail(w, r, err, msgTripNotFound)
		return
	}
	writeJSON(w, http.StatusOK, api.ParticipantsResponse{Participants: api.FromParticipants(participants)})
}

// GetParticipant handles GET /participants/{participantId}.
func (s *Server) GetParticipant(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "participantId")
	if err != nil {
		s.fail(w, r, err, msgParticipantNotFound)
		return
	}
	p, err := s.participants.GetByID(r.Context(), id)
	if err != nil {
		s.fail(w, r, err, msgParticipantNotFound)
		return
	}
	writeJSON(w, http.StatusOK, api.ParticipantResponse{Participant: api.FromParticipant(p)})
}

// ConfirmParticipant handles GET /participants/{participantId}/confirm.
// It is opened from an invitation email and redirects to the trip page.
func (s *Server) ConfirmParticipant(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "participantId")
	if err != nil {
		s.fail(w, r, err, msgParticipantNotFound)
		return
	}
	p, err := s.participants.Confirm(r.Context(), id)
	if err != nil {
		s.fail(w, r, err, msgParticipantNotFound)
		return
	}
	http.Redirect(w, r, s.tripPage(p.TripID.String()), http.StatusFound)
}

// DeleteParticipant handles DELETE /participants/{participantId}.
func (s *Server) DeleteParticipant(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "participantId")
	if err != nil {
		s.fail(w, r, err, msgParticipantNotFound)
		return
	}
	if err := s.participants.Delete(r.Context(), id); err != nil {
		s.fail(w, r, err, msgParticipantNotFound)
		return
	}
	writeJSON(w, http.StatusOK, api.ParticipantIDResponse{ParticipantID: id})
}
