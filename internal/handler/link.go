package handler

import (
	"net/http"
	"strings"

	"github.com/gustavopolonio/nlw-journey/internal/api"
	"github.com/gustavopolonio/nlw-journey/internal/domain"
)

const msgLinkNotFound = "Link not found"

// CreateLink handles POST /trips/{tripId}/link.
func (s *Server) CreateLink(w http.ResponseWriter, r *http.Request) {
	tripID, err := pathUUID(r, "tripId")
	if err != nil {
		s.fail(w, r, err, msgTripNotFound)
		return
	}
	var body api.CreateLinkRequest
	if err := decodeBody(r, &body, func(b *api.CreateLinkRequest) {
		b.Title = strings.TrimSpace(b.Title)
		b.URL = strings.TrimSpace(b.URL)
	}); err != nil {
		s.fail(w, r, err, msgTripNotFound)
		return
	}

	link, err := s.links.Create(r.Context(), domain.Link{TripID: tripID, Title: body.Title, URL: body.URL})
	if err != nil {
		s.fail(w, r, err, msgTripNotFound)
		return
	}
	writeJSON(w, http.StatusCreated, api.LinkIDResponse{LinkID: link.ID})
}

// ListLinks handles GET /trips/{tripId}/link.
func (s *Server) ListLinks(w http.ResponseWriter, r *http.Request) {
	tripID, err := pathUUID(r, "tripId")
	if err != nil {
		s.fail(w, r, err, msgTripNotFound)
		return
	}
	links, err := s.links.ListByTripID(r.Context(), tripID)
	if err != nil {
		s.fail(w, r, err, msgTripNotFound)
		return
	}
	writeJSON(w, http.StatusOK, api.LinksResponse{Links: api.FromLinks(links)})
}

// DeleteLink handles DELETE /links/{linkId}.
func (s *Server) DeleteLink(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "linkId")
	if err != nil {
		s.fail(w, r, err, msgLinkNotFound)
		return
	}
	if err := s.links.Delete(r.Context(), id); err != nil {
		s.fail(w, r, err, msgLinkNotFound)
		return
	}
	writeJSON(w, http.StatusOK, api.LinkIDResponse{LinkID: id})
}
