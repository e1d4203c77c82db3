package handler

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/emersion/go-ical"
	"github.com/oapi-codegen/runtime"

	"github.com/gustavopolonio/nlw-journey/internal/api"
	"github.com/gustavopolonio/nlw-journey/internal/domain"
)

const (
	formatJSON = "json"
	formatCSV  = "csv"
	formatICS  = "ics"
)

// csvHeaders defines the column names written as the first row of any CSV export.
var csvHeaders = []string{
	"trip_id", "destination", "trip_starts_at", "trip_ends_at", "trip_is_confirmed",
	"activity_id", "activity_title", "occurs_at",
}

// GetExport handles GET /trips/{tripId}/export.
// ?format=csv returns CSV, ?format=ics an iCalendar file; the default is JSON.
func (s *Server) GetExport(w http.ResponseWriter, r *http.Request) {
	tripID, err := pathUUID(r, "tripId")
	if err != nil {
		s.fail(w, r, err, msgTripNotFound)
		return
	}
	var format *string
	if err := runtime.BindQueryParameter("form", true, false, "format", r.URL.Query(), &format); err != nil {
		s.fail(w, r, fmt.Errorf("%w: format", errBadParam), msgTripNotFound)
		return
	}
	want := formatJSON
	if format != nil {
		want = *format
	}
	if want != formatJSON && want != formatCSV && want != formatICS {
		s.fail(w, r, fmt.Errorf("%w: format must be one of json, csv, ics", errBadParam), msgTripNotFound)
		return
	}

	trip, rows, err := s.export.Export(r.Context(), tripID)
	if err != nil {
		s.fail(w, r, err, msgTripNotFound)
		return
	}

	switch want {
	case formatCSV:
		writeAttachment(w, "text/csv", "itinerary.csv", buildCSV(rows))
	case formatICS:
		body, err := buildICS(trip, rows, time.Now())
		if err != nil {
			s.fail(w, r, err, msgTripNotFound)
			return
		}
		writeAttachment(w, "text/calendar", "itinerary.ics", body)
	default:
		writeJSON(w, http.StatusOK, api.ItineraryResponse{Rows: api.FromItinerary(rows)})
	}
}

func writeAttachment(w http.ResponseWriter, contentType, filename string, body []byte) {
	w.Header().Set("Content-Type", contentType+"; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(http.StatusOK)
	//nolint:errcheck
	w.Write(body)
}

// buildCSV encodes rows as CSV. Nil times are encoded as empty strings.
func buildCSV(rows []domain.ItineraryRow) []byte {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	//nolint:errcheck // bytes.Buffer.Write never returns an error.
	w.Write(csvHeaders)
	for _, r := range rows {
		//nolint:errcheck
		w.Write([]string{
			r.TripID,
			r.Destination,
			r.TripStartsAt,
			r.TripEndsAt,
			strconv.FormatBool(r.TripIsConfirmed),
			r.ActivityID,
			r.ActivityTitle,
			formatOptionalTime(r.OccursAt),
		})
	}
	w.Flush()
	return buf.Bytes()
}

// buildICS renders the trip as an all-day event spanning its dates plus one
// timed event per activity.
func buildICS(trip domain.Trip, rows []domain.ItineraryRow, now time.Time) ([]byte, error) {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, "-//plann.er//itinerary//EN")

	tripEvent := ical.NewEvent()
	tripEvent.Props.SetText(ical.PropUID, trip.ID.String()+"@plann.er")
	tripEvent.Props.SetDateTime(ical.PropDateTimeStamp, now.UTC())
	tripEvent.Props.SetDate(ical.PropDateTimeStart, domain.Day(trip.StartsAt))
	// DTEND of an all-day event is exclusive.
	tripEvent.Props.SetDate(ical.PropDateTimeEnd, domain.Day(trip.EndsAt).AddDate(0, 0, 1))
	tripEvent.Props.SetText(ical.PropSummary, "Trip to "+trip.Destination)
	cal.Children = append(cal.Children, tripEvent.Component)

	for _, r := range rows {
		if r.OccursAt == nil {
			continue
		}
		ev := ical.NewEvent()
		ev.Props.SetText(ical.PropUID, r.ActivityID+"@plann.er")
		ev.Props.SetDateTime(ical.PropDateTimeStamp, now.UTC())
		ev.Props.SetDateTime(ical.PropDateTimeStart, r.OccursAt.UTC())
		ev.Props.SetText(ical.PropSummary, r.ActivityTitle)
		ev.Props.SetText(ical.PropLocation, trip.Destination)
		cal.Children = append(cal.Children, ev.Component)
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, fmt.Errorf("handler.buildICS: %w", err)
	}
	return buf.Bytes(), nil
}

// formatOptionalTime returns the RFC3339 representation of t, or "" if t is nil.
func formatOptionalTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
