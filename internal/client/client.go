// Package client is a Go client for the plann.er HTTP API, plus the
// trip-creation workflow a front end drives before it talks to the server.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/gustavopolonio/nlw-journey/internal/api"
)

// APIError is a non-2xx answer from the server.
type APIError struct {
	Status  int
	Message string
	Fields  map[string][]string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %d %s", e.Status, e.Message)
}

// Client calls the plann.er API. The zero value is not usable; use New.
type Client struct {
	baseURL string
	http    *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// New returns a Client for the API served at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ---- trips -----------------------------------------------------------------

func (c *Client) CreateTrip(ctx context.Context, req api.CreateTripRequest) (uuid.UUID, error) {
	var resp api.TripIDResponse
	if err := c.do(ctx, http.MethodPost, "/trips", req, &resp); err != nil {
		return uuid.Nil, fmt.Errorf("client.CreateTrip: %w", err)
	}
	return resp.TripID, nil
}

func (c *Client) GetTrip(ctx context.Context, tripID uuid.UUID) (api.Trip, error) {
	var resp api.TripResponse
	if err := c.do(ctx, http.MethodGet, "/trips/"+tripID.String(), nil, &resp); err != nil {
		return api.Trip{}, fmt.Errorf("client.GetTrip: %w", err)
	}
	return resp.Trip, nil
}

func (c *Client) UpdateTrip(ctx context.Context, tripID uuid.UUID, req api.UpdateTripRequest) error {
	if err := c.do(ctx, http.MethodPut, "/trips/"+tripID.String(), req, nil); err != nil {
		return fmt.Errorf("client.UpdateTrip: %w", err)
	}
	return nil
}

// ConfirmTrip follows the owner's confirmation link and returns the web page
// the server redirects to.
func (c *Client) ConfirmTrip(ctx context.Context, tripID uuid.UUID) (string, error) {
	loc, err := c.confirm(ctx, "/trips/"+tripID.String()+"/confirm")
	if err != nil {
		return "", fmt.Errorf("client.ConfirmTrip: %w", err)
	}
	return loc, nil
}

// Export downloads the itinerary in format (json, csv or ics) as raw bytes.
func (c *Client) Export(ctx context.Context, tripID uuid.UUID, format string) ([]byte, error) {
	path := "/trips/" + tripID.String() + "/export?format=" + url.QueryEscape(format)
	req, err := c.newRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, fmt.Errorf("client.Export: %w", err)
	}
	res, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("client.Export: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode >= http.StatusBadRequest {
		return nil, fmt.Errorf("client.Export: %w", readAPIError(res))
	}
	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("client.Export: read body: %w", err)
	}
	return body, nil
}

// ---- participants ----------------------------------------------------------

func (c *Client) Invite(ctx context.Context, tripID uuid.UUID, emails []string) ([]uuid.UUID, error) {
	var resp api.ParticipantIDsResponse
	req := api.InviteRequest{EmailsToInvite: emails}
	if err := c.do(ctx, http.MethodPost, "/trips/"+tripID.String()+"/invite", req, &resp); err != nil {
		return nil, fmt.Errorf("client.Invite: %w", err)
	}
	return resp.ParticipantsID, nil
}

func (c *Client) ListParticipants(ctx context.Context, tripID uuid.UUID) ([]api.Participant, error) {
	var resp api.ParticipantsResponse
	if err := c.do(ctx, http.MethodGet, "/trips/"+tripID.String()+"/participants", nil, &resp); err != nil {
		return nil, fmt.Errorf("client.ListParticipants: %w", err)
	}
	return resp.Participants, nil
}

func (c *Client) GetParticipant(ctx context.Context, id uuid.UUID) (api.Participant, error) {
	var resp api.ParticipantResponse
	if err := c.do(ctx, http.MethodGet, "/participants/"+id.String(), nil, &resp); err != nil {
		return api.Participant{}, fmt.Errorf("client.GetParticipant: %w", err)
	}
	return resp.Participant, nil
}

func (c *Client) ConfirmParticipant(ctx context.Context, id uuid.UUID) (string, error) {
	loc, err := c.confirm(ctx, "/participants/"+id.String()+"/confirm")
	if err != nil {
		return "", fmt.Errorf("client.ConfirmParticipant: %w", err)
	}
	return loc, nil
}

func (c *Client) DeleteParticipant(ctx context.Context, id uuid.UUID) error {
	if err := c.do(ctx, http.MethodDelete, "/participants/"+id.String(), nil, nil); err != nil {
		return fmt.Errorf("client.DeleteParticipant: %w", err)
	}
	return nil
}

// ---- activities ------------------------------------------------------------

func (c *Client) CreateActivity(ctx context.Context, tripID uuid.UUID, req api.CreateActivityRequest) (uuid.UUID, error) {
	var resp api.ActivityIDResponse
	if err := c.do(ctx, http.MethodPost, "/trips/"+tripID.String()+"/activity", req, &resp); err != nil {
		return uuid.Nil, fmt.Errorf("client.CreateActivity: %w", err)
	}
	return resp.ActivityID, nil
}

func (c *Client) ListActivities(ctx context.Context, tripID uuid.UUID) ([]api.ActivityDay, error) {
	var resp api.ActivitiesResponse
	if err := c.do(ctx, http.MethodGet, "/trips/"+tripID.String()+"/activity", nil, &resp); err != nil {
		return nil, fmt.Errorf("client.ListActivities: %w", err)
	}
	return resp.Activities, nil
}

func (c *Client) DeleteActivity(ctx context.Context, id uuid.UUID) error {
	if err := c.do(ctx, http.MethodDelete, "/activities/"+id.String(), nil, nil); err != nil {
		return fmt.Errorf("client.DeleteActivity: %w", err)
	}
	return nil
}

// ---- links -----------------------------------------------------------------

func (c *Client) CreateLink(ctx context.Context, tripID uuid.UUID, req api.CreateLinkRequest) (uuid.UUID, error) {
	var resp api.LinkIDResponse
	if err := c.do(ctx, http.MethodPost, "/trips/"+tripID.String()+"/link", req, &resp); err != nil {
		return uuid.Nil, fmt.Errorf("client.CreateLink: %w", err)
	}
	return resp.LinkID, nil
}

func (c *Client) ListLinks(ctx context.Context, tripID uuid.UUID) ([]api.Link, error) {
	var resp api.LinksResponse
	if err := c.do(ctx, http.MethodGet, "/trips/"+tripID.String()+"/link", nil, &resp); err != nil {
		return nil, fmt.Errorf("client.ListLinks: %w", err)
	}
	return resp.Links, nil
}

func (c *Client) DeleteLink(ctx context.Context, id uuid.UUID) error {
	if err := c.do(ctx, http.MethodDelete, "/links/"+id.String(), nil, nil); err != nil {
		return fmt.Errorf("client.DeleteLink: %w", err)
	}
	return nil
}

// ---- transport -------------------------------------------------------------

func (c *Client) newRequest(ctx context.Context, method, path string, body any) (*http.Request, error) {
	var r io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode body: %w", err)
		}
		r = bytes.NewReader(buf)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, r)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	return req, nil
}

// do sends a JSON request and decodes a JSON answer into out when out is
// non-nil. Non-2xx answers become *APIError.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		return err
	}
	res, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode >= http.StatusBadRequest {
		return readAPIError(res)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// confirm requests a confirmation link without following its redirect.
func (c *Client) confirm(ctx context.Context, path string) (string, error) {
	req, err := c.newRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return "", err
	}
	hc := *c.http
	hc.CheckRedirect = func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}
	res, err := hc.Do(req)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()

	if res.StatusCode >= http.StatusBadRequest {
		return "", readAPIError(res)
	}
	if res.StatusCode != http.StatusFound {
		return "", fmt.Errorf("unexpected status %d", res.StatusCode)
	}
	return res.Header.Get("Location"), nil
}

func readAPIError(res *http.Response) error {
	apiErr := &APIError{Status: res.StatusCode, Message: http.StatusText(res.StatusCode)}
	var body api.ErrorResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err == nil && body.Message != "" {
		apiErr.Message = body.Message
		apiErr.Fields = body.Errors
	}
	return apiErr
}

// IsNotFound reports whether err is a 404 from the API.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}
