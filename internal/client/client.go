// Package client is a typed HTTP client for the rights service API.
package client

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/knowyourrights/cards/server/internal/model"
)

// APIError is a non-2xx response. It unwraps to the matching model sentinel
// so callers can use errors.Is(err, model.ErrNotFound).
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("http %d: %s", e.Status, e.Message)
}

func (e *APIError) Unwrap() error {
	switch e.Status {
	case http.StatusBadRequest:
		return model.ErrInvalidArgument
	case http.StatusNotFound:
		return model.ErrNotFound
	case http.StatusConflict:
		return model.ErrConflict
	}
	return nil
}

type errorBody struct {
	Error   string `json:"error"`
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type Client struct {
	http *resty.Client
}

// New returns a client for the service at baseURL.
func New(baseURL string) *Client {
	c := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(15*time.Second).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetError(&errorBody{})
	return &Client{http: c}
}

// do executes req and decodes a successful body into result.
func (c *Client) do(ctx context.Context, method, path string, query map[string]string, body, result interface{}) error {
	req := c.http.R().SetContext(ctx).SetQueryParams(query)
	if body != nil {
		req.SetBody(body)
	}
	if result != nil {
		req.SetResult(result)
	}
	resp, err := req.Execute(method, path)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	if resp.IsError() {
		msg := resp.String()
		if eb, ok := resp.Error().(*errorBody); ok && eb.Message != "" {
			msg = eb.Message
		}
		return &APIError{Status: resp.StatusCode(), Message: msg}
	}
	return nil
}

type userEnvelope struct {
	User    *model.User         `json:"user"`
	Outcome model.LookupOutcome `json:"outcome,omitempty"`
}

func (c *Client) FindOrCreateUser(ctx context.Context, userID, farcasterID string) (*model.User, model.LookupOutcome, error) {
	q := map[string]string{}
	if userID != "" {
		q["userId"] = userID
	}
	if farcasterID != "" {
		q["farcasterId"] = farcasterID
	}
	var out userEnvelope
	if err := c.do(ctx, http.MethodGet, "/api/user", q, nil, &out); err != nil {
		return nil, "", err
	}
	return out.User, out.Outcome, nil
}

func (c *Client) UpdateUser(ctx context.Context, userID string, patch model.UserPatch) (*model.User, error) {
	var out userEnvelope
	body := map[string]interface{}{"userId": userID, "updates": patch}
	if err := c.do(ctx, http.MethodPut, "/api/user", nil, body, &out); err != nil {
		return nil, err
	}
	return out.User, nil
}

func (c *Client) CreateUser(ctx context.Context, farcasterID, jurisdiction string) (*model.User, error) {
	var out userEnvelope
	body := map[string]string{"farcasterId": farcasterID, "currentLocation": jurisdiction}
	if err := c.do(ctx, http.MethodPost, "/api/user", nil, body, &out); err != nil {
		return nil, err
	}
	return out.User, nil
}

type encounterEnvelope struct {
	Encounter *model.Encounter `json:"encounter"`
}

func (c *Client) CreateEncounter(ctx context.Context, in model.NewEncounter) (*model.Encounter, error) {
	var out encounterEnvelope
	if err := c.do(ctx, http.MethodPost, "/api/encounters", nil, in, &out); err != nil {
		return nil, err
	}
	return out.Encounter, nil
}

func (c *Client) GetEncounter(ctx context.Context, encounterID string) (*model.Encounter, error) {
	var out encounterEnvelope
	if err := c.do(ctx, http.MethodGet, "/api/encounters", map[string]string{"encounterId": encounterID}, nil, &out); err != nil {
		return nil, err
	}
	return out.Encounter, nil
}

func (c *Client) ListEncounters(ctx context.Context, userID string) ([]*model.Encounter, error) {
	var out struct {
		Encounters []*model.Encounter `json:"encounters"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/encounters", map[string]string{"userId": userID}, nil, &out); err != nil {
		return nil, err
	}
	return out.Encounters, nil
}

func (c *Client) UpdateEncounter(ctx context.Context, encounterID string, patch model.EncounterPatch) (*model.Encounter, error) {
	var out encounterEnvelope
	body := map[string]interface{}{"encounterId": encounterID, "updates": patch}
	if err := c.do(ctx, http.MethodPut, "/api/encounters", nil, body, &out); err != nil {
		return nil, err
	}
	return out.Encounter, nil
}

func (c *Client) ShareEncounter(ctx context.Context, encounterID string, with ...string) (*model.Encounter, error) {
	var out encounterEnvelope
	body := map[string]interface{}{"encounterId": encounterID, "sharedWith": with}
	if err := c.do(ctx, http.MethodPost, "/api/encounters/share", nil, body, &out); err != nil {
		return nil, err
	}
	return out.Encounter, nil
}

func (c *Client) AddContact(ctx context.Context, userID string, in model.NewContact) (*model.TrustedContact, error) {
	var out struct {
		Contact *model.TrustedContact `json:"contact"`
	}
	body := map[string]interface{}{"userId": userID, "contact": in}
	if err := c.do(ctx, http.MethodPost, "/api/trusted-contacts", nil, body, &out); err != nil {
		return nil, err
	}
	return out.Contact, nil
}

func (c *Client) RemoveContact(ctx context.Context, userID, contactID string) error {
	q := map[string]string{"userId": userID, "contactId": contactID}
	return c.do(ctx, http.MethodDelete, "/api/trusted-contacts", q, nil, nil)
}

func (c *Client) ListContacts(ctx context.Context, userID string) ([]model.TrustedContact, error) {
	var out struct {
		Contacts []model.TrustedContact `json:"contacts"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/trusted-contacts", map[string]string{"userId": userID}, nil, &out); err != nil {
		return nil, err
	}
	return out.Contacts, nil
}

func (c *Client) DispatchAlert(ctx context.Context, req model.AlertRequest) (*model.AlertDispatchResult, error) {
	var out model.AlertDispatchResult
	if err := c.do(ctx, http.MethodPost, "/api/alerts", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) AlertHistory(ctx context.Context, userID string) ([]model.AlertDispatchResult, error) {
	var out struct {
		Alerts []model.AlertDispatchResult `json:"alerts"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/alerts", map[string]string{"userId": userID}, nil, &out); err != nil {
		return nil, err
	}
	return out.Alerts, nil
}

// Health reports the service status string ("healthy" or "unhealthy").
func (c *Client) Health(ctx context.Context) (string, error) {
	var out struct {
		Status string `json:"status"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/health", nil, nil, &out); err != nil {
		return "", err
	}
	return out.Status, nil
}
