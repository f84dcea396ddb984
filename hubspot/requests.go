package hubspot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

var (
	ErrFormNotFound = errors.New("hubspot: form not found")
	ErrRateLimited  = errors.New("hubspot: rate limited")
)

func (api *API) GetFormV2(ctx context.Context, opts GetFormV2Query) (*V2Form, error) {
	ep, err := api.getFormV2Endpoint(opts)
	if err != nil {
		return nil, fmt.Errorf("hubspot: couldn't get v2 form endpoint: %w", err)
	}

	body, err := api.request(ctx, ep)
	if err != nil {
		return nil, fmt.Errorf("hubspot: couldn't perform request: %w", err)
	}

	var form V2Form
	if err := json.Unmarshal(body, &form); err != nil {
		return nil, fmt.Errorf("hubspot: couldn't parse json response: %w", err)
	}

	return &form, nil
}

func (api *API) GetFormV3(ctx context.Context, opts GetFormV3Query) (*V3Form, error) {
	ep, err := api.getFormV3Endpoint(opts)
	if err != nil {
		return nil, fmt.Errorf("hubspot: couldn't get v3 form endpoint: %w", err)
	}

	body, err := api.request(ctx, ep)
	if err != nil {
		return nil, fmt.Errorf("hubspot: couldn't perform request: %w", err)
	}

	var form V3Form
	if err := json.Unmarshal(body, &form); err != nil {
		return nil, fmt.Errorf("hubspot: couldn't parse json response: %w", err)
	}

	return &form, nil
}

func (api *API) listForms(ctx context.Context, opts ListFormsQuery) (*ListFormsResponse, error) {
	ep, err := api.listFormsEndpoint(opts)
	if err != nil {
		return nil, fmt.Errorf("hubspot: couldn't get list forms endpoint: %w", err)
	}

	body, err := api.request(ctx, ep)
	if err != nil {
		return nil, fmt.Errorf("hubspot: couldn't perform request: %w", err)
	}

	var page ListFormsResponse
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, fmt.Errorf("hubspot: couldn't parse json response: %w", err)
	}

	return &page, nil
}

func (api *API) request(ctx context.Context, url *url.URL) ([]byte, error) {
	if api.Limiter != nil {
		if err := api.Limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("hubspot: rate limiter: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("hubspot: couldn't instantiate http request: %w", err)
	}

	req.Header.Add("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+api.token)

	response, err := api.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("hubspot: couldn't perform http request: %w", err)
	}

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, fmt.Errorf("hubspot: couldn't read http response body: %w", err)
	}

	if err := response.Body.Close(); err != nil {
		return nil, fmt.Errorf("hubspot: couldn't close response body: %w", err)
	}

	switch response.StatusCode {
	case http.StatusOK:
		return body, nil
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, fmt.Errorf("hubspot: authentication failed: %s", describeError(body, response.Status))
	case http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", ErrFormNotFound, url.Path)
	case http.StatusTooManyRequests:
		return nil, fmt.Errorf("%w: %s", ErrRateLimited, describeError(body, response.Status))
	case http.StatusServiceUnavailable, http.StatusInternalServerError, http.StatusBadGateway:
		return nil, fmt.Errorf("hubspot: service is not available: %s", response.Status)
	}

	return nil, fmt.Errorf("hubspot: unknown HTTP response status: %s: %s", response.Status, url.String())
}

// describeError prefers HubSpot's own message over the bare status line.
func describeError(body []byte, status string) string {
	var e errorResponse
	if err := json.Unmarshal(body, &e); err != nil || e.Message == "" {
		return status
	}
	return fmt.Sprintf("%s (%s)", e.Message, e.Category)
}
