package contentful

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
)

// FetchCollectionQuery selects one window of a collection.
type FetchCollectionQuery struct {
	Collection Collection
	Skip       int
	Limit      int
	Preview    bool
}

// ErrTruncatedChildren means a page list has more children than one query returns.
var ErrTruncatedChildren = errors.New("contentful: page list children truncated")

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

type graphQLError struct {
	Message string `json:"message"`
}

type graphQLResponse struct {
	Data   map[string]*CollectionPage `json:"data"`
	Errors []graphQLError             `json:"errors,omitempty"`
}

func (api *API) FetchCollection(ctx context.Context, opts FetchCollectionQuery) (*CollectionPage, error) {
	if opts.Limit < 1 {
		return nil, fmt.Errorf("contentful: please provide a positive limit")
	}
	query, err := opts.Collection.query()
	if err != nil {
		return nil, err
	}

	ep, err := api.graphQLEndpoint()
	if err != nil {
		return nil, fmt.Errorf("contentful: couldn't get GraphQL endpoint: %w", err)
	}

	body, err := api.request(ctx, ep, graphQLRequest{
		Query: query,
		Variables: map[string]any{
			"skip":    opts.Skip,
			"limit":   opts.Limit,
			"preview": opts.Preview,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("contentful: couldn't perform request: %w", err)
	}

	var response graphQLResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("contentful: couldn't parse json response: %w", err)
	}
	if len(response.Errors) > 0 {
		messages := make([]string, 0, len(response.Errors))
		for _, e := range response.Errors {
			messages = append(messages, e.Message)
		}
		return nil, fmt.Errorf("contentful: GraphQL errors for %s: %s", opts.Collection, strings.Join(messages, "; "))
	}

	page, ok := response.Data[string(opts.Collection)]
	if !ok || page == nil {
		return nil, fmt.Errorf("contentful: response has no %s", opts.Collection)
	}

	for _, e := range page.Items {
		if c := e.PagesCollection; c != nil && c.Total > len(c.Items) {
			return nil, fmt.Errorf("%w: %s (%s) lists %d entries, only %d fetched",
				ErrTruncatedChildren, e.Slug, e.Sys.ID, c.Total, len(c.Items))
		}
	}

	return page, nil
}

func (api *API) graphQLEndpoint() (*url.URL, error) {
	ref, err := url.Parse(fmt.Sprintf("/content/v1/spaces/%s/environments/%s",
		url.PathEscape(api.Space),
		url.PathEscape(api.Environment)))
	if err != nil {
		return nil, fmt.Errorf("contentful: failed to parse endpoint ref: %w", err)
	}

	return api.BaseURI.ResolveReference(ref), nil
}

func (api *API) request(ctx context.Context, url *url.URL, payload graphQLRequest) ([]byte, error) {
	if api.Limiter != nil {
		if err := api.Limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("contentful: rate limiter: %w", err)
		}
	}

	encoded, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("contentful: couldn't encode GraphQL request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url.String(), bytes.NewReader(encoded))
	if err != nil {
		return nil, fmt.Errorf("contentful: couldn't instantiate http request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Add("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+api.token)

	response, err := api.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("contentful: couldn't perform http request: %w", err)
	}

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, fmt.Errorf("contentful: couldn't read http response body: %w", err)
	}

	if err := response.Body.Close(); err != nil {
		return nil, fmt.Errorf("contentful: couldn't close response body: %w", err)
	}

	switch response.StatusCode {
	case http.StatusOK, http.StatusBadRequest:
		// query errors come back as 400 with a GraphQL errors list
		return body, nil
	case http.StatusUnauthorized:
		return nil, fmt.Errorf("contentful: authentication failed")
	case http.StatusNotFound:
		return nil, fmt.Errorf("contentful: space or environment not found: %s", url.Path)
	case http.StatusTooManyRequests:
		return nil, fmt.Errorf("contentful: rate limited: %s", response.Status)
	case http.StatusServiceUnavailable, http.StatusInternalServerError, http.StatusBadGateway:
		return nil, fmt.Errorf("contentful: service is not available: %s", response.Status)
	}

	return nil, fmt.Errorf("contentful: unknown HTTP response status: %s: %s", response.Status, url.String())
}
