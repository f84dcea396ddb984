// Package hubspot fetches form definitions from the HubSpot v2 and v3 forms APIs and normalises
// them for step inference.
package hubspot

import (
	"fmt"
	"net/http"
	"net/url"

	"golang.org/x/time/rate"
)

const defaultBaseURI = "https://api.hubapi.com"

// HubSpot allows 100 requests per 10 seconds for private apps; stay a little under.
const defaultRequestsPerSecond = 9

func NewAPI(token string) (*API, error) {
	if token == "" {
		return nil, fmt.Errorf("hubspot: access token is empty, please check hubspot-token-cmd or HUBSPOT_ACCESS_TOKEN")
	}

	u, err := url.ParseRequestURI(defaultBaseURI)
	if err != nil {
		return nil, fmt.Errorf("hubspot: couldn't parse REST API URL: %w", err)
	}

	a := &API{
		BaseURI: u,
		Limiter: rate.NewLimiter(rate.Limit(defaultRequestsPerSecond), 1),
		token:   token,
	}
	a.Client = &http.Client{}

	return a, nil
}

type API struct {
	// Usually https://api.hubapi.com; tests point this at a fake.
	BaseURI *url.URL

	// An HTTP client - you can substitute VCR or whatnot.
	Client *http.Client

	// Every request waits on this first.
	Limiter *rate.Limiter

	token string
}
