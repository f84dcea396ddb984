// Package contentful is a small client for the Contentful GraphQL Content API, just enough to list
// the site's routable entries.
package contentful

import (
	"fmt"
	"net/http"
	"net/url"

	"golang.org/x/time/rate"
)

const defaultBaseURI = "https://graphql.contentful.com"

// The Content Delivery API allows 55 requests per second.
const defaultRequestsPerSecond = 50

func NewAPI(space string, environment string, token string) (*API, error) {
	if space == "" {
		return nil, fmt.Errorf("contentful: configure your Contentful space with --contentful-space")
	}
	if environment == "" {
		environment = "master"
	}
	if token == "" {
		return nil, fmt.Errorf("contentful: access token is empty, please check contentful-token-cmd or CONTENTFUL_ACCESS_TOKEN")
	}

	u, err := url.ParseRequestURI(defaultBaseURI)
	if err != nil {
		return nil, fmt.Errorf("contentful: couldn't parse GraphQL API URL: %w", err)
	}

	a := &API{
		BaseURI:     u,
		Space:       space,
		Environment: environment,
		Limiter:     rate.NewLimiter(rate.Limit(defaultRequestsPerSecond), 5),
		token:       token,
	}
	a.Client = &http.Client{}

	return a, nil
}

type API struct {
	BaseURI     *url.URL
	Space       string
	Environment string

	// An HTTP client - you can substitute VCR or whatnot.
	Client *http.Client

	Limiter *rate.Limiter

	token string
}
