package hubspot

import (
	"fmt"
	"net/url"

	"github.com/google/go-querystring/query"
)

// getFormV2Endpoint returns the legacy endpoint, which is the only one that still tells us about
// page breaks and smart groups.
func (a *API) getFormV2Endpoint(opts GetFormV2Query) (*url.URL, error) {
	if opts.ID == "" {
		return nil, fmt.Errorf("hubspot: please provide form ID")
	}

	ep, err := a.resolveEndpoint("/forms/v2/forms/" + url.PathEscape(opts.ID))
	if err != nil {
		return nil, fmt.Errorf("hubspot: couldn't resolve endpoint: %w", err)
	}

	v, err := query.Values(opts)
	if err != nil {
		return nil, fmt.Errorf("hubspot: couldn't encode query params: %w", err)
	}
	ep.RawQuery = v.Encode()

	return ep, nil
}

func (a *API) getFormV3Endpoint(opts GetFormV3Query) (*url.URL, error) {
	if opts.ID == "" {
		return nil, fmt.Errorf("hubspot: please provide form ID")
	}

	ep, err := a.resolveEndpoint("/marketing/v3/forms/" + url.PathEscape(opts.ID))
	if err != nil {
		return nil, fmt.Errorf("hubspot: couldn't resolve endpoint: %w", err)
	}

	v, err := query.Values(opts)
	if err != nil {
		return nil, fmt.Errorf("hubspot: couldn't encode query params: %w", err)
	}
	ep.RawQuery = v.Encode()

	return ep, nil
}

func (a *API) listFormsEndpoint(opts ListFormsQuery) (*url.URL, error) {
	ep, err := a.resolveEndpoint("/marketing/v3/forms")
	if err != nil {
		return nil, fmt.Errorf("hubspot: couldn't resolve endpoint: %w", err)
	}

	v, err := query.Values(opts)
	if err != nil {
		return nil, fmt.Errorf("hubspot: couldn't encode query params: %w", err)
	}
	ep.RawQuery = v.Encode()

	return ep, nil
}

func (a *API) resolveEndpoint(endpoint string) (*url.URL, error) {
	ref, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("hubspot: failed to parse endpoint ref: %w", err)
	}

	return a.BaseURI.ResolveReference(ref), nil
}
