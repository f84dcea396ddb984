package main

import (
	"fmt"

	"github.com/toothbrush/site-routes/hubspot"
)

// newHubSpotAPI builds a client from the configured token, recording traffic with --with-vcr.  The
// returned stop func must always be called.
func newHubSpotAPI(withVCR bool) (*hubspot.API, func(), error) {
	token, err := readToken(HubSpotTokenCmd, "HUBSPOT_ACCESS_TOKEN")
	if err != nil {
		return nil, nil, err
	}
	api, err := hubspot.NewAPI(token)
	if err != nil {
		return nil, nil, fmt.Errorf("site-routes: HubSpot API creation failed: %w", err)
	}

	if !withVCR {
		return api, func() {}, nil
	}

	r, err := newRecorder("hubspot")
	if err != nil {
		return nil, nil, err
	}
	api.Client = r.GetDefaultClient()
	return api, func() { _ = r.Stop() }, nil
}
