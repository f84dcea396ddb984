package main

import (
	"bytes"
	"fmt"
	"io"
	"net/http"

	"gopkg.in/dnaeon/go-vcr.v3/cassette"
	"gopkg.in/dnaeon/go-vcr.v3/recorder"
)

// newRecorder replays recorded API traffic from fixtures/<name>.yaml and records whatever is missing.
// Authorization headers never make it into the cassette.
func newRecorder(name string) (*recorder.Recorder, error) {
	opts := &recorder.Options{
		CassetteName:       "fixtures/" + name,
		Mode:               recorder.ModeReplayWithNewEpisodes,
		SkipRequestLatency: true,
		RealTransport:      http.DefaultTransport,
	}
	r, err := recorder.NewWithOptions(opts)
	if err != nil {
		return nil, fmt.Errorf("site-routes: couldn't set up go-vcr recording: %w", err)
	}

	hook := func(i *cassette.Interaction) error {
		delete(i.Request.Headers, "Authorization")
		return nil
	}
	r.AddHook(hook, recorder.AfterCaptureHook)
	r.SetReplayableInteractions(true)

	// GraphQL sends every query to the same URL, so the body has to match too.
	r.SetMatcher(func(r *http.Request, i cassette.Request) bool {
		if r.Body == nil || r.Body == http.NoBody {
			return cassette.DefaultMatcher(r, i)
		}
		var b bytes.Buffer
		if _, err := b.ReadFrom(r.Body); err != nil {
			return false
		}
		r.Body = io.NopCloser(bytes.NewReader(b.Bytes()))
		return cassette.DefaultMatcher(r, i) && b.String() == i.Body
	})

	return r, nil
}
