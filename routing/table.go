package routing

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// TableVersion is the schema version written into every routing table.
const TableVersion = "1.0"

// RoutingTable maps paths to routes, remembering the order in which paths were first added.
// Setting a path that already exists replaces its route in place.
type RoutingTable struct {
	GeneratedAt time.Time
	Version     string
	BuildID     string

	routes map[string]Route
	order  []string
}

func NewRoutingTable(generatedAt time.Time) *RoutingTable {
	return &RoutingTable{
		GeneratedAt: generatedAt,
		Version:     TableVersion,
		routes:      make(map[string]Route),
	}
}

// Set stores route under route.Path and reports whether an earlier route was overwritten.
func (t *RoutingTable) Set(route Route) bool {
	if t.routes == nil {
		t.routes = make(map[string]Route)
	}
	_, existed := t.routes[route.Path]
	if !existed {
		t.order = append(t.order, route.Path)
	}
	t.routes[route.Path] = route
	return existed
}

func (t *RoutingTable) Get(path string) (Route, bool) {
	r, ok := t.routes[path]
	return r, ok
}

func (t *RoutingTable) Has(path string) bool {
	_, ok := t.routes[path]
	return ok
}

func (t *RoutingTable) Delete(path string) {
	if _, ok := t.routes[path]; !ok {
		return
	}
	delete(t.routes, path)
	for i, p := range t.order {
		if p == path {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
}

func (t *RoutingTable) Len() int {
	return len(t.order)
}

// Paths returns every path in insertion order.
func (t *RoutingTable) Paths() []string {
	return append([]string(nil), t.order...)
}

// Routes returns every route in insertion order.
func (t *RoutingTable) Routes() []Route {
	routes := make([]Route, 0, len(t.order))
	for _, p := range t.order {
		routes = append(routes, t.routes[p])
	}
	return routes
}

// DroppedRoute is a route the validation pass refused, with the reason.
type DroppedRoute struct {
	Route  Route
	Reason error
}

// Prune removes every route whose path fails ValidatePath.  Each removal is logged; it is never an
// error for the caller.
func (t *RoutingTable) Prune(logger *zap.Logger) []DroppedRoute {
	if logger == nil {
		logger = zap.NewNop()
	}

	dropped := []DroppedRoute{}
	for _, p := range t.Paths() {
		err := ValidatePath(p)
		if err == nil {
			continue
		}
		route := t.routes[p]
		logger.Warn("dropping malformed route",
			zap.String("path", p),
			zap.String("contentType", string(route.ContentType)),
			zap.String("contentId", route.ContentID),
			zap.Error(err))
		t.Delete(p)
		dropped = append(dropped, DroppedRoute{Route: route, Reason: err})
	}
	return dropped
}

type tableHeader struct {
	GeneratedAt time.Time `json:"generatedAt"`
	Version     string    `json:"version"`
	BuildID     string    `json:"buildId,omitempty"`
}

// MarshalJSON writes {"routes": {...}, "generatedAt": ..., "version": ...} with routes in
// insertion order.
func (t *RoutingTable) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"routes":{`)
	for i, p := range t.order {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(p)
		if err != nil {
			return nil, fmt.Errorf("routing: couldn't encode path %q: %w", p, err)
		}
		value, err := json.Marshal(t.routes[p])
		if err != nil {
			return nil, fmt.Errorf("routing: couldn't encode route %q: %w", p, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteString(`},`)

	header, err := json.Marshal(tableHeader{
		GeneratedAt: t.GeneratedAt,
		Version:     t.Version,
		BuildID:     t.BuildID,
	})
	if err != nil {
		return nil, fmt.Errorf("routing: couldn't encode table header: %w", err)
	}
	// splice the header object's fields in after "routes"
	buf.Write(header[1:])

	return buf.Bytes(), nil
}

// UnmarshalJSON reads a table written by MarshalJSON, keeping the order of the routes object.
func (t *RoutingTable) UnmarshalJSON(data []byte) error {
	var raw struct {
		Routes json.RawMessage `json:"routes"`
		tableHeader
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("routing: couldn't parse routing table: %w", err)
	}

	t.GeneratedAt = raw.GeneratedAt
	t.Version = raw.Version
	t.BuildID = raw.BuildID
	t.routes = make(map[string]Route)
	t.order = nil

	if len(raw.Routes) == 0 || string(raw.Routes) == "null" {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw.Routes))
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("routing: couldn't read routes: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("routing: expected routes to be an object, got %v", tok)
	}

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("routing: couldn't read route key: %w", err)
		}
		path, ok := tok.(string)
		if !ok {
			return fmt.Errorf("routing: unexpected route key %v", tok)
		}
		var route Route
		if err := dec.Decode(&route); err != nil {
			return fmt.Errorf("routing: couldn't parse route %q: %w", path, err)
		}
		route.Path = path
		t.Set(route)
	}

	return nil
}
