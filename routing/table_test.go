package routing

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestRoutingTableOrder(t *testing.T) {
	table := tableOf("/", "/b", "/a")

	assert.False(t, table.Set(Route{Path: "/c"}))
	assert.True(t, table.Set(Route{Path: "/b", ContentID: "replaced"}))
	assert.Equal(t, []string{"/", "/b", "/a", "/c"}, table.Paths())

	r, _ := table.Get("/b")
	assert.Equal(t, "replaced", r.ContentID)

	table.Delete("/a")
	table.Delete("/missing")
	assert.Equal(t, []string{"/", "/b", "/c"}, table.Paths())
	assert.Equal(t, 3, table.Len())
}

func TestRoutingTableJSON(t *testing.T) {
	table := NewRoutingTable(time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC))
	table.BuildID = "build-1"
	table.Set(Route{Path: "/", ContentType: KindPage, ContentID: "homepage", Title: "Home", AncestorChain: []Ancestor{}, Priority: 1, ChangeFrequency: ChangeDaily})
	table.Set(Route{Path: "/z", ContentType: KindPage, ContentID: "z", AncestorChain: []Ancestor{}, Priority: 0.8, ChangeFrequency: ChangeWeekly})
	table.Set(Route{
		Path:            "/a/b",
		ContentType:     KindSolution,
		ContentID:       "b",
		AncestorChain:   []Ancestor{{ID: "a", Slug: "a", Title: "A"}},
		IsNested:        true,
		Priority:        0.7,
		ChangeFrequency: ChangeMonthly,
	})

	data, err := json.Marshal(table)
	require.NoError(t, err)
	assert.True(t, json.Valid(data))
	assert.Contains(t, string(data), `"generatedAt":"2024-01-02T03:04:05Z"`)
	assert.Contains(t, string(data), `"version":"1.0"`)
	assert.Contains(t, string(data), `"ancestorChain":[{"id":"a","slug":"a","title":"A"}]`)

	var decoded RoutingTable
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, table.Paths(), decoded.Paths())
	assert.Equal(t, "build-1", decoded.BuildID)
	assert.True(t, table.GeneratedAt.Equal(decoded.GeneratedAt))
	if diff := cmp.Diff(table.Routes(), decoded.Routes(), cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}

	again, err := json.Marshal(&decoded)
	require.NoError(t, err)
	assert.Equal(t, string(data), string(again))
}

func TestRoutingTableEmptyJSON(t *testing.T) {
	data, err := json.Marshal(NewRoutingTable(time.Time{}))
	require.NoError(t, err)
	assert.True(t, json.Valid(data))

	var decoded RoutingTable
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Zero(t, decoded.Len())
}

func TestPrune(t *testing.T) {
	table := tableOf("/", "/ok", "/undefined", "/a//b", "/trailing/", "relative")

	dropped := table.Prune(zaptest.NewLogger(t))

	assert.Equal(t, []string{"/", "/ok"}, table.Paths())
	var reasons []error
	for _, d := range dropped {
		reasons = append(reasons, d.Reason)
	}
	require.Len(t, reasons, 4)
	assert.ErrorIs(t, reasons[0], ErrUndefinedSegment)
	assert.ErrorIs(t, reasons[1], ErrEmptySegment)
	assert.ErrorIs(t, reasons[2], ErrEmptySegment)
	assert.ErrorIs(t, reasons[3], ErrNotAbsolute)
}

func TestValidatePath(t *testing.T) {
	tests := []struct {
		path string
		want error
	}{
		{"/", nil},
		{"/a/b-c", nil},
		{"", ErrBlankPath},
		{"  ", ErrBlankPath},
		{"//", ErrEmptySegment},
		{"/x//y", ErrEmptySegment},
		{"/x/", ErrEmptySegment},
		{"/post/undefined", ErrUndefinedSegment},
		{"/undefined-thing", ErrUndefinedSegment},
		{"about", ErrNotAbsolute},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			err := ValidatePath(tt.path)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestCleanCategory(t *testing.T) {
	assert.Equal(t, "investor-relations", cleanCategory("Investor Relations"))
	assert.Equal(t, "rd-2024", cleanCategory("R&D 2024"))
	assert.Equal(t, "", cleanCategory("!!!"))
}
