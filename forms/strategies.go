package forms

import (
	"regexp"
	"sort"

	"go.uber.org/zap"
)

// A strategy looks for one kind of step indicator.  ok is false when the form shows none, and
// the next strategy gets a go.
type strategy struct {
	name   string
	detect func(form Form, logger *zap.Logger) (steps []Step, ok bool)
}

const fallbackStrategy = "single-step"

// strategies are tried in this order; the first to find anything wins.
var strategies = []strategy{
	{name: "label-suffix", detect: detectLabelSuffix},
	{name: "single-default-group", detect: detectSingleDefaultGroup},
	{name: "page-break", detect: detectPageBreaks},
	{name: "rich-text", detect: detectRichTextHeadings},
	{name: "display-order-gap", detect: detectDisplayOrderGaps},
	{name: "conditional-dependency", detect: detectConditionalDependencies},
}

func detectLabelSuffix(form Form, logger *zap.Logger) ([]Step, bool) {
	byStep := map[int][]Field{}
	matched := 0
	for _, f := range form.Fields() {
		_, n, ok := SplitStepLabel(f.Label)
		if !ok {
			n = 1
		} else {
			matched++
		}
		byStep[n] = append(byStep[n], f)
	}
	if matched == 0 {
		logger.Debug("no field label carries a step suffix")
		return nil, false
	}

	numbers := make([]int, 0, len(byStep))
	for n := range byStep {
		numbers = append(numbers, n)
	}
	sort.Ints(numbers)

	steps := make([]Step, 0, len(numbers))
	for _, n := range numbers {
		steps = append(steps, Step{Fields: byStep[n]})
	}
	logger.Debug("grouped fields by label suffix",
		zap.Int("matched", matched),
		zap.Ints("suffixes", numbers))
	return steps, true
}

func detectSingleDefaultGroup(form Form, logger *zap.Logger) ([]Step, bool) {
	if len(form.Groups) != 1 {
		return nil, false
	}
	g := form.Groups[0]
	if g.IsPageBreak || (g.Type != GroupDefault && g.Type != "") {
		return nil, false
	}
	logger.Debug("form has a single default group")
	return []Step{{Fields: form.Fields()}}, true
}

func isPageBreak(g Group) bool {
	return g.IsPageBreak || g.Type == GroupPageBreak
}

// detectPageBreaks closes a step at every page-break group.  The break group's own fields end the
// step it closes.
func detectPageBreaks(form Form, logger *zap.Logger) ([]Step, bool) {
	breaks := 0
	for _, g := range form.Groups {
		if isPageBreak(g) {
			breaks++
		}
	}
	if breaks == 0 {
		logger.Debug("no page-break groups")
		return nil, false
	}

	var steps []Step
	var current []Field
	for _, g := range form.Groups {
		current = append(current, g.Fields...)
		if isPageBreak(g) && len(current) > 0 {
			steps = append(steps, Step{Fields: current})
			current = nil
		}
	}
	if len(current) > 0 {
		steps = append(steps, Step{Fields: current})
	}

	logger.Debug("split form at page breaks", zap.Int("breaks", breaks), zap.Int("steps", len(steps)))
	return steps, true
}

var stepWords = regexp.MustCompile(`(?i)step|page|section`)

// detectRichTextHeadings opens a new step at every rich-text group that talks about a step, page
// or section.  The heading group's fields belong to the step it opens, and its text becomes that
// step's title and description.
func detectRichTextHeadings(form Form, logger *zap.Logger) ([]Step, bool) {
	headings := map[int]richText{}
	for i, g := range form.Groups {
		if g.RichText == "" {
			continue
		}
		rt, err := parseRichText(g.RichText)
		if err != nil {
			logger.Debug("couldn't parse group rich text", zap.Int("group", i), zap.Error(err))
			continue
		}
		if stepWords.MatchString(rt.plain) {
			headings[i] = rt
		}
	}
	if len(headings) == 0 {
		logger.Debug("no rich-text step headings")
		return nil, false
	}

	var steps []Step
	current := Step{}
	for i, g := range form.Groups {
		if rt, ok := headings[i]; ok {
			if len(current.Fields) > 0 {
				steps = append(steps, current)
			}
			current = Step{Title: rt.title, Description: rt.markdown()}
		}
		current.Fields = append(current.Fields, g.Fields...)
	}
	if len(current.Fields) > 0 {
		steps = append(steps, current)
	}

	logger.Debug("split form at rich-text headings",
		zap.Int("headings", len(headings)),
		zap.Int("steps", len(steps)))
	return steps, true
}

const displayOrderGap = 10

func detectDisplayOrderGaps(form Form, logger *zap.Logger) ([]Step, bool) {
	fields := form.Fields()
	sort.SliceStable(fields, func(i, j int) bool {
		return fields[i].DisplayOrder < fields[j].DisplayOrder
	})

	var bounds []int
	start := 0
	var steps []Step
	for i := 1; i < len(fields); i++ {
		if fields[i].DisplayOrder-fields[i-1].DisplayOrder > displayOrderGap {
			bounds = append(bounds, fields[i-1].DisplayOrder)
			steps = append(steps, Step{Fields: fields[start:i]})
			start = i
		}
	}
	if len(bounds) == 0 {
		logger.Debug("no display order gaps", zap.Int("threshold", displayOrderGap))
		return nil, false
	}
	steps = append(steps, Step{Fields: fields[start:]})

	logger.Debug("split form at display order gaps", zap.Ints("upperBounds", bounds))
	return steps, true
}

const initialStepTitle = "Initial Information"

// detectConditionalDependencies puts unconditional fields first, then one step per field that
// others depend on, in the order those dependencies first show up.  Names are not checked against
// the form.
func detectConditionalDependencies(form Form, logger *zap.Logger) ([]Step, bool) {
	var independent []Field
	byParent := map[string][]Field{}
	var parents []string

	for _, f := range form.Fields() {
		if !f.HasDependencies() {
			independent = append(independent, f)
			continue
		}
		parent := f.DependentFieldFilters[0].DependsOnFieldName
		if _, seen := byParent[parent]; !seen {
			parents = append(parents, parent)
		}
		byParent[parent] = append(byParent[parent], f)
	}
	if len(parents) == 0 {
		logger.Debug("no conditional fields")
		return nil, false
	}

	var steps []Step
	if len(independent) > 0 {
		steps = append(steps, Step{Title: initialStepTitle, Fields: independent})
	}
	for _, p := range parents {
		steps = append(steps, Step{Fields: byParent[p]})
	}

	logger.Debug("grouped conditional fields by dependency", zap.Strings("parents", parents))
	return steps, true
}
