package forms

import (
	"sort"

	"go.uber.org/zap"
)

// Engine works out how a form splits into steps.
type Engine struct {
	Logger *zap.Logger
}

// Infer never fails: a form with no recognisable structure is a single step.
func (e *Engine) Infer(form Form) Result {
	logger := e.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.With(zap.String("formId", form.ID))

	name := fallbackStrategy
	var steps []Step
	for _, s := range strategies {
		found, ok := s.detect(form, logger.With(zap.String("strategy", s.name)))
		if ok && len(found) > 0 {
			name, steps = s.name, found
			break
		}
	}
	if steps == nil {
		logger.Debug("no step structure found, using a single step")
		steps = []Step{{Fields: form.Fields()}}
	}

	steps = finalize(steps)

	meta := Metadata{
		FormID:     form.ID,
		FormName:   form.Name,
		Strategy:   name,
		TotalSteps: len(steps),
	}
	for _, s := range steps {
		meta.TotalFields += len(s.Fields)
		meta.HasConditionalLogic = meta.HasConditionalLogic || s.HasConditionalLogic
	}
	meta.IsMultiStep = meta.TotalSteps > 1

	logger.Info("inferred form steps",
		zap.String("strategy", name),
		zap.Int("steps", meta.TotalSteps),
		zap.Int("fields", meta.TotalFields))

	return Result{Steps: steps, Metadata: meta}
}

// finalize drops empty steps (keeping at least one), orders each step's fields by display order
// and numbers the steps from 1.  Fields are copies, so they can be normalised in place.
func finalize(in []Step) []Step {
	steps := make([]Step, 0, len(in))
	for _, s := range in {
		if len(s.Fields) > 0 {
			steps = append(steps, s)
		}
	}
	if len(steps) == 0 {
		steps = append(steps, Step{Fields: []Field{}})
	}

	for i := range steps {
		s := &steps[i]
		sort.SliceStable(s.Fields, func(a, b int) bool {
			return s.Fields[a].DisplayOrder < s.Fields[b].DisplayOrder
		})
		s.StepNumber = i + 1
		s.IsPageBreak = s.StepNumber > 1
		s.HasConditionalLogic = false
		for j := range s.Fields {
			// Consumers iterate this list; never hand them null.
			if s.Fields[j].DependentFieldFilters == nil {
				s.Fields[j].DependentFieldFilters = []DependentFieldFilter{}
			}
			if s.Fields[j].HasDependencies() {
				s.HasConditionalLogic = true
			}
		}
	}
	return steps
}
