package hubspot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/toothbrush/site-routes/forms"
	"golang.org/x/sync/errgroup"
)

const requestTimeout = 15 * time.Second

// FetchRichestForm asks both API versions for the form and keeps whichever describes more fields,
// preferring v2 on a tie since only v2 reports page breaks.  One version failing is fine; both
// failing is an error.
func (api *API) FetchRichestForm(ctx context.Context, id string) (forms.Form, error) {
	var (
		v2, v3       forms.Form
		v2Err, v3Err error
	)

	var g errgroup.Group
	g.Go(func() error {
		ctx, cancel := context.WithTimeout(ctx, requestTimeout)
		defer cancel()

		form, err := api.GetFormV2(ctx, GetFormV2Query{ID: id})
		if err != nil {
			v2Err = fmt.Errorf("v2: %w", err)
			return nil
		}
		v2 = form.Normalise()
		return nil
	})
	g.Go(func() error {
		ctx, cancel := context.WithTimeout(ctx, requestTimeout)
		defer cancel()

		form, err := api.GetFormV3(ctx, GetFormV3Query{ID: id})
		if err != nil {
			v3Err = fmt.Errorf("v3: %w", err)
			return nil
		}
		v3 = form.Normalise()
		return nil
	})
	_ = g.Wait()

	switch {
	case v2Err != nil && v3Err != nil:
		return forms.Form{}, fmt.Errorf("hubspot: couldn't fetch form %s: %w", id, errors.Join(v2Err, v3Err))
	case v2Err != nil:
		return v3, nil
	case v3Err != nil:
		return v2, nil
	case v3.FieldCount() > v2.FieldCount():
		return v3, nil
	default:
		return v2, nil
	}
}

// ListForms walks every page of the v3 forms listing.
func (api *API) ListForms(ctx context.Context, includeArchived bool) ([]FormSummary, error) {
	summaries := []FormSummary{}

	query := ListFormsQuery{
		Limit:    100,
		Archived: includeArchived,
	}

	for {
		pageCtx, cancel := context.WithTimeout(ctx, requestTimeout)
		page, err := api.listForms(pageCtx, query)
		cancel()
		if err != nil {
			return nil, fmt.Errorf("hubspot: couldn't list forms: %w", err)
		}

		for _, r := range page.Results {
			summaries = append(summaries, FormSummary{
				ID:        r.ID,
				Name:      r.Name,
				FormType:  r.FormType,
				Archived:  r.Archived,
				UpdatedAt: r.UpdatedAt,
			})
		}

		if page.Paging.Next == nil || page.Paging.Next.After == "" {
			break
		}
		if page.Paging.Next.After == query.After {
			return nil, fmt.Errorf("hubspot: paging cursor %q did not advance", query.After)
		}
		query.After = page.Paging.Next.After
	}

	return summaries, nil
}
