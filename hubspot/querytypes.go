package hubspot

// GetFormV2Query defines the query parameters for:
// https://legacydocs.hubspot.com/docs/methods/forms/v2/get_form
type GetFormV2Query struct {
	ID string `url:"-"` // form GUID; required
}

// GetFormV3Query defines the query parameters for:
// https://developers.hubspot.com/docs/api/marketing/forms (GET /marketing/v3/forms/{formId})
type GetFormV3Query struct {
	ID       string `url:"-"` // form GUID; required
	Archived bool   `url:"archived,omitempty"`
}

// ListFormsQuery defines the query parameters for:
// https://developers.hubspot.com/docs/api/marketing/forms (GET /marketing/v3/forms)
type ListFormsQuery struct {
	// 'After' is the paging cursor, taken from paging.next.after of the previous response.
	After     string   `url:"after,omitempty"`
	Limit     int      `url:"limit,omitempty"` // page size; default 20, max 500
	Archived  bool     `url:"archived,omitempty"`
	FormTypes []string `url:"formTypes,omitempty"` // hubspot, captured, flow, blog_comment, all
}
