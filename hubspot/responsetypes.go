package hubspot

// ListFormsResponse is one page of GET /marketing/v3/forms.
type ListFormsResponse struct {
	Results []struct {
		ID        string `json:"id"`
		Name      string `json:"name"`
		FormType  string `json:"formType"`
		Archived  bool   `json:"archived"`
		UpdatedAt string `json:"updatedAt"`
	} `json:"results"`

	Paging struct {
		Next *struct {
			// Pass as ?after= to get the next page.  Absent on the last page.
			After string `json:"after"`
			Link  string `json:"link"`
		} `json:"next,omitempty"`
	} `json:"paging"`
}

type errorResponse struct {
	Status        string `json:"status"`
	Message       string `json:"message"`
	Category      string `json:"category"`
	CorrelationID string `json:"correlationId"`
}
