package models

// Sort fields accepted by the event listing endpoint.
const (
	SortByDate      = "date"
	SortByTitle     = "title"
	SortByCreatedAt = "createdAt"

	SortOrderAsc  = "asc"
	SortOrderDesc = "desc"
)

// EventListParams contains filtering, sorting and pagination options for
// event queries. Zero values mean "not set"; defaulting is the consumer's
// responsibility. StartDate/EndDate are ISO date strings passed through to
// the API unmodified.
type EventListParams struct {
	Search     string `json:"search,omitempty"`
	CategoryID string `json:"categoryId,omitempty"`
	StartDate  string `json:"startDate,omitempty"`
	EndDate    string `json:"endDate,omitempty"`
	SortBy     string `json:"sortBy,omitempty"`
	SortOrder  string `json:"sortOrder,omitempty"`
	PageNumber int    `json:"pageNumber,omitempty"`
	PageSize   int    `json:"pageSize,omitempty"`
}

// IsValidSortBy reports whether v is one of the accepted sort fields.
func IsValidSortBy(v string) bool {
	switch v {
	case SortByDate, SortByTitle, SortByCreatedAt:
		return true
	}
	return false
}

// IsValidSortOrder reports whether v is one of the accepted sort directions.
func IsValidSortOrder(v string) bool {
	return v == SortOrderAsc || v == SortOrderDesc
}

// IsZero reports whether no filter, sort or pagination field is set.
func (p EventListParams) IsZero() bool {
	return p == EventListParams{}
}
