package models

// CategoryListParams contains search and pagination options for category
// queries.
type CategoryListParams struct {
	Search     string `json:"search,omitempty"`
	PageNumber int    `json:"pageNumber,omitempty"`
	PageSize   int    `json:"pageSize,omitempty"`
}
