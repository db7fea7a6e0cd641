// Package query maps between URL query strings and the typed list parameter
// structs used by the listing endpoints. Parsing and serializing are pure and
// round-trip safe for any value built from recognized, valid fields.
package query

import (
	"net/url"
	"strconv"

	"github.com/ross2p/ems-app/internal/models"
)

// ParseEventFilters extracts recognized event list parameters from URL query
// values. Unrecognized keys are ignored; sortBy/sortOrder outside their
// enumerated sets and non-positive or non-numeric page values are dropped,
// not defaulted.
func ParseEventFilters(values url.Values) models.EventListParams {
	var params models.EventListParams

	params.Search = values.Get("search")
	params.CategoryID = values.Get("categoryId")
	params.StartDate = values.Get("startDate")
	params.EndDate = values.Get("endDate")

	if sortBy := values.Get("sortBy"); models.IsValidSortBy(sortBy) {
		params.SortBy = sortBy
	}
	if sortOrder := values.Get("sortOrder"); models.IsValidSortOrder(sortOrder) {
		params.SortOrder = sortOrder
	}

	params.PageNumber = parsePositiveInt(values.Get("pageNumber"))
	params.PageSize = parsePositiveInt(values.Get("pageSize"))

	return params
}

// BuildEventFiltersQuery serializes event list parameters to a query string,
// omitting unset fields. Key order is stable (url.Values encodes keys
// alphabetically).
func BuildEventFiltersQuery(params models.EventListParams) string {
	return EventFiltersValues(params).Encode()
}

// EventFiltersValues converts event list parameters to url.Values for use as
// request query parameters.
func EventFiltersValues(params models.EventListParams) url.Values {
	values := url.Values{}

	setNonEmpty(values, "search", params.Search)
	setNonEmpty(values, "categoryId", params.CategoryID)
	setNonEmpty(values, "startDate", params.StartDate)
	setNonEmpty(values, "endDate", params.EndDate)
	setNonEmpty(values, "sortBy", params.SortBy)
	setNonEmpty(values, "sortOrder", params.SortOrder)
	setPositive(values, "pageNumber", params.PageNumber)
	setPositive(values, "pageSize", params.PageSize)

	return values
}

// ParseCategoryFilters extracts recognized category list parameters from URL
// query values.
func ParseCategoryFilters(values url.Values) models.CategoryListParams {
	return models.CategoryListParams{
		Search:     values.Get("search"),
		PageNumber: parsePositiveInt(values.Get("pageNumber")),
		PageSize:   parsePositiveInt(values.Get("pageSize")),
	}
}

// ParseAttendanceFilters extracts recognized attendance list parameters from
// URL query values.
func ParseAttendanceFilters(values url.Values) models.AttendanceListParams {
	return models.AttendanceListParams{
		UserID:     values.Get("userId"),
		EventID:    values.Get("eventId"),
		PageNumber: parsePositiveInt(values.Get("pageNumber")),
		PageSize:   parsePositiveInt(values.Get("pageSize")),
	}
}

// CategoryFiltersValues converts category list parameters to url.Values.
func CategoryFiltersValues(params models.CategoryListParams) url.Values {
	values := url.Values{}

	setNonEmpty(values, "search", params.Search)
	setPositive(values, "pageNumber", params.PageNumber)
	setPositive(values, "pageSize", params.PageSize)

	return values
}

// AttendanceFiltersValues converts attendance list parameters to url.Values.
func AttendanceFiltersValues(params models.AttendanceListParams) url.Values {
	values := url.Values{}

	setNonEmpty(values, "userId", params.UserID)
	setNonEmpty(values, "eventId", params.EventID)
	setPositive(values, "pageNumber", params.PageNumber)
	setPositive(values, "pageSize", params.PageSize)

	return values
}

// UpdatePath appends the serialized filters to a path, returning the bare
// path when no filter is set.
func UpdatePath(path string, params models.EventListParams) string {
	encoded := BuildEventFiltersQuery(params)
	if encoded == "" {
		return path
	}
	return path + "?" + encoded
}

func parsePositiveInt(raw string) int {
	if raw == "" {
		return 0
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return 0
	}
	return value
}

func setNonEmpty(values url.Values, key, value string) {
	if value != "" {
		values.Set(key, value)
	}
}

func setPositive(values url.Values, key string, value int) {
	if value > 0 {
		values.Set(key, strconv.Itoa(value))
	}
}
