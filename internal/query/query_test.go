package query

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ross2p/ems-app/internal/models"
)

func TestParseEventFilters_AllFields(t *testing.T) {
	values, err := url.ParseQuery("search=jazz&categoryId=11111111-2222-3333-4444-555555555555&startDate=2026-09-01&endDate=2026-09-30&sortBy=date&sortOrder=desc&pageNumber=2&pageSize=20")
	assert.NoError(t, err)

	params := ParseEventFilters(values)

	assert.Equal(t, models.EventListParams{
		Search:     "jazz",
		CategoryID: "11111111-2222-3333-4444-555555555555",
		StartDate:  "2026-09-01",
		EndDate:    "2026-09-30",
		SortBy:     "date",
		SortOrder:  "desc",
		PageNumber: 2,
		PageSize:   20,
	}, params)
}

func TestParseEventFilters_DropsInvalidValues(t *testing.T) {
	values := url.Values{
		"sortBy":     {"location"},
		"sortOrder":  {"sideways"},
		"pageNumber": {"-3"},
		"pageSize":   {"abc"},
		"unknown":    {"ignored"},
	}

	params := ParseEventFilters(values)

	assert.True(t, params.IsZero(), "invalid values should be dropped, not defaulted")
}

func TestParseEventFilters_ZeroPageDropped(t *testing.T) {
	params := ParseEventFilters(url.Values{"pageNumber": {"0"}})
	assert.Zero(t, params.PageNumber)
}

func TestBuildEventFiltersQuery_OmitsUnsetFields(t *testing.T) {
	encoded := BuildEventFiltersQuery(models.EventListParams{Search: "jazz"})
	assert.Equal(t, "search=jazz", encoded)

	assert.Empty(t, BuildEventFiltersQuery(models.EventListParams{}))
}

func TestBuildEventFiltersQuery_StableOrder(t *testing.T) {
	params := models.EventListParams{
		Search:    "jazz",
		SortBy:    models.SortByTitle,
		SortOrder: models.SortOrderAsc,
		PageSize:  10,
	}

	first := BuildEventFiltersQuery(params)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, BuildEventFiltersQuery(params))
	}
}

func TestEventFilters_RoundTrip(t *testing.T) {
	original := models.EventListParams{
		Search:     "board games",
		CategoryID: "11111111-2222-3333-4444-555555555555",
		StartDate:  "2026-09-01T00:00:00Z",
		EndDate:    "2026-09-30T00:00:00Z",
		SortBy:     models.SortByCreatedAt,
		SortOrder:  models.SortOrderAsc,
		PageNumber: 3,
		PageSize:   25,
	}

	values, err := url.ParseQuery(BuildEventFiltersQuery(original))
	assert.NoError(t, err)

	assert.Equal(t, original, ParseEventFilters(values))
}

func TestParseCategoryFilters(t *testing.T) {
	values := url.Values{
		"search":     {"music"},
		"pageNumber": {"2"},
		"pageSize":   {"10"},
	}

	params := ParseCategoryFilters(values)

	assert.Equal(t, models.CategoryListParams{
		Search:     "music",
		PageNumber: 2,
		PageSize:   10,
	}, params)
}

func TestParseAttendanceFilters(t *testing.T) {
	values := url.Values{
		"userId":  {"aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee"},
		"eventId": {"11111111-2222-3333-4444-555555555555"},
	}

	params := ParseAttendanceFilters(values)

	assert.Equal(t, "aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee", params.UserID)
	assert.Equal(t, "11111111-2222-3333-4444-555555555555", params.EventID)
}

func TestUpdatePath(t *testing.T) {
	assert.Equal(t, "/events", UpdatePath("/events", models.EventListParams{}))

	withFilters := UpdatePath("/events", models.EventListParams{Search: "jazz", PageNumber: 2})
	assert.Equal(t, "/events?pageNumber=2&search=jazz", withFilters)
}
