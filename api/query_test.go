package api

import (
	"net/url"
	"testing"

	"github.com/gobuffalo/buffalo"
)

func (ts *TestSuite) TestNewQuery() {
	tests := []struct {
		name           string
		qs             string
		wantLimit      int
		wantPage       int
		wantStatus     string
		wantEventType  string
		wantSearchText string
	}{
		{
			name:     "default",
			qs:       "",
			wantPage: 1,
		},
		{
			name:       "limit and status filter",
			qs:         "limit=2&filter=status:approved",
			wantLimit:  2,
			wantPage:   1,
			wantStatus: "approved",
		},
		{
			name:           "search",
			qs:             "search=tractor",
			wantPage:       1,
			wantSearchText: "tractor",
		},
		{
			name:     "page",
			qs:       "page=5",
			wantPage: 5,
		},
		{
			name:     "negative page",
			qs:       "page=-5",
			wantPage: 1,
		},
		{
			name:      "limit above maximum",
			qs:        "limit=500",
			wantLimit: MaxRecordLimit,
			wantPage:  1,
		},
		{
			name:          "spaces",
			qs:            "limit= 2 &filter= status : paid , event_type: fire ",
			wantLimit:     2,
			wantPage:      1,
			wantStatus:    "paid",
			wantEventType: "fire",
		},
	}
	for _, tt := range tests {
		ts.T().Run(tt.name, func(t *testing.T) {
			values, _ := url.ParseQuery(tt.qs)

			got := NewQueryParams(buffalo.ParamValues(values))
			ts.Equal(tt.wantLimit, got.Limit(), "limit is incorrect")
			ts.Equal(tt.wantPage, got.Page(), "page is incorrect")
			ts.Equal(tt.wantStatus, got.Filter(FilterStatus), "status filter is incorrect")
			ts.Equal(tt.wantEventType, got.Filter(FilterEventType), "event type filter is incorrect")
			ts.Equal(tt.wantSearchText, got.Search(), "search text is incorrect")
		})
	}
}

func (ts *TestSuite) TestQueryParamsPageBounds() {
	tests := []struct {
		name      string
		qs        string
		n         int
		wantStart int
		wantEnd   int
	}{
		{name: "no paging", qs: "", n: 7, wantStart: 0, wantEnd: 7},
		{name: "first page", qs: "limit=3", n: 7, wantStart: 0, wantEnd: 3},
		{name: "last partial page", qs: "limit=3&page=3", n: 7, wantStart: 6, wantEnd: 7},
		{name: "past the end", qs: "limit=3&page=9", n: 7, wantStart: 7, wantEnd: 7},
	}
	for _, tt := range tests {
		ts.T().Run(tt.name, func(t *testing.T) {
			values, _ := url.ParseQuery(tt.qs)
			start, end := NewQueryParams(values).PageBounds(tt.n)
			ts.Equal(tt.wantStart, start)
			ts.Equal(tt.wantEnd, end)
		})
	}
}
