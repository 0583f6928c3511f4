package api

import (
	"strconv"
	"strings"

	"github.com/gobuffalo/buffalo"
)

const MaxRecordLimit = 50

// Filter keys understood by the claims list
const (
	FilterStatus    = "status"
	FilterEventType = "event_type"
	FilterPolicyID  = "policy_id"
)

// QueryParams contains criteria to limit the results of List endpoints
type QueryParams struct {
	// filterKeys is a map of field name to filter text.
	filterKeys map[string]string

	// searchText is text to search across multiple fields
	searchText string

	// recordLimit sets the number of records returned in a single page. Zero means no paging.
	recordLimit int

	// page sets the pagination slice for the query
	page int
}

// Limit is the page size, at most MaxRecordLimit, or zero if all records are wanted
func (q QueryParams) Limit() int {
	if q.recordLimit < 1 {
		return 0
	}
	if q.recordLimit > MaxRecordLimit {
		return MaxRecordLimit
	}
	return q.recordLimit
}

func (q QueryParams) Page() int {
	if q.page < 1 {
		return 1
	}
	return q.page
}

func (q QueryParams) Filter(key string) string {
	return q.filterKeys[key]
}

func (q QueryParams) Search() string {
	return q.searchText
}

// PageBounds returns the slice bounds of the requested page within n records
func (q QueryParams) PageBounds(n int) (int, int) {
	limit := q.Limit()
	if limit == 0 {
		return 0, n
	}
	start := (q.Page() - 1) * limit
	if start > n {
		start = n
	}
	end := start + limit
	if end > n {
		end = n
	}
	return start, end
}

// NewQueryParams parses query string parameter values into valid query criteria.
//
// Example:
//
//	"filter=status:approved,event_type:fire" becomes Query{filterKeys:
//	map[string]string{"status":"approved","event_type":"fire"}}
func NewQueryParams(values buffalo.ParamValues) QueryParams {
	q := QueryParams{filterKeys: map[string]string{}}

	q.searchText = strings.TrimSpace(values.Get("search"))

	if filter := values.Get("filter"); filter != "" {
		pairs := strings.Split(strings.TrimSpace(filter), ",")
		for _, p := range pairs {
			split := strings.SplitN(p, ":", 2)
			if len(split) == 2 {
				q.filterKeys[strings.TrimSpace(split[0])] = strings.TrimSpace(split[1])
			}
		}
	}

	if limit := values.Get("limit"); limit != "" {
		i, err := strconv.Atoi(strings.TrimSpace(limit))
		if err == nil {
			q.recordLimit = i
		}
	}

	if page := values.Get("page"); page != "" {
		i, err := strconv.Atoi(strings.TrimSpace(page))
		if err == nil {
			q.page = i
		}
	}

	return q
}
