// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// QueryStatus is the state of a collection's fetch state machine.
type QueryStatus string

const (
	QueryIdle     QueryStatus = "idle"
	QueryFetching QueryStatus = "fetching"
	QuerySuccess  QueryStatus = "success"
	QueryError    QueryStatus = "error"
)

// FetchOptions controls a single orchestrator fetch.
type FetchOptions struct {
	// ForceRefresh bypasses the cache and runs the remote fetch.
	ForceRefresh bool
}

// QueryState is a snapshot of one collection's query.
//
// Status keeps the last settled outcome while a refetch is in flight, so a
// consumer can keep showing old data; Fetching reports the in-flight fetch.
type QueryState struct {
	Collection Collection  `json:"collection"`
	Status     QueryStatus `json:"status"`
	Fetching   bool        `json:"fetching"`
	Data       *FetchData  `json:"-"`
	Err        error       `json:"-"`
	UpdatedAt  time.Time   `json:"updatedAt"`
}

// IsLoading reports a first fetch with nothing settled yet.
func (s QueryState) IsLoading() bool {
	return s.Fetching && (s.Status == QueryIdle || s.Status == QueryFetching)
}

// IsSuccess reports a settled success, with or without data.
func (s QueryState) IsSuccess() bool { return s.Status == QuerySuccess }

// IsError reports a settled failure.
func (s QueryState) IsError() bool { return s.Status == QueryError }

// IsFetching reports whether a fetch is in flight.
func (s QueryState) IsFetching() bool { return s.Fetching }

// HasData reports a success that carries a [FetchData]. A success without
// data means the collection was never indexed.
func (s QueryState) HasData() bool { return s.Status == QuerySuccess && s.Data != nil }

// QuerySummary is the JSON view of a [QueryState].
type QuerySummary struct {
	Collection       Collection  `json:"collection"`
	Status           QueryStatus `json:"status"`
	IsLoading        bool        `json:"isLoading"`
	IsSuccess        bool        `json:"isSuccess"`
	IsError          bool        `json:"isError"`
	IsFetching       bool        `json:"isFetching"`
	HasData          bool        `json:"hasData"`
	Error            string      `json:"error,omitempty"`
	Posts            int         `json:"posts"`
	Authors          int         `json:"authors"`
	Records          int         `json:"records"`
	UnavailableCount int         `json:"unavailableCount"`
	UpdatedAt        time.Time   `json:"updatedAt"`
}

// Summary builds the JSON view of s.
func (s QueryState) Summary() QuerySummary {
	sum := QuerySummary{
		Collection: s.Collection,
		Status:     s.Status,
		IsLoading:  s.IsLoading(),
		IsSuccess:  s.IsSuccess(),
		IsError:    s.IsError(),
		IsFetching: s.IsFetching(),
		HasData:    s.HasData(),
		UpdatedAt:  s.UpdatedAt,
	}
	if s.Err != nil {
		sum.Error = s.Err.Error()
	}
	if s.Data != nil {
		sum.Posts = len(s.Data.Posts)
		sum.Authors = len(s.Data.Authors)
		sum.Records = len(s.Data.Records)
		sum.UnavailableCount = s.Data.UnavailableCount()
	}
	return sum
}
