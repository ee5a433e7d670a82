// Copyright (c) 2026 Ripple. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package stats implements activity statistics over the user-action trail.

The trail is bucketed by timestamp at a requested granularity (daily,
weekly, monthly, or a single total) and reported as ordered rows. Reports
are cached briefly in Redis and can be exported as CSV documents to an
external document store.

# Architecture

  - Service: Aggregation, report cache, export composition.
  - Renderer: CSV serialization of report rows.
  - Handler: Admin-only REST endpoints under /api/v1/statistics.
*/
package stats

import "github.com/taibuivan/ripple/internal/audit"

// Report granularities.
const (
	GranularityDaily   = "daily"
	GranularityWeekly  = "weekly"
	GranularityMonthly = "monthly"
	GranularityTotal   = "total"
)

// ActionCount is the tally of one action kind on one entity type within
// a report bucket.
type ActionCount struct {
	Action     audit.Action `json:"action"`
	EntityType string       `json:"entity_type,omitempty"`
	Count      int          `json:"count"`
}

// Row is one bucket of the aggregated report. Rows keep the order in
// which their buckets were first encountered in the chronological trail,
// and the tallies inside a row do the same.
type Row struct {
	Bucket  string        `json:"bucket"`
	Actions []ActionCount `json:"actions"`
}

// Input selects the slice of the trail to aggregate and how to bucket it.
type Input struct {
	// Granularity is one of the Granularity* constants; empty means total.
	Granularity string

	// Filter narrows the trail before bucketing.
	Filter audit.Filter
}

const (
	FieldGranularity = "granularity"
	FieldURL         = "url"
)
