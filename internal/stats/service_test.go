// Copyright (c) 2026 Ripple. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package stats

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/ripple/internal/audit"
	"github.com/taibuivan/ripple/internal/platform/apperr"
)

type fakeTrail struct {
	entries []audit.Entry
	reads   int
}

func (t *fakeTrail) All(_ context.Context, _ audit.Filter) ([]audit.Entry, error) {
	t.reads++
	return t.entries, nil
}

type fakeCache struct {
	store map[string][]byte
}

func newFakeCache() *fakeCache {
	return &fakeCache{store: make(map[string][]byte)}
}

func (c *fakeCache) Get(_ context.Context, key string) ([]byte, error) {
	return c.store[key], nil
}

func (c *fakeCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	c.store[key] = value
	return nil
}

type fakeUploader struct {
	name     string
	document []byte
	fail     bool
}

func (u *fakeUploader) Upload(_ context.Context, name string, document []byte) (string, error) {
	if u.fail {
		return "", apperr.Upstream("Report upload rejected", nil)
	}
	u.name = name
	u.document = document
	return "https://share.example/" + name, nil
}

func day(value string) time.Time {
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return parsed
}

func entry(action audit.Action, entityType, on string) audit.Entry {
	return audit.Entry{Action: action, EntityType: entityType, Timestamp: day(on)}
}

func creates(days ...string) []audit.Entry {
	var entries []audit.Entry
	for _, value := range days {
		entries = append(entries, entry(audit.ActionCreate, "post", value))
	}
	return entries
}

func TestService_GetStatistics_Daily(t *testing.T) {
	trail := &fakeTrail{entries: []audit.Entry{
		entry(audit.ActionCreate, "post", "2026-03-01"),
		entry(audit.ActionCreate, "post", "2026-03-01"),
		entry(audit.ActionDelete, "comment", "2026-03-01"),
		entry(audit.ActionCreate, "post", "2026-03-02"),
		entry(audit.ActionRetrieve, "post", "2026-03-05"),
	}}
	service := NewService(trail, newFakeCache(), &fakeUploader{})

	rows, err := service.GetStatistics(context.Background(), Input{Granularity: GranularityDaily})
	require.NoError(t, err)

	// Rows and the tallies within them keep first-encounter order, not
	// alphabetical order.
	assert.Equal(t, []Row{
		{Bucket: "2026-03-01", Actions: []ActionCount{
			{Action: audit.ActionCreate, EntityType: "post", Count: 2},
			{Action: audit.ActionDelete, EntityType: "comment", Count: 1},
		}},
		{Bucket: "2026-03-02", Actions: []ActionCount{
			{Action: audit.ActionCreate, EntityType: "post", Count: 1},
		}},
		{Bucket: "2026-03-05", Actions: []ActionCount{
			{Action: audit.ActionRetrieve, EntityType: "post", Count: 1},
		}},
	}, rows)
}

func TestService_GetStatistics_Granularities(t *testing.T) {
	trail := &fakeTrail{entries: creates("2026-01-01", "2026-01-04", "2026-02-10")}
	tally := func(count int) []ActionCount {
		return []ActionCount{{Action: audit.ActionCreate, EntityType: "post", Count: count}}
	}

	tests := []struct {
		name        string
		granularity string
		expected    []Row
	}{
		{
			name:        "weekly buckets follow ISO weeks",
			granularity: GranularityWeekly,
			// 2026-01-01 falls in ISO week 1; 2026-01-04 is the Sunday
			// closing that same week; 2026-02-10 is week 7.
			expected: []Row{
				{Bucket: "Week 1 2026", Actions: tally(2)},
				{Bucket: "Week 7 2026", Actions: tally(1)},
			},
		},
		{
			name:        "monthly buckets",
			granularity: GranularityMonthly,
			expected: []Row{
				{Bucket: "January 2026", Actions: tally(2)},
				{Bucket: "February 2026", Actions: tally(1)},
			},
		},
		{
			name:        "total collapses everything",
			granularity: GranularityTotal,
			expected:    []Row{{Bucket: "Total", Actions: tally(3)}},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			service := NewService(trail, newFakeCache(), &fakeUploader{})

			rows, err := service.GetStatistics(context.Background(), Input{Granularity: tc.granularity})
			require.NoError(t, err)
			assert.Equal(t, tc.expected, rows)
		})
	}
}

func TestService_GetStatistics_CachesReports(t *testing.T) {
	trail := &fakeTrail{entries: creates("2026-03-01")}
	cache := newFakeCache()
	service := NewService(trail, cache, &fakeUploader{})

	first, err := service.GetStatistics(context.Background(), Input{Granularity: GranularityDaily})
	require.NoError(t, err)

	second, err := service.GetStatistics(context.Background(), Input{Granularity: GranularityDaily})
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, trail.reads, "second report must come from the cache")

	// A different granularity is a different report.
	_, err = service.GetStatistics(context.Background(), Input{Granularity: GranularityTotal})
	require.NoError(t, err)
	assert.Equal(t, 2, trail.reads)

	// So is a different entity-type filter.
	_, err = service.GetStatistics(context.Background(), Input{
		Granularity: GranularityTotal,
		Filter:      audit.Filter{EntityTypes: []string{"post", "comment"}},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, trail.reads)
}

func TestService_Export(t *testing.T) {
	trail := &fakeTrail{entries: creates("2026-03-01", "2026-03-02")}
	uploader := &fakeUploader{}
	service := NewService(trail, newFakeCache(), uploader)

	url, err := service.Export(context.Background(), Input{Granularity: GranularityDaily})
	require.NoError(t, err)
	assert.Contains(t, url, "https://share.example/ripple-statistics-daily-")

	document := string(uploader.document)
	lines := strings.Split(strings.TrimSpace(document), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "bucket,action,entity_type,count", lines[0])
	assert.Equal(t, "2026-03-01,create,post,1", lines[1])
	assert.Equal(t, "2026-03-02,create,post,1", lines[2])
}

func TestService_Export_UploadFailure(t *testing.T) {
	trail := &fakeTrail{entries: creates("2026-03-01")}
	service := NewService(trail, newFakeCache(), &fakeUploader{fail: true})

	_, err := service.Export(context.Background(), Input{Granularity: GranularityDaily})
	require.Error(t, err)
	assert.Equal(t, "UPSTREAM_FAILURE", apperr.As(err).Code)
}

func TestRenderCSV_Empty(t *testing.T) {
	document, err := RenderCSV([]Row{})
	require.NoError(t, err)
	assert.Equal(t, "bucket,action,entity_type,count\n", string(document))
}
