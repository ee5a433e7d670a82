// Copyright (c) 2026 Ripple. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package stats

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/ripple/internal/audit"
	"github.com/taibuivan/ripple/internal/platform/constants"
	"github.com/taibuivan/ripple/internal/platform/ctxutil"
)

// reportCacheTTL keeps aggregated reports hot without letting an admin
// dashboard poll hammer the trail table.
const reportCacheTTL = 60 * time.Second

// # Contracts

// TrailReader reads the user-action trail in chronological order.
type TrailReader interface {
	All(context context.Context, filter audit.Filter) ([]audit.Entry, error)
}

// Cache stores rendered reports under a TTL. A miss returns (nil, nil).
type Cache interface {
	Get(context context.Context, key string) ([]byte, error)
	Set(context context.Context, key string, value []byte, ttl time.Duration) error
}

// Uploader stores a rendered report document and returns a shareable URL.
type Uploader interface {
	Upload(context context.Context, name string, document []byte) (string, error)
}

// RedisCache adapts a go-redis client to the [Cache] contract.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache wraps an existing Redis client.
func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

func (cache *RedisCache) Get(context context.Context, key string) ([]byte, error) {
	value, err := cache.client.Get(context, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	return value, err
}

func (cache *RedisCache) Set(context context.Context, key string, value []byte, ttl time.Duration) error {
	return cache.client.Set(context, key, value, ttl).Err()
}

// # Service

// Service implements statistics use cases.
type Service struct {
	trail    TrailReader
	cache    Cache
	uploader Uploader
}

// NewService constructs a new [Service] with necessary dependencies.
func NewService(trail TrailReader, cache Cache, uploader Uploader) *Service {
	return &Service{trail: trail, cache: cache, uploader: uploader}
}

/*
GetStatistics aggregates the trail into report rows at the requested
granularity.

Description: Rows appear in the order their buckets are first encountered
in the chronological trail. Reports are served from the cache when a
matching aggregation ran within the last minute; cache failures fall back
to a fresh aggregation.

Parameters:
  - context: context.Context
  - input: Input

Returns:
  - []Row: Ordered report rows
  - error: Retrieval failures
*/
func (service *Service) GetStatistics(context context.Context, input Input) ([]Row, error) {
	key := cacheKey(input)

	cached, err := service.cache.Get(context, key)
	if err != nil {
		ctxutil.GetLogger(context).WarnContext(context, "stats_cache_read_failed", "error", err.Error())
	} else if cached != nil {
		var rows []Row
		if err := json.Unmarshal(cached, &rows); err == nil {
			return rows, nil
		}
	}

	entries, err := service.trail.All(context, input.Filter)
	if err != nil {
		return nil, err
	}

	rows := bucketize(entries, input.Granularity)

	if encoded, err := json.Marshal(rows); err == nil {
		if err := service.cache.Set(context, key, encoded, reportCacheTTL); err != nil {
			ctxutil.GetLogger(context).WarnContext(context, "stats_cache_write_failed", "error", err.Error())
		}
	}

	return rows, nil
}

/*
Export renders the report as a CSV document and uploads it to the
document store.

Parameters:
  - context: context.Context
  - input: Input

Returns:
  - string: Shareable URL of the uploaded document
  - error: Retrieval or upstream failures
*/
func (service *Service) Export(context context.Context, input Input) (string, error) {
	rows, err := service.GetStatistics(context, input)
	if err != nil {
		return "", err
	}

	document, err := RenderCSV(rows)
	if err != nil {
		return "", err
	}

	granularity := input.Granularity
	if granularity == "" {
		granularity = GranularityTotal
	}
	name := fmt.Sprintf("ripple-statistics-%s-%s.csv", granularity, time.Now().UTC().Format("20060102-150405"))

	return service.uploader.Upload(context, name, document)
}

// bucketize folds chronological entries into ordered report rows. Both the
// rows and the tallies inside a row keep first-encounter order.
func bucketize(entries []audit.Entry, granularity string) []Row {
	rows := []Row{}
	rowIndexes := make(map[string]int)
	tallyIndexes := make(map[string]map[string]int)

	for _, entry := range entries {
		bucket := bucketLabel(entry.Timestamp, granularity)

		rowIndex, seen := rowIndexes[bucket]
		if !seen {
			rowIndex = len(rows)
			rowIndexes[bucket] = rowIndex
			rows = append(rows, Row{Bucket: bucket})
			tallyIndexes[bucket] = make(map[string]int)
		}

		tallyKey := string(entry.Action) + ":" + entry.EntityType
		tallyIndex, seen := tallyIndexes[bucket][tallyKey]
		if !seen {
			tallyIndex = len(rows[rowIndex].Actions)
			tallyIndexes[bucket][tallyKey] = tallyIndex
			rows[rowIndex].Actions = append(rows[rowIndex].Actions, ActionCount{
				Action:     entry.Action,
				EntityType: entry.EntityType,
			})
		}
		rows[rowIndex].Actions[tallyIndex].Count++
	}

	return rows
}

// bucketLabel formats a timestamp into its report bucket.
func bucketLabel(timestamp time.Time, granularity string) string {
	switch granularity {
	case GranularityDaily:
		return timestamp.Format("2006-01-02")
	case GranularityWeekly:
		year, week := timestamp.ISOWeek()
		return fmt.Sprintf("Week %d %d", week, year)
	case GranularityMonthly:
		return timestamp.Format("January 2006")
	default:
		return "Total"
	}
}

// cacheKey builds a deterministic Redis key for the report parameters.
func cacheKey(input Input) string {
	granularity := input.Granularity
	if granularity == "" {
		granularity = GranularityTotal
	}

	actor := ""
	if input.Filter.ActorID != nil {
		actor = fmt.Sprint(*input.Filter.ActorID)
	}
	action := ""
	if input.Filter.Action != nil {
		action = string(*input.Filter.Action)
	}
	from := ""
	if input.Filter.From != nil {
		from = input.Filter.From.UTC().Format(time.RFC3339)
	}
	to := ""
	if input.Filter.To != nil {
		to = input.Filter.To.UTC().Format(time.RFC3339)
	}

	return fmt.Sprintf("%s%s:%s:%s:%s:%s:%s",
		constants.RedisPrefixStatsReport, granularity, actor, action,
		strings.Join(input.Filter.EntityTypes, ","), from, to)
}
