// Copyright (c) 2026 Ripple. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package stats

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/taibuivan/ripple/internal/platform/apperr"
	"github.com/taibuivan/ripple/pkg/slice"
)

// RenderCSV serializes report rows into a CSV document with a header line.
// Records preserve the report's row and tally order.
func RenderCSV(rows []Row) ([]byte, error) {
	var buffer bytes.Buffer
	writer := csv.NewWriter(&buffer)

	records := [][]string{{"bucket", "action", "entity_type", "count"}}
	for _, row := range rows {
		records = append(records, slice.Map(row.Actions, func(tally ActionCount) []string {
			return []string{row.Bucket, string(tally.Action), tally.EntityType, strconv.Itoa(tally.Count)}
		})...)
	}

	if err := writer.WriteAll(records); err != nil {
		return nil, apperr.Internal(fmt.Errorf("could not render report: %w", err))
	}

	return buffer.Bytes(), nil
}
