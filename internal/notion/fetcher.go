package notion

import (
	"context"
	"fmt"

	"github.com/dvloznov/expense-bot/internal/logger"
	"github.com/jomei/notionapi"
)

// maxPageSize is the page size requested from Notion per query. The original
// database caps query pages at 100; 50 keeps responses small and matches the
// review batch size.
const maxPageSize = 50

// Fetcher pages through the transactions database collecting records that
// have a date but no category relation yet, newest first.
type Fetcher struct {
	service    Service
	databaseID string
	props      PropertyNames
}

// NewFetcher creates a new Fetcher against the given database.
func NewFetcher(service Service, databaseID string, props PropertyNames) *Fetcher {
	return &Fetcher{
		service:    service,
		databaseID: databaseID,
		props:      props,
	}
}

// FetchUncategorised returns up to limit uncategorised records sorted by date
// descending. Zero matching rows is not an error; the result is empty. Any
// page request failure propagates immediately without retry.
func (f *Fetcher) FetchUncategorised(ctx context.Context, limit int) ([]Record, error) {
	log := logger.FromContext(ctx)

	if limit <= 0 {
		return nil, nil
	}

	filter := notionapi.AndCompoundFilter{
		notionapi.PropertyFilter{
			Property: f.props.Date,
			Date:     &notionapi.DateFilterCondition{IsNotEmpty: true},
		},
		notionapi.PropertyFilter{
			Property: f.props.Category,
			Relation: &notionapi.RelationFilterCondition{IsEmpty: true},
		},
	}
	sorts := []notionapi.SortObject{
		{Property: f.props.Date, Direction: notionapi.SortOrderDESC},
	}

	// Bound the loop by the number of pages actually needed for limit, so a
	// store with more matching rows than limit can never run away.
	maxPages := (limit + maxPageSize - 1) / maxPageSize

	var records []Record
	var cursor notionapi.Cursor

	for page := 0; page < maxPages; page++ {
		pageSize := maxPageSize
		if remaining := limit - len(records); remaining < pageSize {
			pageSize = remaining
		}

		req := &notionapi.DatabaseQueryRequest{
			PageSize: pageSize,
			Filter:   filter,
			Sorts:    sorts,
		}
		if cursor != "" {
			req.StartCursor = cursor
		}

		resp, err := f.service.QueryDatabase(ctx, f.databaseID, req)
		if err != nil {
			return nil, fmt.Errorf("fetch uncategorised: %w", err)
		}

		for i := range resp.Results {
			records = append(records, normalizePage(&resp.Results[i], f.props))
			if len(records) >= limit {
				return records, nil
			}
		}

		if !resp.HasMore {
			break
		}
		cursor = resp.NextCursor
	}

	log.Debug().Int("count", len(records)).Msg("Fetched uncategorised records")

	return records, nil
}
