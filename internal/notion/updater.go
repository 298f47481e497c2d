package notion

import (
	"context"
	"fmt"

	"github.com/jomei/notionapi"
)

// Updater assigns a category to one expense record.
type Updater struct {
	service          Service
	categoryProperty string
}

// NewUpdater creates a new Updater writing to the given relation property.
func NewUpdater(service Service, categoryProperty string) *Updater {
	return &Updater{
		service:          service,
		categoryProperty: categoryProperty,
	}
}

// ApplyCategory points the record's category relation at exactly the given
// category page, replacing any prior value. The call is not retried; errors
// propagate to the caller with the upstream status attached.
func (u *Updater) ApplyCategory(ctx context.Context, recordID, categoryID string) error {
	props := notionapi.Properties{
		u.categoryProperty: notionapi.RelationProperty{
			Relation: []notionapi.Relation{
				{ID: notionapi.PageID(categoryID)},
			},
		},
	}

	if _, err := u.service.UpdatePage(ctx, recordID, props); err != nil {
		return fmt.Errorf("apply category: %w", err)
	}

	return nil
}
