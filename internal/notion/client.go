// Package notion wraps the Notion API behind a small service interface and
// implements the expense-record fetch, normalize and categorise operations
// on top of it.
package notion

import (
	"context"
	"net/http"
	"time"

	"github.com/jomei/notionapi"
)

// requestTimeout bounds every Notion API call. Calls are not cancellable
// once issued; this is the only time bound they get.
const requestTimeout = 30 * time.Second

// Client is the concrete implementation of Service using the Notion SDK.
type Client struct {
	client *notionapi.Client
}

// NewClient creates a new Client with the provided API token.
func NewClient(token string) *Client {
	httpClient := &http.Client{Timeout: requestTimeout}
	return &Client{
		client: notionapi.NewClient(notionapi.Token(token), notionapi.WithHTTPClient(httpClient)),
	}
}

// QueryDatabase queries a Notion database with the given request.
func (c *Client) QueryDatabase(ctx context.Context, databaseID string, req *notionapi.DatabaseQueryRequest) (*notionapi.DatabaseQueryResponse, error) {
	resp, err := c.client.Database.Query(ctx, notionapi.DatabaseID(databaseID), req)
	if err != nil {
		return nil, wrapUpstream("QueryDatabase", err)
	}

	return resp, nil
}

// UpdatePage updates an existing Notion page with the given properties.
func (c *Client) UpdatePage(ctx context.Context, pageID string, properties notionapi.Properties) (*notionapi.Page, error) {
	req := &notionapi.PageUpdateRequest{
		Properties: properties,
	}

	page, err := c.client.Page.Update(ctx, notionapi.PageID(pageID), req)
	if err != nil {
		return nil, wrapUpstream("UpdatePage", err)
	}

	return page, nil
}

// GetDatabase retrieves a database object, including its property schema.
func (c *Client) GetDatabase(ctx context.Context, databaseID string) (*notionapi.Database, error) {
	db, err := c.client.Database.Get(ctx, notionapi.DatabaseID(databaseID))
	if err != nil {
		return nil, wrapUpstream("GetDatabase", err)
	}

	return db, nil
}

// Ensure Client implements the Service interface.
var _ Service = (*Client)(nil)
