// client/documents.go
package client

import (
	"context"
	"fmt"
	"net/url"

	"github.com/nikhilsag/hrbridge/model"
)

func (c *Client) ListDocuments(ctx context.Context, filter model.DocumentFilter) ([]model.Document, error) {
	query := url.Values{}
	for k, v := range filter.Params() {
		query.Set(k, fmt.Sprintf("%v", v))
	}
	return fetchList[model.Document](ctx, c, "/documents", query)
}

func (c *Client) UploadDocument(ctx context.Context, payload model.UploadDocumentPayload, idempotencyKey string) (*model.Document, error) {
	return createOne[model.Document](ctx, c, "/documents", payload, idempotencyKey)
}

func (c *Client) ArchiveDocument(ctx context.Context, id int64, idempotencyKey string) (*model.Document, error) {
	return postAction[model.Document](ctx, c, fmt.Sprintf("/documents/%d/archive", id), nil, idempotencyKey)
}

func (c *Client) DeleteDocument(ctx context.Context, id int64) error {
	return deleteOne(ctx, c, fmt.Sprintf("/documents/%d", id))
}
