// client/envelope.go
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	apierrors "github.com/nikhilsag/hrbridge/errors"
)

// The HR platform wraps every payload in a data envelope:
// {"data": {...}} for single items, {"data": [...]} for lists.
type envelope[T any] struct {
	Data T `json:"data"`
}

type listEnvelope[T any] struct {
	Data []T `json:"data"`
}

// fetchOne GETs a single-item envelope and returns the inner item.
func fetchOne[T any](ctx context.Context, c *Client, endpoint string, query url.Values) (*T, error) {
	body, err := c.Do(ctx, http.MethodGet, endpoint, RequestOptions{Query: query})
	if err != nil {
		return nil, err
	}
	return decodeOne[T](endpoint, body)
}

// fetchList GETs a list envelope and returns the inner list; an absent
// data field yields an empty list.
func fetchList[T any](ctx context.Context, c *Client, endpoint string, query url.Values) ([]T, error) {
	body, err := c.Do(ctx, http.MethodGet, endpoint, RequestOptions{Query: query})
	if err != nil {
		return nil, err
	}
	var env listEnvelope[T]
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, apierrors.NewSchemaValidationError(schemaName[T](), endpoint, err)
	}
	if env.Data == nil {
		return []T{}, nil
	}
	return env.Data, nil
}

// createOne POSTs a body and returns the created item.
func createOne[T any](ctx context.Context, c *Client, endpoint string, payload any, idempotencyKey string) (*T, error) {
	body, err := c.Do(ctx, http.MethodPost, endpoint, RequestOptions{
		Body:           payload,
		IdempotencyKey: idempotencyKey,
	})
	if err != nil {
		return nil, err
	}
	return decodeOne[T](endpoint, body)
}

// replaceOne PUTs a body and returns the replaced item.
func replaceOne[T any](ctx context.Context, c *Client, endpoint string, payload any) (*T, error) {
	body, err := c.Do(ctx, http.MethodPut, endpoint, RequestOptions{Body: payload})
	if err != nil {
		return nil, err
	}
	return decodeOne[T](endpoint, body)
}

// patchOne PATCHes a partial body and returns the updated item.
func patchOne[T any](ctx context.Context, c *Client, endpoint string, payload any) (*T, error) {
	body, err := c.Do(ctx, http.MethodPatch, endpoint, RequestOptions{Body: payload})
	if err != nil {
		return nil, err
	}
	return decodeOne[T](endpoint, body)
}

// deleteOne issues a DELETE; the upstream answers 204 with no body.
func deleteOne(ctx context.Context, c *Client, endpoint string) error {
	_, err := c.Do(ctx, http.MethodDelete, endpoint, RequestOptions{})
	return err
}

// postAction POSTs to a state-transition endpoint (approve, terminate,
// archive, ...) and returns the resulting item.
func postAction[T any](ctx context.Context, c *Client, endpoint string, payload any, idempotencyKey string) (*T, error) {
	return createOne[T](ctx, c, endpoint, payload, idempotencyKey)
}

func decodeOne[T any](endpoint string, body []byte) (*T, error) {
	var env envelope[T]
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, apierrors.NewSchemaValidationError(schemaName[T](), endpoint, err)
	}
	return &env.Data, nil
}

func schemaName[T any]() string {
	var zero T
	return fmt.Sprintf("%T", zero)
}
