package gymapi

import (
	"context"
	"net/http"

	"gymclub/internal/apiclient"
)

func getList[T any](ctx context.Context, c *apiclient.Client, path string) ([]T, error) {
	resp, err := c.Get(ctx, path)
	if err != nil {
		return nil, err
	}
	return apiclient.DecodeList[T](resp)
}

func getItem[T any](ctx context.Context, c *apiclient.Client, path string) (T, error) {
	return sendItem[T](ctx, c, http.MethodGet, path, nil)
}

func sendItem[T any](ctx context.Context, c *apiclient.Client, method, path string, body any) (T, error) {
	resp, err := c.Do(ctx, method, path, body)
	if err != nil {
		var zero T
		return zero, err
	}
	return apiclient.DecodeItem[T](resp)
}

// send issues a call whose response body is not needed.
func send(ctx context.Context, c *apiclient.Client, method, path string, body any) error {
	_, err := c.Do(ctx, method, path, body)
	return err
}
