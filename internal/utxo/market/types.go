package market

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

import "context"

type (
	// HTTPClient fetches JSON resources and classifies failures.
	HTTPClient interface {
		URL(path string) string
		GetJSON(ctx context.Context, operation, path string, dst any) error
	}
)
