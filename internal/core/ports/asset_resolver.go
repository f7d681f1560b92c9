package ports

import "context"

// AssetResolver turns a stored asset identifier into a URL a client can fetch.
type AssetResolver interface {
	Resolve(ctx context.Context, assetID string) (string, error)
}
