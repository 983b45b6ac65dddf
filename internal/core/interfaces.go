package core

import (
	"context"
)

type KeyValueClient interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Keys(ctx context.Context) ([]string, error)
}

type CampaignRepository interface {
	List(ctx context.Context) ([]Campaign, error)
	Get(ctx context.Context, id string) (Campaign, error)
	Put(ctx context.Context, campaign Campaign) error
	Delete(ctx context.Context, id string) error
}

type PipelineClient interface {
	Create(ctx context.Context, input CampaignInput) (Campaign, error)
	Delete(ctx context.Context, id string) error
	Health(ctx context.Context) error
}
