package campaigns

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"slices"
	"strings"

	"github.com/samber/lo"

	"github.com/shubhamdevjs/Reddit-Masterming/internal/core"
	"github.com/shubhamdevjs/Reddit-Masterming/pkg/async"
)

const keyPrefix = "campaign."

var (
	ErrNotFound  = errors.New("campaign not found")
	ErrInvalidID = errors.New("invalid campaign id")
)

// Ids end up in KV keys, NATS restricts keys to this alphabet.
var validID = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// Repository stores every campaign as a separate JSON snapshot under "campaign.<id>".
type Repository struct {
	Logger *slog.Logger
	Store  core.KeyValueClient
}

func (r *Repository) Init(_ context.Context) error {
	r.Logger = r.Logger.With("component", "campaigns.Repository")
	return nil
}

// List returns all stored campaigns, newest first. Undecodable entries are skipped.
func (r *Repository) List(ctx context.Context) ([]core.Campaign, error) {
	keys, err := r.Store.Keys(ctx)
	if err != nil {
		return nil, fmt.Errorf("list campaign keys: %w", err)
	}
	keys = lo.Filter(keys, func(k string, _ int) bool { return strings.HasPrefix(k, keyPrefix) })

	loaded, err := async.AsyncMapN(ctx, 8, keys, func(ctx context.Context, key string, _ int) (*core.Campaign, error) {
		c, err := r.load(ctx, key)
		switch {
		case errors.Is(err, ErrNotFound):
			return nil, nil
		case errors.Is(err, errCorrupt):
			r.Logger.Warn("skipping undecodable campaign", "key", key, "error", err)
			return nil, nil
		case err != nil:
			return nil, err
		}
		return &c, nil
	})
	if err != nil {
		return nil, err
	}

	result := lo.FilterMap(loaded, func(c *core.Campaign, _ int) (core.Campaign, bool) {
		if c == nil {
			return core.Campaign{}, false
		}
		return *c, true
	})

	slices.SortStableFunc(result, func(a, b core.Campaign) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})

	return result, nil
}

func (r *Repository) Get(ctx context.Context, id string) (core.Campaign, error) {
	key, err := campaignKey(id)
	if err != nil {
		return core.Campaign{}, err
	}
	return r.load(ctx, key)
}

// Put stores the campaign, replacing any previous snapshot with the same id.
func (r *Repository) Put(ctx context.Context, campaign core.Campaign) error {
	key, err := campaignKey(campaign.ID)
	if err != nil {
		return err
	}

	data, err := json.Marshal(campaign)
	if err != nil {
		return fmt.Errorf("encode campaign %s: %w", campaign.ID, err)
	}

	if err := r.Store.Put(ctx, key, data); err != nil {
		return fmt.Errorf("store campaign %s: %w", campaign.ID, err)
	}

	r.Logger.Debug("campaign stored", "id", campaign.ID, "posts", len(campaign.Posts))
	return nil
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	key, err := campaignKey(id)
	if err != nil {
		return err
	}

	if _, err := r.Store.Get(ctx, key); err != nil {
		if errors.Is(err, core.ErrKeyNotFound) {
			return fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return err
	}

	if err := r.Store.Delete(ctx, key); err != nil && !errors.Is(err, core.ErrKeyNotFound) {
		return fmt.Errorf("delete campaign %s: %w", id, err)
	}

	r.Logger.Debug("campaign deleted", "id", id)
	return nil
}

var errCorrupt = errors.New("corrupt campaign")

func (r *Repository) load(ctx context.Context, key string) (core.Campaign, error) {
	data, err := r.Store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, core.ErrKeyNotFound) {
			return core.Campaign{}, fmt.Errorf("%w: %s", ErrNotFound, strings.TrimPrefix(key, keyPrefix))
		}
		return core.Campaign{}, err
	}

	var c core.Campaign
	if err := json.Unmarshal(data, &c); err != nil {
		return core.Campaign{}, fmt.Errorf("%w %s: %w", errCorrupt, key, err)
	}
	return c, nil
}

func campaignKey(id string) (string, error) {
	if !validID.MatchString(id) {
		return "", fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return keyPrefix + id, nil
}
