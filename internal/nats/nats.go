package nats

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	libnats "github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"github.com/shubhamdevjs/Reddit-Masterming/internal/config"
	"github.com/shubhamdevjs/Reddit-Masterming/internal/core"
)

const (
	appName       = "campaignplan"
	defaultBucket = appName
)

// NATS is a core.KeyValueClient backed by a JetStream key-value bucket.
type NATS struct {
	Logger *slog.Logger
	Config *config.Config

	js jetstream.JetStream
	kv jetstream.KeyValue
}

func (n *NATS) Init(ctx context.Context) error {
	n.Logger = n.Logger.With("component", "nats.NATS")

	nc, err := libnats.Connect(n.Config.NATSURL, libnats.Name(appName))
	if err != nil {
		return err
	}

	js, err := jetstream.New(nc)
	if err != nil {
		return err
	}

	n.js = js

	if n.Config.NATSInit {
		if err := n.initNATS(ctx); err != nil {
			return err
		}
	}

	kv, err := js.KeyValue(ctx, n.bucket())
	if err != nil {
		return fmt.Errorf("open bucket %s: %w", n.bucket(), err)
	}
	n.kv = kv

	return nil
}

func (n *NATS) HealthCheck(context.Context) error {
	_, err := n.js.Conn().RTT()
	return err
}

func (n *NATS) Shutdown(context.Context) error {
	return n.js.Conn().Drain()
}

func (n *NATS) Get(ctx context.Context, key string) ([]byte, error) {
	entry, err := n.kv.Get(ctx, key)
	if err != nil {
		if errors.Is(err, jetstream.ErrKeyNotFound) {
			return nil, core.ErrKeyNotFound
		}
		return nil, err
	}

	return entry.Value(), nil
}

func (n *NATS) Put(ctx context.Context, key string, value []byte) error {
	_, err := n.kv.Put(ctx, key, value)
	if err != nil {
		return fmt.Errorf("failed to store key %s: %w", key, err)
	}
	return nil
}

func (n *NATS) Delete(ctx context.Context, key string) error {
	err := n.kv.Delete(ctx, key)
	if errors.Is(err, jetstream.ErrKeyNotFound) {
		return core.ErrKeyNotFound
	}
	return err
}

func (n *NATS) Keys(ctx context.Context) ([]string, error) {
	keys, err := n.kv.Keys(ctx)
	if err != nil {
		if errors.Is(err, jetstream.ErrNoKeysFound) {
			return nil, nil
		}
		return nil, err
	}
	return keys, nil
}

func (n *NATS) bucket() string {
	if n.Config.NATSBucket != "" {
		return n.Config.NATSBucket
	}
	return defaultBucket
}

func (n *NATS) initNATS(ctx context.Context) error {
	n.Logger.Info("Initializing NATS")

	_, err := n.js.CreateOrUpdateKeyValue(ctx, jetstream.KeyValueConfig{
		Bucket:      n.bucket(),
		Description: "campaign snapshots",
		History:     1,
	})
	if err != nil {
		return err
	}
	n.Logger.Info("KeyValue created or updated", "name", n.bucket())

	return nil
}
