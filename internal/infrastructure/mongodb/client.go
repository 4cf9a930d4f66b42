package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/graphauth/graphauth/internal/logger"
)

const (
	connectTries    = 30
	connectInterval = 500 * time.Millisecond
)

// Connect dials MongoDB with a bounded retry loop so the service survives
// the database coming up slightly after it does.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	var lastErr error

	for i := 0; i < connectTries; i++ {
		client, err := mongo.Connect(options.Client().
			ApplyURI(uri).
			SetConnectTimeout(time.Second))
		if err != nil {
			lastErr = err
		} else {
			pingCtx, cancel := context.WithTimeout(ctx, time.Second)
			err = client.Ping(pingCtx, nil)
			cancel()
			if err == nil {
				return client, nil
			}
			lastErr = err
			_ = client.Disconnect(ctx)
		}

		logger.Logger.Warn().Err(lastErr).Int("attempt", i+1).Msg("mongodb not reachable, retrying")

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(connectInterval):
		}
	}
	return nil, lastErr
}

// Pinger adapts the driver client to the health handler's probe interface.
type Pinger struct {
	Client *mongo.Client
}

func (p Pinger) Ping(ctx context.Context) error {
	return p.Client.Ping(ctx, nil)
}
