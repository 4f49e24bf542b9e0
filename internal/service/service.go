package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/Skotchmaster/pet_place/internal/logging"
	"github.com/Skotchmaster/pet_place/internal/models"
)

const sideEffectTimeout = 5 * time.Second

// Publisher ships domain events. Implementations live in internal/events.
type Publisher interface {
	Publish(ctx context.Context, topic, key string, event any) error
}

// Indexer mirrors catalog writes into the search index.
type Indexer interface {
	Put(ctx context.Context, p *models.Product) error
	Remove(ctx context.Context, id uint) error
}

// publish sends an event without failing the caller.
func publish(ctx context.Context, p Publisher, topic, key string, event any) {
	if p == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sideEffectTimeout)
	defer cancel()

	if err := p.Publish(ctx, topic, key, event); err != nil {
		logging.FromContext(ctx).Warn().Err(err).
			Str("topic", topic).
			Str("key", key).
			Msg("event_publish_failed")
	}
}

func notFound(err error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %s", ErrNotFound, what)
	}
	return err
}

// requireAdmin loads the caller and checks the admin flag.
func requireAdmin(ctx context.Context, users UserStore, callerID uint) (*models.User, error) {
	if callerID == 0 {
		return nil, ErrUnauthenticated
	}
	u, err := users.GetUserByID(ctx, callerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: caller %d", ErrUnauthenticated, callerID)
		}
		return nil, fmt.Errorf("load caller: %w", err)
	}
	if !u.IsAdmin {
		return nil, ErrForbidden
	}
	return u, nil
}
