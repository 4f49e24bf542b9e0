package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/Skotchmaster/pet_place/internal/db"
	"github.com/Skotchmaster/pet_place/internal/hash"
	"github.com/Skotchmaster/pet_place/internal/models"
	"github.com/Skotchmaster/pet_place/internal/repo"
	"github.com/Skotchmaster/pet_place/internal/tokens"
	"github.com/Skotchmaster/pet_place/internal/transport"
)

func init() {
	hash.Cost = bcrypt.MinCost
}

type recordedEvent struct {
	Topic string
	Key   string
	Event any
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (p *recordingPublisher) Publish(_ context.Context, topic, key string, event any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, recordedEvent{Topic: topic, Key: key, Event: event})
	return nil
}

func (p *recordingPublisher) topics() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Topic)
	}
	return out
}

type fixture struct {
	repo    *repo.GormRepo
	events  *recordingPublisher
	auth    *AuthService
	catalog *CatalogService
	chat    *ChatService
	news    *NewsService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	gdb, err := db.Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close(gdb) })

	r := repo.New(gdb)
	pub := &recordingPublisher{}
	return &fixture{
		repo:    r,
		events:  pub,
		auth:    &AuthService{Users: r, Tokens: tokens.NewManager([]byte("test-jwt-secret"), time.Hour), Events: pub},
		catalog: &CatalogService{Products: r, Users: r, Events: pub},
		chat:    &ChatService{Chat: r, Users: r, Events: pub},
		news:    &NewsService{News: r, Users: r, Events: pub},
	}
}

func (f *fixture) register(t *testing.T, username string) *models.User {
	t.Helper()

	res, err := f.auth.Register(context.Background(), transport.RegisterRequest{
		Username: username,
		Email:    username + "@x.com",
		Password: "pw123",
	})
	require.NoError(t, err)
	return res.User
}

func (f *fixture) admin(t *testing.T) *models.User {
	t.Helper()

	require.NoError(t, f.auth.SeedAdmin(context.Background(), "admin", "admin@x.com", "admin-pw"))
	u, err := f.repo.GetUserByUsername(context.Background(), "admin")
	require.NoError(t, err)
	return u
}

func ptr[T any](v T) *T { return &v }
