package redis

import (
	"context"
	"fmt"
	"sort"
	"time"

	backend "github.com/redis/go-redis/v9"
	"github.com/yannn/strictdata/internal/values"
	"github.com/yannn/strictdata/pkg/enum"
)

// Provider implements enum.Provider by reading the members of a Redis SET.
type Provider struct {
	client  backend.UniversalClient
	key     string
	prefix  string
	timeout time.Duration
	numeric bool
}

type Option func(*Provider)

// WithPrefix sets the key prefix prepended to the set name.
func WithPrefix(prefix string) Option {
	return func(p *Provider) {
		p.prefix = prefix
	}
}

// WithTimeout bounds each SMEMBERS call.
func WithTimeout(d time.Duration) Option {
	return func(p *Provider) {
		p.timeout = d
	}
}

// WithNumeric converts members that spell an integer or a decimal into int64 or
// float64. Redis stores strings only, so without it every value is a string.
func WithNumeric() Option {
	return func(p *Provider) {
		p.numeric = true
	}
}

// New creates a provider for the set at address.
func New(address, password string, db int, key string, opts ...Option) *Provider {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, key, opts...)
}

// NewFromClient creates a provider from an existing client.
func NewFromClient(client backend.UniversalClient, key string, opts ...Option) *Provider {
	p := &Provider{
		client:  client,
		key:     key,
		prefix:  "strictdata:enum:",
		timeout: 5 * time.Second,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Factory returns an enum.Factory yielding p, for registration under a class name.
func (p *Provider) Factory() enum.Factory {
	return func() any { return p }
}

// Key returns the full Redis key of the set.
func (p *Provider) Key() string {
	return p.prefix + p.key
}

// EnumValues returns the set members in sorted order.
func (p *Provider) EnumValues() ([]any, error) {
	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()
	return p.Members(ctx)
}

// Members reads the set under ctx.
func (p *Provider) Members(ctx context.Context) ([]any, error) {
	members, err := p.client.SMembers(ctx, p.Key()).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read enum set %s: %w", p.Key(), err)
	}
	sort.Strings(members)

	out := make([]any, 0, len(members))
	for _, m := range members {
		out = append(out, p.convert(m))
	}
	return out, nil
}

// Publish adds values to the set. Values are stored in their string form.
func (p *Provider) Publish(ctx context.Context, vals ...any) error {
	if len(vals) == 0 {
		return nil
	}
	members := make([]any, 0, len(vals))
	for _, v := range vals {
		members = append(members, fmt.Sprint(v))
	}
	if err := p.client.SAdd(ctx, p.Key(), members...).Err(); err != nil {
		return fmt.Errorf("failed to publish enum set %s: %w", p.Key(), err)
	}
	return nil
}

func (p *Provider) convert(m string) any {
	if !p.numeric {
		return m
	}
	if n, ok := values.ParseInt(m); ok {
		return n
	}
	if f, ok := values.ParseFloat(m); ok {
		return f
	}
	return m
}
