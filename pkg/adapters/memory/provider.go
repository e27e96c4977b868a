package memory

import (
	"slices"
	"sync/atomic"

	"github.com/yannn/strictdata/pkg/enum"
)

// Provider implements enum.Provider using a fixed list of values.
type Provider struct {
	values []any
	calls  atomic.Int64
}

// NewProvider creates a provider returning vals.
func NewProvider(vals ...any) *Provider {
	return &Provider{values: slices.Clone(vals)}
}

// EnumValues returns a copy of the configured values.
func (p *Provider) EnumValues() ([]any, error) {
	p.calls.Add(1)
	return slices.Clone(p.values), nil
}

// Calls reports how many times EnumValues has been queried.
func (p *Provider) Calls() int64 {
	return p.calls.Load()
}

// NewRegistry creates an enum registry holding one static provider per name.
func NewRegistry(sets map[string][]any) *enum.Registry {
	reg := enum.NewRegistry()
	for name, vals := range sets {
		reg.RegisterProvider(name, NewProvider(vals...))
	}
	return reg
}
