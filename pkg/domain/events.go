package domain

import (
	"time"
)

// Operation identifies the kind of property access.
type Operation string

const (
	OpGet Operation = "get"
	OpSet Operation = "set"
)

// AccessEvent describes one property access through the gateway.
type AccessEvent struct {
	Timestamp time.Time `json:"timestamp"`
	Class     string    `json:"class"`
	Property  string    `json:"property"`
	Operation Operation `json:"operation"`
	// Declared is false when the property has no schema entry.
	Declared bool `json:"declared"`
	// Err is nil for an accepted access.
	Err error `json:"-"`
}

// Outcome returns "ok" for accepted accesses, otherwise the error kind.
func (e *AccessEvent) Outcome() string {
	if e.Err == nil {
		return "ok"
	}
	if kind, ok := KindOf(e.Err); ok {
		return string(kind)
	}
	return "error"
}

// SchemaEvent describes the first build of a class schema.
type SchemaEvent struct {
	Timestamp  time.Time     `json:"timestamp"`
	Class      string        `json:"class"`
	Properties int           `json:"properties"`
	Duration   time.Duration `json:"duration"`
	Err        error         `json:"-"`
}

// EnumEvent describes the resolution of one property's enum.
type EnumEvent struct {
	Timestamp time.Time `json:"timestamp"`
	Class     string    `json:"class"`
	Property  string    `json:"property"`
	// Provider is empty for inline literal enums.
	Provider string `json:"provider,omitempty"`
	Values   int    `json:"values"`
	Err      error  `json:"-"`
}

// Hooks defines callbacks for engine observability.
// Any field may be nil.
type Hooks struct {
	OnAccess      func(*AccessEvent)
	OnSchemaBuilt func(*SchemaEvent)
	OnEnumResolve func(*EnumEvent)
}

// Merge returns hooks that invoke h first and then other.
func (h Hooks) Merge(other Hooks) Hooks {
	return Hooks{
		OnAccess:      chain(h.OnAccess, other.OnAccess),
		OnSchemaBuilt: chain(h.OnSchemaBuilt, other.OnSchemaBuilt),
		OnEnumResolve: chain(h.OnEnumResolve, other.OnEnumResolve),
	}
}

func chain[E any](a, b func(E)) func(E) {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	return func(e E) {
		a(e)
		b(e)
	}
}
