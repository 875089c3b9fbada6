// Package program implements Trot's per-embedding memory accountant
// (spec §4.A). Every list, node, and handle allocated anywhere in a
// Trot graph is charged against exactly one Program; Program is the
// object that decides whether an allocation is allowed to proceed.
package program

import (
	"sync"

	"github.com/GeekHorse/Trot-sub001/internal/errs"
)

// Unlimited is the sentinel limit meaning "no memory ceiling".
const Unlimited int64 = -1

// Program owns the memory-use counter and limit described in spec §4.A.
// It also carries the tunables referenced by internal/hooflist (NodeSize,
// MaxChildren, TypeMin/TypeMax) so a single Program value configures an
// entire Trot graph, the way the spec's §9 design note describes the
// Program as the owner of "all lists and handles created under it".
//
// A Program is not safe for concurrent use (spec §5: single-threaded
// cooperative model; concurrent mutation of one Program is undefined).
type Program struct {
	mu    sync.Mutex
	used  int64
	limit int64 // Unlimited means no limit

	nodeSize    int
	maxChildren int64
	typeMin     int32
	typeMax     int32
}

// Option configures a Program at construction time.
type Option func(*Program)

// WithMemLimit sets the initial memory limit in bytes. A negative value
// means unlimited.
func WithMemLimit(limit int64) Option {
	return func(p *Program) {
		if limit < 0 {
			p.limit = Unlimited
		} else {
			p.limit = limit
		}
	}
}

// WithNodeSize overrides NODE_SIZE (spec §3: a tunable constant >= 4).
func WithNodeSize(size int) Option {
	return func(p *Program) {
		if size >= 4 {
			p.nodeSize = size
		}
	}
}

// WithMaxChildren overrides MAX_CHILDREN (spec §3: <= INT_MAX).
func WithMaxChildren(max int64) Option {
	return func(p *Program) {
		if max > 0 && max <= intMax {
			p.maxChildren = max
		}
	}
}

// WithTypeRange overrides [TYPE_MIN, TYPE_MAX] (spec §3).
func WithTypeRange(min, max int32) Option {
	return func(p *Program) {
		if min <= max {
			p.typeMin, p.typeMax = min, max
		}
	}
}

const (
	defaultNodeSize    = 64 // NODE_SIZE in the original C source
	intMax             = int64(1)<<31 - 1 // INT_MAX of the 32-bit hooflist.Int
	defaultMaxChildren = intMax
	defaultTypeMin     = int32(0)
	defaultTypeMax     = int32(1<<15 - 1)
)

// New creates a Program with default tunables, applying opts in order.
func New(opts ...Option) *Program {
	p := &Program{
		limit:       Unlimited,
		nodeSize:    defaultNodeSize,
		maxChildren: defaultMaxChildren,
		typeMin:     defaultTypeMin,
		typeMax:     defaultTypeMax,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// NodeSize returns the configured node chunk capacity.
func (p *Program) NodeSize() int { return p.nodeSize }

// MaxChildren returns the configured child-count ceiling.
func (p *Program) MaxChildren() int64 { return p.maxChildren }

// TypeRange returns the configured [TYPE_MIN, TYPE_MAX] bounds.
func (p *Program) TypeRange() (min, max int32) { return p.typeMin, p.typeMax }

// MemGetUsed returns the number of bytes currently charged to this
// Program.
func (p *Program) MemGetUsed() int64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.used
}

// MemSetLimit sets a new memory limit. Per spec §5, lowering the limit
// below current usage does not reclaim anything; it only blocks future
// allocations until usage drops below the new limit.
func (p *Program) MemSetLimit(limit int64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if limit < 0 {
		p.limit = Unlimited
	} else {
		p.limit = limit
	}
}

// MemGetLimit returns the current limit, or Unlimited.
func (p *Program) MemGetLimit() int64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.limit
}

// Alloc charges bytes against the Program's limit. On success it
// increments the used counter and returns nil. On failure (would exceed
// limit) it returns a *errs.Error of kind MemLimit and leaves the
// counter untouched, per §4.A's "on failure ... does not mutate state".
func (p *Program) Alloc(op string, bytes int64) error {
	if bytes < 0 {
		return errs.NewPrecondition(op, "negative allocation size")
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.limit != Unlimited && p.used+bytes > p.limit {
		return errs.NewMemLimit(op, "allocation would exceed program memory limit")
	}
	p.used += bytes
	return nil
}

// Free releases bytes previously charged via Alloc. Freeing always
// succeeds (§4.A).
func (p *Program) Free(bytes int64) {
	if bytes == 0 {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.used -= bytes
	if p.used < 0 {
		// Should never happen if callers pair Alloc/Free sizes correctly;
		// clamp defensively rather than let the ledger go negative.
		p.used = 0
	}
}
