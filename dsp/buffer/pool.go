package buffer

import (
	"fmt"
	"sync"

	"github.com/cwbudde/room-raider/dsp/core"
)

// Pool provides sync.Pool-based Block reuse for scratch memory.
type Pool struct {
	pool  sync.Pool
	limit int
}

// Scratch is the pool used by the measurement components.
var Scratch = NewPool(MaxLength)

// NewPool returns a Pool that refuses requests longer than limit samples.
// A non-positive limit means MaxLength.
func NewPool(limit int) *Pool {
	if limit <= 0 || limit > MaxLength {
		limit = MaxLength
	}

	return &Pool{
		pool: sync.Pool{
			New: func() any {
				return &Block{}
			},
		},
		limit: limit,
	}
}

// Limit returns the largest block length the pool hands out.
func (p *Pool) Limit() int {
	return p.limit
}

// Get returns a zeroed Block with the requested length.
// Callers must return it via Put when done.
func (p *Pool) Get(length int) (*Block, error) {
	if length < 0 {
		return nil, fmt.Errorf("%w: buffer: negative scratch length %d", core.ErrInvalidValue, length)
	}

	if length > p.limit {
		return nil, fmt.Errorf("%w: buffer: scratch of %d samples exceeds limit of %d",
			core.ErrOutOfMemory, length, p.limit)
	}

	b := p.pool.Get().(*Block) //nolint:forcetypeassert // pool only holds *Block
	b.Resize(length)
	b.Zero()

	return b, nil
}

// Put returns a Block to the pool for reuse.
// The caller must not use the block after calling Put.
func (p *Pool) Put(b *Block) {
	if b == nil {
		return
	}

	p.pool.Put(b)
}
