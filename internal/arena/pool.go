package arena

import "sync"

// Pool recycles arenas between sessions.
type Pool struct {
	pool sync.Pool
}

// NewPool returns a Pool ready for use.
func NewPool() *Pool {
	return &Pool{
		pool: sync.Pool{
			New: func() any {
				return &Arena{}
			},
		},
	}
}

// Get returns an empty arena with at least capacity values reserved.
func (p *Pool) Get(capacity int) *Arena {
	a := p.pool.Get().(*Arena)
	a.Reset()
	a.grow(capacity)
	return a
}

// Put returns a to the pool. The caller must not use a afterwards.
func (p *Pool) Put(a *Arena) {
	if a == nil {
		return
	}
	a.Reset()
	p.pool.Put(a)
}
