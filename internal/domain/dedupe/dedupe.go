// Package dedupe tracks which (player, entry) credits were already granted so
// a clear is never counted twice.
package dedupe

// Key identifies one credited clear.
type Key struct {
	Player string
	Entry  string
}

// Deduper records granted credits.
type Deduper interface {
	// SeenAndRecord checks if key was seen and records it if not.
	// Returns true if key was already seen, false if it was newly recorded.
	SeenAndRecord(key Key) bool

	// Unrecord removes a key so the credit can be granted again.
	Unrecord(key Key)

	Size() int
}

// inMemoryDeduper is a plain set. A fresh one is built for every aggregation
// pass and it is not safe for concurrent use.
type inMemoryDeduper struct {
	seen     map[Key]struct{}
	capacity int
}

// NewInMemoryDeduper creates an empty ledger.
func NewInMemoryDeduper(opts ...Option) Deduper {
	d := &inMemoryDeduper{}
	for _, opt := range opts {
		opt(d)
	}
	d.seen = make(map[Key]struct{}, d.capacity)
	return d
}

func (d *inMemoryDeduper) SeenAndRecord(key Key) bool {
	if _, ok := d.seen[key]; ok {
		return true
	}
	d.seen[key] = struct{}{}
	return false
}

func (d *inMemoryDeduper) Unrecord(key Key) {
	delete(d.seen, key)
}

func (d *inMemoryDeduper) Size() int {
	return len(d.seen)
}

// passthrough never reports a duplicate. It backs the legacy double-credit mode.
type passthrough struct{ n int }

// NewPassthrough returns a Deduper that records nothing and never reports a
// key as seen.
func NewPassthrough() Deduper { return &passthrough{} }

func (p *passthrough) SeenAndRecord(Key) bool { p.n++; return false }
func (p *passthrough) Unrecord(Key)           { p.n-- }
func (p *passthrough) Size() int              { return p.n }
