// Package growbuf provides amortized-growth accumulators with an optional
// shared memory budget.
//
// Go slices already grow on append, but they grow without bound. The types
// here double their capacity explicitly so every growth step can be charged
// against a Budget first, which lets a caller cap how much memory a single
// parse may claim.
package growbuf

import (
	"errors"
	"fmt"
	"unsafe"
)

// initialCap is the capacity allocated on the first append.
const initialCap = 16

// ErrBudgetExceeded is returned when a growth step would exceed the Budget.
var ErrBudgetExceeded = errors.New("memory budget exceeded")

// Budget tracks bytes claimed by accumulators against a fixed limit.
//
// A nil Budget or a zero limit means unlimited. Budget is not safe for
// concurrent use; each parse owns its own.
type Budget struct {
	limit int
	used  int
}

// NewBudget creates a budget of limit bytes (0 = unlimited).
func NewBudget(limit int) *Budget {
	return &Budget{limit: limit}
}

// Reserve claims n bytes. On failure nothing is claimed.
func (b *Budget) Reserve(n int) error {
	if b == nil || b.limit <= 0 {
		return nil
	}
	if n > b.limit-b.used {
		return fmt.Errorf("%w: need %d bytes, %d of %d in use", ErrBudgetExceeded, n, b.used, b.limit)
	}
	b.used += n
	return nil
}

// Release returns n previously reserved bytes.
func (b *Budget) Release(n int) {
	if b == nil || b.limit <= 0 {
		return
	}
	b.used = max(b.used-n, 0)
}

// Used returns the number of bytes currently claimed.
func (b *Budget) Used() int {
	if b == nil {
		return 0
	}
	return b.used
}

// grow returns the capacity needed to hold want elements, doubling from cur.
func grow(cur, want int) int {
	c := max(cur, initialCap)
	for c < want {
		c *= 2
	}
	return c
}

// Bytes is a growable byte accumulator.
type Bytes struct {
	budget *Budget
	buf    []byte
}

// NewBytes creates an empty accumulator charging growth to budget.
func NewBytes(budget *Budget) *Bytes {
	return &Bytes{budget: budget}
}

// Append adds p to the end of the buffer.
//
// If growing fails the buffer is left unchanged.
func (b *Bytes) Append(p []byte) error {
	if err := b.ensure(len(b.buf) + len(p)); err != nil {
		return err
	}
	b.buf = append(b.buf, p...)
	return nil
}

// AppendByte adds a single byte.
func (b *Bytes) AppendByte(c byte) error {
	if err := b.ensure(len(b.buf) + 1); err != nil {
		return err
	}
	b.buf = append(b.buf, c)
	return nil
}

func (b *Bytes) ensure(want int) error {
	if want <= cap(b.buf) {
		return nil
	}
	newCap := grow(cap(b.buf), want)
	if err := b.budget.Reserve(newCap - cap(b.buf)); err != nil {
		return err
	}
	nb := make([]byte, len(b.buf), newCap)
	copy(nb, b.buf)
	b.buf = nb
	return nil
}

// Len returns the number of bytes written.
func (b *Bytes) Len() int {
	return len(b.buf)
}

// Cap returns the current capacity.
func (b *Bytes) Cap() int {
	return cap(b.buf)
}

// String returns a copy of the contents.
func (b *Bytes) String() string {
	return string(b.buf)
}

// Reset empties the buffer and returns its memory to the budget.
func (b *Bytes) Reset() {
	b.budget.Release(cap(b.buf))
	b.buf = nil
}

// List is a growable array of T.
type List[T any] struct {
	budget *Budget
	items  []T
}

// NewList creates an empty list charging growth to budget.
func NewList[T any](budget *Budget) *List[T] {
	return &List[T]{budget: budget}
}

// Push appends v. If growing fails the list is left unchanged.
func (l *List[T]) Push(v T) error {
	if len(l.items) == cap(l.items) {
		var zero T
		newCap := grow(cap(l.items), len(l.items)+1)
		if err := l.budget.Reserve((newCap - cap(l.items)) * int(unsafe.Sizeof(zero))); err != nil {
			return err
		}
		ni := make([]T, len(l.items), newCap)
		copy(ni, l.items)
		l.items = ni
	}
	l.items = append(l.items, v)
	return nil
}

// Len returns the number of items.
func (l *List[T]) Len() int {
	return len(l.items)
}

// Cap returns the current capacity.
func (l *List[T]) Cap() int {
	return cap(l.items)
}

// Items hands the accumulated items to the caller. The list is empty
// afterwards and the caller owns the returned slice.
func (l *List[T]) Items() []T {
	items := l.items
	l.items = nil
	return items
}

// Reset drops all items and returns their memory to the budget.
func (l *List[T]) Reset() {
	var zero T
	l.budget.Release(cap(l.items) * int(unsafe.Sizeof(zero)))
	l.items = nil
}
