// Copyright 2020 Aleksandr Demakin. All rights reserved.

package posit

import (
	"context"
	"runtime"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// MaxTableBits is the widest format Config.Table accepts.
const MaxTableBits = 20

const tableChunk = 1 << 12

// Entry is a row of a posit table.
type Entry struct {
	Posit   Posit
	Decoded Decoded
	Scale   int
	Value   float64
}

// Table returns all 2^nbits posits of the format in the order of their bit patterns.
// Rows are computed in parallel, the context may cancel the computation.
func (c *Config) Table(ctx context.Context) ([]Entry, error) {
	if c.nbits > MaxTableBits {
		return nil, errors.Wrapf(ErrRange, "posit<%d,%d> table is too large", c.nbits, c.es)
	}
	entries := make([]Entry, 1<<uint(c.nbits))
	err := parallelChunks(ctx, len(entries), func(from, to int) {
		for i := from; i < to; i++ {
			p := c.FromBits(uint64(i))
			d := p.Decode()
			entries[i] = Entry{Posit: p, Decoded: d, Value: p.Float64()}
			if !d.IsZero() && !d.IsNaR() {
				entries[i].Scale = d.Scale()
			}
		}
	})
	if err != nil {
		return nil, errors.Wrap(err, "table computation failed")
	}
	return entries, nil
}

// opTables hold results of binary operations for every pair of bit patterns.
type opTables struct {
	nbits         uint
	add, mul, div []uint8
}

func (t *opTables) lookup(table []uint8, a, b uint64) uint64 {
	return uint64(table[a<<t.nbits|b])
}

func buildOpTables(ctx context.Context, c *Config) (*opTables, error) {
	n := 1 << uint(c.nbits)
	t := &opTables{
		nbits: uint(c.nbits),
		add:   make([]uint8, n*n),
		mul:   make([]uint8, n*n),
		div:   make([]uint8, n*n),
	}
	err := parallelChunks(ctx, n, func(from, to int) {
		for a := uint64(from); a < uint64(to); a++ {
			for b := uint64(0); b < uint64(n); b++ {
				idx := a<<t.nbits | b
				t.add[idx] = uint8(c.add(a, b, false))
				t.mul[idx] = uint8(c.mul(a, b, false))
				t.div[idx] = uint8(c.div(a, b, false))
			}
		}
	})
	if err != nil {
		return nil, errors.Wrap(err, "lookup tables computation failed")
	}
	return t, nil
}

// parallelChunks calls fn for consecutive ranges covering [0, n).
func parallelChunks(ctx context.Context, n int, fn func(from, to int)) error {
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(runtime.GOMAXPROCS(0))
	chunk := tableChunk
	if n < chunk*runtime.GOMAXPROCS(0) {
		chunk = n/runtime.GOMAXPROCS(0) + 1
	}
	for from := 0; from < n; from += chunk {
		from, to := from, from+chunk
		if to > n {
			to = n
		}
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			fn(from, to)
			return nil
		})
	}
	return eg.Wait()
}
