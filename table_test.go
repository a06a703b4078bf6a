// Copyright 2020 Aleksandr Demakin. All rights reserved.

package posit

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTable(t *testing.T) {
	a := assert.New(t)
	entries, err := Posit8.Table(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 256)
	for i, e := range entries {
		a.Equal(uint64(i), e.Posit.Bits())
	}
	a.Equal(1.0, entries[0x40].Value)
	a.Equal(0, entries[0x40].Scale)
	a.Equal(6, entries[0x7F].Scale)
	a.Equal(-6, entries[0x01].Scale)
	a.Equal(64.0, entries[0x7F].Value)
	a.True(entries[0x80].Decoded.IsNaR())
	a.True(entries[0].Decoded.IsZero())
	a.Equal("0 110 1011", entries[0x6B].Decoded.String())

	entries, err = MustConfig(16, 2).Table(context.Background())
	require.NoError(t, err)
	a.Len(entries, 1<<16)
	a.Equal(MustConfig(16, 2).MaxPosScale(), entries[0x7FFF].Scale)
}

func TestTableErrors(t *testing.T) {
	a := assert.New(t)
	_, err := MustConfig(21, 0).Table(context.Background())
	a.True(errors.Is(err, ErrRange))
	a.EqualError(err, "posit<21,0> table is too large: value out of range")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = MustConfig(16, 1).Table(ctx)
	a.True(errors.Is(err, context.Canceled))
}

func TestParallelChunks(t *testing.T) {
	a := assert.New(t)
	for _, n := range []int{0, 1, tableChunk - 1, tableChunk, 3*tableChunk + 7} {
		seen := make([]int, n)
		err := parallelChunks(context.Background(), n, func(from, to int) {
			for i := from; i < to; i++ {
				seen[i]++
			}
		})
		require.NoError(t, err)
		for i, cnt := range seen {
			if !a.Equal(1, cnt, "n %d, index %d", n, i) {
				break
			}
		}
	}
}
