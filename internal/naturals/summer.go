package naturals

import (
	"context"
	"math/big"
	"math/bits"
)

// ProgressFunc receives the completed fraction of a summation, from 0.0 to
// 1.0. Implementations must be safe to call from the summing goroutine.
type ProgressFunc func(fraction float64)

// ProgressUpdate is a progress report tagged with the index of the summer
// that produced it, used when several summers share one channel.
type ProgressUpdate struct {
	SummerIndex int
	Value       float64
}

// Summer computes 1 + 2 + ... + m.
type Summer interface {
	// Name returns the registry name of the strategy.
	Name() string
	// Sum returns the sum of the first m natural numbers. progress may be nil.
	Sum(ctx context.Context, m int64, progress ProgressFunc) (*big.Int, error)
}

// Gauss computes the sum with the closed form m*(m+1)/2.
type Gauss struct{}

// Name implements Summer.
func (Gauss) Name() string { return GaussName }

// Sum implements Summer.
func (Gauss) Sum(ctx context.Context, m int64, progress ProgressFunc) (*big.Int, error) {
	if err := Validate("m", m); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	bm := big.NewInt(m)
	sum := new(big.Int).Add(bm, big.NewInt(1))
	sum.Mul(sum, bm)
	sum.Rsh(sum, 1)

	report(progress, 1)
	return sum, nil
}

// Accumulator computes the sum the way the loop reads: by adding every
// integer from 1 to m in turn. The running total lives in a 128-bit
// accumulator, wide enough for any m that fits in an int64.
type Accumulator struct{}

// Name implements Summer.
func (Accumulator) Name() string { return LoopName }

// Sum implements Summer. It honours cancellation and reports progress every
// ProgressInterval iterations.
func (Accumulator) Sum(ctx context.Context, m int64, progress ProgressFunc) (*big.Int, error) {
	if err := Validate("m", m); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var hi, lo, carry uint64
	total := uint64(m)
	for i := uint64(1); i <= total; i++ {
		lo, carry = bits.Add64(lo, i, 0)
		hi += carry
		if i&(ProgressInterval-1) == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			report(progress, float64(i)/float64(total))
		}
	}

	report(progress, 1)
	return uint128ToBig(hi, lo), nil
}

func uint128ToBig(hi, lo uint64) *big.Int {
	v := new(big.Int).SetUint64(hi)
	v.Lsh(v, 64)
	return v.Or(v, new(big.Int).SetUint64(lo))
}

func report(progress ProgressFunc, v float64) {
	if progress != nil {
		progress(v)
	}
}
