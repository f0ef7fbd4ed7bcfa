package orchestration

import (
	"context"
	"math/big"

	apperrors "github.com/agbru/numreport/internal/errors"
	"github.com/agbru/numreport/internal/naturals"
)

// AllStrategies selects the cross-checking summer.
const AllStrategies = "all"

// CrossCheck is a Summer that runs several strategies concurrently and only
// returns a sum they all agree on.
type CrossCheck struct {
	Summers []naturals.Summer
}

// Name implements naturals.Summer.
func (CrossCheck) Name() string { return AllStrategies }

// Sum implements naturals.Summer.
func (c CrossCheck) Sum(ctx context.Context, m int64, progress naturals.ProgressFunc) (*big.Int, error) {
	if err := naturals.Validate("m", m); err != nil {
		return nil, err
	}
	results := ExecuteSums(ctx, c.Summers, m, progress)
	return AnalyzeSumResults(results, m)
}

// GetSummer resolves algo against the factory. "all" yields a CrossCheck
// over every registered strategy, in sorted name order.
func GetSummer(algo string, factory *naturals.Factory) (naturals.Summer, error) {
	if algo == AllStrategies {
		return CrossCheck{Summers: factory.GetAll()}, nil
	}
	s, err := factory.Get(algo)
	if err != nil {
		return nil, apperrors.ValidationError{Field: "algo", Message: err.Error()}
	}
	return s, nil
}
