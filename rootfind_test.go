package psychroflow

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBrentqFindsRoot(t *testing.T) {
	root, err := brentq(func(x float64) float64 { return x*x - 4 }, 0, 10)
	require.NoError(t, err)
	assert.InDelta(t, 2.0, root, 1e-9)

	root, err = brentq(math.Cos, 1, 2)
	require.NoError(t, err)
	assert.InDelta(t, math.Pi/2, root, 1e-9)
}

func TestBrentqRootAtBracketLimit(t *testing.T) {
	root, err := brentq(func(x float64) float64 { return x }, 0, 1)
	require.NoError(t, err)
	assert.Equal(t, 0.0, root)
}

func TestBrentqNotBracketed(t *testing.T) {
	_, err := brentq(func(x float64) float64 { return x*x + 1 }, -1, 1)
	require.Error(t, err)

	var convErr *ConvergenceError
	require.True(t, errors.As(err, &convErr))
	assert.Equal(t, [2]float64{-1, 1}, convErr.Bracket)
	assert.Equal(t, 2.0, convErr.Residual)
}
