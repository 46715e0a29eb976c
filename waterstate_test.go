package psychroflow

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSatVapPressure(t *testing.T) {
	// reference values from the IAPWS formulations the correlations
	// reproduce (liquid branch: Wagner-Pruss, ice branch: Wagner 2011)
	cases := []struct {
		t    float64
		p_vs float64
	}{
		{0.01, 611.655},
		{20, 2339.2},
		{40, 7384.9},
		{60, 19946},
		{80, 47414},
		{100, 101420},
		{-20, 103.24},
		{-40, 12.84},
		{-60, 1.080},
		{-80, 0.05474},
	}

	for _, c := range cases {
		p_vs, err := GetSatVapPressure(c.t)
		require.NoError(t, err)
		assert.InEpsilon(t, c.p_vs, p_vs, 5e-3, "t=%g", c.t)
	}
}

func TestGetSatVapPressureContinuousAtTriplePoint(t *testing.T) {
	p_liq, err := GetSatVapPressureLiquidWater(TriplePointTemperature)
	require.NoError(t, err)
	p_ice, err := GetSatVapPressureWaterIce(TriplePointTemperature)
	require.NoError(t, err)

	assert.InEpsilon(t, p_liq, p_ice, 1e-4)
}

func TestGetSatVapPressureDomain(t *testing.T) {
	var domErr *DomainError

	_, err := GetSatVapPressure(500)
	require.Error(t, err)
	assert.True(t, errors.As(err, &domErr))

	_, err = GetSatVapPressure(-300)
	require.Error(t, err)
	assert.True(t, errors.As(err, &domErr))
	assert.Equal(t, -300.0, domErr.T)
}

func TestGetSatVapPressureExtrapolated(t *testing.T) {
	// out of range evaluation must not fail, it serves diagnostics only
	p_vs := GetSatVapPressureExtrapolated(-250)
	assert.Greater(t, p_vs, 0.0)
}

func TestGetDensityWaterLiquid(t *testing.T) {
	rho, err := GetDensityWaterLiquid(20)
	require.NoError(t, err)
	assert.InEpsilon(t, 998.2, rho, 1e-3)

	rho, err = GetDensityWaterLiquid(4)
	require.NoError(t, err)
	assert.InEpsilon(t, 1000.0, rho, 1e-3)

	rho, err = GetDensityWaterLiquid(100)
	require.NoError(t, err)
	assert.InEpsilon(t, 958.4, rho, 1e-3)

	var domErr *DomainError
	_, err = GetDensityWaterLiquid(-5)
	require.Error(t, err)
	assert.True(t, errors.As(err, &domErr))
	_, err = GetDensityWaterLiquid(200)
	require.Error(t, err)
	assert.True(t, errors.As(err, &domErr))
}

func TestGetDensityWaterIce(t *testing.T) {
	rho, err := GetDensityWaterIce(0)
	require.NoError(t, err)
	assert.InEpsilon(t, 916.7, rho, 2e-3)

	rho, err = GetDensityWaterIce(-100)
	require.NoError(t, err)
	assert.InEpsilon(t, 928.8, rho, 2e-3)

	var domErr *DomainError
	_, err = GetDensityWaterIce(5)
	require.Error(t, err)
	assert.True(t, errors.As(err, &domErr))
}

func TestGetEnthalpyWaterLiquid(t *testing.T) {
	// zero point at the triple point
	h, err := GetEnthalpyWaterLiquid(TriplePointTemperature)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, h, 100)

	h, err = GetEnthalpyWaterLiquid(20)
	require.NoError(t, err)
	assert.InEpsilon(t, 83.9e3, h, 2e-3)

	h, err = GetEnthalpyWaterLiquid(100)
	require.NoError(t, err)
	assert.InEpsilon(t, 419.1e3, h, 2e-3)
}

func TestGetEnthalpyWaterIce(t *testing.T) {
	// enthalpy of fusion below the liquid zero point
	h, err := GetEnthalpyWaterIce(0.0)
	require.NoError(t, err)
	assert.InEpsilon(t, -333.4e3, h, 2e-3)

	h_cold, err := GetEnthalpyWaterIce(-50)
	require.NoError(t, err)
	assert.InEpsilon(t, -430.6e3, h_cold, 1e-2)
	assert.Less(t, h_cold, h)

	var domErr *DomainError
	_, err = GetEnthalpyWaterIce(5)
	require.Error(t, err)
	assert.True(t, errors.As(err, &domErr))
}

func TestGetDensityWaterDispatchesOnPhase(t *testing.T) {
	// liquid branch above the triple point
	rho, err := GetDensityWater(20)
	require.NoError(t, err)
	assert.InEpsilon(t, 998.2, rho, 1e-3)

	// ice branch below it
	rho, err = GetDensityWater(-10)
	require.NoError(t, err)
	assert.InEpsilon(t, 918.2, rho, 2e-3)

	var domErr *DomainError
	_, err = GetDensityWater(200)
	require.Error(t, err)
	assert.True(t, errors.As(err, &domErr))
}

func TestGetEnthalpyWaterDispatchesOnPhase(t *testing.T) {
	h, err := GetEnthalpyWater(20)
	require.NoError(t, err)
	assert.InEpsilon(t, 83.9e3, h, 2e-3)

	h, err = GetEnthalpyWater(-50)
	require.NoError(t, err)
	assert.InEpsilon(t, -430.6e3, h, 1e-2)

	var domErr *DomainError
	_, err = GetEnthalpyWater(200)
	require.Error(t, err)
	assert.True(t, errors.As(err, &domErr))
}

func TestNewWaterState(t *testing.T) {
	ws, err := NewWaterState(20)
	require.NoError(t, err)
	assert.Equal(t, 20.0, ws.Temperature)
	assert.Equal(t, StandardPressure, ws.Pressure)
	assert.InEpsilon(t, 998.2, ws.Density, 1e-3)
	assert.InEpsilon(t, 83.9e3, ws.Enthalpy, 2e-3)

	_, err = NewWaterState(-10)
	require.Error(t, err)
	var domErr *DomainError
	assert.True(t, errors.As(err, &domErr))
}

func TestNewIceState(t *testing.T) {
	is, err := NewIceState(-10)
	require.NoError(t, err)
	assert.InEpsilon(t, 918.2, is.Density, 2e-3)
	assert.Less(t, is.Enthalpy, -333.4e3)

	_, err = NewIceState(5)
	require.Error(t, err)
	var domErr *DomainError
	assert.True(t, errors.As(err, &domErr))
}
