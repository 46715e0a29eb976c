package server

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chortbauer/psychroflow"
)

func TestHandlePressure(t *testing.T) {
	reply := Handle(Msg{Type: "pressure", Height: 210})

	assert.Equal(t, "pressure", reply.Type)
	assert.Empty(t, reply.Error)
	assert.InDelta(t, 98833.5, reply.Pressure, 1)
}

func TestHandleState(t *testing.T) {
	reply := Handle(Msg{Type: "state", TDryBulb: 20, RelHum: 0.5})

	require.Equal(t, "state", reply.Type, reply.Error)
	assert.Equal(t, psychroflow.StandardPressure, reply.Pressure)
	assert.Equal(t, 20.0, reply.TDryBulb)
	assert.Equal(t, 0.5, reply.RelHum)
	assert.InDelta(t, 9.3, reply.TDewPoint, 0.1)
	assert.Greater(t, reply.TWetBulb, reply.TDewPoint)
	assert.Less(t, reply.TWetBulb, reply.TDryBulb)
	assert.Greater(t, reply.HumRatio, 0.0)
	assert.Greater(t, reply.Enthalpy, 0.0)
}

func TestHandleStateCustomPressure(t *testing.T) {
	reply := Handle(Msg{Type: "state", TDryBulb: 20, RelHum: 0.5, Pressure: 90000})

	require.Equal(t, "state", reply.Type, reply.Error)
	assert.Equal(t, 90000.0, reply.Pressure)
}

func TestHandleStateInvalid(t *testing.T) {
	reply := Handle(Msg{Type: "state", TDryBulb: 20, RelHum: 1.5})

	assert.Equal(t, "error", reply.Type)
	assert.NotEmpty(t, reply.Error)
}

func TestHandleMix(t *testing.T) {
	reply := Handle(Msg{
		Type: "mix",
		Flows: []FlowSpec{
			{VolumeFlow: 24000, TDryBulb: 44, RelHum: 0.5},
			{VolumeFlow: 6000, TDryBulb: 10, RelHum: 0.7},
		},
	})

	require.Equal(t, "mix", reply.Type, reply.Error)
	assert.Equal(t, string(psychroflow.PhaseRegimeUnsaturated), reply.Regime)
	assert.Greater(t, reply.TDryBulb, 10.0)
	assert.Less(t, reply.TDryBulb, 44.0)
	assert.Zero(t, reply.CondensateMassFlow)
	assert.Contains(t, reply.Summary, "T=")
}

func TestHandleMixCondensing(t *testing.T) {
	reply := Handle(Msg{
		Type: "mix",
		Flows: []FlowSpec{
			{VolumeFlow: 2000, TDryBulb: 40, RelHum: 1},
			{VolumeFlow: 2000, TDryBulb: 5, RelHum: 1},
		},
	})

	require.Equal(t, "mix", reply.Type, reply.Error)
	assert.Equal(t, string(psychroflow.PhaseRegimeSaturatedWithLiquid), reply.Regime)
	assert.Greater(t, reply.CondensateMassFlow, 0.0)
}

func TestHandleMixNoFlows(t *testing.T) {
	reply := Handle(Msg{Type: "mix"})

	assert.Equal(t, "error", reply.Type)
	assert.NotEmpty(t, reply.Error)
}

func TestHandleUnknownType(t *testing.T) {
	reply := Handle(Msg{Type: "frobnicate"})

	assert.Equal(t, "error", reply.Type)
	assert.Contains(t, reply.Error, "no such request type")
}
