package psychroflow

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats/scalar"
)

// HumidAirFlow is a flow of humid air: a resolved state plus a
// throughput, with the extensive per-flow quantities derived at
// construction.
type HumidAirFlow struct {
	// volume flow, m3/s
	VolumeFlow float64
	// the state of the flowing air
	HumidAirState HumidAirState
	// dry air mass flow, kg/s
	MassFlowAir float64
	// water vapor mass flow, kg/s
	MassFlowWater float64
	// total mass flow, kg/s
	MassFlow float64
	// enthalpy flow, J/s
	EnthalpyFlow float64
}

/*
Create a HumidAirFlow from a volume flow.

	Args:
	    volume_flow: volume flow, m3/s
	    has: the humid air state

	Returns:
	    the flow with all extensive quantities derived
*/
func NewHumidAirFlow(volume_flow float64, has HumidAirState) HumidAirFlow {
	mass_flow_air := volume_flow / has.MoistAirVolume
	mass_flow_water := has.HumRatio * mass_flow_air

	return HumidAirFlow{
		VolumeFlow:    volume_flow,
		HumidAirState: has,
		MassFlowAir:   mass_flow_air,
		MassFlowWater: mass_flow_water,
		MassFlow:      mass_flow_air + mass_flow_water,
		EnthalpyFlow:  has.MoistAirEnthalpy * mass_flow_air,
	}
}

/*
Create a HumidAirFlow from a total mass flow.

	Args:
	    mass_flow: total mass flow (air + vapor), kg/s
	    has: the humid air state

	Returns:
	    the flow with all extensive quantities derived
*/
func NewHumidAirFlowFromMassFlow(mass_flow float64, has HumidAirState) HumidAirFlow {
	mass_flow_air := mass_flow / (1.0 + has.HumRatio)
	return NewHumidAirFlow(mass_flow_air*has.MoistAirVolume, has)
}

/*
Create a HumidAirFlow from a dry air mass flow.

	Args:
	    mass_flow_air: dry air mass flow, kg/s
	    has: the humid air state

	Returns:
	    the flow with all extensive quantities derived
*/
func NewHumidAirFlowFromMassFlowAir(mass_flow_air float64, has HumidAirState) HumidAirFlow {
	return NewHumidAirFlow(mass_flow_air*has.MoistAirVolume, has)
}

/*
Return a short human readable summary of the flow.

	Returns:
	    volume flow, temperature, dew point and relative humidity in a
	    fixed field order
*/
func (haf HumidAirFlow) StrShort() string {
	return fmt.Sprintf(
		"V=%.1fm³/h; T=%.1f°C; T_dew=%.1f°C; RH=%.1f%%",
		haf.VolumeFlow*3600,
		haf.HumidAirState.TDryBulb,
		haf.HumidAirState.TDewPoint,
		haf.HumidAirState.RelHum*100,
	)
}

// WaterFlow is a flow of liquid water.
type WaterFlow struct {
	// volume flow, m3/s
	VolumeFlow float64
	// the state of the flowing water
	WaterState WaterState
	// mass flow, kg/s
	MassFlow float64
	// enthalpy flow, J/s
	EnthalpyFlow float64
}

// NewWaterFlow creates a WaterFlow from a volume flow in m3/s.
func NewWaterFlow(volume_flow float64, ws WaterState) WaterFlow {
	mass_flow := volume_flow * ws.Density
	return WaterFlow{
		VolumeFlow:   volume_flow,
		WaterState:   ws,
		MassFlow:     mass_flow,
		EnthalpyFlow: ws.Enthalpy * mass_flow,
	}
}

// NewWaterFlowFromMassFlow creates a WaterFlow from a mass flow in kg/s.
func NewWaterFlowFromMassFlow(mass_flow float64, ws WaterState) WaterFlow {
	return NewWaterFlow(mass_flow/ws.Density, ws)
}

// StrShort returns a short human readable summary of the flow.
func (wf WaterFlow) StrShort() string {
	return fmt.Sprintf(
		"V=%.1fl/h; T=%.1f°C; m=%.4gkg/s",
		wf.VolumeFlow*3600*1000,
		wf.WaterState.Temperature,
		wf.MassFlow,
	)
}

// IceFlow is a flow of water ice.
type IceFlow struct {
	// volume flow, m3/s
	VolumeFlow float64
	// the state of the flowing ice
	IceState IceState
	// mass flow, kg/s
	MassFlow float64
	// enthalpy flow, J/s
	EnthalpyFlow float64
}

// NewIceFlow creates an IceFlow from a volume flow in m3/s.
func NewIceFlow(volume_flow float64, is IceState) IceFlow {
	mass_flow := volume_flow * is.Density
	return IceFlow{
		VolumeFlow:   volume_flow,
		IceState:     is,
		MassFlow:     mass_flow,
		EnthalpyFlow: is.Enthalpy * mass_flow,
	}
}

// NewIceFlowFromMassFlow creates an IceFlow from a mass flow in kg/s.
func NewIceFlowFromMassFlow(mass_flow float64, is IceState) IceFlow {
	return NewIceFlow(mass_flow/is.Density, is)
}

// PhaseRegime classifies the equilibrium state of a combined flow.
type PhaseRegime string

const (
	PhaseRegimeUnsaturated         PhaseRegime = "unsaturated"
	PhaseRegimeSaturatedWithLiquid PhaseRegime = "saturated with liquid"
	PhaseRegimeSaturatedWithIce    PhaseRegime = "saturated with ice"
)

// AirWaterFlow is the result of combining flows: a gas phase flow plus
// an optional condensate flow (liquid or ice, selected by Regime). It is
// only created by the mixing operations and never modified afterwards.
type AirWaterFlow struct {
	HumidAirFlow HumidAirFlow
	// condensate when Regime == PhaseRegimeSaturatedWithLiquid
	WaterFlow WaterFlow
	// condensate when Regime == PhaseRegimeSaturatedWithIce
	IceFlow IceFlow
	Regime  PhaseRegime
}

// MassFlowAir returns the dry air mass flow, kg/s.
func (awf AirWaterFlow) MassFlowAir() float64 {
	return awf.HumidAirFlow.MassFlowAir
}

// CondensateMassFlow returns the mass flow of the condensed phase, kg/s.
func (awf AirWaterFlow) CondensateMassFlow() float64 {
	switch awf.Regime {
	case PhaseRegimeSaturatedWithLiquid:
		return awf.WaterFlow.MassFlow
	case PhaseRegimeSaturatedWithIce:
		return awf.IceFlow.MassFlow
	default:
		return 0
	}
}

// MassFlowWater returns the total water mass flow, vapor plus
// condensate, kg/s.
func (awf AirWaterFlow) MassFlowWater() float64 {
	return awf.HumidAirFlow.MassFlowWater + awf.CondensateMassFlow()
}

// MassFlow returns the total mass flow, kg/s.
func (awf AirWaterFlow) MassFlow() float64 {
	return awf.HumidAirFlow.MassFlow + awf.CondensateMassFlow()
}

// EnthalpyFlow returns the total enthalpy flow, J/s.
func (awf AirWaterFlow) EnthalpyFlow() float64 {
	switch awf.Regime {
	case PhaseRegimeSaturatedWithLiquid:
		return awf.HumidAirFlow.EnthalpyFlow + awf.WaterFlow.EnthalpyFlow
	case PhaseRegimeSaturatedWithIce:
		return awf.HumidAirFlow.EnthalpyFlow + awf.IceFlow.EnthalpyFlow
	default:
		return awf.HumidAirFlow.EnthalpyFlow
	}
}

// Pressure returns the total pressure shared by both phases, Pa. For a
// condensate only flow the pressure of the condensed phase is reported.
func (awf AirWaterFlow) Pressure() float64 {
	if awf.HumidAirFlow.MassFlowAir > 0 {
		return awf.HumidAirFlow.HumidAirState.Pressure
	}
	switch awf.Regime {
	case PhaseRegimeSaturatedWithLiquid:
		return awf.WaterFlow.WaterState.Pressure
	case PhaseRegimeSaturatedWithIce:
		return awf.IceFlow.IceState.Pressure
	default:
		return awf.HumidAirFlow.HumidAirState.Pressure
	}
}

/*
Create an AirWaterFlow from a humid air flow and a liquid water flow
that already coexist at equilibrium.

	Args:
	    haf: the gas phase flow
	    wf: the liquid phase flow

	Returns:
	    the combined flow

	Notes:
	    Both phases must share temperature and pressure, and air over a
	    non vanishing amount of liquid water must be saturated.
*/
func NewAirWaterFlow(haf HumidAirFlow, wf WaterFlow) (AirWaterFlow, error) {
	if !isClose(haf.HumidAirState.TDryBulb, wf.WaterState.Temperature) {
		return AirWaterFlow{}, newValidationError(
			"temperature of air and water flow must be equal")
	}
	if !isClose(haf.HumidAirState.Pressure, wf.WaterState.Pressure) {
		return AirWaterFlow{}, newValidationError(
			"pressure of air and water flow must be equal")
	}

	if isClose(wf.MassFlow, 0) {
		return AirWaterFlow{HumidAirFlow: haf, Regime: PhaseRegimeUnsaturated}, nil
	}

	if !isClose(haf.HumidAirState.RelHum, 1) {
		return AirWaterFlow{}, newValidationError(
			"air over liquid water has to be saturated")
	}

	return AirWaterFlow{
		HumidAirFlow: haf,
		WaterFlow:    wf,
		Regime:       PhaseRegimeSaturatedWithLiquid,
	}, nil
}

// NewAirWaterFlowFromHumidAirFlow wraps a pure gas phase flow.
func NewAirWaterFlowFromHumidAirFlow(haf HumidAirFlow) AirWaterFlow {
	return AirWaterFlow{HumidAirFlow: haf, Regime: PhaseRegimeUnsaturated}
}

// NewAirWaterFlowFromWaterFlow wraps a pure liquid phase flow, for
// example a water injection joining a mix of combined flows.
func NewAirWaterFlowFromWaterFlow(wf WaterFlow) AirWaterFlow {
	return AirWaterFlow{WaterFlow: wf, Regime: PhaseRegimeSaturatedWithLiquid}
}

// NewAirWaterFlowFromIceFlow wraps a pure ice phase flow.
func NewAirWaterFlowFromIceFlow(icf IceFlow) AirWaterFlow {
	return AirWaterFlow{IceFlow: icf, Regime: PhaseRegimeSaturatedWithIce}
}

/*
Create the equilibrium AirWaterFlow from summed conserved quantities.
This is the phase split kernel every mixing operation runs through.

	Args:
	    mass_flow_air: dry air mass flow, kg/s
	    mass_flow_water: total water mass flow (vapor + condensate), kg/s
	    enthalpy_flow: total enthalpy flow, J/s
	    pressure: total pressure, Pa

	Returns:
	    the combined flow, split into gas and condensate when the water
	    content exceeds saturation

	Notes:
	    The saturation boundary is inclusive on the dry side: a mixture
	    sitting exactly at the saturation humidity ratio is unsaturated.
*/
func NewAirWaterFlowFromMassFlows(mass_flow_air, mass_flow_water, enthalpy_flow, pressure float64) (AirWaterFlow, error) {
	if mass_flow_air <= 0 {
		return AirWaterFlow{}, newValidationError("no dry air present")
	}
	if mass_flow_water < 0 {
		return AirWaterFlow{}, newValidationError("water mass flow cannot be negative")
	}

	hum_ratio := mass_flow_water / mass_flow_air
	tot_enthalpy := enthalpy_flow / (mass_flow_air + mass_flow_water)

	t_dry_bulb, err := GetTDryBulbFromTotEnthalpyAirWaterMix(hum_ratio, tot_enthalpy, pressure)
	if err != nil {
		return AirWaterFlow{}, err
	}

	sat_hum_ratio, err := GetSatHumRatio(t_dry_bulb, pressure)
	if err != nil {
		return AirWaterFlow{}, err
	}

	// gas phase only; the boundary is inclusive on the dry side, so a
	// water content matching saturation within tolerance stays gas
	if hum_ratio <= sat_hum_ratio || isClose(hum_ratio, sat_hum_ratio) {
		has, err := NewHumidAirStateFromTDryBulbHumRatio(t_dry_bulb, hum_ratio, pressure)
		if err != nil {
			return AirWaterFlow{}, err
		}
		return NewAirWaterFlowFromHumidAirFlow(
			NewHumidAirFlowFromMassFlowAir(mass_flow_air, has)), nil
	}

	// gas phase at saturation plus condensate
	has, err := NewHumidAirStateFromTDryBulbRelHum(t_dry_bulb, 1, pressure)
	if err != nil {
		return AirWaterFlow{}, err
	}
	haf := NewHumidAirFlowFromMassFlowAir(mass_flow_air, has)

	mass_flow_condensate := (hum_ratio - sat_hum_ratio) * mass_flow_air

	if t_dry_bulb >= TriplePointTemperature {
		ws, err := NewWaterStateWithPressure(t_dry_bulb, pressure)
		if err != nil {
			return AirWaterFlow{}, err
		}
		return AirWaterFlow{
			HumidAirFlow: haf,
			WaterFlow:    NewWaterFlowFromMassFlow(mass_flow_condensate, ws),
			Regime:       PhaseRegimeSaturatedWithLiquid,
		}, nil
	}

	is, err := NewIceStateWithPressure(t_dry_bulb, pressure)
	if err != nil {
		return AirWaterFlow{}, err
	}
	return AirWaterFlow{
		HumidAirFlow: haf,
		IceFlow:      NewIceFlowFromMassFlow(mass_flow_condensate, is),
		Regime:       PhaseRegimeSaturatedWithIce,
	}, nil
}

// checkEqualPressures fails before any numeric work when the flows to be
// mixed are not all at the same total pressure.
func checkEqualPressures(hafs []HumidAirFlow) error {
	p := hafs[0].HumidAirState.Pressure
	for _, haf := range hafs[1:] {
		if !isClose(p, haf.HumidAirState.Pressure) {
			return newValidationError(
				"pressure mismatch: the mixing air flows must share one pressure; p1=%g Pa, p2=%g Pa",
				p, haf.HumidAirState.Pressure)
		}
	}
	return nil
}

/*
Mix any number of humid air flows at the same total pressure by ideal
adiabatic mixing.

	Args:
	    hafs: the flows to combine

	Returns:
	    the equilibrium combined flow, including a phase split when the
	    mixture supersaturates

	Notes:
	    The conserved quantities are summed over all flows at once, so
	    the result does not depend on the order of the inputs.
*/
func MixHumidAirFlows(hafs []HumidAirFlow) (AirWaterFlow, error) {
	if len(hafs) == 0 {
		return AirWaterFlow{}, newValidationError("no flows to mix")
	}
	if err := checkEqualPressures(hafs); err != nil {
		return AirWaterFlow{}, err
	}

	var mass_flow_air, mass_flow_water, enthalpy_flow float64
	for _, haf := range hafs {
		mass_flow_air += haf.MassFlowAir
		mass_flow_water += haf.MassFlowWater
		enthalpy_flow += haf.EnthalpyFlow
	}

	pressure := hafs[0].HumidAirState.Pressure
	return NewAirWaterFlowFromMassFlows(mass_flow_air, mass_flow_water, enthalpy_flow, pressure)
}

// MixTwoHumidAirFlows mixes exactly two humid air flows.
func MixTwoHumidAirFlows(haf_1, haf_2 HumidAirFlow) (AirWaterFlow, error) {
	return MixHumidAirFlows([]HumidAirFlow{haf_1, haf_2})
}

/*
Mix any number of combined flows, carrying condensate from prior phase
splits into the balance.

	Args:
	    awfs: the combined flows to mix

	Returns:
	    the equilibrium combined flow
*/
func MixAirWaterFlows(awfs []AirWaterFlow) (AirWaterFlow, error) {
	if len(awfs) == 0 {
		return AirWaterFlow{}, newValidationError("no flows to mix")
	}

	pressure := awfs[0].Pressure()
	for _, awf := range awfs[1:] {
		if !isClose(pressure, awf.Pressure()) {
			return AirWaterFlow{}, newValidationError(
				"pressure mismatch: the mixing flows must share one pressure; p1=%g Pa, p2=%g Pa",
				pressure, awf.Pressure())
		}
	}

	var mass_flow_air, mass_flow_water, enthalpy_flow float64
	for _, awf := range awfs {
		mass_flow_air += awf.MassFlowAir()
		mass_flow_water += awf.MassFlowWater()
		enthalpy_flow += awf.EnthalpyFlow()
	}

	return NewAirWaterFlowFromMassFlows(mass_flow_air, mass_flow_water, enthalpy_flow, pressure)
}

/*
Mix humid air flows under the requirement that no condensate forms.

	Args:
	    hafs: the flows to combine

	Returns:
	    the mixed humid air flow

	Notes:
	    Fails with CondensationError when the mix supersaturates. Used
	    where condensation signals an input error, for example when
	    combining exhaust air ducts.
*/
func MixHumidAirFlowsDry(hafs []HumidAirFlow) (HumidAirFlow, error) {
	awf, err := MixHumidAirFlows(hafs)
	if err != nil {
		return HumidAirFlow{}, err
	}
	if awf.Regime != PhaseRegimeUnsaturated {
		return HumidAirFlow{}, &CondensationError{
			ExcessWaterMassFlow: awf.CondensateMassFlow(),
		}
	}
	return awf.HumidAirFlow, nil
}

/*
Add a liquid water stream to an air stream, for example an adiabatic
humidifier.

	Args:
	    haf: the air flow
	    wf: the water flow to inject

	Returns:
	    the equilibrium combined flow; a phase split occurs when more
	    water is added than the air can absorb
*/
func AddWaterToAirFlow(haf HumidAirFlow, wf WaterFlow) (AirWaterFlow, error) {
	mass_flow_air := haf.MassFlowAir
	mass_flow_water := haf.MassFlowWater + wf.MassFlow
	enthalpy_flow := haf.EnthalpyFlow + wf.EnthalpyFlow

	return NewAirWaterFlowFromMassFlows(
		mass_flow_air, mass_flow_water, enthalpy_flow, haf.HumidAirState.Pressure)
}

/*
Add an ice stream to an air stream.

	Args:
	    haf: the air flow
	    icf: the ice flow to inject

	Returns:
	    the equilibrium combined flow
*/
func AddIceToAirFlow(haf HumidAirFlow, icf IceFlow) (AirWaterFlow, error) {
	mass_flow_air := haf.MassFlowAir
	mass_flow_water := haf.MassFlowWater + icf.MassFlow
	enthalpy_flow := haf.EnthalpyFlow + icf.EnthalpyFlow

	return NewAirWaterFlowFromMassFlows(
		mass_flow_air, mass_flow_water, enthalpy_flow, haf.HumidAirState.Pressure)
}

/*
Add a heat flow to an air stream at constant water content.

	Args:
	    haf: the air flow
	    enthalpy_flow: heat flow to add, J/s (negative to cool)

	Returns:
	    the heated or cooled flow

	Notes:
	    Cooling below the dew point makes the strict gas phase state
	    unconstructable and fails with ValidationError.
*/
func AddEnthalpyToAirFlow(haf HumidAirFlow, enthalpy_flow float64) (HumidAirFlow, error) {
	if haf.MassFlowAir <= 0 {
		return HumidAirFlow{}, newValidationError("no dry air present")
	}

	delta_h := enthalpy_flow / haf.MassFlowAir

	has, err := NewHumidAirStateFromHumRatioEnthalpy(
		haf.HumidAirState.HumRatio,
		haf.HumidAirState.MoistAirEnthalpy+delta_h,
		haf.HumidAirState.Pressure,
	)
	if err != nil {
		return HumidAirFlow{}, err
	}

	return NewHumidAirFlowFromMassFlowAir(haf.MassFlowAir, has), nil
}

/*
Calculate the heat flow that brings an air stream to a target
temperature at constant water content.

	Args:
	    haf: the air flow
	    t_target: target dry bulb temperature, degree C

	Returns:
	    the required heat flow, J/s
*/
func HowMuchEnthalpyToTemp(haf HumidAirFlow, t_target float64) (float64, error) {
	has_target, err := haf.HumidAirState.AtTDryBulb(t_target)
	if err != nil {
		return 0, err
	}
	return (has_target.MoistAirEnthalpy - haf.HumidAirState.MoistAirEnthalpy) *
		haf.MassFlowAir, nil
}

/*
Calculate the water stream that raises an air stream to a target
relative humidity.

	Args:
	    haf: the air flow
	    t_water: temperature of the injected water, degree C
	    rel_hum_target: target relative humidity, 0 to 1

	Returns:
	    the required water flow

	Notes:
	    Bracketed solve over the water mass flow; the upper bracket limit
	    is one kg of water per kg of dry air, far beyond saturation for
	    any condition this model covers.
*/
func HowMuchWaterToRelHum(haf HumidAirFlow, t_water, rel_hum_target float64) (WaterFlow, error) {
	if rel_hum_target < 0 || rel_hum_target > 1 {
		return WaterFlow{}, newValidationError("relative humidity is outside range [0, 1]")
	}
	if haf.HumidAirState.RelHum > rel_hum_target {
		return WaterFlow{}, newValidationError(
			"target relative humidity must not be lower than that of the air flow")
	}

	ws, err := NewWaterStateWithPressure(t_water, haf.HumidAirState.Pressure)
	if err != nil {
		return WaterFlow{}, err
	}

	var innerErr error
	fun := func(mass_flow float64) float64 {
		awf, err := AddWaterToAirFlow(haf, NewWaterFlowFromMassFlow(mass_flow, ws))
		if err != nil {
			innerErr = err
			return math.NaN()
		}
		// past saturation the relative humidity is pinned at 1, which
		// makes the residual flat for a target of 1. Charging the
		// condensate keeps it strictly signed there, so the solve lands
		// on the least water flow that reaches the target.
		excess := awf.CondensateMassFlow() / haf.MassFlowAir
		return rel_hum_target - awf.HumidAirFlow.HumidAirState.RelHum - excess
	}

	mass_flow, err := brentq(fun, 0, haf.MassFlowAir)
	if innerErr != nil {
		return WaterFlow{}, innerErr
	}
	if err != nil {
		return WaterFlow{}, err
	}

	return NewWaterFlowFromMassFlow(mass_flow, ws), nil
}

/*
Exchange sensible heat between two air streams through a rotary heat
exchanger with a given heat recovery rate.

	Args:
	    haf_1: supply side flow
	    haf_2: exhaust side flow
	    heat_recovery_rate: temperature recovery efficiency, 0 to 1

	Returns:
	    the supply and exhaust flows after the exchanger

	Notes:
	    The two mass flows must agree within 10 percent, the usual design
	    condition for rotary exchangers. Cooling one side below its dew
	    point fails with ValidationError.
*/
func RotaryHeatExchanger(haf_1, haf_2 HumidAirFlow, heat_recovery_rate float64) (HumidAirFlow, HumidAirFlow, error) {
	if !scalar.EqualWithinRel(haf_1.MassFlow, haf_2.MassFlow, 0.1) {
		return HumidAirFlow{}, HumidAirFlow{}, newValidationError(
			"mass flows of the exchanging air streams must be equal")
	}

	t_1 := haf_1.HumidAirState.TDryBulb
	t_2 := haf_2.HumidAirState.TDryBulb

	// supply side outlet temperature
	t_1_out := t_1 + heat_recovery_rate*(t_2-t_1)

	enthalpy_flow, err := HowMuchEnthalpyToTemp(haf_1, t_1_out)
	if err != nil {
		return HumidAirFlow{}, HumidAirFlow{}, err
	}

	haf_1_out, err := AddEnthalpyToAirFlow(haf_1, enthalpy_flow)
	if err != nil {
		return HumidAirFlow{}, HumidAirFlow{}, err
	}
	haf_2_out, err := AddEnthalpyToAirFlow(haf_2, -enthalpy_flow)
	if err != nil {
		return HumidAirFlow{}, HumidAirFlow{}, err
	}

	return haf_1_out, haf_2_out, nil
}
