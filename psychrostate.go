package psychroflow

import (
	"math"

	"gonum.org/v1/gonum/floats/scalar"
)

// StandardPressure is the standard atmospheric pressure at sea level, Pa.
const StandardPressure = 101325.0

// ratio of the specific gas constants of dry air and water vapor
const humRatioConst = 0.621945

// specific gas constant of dry air, J/(kg K)
const gasConstantAir = 287.05

// tolerances of the isclose style comparisons used for clamping and for
// the pressure match check when mixing
const (
	closeAbsTol = 1e-12
	closeRelTol = 1e-9
)

func isClose(a, b float64) bool {
	return scalar.EqualWithinAbsOrRel(a, b, closeAbsTol, closeRelTol)
}

/*
Calculate the mean atmospheric pressure at a height above sea level.

	Args:
	    height_above_sea_level: height above mean sea level, m

	Returns:
	    mean atmospheric pressure, Pa
*/
func GetPressureFromHeight(height_above_sea_level float64) float64 {
	return StandardPressure * math.Exp(-height_above_sea_level/8435.0)
}

// HumidAirState is a fully resolved psychrometric state of humid air.
// It is only created through the New... constructors and never modified
// afterwards.
type HumidAirState struct {
	// total pressure, Pa
	Pressure float64
	// humidity ratio, kg(water)/kg(dry air)
	HumRatio float64
	// dry bulb temperature, degree C
	TDryBulb float64
	// wet bulb temperature, degree C
	TWetBulb float64
	// dew point temperature, degree C
	TDewPoint float64
	// relative humidity, 0 to 1
	RelHum float64
	// partial pressure of water vapor, Pa
	VapPres float64
	// specific enthalpy, J/kg(dry air)
	MoistAirEnthalpy float64
	// specific volume, m3/kg(dry air)
	MoistAirVolume float64
}

/*
Create a HumidAirState from dry bulb temperature and relative humidity.

	Args:
	    t_dry_bulb: dry bulb temperature, degree C
	    rel_hum: relative humidity, 0 to 1
	    pressure: total pressure, Pa

	Returns:
	    the resolved state
*/
func NewHumidAirStateFromTDryBulbRelHum(t_dry_bulb, rel_hum, pressure float64) (HumidAirState, error) {
	hum_ratio, err := GetHumRatioFromRelHum(t_dry_bulb, rel_hum, pressure)
	if err != nil {
		return HumidAirState{}, err
	}

	vap_pres, err := GetVapPressFromHumRatio(hum_ratio, pressure)
	if err != nil {
		return HumidAirState{}, err
	}

	t_wet_bulb, err := GetTWetBulb(t_dry_bulb, hum_ratio, pressure)
	if err != nil {
		return HumidAirState{}, err
	}

	t_dew_point, err := GetTDewPointFromVapPressure(vap_pres)
	if err != nil {
		return HumidAirState{}, err
	}

	moist_air_enthalpy, err := GetMoistAirEnthalpy(t_dry_bulb, hum_ratio)
	if err != nil {
		return HumidAirState{}, err
	}

	moist_air_volume, err := GetMoistAirVolume(t_dry_bulb, hum_ratio, pressure)
	if err != nil {
		return HumidAirState{}, err
	}

	return HumidAirState{
		Pressure:         pressure,
		HumRatio:         hum_ratio,
		TDryBulb:         t_dry_bulb,
		TWetBulb:         t_wet_bulb,
		TDewPoint:        t_dew_point,
		RelHum:           rel_hum,
		VapPres:          vap_pres,
		MoistAirEnthalpy: moist_air_enthalpy,
		MoistAirVolume:   moist_air_volume,
	}, nil
}

/*
Create a HumidAirState from dry bulb temperature and humidity ratio.

	Args:
	    t_dry_bulb: dry bulb temperature, degree C
	    hum_ratio: humidity ratio, kg(water)/kg(dry air)
	    pressure: total pressure, Pa

	Returns:
	    the resolved state
*/
func NewHumidAirStateFromTDryBulbHumRatio(t_dry_bulb, hum_ratio, pressure float64) (HumidAirState, error) {
	if hum_ratio < 0 {
		if isClose(hum_ratio, 0) {
			hum_ratio = 0
		} else {
			return HumidAirState{}, newValidationError("humidity ratio cannot be negative")
		}
	}

	vap_pres, err := GetVapPressFromHumRatio(hum_ratio, pressure)
	if err != nil {
		return HumidAirState{}, err
	}

	rel_hum, err := GetRelHumFromVapPressure(t_dry_bulb, vap_pres)
	if err != nil {
		return HumidAirState{}, err
	}

	if rel_hum > 1 {
		if isClose(rel_hum, 1) {
			rel_hum = 1
		} else {
			return HumidAirState{}, newValidationError(
				"relative humidity > 1; condensation")
		}
	}

	t_wet_bulb, err := GetTWetBulb(t_dry_bulb, hum_ratio, pressure)
	if err != nil {
		return HumidAirState{}, err
	}

	t_dew_point, err := GetTDewPointFromVapPressure(vap_pres)
	if err != nil {
		return HumidAirState{}, err
	}

	moist_air_enthalpy, err := GetMoistAirEnthalpy(t_dry_bulb, hum_ratio)
	if err != nil {
		return HumidAirState{}, err
	}

	moist_air_volume, err := GetMoistAirVolume(t_dry_bulb, hum_ratio, pressure)
	if err != nil {
		return HumidAirState{}, err
	}

	return HumidAirState{
		Pressure:         pressure,
		HumRatio:         hum_ratio,
		TDryBulb:         t_dry_bulb,
		TWetBulb:         t_wet_bulb,
		TDewPoint:        t_dew_point,
		RelHum:           rel_hum,
		VapPres:          vap_pres,
		MoistAirEnthalpy: moist_air_enthalpy,
		MoistAirVolume:   moist_air_volume,
	}, nil
}

/*
Create a HumidAirState from humidity ratio and specific enthalpy. This is
the energy basis constructor the mixing engine solves through.

	Args:
	    hum_ratio: humidity ratio, kg(water)/kg(dry air)
	    moist_air_enthalpy: specific enthalpy, J/kg(dry air)
	    pressure: total pressure, Pa

	Returns:
	    the resolved state
*/
func NewHumidAirStateFromHumRatioEnthalpy(hum_ratio, moist_air_enthalpy, pressure float64) (HumidAirState, error) {
	if hum_ratio < 0 {
		if isClose(hum_ratio, 0) {
			hum_ratio = 0
		} else {
			return HumidAirState{}, newValidationError("humidity ratio cannot be negative")
		}
	}

	vap_pres, err := GetVapPressFromHumRatio(hum_ratio, pressure)
	if err != nil {
		return HumidAirState{}, err
	}

	// enthalpy per total mass, J/kg(air+water)
	tot_enthalpy := moist_air_enthalpy / (1.0 + hum_ratio)

	t_dry_bulb, err := GetTDryBulbFromTotEnthalpyAirWaterMix(hum_ratio, tot_enthalpy, pressure)
	if err != nil {
		return HumidAirState{}, err
	}

	rel_hum, err := GetRelHumFromVapPressure(t_dry_bulb, vap_pres)
	if err != nil {
		return HumidAirState{}, err
	}

	if rel_hum > 1 {
		if isClose(rel_hum, 1) {
			rel_hum = 1
		} else {
			return HumidAirState{}, newValidationError(
				"relative humidity > 1; condensation")
		}
	}

	t_wet_bulb, err := GetTWetBulb(t_dry_bulb, hum_ratio, pressure)
	if err != nil {
		return HumidAirState{}, err
	}

	t_dew_point, err := GetTDewPointFromVapPressure(vap_pres)
	if err != nil {
		return HumidAirState{}, err
	}

	moist_air_volume, err := GetMoistAirVolume(t_dry_bulb, hum_ratio, pressure)
	if err != nil {
		return HumidAirState{}, err
	}

	return HumidAirState{
		Pressure:         pressure,
		HumRatio:         hum_ratio,
		TDryBulb:         t_dry_bulb,
		TWetBulb:         t_wet_bulb,
		TDewPoint:        t_dew_point,
		RelHum:           rel_hum,
		VapPres:          vap_pres,
		MoistAirEnthalpy: moist_air_enthalpy,
		MoistAirVolume:   moist_air_volume,
	}, nil
}

/*
Return the humid air state with the same humidity ratio at a different
dry bulb temperature.

	Args:
	    t_dry_bulb: new dry bulb temperature, degree C

	Returns:
	    the resolved state
*/
func (has HumidAirState) AtTDryBulb(t_dry_bulb float64) (HumidAirState, error) {
	return NewHumidAirStateFromTDryBulbHumRatio(t_dry_bulb, has.HumRatio, has.Pressure)
}

/*
Calculate the degree of saturation, the humidity ratio over the
saturation humidity ratio at the same temperature and pressure.

	Returns:
	    degree of saturation, 0 to 1
*/
func (has HumidAirState) DegreeOfSaturation() (float64, error) {
	sat_hum_ratio, err := GetSatHumRatio(has.TDryBulb, has.Pressure)
	if err != nil {
		return 0, err
	}
	return has.HumRatio / sat_hum_ratio, nil
}

/*
Calculate the partial pressure of water vapor from relative humidity and
temperature.

	Args:
	    t_dry_bulb: dry bulb temperature, degree C
	    rel_hum: relative humidity, 0 to 1

	Returns:
	    partial pressure of water vapor, Pa
*/
func GetVapPresFromRelHum(t_dry_bulb, rel_hum float64) (float64, error) {
	if isClose(rel_hum, 0) {
		rel_hum = 0
	} else if isClose(rel_hum, 1) {
		rel_hum = 1
	} else if rel_hum < 0 || rel_hum > 1 {
		return 0, newValidationError("relative humidity is outside range [0, 1]")
	}

	p_vs, err := GetSatVapPressure(t_dry_bulb)
	if err != nil {
		return 0, err
	}
	return rel_hum * p_vs, nil
}

/*
Calculate the dew point temperature from the water vapor pressure.

	Args:
	    vap_pres: partial pressure of water vapor, Pa

	Returns:
	    dew point temperature, degree C

	Notes:
	    Bracketed root of vap_pres = satVapPressure(t) over the full
	    correlation range. For vanishing vapor pressure -196 degree C is
	    returned since the root would lie below the correlation range.
*/
func GetTDewPointFromVapPressure(vap_pres float64) (float64, error) {
	if vap_pres < 0 {
		return 0, newValidationError(
			"partial pressure of water vapor in moist air cannot be negative")
	}

	if isClose(vap_pres, 0) {
		return -196, nil
	}

	fun := func(t float64) float64 {
		return vap_pres - satVapPressure(t)
	}

	return brentq(fun, -223.1, 373.9)
}

/*
Calculate the humidity ratio from water vapor pressure and total
pressure.

	Args:
	    vap_pres: partial pressure of water vapor, Pa
	    pressure: total pressure, Pa

	Returns:
	    humidity ratio, kg(water)/kg(dry air)
*/
func GetHumRatioFromVapPress(vap_pres, pressure float64) (float64, error) {
	if vap_pres < 0 {
		return 0, newValidationError(
			"partial pressure of water vapor in moist air cannot be negative")
	}

	hum_ratio := humRatioConst * vap_pres / (pressure - vap_pres)

	if hum_ratio < 0 {
		return 0, newValidationError("vapor pressure of water > total pressure")
	}
	return hum_ratio, nil
}

/*
Calculate the water vapor pressure from humidity ratio and total
pressure.

	Args:
	    hum_ratio: humidity ratio, kg(water)/kg(dry air)
	    pressure: total pressure, Pa

	Returns:
	    partial pressure of water vapor, Pa
*/
func GetVapPressFromHumRatio(hum_ratio, pressure float64) (float64, error) {
	if hum_ratio < 0 {
		return 0, newValidationError("humidity ratio cannot be negative")
	}
	return pressure * hum_ratio / (humRatioConst + hum_ratio), nil
}

/*
Calculate the humidity ratio from dry bulb temperature, relative humidity
and total pressure.

	Args:
	    t_dry_bulb: dry bulb temperature, degree C
	    rel_hum: relative humidity, 0 to 1
	    pressure: total pressure, Pa

	Returns:
	    humidity ratio, kg(water)/kg(dry air)
*/
func GetHumRatioFromRelHum(t_dry_bulb, rel_hum, pressure float64) (float64, error) {
	if rel_hum < 0 || rel_hum > 1 {
		return 0, newValidationError("relative humidity is outside range [0, 1]")
	}

	vap_pres, err := GetVapPresFromRelHum(t_dry_bulb, rel_hum)
	if err != nil {
		return 0, err
	}
	return GetHumRatioFromVapPress(vap_pres, pressure)
}

/*
Calculate the specific enthalpy of moist air per unit mass of dry air.

	Args:
	    t_dry_bulb: dry bulb temperature, degree C
	    hum_ratio: humidity ratio, kg(water)/kg(dry air)

	Returns:
	    specific enthalpy, J/kg(dry air)

	Notes:
	    [1] H. D. Baehr, S. Kabelac, Thermodynamik. Springer Berlin
	    Heidelberg, 2016, doi: 10.1007/978-3-662-49568-1, eqn (5.70).
	    Zero point at the triple point temperature.
*/
func GetMoistAirEnthalpy(t_dry_bulb, hum_ratio float64) (float64, error) {
	if hum_ratio < 0 {
		return 0, newValidationError("humidity ratio cannot be negative")
	}
	return moistAirEnthalpy(t_dry_bulb, hum_ratio), nil
}

func moistAirEnthalpy(t_dry_bulb, hum_ratio float64) float64 {
	dt := t_dry_bulb - TriplePointTemperature
	return (1.0046*dt + hum_ratio*(2500.9+1.863*dt)) * 1e3
}

/*
Calculate the specific volume of moist air per unit mass of dry air.

	Args:
	    t_dry_bulb: dry bulb temperature, degree C
	    hum_ratio: humidity ratio, kg(water)/kg(dry air)
	    pressure: total pressure, Pa

	Returns:
	    specific volume, m3/kg(dry air)

	Notes:
	    [1] H. D. Baehr, S. Kabelac, Thermodynamik. Springer Berlin
	    Heidelberg, 2016, doi: 10.1007/978-3-662-49568-1, eqn (5.68).
*/
func GetMoistAirVolume(t_dry_bulb, hum_ratio, pressure float64) (float64, error) {
	if hum_ratio < 0 {
		return 0, newValidationError("humidity ratio cannot be negative")
	}
	return gasConstantAir * (t_dry_bulb + 273.15) / pressure *
		(1.0 + hum_ratio/humRatioConst), nil
}

/*
Calculate the humidity ratio of saturated air.

	Args:
	    t_dry_bulb: dry bulb temperature, degree C
	    pressure: total pressure, Pa

	Returns:
	    saturation humidity ratio, kg(water)/kg(dry air)

	Notes:
	    When the saturation vapor pressure reaches the total pressure no
	    finite saturation humidity ratio exists (pure steam, which this
	    model does not cover). +Inf is returned as the sentinel so that
	    every finite humidity ratio compares as unsaturated.
*/
func GetSatHumRatio(t_dry_bulb, pressure float64) (float64, error) {
	if _, err := GetSatVapPressure(t_dry_bulb); err != nil {
		return 0, err
	}
	return satHumRatio(t_dry_bulb, pressure), nil
}

func satHumRatio(t_dry_bulb, pressure float64) float64 {
	p_vs := satVapPressure(t_dry_bulb)
	if p_vs >= pressure {
		return math.Inf(1)
	}
	return humRatioConst * p_vs / (pressure - p_vs)
}

/*
Calculate the specific enthalpy of saturated air.

	Args:
	    t_dry_bulb: dry bulb temperature, degree C
	    pressure: total pressure, Pa

	Returns:
	    specific enthalpy, J/kg(dry air)
*/
func GetSatAirEnthalpy(t_dry_bulb, pressure float64) (float64, error) {
	sat_hum_ratio, err := GetSatHumRatio(t_dry_bulb, pressure)
	if err != nil {
		return 0, err
	}
	return GetMoistAirEnthalpy(t_dry_bulb, sat_hum_ratio)
}

func satAirEnthalpy(t_dry_bulb, pressure float64) float64 {
	return moistAirEnthalpy(t_dry_bulb, satHumRatio(t_dry_bulb, pressure))
}

/*
Calculate the relative humidity from dry bulb temperature and vapor
pressure.

	Args:
	    t_dry_bulb: dry bulb temperature, degree C
	    vap_pres: partial pressure of water vapor, Pa

	Returns:
	    relative humidity, 0 to 1
*/
func GetRelHumFromVapPressure(t_dry_bulb, vap_pres float64) (float64, error) {
	if vap_pres < 0 {
		return 0, newValidationError(
			"partial pressure of water vapor in moist air cannot be negative")
	}

	p_vs, err := GetSatVapPressure(t_dry_bulb)
	if err != nil {
		return 0, err
	}
	return vap_pres / p_vs, nil
}

/*
Calculate the specific enthalpy of an air water mixture at equilibrium,
per unit of total mass.

	Args:
	    hum_ratio: total water content, kg(water)/kg(dry air)
	    t_dry_bulb: dry bulb temperature, degree C
	    pressure: total pressure, Pa

	Returns:
	    specific enthalpy, J/kg(air+water)

	Notes:
	    Below saturation this is the ordinary moist air enthalpy
	    renormalized to the total mass. Above saturation the excess water
	    contributes with its condensed phase enthalpy, liquid down to the
	    triple point and ice below it.
*/
func GetTotEnthalpyAirWaterMix(hum_ratio, t_dry_bulb, pressure float64) (float64, error) {
	if hum_ratio < 0 {
		return 0, newValidationError("humidity ratio cannot be negative")
	}
	if _, err := GetSatVapPressure(t_dry_bulb); err != nil {
		return 0, err
	}
	return totEnthalpyAirWaterMix(hum_ratio, t_dry_bulb, pressure), nil
}

func totEnthalpyAirWaterMix(hum_ratio, t_dry_bulb, pressure float64) float64 {
	sat_hum_ratio := satHumRatio(t_dry_bulb, pressure)

	// unsaturated air
	if hum_ratio <= sat_hum_ratio {
		return moistAirEnthalpy(t_dry_bulb, hum_ratio) / (1.0 + hum_ratio)
	}

	enthalpy_gas := satAirEnthalpy(t_dry_bulb, pressure)

	// saturated air over liquid water or ice
	enthalpy_condensate := enthalpyWater(t_dry_bulb)

	return (enthalpy_gas + enthalpy_condensate*(hum_ratio-sat_hum_ratio)) /
		(1.0 + hum_ratio)
}

/*
Calculate the equilibrium temperature of an air water mixture from its
total water content and its specific enthalpy per total mass.

	Args:
	    hum_ratio: total water content, kg(water)/kg(dry air)
	    tot_enthalpy: specific enthalpy, J/kg(air+water)
	    pressure: total pressure, Pa

	Returns:
	    dry bulb temperature, degree C
*/
func GetTDryBulbFromTotEnthalpyAirWaterMix(hum_ratio, tot_enthalpy, pressure float64) (float64, error) {
	fun := func(t float64) float64 {
		return tot_enthalpy - totEnthalpyAirWaterMix(hum_ratio, t, pressure)
	}

	return brentq(fun, -223.1, 373.9)
}

/*
Calculate the dry bulb temperature at which the saturation vapor
pressure equals the given value.

	Args:
	    sat_vap_pressure: saturation vapor pressure, Pa

	Returns:
	    dry bulb temperature, degree C
*/
func GetTDryBulbFromSatVapPressure(sat_vap_pressure float64) (float64, error) {
	fun := func(t float64) float64 {
		return satVapPressure(t) - sat_vap_pressure
	}

	return brentq(fun, -223.15, 373.9)
}

/*
Calculate the thermodynamic wet bulb temperature.

	Args:
	    t_dry_bulb: dry bulb temperature, degree C
	    hum_ratio: humidity ratio, kg(water)/kg(dry air)
	    pressure: total pressure, Pa

	Returns:
	    wet bulb temperature, degree C

	Notes:
	    Root of the psychrometric energy balance
	    h(t_dry_bulb, hum_ratio) + (hr_sat(t) - hum_ratio)*h_water(t) = h_sat(t)
	    The upper bracket limit stays just below the temperature at which
	    the saturation pressure reaches the total pressure.
*/
func GetTWetBulb(t_dry_bulb, hum_ratio, pressure float64) (float64, error) {
	t_boil, err := GetTDryBulbFromSatVapPressure(pressure)
	if err != nil {
		return 0, err
	}
	t_lim_up := math.Min(150, t_boil-1e-3)

	fun := func(t float64) float64 {
		return moistAirEnthalpy(t_dry_bulb, hum_ratio) +
			(satHumRatio(t, pressure)-hum_ratio)*enthalpyWater(t) -
			satAirEnthalpy(t, pressure)
	}

	return brentq(fun, -223.15, t_lim_up)
}
