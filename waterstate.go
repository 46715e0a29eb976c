package psychroflow

import "math"

// temperature of the triple point of water, degree C
const TriplePointTemperature = 0.01

/*
Calculate the saturation vapor pressure of water / ice.

	Args:
	    t: temperature, degree C

	Returns:
	    saturation vapor pressure, Pa

	Notes:
	    Dispatches between the liquid branch (t >= 0.01 degree C) and the
	    ice branch with a continuous join at the triple point.
	    Valid for -223.15 degree C <= t <= 373.9 degree C.
*/
func GetSatVapPressure(t float64) (float64, error) {
	if t < -223.15 || t > 373.9 {
		return 0, &DomainError{
			Quantity: "saturation vapor pressure",
			TMin:     -223.15,
			TMax:     373.9,
			T:        t,
		}
	}
	return satVapPressure(t), nil
}

/*
Calculate the saturation vapor pressure over liquid water.

	Args:
	    t: temperature, degree C

	Returns:
	    saturation vapor pressure, Pa

	Notes:
	    [1] W. Wagner, A. Pruss, "The IAPWS Formulation 1995 for the
	    Thermodynamic Properties of Ordinary Water Substance for General
	    and Scientific Use", Journal of Physical and Chemical Reference
	    Data, Vol. 31, No. 2, pp. 387-535, 2002, doi: 10.1063/1.1461829,
	    eqn (2.5).
*/
func GetSatVapPressureLiquidWater(t float64) (float64, error) {
	if t < TriplePointTemperature || t > 373.9 {
		return 0, &DomainError{
			Quantity: "saturation vapor pressure (liquid branch)",
			TMin:     TriplePointTemperature,
			TMax:     373.9,
			T:        t,
		}
	}
	return satVapPressureLiquid(t), nil
}

/*
Calculate the saturation (sublimation) vapor pressure over water ice.

	Args:
	    t: temperature, degree C

	Returns:
	    saturation vapor pressure, Pa

	Notes:
	    [1] W. Wagner, T. Riethmann, R. Feistel, A. H. Harvey,
	    "New Equations for the Sublimation Pressure and Melting Pressure
	    of H2O Ice Ih", Journal of Physical and Chemical Reference Data,
	    Vol. 40, No. 4, 043103, 2011, doi: 10.1063/1.3657937.
*/
func GetSatVapPressureWaterIce(t float64) (float64, error) {
	if t < -223.15 || t > TriplePointTemperature {
		return 0, &DomainError{
			Quantity: "saturation vapor pressure (ice branch)",
			TMin:     -223.15,
			TMax:     TriplePointTemperature,
			T:        t,
		}
	}
	return satVapPressureIce(t), nil
}

// GetSatVapPressureExtrapolated evaluates the saturation vapor pressure
// correlations without any range check. Only meant for diagnostic
// plotting of the correlations themselves, never for production results.
func GetSatVapPressureExtrapolated(t float64) float64 {
	return satVapPressure(t)
}

// satVapPressure is the unchecked dispatcher used by the root-finding
// kernels, which guarantee brackets inside the valid range.
func satVapPressure(t float64) float64 {
	if t >= TriplePointTemperature {
		return satVapPressureLiquid(t)
	}
	return satVapPressureIce(t)
}

func satVapPressureLiquid(t float64) float64 {
	// critical pressure, Pa, and critical temperature, K
	const p_c = 22.064e6
	const t_c = 647.096

	const a1 = -7.85951783
	const a2 = 1.84408259
	const a3 = -11.7866497
	const a4 = 22.6807411
	const a5 = -15.9618719
	const a6 = 1.80122502

	t_k := 273.15 + t
	tau := 1.0 - t_k/t_c

	return p_c * math.Exp(
		(t_c/t_k)*(a1*tau+
			a2*math.Pow(tau, 1.5)+
			a3*math.Pow(tau, 3.0)+
			a4*math.Pow(tau, 3.5)+
			a5*math.Pow(tau, 4.0)+
			a6*math.Pow(tau, 7.5)),
	)
}

func satVapPressureIce(t float64) float64 {
	// triple point pressure, Pa, and triple point temperature, K
	const p_t = 611.657
	const t_t = 273.16

	const b1 = -0.212144006e2
	const b2 = 0.273203819e2
	const b3 = -0.610598130e1

	t_k := 273.15 + t
	theta := t_k / t_t

	return p_t * math.Exp(
		(t_t/t_k)*(b1*math.Pow(theta, 0.333333333e-2)+
			b2*math.Pow(theta, 0.120666667e1)+
			b3*math.Pow(theta, 0.170333333e1)),
	)
}

/*
Calculate the density of liquid water or ice, whichever phase is stable
at the given temperature.

	Args:
	    t: temperature, degree C

	Returns:
	    density, kg/m3
*/
func GetDensityWater(t float64) (float64, error) {
	if t >= TriplePointTemperature {
		return GetDensityWaterLiquid(t)
	}
	return GetDensityWaterIce(t)
}

/*
Calculate the density of liquid water.

	Args:
	    t: temperature, degree C

	Returns:
	    density, kg/m3

	Notes:
	    [1] C. O. Popiel, J. Wojtkowiak, "Simple Formulas for
	    Thermophysical Properties of Liquid Water for Heat Transfer
	    Calculations (from 0°C to 150°C)", Heat Transfer Engineering,
	    Vol. 19, No. 3, pp. 87-101, 1998, doi: 10.1080/01457639808939929.
*/
func GetDensityWaterLiquid(t float64) (float64, error) {
	if t < TriplePointTemperature || t > 150 {
		return 0, &DomainError{
			Quantity: "liquid water density",
			TMin:     TriplePointTemperature,
			TMax:     150,
			T:        t,
		}
	}

	tau := 1.0 - (t+273.15)/647.096

	// critical density, kg/m3
	const rho_c = 322.0
	const b1 = 1.99274064
	const b2 = 1.09965342
	const b3 = -0.510839303
	const b4 = -1.75493479
	const b5 = -45.5170352
	const b6 = -6.74694450e5

	return rho_c * (1.0 +
		b1*math.Pow(tau, 1.0/3.0) +
		b2*math.Pow(tau, 2.0/3.0) +
		b3*math.Pow(tau, 5.0/3.0) +
		b4*math.Pow(tau, 16.0/3.0) +
		b5*math.Pow(tau, 43.0/3.0) +
		b6*math.Pow(tau, 110.0/3.0)), nil
}

// Chebyshev coefficients for the density of water ice, g/cm3,
// fitted to the Ice Ih data of Feistel and Wagner, "A New Equation of
// State for H2O Ice Ih", J. Phys. Chem. Ref. Data 35, 1021 (2006).
var densityIceChebCoef = [6]float64{
	0.92801793,
	-0.00842493,
	-0.00290406,
	-9.85882725e-05,
	0.00015617,
	-1.79696265e-05,
}

// fit domain of densityIceChebCoef, degree C
const (
	densityIceChebTMin = -260.0
	densityIceChebTMax = 0.0
)

/*
Calculate the density of water ice.

	Args:
	    t: temperature, degree C

	Returns:
	    density, kg/m3

	Notes:
	    Chebyshev polynomial of degree 5 fitted to the Ice Ih equation of
	    state of Feistel and Wagner (2006). Valid from -260 degree C up to
	    the triple point.
*/
func GetDensityWaterIce(t float64) (float64, error) {
	if t < -260 || t > TriplePointTemperature {
		return 0, &DomainError{
			Quantity: "water ice density",
			TMin:     -260,
			TMax:     TriplePointTemperature,
			T:        t,
		}
	}

	// map onto the Chebyshev domain [-1, 1]
	x := (2.0*t - (densityIceChebTMax + densityIceChebTMin)) /
		(densityIceChebTMax - densityIceChebTMin)

	// Clenshaw recurrence
	var b1, b2 float64
	for i := len(densityIceChebCoef) - 1; i >= 1; i-- {
		b1, b2 = densityIceChebCoef[i]+2.0*x*b1-b2, b1
	}
	rho := densityIceChebCoef[0] + x*b1 - b2

	// g/cm3 -> kg/m3
	return rho * 1e3, nil
}

/*
Calculate the specific enthalpy of liquid water or ice, whichever phase
is stable at the given temperature.

	Args:
	    t: temperature, degree C

	Returns:
	    specific enthalpy, J/kg

	Notes:
	    Zero point at the triple point of liquid water, consistent with
	    the moist air enthalpy convention.
*/
func GetEnthalpyWater(t float64) (float64, error) {
	if t >= TriplePointTemperature {
		return GetEnthalpyWaterLiquid(t)
	}
	return GetEnthalpyWaterIce(t)
}

// enthalpyWater is the unchecked dispatcher used by the root-finding
// kernels only.
func enthalpyWater(t float64) float64 {
	if t >= TriplePointTemperature {
		return enthalpyWaterLiquid(t)
	}
	return enthalpyWaterIce(t)
}

/*
Calculate the specific enthalpy of liquid water.

	Args:
	    t: temperature, degree C

	Returns:
	    specific enthalpy, J/kg

	Notes:
	    [1] C. O. Popiel, J. Wojtkowiak, "Simple Formulas for
	    Thermophysical Properties of Liquid Water for Heat Transfer
	    Calculations (from 0°C to 150°C)", Heat Transfer Engineering,
	    Vol. 19, No. 3, pp. 87-101, 1998, doi: 10.1080/01457639808939929.
*/
func GetEnthalpyWaterLiquid(t float64) (float64, error) {
	if t < TriplePointTemperature || t > 150 {
		return 0, &DomainError{
			Quantity: "liquid water enthalpy",
			TMin:     TriplePointTemperature,
			TMax:     150,
			T:        t,
		}
	}
	return enthalpyWaterLiquid(t), nil
}

func enthalpyWaterLiquid(t float64) float64 {
	const d1 = -2.844699e-2
	const d2 = 4.211925
	const d3 = -1.017034e-3
	const d4 = 1.311054e-5
	const d5 = -6.756469e-8
	const d6 = 1.724481e-10

	return (d1 + d2*t + d3*t*t + d4*t*t*t + d5*t*t*t*t + d6*t*t*t*t*t) * 1e3
}

/*
Calculate the specific enthalpy of water ice.

	Args:
	    t: temperature, degree C

	Returns:
	    specific enthalpy, J/kg

	Notes:
	    Low order polynomial fit to the Ice Ih values of IAPWS R10-06
	    (2009), same zero point as the liquid branch. The constant term
	    carries the enthalpy of fusion at the triple point.
*/
func GetEnthalpyWaterIce(t float64) (float64, error) {
	if t < -273.15 || t > TriplePointTemperature {
		return 0, &DomainError{
			Quantity: "water ice enthalpy",
			TMin:     -273.15,
			TMax:     TriplePointTemperature,
			T:        t,
		}
	}
	return enthalpyWaterIce(t), nil
}

func enthalpyWaterIce(t float64) float64 {
	const e0 = -333.43e3
	const e1 = 2.1303e3
	const e2 = 3.7454

	return e0 + e1*t + e2*t*t
}

// WaterState describes a state of liquid water. The pressure is carried
// for bookkeeping only, liquid properties are evaluated at the
// temperature alone.
type WaterState struct {
	// temperature, degree C
	Temperature float64
	// total pressure, Pa
	Pressure float64
	// density, kg/m3
	Density float64
	// specific enthalpy, J/kg
	Enthalpy float64
}

/*
Create a WaterState at standard pressure.

	Args:
	    temperature: water temperature, degree C

	Returns:
	    the liquid water state
*/
func NewWaterState(temperature float64) (WaterState, error) {
	return NewWaterStateWithPressure(temperature, StandardPressure)
}

/*
Create a WaterState at an explicit total pressure.

	Args:
	    temperature: water temperature, degree C
	    pressure: total pressure, Pa (informational only)

	Returns:
	    the liquid water state
*/
func NewWaterStateWithPressure(temperature, pressure float64) (WaterState, error) {
	density, err := GetDensityWaterLiquid(temperature)
	if err != nil {
		return WaterState{}, err
	}
	enthalpy, err := GetEnthalpyWaterLiquid(temperature)
	if err != nil {
		return WaterState{}, err
	}
	return WaterState{
		Temperature: temperature,
		Pressure:    pressure,
		Density:     density,
		Enthalpy:    enthalpy,
	}, nil
}

// IceState describes a state of water ice, the solid counterpart of
// WaterState.
type IceState struct {
	// temperature, degree C
	Temperature float64
	// total pressure, Pa
	Pressure float64
	// density, kg/m3
	Density float64
	// specific enthalpy, J/kg
	Enthalpy float64
}

/*
Create an IceState at standard pressure.

	Args:
	    temperature: ice temperature, degree C

	Returns:
	    the water ice state
*/
func NewIceState(temperature float64) (IceState, error) {
	return NewIceStateWithPressure(temperature, StandardPressure)
}

/*
Create an IceState at an explicit total pressure.

	Args:
	    temperature: ice temperature, degree C
	    pressure: total pressure, Pa (informational only)

	Returns:
	    the water ice state
*/
func NewIceStateWithPressure(temperature, pressure float64) (IceState, error) {
	density, err := GetDensityWaterIce(temperature)
	if err != nil {
		return IceState{}, err
	}
	enthalpy, err := GetEnthalpyWaterIce(temperature)
	if err != nil {
		return IceState{}, err
	}
	return IceState{
		Temperature: temperature,
		Pressure:    pressure,
		Density:     density,
		Enthalpy:    enthalpy,
	}, nil
}
