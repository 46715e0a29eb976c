// Package psychroflow models the thermodynamic state of humid air and
// liquid water and the result of combining such flows (mixing, heating,
// adding water) under conservation of mass and energy, including phase
// splits into liquid water or ice when a mixture supersaturates.
//
// Unit conventions: SI units are used for all physical values except
// temperature, for which degree C is used. Pressure is always an
// explicit parameter; there is no global unit or pressure mode.
//
// All state and flow values are immutable after construction and all
// operations are pure, so the package is safe for concurrent use.
package psychroflow
