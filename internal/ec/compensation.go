// internal/ec/compensation.go

// Package ec implements the ABCD float register codec and the dynamic
// temperature compensation for the BOQU IOT-485-EC4A conductivity
// sensor.
package ec

// SensorFixedK is the coefficient the sensor firmware applies
// internally. It over-compensates at low temperatures; the bucketed
// table below replaces it.
const SensorFixedK = 0.0200

// Coefficient returns the dynamic temperature coefficient for temp in
// degrees Celsius. Upper bucket edges are inclusive. The values come
// from bench calibration against the 12.88 mS/cm standard solution.
func Coefficient(temp float64) float64 {
	switch {
	case temp <= 5.0:
		return 0.0180 // 1.80%
	case temp <= 10.0:
		return 0.0184 // 1.84%
	case temp <= 15.0:
		return 0.0190 // 1.90%
	case temp <= 25.0:
		return 0.0190 // 1.90% (flat range)
	case temp <= 30.0:
		return 0.0192 // 1.92%
	default:
		return 0.0194 // 1.94%
	}
}

// Compensate references rawEC to 25 degrees Celsius:
//
//	C25 = rawEC / (1 + k * (temp - 25))
//
// At temp = 25 the result equals rawEC exactly. There is no lower
// bound on temp; negative or extreme temperatures follow the same
// formula.
func Compensate(rawEC, temp float64) float64 {
	return rawEC / (1.0 + Coefficient(temp)*(temp-25.0))
}
