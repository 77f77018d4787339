// internal/sensor/registers.go

// Package sensor owns the Modbus RTU link to the IOT-485-EC4A and the
// discovery of the serial port it lives on.
package sensor

// Holding register map of the IOT-485-EC4A. Float values occupy two
// consecutive registers in ABCD (high word first) order and are always
// read or written as a pair, never one register at a time.
const (
	RegDiag1       uint16 = 1  // u16 diagnostic, read-only
	RegDiag2       uint16 = 2  // u16 diagnostic, read-only
	RegCalMode     uint16 = 13 // u16 calibration mode: write 2 (mode 1) or 3 (mode 2)
	RegTestK       uint16 = 16 // u16 experimental coefficient register, value = k x 10000
	RegCalCoeff    uint16 = 28 // f32 pair 28-29: calibration coefficient
	RegSensorEC    uint16 = 41 // f32 pair 41-42: firmware-compensated EC
	RegRawEC       uint16 = 45 // f32 pair 45-46: uncompensated EC
	RegTemperature uint16 = 60 // f32 pair 60-61: temperature
)

// FloatWidth is the register count of every float pair.
const FloatWidth uint16 = 2

// Factory bus parameters. The sensor ships at slave id 4, not 1.
const (
	DefaultSlaveID  byte = 4
	DefaultBaudRate      = 9600
	DefaultDataBits      = 8
	DefaultParity        = "N"
	DefaultStopBits      = 1
)
