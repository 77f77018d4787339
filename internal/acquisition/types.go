// internal/acquisition/types.go
package acquisition

import "time"

// Reading is the snapshot produced by one successful acquisition
// cycle. The raw hex words are captured before float conversion so
// logged data can be audited against the IEEE-754 encoding. The loop
// keeps no history; each reading is handed to the sink and discarded.
type Reading struct {
	At          time.Time
	Temperature float64
	HexTemp     string
	RawEC       float64
	HexRawEC    string
	SensorEC    float64 // firmware-compensated EC (fixed k)
	SmartEC     float64 // dynamically compensated EC
	Coefficient float64 // k used for SmartEC
	Deviation   float64 // SensorEC - SmartEC
}

// Sink consumes readings. Delivery only: no logic, no interpretation.
type Sink interface {
	Emit(Reading) error
}
