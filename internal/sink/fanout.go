// internal/sink/fanout.go
package sink

import (
	"errors"
	"strings"

	"github.com/asamountain/QA-BOQU-IOT-485-EC4A/internal/acquisition"
)

// Fanout delivers every reading to each child sink. A failing child
// does not stop delivery to the others; all failures are reported
// together.
type Fanout []acquisition.Sink

func (f Fanout) Emit(r acquisition.Reading) error {
	var errs []string
	for _, s := range f {
		if err := s.Emit(r); err != nil {
			errs = append(errs, err.Error())
		}
	}
	if len(errs) > 0 {
		return errors.New("sink: " + strings.Join(errs, " | "))
	}
	return nil
}
