package output

import "errors"

// MultiOutput fans every record out to several destinations. A failing
// destination does not stop the others.
type MultiOutput struct {
	dests []OutputDestination
}

func NewMultiOutput(dests ...OutputDestination) *MultiOutput {
	return &MultiOutput{dests: dests}
}

func (m *MultiOutput) WriteMessage(topic string, msg []byte) error {
	var errs []error
	for _, d := range m.dests {
		if err := d.WriteMessage(topic, msg); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m *MultiOutput) Close() error {
	var errs []error
	for _, d := range m.dests {
		if err := d.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
