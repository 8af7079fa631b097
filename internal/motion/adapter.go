package motion

import (
	"github.com/san-kum/shakebox/internal/shake"
)

// Adapter maps acceleration magnitude to shake pulses using the live
// threshold from the settings handle.
type Adapter struct {
	settings *shake.Settings
	pulse    *shake.Pulse
}

func NewAdapter(settings *shake.Settings, pulse *shake.Pulse) *Adapter {
	return &Adapter{settings: settings, pulse: pulse}
}

// OnSample triggers a shake pulse iff the sample's magnitude is strictly
// greater than the threshold. Samples with no acceleration data are
// ignored. Returns whether a pulse was triggered.
func (a *Adapter) OnSample(s Sample) bool {
	if s.Empty() {
		return false
	}
	if s.Magnitude() > a.settings.Threshold() {
		a.pulse.Trigger()
		return true
	}
	return false
}
