package parameter

import "time"

// Ambient Audio
const (
	// AudioSampleRate is the output sample rate in Hz
	AudioSampleRate = 48000

	// AudioBufferDuration is the speaker buffer length
	AudioBufferDuration = 100 * time.Millisecond

	// AudioDroneBaseFreq is the root of the ambient drone (Hz)
	AudioDroneBaseFreq = 55.0

	// AudioDroneFifthFreq is the fifth layered over the root (Hz)
	AudioDroneFifthFreq = 82.5

	// AudioDefaultVolume is the initial volume in [0,1]
	AudioDefaultVolume = 0.3

	// AudioVolumeStep is the change per volume key press
	AudioVolumeStep = 0.05

	// AudioVolumeBase is the exponential base for beep's effects.Volume
	AudioVolumeBase = 2.0

	// AudioSilenceFloor maps volume 0 to silence in effects.Volume units
	AudioSilenceFloor = -6.0
)
