package rffe

// AddressFormat selects how a decoded slave address is rendered. It is a
// pure display option: it never influences field boundaries or command
// classification.
type AddressFormat int

const (
	// AddressShifted renders the 4-bit USID in the upper nibble, the way
	// it appears on the wire ahead of the command payload.
	AddressShifted AddressFormat = iota
	// AddressUnshifted renders the raw 4-bit value.
	AddressUnshifted
)

// ParseAddressFormat maps the config/CLI spelling to an AddressFormat.
// Unknown spellings fall back to shifted, the protocol's conventional
// presentation.
func ParseAddressFormat(s string) AddressFormat {
	if s == "unshifted" {
		return AddressUnshifted
	}
	return AddressShifted
}

// String returns the config spelling of the format.
func (f AddressFormat) String() string {
	if f == AddressUnshifted {
		return "unshifted"
	}
	return "shifted"
}

// Options configures a Decoder.
type Options struct {
	// AddressFormat controls slave-address label rendering only.
	AddressFormat AddressFormat
	// SampleRate is the capture's sampling rate in Hz. The state machine
	// stores it for sinks that want wall-clock columns; classification
	// never reads it.
	SampleRate uint64
}
