package rffe

// Command is the classified command kind of the current transaction.
// CmdNone means no command has been classified yet; the transaction
// context always carries exactly one of these values.
type Command int

const (
	CmdNone Command = iota
	CmdERW          // extended register write
	CmdERR          // extended register read
	CmdERWL         // extended register write long
	CmdERRL         // extended register read long
	CmdRW           // register write
	CmdRR           // register read
	CmdR0W          // register 0 write
)

// String returns the command mnemonic.
func (c Command) String() string {
	switch c {
	case CmdERW:
		return "ERW"
	case CmdERR:
		return "ERR"
	case CmdERWL:
		return "ERWL"
	case CmdERRL:
		return "ERRL"
	case CmdRW:
		return "RW"
	case CmdRR:
		return "RR"
	case CmdR0W:
		return "R0W"
	default:
		return "NONE"
	}
}

// Kind returns the annotation kind that marks this command's frame.
func (c Command) Kind() Kind {
	switch c {
	case CmdERW:
		return KindERW
	case CmdERR:
		return KindERR
	case CmdERWL:
		return KindERWL
	case CmdERRL:
		return KindERRL
	case CmdRW:
		return KindRW
	case CmdRR:
		return KindRR
	default:
		return KindR0W
	}
}

// IsRead reports whether the command's data phase is slave-driven and
// resumes after the first bus park.
func (c Command) IsRead() bool {
	return c == CmdRR || c == CmdERR || c == CmdERRL
}

// Transaction is the context of one command-to-bus-park cycle. It is a
// value type: abandoning or completing a transaction replaces the whole
// context rather than clearing fields one by one.
type Transaction struct {
	// Cmd is the classified command, CmdNone before classification.
	Cmd Command
	// Extended is set while the command bits are still being examined,
	// once bit 1 has ruled the non-extended families in or out.
	Extended bool
	// ByteCount is the decoded byte-count field of extended transfers.
	ByteCount uint32
	// ParityCount is the number of parity bits consumed so far.
	ParityCount int
	// AddressCount is the number of address fields consumed so far.
	AddressCount int
	// BusParkCount tracks the bus-park phase of read commands: 1 after
	// the address phase, 2 when the transaction is on its final park.
	BusParkCount int
}
