package rffe

import "fmt"

// Kind identifies the protocol field an annotation covers.
type Kind int

const (
	KindSSC Kind = iota
	KindSlaveAddress
	KindERW
	KindERR
	KindERWL
	KindERRL
	KindRW
	KindRR
	KindR0W
	KindByteCount
	KindParity
	KindAddress
	KindBusPark
	KindData
	KindCommandWarning
	KindBusIdle
	KindSSCWarning
	KindIllegalJumpEdge
)

// Row is the display row an annotation belongs to. Protocol fields share
// one row; warnings get their own so anomalies stay visible under dense
// traffic.
type Row int

const (
	RowCommandData Row = iota
	RowWarnings
)

// String returns the row identifier used in exports.
func (r Row) String() string {
	if r == RowWarnings {
		return "warnings"
	}
	return "command-data"
}

// kindLabel holds the long and short display forms of a field kind.
type kindLabel struct {
	long  string
	short string
}

var kindLabels = map[Kind]kindLabel{
	KindSSC:             {"Sequence Start Condition", "SSC"},
	KindSlaveAddress:    {"Slave Address", "SA"},
	KindERW:             {"Extended Register Write", "ERW"},
	KindERR:             {"Extended Register Read", "ERR"},
	KindERWL:            {"Extended Register Write Long", "ERWL"},
	KindERRL:            {"Extended Register Read Long", "ERRL"},
	KindRW:              {"Register Write", "RW"},
	KindRR:              {"Register Read", "RR"},
	KindR0W:             {"Register 0 Write", "R0W"},
	KindByteCount:       {"Byte Count", "BC"},
	KindParity:          {"Parity", "P"},
	KindAddress:         {"Address", "A"},
	KindBusPark:         {"Bus Park", "BP"},
	KindData:            {"Data", "DATA"},
	KindCommandWarning:  {"Command Warning", "CMD_WARN"},
	KindBusIdle:         {"Bus Idle Condition", "BIC"},
	KindSSCWarning:      {"SSC Warning", "SSC_WARN"},
	KindIllegalJumpEdge: {"Illegal Jump Edge", "IJE"},
}

// Long returns the long display name of the kind.
func (k Kind) Long() string { return kindLabels[k].long }

// Short returns the short display name of the kind.
func (k Kind) Short() string { return kindLabels[k].short }

// String returns the short name; it doubles as the export identifier.
func (k Kind) String() string {
	if l, ok := kindLabels[k]; ok {
		return l.short
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Row returns the display row for the kind.
func (k Kind) Row() Row {
	switch k {
	case KindCommandWarning, KindSSCWarning, KindIllegalJumpEdge:
		return RowWarnings
	default:
		return RowCommandData
	}
}

// Annotation is one labeled interval of the sample stream. Start is the
// sample where the field's first bit was observed; End is the sample of
// the edge confirming its last bit. Labels run longest to shortest.
type Annotation struct {
	Start  uint64
	End    uint64
	Kind   Kind
	Labels []string
}

// Label returns the longest label form.
func (a Annotation) Label() string {
	if len(a.Labels) == 0 {
		return a.Kind.Long()
	}
	return a.Labels[0]
}

// ShortLabel returns the most compact label form.
func (a Annotation) ShortLabel() string {
	if len(a.Labels) == 0 {
		return a.Kind.Short()
	}
	return a.Labels[len(a.Labels)-1]
}

// Sink receives annotations as the decoder produces them. Emission cannot
// fail; a sink that can lose annotations must handle that internally.
type Sink interface {
	Annotate(Annotation)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(Annotation)

// Annotate implements Sink.
func (f SinkFunc) Annotate(a Annotation) { f(a) }

// Collector is a Sink that retains every annotation in order. Used by
// tests and by the serve command's replay buffer.
type Collector struct {
	Annotations []Annotation
}

// Annotate implements Sink.
func (c *Collector) Annotate(a Annotation) {
	c.Annotations = append(c.Annotations, a)
}

// Kinds returns the kind sequence of the collected annotations.
func (c *Collector) Kinds() []Kind {
	kinds := make([]Kind, len(c.Annotations))
	for i, a := range c.Annotations {
		kinds[i] = a.Kind
	}
	return kinds
}
