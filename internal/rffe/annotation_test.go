package rffe

import "testing"

func TestKindRows(t *testing.T) {
	warnings := []Kind{KindCommandWarning, KindSSCWarning, KindIllegalJumpEdge}
	for _, k := range warnings {
		if k.Row() != RowWarnings {
			t.Errorf("%v row = %v, want warnings", k, k.Row())
		}
	}
	fields := []Kind{KindSSC, KindSlaveAddress, KindParity, KindData, KindBusPark}
	for _, k := range fields {
		if k.Row() != RowCommandData {
			t.Errorf("%v row = %v, want command-data", k, k.Row())
		}
	}
}

func TestKindLabels(t *testing.T) {
	tests := []struct {
		kind  Kind
		long  string
		short string
	}{
		{KindSSC, "Sequence Start Condition", "SSC"},
		{KindSlaveAddress, "Slave Address", "SA"},
		{KindERRL, "Extended Register Read Long", "ERRL"},
		{KindIllegalJumpEdge, "Illegal Jump Edge", "IJE"},
	}
	for _, tt := range tests {
		if got := tt.kind.Long(); got != tt.long {
			t.Errorf("%v long = %q, want %q", tt.kind, got, tt.long)
		}
		if got := tt.kind.Short(); got != tt.short {
			t.Errorf("%v short = %q, want %q", tt.kind, got, tt.short)
		}
	}
}

func TestAnnotationLabelFallback(t *testing.T) {
	a := Annotation{Kind: KindBusPark}
	if a.Label() != "Bus Park" {
		t.Errorf("Label() = %q, want kind long name", a.Label())
	}
	if a.ShortLabel() != "BP" {
		t.Errorf("ShortLabel() = %q, want kind short name", a.ShortLabel())
	}

	a.Labels = []string{"Data[7:0]: CA", "DATA[7:0]: CA", "CA"}
	if a.Label() != "Data[7:0]: CA" {
		t.Errorf("Label() = %q, want longest form", a.Label())
	}
	if a.ShortLabel() != "CA" {
		t.Errorf("ShortLabel() = %q, want shortest form", a.ShortLabel())
	}
}

func TestParseAddressFormat(t *testing.T) {
	if got := ParseAddressFormat("unshifted"); got != AddressUnshifted {
		t.Errorf("ParseAddressFormat(unshifted) = %v", got)
	}
	if got := ParseAddressFormat("shifted"); got != AddressShifted {
		t.Errorf("ParseAddressFormat(shifted) = %v", got)
	}
	if got := ParseAddressFormat("bogus"); got != AddressShifted {
		t.Errorf("ParseAddressFormat(bogus) = %v, want shifted fallback", got)
	}
}

func TestCommandIsRead(t *testing.T) {
	reads := map[Command]bool{
		CmdNone: false, CmdR0W: false, CmdRW: false, CmdERW: false,
		CmdERWL: false, CmdRR: true, CmdERR: true, CmdERRL: true,
	}
	for cmd, want := range reads {
		if got := cmd.IsRead(); got != want {
			t.Errorf("%v IsRead = %v, want %v", cmd, got, want)
		}
	}
}
