package diagnostics

import (
	"bytes"
	"strings"
	"testing"
)

func TestLocate(t *testing.T) {
	source := []byte("abc\ndef\nghi")
	tests := []struct {
		offset   int
		wantLine int
		wantCol  int
	}{
		{0, 1, 1},
		{2, 1, 3},
		{4, 2, 1},
		{7, 2, 4},
		{8, 3, 1},
	}
	for _, tt := range tests {
		pos := Locate(source, tt.offset)
		if pos.Line != tt.wantLine || pos.Column != tt.wantCol {
			t.Errorf("Locate(%d) = {%d,%d}, want {%d,%d}", tt.offset, pos.Line, pos.Column, tt.wantLine, tt.wantCol)
		}
	}
}

func TestCollectingEmitter(t *testing.T) {
	var e CollectingEmitter
	Emit(&e, 5, KindInvalidNumber, Error, "bad digit", nil)
	Emit(&e, 1, KindInvalidString, Error, "unterminated", nil)

	if !e.HasKind(KindInvalidNumber) {
		t.Error("expected KindInvalidNumber to be collected")
	}
	if len(e.Diagnostics) != 2 {
		t.Fatalf("len(Diagnostics) = %d, want 2", len(e.Diagnostics))
	}

	e.SortByLocation()
	if e.Diagnostics[0].Location != 1 || e.Diagnostics[1].Location != 5 {
		t.Errorf("SortByLocation did not order by offset: %+v", e.Diagnostics)
	}
}

func TestTextEmitter(t *testing.T) {
	var buf bytes.Buffer
	e := NewTextEmitter("t.src", []byte("1_00\n"), &buf)
	Emit(e, 1, KindIrregularDigitSeparators, Error, "digit separators should appear every 4 characters from the right", nil)

	if !e.HadErrors() {
		t.Error("expected HadErrors to be true after an Error-severity diagnostic")
	}
	out := buf.String()
	if !strings.Contains(out, "t.src:1:2:") {
		t.Errorf("output %q missing expected position prefix", out)
	}
	if !strings.Contains(out, string(KindIrregularDigitSeparators)) {
		t.Errorf("output %q missing diagnostic kind", out)
	}
}
