package tmpl

import "testing"

func TestExpand(t *testing.T) {
	tests := []struct {
		name string
		s    string
		vars Vars
		want string
	}{
		{"no placeholders", "Hello", Vars{Dir: "out"}, "Hello"},
		{"dir", "wrote {dir}", Vars{Dir: "AppIcon.appiconset"}, "wrote AppIcon.appiconset"},
		{"count", "{count} icons", Vars{Count: 12}, "12 icons"},
		{"zero count", "{count} icons", Vars{}, "0 icons"},
		{"duration", "took {duration}", Vars{Duration: "1.2s"}, "took 1.2s"},
		{"status", "run {status}", Vars{Status: "failed"}, "run failed"},
		{"repeated", "{dir} {dir}", Vars{Dir: "x"}, "x x"},
		{"unknown kept", "{profile} {count}", Vars{Count: 3}, "{profile} 3"},
		{"empty dir", "{dir}", Vars{}, ""},
		{"all vars", "{status}: {count} icons in {dir} ({duration})",
			Vars{Dir: "out", Count: 12, Duration: "800ms", Status: "ok"},
			"ok: 12 icons in out (800ms)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Expand(tt.s, tt.vars); got != tt.want {
				t.Errorf("Expand(%q, %+v) = %q, want %q", tt.s, tt.vars, got, tt.want)
			}
		})
	}
}
