package validate

import "testing"

func TestNormalizeIdentifier(t *testing.T) {
	cases := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{name: "simple", in: "hp", want: "hp"},
		{name: "underscore prefix", in: "_private", want: "_private"},
		{name: "alnum", in: "scr_move2", want: "scr_move2"},
		{name: "empty", in: "", wantErr: true},
		{name: "whitespace only", in: "   ", wantErr: true},
		{name: "leading whitespace", in: " hp", wantErr: true},
		{name: "trailing whitespace", in: "hp ", wantErr: true},
		{name: "starts with digit", in: "2hp", wantErr: true},
		{name: "contains dash", in: "my-var", wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := NormalizeIdentifier(tc.in)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q, got nil", tc.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error for %q: %v", tc.in, err)
			}
			if got != tc.want {
				t.Errorf("NormalizeIdentifier(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestIsValidIdentifier(t *testing.T) {
	if !IsValidIdentifier("hp") {
		t.Error("expected hp to be valid")
	}
	if IsValidIdentifier("2hp") {
		t.Error("expected 2hp to be invalid")
	}
}

func TestParseSymbolIDDelegates(t *testing.T) {
	sym, err := ParseSymbolID("gml/script/scr_move")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sym.Name != "scr_move" {
		t.Errorf("Name = %q, want %q", sym.Name, "scr_move")
	}
}
