package validate

import "testing"

func TestDefaultReservedKeywordsCoversSpecSet(t *testing.T) {
	want := []string{
		"if", "else", "while", "for", "do", "switch", "case", "default",
		"break", "continue", "return", "function", "var", "globalvar",
		"enum", "with", "repeat", "until", "exit", "self", "other", "all",
		"noone", "global",
	}
	for _, kw := range want {
		if _, ok := DefaultReservedKeywords[kw]; !ok {
			t.Errorf("expected %q in DefaultReservedKeywords", kw)
		}
	}
	if len(DefaultReservedKeywords) != len(want) {
		t.Errorf("expected %d default keywords, got %d", len(want), len(DefaultReservedKeywords))
	}
}

func TestMergeKeywordsDoesNotMutateDefault(t *testing.T) {
	merged := MergeKeywords([]string{"CustomKeyword"})

	if _, ok := merged["customkeyword"]; !ok {
		t.Error("expected lowercased custom keyword in merged set")
	}
	if _, ok := DefaultReservedKeywords["customkeyword"]; ok {
		t.Error("MergeKeywords must not mutate DefaultReservedKeywords")
	}
}

func TestIsReservedCaseInsensitive(t *testing.T) {
	keywords := MergeKeywords(nil)
	if !IsReserved("Return", keywords) {
		t.Error("expected Return to be reserved case-insensitively")
	}
	if IsReserved("health", keywords) {
		t.Error("did not expect health to be reserved")
	}
}
