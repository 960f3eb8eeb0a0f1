package validate

import "testing"

func TestValidate_Rejections(t *testing.T) {
	v := New()

	tests := []struct {
		name string
		text string
	}{
		{"empty", ""},
		{"whitespace only", "   \t  "},
		{"too short", "err"},
		{"vague exact", "error"},
		{"vague exact cased", "It's Broken"},
		{"vague exact padded", "  help me  "},
		{"short and generic", "stuff broke"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := v.Validate(tt.text)
			if res.Valid {
				t.Errorf("Validate(%q) accepted, want rejection", tt.text)
			}
			if res.Rejection == "" {
				t.Errorf("Validate(%q) rejected without a reason", tt.text)
			}
		})
	}
}

func TestValidate_Acceptances(t *testing.T) {
	v := New()

	tests := []struct {
		name string
		text string
	}{
		{"exception name", "ModuleNotFoundError: No module named 'pandas'"},
		{"known keyword short", "keyerror"},
		{"package name short", "numpy broke"},
		{"novel exception short", "QuuxFlobError"},
		{"long generic text", "my program crashes whenever I click the second button"},
		{"traceback", "Traceback (most recent call last): File \"app.py\", line 3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := v.Validate(tt.text)
			if !res.Valid {
				t.Errorf("Validate(%q) rejected: %s", tt.text, res.Rejection)
			}
			if res.Score < baseScore || res.Score > 1.0 {
				t.Errorf("Validate(%q) score = %.2f, want in [%.2f, 1.0]", tt.text, res.Score, baseScore)
			}
		})
	}
}

func TestValidate_RejectionOrder(t *testing.T) {
	v := New()

	// "error" is both in the vague list and above the length floor; the
	// exact-match rule must fire, not the generic-text rule.
	res := v.Validate("error")
	if res.Valid {
		t.Fatal("accepted a vague description")
	}
	if res.Rejection != "the description is too vague; say the exact error message you see" {
		t.Errorf("rejection = %q, want the vague-exact reason", res.Rejection)
	}
}

func TestValidate_ScoreMonotonicWithSignal(t *testing.T) {
	v := New()

	vague := v.Validate("my program crashes when I run it today")
	specific := v.Validate("ModuleNotFoundError: No module named 'pandas' at line 3")
	if !vague.Valid || !specific.Valid {
		t.Fatal("both inputs should validate")
	}
	if specific.Score <= vague.Score {
		t.Errorf("specific score %.2f not above vague score %.2f", specific.Score, vague.Score)
	}
}

func TestValidate_ScoreClamped(t *testing.T) {
	v := New()

	res := v.Validate("ModuleNotFoundError: cannot import module pandas.core, " +
		"no module named pandas, invalid syntax, attribute is not defined, " +
		"Traceback at line 42")
	if !res.Valid {
		t.Fatalf("rejected: %s", res.Rejection)
	}
	if res.Score != 1.0 {
		t.Errorf("score = %.2f, want clamp at 1.0", res.Score)
	}
}

func TestValidate_LengthBonus(t *testing.T) {
	v := New()

	short := v.Validate("keyerror")                                 // 8 chars, no bonus
	medium := v.Validate("keyerror in my dict")                     // 19 chars, medium bonus
	long := v.Validate("keyerror raised while reading config data") // > 30 chars, long bonus

	if medium.Score <= short.Score {
		t.Errorf("medium %.2f not above short %.2f", medium.Score, short.Score)
	}
	if long.Score <= medium.Score {
		t.Errorf("long %.2f not above medium %.2f", long.Score, medium.Score)
	}
}

func TestDefaultDetectors(t *testing.T) {
	tests := []struct {
		detector string
		text     string
	}{
		{"exception-name", "NameError happened"},
		{"not-found", "the file was not found"},
		{"cannot-verb", "cannot connect to the database"},
		{"import-module", "failed to import the package"},
		{"syntax-error", "invalid syntax near the colon"},
		{"attribute-undefined", "object has no attribute shape"},
		{"technical-notation", "pandas.DataFrame blew up"},
		{"traceback-line", "error at line 17"},
	}

	detectors := DefaultDetectors()
	byName := make(map[string]Detector, len(detectors))
	for _, d := range detectors {
		byName[d.Name()] = d
	}

	for _, tt := range tests {
		t.Run(tt.detector, func(t *testing.T) {
			d, ok := byName[tt.detector]
			if !ok {
				t.Fatalf("no detector named %s", tt.detector)
			}
			if !d.Matches(tt.text) {
				t.Errorf("%s did not match %q", tt.detector, tt.text)
			}
			if d.Weight() <= 0 {
				t.Errorf("%s has non-positive weight", tt.detector)
			}
		})
	}
}

func TestValidate_OrderIndependentScore(t *testing.T) {
	v := New()

	a := v.Validate("cannot import pandas, NameError at line 3")
	b := v.Validate("NameError at line 3, cannot import pandas")
	if a.Score != b.Score {
		t.Errorf("scores differ by phrase order: %.2f vs %.2f", a.Score, b.Score)
	}
}

func TestValidate_MultiByteLengthCountsRunes(t *testing.T) {
	v := New()

	// Four runes but eight bytes; still below the minimum length.
	res := v.Validate("éééé")
	if res.Valid {
		t.Fatal("expected rejection for four-rune description")
	}
	if res.Rejection != "the error description is too short to diagnose" {
		t.Errorf("unexpected rejection: %q", res.Rejection)
	}
}

func TestValidate_LengthBonusCountsRunes(t *testing.T) {
	// 29 runes but 33 bytes; only the medium bonus applies.
	text := "ValueError módulo café señaló"
	v := NewWithDetectors(nil)

	res := v.Validate(text)
	if !res.Valid {
		t.Fatalf("unexpected rejection: %q", res.Rejection)
	}
	want := 0.3 + 0.05
	if res.Score != want {
		t.Errorf("score = %.2f, want %.2f", res.Score, want)
	}
}
