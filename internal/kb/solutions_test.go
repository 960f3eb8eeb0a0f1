package kb

import (
	"reflect"
	"testing"

	"github.com/abhisek/errdoctor/internal/profile"
)

func linuxPip() profile.Profile {
	return profile.Profile{OS: profile.OSLinux, PackageManager: profile.PMPip, Editor: profile.EditorVSCode}
}

func TestExtractSolutions_Nested(t *testing.T) {
	data := map[string]any{
		"linux": map[string]any{
			"pip":   []any{"pip one", "pip two"},
			"conda": []any{"conda one"},
		},
		"windows": map[string]any{
			"pip": []any{"windows pip"},
		},
	}

	tests := []struct {
		name string
		p    profile.Profile
		want []string
	}{
		{
			name: "exact os and pm",
			p:    linuxPip(),
			want: []string{"pip one", "pip two"},
		},
		{
			name: "other os exact pm",
			p:    profile.Profile{OS: profile.OSWindows, PackageManager: profile.PMPip},
			want: []string{"windows pip"},
		},
		{
			name: "unknown pm falls back to first entry under os",
			p:    profile.Profile{OS: profile.OSWindows, PackageManager: profile.PMPoetry},
			want: []string{"windows pip"},
		},
		{
			name: "unknown os falls back to linux",
			p:    profile.Profile{OS: profile.OSMacOS, PackageManager: profile.PMConda},
			want: []string{"conda one"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractSolutions(data, tt.p)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestExtractSolutions_NestedMixedShape(t *testing.T) {
	// One OS maps straight to a list while another nests by package
	// manager. Hand-authored data does this.
	data := map[string]any{
		"linux":   map[string]any{"pip": []any{"nested"}},
		"windows": []any{"direct"},
	}

	got := ExtractSolutions(data, profile.Profile{OS: profile.OSWindows, PackageManager: profile.PMPip})
	if !reflect.DeepEqual(got, []string{"direct"}) {
		t.Errorf("got %v, want [direct]", got)
	}
}

func TestExtractSolutions_Flat(t *testing.T) {
	data := map[string]any{
		"linux":   []any{"linux step"},
		"windows": []any{"windows step"},
	}

	tests := []struct {
		name string
		p    profile.Profile
		want []string
	}{
		{"exact os", profile.Profile{OS: profile.OSWindows}, []string{"windows step"}},
		{"missing os falls back to linux", profile.Profile{OS: profile.OSMacOS}, []string{"linux step"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractSolutions(data, tt.p)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestExtractSolutions_FlatNoFallbackOS(t *testing.T) {
	data := map[string]any{"windows": []any{"only entry"}}

	got := ExtractSolutions(data, profile.Profile{OS: profile.OSMacOS})
	if !reflect.DeepEqual(got, []string{"only entry"}) {
		t.Errorf("got %v, want [only entry]", got)
	}
}

func TestExtractSolutions_PlainList(t *testing.T) {
	got := ExtractSolutions([]any{"one", "two"}, linuxPip())
	if !reflect.DeepEqual(got, []string{"one", "two"}) {
		t.Errorf("got %v, want [one two]", got)
	}

	got = ExtractSolutions([]string{"typed"}, linuxPip())
	if !reflect.DeepEqual(got, []string{"typed"}) {
		t.Errorf("got %v, want [typed]", got)
	}
}

func TestExtractSolutions_MalformedNeverPanics(t *testing.T) {
	tests := []struct {
		name string
		data any
	}{
		{"nil", nil},
		{"scalar", 42},
		{"string", "not a list"},
		{"empty map", map[string]any{}},
		{"empty list", []any{}},
		{"map of scalars", map[string]any{"linux": 7}},
		{"list of non-strings", []any{1, true, nil}},
		{"nested empty", map[string]any{"linux": map[string]any{}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractSolutions(tt.data, linuxPip()); len(got) != 0 {
				t.Errorf("got %v, want empty", got)
			}
		})
	}
}

func TestExtractSolutions_FiltersNonStringElements(t *testing.T) {
	got := ExtractSolutions([]any{"keep", 3, "also keep"}, linuxPip())
	if !reflect.DeepEqual(got, []string{"keep", "also keep"}) {
		t.Errorf("got %v, want [keep, also keep]", got)
	}
}

func TestExtractSolutionsWithConfig_CustomFallbackOS(t *testing.T) {
	data := map[string]any{
		"linux":   []any{"linux step"},
		"windows": []any{"windows step"},
	}
	cfg := ExtractorConfig{FallbackOS: "windows"}

	got := ExtractSolutionsWithConfig(data, profile.Profile{OS: profile.OSMacOS}, cfg)
	if !reflect.DeepEqual(got, []string{"windows step"}) {
		t.Errorf("got %v, want [windows step]", got)
	}
}

func TestExtractSolutions_DeterministicFirstEntry(t *testing.T) {
	// Fallback to "any entry" picks by sorted key, so repeated runs agree.
	data := map[string]any{
		"zz": []any{"last alphabetically"},
		"aa": []any{"first alphabetically"},
	}
	p := profile.Profile{OS: profile.OSMacOS}

	for i := 0; i < 20; i++ {
		got := ExtractSolutions(data, p)
		if !reflect.DeepEqual(got, []string{"first alphabetically"}) {
			t.Fatalf("run %d: got %v, want [first alphabetically]", i, got)
		}
	}
}
