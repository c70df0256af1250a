package model

import "testing"

func TestDirectionValidation(t *testing.T) {
	tests := map[string]struct {
		direction Direction
		valid     bool
	}{
		"pull valid":    {direction: Pull, valid: true},
		"push valid":    {direction: Push, valid: true},
		"empty invalid": {direction: "", valid: false},
		"unknown":       {direction: "sideways", valid: false},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if got := tt.direction.IsValid(); got != tt.valid {
				t.Errorf("Direction(%q).IsValid() = %v, want %v", tt.direction, got, tt.valid)
			}
		})
	}
}

func TestParseDirection(t *testing.T) {
	tests := map[string]struct {
		input   string
		want    Direction
		wantErr bool
	}{
		"pull exact":         {input: "pull", want: Pull},
		"push exact":         {input: "push", want: Push},
		"empty returns pull": {input: "", want: Pull},
		"uppercase":          {input: "PUSH", want: Push},
		"whitespace":         {input: "  pull ", want: Pull},
		"yoink alias":        {input: "yoink", want: Pull},
		"apply alias":        {input: "apply", want: Push},
		"invalid":            {input: "merge", wantErr: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := ParseDirection(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseDirection(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseDirection(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestDirectionPastTense(t *testing.T) {
	if got := Pull.PastTense(); got != "pulled" {
		t.Errorf("Pull.PastTense() = %q", got)
	}
	if got := Push.PastTense(); got != "pushed" {
		t.Errorf("Push.PastTense() = %q", got)
	}
	if got := Direction("x").PastTense(); got != "synced" {
		t.Errorf("unknown PastTense() = %q", got)
	}
}
