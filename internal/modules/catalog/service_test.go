package catalog

import "testing"

func TestSlugify(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"simple", "Physiotherapy", "physiotherapy"},
		{"spaces", "Sports Massage Therapy", "sports-massage-therapy"},
		{"surrounding whitespace", "  Dry Needling  ", "dry-needling"},
		{"special characters", "Neck & Shoulder (Deep)", "neck-shoulder-deep"},
		{"underscores collapse", "manual_therapy", "manual-therapy"},
		{"mixed separators", "Post - Op  Rehab", "post-op-rehab"},
		{"leading and trailing hyphens", "--Cupping--", "cupping"},
		{"already a slug", "pediatric-physio", "pediatric-physio"},
		{"empty", "", ""},
		{"only punctuation", "!!!", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Slugify(tt.in); got != tt.want {
				t.Errorf("Slugify(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
