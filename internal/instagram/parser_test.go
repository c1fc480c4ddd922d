package instagram

import "testing"

func TestParseCount(t *testing.T) {
	tests := []struct {
		input    string
		expected int
	}{
		{"1.2K", 1200},
		{"1.5M", 1500000},
		{"123", 123},
		{"12,345", 12345},
		{"2.5M Followers", 2500000},
		{"100K", 100000},
		{"1B", 1000000000},
		{"0", 0},
		{"", 0},
		{"no number", 0},
		{"42k", 42000},
		{"3.14k", 3140},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := parseCount(tt.input)
			if result != tt.expected {
				t.Errorf("parseCount(%q) = %d, want %d", tt.input, result, tt.expected)
			}
		})
	}
}

func TestParseOGDescription(t *testing.T) {
	var stats ProfileStats
	parseOGDescription("2.5M Followers, 312 Following, 1,204 Posts - See Instagram photos and videos", &stats)

	if stats.Followers == nil || *stats.Followers != 2500000 {
		t.Errorf("Followers = %v, want 2500000", stats.Followers)
	}
	if stats.Following == nil || *stats.Following != 312 {
		t.Errorf("Following = %v, want 312", stats.Following)
	}
	if stats.Posts == nil || *stats.Posts != 1204 {
		t.Errorf("Posts = %v, want 1204", stats.Posts)
	}
}

func TestParseOGDescriptionPartial(t *testing.T) {
	var stats ProfileStats
	parseOGDescription("no counters here", &stats)

	if stats.Followers != nil || stats.Following != nil || stats.Posts != nil {
		t.Errorf("expected no counters, got %+v", stats)
	}
}
