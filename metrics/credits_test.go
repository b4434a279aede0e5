package metrics

import "testing"

func TestLeadArtist(t *testing.T) {
	tests := map[string]string{
		"Drake Featuring Future":      "Drake",
		"Bad Bunny ft. Jhay Cortez":   "Bad Bunny",
		"Bad Bunny feat. Jhay Cortez": "Bad Bunny",
		"Post Malone ft Swae Lee":     "Post Malone",
		"A feat B Featuring C":        "A",
		"Simon & Garfunkel":           "Simon & Garfunkel",
		"  Tame Impala ":              "Tame Impala",
		"Kendrick Lamar":              "Kendrick Lamar",
	}
	for in, want := range tests {
		if got := LeadArtist(in); got != want {
			t.Errorf("LeadArtist(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestFlattenCredit(t *testing.T) {
	tests := map[string]string{
		"Drake Featuring Future":     "Drake Future",
		"Post Malone feat. Swae Lee": "Post Malone Swae Lee",
		"Taylor Swift":               "Taylor Swift",
	}
	for in, want := range tests {
		if got := FlattenCredit(in); got != want {
			t.Errorf("FlattenCredit(%q) = %q, want %q", in, got, want)
		}
	}
}
