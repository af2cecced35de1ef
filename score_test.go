package thumbnail

import "testing"

func TestScore(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		query string
		cand  ImageCandidate
		want  int
	}{
		{
			name:  "empty candidate",
			query: "tesla",
			cand:  ImageCandidate{},
			want:  0,
		},
		{
			name:  "trusted host only",
			query: "zz",
			cand:  ImageCandidate{URL: "https://upload.wikimedia.org/a.svg"},
			want:  30,
		},
		{
			name:  "blocked host floors at zero",
			query: "zz",
			cand:  ImageCandidate{URL: "https://www.pinterest.com/a.svg"},
			want:  0,
		},
		{
			// brand: +25 text, +15 url; term: +10 title, +5 url; jpg +5
			name:  "brand term in title and url",
			query: "Tesla",
			cand:  ImageCandidate{URL: "https://cdn.example.com/tesla.jpg", Title: "Tesla Model S"},
			want:  60,
		},
		{
			// logo brand term: +25 text; logo term: +10 title; indicator +15; png +10
			name:  "logo query prefers png",
			query: "logo",
			cand:  ImageCandidate{URL: "https://cdn.example.com/a.png", Title: "Company logo"},
			want:  60,
		},
		{
			name:  "logo query does not reward jpg",
			query: "zz logo",
			cand:  ImageCandidate{URL: "https://cdn.example.com/a.jpg"},
			want:  0,
		},
		{
			// +8 snippet for each term longer than two characters; "of" is skipped
			name:  "snippet matches",
			query: "bank of england",
			cand:  ImageCandidate{URL: "https://cdn.example.com/a.gif", Snippet: "Bank of England building"},
			want:  16,
		},
		{
			name:  "indicator counted once",
			query: "zz",
			cand:  ImageCandidate{URL: "https://cdn.example.com/a.gif", Title: "official brand emblem symbol"},
			want:  15,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := Score(tc.query, tc.cand); got != tc.want {
				t.Errorf("Score(%q, %+v) = %d, want %d", tc.query, tc.cand, got, tc.want)
			}
		})
	}
}

func TestScoreBlockedBelowTrusted(t *testing.T) {
	t.Parallel()

	base := ImageCandidate{Title: "Jaguar logo", Snippet: "official jaguar emblem"}
	trusted := base
	trusted.URL = "https://upload.wikimedia.org/jaguar.png"
	blocked := base
	blocked.URL = "https://www.facebook.com/jaguar.png"

	query := "jaguar logo"
	ts, bs := Score(query, trusted), Score(query, blocked)
	if bs >= ts {
		t.Errorf("blocked score %d should be below trusted score %d", bs, ts)
	}
	if ts-bs != 50 {
		t.Errorf("trusted - blocked = %d, want 50", ts-bs)
	}
}

func TestScoreNeverNegative(t *testing.T) {
	t.Parallel()

	for _, u := range BlockedHosts {
		if got := Score("q", ImageCandidate{URL: "https://" + u + "/x"}); got < 0 {
			t.Errorf("Score on %s = %d, want >= 0", u, got)
		}
	}
}
