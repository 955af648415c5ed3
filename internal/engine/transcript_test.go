package engine

import "testing"

func TestPickBestTrack(t *testing.T) {
	langs := []string{"en", "en-US", "en-GB"}

	tests := []struct {
		name   string
		tracks []captionTrack
		want   string // BaseURL of expected pick
		ok     bool
	}{
		{
			name: "manual beats auto",
			tracks: []captionTrack{
				{BaseURL: "auto", LanguageCode: "en", Kind: "asr"},
				{BaseURL: "manual", LanguageCode: "en"},
			},
			want: "manual",
			ok:   true,
		},
		{
			name: "auto when no manual",
			tracks: []captionTrack{
				{BaseURL: "auto", LanguageCode: "en", Kind: "asr"},
			},
			want: "auto",
			ok:   true,
		},
		{
			name: "language preference order",
			tracks: []captionTrack{
				{BaseURL: "gb", LanguageCode: "en-GB"},
				{BaseURL: "us", LanguageCode: "en-US"},
			},
			want: "us",
			ok:   true,
		},
		{
			name: "english prefix fallback",
			tracks: []captionTrack{
				{BaseURL: "de", LanguageCode: "de"},
				{BaseURL: "enin", LanguageCode: "en-IN"},
			},
			want: "enin",
			ok:   true,
		},
		{
			name: "any track as last resort",
			tracks: []captionTrack{
				{BaseURL: "ja", LanguageCode: "ja"},
			},
			want: "ja",
			ok:   true,
		},
		{
			name: "skips potoken tracks",
			tracks: []captionTrack{
				{BaseURL: "https://x/?a=1&exp=xpe", LanguageCode: "en"},
				{BaseURL: "plain", LanguageCode: "en", Kind: "asr"},
			},
			want: "plain",
			ok:   true,
		},
		{
			name: "all potoken",
			tracks: []captionTrack{
				{BaseURL: "https://x/?a=1&exp=xpe", LanguageCode: "en"},
			},
			ok: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := pickBestTrack(tt.tracks, langs)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if ok && got.BaseURL != tt.want {
				t.Errorf("picked %q, want %q", got.BaseURL, tt.want)
			}
		})
	}
}

func TestParseTimedText(t *testing.T) {
	body := []byte(`<?xml version="1.0" encoding="utf-8"?>
<transcript>
  <text start="0.0" dur="2.1">Hello &amp;amp; welcome</text>
  <text start="2.1" dur="1.5">to the &lt;b&gt;show&lt;/b&gt;</text>
  <text start="3.6" dur="1.0"></text>
  <text start="4.6" dur="2.0">today</text>
</transcript>`)

	got, err := parseTimedText(body)
	if err != nil {
		t.Fatal(err)
	}
	want := "Hello & welcome to the show today"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestParseTimedTextInvalid(t *testing.T) {
	if _, err := parseTimedText([]byte("not xml at all <")); err == nil {
		t.Error("expected parse error")
	}
}
