package langdetect

import "testing"

func TestDetectISO6391(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		text string
		want string
	}{
		{name: "japanese", text: "こんにちは、世界。今日はいい天気ですね。", want: "ja"},
		{name: "english", text: "This is clearly an English sentence about the weather.", want: "en"},
		{name: "empty", text: "", want: ""},
		{name: "too short", text: "OK", want: ""},
		{name: "digits only", text: "12345 67890", want: ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := DetectISO6391(tc.text); got != tc.want {
				t.Fatalf("DetectISO6391(%q) = %q, want %q", tc.text, got, tc.want)
			}
		})
	}
}

func TestLooksForeign(t *testing.T) {
	t.Parallel()

	if _, foreign := LooksForeign("日本語の文章はそのまま通してください。"); foreign {
		t.Fatal("japanese input must not be flagged as foreign")
	}

	code, foreign := LooksForeign("Please translate this English sentence for me.")
	if !foreign {
		t.Fatal("english input should be flagged as foreign")
	}
	if code != "en" {
		t.Fatalf("unexpected detected code: %q", code)
	}

	// Unclassifiable input stays neutral.
	if _, foreign := LooksForeign("!!"); foreign {
		t.Fatal("unclassifiable input must not be flagged as foreign")
	}
}
