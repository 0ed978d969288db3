package aistream

import (
	"testing"
)

func strPtr(s string) *string { return &s }

func TestFeedSplitsCompleteLines(t *testing.T) {
	p := NewLineParser(nil)

	events := p.Feed([]byte(`data: {"justification":"first"}` + "\n" + `data: {"justification":"second"}` + "\n"))

	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}
	if got := *events[0].Justification; got != "first" {
		t.Errorf("events[0].Justification = %q, want %q", got, "first")
	}
	if got := *events[1].Justification; got != "second" {
		t.Errorf("events[1].Justification = %q, want %q", got, "second")
	}
}

func TestFeedCarriesFragmentAcrossChunks(t *testing.T) {
	tests := []struct {
		name   string
		chunks []string
		want   int
	}{
		{
			name:   "boundary mid json",
			chunks: []string{`data: {"justifi`, `cation":"split"}` + "\n"},
			want:   1,
		},
		{
			name:   "boundary mid marker",
			chunks: []string{`da`, `ta: {"justification":"split"}` + "\n"},
			want:   1,
		},
		{
			name:   "event spread over three chunks",
			chunks: []string{`data: {"just`, `ification":`, `"split"}` + "\n"},
			want:   1,
		},
		{
			name:   "two events one boundary",
			chunks: []string{`data: {"justification":"a"}` + "\n" + `data: {"justif`, `ication":"b"}` + "\n"},
			want:   2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewLineParser(nil)
			var total int
			for _, chunk := range tt.chunks {
				total += len(p.Feed([]byte(chunk)))
			}
			if total != tt.want {
				t.Errorf("got %d events, want %d", total, tt.want)
			}
		})
	}
}

func TestFeedNoEventBeforeNewline(t *testing.T) {
	p := NewLineParser(nil)

	if events := p.Feed([]byte(`data: {"justification":"pending"}`)); len(events) != 0 {
		t.Fatalf("got %d events before newline, want 0", len(events))
	}
	if events := p.Feed([]byte("\n")); len(events) != 1 {
		t.Fatalf("got %d events after newline, want 1", len(events))
	}
}

func TestFlushParsesTrailingFragment(t *testing.T) {
	p := NewLineParser(nil)

	p.Feed([]byte(`data: {"justification":"no trailing newline"}`))

	ev := p.Flush()
	if ev == nil {
		t.Fatal("Flush() = nil, want event")
	}
	if got := *ev.Justification; got != "no trailing newline" {
		t.Errorf("Justification = %q, want %q", got, "no trailing newline")
	}

	// Flush consumes the buffer.
	if again := p.Flush(); again != nil {
		t.Errorf("second Flush() = %+v, want nil", again)
	}
}

func TestFlushEmptyBuffer(t *testing.T) {
	p := NewLineParser(nil)
	if ev := p.Flush(); ev != nil {
		t.Errorf("Flush() on empty buffer = %+v, want nil", ev)
	}
}

func TestParseLineVariants(t *testing.T) {
	tests := []struct {
		name      string
		line      string
		wantNil   bool
		wantJust  *string
		wantPlace bool
	}{
		{
			name:     "with data marker",
			line:     `data: {"justification":"x"}`,
			wantJust: strPtr("x"),
		},
		{
			name:     "marker without space",
			line:     `data:{"justification":"x"}`,
			wantJust: strPtr("x"),
		},
		{
			name:     "bare json accepted",
			line:     `{"justification":"x"}`,
			wantJust: strPtr("x"),
		},
		{
			name:    "blank line skipped",
			line:    "   ",
			wantNil: true,
		},
		{
			name:    "marker only skipped",
			line:    "data:",
			wantNil: true,
		},
		{
			name:    "malformed json skipped",
			line:    `data: {"justification":`,
			wantNil: true,
		},
		{
			name:    "non json noise skipped",
			line:    "event: ping",
			wantNil: true,
		},
		{
			name:      "places payload",
			line:      `data: {"places":[{"displayName":"Cafe"}]}`,
			wantPlace: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewLineParser(nil)
			ev := p.parseLine([]byte(tt.line))

			if tt.wantNil {
				if ev != nil {
					t.Fatalf("parseLine(%q) = %+v, want nil", tt.line, ev)
				}
				return
			}
			if ev == nil {
				t.Fatalf("parseLine(%q) = nil, want event", tt.line)
			}
			if tt.wantJust != nil {
				if ev.Justification == nil || *ev.Justification != *tt.wantJust {
					t.Errorf("Justification = %v, want %q", ev.Justification, *tt.wantJust)
				}
			}
			if tt.wantPlace && !ev.HasPlaces() {
				t.Error("HasPlaces() = false, want true")
			}
		})
	}
}

func TestMalformedLineDoesNotPoisonStream(t *testing.T) {
	p := NewLineParser(nil)

	events := p.Feed([]byte("garbage line\n" + `data: {"justification":"survives"}` + "\n"))

	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	if got := *events[0].Justification; got != "survives" {
		t.Errorf("Justification = %q, want %q", got, "survives")
	}
}

func TestEventFieldPresence(t *testing.T) {
	tests := []struct {
		name      string
		line      string
		hasPlaces bool
		hasPrefs  bool
		hasJust   bool
		hasUpdate bool
	}{
		{
			name:      "all fields",
			line:      `{"places":[],"user_preferences":[],"justification":"j"}`,
			hasPlaces: true, hasPrefs: true, hasJust: true, hasUpdate: true,
		},
		{
			name:      "absent fields are not updates",
			line:      `{"justification":"only"}`,
			hasJust:   true,
			hasUpdate: true,
		},
		{
			name: "null fields are not updates",
			line: `{"places":null,"user_preferences":null,"justification":null}`,
		},
		{
			name: "empty object",
			line: `{}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewLineParser(nil)
			ev := p.parseLine([]byte(tt.line))
			if ev == nil {
				t.Fatal("parseLine returned nil")
			}
			if got := ev.HasPlaces(); got != tt.hasPlaces {
				t.Errorf("HasPlaces() = %v, want %v", got, tt.hasPlaces)
			}
			if got := ev.HasUserPreferences(); got != tt.hasPrefs {
				t.Errorf("HasUserPreferences() = %v, want %v", got, tt.hasPrefs)
			}
			if got := ev.HasJustification(); got != tt.hasJust {
				t.Errorf("HasJustification() = %v, want %v", got, tt.hasJust)
			}
			if got := ev.HasUpdate(); got != tt.hasUpdate {
				t.Errorf("HasUpdate() = %v, want %v", got, tt.hasUpdate)
			}
		})
	}
}
