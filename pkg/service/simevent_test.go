package service

import "testing"

func TestParseSimEventButton(t *testing.T) {
	ev, err := parseSimEvent("button:2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ev.kind != "button" || ev.widget != 2 {
		t.Fatalf("got %+v", ev)
	}
}

func TestParseSimEventSlider(t *testing.T) {
	ev, err := parseSimEvent("slider:5:-12")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ev.kind != "slider" || ev.widget != 5 || ev.value != -12 {
		t.Fatalf("got %+v", ev)
	}
}

func TestParseSimEventTouch(t *testing.T) {
	ev, err := parseSimEvent("touch:100:200")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ev.kind != "touch" || ev.x != 100 || ev.y != 200 {
		t.Fatalf("got %+v", ev)
	}
}

func TestParseSimEventUnknownKind(t *testing.T) {
	if _, err := parseSimEvent("wiggle:1"); err == nil {
		t.Fatal("expected error for unknown event kind")
	}
}

func TestParseSimEventMalformed(t *testing.T) {
	cases := []string{"button", "button:1:2", "slider:1", "touch:1"}
	for _, c := range cases {
		if _, err := parseSimEvent(c); err == nil {
			t.Errorf("parseSimEvent(%q): expected error, got none", c)
		}
	}
}

func TestDefaultRegistryWiring(t *testing.T) {
	widgets, pages := defaultRegistry()
	if len(pages) != 2 {
		t.Fatalf("expected 2 pages, got %d", len(pages))
	}
	button := widgets[2]
	if button.ChildLabel < 0 || button.ChildLabel >= len(widgets) {
		t.Fatalf("button child label index %d out of range", button.ChildLabel)
	}
	if widgets[button.ChildLabel].Text != "OK" {
		t.Fatalf("expected button child label text OK, got %q", widgets[button.ChildLabel].Text)
	}
}
