package binder

import (
	"testing"

	"github.com/librescoot/display-manager/pkg/dispatcher"
	"github.com/librescoot/display-manager/pkg/dmframe"
)

type fakePlatform struct {
	frames [][]byte
}

func (f *fakePlatform) WriteBytes(data []byte) {
	cp := make([]byte, len(data))
	copy(cp, data)
	f.frames = append(f.frames, cp)
}
func (f *fakePlatform) Millis() uint32 { return 0 }
func (f *fakePlatform) Log(string)     {}

func demoRegistry() ([]Widget, []Page) {
	widgets := []Widget{
		{Kind: WidgetLabel, Name: "title"},
		{Kind: WidgetLabel, Name: "status"},
		{Kind: WidgetButton, Name: "ok", ChildLabel: 3},
		{Kind: WidgetLabel, Name: "ok-label"},
		{Kind: WidgetSlider, Name: "volume"},
	}
	pages := []Page{
		{Name: "home", WidgetIndices: []int{0, 1, 2}},
		{Name: "slider-demo", WidgetIndices: []int{4}},
	}
	return widgets, pages
}

func TestShowPageEmitsAckBeforePageChanged(t *testing.T) {
	widgets, pages := demoRegistry()
	plat := &fakePlatform{}
	enc := dmframe.NewEncoder()
	b := New(widgets, pages, enc, nil)
	table := dispatcher.NewTable()
	b.Install(table)
	d := &dispatcher.Dispatcher{Table: table, Plat: plat, Encoder: enc}

	frame := &dmframe.Frame{Command: dmframe.CmdShowPage, SeqID: 0x42, PayloadLen: 1}
	frame.Payload[0] = 0

	d.Dispatch(frame)

	if len(plat.frames) != 2 {
		t.Fatalf("expected 2 transmitted frames (ack, page_changed), got %d", len(plat.frames))
	}
	if dmframe.Event(plat.frames[0][2]) != dmframe.EvtAck {
		t.Errorf("first frame command = 0x%02X, want EvtAck", plat.frames[0][2])
	}
	if dmframe.Event(plat.frames[1][2]) != dmframe.EvtPageChanged {
		t.Errorf("second frame command = 0x%02X, want EvtPageChanged", plat.frames[1][2])
	}
	if plat.frames[0][3] != 0x42 {
		t.Errorf("ack seq = 0x%02X, want 0x42", plat.frames[0][3])
	}
}

func TestSetTextTooShortNacks(t *testing.T) {
	widgets, pages := demoRegistry()
	plat := &fakePlatform{}
	enc := dmframe.NewEncoder()
	b := New(widgets, pages, enc, nil)
	table := dispatcher.NewTable()
	b.Install(table)
	d := &dispatcher.Dispatcher{Table: table, Plat: plat, Encoder: enc}

	frame := &dmframe.Frame{Command: dmframe.CmdSetText, SeqID: 0x05, PayloadLen: 1}
	frame.Payload[0] = 0x01

	d.Dispatch(frame)

	if len(plat.frames) != 1 {
		t.Fatalf("expected 1 frame, got %d", len(plat.frames))
	}
	if dmframe.Event(plat.frames[0][2]) != dmframe.EvtNack {
		t.Errorf("command = 0x%02X, want EvtNack", plat.frames[0][2])
	}
	if plat.frames[0][3] != 0x05 {
		t.Errorf("echoed seq = 0x%02X, want 0x05", plat.frames[0][3])
	}
}

func TestSetTextOnButtonAppliesToChildLabel(t *testing.T) {
	widgets, pages := demoRegistry()
	enc := dmframe.NewEncoder()
	b := New(widgets, pages, enc, nil)

	if !b.SetText(2, "Go!") {
		t.Fatal("SetText on button returned false")
	}
	if b.widgets[3].Text != "Go!" {
		t.Errorf("child label text = %q, want %q", b.widgets[3].Text, "Go!")
	}
}

func TestSetTextTruncatesToMaxTextLen(t *testing.T) {
	widgets, pages := demoRegistry()
	enc := dmframe.NewEncoder()
	b := New(widgets, pages, enc, nil)
	table := dispatcher.NewTable()
	b.Install(table)
	plat := &fakePlatform{}
	d := &dispatcher.Dispatcher{Table: table, Plat: plat, Encoder: enc}

	// Largest text a frame can carry: widget index + text fills MaxPayload.
	long := make([]byte, dmframe.MaxPayload-1)
	for i := range long {
		long[i] = 'x'
	}
	payload := append([]byte{0x00}, long...)
	frame := &dmframe.Frame{Command: dmframe.CmdSetText, SeqID: 0x01, PayloadLen: uint8(len(payload))}
	copy(frame.Payload[:], payload)

	d.Dispatch(frame)

	if len(b.widgets[0].Text) != dmframe.MaxTextLen-1 {
		t.Errorf("stored text length = %d, want %d", len(b.widgets[0].Text), dmframe.MaxTextLen-1)
	}
}

func TestSetValueWrongWidgetKindNacks(t *testing.T) {
	widgets, pages := demoRegistry()
	enc := dmframe.NewEncoder()
	b := New(widgets, pages, enc, nil)
	table := dispatcher.NewTable()
	b.Install(table)
	plat := &fakePlatform{}
	d := &dispatcher.Dispatcher{Table: table, Plat: plat, Encoder: enc}

	frame := &dmframe.Frame{Command: dmframe.CmdSetValue, SeqID: 0x01, PayloadLen: 3}
	frame.Payload[0] = 0 // widget 0 is a label, not a slider
	frame.Payload[1] = 0
	frame.Payload[2] = 5

	d.Dispatch(frame)

	if dmframe.Event(plat.frames[0][2]) != dmframe.EvtNack {
		t.Errorf("command = 0x%02X, want EvtNack", plat.frames[0][2])
	}
}

func TestCapabilitiesReflectWidgetKind(t *testing.T) {
	widgets, pages := demoRegistry()
	enc := dmframe.NewEncoder()
	b := New(widgets, pages, enc, nil)

	caps, ok := b.Capabilities(4)
	if !ok {
		t.Fatal("Capabilities returned false for a valid index")
	}
	if !caps.IsSlider || caps.IsLabel || caps.IsButton {
		t.Errorf("capabilities = %+v, want IsSlider only", caps)
	}
	if !caps.CanSetVisible || !caps.CanSetEnabled {
		t.Errorf("every widget should support visible/enabled, got %+v", caps)
	}
}

func TestSetVisibleUnknownIndexIsNoOp(t *testing.T) {
	widgets, pages := demoRegistry()
	enc := dmframe.NewEncoder()
	b := New(widgets, pages, enc, nil)

	// Must not panic.
	b.SetVisible(255, true)
	b.SetEnabled(255, false)
}
