// Package binder translates validated UI command payloads into operations
// on a widget/page registry, and installs itself into a dispatcher.Table
// so the default NACK-everything handlers get replaced. There is no real
// LVGL tree here - graphics are out of scope - so the registry is a
// toolkit-free stand-in for one.
package binder

import (
	"github.com/librescoot/display-manager/pkg/dispatcher"
	"github.com/librescoot/display-manager/pkg/dmframe"
	"github.com/librescoot/display-manager/pkg/dmplatform"
)

// Sink mirrors widget/page state changes somewhere observable outside the
// process (Redis, in pkg/service). Both methods are best-effort: a Binder
// with a nil Sink simply doesn't mirror anything.
type Sink interface {
	MirrorWidget(idx int, w Widget)
	MirrorPage(pageID uint8, name string)
}

// Binder owns the widget/page registry and the encoder used to emit
// spontaneous events. It is safe to use only from the single goroutine
// that also drives Parser.Feed.
type Binder struct {
	widgets     []Widget
	pages       []Page
	currentPage uint8
	sink        Sink
	encoder     *dmframe.Encoder
}

const noPage = 0xFF

// New returns a Binder over the given widget/page tables. sink may be nil.
func New(widgets []Widget, pages []Page, encoder *dmframe.Encoder, sink Sink) *Binder {
	return &Binder{
		widgets:     widgets,
		pages:       pages,
		currentPage: noPage,
		sink:        sink,
		encoder:     encoder,
	}
}

// Capabilities reports the capability set for a widget index, or false if
// the index is out of range.
func (b *Binder) Capabilities(idx int) (Capabilities, bool) {
	if idx < 0 || idx >= len(b.widgets) {
		return Capabilities{}, false
	}
	return capabilitiesFor(b.widgets[idx].Kind), true
}

// ShowPage switches the current page, mirroring ui_pages_show. Returns
// false (infallible no page change) if pageID is out of range.
func (b *Binder) ShowPage(pageID uint8) bool {
	if int(pageID) >= len(b.pages) {
		return false
	}
	b.currentPage = pageID
	if b.sink != nil {
		b.sink.MirrorPage(pageID, b.pages[pageID].Name)
	}
	return true
}

// SetText applies to label widgets directly, and to a button's child
// label. Returns false for any other widget kind or an out-of-range
// index.
func (b *Binder) SetText(widgetIdx uint8, text string) bool {
	idx := int(widgetIdx)
	if idx < 0 || idx >= len(b.widgets) {
		return false
	}
	w := &b.widgets[idx]
	switch w.Kind {
	case WidgetLabel:
		w.Text = text
		b.mirror(idx)
		return true
	case WidgetButton:
		if w.ChildLabel < 0 || w.ChildLabel >= len(b.widgets) {
			return false
		}
		child := &b.widgets[w.ChildLabel]
		child.Text = text
		b.mirror(w.ChildLabel)
		return true
	default:
		return false
	}
}

// SetValue applies to slider widgets only.
func (b *Binder) SetValue(widgetIdx uint8, value int16) bool {
	idx := int(widgetIdx)
	if idx < 0 || idx >= len(b.widgets) {
		return false
	}
	w := &b.widgets[idx]
	if w.Kind != WidgetSlider {
		return false
	}
	w.Value = value
	b.mirror(idx)
	return true
}

// SetVisible is infallible on an unknown index, matching ui_pages_set_visible.
func (b *Binder) SetVisible(widgetIdx uint8, visible bool) {
	idx := int(widgetIdx)
	if idx < 0 || idx >= len(b.widgets) {
		return
	}
	b.widgets[idx].Visible = visible
	b.mirror(idx)
}

// SetEnabled is infallible on an unknown index, matching ui_pages_set_enabled.
func (b *Binder) SetEnabled(widgetIdx uint8, enabled bool) {
	idx := int(widgetIdx)
	if idx < 0 || idx >= len(b.widgets) {
		return
	}
	b.widgets[idx].Enabled = enabled
	b.mirror(idx)
}

func (b *Binder) mirror(idx int) {
	if b.sink != nil {
		b.sink.MirrorWidget(idx, b.widgets[idx])
	}
}

// EmitButtonPressed lets a UI event source (real or simulated) push a
// spontaneous EVT_BUTTON_PRESSED.
func (b *Binder) EmitButtonPressed(plat dmplatform.Platform, widgetIdx uint8) {
	b.encoder.SendButtonPressed(plat, widgetIdx)
}

// EmitSliderChanged lets a UI event source push a spontaneous
// EVT_SLIDER_CHANGED.
func (b *Binder) EmitSliderChanged(plat dmplatform.Platform, widgetIdx uint8, value int16) {
	b.encoder.SendSliderChanged(plat, widgetIdx, value)
}

// EmitTouchEvent lets a UI event source push a spontaneous EVT_TOUCH_EVENT.
func (b *Binder) EmitTouchEvent(plat dmplatform.Platform, x, y int16) {
	b.encoder.SendTouchEvent(plat, x, y)
}

// Install overwrites the UI command slots in table with handlers that
// parse the payload and call into b. Slots for PING, GET_VERSION, RESET,
// and ENTER_BOOTLOADER are left alone - those are protocol-level, not UI,
// and the dispatcher's own defaults already cover them.
func (b *Binder) Install(table *dispatcher.Table) {
	table.ShowPage = b.handleShowPage
	table.SetText = b.handleSetText
	table.SetValue = b.handleSetValue
	table.SetVisible = b.handleSetVisible
	table.SetEnabled = b.handleSetEnabled
}

func (b *Binder) handleShowPage(seq uint8, payload []byte, plat dmplatform.Platform, enc *dmframe.Encoder) {
	if len(payload) < 1 {
		enc.SendNack(plat, seq)
		return
	}
	pageID := payload[0]
	if !b.ShowPage(pageID) {
		enc.SendNack(plat, seq)
		return
	}
	enc.SendAck(plat, seq, nil)
	enc.SendPageChanged(plat, pageID)
}

func (b *Binder) handleSetText(seq uint8, payload []byte, plat dmplatform.Platform, enc *dmframe.Encoder) {
	if len(payload) < 2 {
		enc.SendNack(plat, seq)
		return
	}
	widgetIdx := payload[0]
	text := payload[1:]
	if len(text) > dmframe.MaxTextLen-1 {
		text = text[:dmframe.MaxTextLen-1]
	}
	if b.SetText(widgetIdx, string(text)) {
		enc.SendAck(plat, seq, nil)
	} else {
		enc.SendNack(plat, seq)
	}
}

func (b *Binder) handleSetValue(seq uint8, payload []byte, plat dmplatform.Platform, enc *dmframe.Encoder) {
	if len(payload) < 3 {
		enc.SendNack(plat, seq)
		return
	}
	widgetIdx := payload[0]
	value := int16(uint16(payload[1])<<8 | uint16(payload[2]))
	if b.SetValue(widgetIdx, value) {
		enc.SendAck(plat, seq, nil)
	} else {
		enc.SendNack(plat, seq)
	}
}

func (b *Binder) handleSetVisible(seq uint8, payload []byte, plat dmplatform.Platform, enc *dmframe.Encoder) {
	if len(payload) < 2 {
		enc.SendNack(plat, seq)
		return
	}
	b.SetVisible(payload[0], payload[1] != 0)
	enc.SendAck(plat, seq, nil)
}

func (b *Binder) handleSetEnabled(seq uint8, payload []byte, plat dmplatform.Platform, enc *dmframe.Encoder) {
	if len(payload) < 2 {
		enc.SendNack(plat, seq)
		return
	}
	b.SetEnabled(payload[0], payload[1] != 0)
	enc.SendAck(plat, seq, nil)
}
