package binder

// WidgetKind distinguishes the three widget shapes the protocol knows
// about. Modeled as a flat enum rather than a tagged variant (Label |
// Slider | Button(child)) because Go has no sum types; Widget below
// carries the one extra field (ChildLabel) only Button needs.
type WidgetKind uint8

const (
	WidgetLabel WidgetKind = iota
	WidgetSlider
	WidgetButton
)

// Widget is one entry in the registry addressed by widget_idx. It plays
// the role ui_pages.c's widget_entry_t (an lv_obj_t* + a type tag) plays
// for a real LVGL tree; here the "object" is just these fields.
type Widget struct {
	Kind WidgetKind
	Name string

	// Label text. For a Button, SET_TEXT is redirected to ChildLabel's
	// Text instead (applies to the button's first child label).
	Text string

	// Slider value, valid only when Kind == WidgetSlider.
	Value int16

	Visible bool
	Enabled bool

	// ChildLabel is the registry index of this button's label child.
	// Only meaningful when Kind == WidgetButton; -1 if there is none.
	ChildLabel int
}

// Capabilities is the capability set the binder exposes per widget index:
// {is-label, is-slider, is-button, can-set-visible, can-set-enabled}.
// Every widget kind can have its visibility and enabled state set; only
// the shape-specific operations (SetText / SetValue) vary.
type Capabilities struct {
	IsLabel       bool
	IsSlider      bool
	IsButton      bool
	CanSetVisible bool
	CanSetEnabled bool
}

func capabilitiesFor(kind WidgetKind) Capabilities {
	return Capabilities{
		IsLabel:       kind == WidgetLabel,
		IsSlider:      kind == WidgetSlider,
		IsButton:      kind == WidgetButton,
		CanSetVisible: true,
		CanSetEnabled: true,
	}
}

// Page is a named collection of widget indices, addressed by a compact
// unsigned page id.
type Page struct {
	Name          string
	WidgetIndices []int
}
