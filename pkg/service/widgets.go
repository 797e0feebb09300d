package service

import "github.com/librescoot/display-manager/pkg/binder"

// defaultRegistry builds the same two-page demo layout ui_pages.c ships
// with (home page: title/status/OK button; slider-demo page: label +
// slider), so a board with no custom UI still has something to show and
// something for the protocol round-trip tests to exercise end to end.
func defaultRegistry() ([]binder.Widget, []binder.Page) {
	widgets := []binder.Widget{
		0: {Kind: binder.WidgetLabel, Name: "title", Text: "hmic Display Manager", Visible: true, Enabled: true, ChildLabel: -1},
		1: {Kind: binder.WidgetLabel, Name: "status", Text: "Waiting for host...", Visible: true, Enabled: true, ChildLabel: -1},
		2: {Kind: binder.WidgetButton, Name: "ok", Visible: true, Enabled: true, ChildLabel: 2 + 1},
		3: {Kind: binder.WidgetLabel, Name: "ok-label", Text: "OK", Visible: true, Enabled: true, ChildLabel: -1},
		4: {Kind: binder.WidgetLabel, Name: "slider-label", Text: "Adjust value:", Visible: true, Enabled: true, ChildLabel: -1},
		5: {Kind: binder.WidgetSlider, Name: "slider", Value: 0, Visible: true, Enabled: true, ChildLabel: -1},
	}
	pages := []binder.Page{
		{Name: "home", WidgetIndices: []int{0, 1, 2}},
		{Name: "slider-demo", WidgetIndices: []int{4, 5}},
	}
	return widgets, pages
}
