// Package dispatcher routes validated frames to command handlers using a
// handler-table override model: a record of function-valued slots,
// initialized to defaults, that an application binder overwrites at
// startup without the dispatcher ever knowing it happened. This stands in
// for weak-symbol linking in a language that doesn't have it.
package dispatcher

import (
	"github.com/librescoot/display-manager/pkg/dmframe"
	"github.com/librescoot/display-manager/pkg/dmplatform"
)

// Handler handles one command. seq/payload/plat mirror the C signature
// `(uint8_t seq, const uint8_t *p, uint8_t len, const dm_platform_t *plat)`
// - payload is sized to the frame's payload_len, never MaxPayload.
type Handler func(seq uint8, payload []byte, plat dmplatform.Platform, enc *dmframe.Encoder)

// Table holds one handler slot per known command, defaulting to the
// built-in policy in defaults.go. A binder overrides the slots it cares
// about (normally every UI command) and leaves the rest alone.
type Table struct {
	Ping            Handler
	GetVersion      Handler
	Reset           Handler
	EnterBootloader Handler
	ShowPage        Handler
	SetText         Handler
	SetValue        Handler
	SetVisible      Handler
	SetEnabled      Handler
}

// NewTable returns a Table with every slot set to its built-in default.
func NewTable() *Table {
	return &Table{
		Ping:            DefaultPing,
		GetVersion:      DefaultGetVersion,
		Reset:           DefaultReset,
		EnterBootloader: DefaultEnterBootloader,
		ShowPage:        DefaultNack,
		SetText:         DefaultNack,
		SetValue:        DefaultNack,
		SetVisible:      DefaultNack,
		SetEnabled:      DefaultNack,
	}
}

// Dispatcher ties a Table, a Platform, and an Encoder together and routes
// validated frames by command id. It is the dm_protocol_dispatch
// equivalent: for a known command it calls the installed handler; for an
// unknown one it emits NACK and logs, without touching the parser's error
// counters (an unknown command is never a parser error).
type Dispatcher struct {
	Table   *Table
	Plat    dmplatform.Platform
	Encoder *dmframe.Encoder
}

// New returns a Dispatcher with a fresh all-defaults Table.
func New(plat dmplatform.Platform, enc *dmframe.Encoder) *Dispatcher {
	return &Dispatcher{
		Table:   NewTable(),
		Plat:    plat,
		Encoder: enc,
	}
}

// Dispatch routes one validated frame. Intended as the dmframe.Dispatch
// callback passed to Parser.Feed, so it runs synchronously and on whatever
// goroutine called Feed - that must be the main context, never an ISR or
// a reader goroutine.
func (d *Dispatcher) Dispatch(frame *dmframe.Frame) {
	seq := frame.SeqID
	payload := frame.PayloadBytes()

	var h Handler
	switch frame.Command {
	case dmframe.CmdPing:
		h = d.Table.Ping
	case dmframe.CmdGetVersion:
		h = d.Table.GetVersion
	case dmframe.CmdReset:
		h = d.Table.Reset
	case dmframe.CmdEnterBootloader:
		h = d.Table.EnterBootloader
	case dmframe.CmdShowPage:
		h = d.Table.ShowPage
	case dmframe.CmdSetText:
		h = d.Table.SetText
	case dmframe.CmdSetValue:
		h = d.Table.SetValue
	case dmframe.CmdSetVisible:
		h = d.Table.SetVisible
	case dmframe.CmdSetEnabled:
		h = d.Table.SetEnabled
	default:
		d.Plat.Log("dispatcher: unknown command, sending NACK")
		d.Encoder.SendNack(d.Plat, seq)
		return
	}

	h(seq, payload, d.Plat, d.Encoder)
}
