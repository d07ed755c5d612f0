package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	up      key.Binding
	down    key.Binding
	enter   key.Binding
	esc     key.Binding
	tab     key.Binding
	backtab key.Binding
	quit    key.Binding

	// Recorder panel. Ctrl-chords so they never collide with text input.
	record  key.Binding
	preview key.Binding
	upload  key.Binding

	// Dashboard.
	newTask      key.Binding
	voiceTask    key.Binding
	due          key.Binding
	complete     key.Binding
	history      key.Binding
	clearHistory key.Binding
	refresh      key.Binding
	copyValue    key.Binding
	logout       key.Binding
	yes          key.Binding
	no           key.Binding
}

var keys = keyMap{
	up:      key.NewBinding(key.WithKeys("up", "k")),
	down:    key.NewBinding(key.WithKeys("down", "j")),
	enter:   key.NewBinding(key.WithKeys("enter")),
	esc:     key.NewBinding(key.WithKeys("esc")),
	tab:     key.NewBinding(key.WithKeys("tab")),
	backtab: key.NewBinding(key.WithKeys("shift+tab")),
	quit:    key.NewBinding(key.WithKeys("ctrl+c")),

	record:  key.NewBinding(key.WithKeys("ctrl+r")),
	preview: key.NewBinding(key.WithKeys("ctrl+p")),
	upload:  key.NewBinding(key.WithKeys("ctrl+u")),

	newTask:      key.NewBinding(key.WithKeys("n")),
	voiceTask:    key.NewBinding(key.WithKeys("v")),
	due:          key.NewBinding(key.WithKeys("d")),
	complete:     key.NewBinding(key.WithKeys("c")),
	history:      key.NewBinding(key.WithKeys("h")),
	clearHistory: key.NewBinding(key.WithKeys("x")),
	refresh:      key.NewBinding(key.WithKeys("r")),
	copyValue:    key.NewBinding(key.WithKeys("y")),
	logout:       key.NewBinding(key.WithKeys("l")),
	yes:          key.NewBinding(key.WithKeys("y")),
	no:           key.NewBinding(key.WithKeys("n")),
}
