package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	up       key.Binding
	down     key.Binding
	prevPage key.Binding
	nextPage key.Binding
	enter    key.Binding
	esc      key.Binding
	tab      key.Binding
	backtab  key.Binding
	toggle   key.Binding
	quit     key.Binding
	logout   key.Binding
	search   key.Binding
	authors  key.Binding
	embeds   key.Binding
	jump     key.Binding
	flip     key.Binding
	refetch  key.Binding
	clear    key.Binding
	clearAll key.Binding
	copy     key.Binding
	info     key.Binding
	yes      key.Binding
	no       key.Binding
}

var keys = keyMap{
	up:       key.NewBinding(key.WithKeys("up", "k")),
	down:     key.NewBinding(key.WithKeys("down", "j")),
	prevPage: key.NewBinding(key.WithKeys("left", "h")),
	nextPage: key.NewBinding(key.WithKeys("right", "l")),
	enter:    key.NewBinding(key.WithKeys("enter")),
	esc:      key.NewBinding(key.WithKeys("esc")),
	tab:      key.NewBinding(key.WithKeys("tab")),
	backtab:  key.NewBinding(key.WithKeys("shift+tab")),
	toggle:   key.NewBinding(key.WithKeys(" ")),
	quit:     key.NewBinding(key.WithKeys("q", "ctrl+c")),
	logout:   key.NewBinding(key.WithKeys("L")),
	search:   key.NewBinding(key.WithKeys("/")),
	authors:  key.NewBinding(key.WithKeys("a")),
	embeds:   key.NewBinding(key.WithKeys("1", "2", "3", "4", "5")),
	jump:     key.NewBinding(key.WithKeys("g")),
	flip:     key.NewBinding(key.WithKeys("f")),
	refetch:  key.NewBinding(key.WithKeys("r")),
	clear:    key.NewBinding(key.WithKeys("x")),
	clearAll: key.NewBinding(key.WithKeys("X")),
	copy:     key.NewBinding(key.WithKeys("c")),
	info:     key.NewBinding(key.WithKeys("i")),
	yes:      key.NewBinding(key.WithKeys("y")),
	no:       key.NewBinding(key.WithKeys("n", "esc")),
}
