package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Move    key.Binding
	Pick    key.Binding
	Cancel  key.Binding
	Add     key.Binding
	Remove  key.Binding
	Find    key.Binding
	Save    key.Binding
	Help    key.Binding
	Quit    key.Binding
	Up      key.Binding
	Down    key.Binding
	Left    key.Binding
	Right   key.Binding
	Confirm key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Move:    key.NewBinding(key.WithKeys("up", "down", "left", "right", "h", "j", "k", "l"), key.WithHelp("←↑↓→", "move")),
		Pick:    key.NewBinding(key.WithKeys(" ", "space", "enter"), key.WithHelp("space", "pick up")),
		Cancel:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		Add:     key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add column")),
		Remove:  key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "remove column")),
		Find:    key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "find")),
		Save:    key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Up:      key.NewBinding(key.WithKeys("up", "k")),
		Down:    key.NewBinding(key.WithKeys("down", "j")),
		Left:    key.NewBinding(key.WithKeys("left", "h")),
		Right:   key.NewBinding(key.WithKeys("right", "l")),
		Confirm: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "jump")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Move, k.Pick, k.Add, k.Find, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Move, k.Pick, k.Cancel},
		{k.Add, k.Remove},
		{k.Find, k.Save},
		{k.Help, k.Quit},
	}
}

// dragKeyMap is shown while a keyboard or pointer drag is in progress.
type dragKeyMap struct {
	keyMap
}

func (k dragKeyMap) ShortHelp() []key.Binding {
	drop := key.NewBinding(key.WithKeys(" ", "enter"), key.WithHelp("space", "drop"))
	return []key.Binding{k.Move, drop, k.Cancel}
}

func (k dragKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// findKeyMap is shown while the finder prompt is open.
type findKeyMap struct {
	keyMap
}

func (k findKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Confirm, k.Cancel}
}

func (k findKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
