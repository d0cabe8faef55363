package practiceui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Swap    key.Binding
	Keep    key.Binding
	Hint    key.Binding
	Restart key.Binding
	Quit    key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Swap, k.Keep, k.Hint, k.Restart, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

func defaultKeyMap() keyMap {
	return keyMap{
		Swap:    key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "swap")),
		Keep:    key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "no swap")),
		Hint:    key.NewBinding(key.WithKeys("h"), key.WithHelp("h", "hint")),
		Restart: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "restart")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}
