package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	Complete key.Binding
	Delete   key.Binding
	New      key.Binding
	Reload   key.Binding
	Dismiss  key.Binding
	Quit     key.Binding

	// Form
	Next   key.Binding
	Prev   key.Binding
	Submit key.Binding
	Cancel key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Complete: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "finalizar")),
		Delete:   key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "eliminar")),
		New:      key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "nueva")),
		Reload:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "recargar")),
		Dismiss:  key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "cerrar aviso")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "salir")),

		Next:   key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "siguiente")),
		Prev:   key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "anterior")),
		Submit: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "agregar")),
		Cancel: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancelar")),
	}
}

// listHelp and formHelp satisfy help.KeyMap for each mode.
type listHelp struct{ k keyMap }

func (h listHelp) ShortHelp() []key.Binding {
	return []key.Binding{h.k.Up, h.k.Down, h.k.Complete, h.k.Delete, h.k.New, h.k.Reload, h.k.Quit}
}

func (h listHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{h.ShortHelp(), {h.k.Dismiss}}
}

type formHelp struct{ k keyMap }

func (h formHelp) ShortHelp() []key.Binding {
	return []key.Binding{h.k.Next, h.k.Prev, h.k.Submit, h.k.Cancel}
}

func (h formHelp) FullHelp() [][]key.Binding { return [][]key.Binding{h.ShortHelp()} }
