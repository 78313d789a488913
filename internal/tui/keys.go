package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit     key.Binding
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	ZoomIn   key.Binding
	ZoomOut  key.Binding
	Fit      key.Binding
	Grid     key.Binding
	GridStep key.Binding
	Smaller  key.Binding
	Larger   key.Binding
	Fainter  key.Binding
	Bolder   key.Binding
	Reload   key.Binding
	Export   key.Binding
	Copy     key.Binding
	Clear    key.Binding
	Table    key.Binding
	Sidebar  key.Binding
	Open     key.Binding
	Paste    key.Binding
	Help     key.Binding
	Cancel   key.Binding
}

var keys = keyMap{
	Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	Up:       key.NewBinding(key.WithKeys("up"), key.WithHelp("↑↓←→", "pan")),
	Down:     key.NewBinding(key.WithKeys("down")),
	Left:     key.NewBinding(key.WithKeys("left")),
	Right:    key.NewBinding(key.WithKeys("right")),
	ZoomIn:   key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+/-", "zoom")),
	ZoomOut:  key.NewBinding(key.WithKeys("-", "_")),
	Fit:      key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "fit")),
	Grid:     key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "grid")),
	GridStep: key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "step")),
	Smaller:  key.NewBinding(key.WithKeys("["), key.WithHelp("[/]", "size")),
	Larger:   key.NewBinding(key.WithKeys("]")),
	Fainter:  key.NewBinding(key.WithKeys(","), key.WithHelp(",/.", "opacity")),
	Bolder:   key.NewBinding(key.WithKeys(".")),
	Reload:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
	Export:   key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "export")),
	Copy:     key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy")),
	Clear:    key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear")),
	Table:    key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "selection")),
	Sidebar:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("Tab", "files")),
	Open:     key.NewBinding(key.WithKeys("enter")),
	Paste:    key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "paste")),
	Help:     key.NewBinding(key.WithKeys("h", "?"), key.WithHelp("h", "help")),
	Cancel:   key.NewBinding(key.WithKeys("esc")),
}

// helpKeys lists the bindings shown in the footer, in order.
func (k keyMap) helpKeys() []key.Binding {
	return []key.Binding{
		k.Up, k.ZoomIn, k.Fit, k.Grid, k.GridStep, k.Smaller, k.Fainter,
		k.Reload, k.Export, k.Copy, k.Clear, k.Table, k.Sidebar, k.Paste, k.Help, k.Quit,
	}
}
