package main

import (
	"context"
	"image/color"
	"log"
	"os"
	"runtime"
	"sync"

	"gioui.org/app"
	"gioui.org/font"
	"gioui.org/font/gofont"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/text"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"

	"tareas/internal/config"
	"tareas/pkg/tasklist"
)

var theme *material.Theme

var (
	colorMuted     = color.NRGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xFF}
	colorCompleted = color.NRGBA{R: 0x00, G: 0xC0, B: 0x00, A: 0xFF}
	colorDanger    = color.NRGBA{R: 0xC0, G: 0x30, B: 0x30, A: 0xFF}
	colorNotice    = color.NRGBA{R: 0x50, G: 0x30, B: 0x10, A: 0xFF}
)

// itemControls are the widgets bound to one rendered task.
type itemControls struct {
	complete widget.Clickable
	delete   widget.Clickable
	bind     tasklist.Binding
}

type UI struct {
	w         *app.Window
	presenter *tasklist.Presenter

	// Form
	nameEditor     widget.Editor
	descEditor     widget.Editor
	dueEditor      widget.Editor
	priorityEditor widget.Editor
	createBtn      widget.Clickable

	// List
	taskList widget.List
	controls *tasklist.Controls[itemControls]

	// Notice banner
	mu          sync.Mutex
	notice      string
	closeNotice widget.Clickable
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	apiBase := cfg.Client.APIBase
	if runtime.GOOS == "js" {
		// Served by the gateway itself.
		apiBase = "/"
	}

	theme = material.NewTheme()
	theme.Shaper = text.NewShaper(text.WithCollection(gofont.Collection()))
	theme.Palette.Bg = color.NRGBA{R: 0x12, G: 0x12, B: 0x12, A: 0xFF}
	theme.Palette.Fg = color.NRGBA{R: 0xE0, G: 0xE0, B: 0xE0, A: 0xFF}
	theme.Palette.ContrastBg = color.NRGBA{R: 0x30, G: 0x60, B: 0xA0, A: 0xFF}
	theme.Palette.ContrastFg = color.NRGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}

	ui := &UI{w: new(app.Window)}
	ui.presenter = tasklist.New(tasklist.NewClient(apiBase, nil), tasklist.NotifierFunc(ui.showNotice))
	ui.controls = tasklist.NewControls(func(id int64) *itemControls {
		return &itemControls{bind: ui.presenter.Bind(id)}
	})
	ui.presenter.OnChange(ui.w.Invalidate)
	ui.taskList.Axis = layout.Vertical
	for _, ed := range []*widget.Editor{&ui.nameEditor, &ui.descEditor, &ui.dueEditor, &ui.priorityEditor} {
		ed.SingleLine = true
	}

	go ui.presenter.Load(context.Background())

	go func() {
		ui.w.Option(app.Title("Tareas"))
		ui.w.Option(app.Size(unit.Dp(900), unit.Dp(800)))
		if err := ui.run(); err != nil {
			log.Fatal(err)
		}
		os.Exit(0)
	}()
	app.Main()
}

func (ui *UI) run() error {
	var ops op.Ops
	for {
		switch e := ui.w.Event().(type) {
		case app.DestroyEvent:
			return e.Err
		case app.FrameEvent:
			gtx := app.NewContext(&ops, e)
			ui.handleClicks(gtx)
			ui.layout(gtx)
			e.Frame(gtx.Ops)
		}
	}
}

func (ui *UI) showNotice(msg string) {
	ui.mu.Lock()
	ui.notice = msg
	ui.mu.Unlock()
	ui.w.Invalidate()
}

func (ui *UI) currentNotice() string {
	ui.mu.Lock()
	defer ui.mu.Unlock()
	return ui.notice
}

func (ui *UI) handleClicks(gtx layout.Context) {
	if ui.closeNotice.Clicked(gtx) {
		ui.showNotice("")
	}
	if ui.createBtn.Clicked(gtx) {
		ui.submit()
	}
	items := ui.presenter.Items()
	ui.controls.Retain(items)
	for _, it := range items {
		c := ui.controls.For(it.ID)
		if it.ControlsDisabled {
			continue
		}
		if c.complete.Clicked(gtx) {
			go c.bind.Complete(context.Background())
		}
		if c.delete.Clicked(gtx) {
			go c.bind.Delete(context.Background())
		}
	}
}

// submit clears the form once it passes validation; the request outcome
// is reported through the notice banner.
func (ui *UI) submit() {
	f := tasklist.Form{
		Name:        ui.nameEditor.Text(),
		Description: ui.descEditor.Text(),
		DueAt:       ui.dueEditor.Text(),
		Priority:    ui.priorityEditor.Text(),
	}
	if _, err := f.Validate(); err == nil {
		for _, ed := range []*widget.Editor{&ui.nameEditor, &ui.descEditor, &ui.dueEditor, &ui.priorityEditor} {
			ed.SetText("")
		}
	}
	go ui.presenter.Create(context.Background(), f)
}

func (ui *UI) layout(gtx layout.Context) layout.Dimensions {
	return layout.UniformInset(unit.Dp(16)).Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return material.H5(theme, "Tareas").Layout(gtx)
			}),
			layout.Rigid(layout.Spacer{Height: unit.Dp(8)}.Layout),
			layout.Rigid(ui.layoutNotice),
			layout.Rigid(ui.layoutForm),
			layout.Rigid(layout.Spacer{Height: unit.Dp(16)}.Layout),
			layout.Flexed(1, ui.layoutTasks),
		)
	})
}

func (ui *UI) layoutNotice(gtx layout.Context) layout.Dimensions {
	msg := ui.currentNotice()
	if msg == "" {
		return layout.Dimensions{}
	}
	return layout.Inset{Bottom: unit.Dp(8)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Background{}.Layout(gtx,
			func(gtx layout.Context) layout.Dimensions {
				return fill(gtx, colorNotice)
			},
			func(gtx layout.Context) layout.Dimensions {
				return layout.UniformInset(unit.Dp(8)).Layout(gtx, func(gtx layout.Context) layout.Dimensions {
					return layout.Flex{Alignment: layout.Middle}.Layout(gtx,
						layout.Flexed(1, material.Body1(theme, msg).Layout),
						layout.Rigid(material.Button(theme, &ui.closeNotice, "Cerrar").Layout),
					)
				})
			},
		)
	})
}

func (ui *UI) layoutForm(gtx layout.Context) layout.Dimensions {
	field := func(ed *widget.Editor, hint string) layout.FlexChild {
		return layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return layout.Inset{Bottom: unit.Dp(6)}.Layout(gtx, material.Editor(theme, ed, hint).Layout)
		})
	}
	return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
		field(&ui.nameEditor, "Nombre"),
		field(&ui.descEditor, "Descripción"),
		field(&ui.dueEditor, "Fecha de vencimiento (2024-05-01T10:00)"),
		field(&ui.priorityEditor, "Prioridad (baja, media, alta)"),
		layout.Rigid(material.Button(theme, &ui.createBtn, "Agregar tarea").Layout),
	)
}

func (ui *UI) layoutTasks(gtx layout.Context) layout.Dimensions {
	if ui.presenter.Empty() {
		label := material.Body1(theme, "No hay tareas pendientes")
		label.Color = colorMuted
		return label.Layout(gtx)
	}
	items := ui.presenter.Items()
	return material.List(theme, &ui.taskList).Layout(gtx, len(items), func(gtx layout.Context, i int) layout.Dimensions {
		return ui.layoutItem(gtx, items[i])
	})
}

func (ui *UI) layoutItem(gtx layout.Context, it tasklist.Item) layout.Dimensions {
	c := ui.controls.For(it.ID)
	return layout.Inset{Bottom: unit.Dp(12)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				label := material.Body1(theme, it.Name)
				label.Font.Weight = font.Bold
				if it.Completed {
					label.Color = colorCompleted
				}
				return label.Layout(gtx)
			}),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return layout.Flex{Alignment: layout.Middle}.Layout(gtx,
					layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
						label := material.Caption(theme, it.DueLabel+"   "+it.PriorityLabel)
						label.Color = colorMuted
						return label.Layout(gtx)
					}),
					layout.Rigid(func(gtx layout.Context) layout.Dimensions {
						if it.ControlsDisabled {
							gtx = gtx.Disabled()
						}
						return material.Button(theme, &c.complete, "Finalizar").Layout(gtx)
					}),
					layout.Rigid(layout.Spacer{Width: unit.Dp(8)}.Layout),
					layout.Rigid(func(gtx layout.Context) layout.Dimensions {
						if it.ControlsDisabled {
							gtx = gtx.Disabled()
						}
						btn := material.Button(theme, &c.delete, "Eliminar")
						btn.Background = colorDanger
						return btn.Layout(gtx)
					}),
				)
			}),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				label := material.Caption(theme, "Descripción:")
				label.Font.Weight = font.Bold
				return label.Layout(gtx)
			}),
			layout.Rigid(material.Body2(theme, it.Description).Layout),
		)
	})
}

func fill(gtx layout.Context, c color.NRGBA) layout.Dimensions {
	paint.FillShape(gtx.Ops, c, clip.Rect{Max: gtx.Constraints.Min}.Op())
	return layout.Dimensions{Size: gtx.Constraints.Min}
}
