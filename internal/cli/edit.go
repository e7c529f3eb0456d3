package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/bannersmith/pkg/banner"
	"github.com/matzehuels/bannersmith/pkg/editor"
	"github.com/matzehuels/bannersmith/pkg/geometry"
	"github.com/matzehuels/bannersmith/pkg/notify"
	"github.com/matzehuels/bannersmith/pkg/store"
)

// nudgeStep is the canvas distance one arrow press moves or resizes an
// asset. It must exceed the double-click radius so repeated presses on the
// same asset are not mistaken for a double click.
const nudgeStep = 10.0

// editCommand creates the edit command for interactive composition editing.
func (c *CLI) editCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "edit <banner-id>",
		Short: "Edit a composition interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runEdit(cmd, args[0])
		},
	}
}

func (c *CLI) runEdit(cmd *cobra.Command, bannerID string) error {
	ctx := withLogger(cmd.Context(), c.Logger)

	cfg, err := c.config()
	if err != nil {
		return err
	}

	st, err := c.newStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	comp, err := st.Load(ctx, bannerID)
	if err != nil {
		return err
	}

	model := newEditModel(ctx, comp, st, c)
	final, err := tea.NewProgram(model).Run()
	if err != nil {
		return err
	}

	if m, ok := final.(editModel); ok && m.engine.Dirty() {
		printWarning("Unsaved changes discarded")
	}
	return nil
}

// =============================================================================
// EditModel - Interactive composition editing
// =============================================================================

// editModel is the bubbletea model for the composition editor. Keyboard
// gestures are translated into the pointer events the interaction machine
// expects: selection presses at the asset center, drags from a grab point
// inside the asset, and resizes from the south-east handle.
type editModel struct {
	ctx      context.Context
	engine   *editor.Engine
	st       store.Store
	notifier notify.Notifier
	bannerID string

	status    string
	nudgeFlip bool // alternates the grab point so nudges never double-click
}

func newEditModel(ctx context.Context, comp *banner.Composition, st store.Store, c *CLI) editModel {
	engine := editor.New(comp, editor.Config{Logger: c.Logger})
	return editModel{
		ctx:      ctx,
		engine:   engine,
		st:       st,
		notifier: notify.NewLogNotifier(c.Logger),
		bannerID: comp.BannerID,
		status:   "ready",
	}
}

func (m editModel) Init() tea.Cmd {
	return nil
}

func (m editModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.engine.State() == editor.StateEditingText {
		return m.updateEditing(key)
	}
	return m.updateNormal(key)
}

// updateNormal handles keys outside text editing.
func (m editModel) updateNormal(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "tab":
		m.cycleSelection(1)
	case "shift+tab":
		m.cycleSelection(-1)

	case "up":
		m.nudge(0, -nudgeStep)
	case "down":
		m.nudge(0, nudgeStep)
	case "left":
		m.nudge(-nudgeStep, 0)
	case "right":
		m.nudge(nudgeStep, 0)

	case "shift+up":
		m.resize(0, -nudgeStep)
	case "shift+down":
		m.resize(0, nudgeStep)
	case "shift+left":
		m.resize(-nudgeStep, 0)
	case "shift+right":
		m.resize(nudgeStep, 0)

	case "e", "enter":
		if id := m.engine.SelectedID(); id != "" {
			m.engine.StartTextEdit(id)
			if m.engine.State() != editor.StateEditingText {
				m.status = "asset has no editable text"
			}
		}

	case "d":
		if id := m.engine.Duplicate(""); id != "" {
			m.status = "duplicated"
		}

	case "x", "backspace", "delete":
		if m.engine.Delete("") {
			m.status = "deleted"
		}

	case "+", "=":
		m.engine.SetZoom(m.engine.Snapshot().Zoom + 0.1)
	case "-":
		if z := m.engine.Snapshot().Zoom - 0.1; z > 0 {
			m.engine.SetZoom(z)
		}

	case "s":
		return m.save()
	}
	return m, nil
}

// updateEditing handles keys while the text-edit overlay is open.
func (m editModel) updateEditing(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "enter":
		m.engine.CommitTextEdit()
		m.status = "text committed"
	case "esc":
		m.engine.CancelTextEdit()
		m.status = "edit cancelled"
	case "backspace":
		buf := []rune(m.engine.TextBuffer())
		if len(buf) > 0 {
			m.engine.SetTextBuffer(string(buf[:len(buf)-1]))
		}
	default:
		if key.Type == tea.KeyRunes || key.Type == tea.KeySpace {
			m.engine.SetTextBuffer(m.engine.TextBuffer() + key.String())
		}
	}
	return m, nil
}

// cycleSelection selects the next asset in paint order via a pointer press
// at its center.
func (m *editModel) cycleSelection(step int) {
	assets := m.engine.Composition().Assets
	if len(assets) == 0 {
		return
	}

	idx := -1
	for i, a := range assets {
		if a.ID == m.engine.SelectedID() {
			idx = i
			break
		}
	}
	next := (idx + step + len(assets)) % len(assets)

	m.engine.PointerDown(assets[next].Center())
	m.engine.PointerUp()
	m.status = "selected " + assets[next].Kind
}

// nudge moves the selected asset by (dx, dy) through a synthetic drag
// gesture. The grab point alternates around the center so consecutive
// presses are never within the double-click radius.
func (m *editModel) nudge(dx, dy float64) {
	a := m.selectedAsset()
	if a == nil {
		return
	}

	grab := a.Center()
	off := geometry.MinAssetSize/2 - 4
	if m.nudgeFlip {
		off = -off
	}
	m.nudgeFlip = !m.nudgeFlip
	grab.X += off

	m.engine.PointerDown(grab)
	m.engine.PointerMove(banner.Point{X: grab.X + dx, Y: grab.Y + dy})
	m.engine.PointerUp()
}

// resize grows or shrinks the selected asset by (dx, dy) from the
// south-east handle.
func (m *editModel) resize(dx, dy float64) {
	a := m.selectedAsset()
	if a == nil {
		return
	}

	corner := banner.Point{X: a.Position.X + a.Size.Width, Y: a.Position.Y + a.Size.Height}
	m.engine.ResizeHandleDown(geometry.HandleSE, corner)
	m.engine.PointerMove(banner.Point{X: corner.X + dx, Y: corner.Y + dy})
	m.engine.PointerUp()
}

func (m *editModel) selectedAsset() *banner.Asset {
	id := m.engine.SelectedID()
	if id == "" {
		return nil
	}
	return m.engine.Composition().Find(id)
}

func (m editModel) save() (tea.Model, tea.Cmd) {
	comp := m.engine.Composition().Clone()
	if err := m.st.Save(m.ctx, m.bannerID, comp); err != nil {
		m.notifier.Notify(m.ctx, notify.KindError, "Save failed", err.Error())
		m.status = "save failed: " + err.Error()
		return m, nil
	}
	m.engine.ClearDirty()
	m.notifier.Notify(m.ctx, notify.KindSuccess, "Banner saved", m.bannerID)
	m.status = "saved"
	return m, nil
}

// =============================================================================
// View
// =============================================================================

var (
	editSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	editNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	editBufferStyle   = lipgloss.NewStyle().Foreground(colorYellow)
)

func (m editModel) View() string {
	comp := m.engine.Composition()
	snap := m.engine.Snapshot()

	var b strings.Builder

	title := fmt.Sprintf("Banner %s", m.bannerID)
	if m.engine.Dirty() {
		title += " *"
	}
	b.WriteString(StyleTitle.Render(title))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render(fmt.Sprintf("canvas %.0fx%.0f · zoom %.0f%% · %s",
		comp.CanvasSize.Width, comp.CanvasSize.Height, snap.Zoom*100, snap.State)))
	b.WriteString("\n\n")

	for i, a := range comp.Assets {
		cursor := "  "
		style := editNormalStyle
		if a.ID == snap.SelectedAssetID {
			cursor = "▸ "
			style = editSelectedStyle
		}

		label := a.Kind
		if a.Editable() && a.Text != "" {
			label += fmt.Sprintf(" %q", truncate(a.Text, 24))
		}
		line := fmt.Sprintf("%s%-2d %-32s @ %4.0f,%-4.0f  %4.0fx%-4.0f",
			cursor, i+1, label, a.Position.X, a.Position.Y, a.Size.Width, a.Size.Height)
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}
	if len(comp.Assets) == 0 {
		b.WriteString(StyleDim.Render("  (no assets)"))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if snap.State == editor.StateEditingText {
		b.WriteString(editBufferStyle.Render("text: " + snap.TextEditBuffer + "▏"))
		b.WriteString("\n")
		b.WriteString(StyleDim.Render("⏎ commit · esc cancel"))
	} else {
		b.WriteString(StyleDim.Render(m.status))
		b.WriteString("\n")
		b.WriteString(StyleDim.Render("⇥ select · ↑↓←→ move · shift+↑↓←→ resize · e edit · d dup · x del · s save · q quit"))
	}
	b.WriteString("\n")

	return b.String()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
