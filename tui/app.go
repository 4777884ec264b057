// Package tui is the interactive terminal front end. It paints the
// active page through the layout engine, translates mouse gestures into
// drag and selection intents, and keyboard input into structural edits
// dispatched through the editor core.
package tui

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"sld/analysis"
	"sld/canvas"
	"sld/config"
	"sld/connect"
	"sld/drag"
	"sld/editor"
	"sld/export"
	"sld/layout"
	"sld/mutate"
	"sld/schematic"
	"sld/store"
)

// App runs the terminal editor.
type App struct {
	screen   tcell.Screen
	editor   *editor.Editor
	engine   *layout.Engine
	dragger  *drag.Controller
	store    *store.Store
	analyzer *analysis.Client
	logger   *slog.Logger

	camX, camY int // camera offset in cells
	result     *layout.Result
	preview    map[string]schematic.Offset

	status     string
	statusAt   time.Time
	linkFrom   string // pending first endpoint of a connect gesture
	confirm    func()
	confirmMsg string

	quit bool
}

// NewApp wires an application from its collaborators. The store and
// analyzer may be nil for ephemeral sessions.
func NewApp(ed *editor.Editor, cfg *config.Config, st *store.Store, an *analysis.Client, logger *slog.Logger) *App {
	if logger == nil {
		logger = slog.Default()
	}
	engine := layout.NewEngine()
	engine.DepthSpacing = cfg.Layout.DepthSpacing
	engine.SiblingGap = cfg.Layout.SiblingGap
	engine.SubtreeGap = cfg.Layout.SubtreeGap
	engine.MaxNodeWidth = cfg.Layout.MaxNodeWidth
	if cfg.Layout.Orientation == "horizontal" {
		engine.Orientation = layout.Horizontal
	}
	return &App{
		editor:   ed,
		engine:   engine,
		dragger:  drag.NewController(cfg.Drag.Threshold, cfg.Drag.SnapGrid),
		store:    st,
		analyzer: an,
		logger:   logger,
	}
}

// Run starts the event loop and blocks until the user quits.
func (a *App) Run() error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("creating screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("initializing screen: %w", err)
	}
	defer screen.Fini()
	screen.EnableMouse()
	a.screen = screen

	a.relayout()
	for !a.quit {
		a.draw()
		switch ev := screen.PollEvent().(type) {
		case *tcell.EventResize:
			screen.Sync()
		case *tcell.EventKey:
			a.handleKey(ev)
		case *tcell.EventMouse:
			a.handleMouse(ev)
		case *reportEvent:
			a.showReport(ev.report)
		}
	}
	return nil
}

// relayout recomputes positions, applying live drag previews on a
// scratch copy so the real forest stays untouched until commit.
func (a *App) relayout() {
	items := a.editor.Items()
	if len(a.preview) > 0 {
		items = mutate.ApplyOffsets(items, a.preview)
	}
	a.result = a.engine.Layout(items)
}

func (a *App) setStatus(format string, args ...any) {
	a.status = fmt.Sprintf(format, args...)
	a.statusAt = time.Now()
}

// handleKey dispatches keyboard intents. A pending confirmation eats
// the next key: y proceeds, anything else cancels.
func (a *App) handleKey(ev *tcell.EventKey) {
	if a.confirm != nil {
		if ev.Rune() == 'y' || ev.Rune() == 'Y' {
			a.confirm()
		} else {
			a.setStatus("cancelled")
		}
		a.confirm = nil
		a.confirmMsg = ""
		a.relayout()
		return
	}

	switch {
	case ev.Key() == tcell.KeyCtrlC || ev.Rune() == 'q':
		a.persist()
		a.quit = true
	case ev.Key() == tcell.KeyEscape:
		a.linkFrom = ""
		a.editor.ClearSelection()
	case ev.Rune() == 'a':
		if id := a.editor.Selected(); id != "" {
			a.editor.InsertNode(id, schematic.TypeBreaker, "")
			a.setStatus("added breaker")
		}
	case ev.Rune() == 'p':
		if id := a.editor.Selected(); id != "" {
			a.editor.InsertNode(id, schematic.TypePanel, "")
			a.setStatus("added distribution board")
		}
	case ev.Rune() == 'A':
		id := a.editor.AddRootNode(schematic.TypeSystemRoot, "")
		a.editor.Select(id)
		a.setStatus("added supply root")
	case ev.Rune() == 'd':
		a.askDelete()
	case ev.Rune() == 'x':
		a.askDetach()
	case ev.Rune() == 'c':
		if id := a.editor.Selected(); id != "" {
			a.editor.CloneNode(id)
			a.setStatus("cloned")
		}
	case ev.Rune() == 'g':
		if id := a.editor.Selected(); id != "" {
			a.editor.GroupNode(id)
			a.setStatus("grouped")
		}
	case ev.Rune() == ' ':
		if id := a.editor.Selected(); id != "" {
			a.editor.ToggleCollapse(id)
		}
	case ev.Rune() == 'l':
		if id := a.editor.Selected(); id != "" {
			a.linkFrom = id
			a.setStatus("select the other node to connect")
		}
	case ev.Rune() == 'D':
		if link := a.editor.SelectedLink(); link != nil {
			a.editor.DisconnectNodes(link.FromID, link.ToID)
			a.setStatus("disconnected")
		}
	case ev.Rune() == 'u':
		if a.editor.Undo() {
			a.setStatus("undo")
		} else {
			a.setStatus("nothing to undo")
		}
	case ev.Rune() == 'r':
		if a.editor.Redo() {
			a.setStatus("redo")
		} else {
			a.setStatus("nothing to redo")
		}
	case ev.Rune() == 'o':
		if a.engine.Orientation == layout.Vertical {
			a.engine.Orientation = layout.Horizontal
		} else {
			a.engine.Orientation = layout.Vertical
		}
		a.setStatus("orientation toggled")
	case ev.Rune() == 's':
		a.persist()
	case ev.Rune() == 'e':
		a.exportPage()
	case ev.Rune() == 'y':
		if err := export.CopyProject(a.editor.Project()); err != nil {
			a.setStatus("copy failed: %v", err)
		} else {
			a.setStatus("project copied to clipboard")
		}
	case ev.Rune() == 'Y':
		if id := a.editor.Selected(); id != "" {
			node := schematic.Find(a.editor.Items(), id)
			if err := export.CopySubtree(node); err != nil {
				a.setStatus("copy failed: %v", err)
			} else {
				a.setStatus("subtree copied to clipboard")
			}
		}
	case ev.Rune() == 'n':
		a.analyze()
	case ev.Key() == tcell.KeyTab:
		_, page := a.editor.ActiveIndexes()
		a.editor.SetActivePage((page + 1) % len(a.editor.Project().Pages))
	case ev.Rune() == 'N':
		a.editor.AddPage("")
		a.setStatus("page added")
	case ev.Key() == tcell.KeyLeft:
		a.camX -= 4
	case ev.Key() == tcell.KeyRight:
		a.camX += 4
	case ev.Key() == tcell.KeyUp:
		a.camY -= 2
	case ev.Key() == tcell.KeyDown:
		a.camY += 2
	}
	a.relayout()
}

func (a *App) askDelete() {
	id := a.editor.Selected()
	if id == "" {
		return
	}
	node := schematic.Find(a.editor.Items(), id)
	if node == nil {
		return
	}
	count := schematic.CountNodes([]*schematic.Node{node})
	a.confirmMsg = fmt.Sprintf("delete %q and %d node(s)? [y/N]", node.Name, count)
	a.confirm = func() {
		a.editor.DeleteNode(id)
		a.setStatus("deleted")
	}
}

func (a *App) askDetach() {
	id := a.editor.Selected()
	if id == "" {
		return
	}
	a.confirmMsg = "detach subtree to page level? [y/N]"
	a.confirm = func() {
		a.editor.DetachNode(id)
		a.setStatus("detached")
	}
}

// handleMouse runs selection, connect gestures and the drag state
// machine. World coordinates are screen coordinates plus the camera.
func (a *App) handleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	wx, wy := x+a.camX, y+a.camY

	switch {
	case ev.Buttons()&tcell.WheelUp != 0:
		a.camY -= 2
	case ev.Buttons()&tcell.WheelDown != 0:
		a.camY += 2
	case ev.Buttons()&tcell.Button1 != 0:
		if a.dragger.State() == drag.Idle {
			if hit := a.hitTest(wx, wy); hit != "" {
				a.dragger.Start(a.editor.Items(), hit, wx, wy)
			}
		} else {
			a.preview = a.dragger.Move(wx, wy)
			a.relayout()
		}
	default:
		if a.dragger.State() == drag.Idle {
			return
		}
		nodeID := a.dragger.NodeID()
		offsets, outcome := a.dragger.End()
		a.preview = nil
		switch outcome {
		case drag.Moved:
			a.editor.CommitOffsets(offsets)
			a.setStatus("moved")
		case drag.Click:
			a.clicked(nodeID)
		}
		a.relayout()
	}
}

// clicked handles a press that never became a drag: either the second
// endpoint of a pending connect, or a plain selection.
func (a *App) clicked(nodeID string) {
	if a.linkFrom != "" && nodeID != a.linkFrom {
		result := a.editor.ConnectNodes(a.linkFrom, nodeID)
		switch result {
		case connect.Reparented:
			a.setStatus("reparented")
		case connect.Linked:
			a.setStatus("connected")
		case connect.Rejected:
			a.setStatus("connection rejected: would create a cycle")
		default:
			a.setStatus("no change")
		}
		a.linkFrom = ""
		return
	}
	a.linkFrom = ""
	a.editor.Select(nodeID)
}

// hitTest finds the topmost node under a world coordinate. Later paint
// order wins, so overlapping dragged nodes select what the user sees.
func (a *App) hitTest(x, y int) string {
	if a.result == nil {
		return ""
	}
	for i := len(a.result.Order) - 1; i >= 0; i-- {
		p := a.result.Nodes[a.result.Order[i]]
		if p.Contains(x, y) {
			return p.Node.ID
		}
	}
	return ""
}

func (a *App) persist() {
	if a.store == nil {
		return
	}
	a.editor.SetStatus(editor.Saving)
	if err := a.store.Save(a.editor.Projects()); err != nil {
		a.logger.Error("save failed", "error", err)
		a.editor.SetStatus(editor.SaveFailed)
		a.setStatus("save failed: %v", err)
		return
	}
	a.editor.SetStatus(editor.Saved)
	a.setStatus("saved")
}

func (a *App) exportPage() {
	exporter, err := export.NewExporter(export.FormatSVG)
	if err != nil {
		a.setStatus("export: %v", err)
		return
	}
	data, err := exporter.Export(a.editor.Project(), a.editor.Page())
	if err != nil {
		a.setStatus("export: %v", err)
		return
	}
	name := fmt.Sprintf("%s%s", a.editor.Page().Name, exporter.FileExtension())
	if err := os.WriteFile(name, data, 0o644); err != nil {
		a.setStatus("export: %v", err)
		return
	}
	a.setStatus("exported %s", name)
}

func (a *App) analyze() {
	if a.analyzer == nil {
		a.setStatus("analysis not configured")
		return
	}
	a.setStatus("analyzing...")
	a.analyzer.AnalyzeAsync(context.Background(), a.editor.Page(), func(report *analysis.Report) {
		a.screen.PostEvent(newReportEvent(report))
	})
}

// draw paints the whole frame: header, diagram, confirmation prompt
// and status line.
func (a *App) draw() {
	a.screen.Clear()
	w, h := a.screen.Size()

	a.drawHeader(w)
	a.drawDiagram(w, h)

	style := tcell.StyleDefault.Foreground(tcell.ColorYellow)
	if a.confirmMsg != "" {
		a.drawText(0, h-1, a.confirmMsg, style)
	} else if a.status != "" && time.Since(a.statusAt) < 5*time.Second {
		a.drawText(0, h-1, a.status, style)
	}
	a.screen.Show()
}

func (a *App) drawHeader(w int) {
	p := a.editor.Project()
	cur, total := a.editor.HistoryStats()
	statusWord := map[editor.SaveStatus]string{
		editor.Saved:      "saved",
		editor.Dirty:      "modified",
		editor.Saving:     "saving",
		editor.SaveFailed: "SAVE FAILED",
	}[a.editor.Status()]
	header := fmt.Sprintf(" %s / %s | history %d/%d | %s ",
		p.Name, a.editor.Page().Name, cur, total, statusWord)
	style := tcell.StyleDefault.Reverse(true)
	for x := 0; x < w; x++ {
		a.screen.SetContent(x, 0, ' ', nil, style)
	}
	a.drawText(0, 0, header, style)
}

// drawDiagram renders through the shared rune canvas, then blits the
// visible window with per-node styling on top.
func (a *App) drawDiagram(w, h int) {
	if a.result == nil || len(a.result.Order) == 0 {
		a.drawText(2, 2, "empty page - press A to add a supply root", tcell.StyleDefault)
		return
	}
	c := canvas.New(a.result.Width+1, a.result.Height+1)
	for _, edge := range a.result.Edges {
		c.DrawPath(edge.Points, edge.Auxiliary)
	}
	for y := 1; y < h-1; y++ {
		for x := 0; x < w; x++ {
			r := c.Get(x+a.camX, y-1+a.camY)
			if r != ' ' {
				a.screen.SetContent(x, y, r, nil, tcell.StyleDefault.Foreground(tcell.ColorGray))
			}
		}
	}
	for _, id := range a.result.Order {
		a.drawNode(a.result.Nodes[id], h)
	}
}

func (a *App) drawNode(p *layout.PlacedNode, screenH int) {
	style := tcell.StyleDefault
	if color := p.Node.DisplayColor(); color != "" {
		style = style.Foreground(tcell.GetColor(color))
	}
	if p.Node.ID == a.editor.Selected() {
		style = style.Reverse(true)
	}
	if p.Node.ID == a.linkFrom {
		style = style.Foreground(tcell.ColorYellow).Bold(true)
	}

	box := canvas.New(p.Width, p.Height)
	box.DrawBox(0, 0, p.Width, p.Height)
	lines := nodeLines(p.Node)
	for i, line := range lines {
		if i >= p.Height-2 {
			break
		}
		runes := []rune(line)
		if len(runes) > p.Width-2 {
			runes = runes[:p.Width-2]
		}
		box.Text(1+(p.Width-2-len(runes))/2, 1+i, string(runes))
	}

	for dy := 0; dy < p.Height; dy++ {
		sy := p.Y + dy - a.camY + 1
		if sy < 1 || sy >= screenH-1 {
			continue
		}
		for dx := 0; dx < p.Width; dx++ {
			sx := p.X + dx - a.camX
			if sx < 0 {
				continue
			}
			a.screen.SetContent(sx, sy, box.Get(dx, dy), nil, style)
		}
	}
}

func nodeLines(n *schematic.Node) []string {
	lines := []string{string(n.Type.Config().Icon) + " " + n.Name}
	if s := n.SpecLine(); s != "" {
		lines = append(lines, s)
	}
	if n.Model != "" {
		lines = append(lines, n.Model)
	}
	if n.Description != "" {
		lines = append(lines, n.Description)
	}
	if badges := n.Badges(); len(badges) > 0 {
		line := ""
		for i, b := range badges {
			if i > 0 {
				line += " "
			}
			line += "[" + b + "]"
		}
		lines = append(lines, line)
	}
	return lines
}

func (a *App) drawText(x, y int, s string, style tcell.Style) {
	for i, r := range []rune(s) {
		a.screen.SetContent(x+i, y, r, nil, style)
	}
}
