package term

import (
	"github.com/gdamore/tcell/v2"
)

// HandleEvent applies one terminal event to the engine. It reports
// whether the event was consumed.
func (h *Host) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return h.handleKey(ev)
	case *tcell.EventResize:
		w, ht := ev.Size()
		h.screen.Sync()
		h.v.SetSize(float32(w), float32(max(ht-1, 0)))
		h.statusDirty = true
		return true
	case *tcell.EventMouse:
		return h.handleMouse(ev)
	case *tcell.EventInterrupt:
		if fn, ok := ev.Data().(func(*Host)); ok {
			fn(h)
			return true
		}
	}
	return false
}

// Post queues fn to run on the event loop. It is safe to call from any
// goroutine.
func (h *Host) Post(fn func(*Host)) error {
	return h.screen.PostEvent(tcell.NewEventInterrupt(fn))
}

func (h *Host) handleKey(ev *tcell.EventKey) bool {
	e, v := h.e, h.v
	mod := ev.Modifiers()
	shift := mod&tcell.ModShift != 0
	ctrl := mod&tcell.ModCtrl != 0
	alt := mod&tcell.ModAlt != 0

	switch ev.Key() {
	case tcell.KeyEscape:
		if len(e.Cursors()) > 1 || e.HasSelection() {
			e.ClearExtraCursors()
			e.ClearSelections()
			return true
		}
		h.quit = true
	case tcell.KeyLeft:
		if ctrl {
			return e.MoveWordLeft(v, shift)
		}
		return e.MoveLeft(v, shift)
	case tcell.KeyRight:
		if ctrl {
			return e.MoveWordRight(v, shift)
		}
		return e.MoveRight(v, shift)
	case tcell.KeyUp:
		if alt {
			return e.AddCursorAbove(v)
		}
		return e.MoveUp(v, shift)
	case tcell.KeyDown:
		if alt {
			return e.AddCursorBelow(v)
		}
		return e.MoveDown(v, shift)
	case tcell.KeyHome:
		if ctrl {
			return e.MoveDocStart(v, shift)
		}
		return e.MoveLineStart(v, shift)
	case tcell.KeyEnd:
		if ctrl {
			return e.MoveDocEnd(v, shift)
		}
		return e.MoveLineEnd(v, shift)
	case tcell.KeyPgUp:
		return e.MovePageUp(v, shift)
	case tcell.KeyPgDn:
		return e.MovePageDown(v, shift)
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return e.DeleteBackward()
	case tcell.KeyDelete:
		return e.DeleteForward()
	case tcell.KeyEnter:
		return e.InsertAtCursors("\n")
	case tcell.KeyTab:
		return e.InsertAtCursors("\t")
	case tcell.KeyCtrlZ:
		return e.Undo()
	case tcell.KeyCtrlY:
		return e.Redo()
	case tcell.KeyCtrlA:
		return e.SelectAll()
	case tcell.KeyCtrlD:
		return e.SelectWord()
	case tcell.KeyCtrlL:
		return e.SelectLine()
	case tcell.KeyCtrlW:
		v.SetWordWrap(!v.WordWrap())
		h.statusDirty = true
	case tcell.KeyRune:
		if ctrl || alt {
			return false
		}
		return e.InsertAtCursors(string(ev.Rune()))
	default:
		return false
	}
	return true
}

func (h *Host) handleMouse(ev *tcell.EventMouse) bool {
	if ev.Buttons()&tcell.Button1 == 0 {
		return false
	}
	x, y := ev.Position()
	_, ht := h.screen.Size()
	if y >= ht-1 {
		return false
	}
	if ev.Modifiers()&tcell.ModCtrl != 0 {
		return h.e.AddCursorFromPoint(h.v, float32(x), float32(y))
	}
	return h.e.SetCursorFromPoint(h.v, float32(x), float32(y))
}
