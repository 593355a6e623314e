package session

import (
	"fmt"
	"log/slog"

	"github.com/PIRSON21/scissors/internal/lib/api/request"
	"github.com/PIRSON21/scissors/internal/models"
	"github.com/PIRSON21/scissors/internal/selection"
)

// handle выполняет команду клиента. Ошибка команды уходит клиенту событием error,
// сессия продолжает работать.
func (ss *Session) handle(cmd request.Command) {
	const op = "session.handle"

	log := ss.log.With(slog.String("op", op), slog.String("cmd", cmd.Op))
	log.Debug("command received")

	if err := ss.apply(cmd); err != nil {
		log.Debug("command rejected", slog.String("err", err.Error()))
		ss.sendError(cmd.Op, err)
	}
}

func (ss *Session) apply(cmd request.Command) error {
	switch cmd.Op {
	case request.OpAdd:
		if err := ss.checkPoint(cmd.Point); err != nil {
			return err
		}
		return ss.model.AddPoint(*cmd.Point)

	case request.OpMove:
		if err := ss.checkPoint(cmd.Point); err != nil {
			return err
		}
		if cmd.Index == nil {
			return fmt.Errorf("%w: index is required", selection.ErrInvalidArgument)
		}
		return ss.model.MovePoint(*cmd.Index, *cmd.Point)

	case request.OpUndo:
		return ss.model.Undo()

	case request.OpReset:
		ss.model.Reset()
		return nil

	case request.OpFinish:
		return ss.model.FinishSelection()

	case request.OpCancel:
		return ss.model.CancelProcessing()

	case request.OpLive:
		if err := ss.checkPoint(cmd.Point); err != nil {
			return err
		}
		seg, err := ss.model.LiveWire(*cmd.Point)
		if err != nil {
			return err
		}
		ss.send(Event{Type: EventLive, Segment: &seg})
		return nil

	case request.OpTool:
		return ss.switchTool(cmd.Tool)

	case request.OpSave:
		return ss.save(cmd.Name)

	default:
		return fmt.Errorf("unknown op %q", cmd.Op)
	}
}

// switchTool меняет инструмент, сохраняя выделение. Идущий поиск отменяется.
func (ss *Session) switchTool(tool string) error {
	if ss.model.Strategy().Name() == tool {
		return nil
	}

	if ss.model.State() == selection.Processing {
		if err := ss.model.CancelProcessing(); err != nil {
			return err
		}
	}

	ss.model = ss.newModel(ss.model, tool)
	ss.log.Debug("tool switched", slog.String("tool", tool))
	ss.send(Event{Type: EventTool, Tool: tool})

	return nil
}

// save сохраняет замкнутое выделение как контур.
func (ss *Session) save(name string) error {
	const op = "session.save"

	if ss.model.State() != selection.Selected {
		return fmt.Errorf("%s: %w: %s", op, selection.ErrInvalidState, ss.model.State())
	}

	if ss.storage == nil {
		return fmt.Errorf("%s: storage is not configured", op)
	}

	outline := &models.Outline{
		Name:     name,
		Width:    ss.grid.Width,
		Height:   ss.grid.Height,
		Start:    ss.model.Start(),
		Segments: ss.model.Segments(),
	}

	if err := ss.storage.SaveOutline(outline); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	ss.log.Info("outline saved", slog.Int("outline_id", outline.ID), slog.String("name", name))
	ss.send(Event{Type: EventSaved, OutlineID: outline.ID})

	return nil
}
