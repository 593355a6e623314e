// Package session связывает клиента websocket с моделью выделения.
//
// Каждая сессия держит одну управляющую горутину (Run). Только она трогает
// selection.Model: команды клиента, прогресс и результаты поиска приходят
// к ней через каналы.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/PIRSON21/scissors/internal/lib/api/request"
	"github.com/PIRSON21/scissors/internal/models"
	"github.com/PIRSON21/scissors/internal/scissors"
	"github.com/PIRSON21/scissors/internal/selection"
	"github.com/google/uuid"
	customTimer "github.com/ivahaev/timer"
)

// commandBuffer - сколько команд может ждать управляющую горутину.
const commandBuffer = 16

// ErrOutOfBounds - точка команды вне изображения.
var ErrOutOfBounds = errors.New("session: point out of bounds")

type EventSender interface {
	Send(data []byte)
}

//go:generate go run github.com/vektra/mockery/v2@v2.53.0 --name=OutlineSaver
type OutlineSaver interface {
	SaveOutline(outline *models.Outline) error
}

// Options - общие для всех сессий зависимости.
type Options struct {
	Searcher    *scissors.Searcher
	Storage     OutlineSaver
	IdleTimeout time.Duration // ноль отключает таймер простоя
}

// Session описывает сессию выделения одного клиента.
type Session struct {
	id       string
	ctx      context.Context
	cancel   context.CancelFunc
	client   EventSender
	grid     *models.CostGrid
	model    *selection.Model
	searcher *scissors.Searcher
	storage  OutlineSaver
	commands chan request.Command
	done     chan struct{}
	stopOnce sync.Once

	idle        *customTimer.Timer
	idleTimeout time.Duration

	log *slog.Logger
}

// NewSession создает сессию над сеткой весов grid с инструментом tool.
// Пустой tool означает point-to-point. Сетка проверяется до создания сессии.
func NewSession(client EventSender, grid *models.CostGrid, tool string, opts Options, log *slog.Logger) (*Session, error) {
	const op = "session.NewSession"

	if err := grid.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	ctx, cancel := context.WithCancel(context.Background())

	searcher := opts.Searcher
	if searcher == nil {
		searcher = scissors.NewSearcher()
	}

	id := uuid.New().String()

	ss := &Session{
		id:          id,
		ctx:         ctx,
		cancel:      cancel,
		client:      client,
		grid:        grid,
		searcher:    searcher,
		storage:     opts.Storage,
		commands:    make(chan request.Command, commandBuffer),
		done:        make(chan struct{}),
		idleTimeout: opts.IdleTimeout,
		log:         log.With(slog.String("session_id", id)),
	}

	ss.model = ss.newModel(nil, tool)

	return ss, nil
}

// ID возвращает идентификатор сессии.
func (ss *Session) ID() string { return ss.id }

// Done закрывается, когда управляющая горутина завершилась.
func (ss *Session) Done() <-chan struct{} { return ss.done }

// Submit передает команду управляющей горутине.
// После Stop команды молча отбрасываются.
func (ss *Session) Submit(cmd request.Command) {
	select {
	case ss.commands <- cmd:
	case <-ss.ctx.Done():
	}
}

// Stop завершает сессию и отменяет идущий поиск.
func (ss *Session) Stop() {
	ss.stopOnce.Do(func() {
		ss.cancel()
	})
}

// Run - управляющая горутина сессии. Возвращается после Stop или по таймеру простоя.
func (ss *Session) Run() {
	const op = "session.Run"

	log := ss.log.With(slog.String("op", op))

	defer close(ss.done)
	defer ss.stopIdle()

	ss.send(Event{Type: EventReady, SessionID: ss.id, Tool: ss.model.Strategy().Name()})
	ss.resetIdle()

	for {
		var (
			progress <-chan int
			result   <-chan selection.Outcome
			idle     <-chan time.Time
		)

		task := ss.model.Pending()
		if task != nil {
			progress = task.Progress()
			result = task.Done()
		}
		if ss.idle != nil {
			idle = ss.idle.C
		}

		select {
		case <-ss.ctx.Done():
			log.Debug("session stopped")
			return

		case cmd := <-ss.commands:
			ss.handle(cmd)
			ss.resetIdle()

		case percent := <-progress:
			ss.model.ReportProgress(task, percent)

		case outcome := <-result:
			ss.drainProgress(task)
			ss.model.Complete(task, outcome)
			if outcome.Err != nil && !errors.Is(outcome.Err, scissors.ErrCancelled) {
				ss.sendError("search", outcome.Err)
			}

		case <-idle:
			log.Info("session idle, stopping", slog.Duration("timeout", ss.idleTimeout))
			ss.Stop()
			return
		}
	}
}

func (ss *Session) drainProgress(task *selection.Task) {
	for {
		select {
		case percent := <-task.Progress():
			ss.model.ReportProgress(task, percent)
		default:
			return
		}
	}
}

// newModel создает модель с инструментом tool и подписывает сессию на ее события.
// Если prev не nil, выделение переносится из prev.
func (ss *Session) newModel(prev *selection.Model, tool string) *selection.Model {
	strategy := ss.strategy(tool)
	opts := []selection.Option{
		selection.WithContext(ss.ctx),
		selection.WithLogger(ss.log),
	}

	var m *selection.Model
	if prev == nil {
		m = selection.New(strategy, opts...)
	} else {
		m = selection.NewFrom(prev, strategy, opts...)
	}

	m.Subscribe(selection.StateChanged, ss.onState)
	m.Subscribe(selection.ProgressUpdated, func(e selection.Event) {
		percent := e.Percent
		ss.send(Event{Type: EventProgress, Percent: &percent})
	})
	m.Subscribe(selection.SelectionChanged, func(e selection.Event) {
		start := e.Start
		ss.send(Event{Type: EventSelection, Start: &start, Segments: e.Segments})
	})

	return m
}

func (ss *Session) strategy(tool string) selection.Strategy {
	if tool == selection.NameScissors {
		return selection.NewScissors(ss.searcher, ss.grid)
	}
	return selection.StraightLine{}
}

func (ss *Session) onState(e selection.Event) {
	old, state := e.Old, e.New
	ss.send(Event{Type: EventState, Old: &old, New: &state})

	// пока идет поиск, сессия не простаивает
	if ss.idle == nil {
		return
	}
	if state == selection.Processing {
		ss.idle.Pause()
	} else if old == selection.Processing {
		ss.idle.Start()
	}
}

// resetIdle перезапускает таймер простоя.
func (ss *Session) resetIdle() {
	if ss.idleTimeout <= 0 {
		return
	}

	ss.stopIdle()
	ss.idle = customTimer.NewTimer(ss.idleTimeout)
	if ss.model.State() != selection.Processing {
		ss.idle.Start()
	}
}

func (ss *Session) stopIdle() {
	if ss.idle != nil {
		ss.idle.Stop()
	}
}

func (ss *Session) send(event Event) {
	data, err := json.Marshal(event)
	if err != nil {
		ss.log.Error("error while marshaling event", slog.String("err", err.Error()))
		return
	}

	ss.client.Send(data)
}

func (ss *Session) sendError(op string, err error) {
	ss.send(Event{Type: EventError, Op: op, Error: err.Error()})
}

func (ss *Session) checkPoint(p *models.Point) error {
	if p == nil {
		return fmt.Errorf("%w: point is required", selection.ErrInvalidArgument)
	}
	if !ss.grid.Bounds().Contains(*p) {
		return fmt.Errorf("%w: %s", ErrOutOfBounds, p)
	}
	return nil
}
