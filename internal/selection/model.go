// Package selection - машина состояний выделения контура на изображении.
//
// Model не потокобезопасна: все методы вызываются из одной управляющей
// горутины. Фоновый поиск общается с ней только через каналы Task.
package selection

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/PIRSON21/scissors/internal/lib/logger/handlers/slogdiscard"
	"github.com/PIRSON21/scissors/internal/models"
)

var (
	// ErrInvalidState - операция запрещена в текущем состоянии.
	ErrInvalidState = errors.New("selection: invalid state")

	// ErrInvalidArgument - индекс точки вне диапазона.
	ErrInvalidArgument = errors.New("selection: invalid argument")
)

// snapshot - состояние модели до изменения, для Undo.
type snapshot struct {
	state    State
	start    models.Point
	segments []models.Segment
}

// Model хранит выделение: начальную точку, зафиксированные сегменты и историю отмены.
type Model struct {
	state    State
	start    models.Point
	segments []models.Segment
	history  []snapshot

	strategy Strategy
	pending  *Task
	lastErr  error

	listeners map[EventKind][]subscription
	nextSubID int

	ctx context.Context
	log *slog.Logger
}

// Option настраивает Model.
type Option func(*Model)

// WithLogger задает логер.
func WithLogger(log *slog.Logger) Option {
	return func(m *Model) {
		if log != nil {
			m.log = log
		}
	}
}

// WithContext задает родительский контекст фоновых поисков.
// Отмена ctx отменяет идущий поиск.
func WithContext(ctx context.Context) Option {
	return func(m *Model) {
		if ctx != nil {
			m.ctx = ctx
		}
	}
}

// New создает пустую модель с заданной стратегией.
func New(strategy Strategy, opts ...Option) *Model {
	m := &Model{
		state:     NoSelection,
		strategy:  strategy,
		listeners: make(map[EventKind][]subscription),
		ctx:       context.Background(),
		log:       slogdiscard.NewDiscardLogger(),
	}
	for _, opt := range opts {
		opt(m)
	}

	return m
}

// NewFrom создает модель с новой стратегией и текущим выделением prev:
// начальной точкой, сегментами и историей отмены. Идущий в prev поиск не переносится,
// состояние PROCESSING становится SELECTING. Отменить поиск в prev должен вызывающий.
func NewFrom(prev *Model, strategy Strategy, opts ...Option) *Model {
	m := New(strategy, opts...)

	m.start = prev.start
	m.segments = cloneSegments(prev.segments)
	m.history = make([]snapshot, len(prev.history))
	for i, s := range prev.history {
		m.history[i] = snapshot{state: s.state, start: s.start, segments: cloneSegments(s.segments)}
	}

	m.state = prev.state
	if m.state == Processing {
		m.state = Selecting
	}

	return m
}

// State возвращает текущее состояние.
func (m *Model) State() State { return m.state }

// Start возвращает начальную точку выделения.
func (m *Model) Start() models.Point { return m.start }

// Strategy возвращает стратегию построения сегментов.
func (m *Model) Strategy() Strategy { return m.strategy }

// Pending возвращает идущий поиск или nil.
func (m *Model) Pending() *Task { return m.pending }

// LastError возвращает ошибку последнего неудачного поиска.
func (m *Model) LastError() error { return m.lastErr }

// Segments возвращает копию зафиксированных сегментов.
func (m *Model) Segments() []models.Segment {
	return cloneSegments(m.segments)
}

// LastPoint возвращает конец последнего сегмента или начальную точку, если сегментов нет.
func (m *Model) LastPoint() models.Point {
	if len(m.segments) == 0 {
		return m.start
	}
	return m.segments[len(m.segments)-1].End()
}

// AddPoint добавляет опорную точку.
//
// В NO_SELECTION точка становится началом выделения. В SELECTING точка соединяется
// с последней: синхронная стратегия сразу фиксирует сегмент, асинхронная запускает
// поиск и переводит модель в PROCESSING.
func (m *Model) AddPoint(p models.Point) error {
	const op = "selection.AddPoint"

	switch m.state {
	case NoSelection:
		m.pushHistory()
		m.start = p
		m.segments = nil
		m.setState(Selecting)
		m.emitSelection()
		return nil

	case Selecting:
		return m.connect(op, p, false)

	default:
		return fmt.Errorf("%s: %w: %s", op, ErrInvalidState, m.state)
	}
}

// FinishSelection замыкает выделение сегментом от последней точки до начальной.
// Без сегментов выделение сбрасывается.
func (m *Model) FinishSelection() error {
	const op = "selection.FinishSelection"

	if m.state != Selecting {
		return fmt.Errorf("%s: %w: %s", op, ErrInvalidState, m.state)
	}

	if len(m.segments) == 0 {
		m.Reset()
		return nil
	}

	return m.connect(op, m.start, true)
}

// connect строит сегмент от последней точки до to.
func (m *Model) connect(op string, to models.Point, closing bool) error {
	from := m.LastPoint()

	if m.strategy.Async() {
		m.lastErr = nil
		m.pending = m.launch(from, to, closing)
		m.log.Debug("search launched",
			slog.String("op", op),
			slog.String("from", from.String()),
			slog.String("to", to.String()),
		)
		m.setState(Processing)
		return nil
	}

	seg, err := m.strategy.Connect(m.ctx, from, to, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	m.commit(seg, closing)
	return nil
}

// commit фиксирует сегмент и сохраняет состояние до него в истории.
func (m *Model) commit(seg models.Segment, closing bool) {
	m.pushHistory()
	m.segments = append(m.segments, seg)

	m.emitSelection()
	if closing {
		m.setState(Selected)
	} else {
		m.setState(Selecting)
	}
}

// ReportProgress передает прогресс поиска t подписчикам.
// Отчеты устаревших задач игнорируются.
func (m *Model) ReportProgress(t *Task, percent int) {
	if t == nil || t != m.pending {
		return
	}
	m.emit(Event{Kind: ProgressUpdated, Percent: percent})
}

// Complete применяет результат поиска t. Результаты устаревших задач игнорируются.
func (m *Model) Complete(t *Task, outcome Outcome) {
	if t == nil || t != m.pending {
		return
	}

	m.pending = nil
	t.cancel()

	if outcome.Err != nil {
		m.lastErr = outcome.Err
		m.log.Debug("search failed",
			slog.String("from", t.From.String()),
			slog.String("to", t.To.String()),
			slog.String("err", outcome.Err.Error()),
		)
		m.setState(Selecting)
		return
	}

	m.commit(outcome.Segment, t.closing)
}

// Await ждет окончания идущего поиска, применяя прогресс и результат.
// Возвращает ошибку поиска или ошибку ctx. Без идущего поиска сразу возвращает nil.
func (m *Model) Await(ctx context.Context) error {
	t := m.pending
	if t == nil {
		return nil
	}

	for {
		select {
		case percent := <-t.progress:
			m.ReportProgress(t, percent)
		case outcome := <-t.done:
			m.drainProgress(t)
			m.Complete(t, outcome)
			return outcome.Err
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// drainProgress доставляет отчеты, которые пришли раньше результата.
func (m *Model) drainProgress(t *Task) {
	for {
		select {
		case percent := <-t.progress:
			m.ReportProgress(t, percent)
		default:
			return
		}
	}
}

// CancelProcessing отменяет идущий поиск и возвращает модель в SELECTING
// без нового сегмента, сколько бы поиск ни успел пройти.
func (m *Model) CancelProcessing() error {
	const op = "selection.CancelProcessing"

	if m.state != Processing {
		return fmt.Errorf("%s: %w: %s", op, ErrInvalidState, m.state)
	}

	m.dropPending()
	m.log.Debug("search cancelled", slog.String("op", op))
	m.setState(Selecting)

	return nil
}

func (m *Model) dropPending() {
	if m.pending != nil {
		m.pending.cancel()
		m.pending = nil
	}
}

// LiveWire возвращает сегмент предпросмотра от последней точки до cursor.
// Модель не меняется.
func (m *Model) LiveWire(cursor models.Point) (models.Segment, error) {
	const op = "selection.LiveWire"

	if m.state == NoSelection || m.state == Processing {
		return models.Segment{}, fmt.Errorf("%s: %w: %s", op, ErrInvalidState, m.state)
	}

	return m.strategy.Preview(m.LastPoint(), cursor), nil
}

// MovePoint перемещает опорную точку index замкнутого выделения в p.
// Соседние сегменты перестраиваются, выделение остается замкнутым.
// Перемещение отменяется через Undo.
func (m *Model) MovePoint(index int, p models.Point) error {
	const op = "selection.MovePoint"

	if m.state != Selected {
		return fmt.Errorf("%s: %w: %s", op, ErrInvalidState, m.state)
	}

	n := len(m.segments)
	if index < 0 || index >= n {
		return fmt.Errorf("%s: %w: index %d not in [0, %d)", op, ErrInvalidArgument, index, n)
	}

	m.pushHistory()

	last := n - 1
	switch index {
	case 0:
		m.start = p
		m.segments[0] = m.strategy.Preview(p, m.segments[0].End())
		m.segments[last] = m.strategy.Preview(m.segments[last].Start(), p)
	case last:
		m.segments[last-1] = m.strategy.Preview(m.segments[last-1].Start(), p)
		m.segments[last] = m.strategy.Preview(p, m.start)
	default:
		m.segments[index-1] = m.strategy.Preview(m.segments[index-1].Start(), p)
		m.segments[index] = m.strategy.Preview(p, m.segments[index].End())
	}

	m.emitSelection()
	return nil
}

// Undo отменяет последнее действие.
//
// В PROCESSING отменяет поиск. В SELECTED отменяет последнее перемещение точки,
// а если его не было, размыкает выделение. В SELECTING восстанавливает состояние
// из истории, а без истории убирает последний сегмент.
func (m *Model) Undo() error {
	switch m.state {
	case NoSelection:
		return nil

	case Processing:
		return m.CancelProcessing()

	case Selected:
		s, ok := m.popHistory()
		if ok && s.state == Selected {
			// отмена перемещения точки
			m.start = s.start
			m.segments = s.segments
			m.emitSelection()
			return nil
		}
		m.segments = m.segments[:len(m.segments)-1]
		m.emitSelection()
		m.setState(Selecting)
		return nil
	}

	if s, ok := m.popHistory(); ok {
		m.start = s.start
		m.segments = s.segments
		m.emitSelection()
		m.setState(s.state)
		return nil
	}

	if len(m.segments) == 0 {
		m.Reset()
		return nil
	}

	m.segments = m.segments[:len(m.segments)-1]
	m.emitSelection()

	return nil
}

// Reset отменяет поиск и очищает выделение вместе с историей.
func (m *Model) Reset() {
	m.dropPending()

	m.start = models.Point{}
	m.segments = nil
	m.history = nil
	m.lastErr = nil

	m.emitSelection()
	m.setState(NoSelection)
}

func (m *Model) setState(s State) {
	if m.state == s {
		return
	}

	old := m.state
	m.state = s
	m.emit(Event{Kind: StateChanged, Old: old, New: s})
}

func (m *Model) pushHistory() {
	m.history = append(m.history, snapshot{
		state:    m.state,
		start:    m.start,
		segments: cloneSegments(m.segments),
	})
}

func (m *Model) popHistory() (snapshot, bool) {
	if len(m.history) == 0 {
		return snapshot{}, false
	}

	s := m.history[len(m.history)-1]
	m.history = m.history[:len(m.history)-1]
	return s, true
}

func cloneSegments(segments []models.Segment) []models.Segment {
	if segments == nil {
		return nil
	}

	out := make([]models.Segment, len(segments))
	for i, s := range segments {
		out[i] = s.Clone()
	}
	return out
}
