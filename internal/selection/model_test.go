package selection

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/PIRSON21/scissors/internal/models"
	"github.com/PIRSON21/scissors/internal/scissors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	p0 = models.Point{X: 1, Y: 1}
	p1 = models.Point{X: 8, Y: 1}
	p2 = models.Point{X: 8, Y: 8}
	p3 = models.Point{X: 1, Y: 8}
)

func line(a, b models.Point) models.Segment { return models.NewLine(a, b) }

// gateStrategy - асинхронная стратегия, которая ждет release или отмены.
type gateStrategy struct {
	release   chan struct{}
	cancelled chan struct{}
	once      sync.Once
}

func newGate() *gateStrategy {
	return &gateStrategy{release: make(chan struct{}), cancelled: make(chan struct{})}
}

func (g *gateStrategy) Name() string { return "gate" }

func (g *gateStrategy) Async() bool { return true }

func (g *gateStrategy) Connect(ctx context.Context, from, to models.Point, progress scissors.ProgressFunc) (models.Segment, error) {
	progress(10)
	select {
	case <-g.release:
		progress(100)
		return models.NewLine(from, to), nil
	case <-ctx.Done():
		g.once.Do(func() { close(g.cancelled) })
		return models.Segment{}, scissors.ErrCancelled
	}
}

func (g *gateStrategy) Preview(from, to models.Point) models.Segment { return models.NewLine(from, to) }

func (g *gateStrategy) sealed() {}

// walledGraph не пускает в столбец wallX.
type walledGraph struct {
	*models.CostGrid
	wallX int
}

func (g walledGraph) Cost(a, b models.Point) int {
	if b.X == g.wallX {
		return scissors.Impassable
	}
	return g.CostGrid.Cost(a, b)
}

// recorder запоминает все события модели.
type recorder struct {
	events []Event
}

func record(m *Model) *recorder {
	r := &recorder{}
	for _, kind := range []EventKind{StateChanged, ProgressUpdated, SelectionChanged} {
		m.Subscribe(kind, func(e Event) { r.events = append(r.events, e) })
	}
	return r
}

func (r *recorder) count(kind EventKind) int {
	n := 0
	for _, e := range r.events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

func (r *recorder) reset() { r.events = nil }

// buildSelected строит замкнутое выделение p0 -> p1 -> p2 -> p0.
func buildSelected(t *testing.T) *Model {
	t.Helper()

	m := New(StraightLine{})
	for _, p := range []models.Point{p0, p1, p2} {
		require.NoError(t, m.AddPoint(p))
	}
	require.NoError(t, m.FinishSelection())
	require.Equal(t, Selected, m.State())

	return m
}

func scissorsStrategy(g scissors.Graph) *Scissors {
	return NewScissors(scissors.NewSearcher(scissors.WithProgressInterval(0)), g)
}

func TestModel_StraightLine(t *testing.T) {
	m := New(StraightLine{})
	assert.Equal(t, NoSelection, m.State())

	require.NoError(t, m.AddPoint(p0))
	assert.Equal(t, Selecting, m.State())
	assert.Equal(t, p0, m.Start())
	assert.Empty(t, m.Segments())
	assert.Equal(t, p0, m.LastPoint())

	require.NoError(t, m.AddPoint(p1))
	assert.Equal(t, Selecting, m.State())
	assert.Equal(t, []models.Segment{line(p0, p1)}, m.Segments())

	require.NoError(t, m.FinishSelection())
	assert.Equal(t, Selected, m.State())
	assert.Equal(t, []models.Segment{line(p0, p1), line(p1, p0)}, m.Segments())
	assert.Equal(t, p0, m.LastPoint())
}

func TestModel_Events(t *testing.T) {
	m := New(StraightLine{})
	r := record(m)

	require.NoError(t, m.AddPoint(p0))
	require.Len(t, r.events, 2)
	assert.Equal(t, Event{Kind: StateChanged, Old: NoSelection, New: Selecting}, r.events[0])
	assert.Equal(t, SelectionChanged, r.events[1].Kind)
	assert.Equal(t, p0, r.events[1].Start)

	r.reset()
	require.NoError(t, m.AddPoint(p1))
	require.Len(t, r.events, 1)
	assert.Equal(t, SelectionChanged, r.events[0].Kind)
	assert.Equal(t, []models.Segment{line(p0, p1)}, r.events[0].Segments)

	r.reset()
	require.NoError(t, m.FinishSelection())
	assert.Equal(t, 1, r.count(SelectionChanged))
	assert.Equal(t, 1, r.count(StateChanged))
}

func TestModel_Unsubscribe(t *testing.T) {
	m := New(StraightLine{})

	var first, second int
	unsubscribe := m.Subscribe(StateChanged, func(Event) { first++ })
	m.Subscribe(StateChanged, func(Event) { second++ })

	require.NoError(t, m.AddPoint(p0))
	unsubscribe()
	m.Reset()

	assert.Equal(t, 1, first)
	assert.Equal(t, 2, second)
}

func TestModel_EventSegmentsAreCopies(t *testing.T) {
	m := New(StraightLine{})

	var got []models.Segment
	m.Subscribe(SelectionChanged, func(e Event) { got = e.Segments })

	require.NoError(t, m.AddPoint(p0))
	require.NoError(t, m.AddPoint(p1))
	got[0].Points[0] = models.Point{X: 99, Y: 99}

	assert.Equal(t, []models.Segment{line(p0, p1)}, m.Segments())
}

func TestModel_UndoIsLeftInverse(t *testing.T) {
	cases := []struct {
		Name   string
		Setup  []models.Point
		Commit func(m *Model) error
	}{
		{
			Name:   "First point",
			Commit: func(m *Model) error { return m.AddPoint(p0) },
		},
		{
			Name:   "Second point",
			Setup:  []models.Point{p0},
			Commit: func(m *Model) error { return m.AddPoint(p1) },
		},
		{
			Name:   "Third point",
			Setup:  []models.Point{p0, p1},
			Commit: func(m *Model) error { return m.AddPoint(p2) },
		},
		{
			Name:   "Finish",
			Setup:  []models.Point{p0, p1, p2},
			Commit: func(m *Model) error { return m.FinishSelection() },
		},
	}

	for _, tc := range cases {
		t.Run(tc.Name, func(t *testing.T) {
			m := New(StraightLine{})
			for _, p := range tc.Setup {
				require.NoError(t, m.AddPoint(p))
			}

			state, start, segments := m.State(), m.Start(), m.Segments()

			require.NoError(t, tc.Commit(m))
			require.NoError(t, m.Undo())

			assert.Equal(t, state, m.State())
			assert.Equal(t, start, m.Start())
			assert.Equal(t, segments, m.Segments())
		})
	}
}

func TestModel_UndoChain(t *testing.T) {
	m := buildSelected(t)

	require.NoError(t, m.Undo())
	assert.Equal(t, Selecting, m.State())
	assert.Equal(t, []models.Segment{line(p0, p1), line(p1, p2)}, m.Segments())

	require.NoError(t, m.Undo())
	assert.Equal(t, []models.Segment{line(p0, p1)}, m.Segments())

	require.NoError(t, m.Undo())
	assert.Empty(t, m.Segments())
	assert.Equal(t, Selecting, m.State())

	require.NoError(t, m.Undo())
	assert.Equal(t, NoSelection, m.State())

	require.NoError(t, m.Undo())
	assert.Equal(t, NoSelection, m.State())
}

func TestModel_UndoSelectedAfterMove(t *testing.T) {
	m := buildSelected(t)
	closed := m.Segments()
	moved := models.Point{X: 5, Y: 9}
	require.NoError(t, m.MovePoint(2, moved))

	// первая отмена возвращает точку на место, выделение остается замкнутым
	rec := record(m)
	require.NoError(t, m.Undo())

	assert.Equal(t, Selected, m.State())
	assert.Equal(t, p0, m.Start())
	assert.Equal(t, closed, m.Segments())
	assert.Equal(t, 1, rec.count(SelectionChanged))
	assert.Equal(t, 0, rec.count(StateChanged))

	// вторая отмена размыкает выделение
	require.NoError(t, m.Undo())

	assert.Equal(t, Selecting, m.State())
	assert.Equal(t, []models.Segment{line(p0, p1), line(p1, p2)}, m.Segments())
	assert.Equal(t, p2, m.LastPoint())
}

func TestModel_UndoMovedStart(t *testing.T) {
	m := buildSelected(t)
	moved := models.Point{X: 0, Y: 0}
	require.NoError(t, m.MovePoint(0, moved))
	require.NoError(t, m.MovePoint(1, models.Point{X: 9, Y: 0}))

	require.NoError(t, m.Undo())
	assert.Equal(t, Selected, m.State())
	assert.Equal(t, moved, m.Start())
	assert.Equal(t, []models.Segment{line(moved, p1), line(p1, p2), line(p2, moved)}, m.Segments())

	require.NoError(t, m.Undo())
	require.NoError(t, m.Undo())

	assert.Equal(t, Selecting, m.State())
	assert.Equal(t, p0, m.Start())
	assert.Equal(t, []models.Segment{line(p0, p1), line(p1, p2)}, m.Segments())
}

func TestModel_FinishWithoutSegments(t *testing.T) {
	m := New(StraightLine{})
	require.NoError(t, m.AddPoint(p0))

	require.NoError(t, m.FinishSelection())

	assert.Equal(t, NoSelection, m.State())
	assert.Empty(t, m.history)
}

func TestModel_MovePoint(t *testing.T) {
	moved := models.Point{X: 4, Y: 0}

	cases := []struct {
		Name          string
		Index         int
		ExpectedStart models.Point
		Expected      []models.Segment
	}{
		{
			Name:          "Start point",
			Index:         0,
			ExpectedStart: moved,
			Expected:      []models.Segment{line(moved, p1), line(p1, p2), line(p2, moved)},
		},
		{
			Name:          "Interior point",
			Index:         1,
			ExpectedStart: p0,
			Expected:      []models.Segment{line(p0, moved), line(moved, p2), line(p2, p0)},
		},
		{
			Name:          "Last point",
			Index:         2,
			ExpectedStart: p0,
			Expected:      []models.Segment{line(p0, p1), line(p1, moved), line(moved, p0)},
		},
	}

	for _, tc := range cases {
		t.Run(tc.Name, func(t *testing.T) {
			m := buildSelected(t)
			r := record(m)
			historyLen := len(m.history)

			require.NoError(t, m.MovePoint(tc.Index, moved))

			assert.Equal(t, Selected, m.State())
			assert.Equal(t, tc.ExpectedStart, m.Start())
			assert.Equal(t, tc.Expected, m.Segments())
			assert.Equal(t, historyLen+1, len(m.history))
			assert.Equal(t, 1, r.count(SelectionChanged))
			assert.Equal(t, 0, r.count(StateChanged))

			closed := models.Outline{Start: m.Start(), Segments: m.Segments()}
			assert.True(t, closed.Closed())
		})
	}
}

func TestModel_MovePointErrors(t *testing.T) {
	t.Run("Index out of range", func(t *testing.T) {
		m := buildSelected(t)
		before := m.Segments()
		historyLen := len(m.history)

		assert.ErrorIs(t, m.MovePoint(-1, p3), ErrInvalidArgument)
		assert.ErrorIs(t, m.MovePoint(3, p3), ErrInvalidArgument)
		assert.Equal(t, before, m.Segments())
		assert.Equal(t, historyLen, len(m.history))
	})

	t.Run("Not selected", func(t *testing.T) {
		m := New(StraightLine{})
		require.NoError(t, m.AddPoint(p0))
		require.NoError(t, m.AddPoint(p1))

		assert.ErrorIs(t, m.MovePoint(0, p3), ErrInvalidState)
	})
}

func TestModel_LiveWire(t *testing.T) {
	m := New(StraightLine{})

	_, err := m.LiveWire(p1)
	assert.ErrorIs(t, err, ErrInvalidState)

	require.NoError(t, m.AddPoint(p0))
	r := record(m)

	seg, err := m.LiveWire(p3)
	require.NoError(t, err)
	assert.Equal(t, line(p0, p3), seg)

	require.NoError(t, m.AddPoint(p1))
	r.reset()
	historyLen := len(m.history)

	seg, err = m.LiveWire(p3)
	require.NoError(t, err)
	assert.Equal(t, line(p1, p3), seg)
	assert.Empty(t, r.events)
	assert.Equal(t, historyLen, len(m.history))
	assert.Equal(t, []models.Segment{line(p0, p1)}, m.Segments())
}

func TestModel_Reset(t *testing.T) {
	cases := []struct {
		Name  string
		Setup func(t *testing.T) *Model
	}{
		{
			Name:  "No selection",
			Setup: func(*testing.T) *Model { return New(StraightLine{}) },
		},
		{
			Name: "Selecting",
			Setup: func(t *testing.T) *Model {
				m := New(StraightLine{})
				require.NoError(t, m.AddPoint(p0))
				require.NoError(t, m.AddPoint(p1))
				return m
			},
		},
		{
			Name:  "Selected",
			Setup: buildSelected,
		},
		{
			Name: "Processing",
			Setup: func(t *testing.T) *Model {
				m := New(newGate())
				require.NoError(t, m.AddPoint(p0))
				require.NoError(t, m.AddPoint(p1))
				require.Equal(t, Processing, m.State())
				return m
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.Name, func(t *testing.T) {
			m := tc.Setup(t)

			m.Reset()

			assert.Equal(t, NoSelection, m.State())
			assert.Empty(t, m.Segments())
			assert.Empty(t, m.history)
			assert.Nil(t, m.Pending())

			require.NoError(t, m.Undo())
			assert.Equal(t, NoSelection, m.State())
		})
	}
}

func TestModel_InvalidState(t *testing.T) {
	m := New(newGate())

	assert.ErrorIs(t, m.FinishSelection(), ErrInvalidState)
	assert.ErrorIs(t, m.CancelProcessing(), ErrInvalidState)

	require.NoError(t, m.AddPoint(p0))
	require.NoError(t, m.AddPoint(p1))
	require.Equal(t, Processing, m.State())

	assert.ErrorIs(t, m.AddPoint(p2), ErrInvalidState)
	assert.ErrorIs(t, m.FinishSelection(), ErrInvalidState)
	assert.ErrorIs(t, m.MovePoint(0, p2), ErrInvalidState)

	_, err := m.LiveWire(p2)
	assert.ErrorIs(t, err, ErrInvalidState)

	require.NoError(t, m.CancelProcessing())

	sel := buildSelected(t)
	assert.ErrorIs(t, sel.AddPoint(p3), ErrInvalidState)
	assert.ErrorIs(t, sel.FinishSelection(), ErrInvalidState)
}

func TestModel_CancelProcessing(t *testing.T) {
	gate := newGate()
	m := New(gate)
	require.NoError(t, m.AddPoint(p0))
	r := record(m)

	require.NoError(t, m.AddPoint(p1))
	require.Equal(t, Processing, m.State())
	task := m.Pending()
	require.NotNil(t, task)

	m.ReportProgress(task, <-task.Progress())
	require.Equal(t, 1, r.count(ProgressUpdated))

	require.NoError(t, m.CancelProcessing())
	assert.Equal(t, Selecting, m.State())
	assert.Empty(t, m.Segments())
	assert.Nil(t, m.Pending())

	select {
	case <-gate.cancelled:
	case <-time.After(time.Second):
		t.Fatal("search was not cancelled")
	}

	// результат отмененной задачи не применяется
	outcome := <-task.Done()
	assert.ErrorIs(t, outcome.Err, scissors.ErrCancelled)
	m.Complete(task, outcome)
	m.ReportProgress(task, 50)

	assert.Equal(t, Selecting, m.State())
	assert.Empty(t, m.Segments())
	assert.Equal(t, 1, r.count(ProgressUpdated))
	assert.NoError(t, m.LastError())

	require.NoError(t, m.Undo())
	assert.Equal(t, NoSelection, m.State())
}

func TestModel_UndoWhileProcessing(t *testing.T) {
	m := New(newGate())
	require.NoError(t, m.AddPoint(p0))
	require.NoError(t, m.AddPoint(p1))

	require.NoError(t, m.Undo())

	assert.Equal(t, Selecting, m.State())
	assert.Empty(t, m.Segments())
	assert.Nil(t, m.Pending())
}

func TestModel_AsyncComplete(t *testing.T) {
	gate := newGate()
	m := New(gate)
	require.NoError(t, m.AddPoint(p0))
	require.NoError(t, m.AddPoint(p1))
	r := record(m)

	close(gate.release)
	require.NoError(t, m.Await(context.Background()))

	assert.Equal(t, Selecting, m.State())
	assert.Equal(t, []models.Segment{line(p0, p1)}, m.Segments())
	assert.Nil(t, m.Pending())
	assert.Equal(t, 2, r.count(ProgressUpdated))
	assert.Equal(t, 1, r.count(SelectionChanged))

	require.NoError(t, m.Undo())
	assert.Empty(t, m.Segments())
	assert.Equal(t, Selecting, m.State())
}

func TestModel_AwaitContext(t *testing.T) {
	m := New(newGate())
	require.NoError(t, m.Await(context.Background()))

	require.NoError(t, m.AddPoint(p0))
	require.NoError(t, m.AddPoint(p1))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	assert.ErrorIs(t, m.Await(ctx), context.DeadlineExceeded)
	assert.Equal(t, Processing, m.State())

	require.NoError(t, m.CancelProcessing())
}

func TestModel_Scissors(t *testing.T) {
	grid := models.NewUniformCostGrid(10, 10, 1)
	m := New(scissorsStrategy(grid))

	var progress []int
	m.Subscribe(ProgressUpdated, func(e Event) { progress = append(progress, e.Percent) })

	require.NoError(t, m.AddPoint(p0))
	require.NoError(t, m.AddPoint(p1))
	require.Equal(t, Processing, m.State())
	require.NoError(t, m.Await(context.Background()))

	require.NoError(t, m.AddPoint(p2))
	require.NoError(t, m.Await(context.Background()))

	require.NoError(t, m.FinishSelection())
	require.Equal(t, Processing, m.State())
	require.NoError(t, m.Await(context.Background()))

	assert.Equal(t, Selected, m.State())
	segments := m.Segments()
	require.Len(t, segments, 3)
	assert.Equal(t, 8, segments[0].Len())
	assert.True(t, (&models.Outline{Start: m.Start(), Segments: segments}).Closed())

	require.NotEmpty(t, progress)
	assert.Equal(t, 100, progress[len(progress)-1])

	seg, err := m.LiveWire(p3)
	require.NoError(t, err)
	assert.Equal(t, line(p0, p3), seg)
}

func TestModel_ScissorsPathNotFound(t *testing.T) {
	grid := models.NewUniformCostGrid(10, 10, 1)
	m := New(scissorsStrategy(walledGraph{CostGrid: grid, wallX: 5}))

	var states []Event
	m.Subscribe(StateChanged, func(e Event) { states = append(states, e) })

	require.NoError(t, m.AddPoint(p0))
	require.NoError(t, m.AddPoint(p1))

	err := m.Await(context.Background())
	assert.ErrorIs(t, err, scissors.ErrPathNotFound)
	assert.ErrorIs(t, m.LastError(), scissors.ErrPathNotFound)

	assert.Equal(t, Selecting, m.State())
	assert.Empty(t, m.Segments())
	require.NotEmpty(t, states)
	assert.Equal(t, Event{Kind: StateChanged, Old: Processing, New: Selecting}, states[len(states)-1])
}

func TestModel_ScissorsFailedFinish(t *testing.T) {
	grid := models.NewUniformCostGrid(10, 10, 1)
	m := New(scissorsStrategy(walledGraph{CostGrid: grid, wallX: 5}))

	require.NoError(t, m.AddPoint(p0))
	require.NoError(t, m.AddPoint(p3))
	require.NoError(t, m.Await(context.Background()))

	require.NoError(t, m.FinishSelection())
	require.NoError(t, m.Await(context.Background()))
	require.Equal(t, Selected, m.State())

	require.NoError(t, m.Undo())
	require.NoError(t, m.AddPoint(models.Point{X: 9, Y: 9}))

	assert.ErrorIs(t, m.Await(context.Background()), scissors.ErrPathNotFound)
	assert.Equal(t, Selecting, m.State())
	assert.Len(t, m.Segments(), 1)
}

func TestModel_ContextCancelsSearch(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	gate := newGate()
	m := New(gate, WithContext(ctx))

	require.NoError(t, m.AddPoint(p0))
	require.NoError(t, m.AddPoint(p1))
	cancel()

	err := m.Await(context.Background())
	assert.ErrorIs(t, err, scissors.ErrCancelled)
	assert.Equal(t, Selecting, m.State())
}

func TestNewFrom(t *testing.T) {
	t.Run("Keeps selection", func(t *testing.T) {
		prev := buildSelected(t)

		m := NewFrom(prev, scissorsStrategy(models.NewUniformCostGrid(10, 10, 1)))

		assert.Equal(t, Selected, m.State())
		assert.Equal(t, prev.Start(), m.Start())
		assert.Equal(t, prev.Segments(), m.Segments())
		assert.Equal(t, NameScissors, m.Strategy().Name())

		require.NoError(t, m.Undo())
		assert.Len(t, m.Segments(), 2)
		assert.Len(t, prev.Segments(), 3)
		assert.Equal(t, Selected, prev.State())
	})

	t.Run("Processing becomes selecting", func(t *testing.T) {
		prev := New(newGate())
		require.NoError(t, prev.AddPoint(p0))
		require.NoError(t, prev.AddPoint(p1))
		require.Equal(t, Processing, prev.State())

		m := NewFrom(prev, StraightLine{})
		require.NoError(t, prev.CancelProcessing())

		assert.Equal(t, Selecting, m.State())
		assert.Nil(t, m.Pending())
		assert.Empty(t, m.Segments())

		require.NoError(t, m.AddPoint(p1))
		assert.Equal(t, []models.Segment{line(p0, p1)}, m.Segments())
	})

	t.Run("Independent history", func(t *testing.T) {
		prev := New(StraightLine{})
		require.NoError(t, prev.AddPoint(p0))
		require.NoError(t, prev.AddPoint(p1))

		m := NewFrom(prev, StraightLine{})
		require.NoError(t, m.AddPoint(p2))
		require.NoError(t, m.Undo())
		require.NoError(t, m.Undo())

		assert.Empty(t, m.Segments())
		assert.Equal(t, []models.Segment{line(p0, p1)}, prev.Segments())
	})
}

func TestState_String(t *testing.T) {
	cases := []struct {
		Name     string
		State    State
		Expected string
	}{
		{Name: "No selection", State: NoSelection, Expected: "NO_SELECTION"},
		{Name: "Selecting", State: Selecting, Expected: "SELECTING"},
		{Name: "Selected", State: Selected, Expected: "SELECTED"},
		{Name: "Processing", State: Processing, Expected: "PROCESSING"},
		{Name: "Unknown", State: State(42), Expected: "UNKNOWN"},
	}

	for _, tc := range cases {
		t.Run(tc.Name, func(t *testing.T) {
			assert.Equal(t, tc.Expected, tc.State.String())
		})
	}
}

func TestState_Text(t *testing.T) {
	for _, s := range []State{NoSelection, Selecting, Selected, Processing} {
		text, err := s.MarshalText()
		require.NoError(t, err)

		var got State
		require.NoError(t, got.UnmarshalText(text))
		assert.Equal(t, s, got)
	}

	var s State
	assert.Error(t, s.UnmarshalText([]byte("DONE")))
}
