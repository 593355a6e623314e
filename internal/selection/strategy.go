package selection

import (
	"context"

	"github.com/PIRSON21/scissors/internal/models"
	"github.com/PIRSON21/scissors/internal/scissors"
)

// Strategy строит сегмент между двумя опорными точками.
// Варианты закрыты: StraightLine и *Scissors.
type Strategy interface {
	// Name - имя инструмента для клиента.
	Name() string

	// Async сообщает, что Connect может идти долго и его нужно запускать в фоне.
	Async() bool

	// Connect строит сегмент от from до to. progress может быть nil.
	Connect(ctx context.Context, from, to models.Point, progress scissors.ProgressFunc) (models.Segment, error)

	// Preview быстро строит сегмент для отрисовки и перемещения точек.
	Preview(from, to models.Point) models.Segment

	sealed()
}

const (
	NamePointToPoint = "point-to-point"
	NameScissors     = "scissors"
)

// StraightLine соединяет точки прямой.
type StraightLine struct{}

func (StraightLine) Name() string { return NamePointToPoint }

func (StraightLine) Async() bool { return false }

func (StraightLine) Connect(_ context.Context, from, to models.Point, _ scissors.ProgressFunc) (models.Segment, error) {
	return models.NewLine(from, to), nil
}

func (StraightLine) Preview(from, to models.Point) models.Segment {
	return models.NewLine(from, to)
}

func (StraightLine) sealed() {}

// Scissors соединяет точки путем наименьшей стоимости по графу изображения.
type Scissors struct {
	searcher *scissors.Searcher
	graph    scissors.Graph
}

// NewScissors создает стратегию поверх общего Searcher и графа стоимостей изображения.
func NewScissors(searcher *scissors.Searcher, graph scissors.Graph) *Scissors {
	return &Scissors{searcher: searcher, graph: graph}
}

func (s *Scissors) Name() string { return NameScissors }

func (s *Scissors) Async() bool { return true }

func (s *Scissors) Connect(ctx context.Context, from, to models.Point, progress scissors.ProgressFunc) (models.Segment, error) {
	return s.searcher.Find(ctx, s.graph, from, to, progress)
}

// Preview для ножниц - прямая: поиск на каждое движение курсора слишком дорог.
func (s *Scissors) Preview(from, to models.Point) models.Segment {
	return models.NewLine(from, to)
}

func (s *Scissors) sealed() {}
