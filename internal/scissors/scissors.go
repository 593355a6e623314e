// Package scissors ищет путь наименьшей стоимости между двумя пикселями
// изображения ("intelligent scissors").
//
// Граф задан неявно: вершины - пиксели, ребра соединяют пиксель с 8 соседями,
// вес ребра возвращает Graph.Cost. Поиск - алгоритм Дейкстры на minqueue.MinQueue
// с остановкой, как только извлечен конечный пиксель.
package scissors

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/PIRSON21/scissors/internal/lib/logger/handlers/slogdiscard"
	"github.com/PIRSON21/scissors/internal/models"
	"golang.org/x/sync/semaphore"
)

// Impassable - вес ребра, по которому нельзя пройти.
const Impassable = math.MaxInt

var (
	// ErrPathNotFound - очередь опустела, а конечный пиксель так и не достигнут.
	ErrPathNotFound = errors.New("scissors: path not found")

	// ErrCancelled - поиск прерван через контекст.
	ErrCancelled = errors.New("scissors: search cancelled")

	// ErrNegativeCost - функция стоимости вернула отрицательный вес.
	ErrNegativeCost = errors.New("scissors: negative edge cost")

	// ErrOutOfBounds - начальная или конечная точка вне изображения.
	ErrOutOfBounds = errors.New("scissors: point out of bounds")
)

// Graph - граф стоимостей, который предоставляет изображение.
// Обе функции должны быть чистыми: поиск вызывает их из своей горутины.
type Graph interface {
	Bounds() models.Bounds
	Cost(a, b models.Point) int
}

// ProgressFunc получает процент обработанных пикселей (0-100).
// Вызывается из горутины поиска.
type ProgressFunc func(percent int)

const (
	defaultProgressInterval = 100 * time.Millisecond
	defaultConcurrency      = 4
)

// Searcher хранит общие для всех поисков ресурсы: ограничение на число
// одновременных поисков и частоту отчетов о прогрессе.
type Searcher struct {
	sem      *semaphore.Weighted
	interval time.Duration
	log      *slog.Logger
}

// Option настраивает Searcher.
type Option func(*Searcher)

// WithConcurrency ограничивает число одновременно идущих поисков.
func WithConcurrency(n int64) Option {
	return func(s *Searcher) {
		if n > 0 {
			s.sem = semaphore.NewWeighted(n)
		}
	}
}

// WithProgressInterval задает минимальный интервал между отчетами о прогрессе.
// Ноль снимает ограничение.
func WithProgressInterval(d time.Duration) Option {
	return func(s *Searcher) {
		if d >= 0 {
			s.interval = d
		}
	}
}

// WithLogger задает логер.
func WithLogger(log *slog.Logger) Option {
	return func(s *Searcher) {
		if log != nil {
			s.log = log
		}
	}
}

// NewSearcher создает Searcher.
func NewSearcher(opts ...Option) *Searcher {
	s := &Searcher{
		sem:      semaphore.NewWeighted(defaultConcurrency),
		interval: defaultProgressInterval,
		log:      slogdiscard.NewDiscardLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Find ищет путь наименьшей стоимости от from до to.
//
// Возвращает сегмент со всеми пикселями пути, включая from и to.
// Поиск проверяет ctx перед каждым извлечением из очереди и при отмене
// возвращает ErrCancelled; частичный результат не возвращается.
func (s *Searcher) Find(ctx context.Context, g Graph, from, to models.Point, progress ProgressFunc) (models.Segment, error) {
	const op = "scissors.Find"

	bounds := g.Bounds()
	if !bounds.Contains(from) || !bounds.Contains(to) {
		return models.Segment{}, fmt.Errorf("%s: %w: %s -> %s in %dx%d", op, ErrOutOfBounds, from, to, bounds.Width, bounds.Height)
	}

	if err := s.sem.Acquire(ctx, 1); err != nil {
		return models.Segment{}, fmt.Errorf("%s: waiting for search slot: %w", op, ErrCancelled)
	}
	defer s.sem.Release(1)

	log := s.log.With(
		slog.String("op", op),
		slog.String("from", from.String()),
		slog.String("to", to.String()),
	)

	started := time.Now()
	log.Debug("search started", slog.Int("area", bounds.Area()))

	t := newTask(g, from, to, newReporter(progress, bounds.Area(), s.interval))
	path, err := t.run(ctx)
	if err != nil {
		log.Debug("search stopped",
			slog.String("err", err.Error()),
			slog.Uint64("settled", t.settled.GetCardinality()),
			slog.Duration("elapsed", time.Since(started)),
		)
		return models.Segment{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Debug("search finished",
		slog.Int("length", len(path)),
		slog.Uint64("settled", t.settled.GetCardinality()),
		slog.Duration("elapsed", time.Since(started)),
	)

	return models.Segment{Points: path}, nil
}
