package scissors

import (
	"context"
	"fmt"
	"math"

	"github.com/PIRSON21/scissors/internal/lib/minqueue"
	"github.com/PIRSON21/scissors/internal/models"
	"github.com/RoaringBitmap/roaring/v2"
)

// Направления движения по часовой стрелке, начиная с севера.
// Порядок фиксирован: при равной стоимости побеждает первый найденный путь.
var (
	dx = []int{0, 1, 1, 1, 0, -1, -1, -1}
	dy = []int{-1, -1, 0, 1, 1, 1, 0, -1}
)

// task - состояние одного поиска. Принадлежит горутине поиска целиком.
type task struct {
	g        Graph
	bounds   models.Bounds
	from, to models.Point
	queue    *minqueue.MinQueue[models.Point] // граница: лучшая известная дистанция
	prev     map[models.Point]models.Point
	settled  *roaring.Bitmap // пиксели с окончательной дистанцией
	progress *reporter
}

func newTask(g Graph, from, to models.Point, progress *reporter) *task {
	return &task{
		g:        g,
		bounds:   g.Bounds(),
		from:     from,
		to:       to,
		queue:    minqueue.New[models.Point](64),
		prev:     make(map[models.Point]models.Point),
		settled:  roaring.New(),
		progress: progress,
	}
}

// id переводит точку в номер пикселя для bitmap.
func (t *task) id(p models.Point) uint32 {
	return uint32(p.Y*t.bounds.Width + p.X)
}

// run выполняет поиск и возвращает путь от from до to.
func (t *task) run(ctx context.Context) ([]models.Point, error) {
	t.queue.AddOrUpdate(t.from, 0)

	for !t.queue.IsEmpty() {
		if ctx.Err() != nil {
			return nil, ErrCancelled
		}

		d, _ := t.queue.PeekPriority()
		u, _ := t.queue.RemoveMin()
		t.settled.Add(t.id(u))
		t.progress.report(t.settled.GetCardinality())

		if u == t.to {
			t.progress.done()
			return t.path(), nil
		}

		if err := t.relax(u, d); err != nil {
			return nil, err
		}
	}

	return nil, ErrPathNotFound
}

// relax пробует улучшить дистанцию до соседей u через u.
func (t *task) relax(u models.Point, d int) error {
	for i := range dx {
		v := models.Point{X: u.X + dx[i], Y: u.Y + dy[i]}
		if !t.bounds.Contains(v) || t.settled.Contains(t.id(v)) {
			continue
		}

		w := t.g.Cost(u, v)
		if w < 0 {
			return fmt.Errorf("%w: %s -> %s weight=%d", ErrNegativeCost, u, v, w)
		}
		if w == Impassable || w > math.MaxInt-d {
			continue
		}

		candidate := d + w
		if known, ok := t.queue.Priority(v); ok && candidate >= known {
			continue
		}

		t.queue.AddOrUpdate(v, candidate)
		t.prev[v] = u
	}

	return nil
}

// path восстанавливает путь по ссылкам на предшественников.
func (t *task) path() []models.Point {
	path := []models.Point{t.to}
	for at := t.to; at != t.from; {
		at = t.prev[at]
		path = append(path, at)
	}

	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	return path
}
