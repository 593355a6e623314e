// Package minqueue реализует очередь с приоритетом по ключу (indexed min-heap).
package minqueue

import "errors"

// ErrEmptyQueue возвращается при обращении к минимуму пустой очереди.
var ErrEmptyQueue = errors.New("minqueue: queue is empty")

// entry - пара ключ/приоритет, хранящаяся в куче.
type entry[K comparable] struct {
	key      K
	priority int
}

// MinQueue - очередь различных ключей с целочисленными приоритетами.
//
// Куча хранится в срезе heap, а index хранит позицию каждого ключа в куче:
// index[heap[i].key] == i для всех i и len(index) == len(heap).
// Это позволяет менять приоритет ключа за O(log n) вместо поиска за O(n).
//
// MinQueue не потокобезопасна.
type MinQueue[K comparable] struct {
	heap  []entry[K]
	index map[K]int
}

// New создает пустую очередь с заданной начальной емкостью.
func New[K comparable](capacity int) *MinQueue[K] {
	if capacity < 0 {
		capacity = 0
	}

	return &MinQueue[K]{
		heap:  make([]entry[K], 0, capacity),
		index: make(map[K]int, capacity),
	}
}

// Len возвращает количество элементов в очереди.
func (q *MinQueue[K]) Len() int { return len(q.heap) }

// IsEmpty сообщает, пуста ли очередь.
func (q *MinQueue[K]) IsEmpty() bool { return len(q.heap) == 0 }

// Contains сообщает, есть ли key в очереди.
func (q *MinQueue[K]) Contains(key K) bool {
	_, ok := q.index[key]
	return ok
}

// Priority возвращает текущий приоритет key.
func (q *MinQueue[K]) Priority(key K) (int, bool) {
	i, ok := q.index[key]
	if !ok {
		return 0, false
	}
	return q.heap[i].priority, true
}

// PeekKey возвращает ключ с минимальным приоритетом, не удаляя его.
// При равенстве приоритетов возвращается любой из них.
func (q *MinQueue[K]) PeekKey() (K, error) {
	if len(q.heap) == 0 {
		var zero K
		return zero, ErrEmptyQueue
	}
	return q.heap[0].key, nil
}

// PeekPriority возвращает минимальный приоритет в очереди.
func (q *MinQueue[K]) PeekPriority() (int, error) {
	if len(q.heap) == 0 {
		return 0, ErrEmptyQueue
	}
	return q.heap[0].priority, nil
}

// AddOrUpdate добавляет key с приоритетом priority, а если key уже есть в очереди,
// меняет его приоритет.
func (q *MinQueue[K]) AddOrUpdate(key K, priority int) {
	i, ok := q.index[key]
	if !ok {
		q.heap = append(q.heap, entry[K]{key: key, priority: priority})
		q.index[key] = len(q.heap) - 1
		q.siftUp(len(q.heap) - 1)
		return
	}

	old := q.heap[i].priority
	q.heap[i] = entry[K]{key: key, priority: priority}

	switch {
	case priority < old:
		q.siftUp(i)
	case priority > old:
		q.siftDown(i)
	}
}

// RemoveMin удаляет и возвращает ключ с минимальным приоритетом.
// При равенстве приоритетов удаляется любой из них.
func (q *MinQueue[K]) RemoveMin() (K, error) {
	n := len(q.heap)
	if n == 0 {
		var zero K
		return zero, ErrEmptyQueue
	}

	root := q.heap[0].key
	last := q.heap[n-1]

	q.heap[n-1] = entry[K]{}
	q.heap = q.heap[:n-1]
	delete(q.index, root)

	if n-1 > 0 {
		// индекс перемещенного ключа исправляется до просеивания
		q.heap[0] = last
		q.index[last.key] = 0
		q.siftDown(0)
	}

	return root, nil
}

// Clear удаляет все элементы, сохраняя выделенную память.
func (q *MinQueue[K]) Clear() {
	clear(q.heap)
	q.heap = q.heap[:0]
	clear(q.index)
}

// swap меняет местами элементы i и j кучи вместе с их записями в index.
// Это единственное место, где элементы кучи меняют позицию.
func (q *MinQueue[K]) swap(i, j int) {
	q.heap[i], q.heap[j] = q.heap[j], q.heap[i]
	q.index[q.heap[i].key] = i
	q.index[q.heap[j].key] = j
}

// siftUp поднимает элемент i, пока он меньше родителя.
func (q *MinQueue[K]) siftUp(i int) {
	for i > 0 {
		p := (i - 1) / 2
		if q.heap[i].priority >= q.heap[p].priority {
			return
		}
		q.swap(i, p)
		i = p
	}
}

// siftDown опускает элемент i, пока он больше наименьшего из потомков.
func (q *MinQueue[K]) siftDown(i int) {
	n := len(q.heap)
	for {
		l := 2*i + 1
		if l >= n {
			return
		}
		best := l
		if r := l + 1; r < n && q.heap[r].priority < q.heap[l].priority {
			best = r
		}
		if q.heap[best].priority >= q.heap[i].priority {
			return
		}
		q.swap(i, best)
		i = best
	}
}
