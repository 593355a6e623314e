package models

import (
	"fmt"
	"time"
)

// Point - координаты пикселя на изображении.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// String нужна для логов.
func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Bounds - размеры изображения в пикселях.
type Bounds struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Contains сообщает, лежит ли p внутри изображения.
func (b Bounds) Contains(p Point) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < b.Width && p.Y < b.Height
}

// Area возвращает количество пикселей.
func (b Bounds) Area() int {
	if b.Width <= 0 || b.Height <= 0 {
		return 0
	}
	return b.Width * b.Height
}

// Segment - направленная последовательность точек от Start до End.
// Для прямой это две крайние точки, для пути по графу - все пиксели пути.
type Segment struct {
	Points []Point `json:"points"`
}

// NewLine создает прямой отрезок от a до b.
func NewLine(a, b Point) Segment {
	return Segment{Points: []Point{a, b}}
}

// Start возвращает первую точку сегмента.
func (s Segment) Start() Point {
	return s.Points[0]
}

// End возвращает последнюю точку сегмента.
func (s Segment) End() Point {
	return s.Points[len(s.Points)-1]
}

// Len возвращает количество точек.
func (s Segment) Len() int { return len(s.Points) }

// Clone копирует сегмент, чтобы вызывающий не мог изменить чужой срез.
func (s Segment) Clone() Segment {
	points := make([]Point, len(s.Points))
	copy(points, s.Points)
	return Segment{Points: points}
}

// Outline - сохраненное замкнутое выделение.
type Outline struct {
	ID        int       `json:"id,omitempty"`
	Name      string    `json:"name" validate:"required,min=1,max=64"`
	Width     int       `json:"width" validate:"required,gte=1"`
	Height    int       `json:"height" validate:"required,gte=1"`
	Start     Point     `json:"start"`
	Segments  []Segment `json:"segments" validate:"required,min=2"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}

// Closed проверяет, что сегменты выделения идут подряд от Start и возвращаются в Start.
func (o *Outline) Closed() bool {
	if len(o.Segments) == 0 {
		return false
	}

	at := o.Start
	for _, seg := range o.Segments {
		if seg.Len() == 0 || seg.Start() != at {
			return false
		}
		at = seg.End()
	}

	return at == o.Start
}
