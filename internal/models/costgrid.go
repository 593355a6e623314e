package models

import (
	"errors"
	"fmt"
	"math"
)

// ErrBadCostGrid возвращается, если веса не соответствуют размеру изображения.
var ErrBadCostGrid = errors.New("models: bad cost grid")

// maxDiagonalWeight - наибольший вес, для которого диагональный шаг не переполняет int.
const maxDiagonalWeight = math.MaxInt / 14

// CostGrid - веса пикселей, посчитанные снаружи (по градиенту, цвету и т.п.).
// Веса хранятся построчно: Weights[y*Width+x].
type CostGrid struct {
	Width   int   `json:"width" validate:"required,gte=1,lte=4096"`
	Height  int   `json:"height" validate:"required,gte=1,lte=4096"`
	Weights []int `json:"weights" validate:"required,dive,gte=0"`
}

// NewUniformCostGrid создает сетку с одинаковым весом всех пикселей.
func NewUniformCostGrid(width, height, weight int) *CostGrid {
	weights := make([]int, width*height)
	for i := range weights {
		weights[i] = weight
	}

	return &CostGrid{Width: width, Height: height, Weights: weights}
}

// Validate проверяет размер и знак весов.
func (g *CostGrid) Validate() error {
	if g.Width <= 0 || g.Height <= 0 {
		return fmt.Errorf("%w: size %dx%d", ErrBadCostGrid, g.Width, g.Height)
	}
	if len(g.Weights) != g.Width*g.Height {
		return fmt.Errorf("%w: got %d weights for %dx%d", ErrBadCostGrid, len(g.Weights), g.Width, g.Height)
	}
	for i, w := range g.Weights {
		if w < 0 {
			return fmt.Errorf("%w: negative weight %d at (%d,%d)", ErrBadCostGrid, w, i%g.Width, i/g.Width)
		}
	}

	return nil
}

// Bounds возвращает размеры изображения.
func (g *CostGrid) Bounds() Bounds {
	return Bounds{Width: g.Width, Height: g.Height}
}

// Cost возвращает стоимость шага из a в соседний пиксель b: вес b,
// а для диагонального шага вес умножается на 1.4.
// Диагональ, стоимость которой не помещается в int, стоит math.MaxInt (непроходима).
func (g *CostGrid) Cost(a, b Point) int {
	w := g.Weights[b.Y*g.Width+b.X]
	if a.X != b.X && a.Y != b.Y {
		if w > maxDiagonalWeight {
			return math.MaxInt
		}
		return w * 14 / 10
	}
	return w
}
