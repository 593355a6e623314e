// Package outline - REST-обработчики сохраненных контуров выделения.
package outline

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/PIRSON21/scissors/internal/models"
	"github.com/go-chi/chi/v5"
)

//go:generate go run github.com/vektra/mockery/v2@v2.53.0 --name=OutlineGetter
type OutlineGetter interface {
	GetOutlines(search string) ([]*models.Outline, error)
	GetOutlineByID(outlineID int) (*models.Outline, error)
}

//go:generate go run github.com/vektra/mockery/v2@v2.53.0 --name=OutlineSaver
type OutlineSaver interface {
	SaveOutline(outline *models.Outline) error
}

//go:generate go run github.com/vektra/mockery/v2@v2.53.0 --name=OutlineDeleter
type OutlineDeleter interface {
	DeleteOutline(outlineID int) error
}

// getOutlineID получает ID контура из url и проверяет его.
func getOutlineID(r *http.Request) (int, error) {
	idStr := chi.URLParam(r, "id")
	if idStr == "" {
		return 0, fmt.Errorf("не указан id контура")
	}

	id, err := strconv.Atoi(idStr)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("id контура %v не может быть преобразовано в число", idStr)
	}

	return id, nil
}
