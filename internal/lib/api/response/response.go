package response

import (
	"fmt"
	"net/http"
	"time"

	"github.com/PIRSON21/scissors/internal/config"
	"github.com/PIRSON21/scissors/internal/models"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
)

type Response struct {
	Error string `json:"error,omitempty"`
}

func Error(errMessage string) Response {
	return Response{
		Error: errMessage,
	}
}

// UnknownError - ответ на ошибку, о которой клиенту не нужно знать подробности.
func UnknownError(errMessage string) Response {
	return Error(errMessage)
}

// ValidationError переводит ошибки валидатора в ответ вида {"поле": "сообщение"}.
func ValidationError(errs validator.ValidationErrors) map[string]string {
	res := make(map[string]string, len(errs))

	for _, err := range errs {
		res[err.Field()] = validationMessage(err)
	}

	return res
}

func validationMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required", "required_with_op":
		return "Не указано поле"
	case "min":
		return fmt.Sprintf("Минимальная длина поля %s", err.Param())
	case "max":
		return fmt.Sprintf("Максимальная длина поля %s", err.Param())
	case "lte":
		return fmt.Sprintf("Значение не может быть больше %s", err.Param())
	case "gte":
		return fmt.Sprintf("Значение не может быть меньше %s", err.Param())
	case "oneof":
		return fmt.Sprintf("Значение должно быть одним из: %s", err.Param())
	case "len":
		return fmt.Sprintf("Количество элементов должно быть %s", err.Param())
	case "closed":
		return "Выделение не замкнуто"
	case "inside":
		return fmt.Sprintf("Точка %s вне изображения", err.Param())
	default:
		return fmt.Sprintf("Поле не прошло проверку %s", err.Tag())
	}
}

// ErrorHandler обрабатывает серверную ошибку (не клиентскую).
// Если приложение находится не в проде, выведет ошибку пользователю.
// Иначе, выведет стандартное сообщение "Internal Server Error".
func ErrorHandler(w http.ResponseWriter, r *http.Request, cfg *config.Config, err error) {
	if cfg.Environment != "prod" {
		renderError(w, r, err)
	} else {
		internalError(w)
	}
}

// internalError возвращает ошибку сервера без дополнительной информации для пользователя.
func internalError(w http.ResponseWriter) {
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}

// renderError предоставляет текст ошибки пользователя. Используется в версии для разработки.
func renderError(w http.ResponseWriter, r *http.Request, err error) {
	render.Status(r, http.StatusInternalServerError)
	render.JSON(w, r, Error(err.Error()))
}

// OutlineResponse - краткая информация о контуре для списка.
type OutlineResponse struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Width     int       `json:"width"`
	Height    int       `json:"height"`
	Segments  int       `json:"segments"`
	CreatedAt time.Time `json:"created_at"`
	URL       string    `json:"url"`
}

// NewOutlineResponse создает ответ OutlineResponse для рендера.
func NewOutlineResponse(o *models.Outline) *OutlineResponse {
	return &OutlineResponse{
		ID:        o.ID,
		Name:      o.Name,
		Width:     o.Width,
		Height:    o.Height,
		Segments:  len(o.Segments),
		CreatedAt: o.CreatedAt,
		URL:       fmt.Sprintf("/outline/%d", o.ID),
	}
}

// Render нужна для имплементации интерфейса Renderer.
func (*OutlineResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

// NewOutlineListRender подготавливает информацию о контурах к выводу.
func NewOutlineListRender(outlines []*models.Outline) []render.Renderer {
	list := make([]render.Renderer, 0, len(outlines))

	for _, outline := range outlines {
		list = append(list, NewOutlineResponse(outline))
	}

	return list
}

// CreatedResponse - ответ на создание контура.
type CreatedResponse struct {
	ID  int    `json:"id"`
	URL string `json:"url"`
}
