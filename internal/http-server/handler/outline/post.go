package outline

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/PIRSON21/scissors/internal/config"
	resp "github.com/PIRSON21/scissors/internal/lib/api/response"
	custErr "github.com/PIRSON21/scissors/internal/lib/errors"
	customValidator "github.com/PIRSON21/scissors/internal/lib/validator"
	"github.com/PIRSON21/scissors/internal/models"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
)

// AddOutlineHandler проверяет замкнутый контур и сохраняет его в БД.
func AddOutlineHandler(log *slog.Logger, storage OutlineSaver, cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "http-server.handler.outline.AddOutlineHandler"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		defer r.Body.Close()

		var outline models.Outline
		if err := render.DecodeJSON(r.Body, &outline); err != nil {
			log.Debug("error while decoding JSON", slog.String("err", err.Error()))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, resp.Error(fmt.Sprintf("неверный формат JSON: %s", err)))
			return
		}
		outline.ID = 0

		valid := customValidator.CreateNewValidator()
		if err := valid.Struct(&outline); err != nil {
			var validateErr validator.ValidationErrors
			if !errors.As(err, &validateErr) {
				resp.ErrorHandler(w, r, cfg, fmt.Errorf("%s: error while validating: %w", op, err))
				return
			}

			log.Debug("validation error", slog.String("err", err.Error()))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, resp.ValidationError(validateErr))
			return
		}

		if err := storage.SaveOutline(&outline); err != nil {
			if errors.Is(err, custErr.ErrOutlineAlreadyExists) {
				render.Status(r, http.StatusConflict)
				render.JSON(w, r, resp.Error(err.Error()))
				return
			}

			log.Error("error while saving outline to DB", slog.String("err", err.Error()))
			resp.ErrorHandler(w, r, cfg, fmt.Errorf("%s: error while saving outline: %w", op, err))
			return
		}

		log.Info("outline saved", slog.Int("outline_id", outline.ID), slog.String("name", outline.Name))

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, resp.CreatedResponse{
			ID:  outline.ID,
			URL: fmt.Sprintf("/outline/%d", outline.ID),
		})
	}
}
