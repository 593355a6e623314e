package outline

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/PIRSON21/scissors/internal/config"
	resp "github.com/PIRSON21/scissors/internal/lib/api/response"
	custErr "github.com/PIRSON21/scissors/internal/lib/errors"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
)

// DeleteOutlineHandler удаляет контур по его ID.
func DeleteOutlineHandler(log *slog.Logger, storage OutlineDeleter, cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "http-server.handler.outline.DeleteOutlineHandler"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		outlineID, err := getOutlineID(r)
		if err != nil {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, resp.Error(err.Error()))
			return
		}

		if err = storage.DeleteOutline(outlineID); err != nil {
			if errors.Is(err, custErr.ErrOutlineNotFound) {
				http.NotFound(w, r)
				return
			}

			log.Error("error while deleting outline", slog.String("err", err.Error()))
			resp.ErrorHandler(w, r, cfg, err)
			return
		}

		log.Info("outline deleted", slog.Int("outline_id", outlineID))
		w.WriteHeader(http.StatusNoContent)
	}
}
