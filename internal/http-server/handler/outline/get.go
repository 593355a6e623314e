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

// AllOutlinesHandler выдает список контуров, имя которых содержит параметр search.
func AllOutlinesHandler(log *slog.Logger, outlineGetter OutlineGetter, cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "http-server.handler.outline.AllOutlinesHandler"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		query := r.FormValue("search")
		log.Debug("search query", slog.String("query", query))

		outlines, err := outlineGetter.GetOutlines(query)
		if err != nil {
			log.Error("error while getting outlines from DB", slog.String("err", err.Error()))
			resp.ErrorHandler(w, r, cfg, err)
			return
		}

		log.Debug("found outlines", slog.Int("count", len(outlines)))
		if len(outlines) == 0 {
			render.JSON(w, r, []string{})
			return
		}

		if err = render.RenderList(w, r, resp.NewOutlineListRender(outlines)); err != nil {
			log.Error("error while marshaling outlines to JSON", slog.String("err", err.Error()))
			resp.ErrorHandler(w, r, cfg, err)
		}
	}
}

// GetOutlineHandler выдает контур со всеми сегментами по его ID.
func GetOutlineHandler(log *slog.Logger, outlineGetter OutlineGetter, cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "http-server.handler.outline.GetOutlineHandler"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		outlineID, err := getOutlineID(r)
		if err != nil {
			log.Debug("wrong outline ID in url", slog.String("err", err.Error()))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, resp.Error(err.Error()))
			return
		}

		outline, err := outlineGetter.GetOutlineByID(outlineID)
		if err != nil {
			if errors.Is(err, custErr.ErrOutlineNotFound) {
				log.Debug("outline not found", slog.Int("outline_id", outlineID))
				http.NotFound(w, r)
				return
			}

			log.Error("error while getting outline from DB", slog.String("err", err.Error()))
			resp.ErrorHandler(w, r, cfg, err)
			return
		}

		log.Debug("outline found", slog.Int("outline_id", outline.ID), slog.String("name", outline.Name))
		render.JSON(w, r, outline)
	}
}
