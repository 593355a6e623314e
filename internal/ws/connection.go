package ws

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/PIRSON21/scissors/internal/lib/api/request"
	resp "github.com/PIRSON21/scissors/internal/lib/api/response"
	custom_validator "github.com/PIRSON21/scissors/internal/lib/validator"
	"github.com/PIRSON21/scissors/internal/session"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// WebSocketHandler открывает сессию выделения.
//
// Первое сообщение клиента - request.SessionInit с весами пикселей. Дальше клиент
// шлет request.Command, а сервер - события session.Event.
func WebSocketHandler(log *slog.Logger, opts session.Options) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "ws.WebSocketHandler"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		// upgrade rest request to websocket connection
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Error("error while upgrading webSocket conn", slog.String("err", err.Error()))
			return
		}
		defer conn.Close()

		var params request.SessionInit
		if err := conn.ReadJSON(&params); err != nil {
			log.Error("error while reading params", slog.String("err", err.Error()))
			_ = conn.WriteJSON(resp.Error("неверный формат параметров сессии: " + err.Error()))
			return
		}
		log.Debug("params from client",
			slog.Int("width", params.Width),
			slog.Int("height", params.Height),
			slog.String("tool", params.Tool),
		)

		valid := custom_validator.CreateNewValidator()
		if err := valid.Struct(&params); err != nil {
			log.Error("validation error", slog.String("err", err.Error()))
			var validErr validator.ValidationErrors
			if errors.As(err, &validErr) {
				_ = conn.WriteJSON(resp.ValidationError(validErr))
			} else {
				_ = conn.WriteJSON(resp.UnknownError("ошибка проверки параметров"))
			}
			return
		}

		client := NewClient(conn, log)
		grid := params.CostGrid
		ss, err := session.NewSession(client, &grid, params.Tool, opts, log)
		if err != nil {
			log.Error("error while creating session", slog.String("err", err.Error()))
			_ = conn.WriteJSON(resp.Error(err.Error()))
			return
		}
		log = log.With(slog.String("session_id", ss.ID()))
		log.Info("session started")

		go client.WriteLoop()
		go client.ReadLoop(readFunc(ss, client, valid, log))
		go ss.Run()

		select {
		case <-client.Done:
			ss.Stop()
			<-ss.Done()
		case <-ss.Done():
			client.Stop()
		}

		log.Info("session finished")
	}
}

// readFunc разбирает команду клиента и передает ее сессии.
// Ошибки разбора и валидации уходят клиенту событием error.
func readFunc(ss *session.Session, client *Client, valid *validator.Validate, log *slog.Logger) func(msg []byte) {
	return func(msg []byte) {
		var cmd request.Command
		if err := json.Unmarshal(msg, &cmd); err != nil {
			log.Debug("bad command", slog.String("err", err.Error()))
			sendEvent(client, log, session.Event{
				Type:  session.EventError,
				Error: "неверный формат команды: " + err.Error(),
			})
			return
		}

		if err := valid.Struct(&cmd); err != nil {
			log.Debug("command validation error", slog.String("err", err.Error()))
			event := session.Event{Type: session.EventError, Op: cmd.Op, Error: err.Error()}
			var validErr validator.ValidationErrors
			if errors.As(err, &validErr) {
				event.Error = "ошибка валидации команды"
				event.Fields = resp.ValidationError(validErr)
			}
			sendEvent(client, log, event)
			return
		}

		ss.Submit(cmd)
	}
}

func sendEvent(client *Client, log *slog.Logger, event session.Event) {
	data, err := json.Marshal(event)
	if err != nil {
		log.Error("error while marshaling event", slog.String("err", err.Error()))
		return
	}
	client.Send(data)
}
