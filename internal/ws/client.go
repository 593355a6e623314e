package ws

import (
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	sendBuffer   = 256
	pingInterval = 15 * time.Second
)

type Client struct {
	// Conn - подключение к клиенту
	Conn *websocket.Conn
	// SendChan - канал для отправки сообщений клиенту
	SendChan chan []byte
	Done     chan struct{}
	once     sync.Once
	log      *slog.Logger
}

// NewClient создает клиента сервера.
func NewClient(conn *websocket.Conn, log *slog.Logger) *Client {
	return &Client{
		Conn:     conn,
		SendChan: make(chan []byte, sendBuffer),
		Done:     make(chan struct{}),
		log:      log,
	}
}

// Stop закрывает соединение с клиентом.
func (c *Client) Stop() {
	c.Conn.Close()
	c.once.Do(func() {
		close(c.Done)
	})
}

// ReadLoop получает сообщения от клиента, пока соединение открыто.
// Ошибка чтения останавливает клиента.
func (c *Client) ReadLoop(onMessage func(msg []byte)) {
	const op = "ws.client.ReadLoop"
	log := c.log.With(slog.String("op", op))

	defer c.Stop()

	for {
		_, msg, err := c.Conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Debug("error while reading from webSocket conn", slog.String("err", err.Error()))
			}
			return
		}
		onMessage(msg)
	}
}

// WriteLoop отправляет сообщения клиенту и пингует его.
func (c *Client) WriteLoop() {
	const op = "ws.client.WriteLoop"
	log := c.log.With(slog.String("op", op))

	defer c.Stop()

	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.Done:
			return
		case msg := <-c.SendChan:
			if err := c.Conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
					log.Error("error while sending message on webSocket", slog.String("err", err.Error()))
				}
				return
			}
		case <-ticker.C:
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
					log.Error("error while sending ping on webSocket", slog.String("err", err.Error()))
				}
				return
			}
		}
	}
}

// Send ставит сообщение в очередь на отправку. После Stop и при переполненной
// очереди сообщение отбрасывается, чтобы медленный клиент не держал сессию.
// SendChan никогда не закрывается, поэтому Send можно звать из любой горутины.
func (c *Client) Send(msg []byte) {
	select {
	case <-c.Done:
		return
	default:
	}

	select {
	case c.SendChan <- msg:
	default:
		c.log.Warn("client send buffer is full, message dropped")
	}
}
