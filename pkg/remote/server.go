package remote

import (
	"encoding/binary"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/thelolagemann/uart16550/pkg/log"
	"github.com/thelolagemann/uart16550/pkg/uart16550"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  64,
	WriteBufferSize: 64,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Handler serves register requests against io. Every connection is
// handled on its own goroutine, so io must be safe for concurrent use.
type Handler[R uart16550.Register] struct {
	io     uart16550.IO[R]
	logger log.Logger
}

// NewHandler returns an http.Handler exposing io over websocket.
func NewHandler[R uart16550.Register](io uart16550.IO[R], opts ...Opt) *Handler[R] {
	o := newOptions(opts)
	return &Handler[R]{io: io, logger: o.logger}
}

// ServeHTTP implements http.Handler.
func (h *Handler[R]) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Errorf("remote: upgrade %s: %v", r.RemoteAddr, err)
		return
	}
	defer conn.Close()
	h.logger.Infof("remote: %s connected", r.RemoteAddr)

	for {
		kind, message, err := conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				h.logger.Errorf("remote: %s: %v", r.RemoteAddr, err)
			}
			h.logger.Infof("remote: %s disconnected", r.RemoteAddr)
			return
		}
		if kind != websocket.BinaryMessage {
			continue
		}
		req, err := decodeRequest(message)
		if err != nil {
			h.logger.Errorf("remote: %s: %v", r.RemoteAddr, err)
			conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseUnsupportedData, err.Error()))
			return
		}

		reply := h.handle(req)
		if err := conn.WriteMessage(websocket.BinaryMessage, reply); err != nil {
			h.logger.Errorf("remote: %s: %v", r.RemoteAddr, err)
			return
		}
	}
}

func (h *Handler[R]) handle(req request) []byte {
	offset := uintptr(req.offset)
	if req.op == opWrite {
		h.io.WriteAt(offset, R(req.value))
		h.logger.Debugf("remote: W 0x%02X=0x%02X", offset, uint8(req.value))
		return []byte{}
	}
	v := h.io.ReadAt(offset)
	h.logger.Debugf("remote: R 0x%02X=0x%02X", offset, v.Value())

	reply := make([]byte, replyLen)
	binary.LittleEndian.PutUint32(reply, uint32(v))
	return reply
}
