package api

import (
	"bytes"
	"context"
	"errors"
	"image"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/san-kum/genlab/internal/export"
	"github.com/san-kum/genlab/internal/logx"
	"github.com/san-kum/genlab/internal/loop"
	"github.com/san-kum/genlab/internal/pattern"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// wsMessage is sent by the client. Type is configure, action or resize.
type wsMessage struct {
	Type   string         `json:"type"`
	Values pattern.Values `json:"values,omitempty"`
	Action string         `json:"action,omitempty"`
	Width  int            `json:"width,omitempty"`
	Height int            `json:"height,omitempty"`
}

// wsEvent is a text message to the client. Frames go out as binary PNGs.
type wsEvent struct {
	Type   string         `json:"type"`
	Values pattern.Values `json:"values,omitempty"`
	Error  string         `json:"error,omitempty"`
}

// handleWS streams frames of one generator. Client messages are queued by
// the reader goroutine and applied on the loop goroutine between frames, so
// the generator is never touched concurrently.
func (h *handler) handleWS(w http.ResponseWriter, r *http.Request) {
	d, err := h.reg.Get(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	q := r.URL.Query()
	width, err := intParam(q, "w", DefaultSide, 1, MaxSide)
	if err == nil {
		var height, fps int
		if height, err = intParam(q, "h", DefaultSide, 1, MaxSide); err == nil {
			if fps, err = intParam(q, "fps", 15, 1, MaxFPS); err == nil {
				h.stream(w, r, d, width, height, fps)
				return
			}
		}
	}
	http.Error(w, err.Error(), http.StatusBadRequest)
}

func (h *handler) stream(w http.ResponseWriter, r *http.Request, d *pattern.Descriptor, width, height, fps int) {
	values, err := queryValues(d, r.URL.Query())
	if err != nil {
		writeError(w, err)
		return
	}
	gen, values, err := d.Instantiate(values)
	if err != nil {
		writeError(w, err)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logx.Logger().Warn("ws upgrade failed", "err", err)
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	s := &stream{conn: conn, desc: d, gen: gen, values: values, inbox: make(chan wsMessage, 16)}
	s.buf = loop.NewBufferSink(width, height, s.present)

	go func() {
		defer cancel()
		for {
			var msg wsMessage
			if err := conn.ReadJSON(&msg); err != nil {
				return
			}
			select {
			case s.inbox <- msg:
			case <-ctx.Done():
				return
			}
		}
	}()

	if err := conn.WriteJSON(wsEvent{Type: "values", Values: values}); err != nil {
		return
	}
	st, err := loop.Run(ctx, gen, loop.Options{FPS: fps}, s)
	if err != nil && !errors.Is(err, context.Canceled) {
		logx.Logger().Debug("ws stream ended", "pattern", d.ID, "frames", st.Frames, "err", err)
	}
}

type stream struct {
	conn   *websocket.Conn
	desc   *pattern.Descriptor
	gen    pattern.Generator
	values pattern.Values
	buf    *loop.BufferSink
	inbox  chan wsMessage
	png    bytes.Buffer
}

func (s *stream) Surface() (*image.RGBA, error) {
	for {
		select {
		case msg := <-s.inbox:
			if err := s.apply(msg); err != nil {
				return nil, err
			}
		default:
			return s.buf.Surface()
		}
	}
}

func (s *stream) Present(frame int, img *image.RGBA) error {
	return s.buf.Present(frame, img)
}

func (s *stream) present(_ int, img *image.RGBA) error {
	s.png.Reset()
	if err := export.PNG(&s.png, img); err != nil {
		return err
	}
	return s.conn.WriteMessage(websocket.BinaryMessage, s.png.Bytes())
}

// apply handles one client message. Bad input is reported to the client;
// only write failures end the stream.
func (s *stream) apply(msg wsMessage) error {
	var err error
	switch msg.Type {
	case "configure":
		next := s.values.Clone()
		for k, v := range msg.Values {
			next[k] = v
		}
		if next, err = s.desc.Normalize(next); err == nil {
			s.values = next
			s.gen.Configure(next)
			return s.conn.WriteJSON(wsEvent{Type: "values", Values: next})
		}
	case "action":
		d, ok := s.gen.(pattern.Dispatcher)
		if !ok {
			err = pattern.ErrUnknownAction
			break
		}
		var patch pattern.Values
		if patch, err = d.Dispatch(msg.Action); err == nil {
			for k, v := range patch {
				s.values[k] = v
			}
			return s.conn.WriteJSON(wsEvent{Type: "values", Values: s.values})
		}
	case "resize":
		if msg.Width > MaxSide || msg.Height > MaxSide {
			err = errors.New("surface too large")
			break
		}
		s.buf.Resize(msg.Width, msg.Height)
		return nil
	default:
		err = errors.New("unknown message type " + msg.Type)
	}
	return s.conn.WriteJSON(wsEvent{Type: "error", Error: err.Error()})
}
