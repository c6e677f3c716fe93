package spectate

import (
	"context"
	"fmt"

	"github.com/gorilla/websocket"
	"github.com/vmihailenco/msgpack/v5"
)

// Viewer receives frames from a remote hub.
type Viewer struct {
	conn *websocket.Conn
}

// Dial connects to a hub websocket URL such as ws://host:8080/ws.
func Dial(ctx context.Context, rawURL string) (*Viewer, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("spectate: dial %s: %w", rawURL, err)
	}
	return &Viewer{conn: conn}, nil
}

// Next blocks until the next frame arrives.
func (v *Viewer) Next() (Frame, error) {
	for {
		msgType, raw, err := v.conn.ReadMessage()
		if err != nil {
			return Frame{}, err
		}
		if msgType != websocket.BinaryMessage {
			continue
		}
		var f Frame
		if err := msgpack.Unmarshal(raw, &f); err != nil {
			return Frame{}, fmt.Errorf("spectate: decode frame: %w", err)
		}
		return f, nil
	}
}

// Close ends the connection.
func (v *Viewer) Close() error {
	v.conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	return v.conn.Close()
}
