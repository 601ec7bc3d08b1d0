package api

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/katalvlaran/beepath/search"
)

// stream upgrades to a websocket and plays a paced search on it. Every
// event is one "event" frame; the run ends with a "result" or "error"
// frame followed by a normal close. A client text frame "stop" (or the
// client going away) cancels the search.
func (gc *GridController) stream(ctx *gin.Context) {
	id := ctx.Param("id")
	algo := algorithmOrDefault(ctx.Query("algorithm"))

	conn, err := gc.upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		gc.log.WithError(err).WithField("grid", id).Warn("upgrade failed")
		return
	}
	defer conn.Close()

	runCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		defer cancel()
		for {
			_, payload, err := conn.ReadMessage()
			if err != nil {
				return
			}
			if strings.EqualFold(strings.TrimSpace(string(payload)), cmdStop) {
				gc.log.WithField("grid", id).Debug("stop received on stream")
				return
			}
		}
	}()

	writeJSON := func(msg StreamMessage) bool {
		data, err := json.Marshal(msg)
		if err != nil {
			gc.log.WithError(err).WithField("grid", id).Error("failed to marshal stream message")
			return true
		}
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			cancel()
			return false
		}
		return true
	}

	out, err := gc.svc.Stream(runCtx, id, algo, func(ev search.Event) {
		writeJSON(StreamMessage{Type: msgEvent, Event: &ev})
	})
	if err != nil {
		writeJSON(StreamMessage{Type: msgError, Error: err.Error()})
	} else {
		writeJSON(StreamMessage{Type: msgResult, Outcome: &out})
	}
	_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}
