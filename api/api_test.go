package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/beepath/animate"
	"github.com/katalvlaran/beepath/api"
	"github.com/katalvlaran/beepath/search"
	"github.com/katalvlaran/beepath/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newHandler(t *testing.T, opts ...service.Option) http.Handler {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)
	base := []service.Option{
		service.WithLogger(log),
		service.WithDefaults(service.Defaults{Rows: 5, Cols: 5}),
		service.WithSleeper(func(ctx context.Context, _ time.Duration) error { return ctx.Err() }),
	}
	svc := service.New(append(base, opts...)...)
	r := api.NewRouter(api.Config{
		BaseURL:     "/api",
		Controllers: []api.Controller{api.NewGridController(svc, log)},
		Logger:      log,
	})
	return r.Handler()
}

func do(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func createGrid(t *testing.T, h http.Handler, body any) service.View {
	t.Helper()
	w := do(t, h, http.MethodPost, "/api/v1/grids", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[service.View](t, w)
}

func TestGrids_CRUD(t *testing.T) {
	h := newHandler(t)
	v := createGrid(t, h, nil)
	assert.Equal(t, 5, v.Layout.Rows)

	w := do(t, h, http.MethodGet, "/api/v1/grids/"+v.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, v, decode[service.View](t, w))

	w = do(t, h, http.MethodGet, "/api/v1/grids/"+v.ID+"/stats", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"totalCells":25`)

	w = do(t, h, http.MethodDelete, "/api/v1/grids/"+v.ID, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = do(t, h, http.MethodGet, "/api/v1/grids/"+v.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGrids_CreateInvalid(t *testing.T) {
	h := newHandler(t)
	w := do(t, h, http.MethodPost, "/api/v1/grids", map[string]any{"pattern": "spiral"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "unknown pattern")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/grids", strings.NewReader("{"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGrids_Edits(t *testing.T) {
	h := newHandler(t)
	v := createGrid(t, h, map[string]any{"rows": 3, "cols": 3})
	base := "/api/v1/grids/" + v.ID

	w := do(t, h, http.MethodPut, base+"/walls", map[string]any{
		"walls": []map[string]any{{"x": 1, "y": 0, "wall": true}, {"x": 0, "y": 0, "wall": true}},
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "S#.\n...\n..G", decode[service.View](t, w).ASCII)

	w = do(t, h, http.MethodPost, base+"/walls/toggle", map[string]any{"x": 1, "y": 1})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "S#.\n.#.\n..G", decode[service.View](t, w).ASCII)

	w = do(t, h, http.MethodPost, base+"/walls/toggle", map[string]any{"x": 1})
	assert.Equal(t, http.StatusBadRequest, w.Code, "y is required")

	w = do(t, h, http.MethodPut, base+"/goal", map[string]any{"x": 1, "y": 1})
	assert.Equal(t, http.StatusBadRequest, w.Code, "goal on a wall")

	w = do(t, h, http.MethodPut, base+"/goal", map[string]any{"x": 0, "y": 2})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "S#.\n.#.\nG..", decode[service.View](t, w).ASCII)

	w = do(t, h, http.MethodPost, base+"/walls/fill", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 7, decode[service.View](t, w).Stats.WallCount)

	w = do(t, h, http.MethodPost, base+"/walls/clear", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, decode[service.View](t, w).Stats.WallCount)

	w = do(t, h, http.MethodPost, base+"/reset", map[string]any{"pattern": "filled"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 7, decode[service.View](t, w).Stats.WallCount)
}

func TestGrids_Search(t *testing.T) {
	h := newHandler(t)
	v := createGrid(t, h, nil)

	w := do(t, h, http.MethodPost, "/api/v1/grids/"+v.ID+"/search", map[string]any{"algorithm": "dijkstra"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	out := decode[service.Outcome](t, w)
	assert.True(t, out.Found)
	assert.Len(t, out.Path, 9)
	assert.Equal(t, "dijkstra", out.Algorithm)

	w = do(t, h, http.MethodPost, "/api/v1/grids/"+v.ID+"/search", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "astar", decode[service.Outcome](t, w).Algorithm)

	w = do(t, h, http.MethodPost, "/api/v1/grids/"+v.ID+"/search", map[string]any{"algorithm": "bfs"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, h, http.MethodPost, "/api/v1/grids/missing/search", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, h, http.MethodPost, "/api/v1/grids/"+v.ID+"/stop", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.False(t, decode[api.StopResponse](t, w).Stopped)
}

func dialStream(t *testing.T, srv *httptest.Server, id, algo string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/v1/grids/" + id + "/stream?algorithm=" + algo
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		if resp != nil {
			resp.Body.Close()
		}
		t.Fatalf("failed to open websocket connection: %v", err)
	}
	t.Cleanup(func() {
		conn.Close()
		if resp != nil {
			resp.Body.Close()
		}
	})
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) api.StreamMessage {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	_, payload, err := conn.ReadMessage()
	require.NoError(t, err)
	var msg api.StreamMessage
	require.NoError(t, json.Unmarshal(payload, &msg))
	return msg
}

func TestStream_Completes(t *testing.T) {
	h := newHandler(t)
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	v := createGrid(t, h, nil)

	conn := dialStream(t, srv, v.ID, "astar")
	var events, path int
	for {
		msg := readMessage(t, conn)
		if msg.Type == "event" {
			events++
			require.NotNil(t, msg.Event)
			if msg.Event.Role == search.Path {
				path++
			}
			continue
		}
		require.Equal(t, "result", msg.Type, msg.Error)
		require.NotNil(t, msg.Outcome)
		assert.True(t, msg.Outcome.Found)
		assert.Equal(t, 9, path)
		assert.Greater(t, events, path)
		break
	}
	_, _, err := conn.ReadMessage()
	assert.True(t, websocket.IsCloseError(err, websocket.CloseNormalClosure), "got %v", err)
}

func TestStream_StopMessage(t *testing.T) {
	h := newHandler(t,
		service.WithDelays(animate.Delays{Search: time.Hour}),
		service.WithSleeper(animate.Sleep),
	)
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	v := createGrid(t, h, nil)

	conn := dialStream(t, srv, v.ID, "dijkstra")
	first := readMessage(t, conn)
	require.Equal(t, "event", first.Type)
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("stop")))

	last := readMessage(t, conn)
	require.Equal(t, "result", last.Type)
	assert.False(t, last.Outcome.Found)
	assert.Equal(t, search.Cancelled.String(), last.Outcome.State)
}

func TestStream_UnknownGrid(t *testing.T) {
	h := newHandler(t)
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	conn := dialStream(t, srv, "missing", "astar")
	msg := readMessage(t, conn)
	assert.Equal(t, "error", msg.Type)
	assert.Contains(t, msg.Error, "not found")
}
