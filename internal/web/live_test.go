package web

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moneysupermarket/component-catalog/internal/depgraph"
)

func dialLive(t *testing.T, src CatalogSource, opts Options, query string) *websocket.Conn {
	t.Helper()
	srv := httptest.NewServer(setupTest(t, src, opts))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/dependencies" + query
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func exchange(t *testing.T, conn *websocket.Conn, req map[string]any) liveResponse {
	t.Helper()
	if req != nil {
		require.NoError(t, conn.WriteJSON(req))
	}
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	var resp liveResponse
	require.NoError(t, conn.ReadJSON(&resp))
	return resp
}

func TestLiveInitialState(t *testing.T) {
	conn := dialLive(t, newFakeSource(), Options{}, "")

	resp := exchange(t, conn, nil)
	assert.Equal(t, "state", resp.Type)
	assert.NotEmpty(t, resp.SessionID)
	assert.Equal(t, 4, resp.Nodes)
	assert.Equal(t, 3, resp.Dependencies)
	assert.Equal(t, depgraph.Idle, resp.Mode)
	assert.Nil(t, resp.Focus)
	assert.Equal(t, 4, strings.Count(resp.HTML, nodeIDAttr))
}

func TestLiveClickAndHover(t *testing.T) {
	conn := dialLive(t, newFakeSource(), Options{}, "")
	initial := exchange(t, conn, nil)

	resp := exchange(t, conn, map[string]any{"type": "click", "node": 0})
	assert.Equal(t, "state", resp.Type)
	assert.Equal(t, initial.SessionID, resp.SessionID)
	assert.Equal(t, depgraph.Selected, resp.Mode)
	require.NotNil(t, resp.Focus)
	assert.Equal(t, 0, *resp.Focus)
	assert.Contains(t, resp.HTML, nodeElement(0, depgraph.ClassSelectedNode))
	assert.Contains(t, resp.HTML, dependencyElement(1, depgraph.ClassDirectDependency))

	// A selection wins over hovering, so nothing is sent back for it.
	require.NoError(t, conn.WriteJSON(map[string]any{"type": "mouseover", "node": 2}))

	// Re-click clears the selection; then hover and mouse-out.
	resp = exchange(t, conn, map[string]any{"type": "click", "node": 0})
	assert.Equal(t, "state", resp.Type)
	assert.Equal(t, depgraph.Idle, resp.Mode)

	resp = exchange(t, conn, map[string]any{"type": "mouseover", "node": 1})
	assert.Equal(t, depgraph.Hovered, resp.Mode)
	assert.Contains(t, resp.HTML, nodeElement(1, depgraph.ClassSelectedNode))
	assert.Contains(t, resp.HTML, dependencyElement(1, depgraph.ClassDirectDependency))
	assert.Contains(t, resp.HTML, dependencyElement(2, depgraph.ClassDirectDependency))
	assert.Contains(t, resp.HTML, dependencyElement(3, depgraph.ClassDirectDependency))

	resp = exchange(t, conn, map[string]any{"type": "mouseout"})
	assert.Equal(t, depgraph.Idle, resp.Mode)
	assert.Equal(t, 4, strings.Count(resp.HTML, `class="node scoped-node"`))
	assert.Equal(t, 3, strings.Count(resp.HTML, `class="dependency scoped-dependency"`))
}

func TestLiveFiltersAndDetail(t *testing.T) {
	conn := dialLive(t, newFakeSource(), Options{}, "")
	exchange(t, conn, nil)

	resp := exchange(t, conn, map[string]any{"type": "platform", "platform": "test-platform-id-1", "checked": true})
	assert.Equal(t, 2, resp.Nodes)
	assert.Equal(t, 1, resp.Dependencies)
	assert.Contains(t, resp.HTML, "platform=test-platform-id-1")

	resp = exchange(t, conn, map[string]any{"type": "detail", "checked": true})
	assert.Equal(t, depgraph.Detailed, resp.Detail)
	assert.Equal(t, 2, resp.Nodes)
	assert.Contains(t, resp.HTML, "test-span-name-1")

	resp = exchange(t, conn, map[string]any{"type": "platform", "platform": "test-platform-id-1", "checked": false})
	assert.Equal(t, 4, resp.Nodes)
	assert.Equal(t, 3, resp.Dependencies)
}

func TestLiveQuerySeedsView(t *testing.T) {
	conn := dialLive(t, newFakeSource(), Options{}, "?platform=test-platform-id-1&detailed=true")

	resp := exchange(t, conn, nil)
	assert.Equal(t, depgraph.Detailed, resp.Detail)
	assert.Equal(t, 2, resp.Nodes)
}

func TestLiveRejectsBadMessages(t *testing.T) {
	conn := dialLive(t, newFakeSource(), Options{}, "")
	exchange(t, conn, nil)

	tests := []struct {
		name string
		req  map[string]any
		want string
	}{
		{"out of range", map[string]any{"type": "click", "node": 99}, "node index out of range"},
		{"negative", map[string]any{"type": "mouseover", "node": -1}, "node index out of range"},
		{"missing node", map[string]any{"type": "click"}, "node is required"},
		{"missing platform", map[string]any{"type": "platform", "checked": true}, "platform is required"},
		{"unknown type", map[string]any{"type": "drag"}, "unknown message type: drag"},
	}
	for _, tt := range tests {
		resp := exchange(t, conn, tt.req)
		assert.Equal(t, "error", resp.Type, tt.name)
		assert.Equal(t, tt.want, resp.Message, tt.name)
	}

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("{not json")))
	resp := exchange(t, conn, nil)
	assert.Equal(t, "error", resp.Type)
	assert.Equal(t, "invalid message format", resp.Message)

	// The session is still usable.
	resp = exchange(t, conn, map[string]any{"type": "click", "node": 3})
	assert.Equal(t, "state", resp.Type)
	assert.Equal(t, depgraph.Selected, resp.Mode)
}

func TestLiveKeepOnReclick(t *testing.T) {
	conn := dialLive(t, newFakeSource(), Options{Selection: depgraph.KeepOnReclick}, "")
	exchange(t, conn, nil)

	resp := exchange(t, conn, map[string]any{"type": "click", "node": 1})
	assert.Equal(t, depgraph.Selected, resp.Mode)
	assert.Equal(t, 1, *resp.Focus)

	// The re-click changes nothing; the next reply is for the following event.
	require.NoError(t, conn.WriteJSON(map[string]any{"type": "click", "node": 1}))
	resp = exchange(t, conn, map[string]any{"type": "click", "node": 2})
	assert.Equal(t, depgraph.Selected, resp.Mode)
	assert.Equal(t, 2, *resp.Focus)
}

func TestLiveSkipsUnchangedState(t *testing.T) {
	conn := dialLive(t, newFakeSource(), Options{}, "")
	exchange(t, conn, nil)

	for _, req := range []map[string]any{
		{"type": "mouseout"},
		{"type": "mouseover", "node": 1},
	} {
		require.NoError(t, conn.WriteJSON(req))
	}
	resp := exchange(t, conn, nil)
	assert.Equal(t, depgraph.Hovered, resp.Mode)
	assert.Equal(t, 1, *resp.Focus)

	// Hovering the same node again and hovering under a selection are no-ops.
	require.NoError(t, conn.WriteJSON(map[string]any{"type": "mouseover", "node": 1}))
	resp = exchange(t, conn, map[string]any{"type": "click", "node": 3})
	assert.Equal(t, depgraph.Selected, resp.Mode)
	assert.Equal(t, 3, *resp.Focus)

	require.NoError(t, conn.WriteJSON(map[string]any{"type": "mouseover", "node": 0}))
	resp = exchange(t, conn, map[string]any{"type": "drag"})
	assert.Equal(t, "error", resp.Type)
}

func TestLiveFilterDropsHiddenSelection(t *testing.T) {
	conn := dialLive(t, newFakeSource(), Options{}, "")
	exchange(t, conn, nil)

	exchange(t, conn, map[string]any{"type": "click", "node": 3})
	resp := exchange(t, conn, map[string]any{"type": "platform", "platform": "test-platform-id-1", "checked": true})
	assert.Equal(t, depgraph.Idle, resp.Mode)
	assert.Nil(t, resp.Focus)

	resp = exchange(t, conn, map[string]any{"type": "mouseover", "node": 0})
	assert.Equal(t, depgraph.Hovered, resp.Mode)
	assert.Contains(t, resp.HTML, nodeElement(0, depgraph.ClassSelectedNode))
}
