package web

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/moneysupermarket/component-catalog/internal/depgraph"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// liveRequest is the incoming WebSocket message format.
type liveRequest struct {
	Type     string `json:"type"` // click, mouseover, mouseout, detail or platform
	Node     *int   `json:"node,omitempty"`
	Platform string `json:"platform,omitempty"`
	Checked  bool   `json:"checked,omitempty"`
}

// liveResponse is the outgoing WebSocket message format.
type liveResponse struct {
	Type         string               `json:"type"` // state or error
	SessionID    string               `json:"session_id"`
	HTML         string               `json:"html,omitempty"`
	Mode         depgraph.FocusMode   `json:"mode,omitempty"`
	Detail       depgraph.DetailLevel `json:"detail,omitempty"`
	Focus        *int                 `json:"focus,omitempty"`
	Nodes        int                  `json:"nodes"`
	Dependencies int                  `json:"dependencies"`
	Message      string               `json:"message,omitempty"`
}

// liveSession is one connected graph view. Its events are applied in the
// order they arrive, one at a time.
type liveSession struct {
	id    string
	conn  *websocket.Conn
	view  *depgraph.View
	prefs graphPrefs
}

func (wb *Web) handleLive(w http.ResponseWriter, r *http.Request) {
	prefs, _ := prefsFromQuery(r.URL.Query())

	data, err := LoadGraphData(r.Context(), wb.source)
	if err != nil {
		wb.fetchFailed(w, r, "dependencies", err)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		wb.logger.Warn("live graph: websocket upgrade", "error", err)
		return
	}
	defer conn.Close()

	s := &liveSession{
		id:    uuid.NewString(),
		conn:  conn,
		view:  buildView(data, wb.opts.Selection, prefs),
		prefs: prefs,
	}
	log := wb.logger.With("session_id", s.id)
	log.Debug("live graph: connected")

	wb.sendState(s)
	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn("live graph: websocket read", "error", err)
			}
			return
		}

		var req liveRequest
		if err := json.Unmarshal(msg, &req); err != nil {
			wb.sendError(s, "invalid message format")
			continue
		}
		changed, errMsg := wb.apply(s, req)
		if errMsg != "" {
			wb.sendError(s, errMsg)
			continue
		}
		if changed {
			wb.sendState(s)
		}
	}
}

// apply feeds one event into the session's view and reports whether the
// view changed. Node indexes are checked against the current graph here so
// that nothing out of range reaches it.
func (wb *Web) apply(s *liveSession, req liveRequest) (bool, string) {
	switch req.Type {
	case "click", "mouseover":
		if req.Node == nil {
			return false, "node is required"
		}
		if n := *req.Node; n < 0 || n >= s.view.Graph().NodeCount() {
			return false, "node index out of range"
		}
		if req.Type == "click" {
			return s.view.Click(*req.Node), ""
		}
		return s.view.Hover(*req.Node), ""
	case "mouseout":
		return s.view.Unhover(), ""
	case "detail":
		s.view.SetDetailed(req.Checked)
		s.prefs.Detailed = req.Checked
	case "platform":
		if req.Platform == "" {
			return false, "platform is required"
		}
		s.view.SetPlatform(req.Platform, req.Checked)
		s.prefs.Platforms = s.view.Snapshot().Filter.IDs()
	default:
		return false, "unknown message type: " + req.Type
	}
	return true, ""
}

func (wb *Web) sendState(s *liveSession) {
	snap := s.view.Snapshot()
	rendered := depgraph.Render(snap)
	html, err := wb.renderGraph(wb.graphModel(rendered, s.prefs))
	if err != nil {
		wb.logger.Error("live graph: render", "session_id", s.id, "error", err)
		wb.sendError(s, "rendering failed")
		return
	}

	resp := liveResponse{
		Type:         "state",
		SessionID:    s.id,
		HTML:         html,
		Mode:         snap.Mode,
		Detail:       snap.Detail,
		Nodes:        len(rendered.Nodes),
		Dependencies: len(rendered.Edges),
	}
	if snap.Mode != depgraph.Idle {
		focus := snap.Focus
		resp.Focus = &focus
	}
	wb.send(s, resp)
}

func (wb *Web) sendError(s *liveSession, message string) {
	wb.send(s, liveResponse{
		Type:      "error",
		SessionID: s.id,
		Message:   message,
	})
}

func (wb *Web) send(s *liveSession, resp liveResponse) {
	if err := s.conn.WriteJSON(resp); err != nil {
		wb.logger.Warn("live graph: websocket write", "session_id", s.id, "error", err)
	}
}
