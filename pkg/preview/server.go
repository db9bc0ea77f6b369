// Package preview serves a compiled document to a browser and pushes
// recompiled documents to connected clients over a WebSocket, so `kryon
// serve` gives edit-and-see feedback without a full renderer.
package preview

import (
	"fmt"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/kryonlabs/kryon/pkg/ir"
	"github.com/kryonlabs/kryon/pkg/renderer/html"
)

// Server holds the latest compiled document and the set of live clients.
type Server struct {
	upgrader websocket.Upgrader

	mu      sync.RWMutex
	doc     *ir.Document
	clients map[*websocket.Conn]bool
}

// NewServer creates a preview server with an optional initial document.
func NewServer(doc *ir.Document) *Server {
	return &Server{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// The preview server binds to localhost for development only.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		doc:     doc,
		clients: make(map[*websocket.Conn]bool),
	}
}

// Handler returns the preview HTTP mux: the rendered page at /, the raw
// document at /doc.json, the live socket at /ws.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/doc.json", s.handleDocument)
	mux.HandleFunc("/ws", s.handleWebSocket)
	return mux
}

// Update replaces the current document and broadcasts it to every client.
func (s *Server) Update(doc *ir.Document) {
	s.mu.Lock()
	s.doc = doc
	conns := make([]*websocket.Conn, 0, len(s.clients))
	for conn := range s.clients {
		conns = append(conns, conn)
	}
	s.mu.Unlock()

	data, err := doc.Marshal()
	if err != nil {
		log.Printf("⚠️  Failed to marshal document for broadcast: %v", err)
		return
	}
	for _, conn := range conns {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			log.Printf("⚠️  Dropping preview client: %v", err)
			s.drop(conn)
		}
	}
}

// ClientCount returns the number of connected clients.
func (s *Server) ClientCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	s.mu.RLock()
	doc := s.doc
	s.mu.RUnlock()

	body := "<p>No document compiled yet.</p>"
	title := "kryon preview"
	if doc != nil {
		rendered, err := html.RenderToString(doc)
		if err != nil {
			http.Error(w, fmt.Sprintf("render failed: %v", err), http.StatusInternalServerError)
			return
		}
		body = rendered
		if doc.Root.WindowTitle != "" {
			title = doc.Root.WindowTitle
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprintf(w, indexPage, title, body)
}

func (s *Server) handleDocument(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	doc := s.doc
	s.mu.RUnlock()

	if doc == nil {
		http.Error(w, "no document", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := doc.Encode(w); err != nil {
		log.Printf("⚠️  Failed to write document: %v", err)
	}
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("⚠️  WebSocket upgrade failed: %v", err)
		return
	}

	s.mu.Lock()
	s.clients[conn] = true
	s.mu.Unlock()

	// Drain (and ignore) client messages until the connection closes.
	go func() {
		defer s.drop(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

func (s *Server) drop(conn *websocket.Conn) {
	s.mu.Lock()
	if s.clients[conn] {
		delete(s.clients, conn)
		conn.Close()
	}
	s.mu.Unlock()
}

// indexPage reloads whenever the server pushes a new document. A full
// reload is enough for preview purposes; incremental patching belongs to a
// real renderer.
const indexPage = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>%s</title>
</head>
<body>
%s
<script>
(function connect() {
  var ws = new WebSocket("ws://" + location.host + "/ws");
  ws.onmessage = function() { location.reload(); };
  ws.onclose = function() { setTimeout(connect, 1000); };
})();
</script>
</body>
</html>
`
