package network

import (
	"log"
	"net"
	"net/http"

	"github.com/gorilla/websocket"
)

// Server expõe o endpoint WebSocket do jogo e gerencia o Hub associado.
type Server struct {
	hub *Hub
	mux *http.ServeMux
}

var upgrader = websocket.Upgrader{
	// Qualquer origem é aceita; o controle de acesso fica na borda.
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// NewServer cria o servidor com o EventHandler que receberá os eventos
// de conexão e as mensagens dos clientes.
func NewServer(handler EventHandler) *Server {
	s := &Server{
		hub: NewHub(handler),
		mux: http.NewServeMux(),
	}
	s.mux.HandleFunc("/ws", s.wsHandler)
	return s
}

// Handle registra rotas HTTP adicionais (ex: /health) no mesmo servidor.
func (s *Server) Handle(pattern string, handler http.Handler) {
	s.mux.Handle(pattern, handler)
}

// wsHandler promove a requisição HTTP para WebSocket e registra o novo
// cliente no Hub.
func (s *Server) wsHandler(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[Network] Erro ao fazer upgrade da conexão: %v", err)
		return
	}

	client := &Client{
		conn: conn,
		hub:  s.hub,
		send: make(chan Message, 256),
		done: make(chan struct{}),
	}

	client.hub.register <- client

	go client.writeLoop()
	go client.readLoop()
}

// Listen inicia a goroutine do Hub e o servidor HTTP. Bloqueia até o
// servidor encerrar.
func (s *Server) Listen(address string) error {
	go s.hub.Run()

	log.Printf("[Network] Servidor WebSocket escutando em ws://%s/ws", address)
	return http.ListenAndServe(address, s.mux)
}

// Serve é a variante de Listen para quando o chamador já abriu o socket,
// por exemplo em testes que precisam de uma porta efêmera.
func (s *Server) Serve(l net.Listener) error {
	go s.hub.Run()
	return http.Serve(l, s.mux)
}
