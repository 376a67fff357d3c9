package session

import (
	"log"
	"sync"

	"bottomline/internal/network"
	"bottomline/internal/session/message"
)

// Handler implementa network.EventHandler. Ele exige que a primeira mensagem
// de toda conexão seja um Connect e, a partir daí, encaminha cada requisição
// para a sala do cliente.
type Handler struct {
	manager *Manager

	mu    sync.Mutex
	rooms map[*network.Client]*Room
}

// NewHandler cria o handler ligado ao gerenciador de salas.
func NewHandler(manager *Manager) *Handler {
	return &Handler{
		manager: manager,
		rooms:   make(map[*network.Client]*Room),
	}
}

func (h *Handler) OnConnect(c *network.Client) {
	log.Printf("[Session] Nova conexão de %s", c.Conn().RemoteAddr())
}

func (h *Handler) OnDisconnect(c *network.Client) {
	h.mu.Lock()
	room := h.rooms[c]
	delete(h.rooms, c)
	h.mu.Unlock()

	if room != nil {
		room.Disconnect(c)
	}
	log.Printf("[Session] Conexão encerrada: %s", c.Conn().RemoteAddr())
}

func (h *Handler) OnMessage(c *network.Client, msg network.Message) {
	h.mu.Lock()
	room := h.rooms[c]
	h.mu.Unlock()

	if room == nil {
		h.connect(c, msg)
		return
	}

	if msg.Action == message.ActionConnect {
		c.Deliver(message.Error(ErrAlreadyConnected))
		return
	}

	room.Process(c, msg)
}

// connect trata a primeira mensagem da conexão, que precisa ser um Connect
// válido apontando para um channel.
func (h *Handler) connect(c *network.Client, msg network.Message) {
	if msg.Action != message.ActionConnect {
		c.Deliver(message.Error(ErrNotConnected))
		return
	}

	req, err := message.DecodeData[message.ConnectRequest](msg)
	if err != nil {
		c.Deliver(message.Error(err))
		return
	}
	if req.Username == "" || req.Channel == "" {
		c.Deliver(message.Error(ErrInvalidConnect))
		return
	}

	room, err := h.manager.Join(req.Channel, req.Username, c)
	if err != nil {
		c.Deliver(message.Error(err))
		return
	}

	h.mu.Lock()
	h.rooms[c] = room
	h.mu.Unlock()
}
