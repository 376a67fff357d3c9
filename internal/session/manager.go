package session

import (
	"log"
	"time"

	"bottomline/internal/game/card"
	"bottomline/internal/network"
	"bottomline/internal/services/events"
)

// ============================================================================
// Mensagens do Ator
// ============================================================================

// actorMessage é a interface das mensagens aceitas pelo Manager.
type actorMessage interface {
	isActorMessage()
}

type joinRequest struct {
	channel  string
	username string
	client   *network.Client
	reply    chan joinResult
}

func (joinRequest) isActorMessage() {}

type joinResult struct {
	room *Room
	err  error
}

// ============================================================================
// O Ator Manager
// ============================================================================

// Manager é o ator dono do mapa de salas. Toda criação e remoção de sala
// passa pela goroutine do Run, então o mapa dispensa mutex. Salas sem
// nenhuma conexão ativa há mais de maxIdle são varridas periodicamente.
type Manager struct {
	catalog *card.Catalog
	events  *events.Publisher

	sweepInterval time.Duration
	maxIdle       time.Duration

	requests chan actorMessage
	rooms    map[string]*Room
}

// NewManager cria o gerenciador de salas. Chame Run em uma goroutine antes
// de usar.
func NewManager(catalog *card.Catalog, ev *events.Publisher, sweepInterval, maxIdle time.Duration) *Manager {
	return &Manager{
		catalog:       catalog,
		events:        ev,
		sweepInterval: sweepInterval,
		maxIdle:       maxIdle,
		requests:      make(chan actorMessage),
		rooms:         make(map[string]*Room),
	}
}

// Run processa as requisições do ator e dispara a varredura periódica de
// salas abandonadas. Bloqueia para sempre.
func (m *Manager) Run() {
	log.Printf("[Session] Gerenciador de salas iniciado (varredura a cada %s, ociosidade máxima %s)", m.sweepInterval, m.maxIdle)

	ticker := time.NewTicker(m.sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case msg := <-m.requests:
			m.handleMessage(msg)
		case <-ticker.C:
			m.sweep()
		}
	}
}

func (m *Manager) handleMessage(msg actorMessage) {
	switch req := msg.(type) {
	case joinRequest:
		room, ok := m.rooms[req.channel]
		if !ok {
			room = NewRoom(req.channel, m.catalog, m.events)
			m.rooms[req.channel] = room
			log.Printf("[Session] Sala criada: %s", room)
			m.events.RoomCreated(room.ID().String(), room.Channel())
		}
		err := room.Join(req.username, req.client)
		if err != nil {
			req.reply <- joinResult{err: err}
			return
		}
		log.Printf("[Session] %s entrou na sala %s", req.username, room)
		req.reply <- joinResult{room: room}
	}
}

// sweep fecha as salas sem conexões ativas há tempo demais.
func (m *Manager) sweep() {
	for channel, room := range m.rooms {
		if room.Empty() && time.Since(room.LastActivity()) > m.maxIdle {
			log.Printf("[Session] Sala ociosa removida: %s", room)
			delete(m.rooms, channel)
			room.Close()
		}
	}
}

// Join coloca o cliente na sala do channel, criando a sala se for a
// primeira conexão daquele channel.
func (m *Manager) Join(channel, username string, client *network.Client) (*Room, error) {
	reply := make(chan joinResult, 1)
	m.requests <- joinRequest{channel: channel, username: username, client: client, reply: reply}
	result := <-reply
	return result.room, result.err
}
