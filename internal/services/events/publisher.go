// Pacote events publica os marcos do ciclo de vida das salas em NATS, para
// que serviços de acompanhamento (lobby browser, estatísticas) observem as
// partidas sem acoplamento com o servidor de jogo.
package events

import (
	"encoding/json"
	"log"
	"time"

	"github.com/nats-io/nats.go"

	"bottomline/internal/game"
)

const (
	subjectRoomCreated = "bottomline.room.created"
	subjectGameStarted = "bottomline.game.started"
	subjectGameEnded   = "bottomline.game.ended"
)

// Publisher envia eventos para o NATS. Um Publisher nil é válido e descarta
// tudo, então o servidor funciona sem broker configurado.
type Publisher struct {
	conn *nats.Conn
}

// Connect abre a conexão com o broker. A reconexão é automática e sem limite
// de tentativas.
func Connect(url string) (*Publisher, error) {
	conn, err := nats.Connect(url,
		nats.Name("bottomline-server"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, err
	}
	return &Publisher{conn: conn}, nil
}

// Connected informa se a conexão com o broker está ativa.
func (p *Publisher) Connected() bool {
	return p != nil && p.conn != nil && p.conn.IsConnected()
}

// Close drena as publicações pendentes antes de fechar a conexão.
func (p *Publisher) Close() {
	if p == nil || p.conn == nil {
		return
	}
	if err := p.conn.Drain(); err != nil {
		p.conn.Close()
	}
}

type roomEvent struct {
	RoomID  string    `json:"room_id"`
	Channel string    `json:"channel"`
	At      time.Time `json:"at"`
}

type gameStartedEvent struct {
	roomEvent
	Players []string `json:"players"`
}

type gameEndedEvent struct {
	roomEvent
	Scores []game.PlayerScore `json:"scores"`
}

// RoomCreated anuncia que uma sala nova foi aberta.
func (p *Publisher) RoomCreated(roomID, channel string) {
	p.publish(subjectRoomCreated, roomEvent{RoomID: roomID, Channel: channel, At: time.Now().UTC()})
}

// GameStarted anuncia que a partida de uma sala começou.
func (p *Publisher) GameStarted(roomID, channel string, players []string) {
	p.publish(subjectGameStarted, gameStartedEvent{
		roomEvent: roomEvent{RoomID: roomID, Channel: channel, At: time.Now().UTC()},
		Players:   players,
	})
}

// GameEnded anuncia o fim de uma partida com o placar final.
func (p *Publisher) GameEnded(roomID, channel string, scores []game.PlayerScore) {
	p.publish(subjectGameEnded, gameEndedEvent{
		roomEvent: roomEvent{RoomID: roomID, Channel: channel, At: time.Now().UTC()},
		Scores:    scores,
	})
}

func (p *Publisher) publish(subject string, event any) {
	if p == nil || p.conn == nil {
		return
	}
	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("[Events] Erro ao serializar evento %s: %v", subject, err)
		return
	}
	if err := p.conn.Publish(subject, data); err != nil {
		log.Printf("[Events] Erro ao publicar %s: %v", subject, err)
	}
}
