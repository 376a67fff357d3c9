// Pacote session liga a rede ao jogo: cada Room é uma sala identificada
// pelo nome do channel, com seu próprio estado de partida, e o Manager cuida
// do ciclo de vida das salas.
package session

import (
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"

	"bottomline/internal/game"
	"bottomline/internal/game/card"
	"bottomline/internal/game/player"
	"bottomline/internal/network"
	"bottomline/internal/services/events"
	"bottomline/internal/session/message"
)

// Tamanho da fila de saída de cada participante. Com a fila cheia a mensagem
// mais antiga é descartada, nunca quem enfileira bloqueia.
const participantQueueSize = 64

// participant é um assento na sala. O assento sobrevive à queda da conexão
// depois que a partida começou, para permitir reconexão pelo username.
type participant struct {
	username string
	queue    chan network.Message

	mu     sync.Mutex
	closed bool
	client *network.Client
}

func newParticipant(username string, client *network.Client) *participant {
	p := &participant{
		username: username,
		queue:    make(chan network.Message, participantQueueSize),
		client:   client,
	}
	go p.pump()
	return p
}

// pump drena a fila do assento para a conexão atual. Mensagens recebidas
// enquanto o assento está desconectado são descartadas.
func (p *participant) pump() {
	for msg := range p.queue {
		p.mu.Lock()
		c := p.client
		p.mu.Unlock()
		if c != nil {
			c.Deliver(msg)
		}
	}
}

// enqueue nunca bloqueia: com a fila cheia, abre espaço descartando a
// mensagem mais antiga. Depois do close as mensagens são descartadas, então
// uma entrega montada antes do assento fechar não derruba o processo.
func (p *participant) enqueue(msg network.Message) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	for {
		select {
		case p.queue <- msg:
			return
		default:
		}
		select {
		case <-p.queue:
		default:
		}
	}
}

// close encerra a fila do assento. Idempotente; enqueue e close disputam o
// mesmo mutex, então nunca há envio em canal fechado.
func (p *participant) close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.closed = true
	close(p.queue)
}

func (p *participant) attach(c *network.Client) {
	p.mu.Lock()
	p.client = c
	p.mu.Unlock()
}

func (p *participant) detach() {
	p.mu.Lock()
	p.client = nil
	p.mu.Unlock()
}

func (p *participant) connected() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.client != nil
}

// Room é uma sala de jogo. Todas as mutações do estado acontecem sob o
// mutex; as entregas acontecem depois de soltá-lo, via as filas dos
// participantes, para que um cliente lento nunca segure a sala.
type Room struct {
	id      uuid.UUID
	channel string
	catalog *card.Catalog
	events  *events.Publisher

	mu           sync.Mutex
	state        *game.State
	rng          *rand.Rand
	participants map[string]*participant
	lastActivity time.Time
}

// NewRoom abre uma sala vazia para o channel informado.
func NewRoom(channel string, catalog *card.Catalog, ev *events.Publisher) *Room {
	return &Room{
		id:           uuid.New(),
		channel:      channel,
		catalog:      catalog,
		events:       ev,
		state:        game.NewState(),
		rng:          rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		participants: make(map[string]*participant),
		lastActivity: time.Now(),
	}
}

// ID devolve o identificador único da sala.
func (r *Room) ID() uuid.UUID { return r.id }

// Channel devolve o nome público da sala.
func (r *Room) Channel() string { return r.channel }

type delivery struct {
	to  *participant
	msg network.Message
}

func deliverAll(deliveries []delivery) {
	for _, d := range deliveries {
		d.to.enqueue(d.msg)
	}
}

// Join coloca um cliente na sala. Antes da partida começar isso cria um
// assento novo no lobby; depois, só reconecta um assento existente com o
// mesmo username.
func (r *Room) Join(username string, client *network.Client) error {
	r.mu.Lock()

	if p, ok := r.participants[username]; ok {
		if p.connected() {
			r.mu.Unlock()
			return &game.UsernameTakenError{Name: username}
		}
		p.attach(client)
		r.lastActivity = time.Now()
		// Quem reconecta ficou cego desde a queda; reenvia a visão da
		// partida antes de qualquer fanout novo.
		snapshot := r.snapshot(username)
		r.mu.Unlock()

		for _, msg := range snapshot {
			p.enqueue(msg)
		}
		return nil
	}

	lobby, err := r.state.Lobby()
	if err != nil {
		r.mu.Unlock()
		return ErrGameAlreadyStarted
	}
	if _, err := lobby.Join(username); err != nil {
		r.mu.Unlock()
		return err
	}

	r.participants[username] = newParticipant(username, client)
	r.lastActivity = time.Now()

	roster := message.PlayersInLobby(username, lobby.Usernames())
	deliveries := make([]delivery, 0, len(r.participants))
	for _, p := range r.participants {
		deliveries = append(deliveries, delivery{to: p, msg: roster})
	}
	r.mu.Unlock()

	deliverAll(deliveries)
	return nil
}

// Disconnect marca a queda da conexão de um cliente. No lobby o assento é
// removido; com a partida em andamento ele fica aguardando reconexão.
func (r *Room) Disconnect(client *network.Client) {
	r.mu.Lock()

	var leaving *participant
	for _, p := range r.participants {
		p.mu.Lock()
		match := p.client == client
		p.mu.Unlock()
		if match {
			leaving = p
			break
		}
	}
	if leaving == nil {
		r.mu.Unlock()
		return
	}

	r.lastActivity = time.Now()

	lobby, err := r.state.Lobby()
	if err != nil {
		// Partida em andamento: o assento sobrevive para reconexão.
		leaving.detach()
		r.mu.Unlock()
		return
	}

	lobby.Leave(leaving.username)
	delete(r.participants, leaving.username)
	leaving.close()

	roster := message.PlayersInLobby(leaving.username, lobby.Usernames())
	deliveries := make([]delivery, 0, len(r.participants))
	for _, p := range r.participants {
		deliveries = append(deliveries, delivery{to: p, msg: roster})
	}
	r.mu.Unlock()

	deliverAll(deliveries)
}

// Process aplica uma requisição de jogo vinda do cliente e distribui as
// respostas. O estado só muda sob o lock; a entrega acontece fora dele.
func (r *Room) Process(client *network.Client, msg network.Message) {
	r.mu.Lock()

	var actor *participant
	for _, p := range r.participants {
		p.mu.Lock()
		match := p.client == client
		p.mu.Unlock()
		if match {
			actor = p
			break
		}
	}
	if actor == nil {
		r.mu.Unlock()
		client.Deliver(message.Error(ErrNotInRoom))
		return
	}

	id, err := r.playerID(actor.username)
	if err != nil {
		r.mu.Unlock()
		client.Deliver(message.Error(err))
		return
	}

	before := r.state.Phase()
	fanout, direct := handleRequest(r.state, r.catalog, r.rng, id, msg)
	after := r.state.Phase()
	r.lastActivity = time.Now()

	deliveries := make([]delivery, 0, len(fanout)+1)
	byID := r.participantsByID()
	for to, msgs := range fanout {
		p, ok := byID[to]
		if !ok {
			continue
		}
		for _, m := range msgs {
			deliveries = append(deliveries, delivery{to: p, msg: m})
		}
	}
	deliveries = append(deliveries, delivery{to: actor, msg: direct})

	usernames := make([]string, 0, len(r.participants))
	for name := range r.participants {
		usernames = append(usernames, name)
	}

	var scores []game.PlayerScore
	if after == game.PhaseResults && before != game.PhaseResults {
		if results, err := r.state.Results(); err == nil {
			scores = results.Scores()
		}
	}
	r.mu.Unlock()

	deliverAll(deliveries)

	// Marcos do ciclo de vida, publicados sem o lock da sala.
	if before == game.PhaseLobby && after == game.PhaseSelectingCharacters {
		r.events.GameStarted(r.id.String(), r.channel, usernames)
	}
	if scores != nil {
		r.events.GameEnded(r.id.String(), r.channel, scores)
	}
}

// playerID resolve o id do jogador pelo username, na fase atual. Os ids do
// lobby são reatribuídos quando alguém sai, então a resolução é sempre feita
// na hora, nunca guardada.
func (r *Room) playerID(username string) (player.ID, error) {
	switch r.state.Phase() {
	case game.PhaseLobby:
		lobby, err := r.state.Lobby()
		if err != nil {
			return 0, err
		}
		for _, p := range lobby.Players() {
			if p.Name() == username {
				return p.ID(), nil
			}
		}
	case game.PhaseSelectingCharacters:
		selecting, err := r.state.SelectingCharacters()
		if err != nil {
			return 0, err
		}
		if p, err := selecting.PlayerByName(username); err == nil {
			return p.ID(), nil
		}
	case game.PhaseRound:
		round, err := r.state.Round()
		if err != nil {
			return 0, err
		}
		if p, err := round.PlayerByName(username); err == nil {
			return p.ID(), nil
		}
	case game.PhaseResults:
		results, err := r.state.Results()
		if err != nil {
			return 0, err
		}
		if p, err := results.PlayerByName(username); err == nil {
			return p.ID(), nil
		}
	}
	return 0, &game.InvalidPlayerNameError{Name: username}
}

// snapshot monta as mensagens que recolocam um jogador reconectado a par da
// partida: a mesma visão que ele teria recebido no início da fase atual.
// No lobby não há o que repor. Chamar com r.mu em posse.
func (r *Room) snapshot(username string) []network.Message {
	id, err := r.playerID(username)
	if err != nil {
		return nil
	}

	switch r.state.Phase() {
	case game.PhaseSelectingCharacters:
		selecting, err := r.state.SelectingCharacters()
		if err != nil {
			return nil
		}
		p, err := selecting.Player(id)
		if err != nil {
			return nil
		}
		return []network.Message{
			message.GameStarted(id, p.Hand(), p.Cash(), selecting.PlayerInfo(id), *selecting.CurrentMarket()),
			message.SelectingCharacters(selectingView(selecting, id)),
		}
	case game.PhaseRound:
		round, err := r.state.Round()
		if err != nil {
			return nil
		}
		p, err := round.Player(id)
		if err != nil {
			return nil
		}
		return []network.Message{
			message.GameStarted(id, p.Hand(), p.Cash(), round.PlayerInfo(id), *round.CurrentMarket()),
			message.TurnStarts(round),
		}
	case game.PhaseResults:
		results, err := r.state.Results()
		if err != nil {
			return nil
		}
		return []network.Message{message.GameEnded(results.Scores())}
	}
	return nil
}

func (r *Room) participantsByID() map[player.ID]*participant {
	byID := make(map[player.ID]*participant, len(r.participants))
	for _, p := range r.participants {
		if id, err := r.playerID(p.username); err == nil {
			byID[id] = p
		}
	}
	return byID
}

// Empty informa se a sala está sem nenhuma conexão ativa.
func (r *Room) Empty() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.participants {
		if p.connected() {
			return false
		}
	}
	return true
}

// LastActivity é o instante da última entrada, saída ou jogada na sala.
func (r *Room) LastActivity() time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastActivity
}

// Close encerra as filas de todos os assentos. A sala não pode mais ser
// usada depois daqui.
func (r *Room) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for name, p := range r.participants {
		p.close()
		delete(r.participants, name)
	}
}

// String identifica a sala nos logs.
func (r *Room) String() string {
	return fmt.Sprintf("%s (%s)", r.channel, r.id)
}
