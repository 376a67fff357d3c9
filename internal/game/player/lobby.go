package player

// LobbyPlayer é o formato de jogador da fase de lobby: só identidade, nada de
// cartas ainda.
type LobbyPlayer struct {
	id   ID
	name string
}

// NewLobbyPlayer cria um jogador de lobby com id e nome.
func NewLobbyPlayer(id ID, name string) LobbyPlayer {
	return LobbyPlayer{id: id, name: name}
}

// ID devolve o id do jogador.
func (p LobbyPlayer) ID() ID { return p.id }

// Name devolve o nome do jogador.
func (p LobbyPlayer) Name() string { return p.name }

// SetID troca o id do jogador. Usado quando alguém sai do lobby e os ids são
// compactados de novo.
func (p *LobbyPlayer) SetID(id ID) { p.id = id }

// Info devolve a visão pública do jogador.
func (p LobbyPlayer) Info() PublicInfo {
	return PublicInfo{Name: p.name, ID: p.id}
}
