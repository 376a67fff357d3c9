package session_test

import (
	"encoding/json"
	"net"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bottomline/internal/game/card"
	"bottomline/internal/network"
	"bottomline/internal/session"
	"bottomline/internal/session/message"
)

// startGameServer sobe a pilha completa (network + session) em uma porta
// efêmera e devolve o endereço para os clientes discarem.
func startGameServer(t *testing.T) string {
	t.Helper()

	catalog, err := card.LoadDefault()
	require.NoError(t, err)

	manager := session.NewManager(catalog, nil, time.Minute, time.Hour)
	go manager.Run()

	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { l.Close() })

	server := network.NewServer(session.NewHandler(manager))
	go server.Serve(l)
	return l.Addr().String()
}

func dialPlayer(t *testing.T, addr string) *websocket.Conn {
	t.Helper()

	conn, _, err := websocket.DefaultDialer.Dial("ws://"+addr+"/ws", nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func send(t *testing.T, conn *websocket.Conn, action string, payload any) {
	t.Helper()

	msg := network.Message{Action: action}
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		msg.Data = raw
	}
	require.NoError(t, conn.WriteJSON(msg))
}

func connectPlayer(t *testing.T, addr, username, channel string) *websocket.Conn {
	t.Helper()

	conn := dialPlayer(t, addr)
	send(t, conn, message.ActionConnect, message.ConnectRequest{Username: username, Channel: channel})
	return conn
}

// readAction lê mensagens até chegar a action esperada, descartando o que
// vier antes (avisos de lobby atrasados, por exemplo).
func readAction(t *testing.T, conn *websocket.Conn, action string) network.Message {
	t.Helper()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(3*time.Second)))
	for {
		var msg network.Message
		require.NoError(t, conn.ReadJSON(&msg), "esperando %q", action)
		if msg.Action == action {
			return msg
		}
	}
}

func errorReason(t *testing.T, msg network.Message) string {
	t.Helper()

	var payload struct {
		Reason string `json:"reason"`
	}
	require.NoError(t, json.Unmarshal(msg.Data, &payload))
	return payload.Reason
}

func TestFirstMessageMustBeConnect(t *testing.T) {
	addr := startGameServer(t)
	conn := dialPlayer(t, addr)

	send(t, conn, message.ActionStartGame, nil)

	reason := errorReason(t, readAction(t, conn, message.ActionError))
	assert.Contains(t, reason, "Connect")
}

func TestLobbyRosterReachesEveryone(t *testing.T) {
	addr := startGameServer(t)

	alice := connectPlayer(t, addr, "alice", "table-1")
	bob := connectPlayer(t, addr, "bob", "table-1")

	type roster struct {
		ChangedPlayer string   `json:"changed_player"`
		Usernames     []string `json:"usernames"`
	}

	var fromBob roster
	require.NoError(t, json.Unmarshal(readAction(t, bob, message.ActionPlayersInLobby).Data, &fromBob))
	assert.Equal(t, []string{"alice", "bob"}, fromBob.Usernames)

	// A alice vê a própria entrada e depois a do bob.
	for {
		var seen roster
		require.NoError(t, json.Unmarshal(readAction(t, alice, message.ActionPlayersInLobby).Data, &seen))
		if seen.ChangedPlayer == "bob" {
			assert.Equal(t, []string{"alice", "bob"}, seen.Usernames)
			break
		}
		assert.Equal(t, []string{"alice"}, seen.Usernames)
	}
}

func TestDuplicateUsernameIsRejected(t *testing.T) {
	addr := startGameServer(t)

	connectPlayer(t, addr, "alice", "table-1")
	intruder := connectPlayer(t, addr, "alice", "table-1")

	reason := errorReason(t, readAction(t, intruder, message.ActionError))
	assert.Contains(t, reason, "alice")
}

func TestStartGameNeedsEnoughPlayers(t *testing.T) {
	addr := startGameServer(t)

	alice := connectPlayer(t, addr, "alice", "table-1")
	connectPlayer(t, addr, "bob", "table-1")

	send(t, alice, message.ActionStartGame, nil)
	readAction(t, alice, message.ActionError)
}

func TestReconnectReplaysTheGameView(t *testing.T) {
	addr := startGameServer(t)

	names := []string{"alice", "bob", "carol", "dave"}
	conns := make([]*websocket.Conn, len(names))
	for i, name := range names {
		conns[i] = connectPlayer(t, addr, name, "table-1")
	}

	send(t, conns[0], message.ActionStartGame, nil)

	var before struct {
		ID int `json:"id"`
	}
	started := readAction(t, conns[1], message.ActionGameStarted)
	require.NoError(t, json.Unmarshal(started.Data, &before))

	// Queda e volta com o mesmo username. O servidor só libera o assento
	// quando nota a desconexão, então a volta insiste até o assento vagar.
	conns[1].Close()

	var view struct {
		ID   int               `json:"id"`
		Hand []json.RawMessage `json:"hand"`
		Cash int               `json:"cash"`
	}
	deadline := time.Now().Add(3 * time.Second)
retry:
	for {
		require.True(t, time.Now().Before(deadline), "o assento do bob nunca vagou")

		conn := connectPlayer(t, addr, "bob", "table-1")
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(time.Second)))
		for {
			var msg network.Message
			require.NoError(t, conn.ReadJSON(&msg))
			switch msg.Action {
			case message.ActionError:
				conn.Close()
				time.Sleep(50 * time.Millisecond)
				continue retry
			case message.ActionGameStarted:
				require.NoError(t, json.Unmarshal(msg.Data, &view))
				readAction(t, conn, message.ActionSelecting)
				break retry
			}
		}
	}

	// A mesma visão que o bob recebeu na largada, reenviada para a conexão nova.
	assert.Equal(t, before.ID, view.ID)
	assert.NotEmpty(t, view.Hand)
	assert.Positive(t, view.Cash)
}

func TestStartGameDealsAViewToEachPlayer(t *testing.T) {
	addr := startGameServer(t)

	names := []string{"alice", "bob", "carol", "dave"}
	conns := make([]*websocket.Conn, len(names))
	for i, name := range names {
		conns[i] = connectPlayer(t, addr, name, "table-1")
	}

	send(t, conns[0], message.ActionStartGame, nil)

	ids := make(map[int]bool)
	for _, conn := range conns {
		started := readAction(t, conn, message.ActionGameStarted)

		var view struct {
			ID   int               `json:"id"`
			Hand []json.RawMessage `json:"hand"`
			Cash int               `json:"cash"`
		}
		require.NoError(t, json.Unmarshal(started.Data, &view))
		assert.NotEmpty(t, view.Hand)
		assert.Positive(t, view.Cash)
		ids[view.ID] = true

		readAction(t, conn, message.ActionSelecting)
	}
	// Cada jogador recebeu a própria visão, com ids distintos.
	assert.Len(t, ids, len(names))

	readAction(t, conns[0], message.ActionYouStartedGame)
}
