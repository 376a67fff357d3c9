// Cliente de terminal para jogar The Bottom Line contra um servidor. Conecta
// no endpoint WebSocket, envia o Connect e depois traduz comandos digitados
// em requisições do protocolo, imprimindo tudo que o servidor responde.
package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"log"
	"net/url"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/gorilla/websocket"

	"bottomline/internal/game"
	"bottomline/internal/game/card"
	"bottomline/internal/network"
	"bottomline/internal/session/message"
	"bottomline/internal/utils"
)

func main() {
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)

	addr := os.Getenv("SERVER_ADDR")
	if addr == "" {
		addr = "localhost:8080"
	}

	if len(os.Args) < 3 {
		fmt.Println("Uso: client <username> <channel>")
		os.Exit(1)
	}
	username, channel := os.Args[1], os.Args[2]

	u := url.URL{Scheme: "ws", Host: addr, Path: "/ws"}
	log.Printf("Conectando a %s", u.String())

	conn, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		log.Fatalf("Não foi possível conectar a %s: %v", addr, err)
	}
	defer conn.Close()

	send(conn, message.ActionConnect, message.ConnectRequest{Username: username, Channel: channel})

	done := make(chan struct{})
	go readLoop(conn, done)

	go func() {
		scanner := bufio.NewScanner(os.Stdin)
		printHelp()
		for scanner.Scan() {
			handleUserInput(conn, scanner.Text())
		}
	}()

	select {
	case <-done:
		log.Println("Desconectado do servidor.")
	case <-interrupt:
		log.Println("Interrupção recebida, fechando conexão.")
		conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	}
}

func send(conn *websocket.Conn, action string, payload any) {
	msg := network.Message{Action: action}
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			log.Printf("Erro ao montar %s: %v", action, err)
			return
		}
		msg.Data = raw
	}
	if err := conn.WriteJSON(msg); err != nil {
		log.Printf("Erro ao enviar %s: %v", action, err)
	}
}

func readLoop(conn *websocket.Conn, done chan struct{}) {
	defer close(done)
	for {
		var msg network.Message
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("\nErro de leitura: %v", err)
			}
			return
		}
		printServerMessage(msg)
	}
}

func printServerMessage(msg network.Message) {
	switch msg.Action {
	case message.ActionError:
		var payload struct {
			Reason string `json:"reason"`
		}
		json.Unmarshal(msg.Data, &payload)
		fmt.Printf("\n[ERRO] %s\n", payload.Reason)

	case message.ActionPlayersInLobby:
		var payload struct {
			ChangedPlayer string   `json:"changed_player"`
			Usernames     []string `json:"usernames"`
		}
		json.Unmarshal(msg.Data, &payload)
		fmt.Printf("\n[Lobby mudou: %s]\n", payload.ChangedPlayer)
		fmt.Print(utils.SliceToString("Jogadores na sala", payload.Usernames))

	case message.ActionGameEnded:
		var payload struct {
			Scores []game.PlayerScore `json:"scores"`
		}
		json.Unmarshal(msg.Data, &payload)
		fmt.Println("\n[FIM DE JOGO]")
		fmt.Print(utils.SliceToString("Placar final", payload.Scores))

	default:
		pretty := string(msg.Data)
		if pretty == "" {
			fmt.Printf("\n[%s]\n", msg.Action)
			return
		}
		fmt.Printf("\n[%s] %s\n", msg.Action, pretty)
	}
}

func printHelp() {
	fmt.Println(`Comandos:
  start                      inicia a partida
  pick <personagem>          escolhe o personagem no draft
  draw <asset|liability>     compra uma carta
  putback <idx>              devolve a carta da mão
  buy <idx>                  compra o asset da mão
  issue <idx>                emite a liability da mão
  redeem <idx>               resgata uma liability da mesa
  ability                    mostra a habilidade do seu personagem
  fire <personagem>          demite um personagem (Shareholder)
  terminate <personagem>     corta o crédito de um personagem (Banker)
  swapdeck <idx> [idx...]    troca cartas com o deck (Regulator)
  swapplayer <id>            troca a mão com um jogador (Regulator)
  divest <id> <idx>          força um desinvestimento (Stakeholder)
  end                        encerra o turno
  minus <cor>                vira uma condição de mercado (resultados)
  silver <idx>               transforma prata em ouro (resultados)
  color <idx> <cor>          troca a cor de um asset (resultados)
  confirm <idx>              trava a habilidade do asset (resultados)
  quit                       sai`)
}

func handleUserInput(conn *websocket.Conn, input string) {
	fields := strings.Fields(strings.TrimSpace(input))
	if len(fields) == 0 {
		return
	}
	cmd, args := fields[0], fields[1:]

	parseIdx := func(pos int) (int, bool) {
		if pos >= len(args) {
			fmt.Println("Faltou um índice. Digite 'help' para ver os comandos.")
			return 0, false
		}
		idx, err := strconv.Atoi(args[pos])
		if err != nil {
			fmt.Printf("Índice inválido: %q\n", args[pos])
			return 0, false
		}
		return idx, true
	}

	switch cmd {
	case "help":
		printHelp()

	case "start":
		send(conn, message.ActionStartGame, nil)

	case "pick":
		if len(args) < 1 {
			fmt.Println("Uso: pick <personagem>")
			return
		}
		send(conn, message.ActionSelectCharacter, map[string]string{"character": args[0]})

	case "draw":
		if len(args) < 1 {
			fmt.Println("Uso: draw <asset|liability>")
			return
		}
		switch strings.ToLower(args[0]) {
		case "asset":
			send(conn, message.ActionDrawCard, message.DrawCardRequest{CardType: card.TypeAsset})
		case "liability":
			send(conn, message.ActionDrawCard, message.DrawCardRequest{CardType: card.TypeLiability})
		default:
			fmt.Printf("Tipo de carta inválido: %q\n", args[0])
		}

	case "putback":
		if idx, ok := parseIdx(0); ok {
			send(conn, message.ActionPutBackCard, message.CardIdxRequest{CardIdx: idx})
		}

	case "buy":
		if idx, ok := parseIdx(0); ok {
			send(conn, message.ActionBuyAsset, message.CardIdxRequest{CardIdx: idx})
		}

	case "issue":
		if idx, ok := parseIdx(0); ok {
			send(conn, message.ActionIssueLiability, message.CardIdxRequest{CardIdx: idx})
		}

	case "redeem":
		if idx, ok := parseIdx(0); ok {
			send(conn, message.ActionRedeemLiability, message.RedeemLiabilityRequest{LiabilityIdx: idx})
		}

	case "ability":
		send(conn, message.ActionUseAbility, nil)

	case "fire":
		if len(args) < 1 {
			fmt.Println("Uso: fire <personagem>")
			return
		}
		send(conn, message.ActionFireCharacter, map[string]string{"character": args[0]})

	case "terminate":
		if len(args) < 1 {
			fmt.Println("Uso: terminate <personagem>")
			return
		}
		send(conn, message.ActionTerminateCreditCharacter, map[string]string{"character": args[0]})

	case "swapdeck":
		idxs := make([]int, 0, len(args))
		for i := range args {
			idx, ok := parseIdx(i)
			if !ok {
				return
			}
			idxs = append(idxs, idx)
		}
		send(conn, message.ActionSwapWithDeck, message.SwapWithDeckRequest{CardIdxs: idxs})

	case "swapplayer":
		if id, ok := parseIdx(0); ok {
			send(conn, message.ActionSwapWithPlayer, map[string]int{"target_player_id": id})
		}

	case "divest":
		id, ok := parseIdx(0)
		if !ok {
			return
		}
		idx, ok := parseIdx(1)
		if !ok {
			return
		}
		send(conn, message.ActionDivestAsset, map[string]int{"target_player_id": id, "card_idx": idx})

	case "end":
		send(conn, message.ActionEndTurn, nil)

	case "minus":
		if len(args) < 1 {
			fmt.Println("Uso: minus <cor>")
			return
		}
		send(conn, message.ActionMinusIntoPlus, map[string]string{"color": args[0]})

	case "silver":
		if idx, ok := parseIdx(0); ok {
			send(conn, message.ActionSilverIntoGold, message.AssetIdxRequest{AssetIdx: idx})
		}

	case "color":
		idx, ok := parseIdx(0)
		if !ok {
			return
		}
		if len(args) < 2 {
			fmt.Println("Uso: color <idx> <cor>")
			return
		}
		raw, _ := json.Marshal(map[string]any{"asset_idx": idx, "color": args[1]})
		conn.WriteJSON(network.Message{Action: message.ActionChangeAssetColor, Data: raw})

	case "confirm":
		if idx, ok := parseIdx(0); ok {
			send(conn, message.ActionConfirmAssetAbility, message.AssetIdxRequest{AssetIdx: idx})
		}

	case "quit":
		conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		os.Exit(0)

	default:
		fmt.Printf("Comando desconhecido: %q. Digite 'help'.\n", cmd)
	}
}
