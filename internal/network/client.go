package network

import (
	"log"
	"net"
	"time"

	"github.com/gorilla/websocket"
)

const (
	// Tempo máximo para completar uma escrita na conexão.
	writeWait = 10 * time.Second

	// Tempo máximo aguardando o pong do cliente antes de derrubar a conexão.
	pongWait = 60 * time.Second

	// Frequência dos pings. Precisa ser menor que pongWait.
	pingPeriod = (pongWait * 9) / 10
)

// Client representa uma conexão WebSocket ativa do ponto de vista do
// servidor. Toda a escrita passa pelo canal send, drenado pela goroutine
// writeLoop, então qualquer goroutine pode enviar sem sincronização extra.
type Client struct {
	conn *websocket.Conn

	// Referência ao Hub central, usada para (des)registro.
	hub *Hub

	// Canal bufferizado de mensagens de saída. O buffer evita que quem
	// envia bloqueie enquanto o cliente drena mensagens anteriores.
	send chan Message

	// Fechado pelo Hub no desregistro. O canal send nunca é fechado, para
	// que goroutines de entrega de outras salas não corram o risco de
	// escrever em canal fechado.
	done chan struct{}
}

// Conn retorna a conexão subjacente, útil para logar o endereço remoto.
func (c *Client) Conn() net.Conn {
	return c.conn.UnderlyingConn()
}

// Deliver enfileira a mensagem para escrita. Retorna false se a conexão já
// foi encerrada e a mensagem foi descartada.
func (c *Client) Deliver(msg Message) bool {
	select {
	case c.send <- msg:
		return true
	case <-c.done:
		return false
	}
}

func (c *Client) readLoop() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	// O read deadline é renovado a cada pong recebido. Se o cliente
	// parar de responder, o ReadJSON abaixo falha e o loop termina.
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		var msg Message
		if err := c.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("[Network] Erro inesperado no cliente %s: %v", c.conn.RemoteAddr(), err)
			}
			break
		}

		c.hub.incoming <- clientMessage{client: c, msg: msg}
	}
}

// writeLoop bombeia mensagens do canal send para a conexão e mantém a
// conexão viva com pings periódicos.
func (c *Client) writeLoop() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case <-c.done:
			// Desregistrado pelo Hub.
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			c.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return

		case msg := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteJSON(msg); err != nil {
				log.Printf("[Network] Erro de escrita no cliente %s: %v", c.conn.RemoteAddr(), err)
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
