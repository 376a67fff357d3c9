package network

// EventHandler é a interface que conecta a camada de rede com a lógica
// das salas. O pacote session implementa esta interface.
type EventHandler interface {
	// OnConnect é chamado quando um novo cliente completa o handshake.
	OnConnect(c *Client)

	// OnDisconnect é chamado quando a conexão de um cliente cai.
	OnDisconnect(c *Client)

	// OnMessage é chamado para cada mensagem recebida de um cliente.
	OnMessage(c *Client, msg Message)
}
