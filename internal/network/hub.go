package network

// clientMessage empacota uma mensagem junto com o cliente que a enviou,
// para que o Hub possa repassar ambos ao EventHandler.
type clientMessage struct {
	client *Client
	msg    Message
}

// Hub mantém o conjunto de clientes ativos e serializa os eventos de
// rede em uma única goroutine antes de entregá-los ao handler.
type Hub struct {
	// Clientes registrados. Acessado SOMENTE pela goroutine do Hub.
	clients map[*Client]bool

	register   chan *Client
	unregister chan *Client

	// As goroutines readLoop dos clientes publicam aqui.
	incoming chan clientMessage

	handler EventHandler
}

// NewHub cria e inicializa um Hub ligado ao handler informado.
func NewHub(handler EventHandler) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		incoming:   make(chan clientMessage),
		handler:    handler,
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = true
			h.handler.OnConnect(client)

		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				// Fechar done é o sinal para o writeLoop daquele
				// cliente encerrar e para entregas em andamento
				// desistirem.
				close(client.done)
				h.handler.OnDisconnect(client)
			}

		case clientMsg := <-h.incoming:
			// O Hub não interpreta o conteúdo, apenas delega.
			h.handler.OnMessage(clientMsg.client, clientMsg.msg)
		}
	}
}
