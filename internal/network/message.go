package network

import "encoding/json"

// Message é o envelope padrão para toda a comunicação com o frontend.
// Action identifica a operação (ex: "SelectCharacter", "TurnStarts") e
// Data carrega os campos específicos em JSON bruto, decodificados só
// por quem conhece a action.
type Message struct {
	Action string          `json:"action"`
	Data   json.RawMessage `json:"data,omitempty"`
}
