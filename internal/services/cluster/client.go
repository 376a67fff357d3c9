// Pacote cluster integra o servidor ao Consul: conexão com o agente,
// registro do serviço e o endpoint de health check que o Consul consulta.
package cluster

import (
	"fmt"
	"log"
	"strings"

	consul "github.com/hashicorp/consul/api"
)

// NewConsulClient conecta a uma lista de endereços de agentes Consul,
// separados por vírgula, e devolve o primeiro agente saudável com líder.
func NewConsulClient(addrs string) (*consul.Client, error) {
	nodes := strings.Split(addrs, ",")
	for _, node := range nodes {
		node = strings.TrimSpace(node)
		cfg := consul.DefaultConfig()
		cfg.Address = node

		client, err := consul.NewClient(cfg)
		if err != nil {
			log.Printf("[Cluster] Falha ao tentar %s: %v", node, err)
			continue
		}

		if _, err := client.Status().Leader(); err != nil {
			log.Printf("[Cluster] %s não respondeu ao health check: %v", node, err)
			continue
		}

		log.Printf("[Cluster] Conectado ao nó Consul: %s", node)
		return client, nil
	}

	return nil, fmt.Errorf("nenhum nó Consul disponível em: %s", addrs)
}
