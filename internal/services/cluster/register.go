package cluster

import (
	"fmt"
	"log"
	"os"

	consul "github.com/hashicorp/consul/api"
)

// Register registra o serviço no Consul com um health check HTTP. O ID do
// serviço inclui o hostname, para que várias réplicas convivam no catálogo.
// Retorna o ID registrado, útil para desregistrar no desligamento.
func Register(client *consul.Client, serviceName string, servicePort, healthPort int) (string, error) {
	hostname := os.Getenv("HOSTNAME")
	if hostname == "" {
		hostname, _ = os.Hostname()
	}
	serviceID := fmt.Sprintf("%s-%s", serviceName, hostname)

	registration := &consul.AgentServiceRegistration{
		ID:   serviceID,
		Name: serviceName,
		Port: servicePort,
		// O endereço fica por conta do agente, que usa o IP de quem
		// registra. A URL do check precisa de um host resolvível na
		// rede, e o hostname do contêiner cumpre isso.
		Check: &consul.AgentServiceCheck{
			HTTP:                           fmt.Sprintf("http://%s:%d/health", hostname, healthPort),
			Timeout:                        "5s",
			Interval:                       "10s",
			DeregisterCriticalServiceAfter: "1m",
		},
	}

	if err := client.Agent().ServiceRegister(registration); err != nil {
		return "", fmt.Errorf("registrando %s no Consul: %w", serviceName, err)
	}

	log.Printf("[Cluster] Serviço '%s' registrado no Consul com ID: %s", serviceName, serviceID)
	return serviceID, nil
}

// Deregister remove o serviço do catálogo do Consul.
func Deregister(client *consul.Client, serviceID string) {
	if err := client.Agent().ServiceDeregister(serviceID); err != nil {
		log.Printf("[Cluster] Falha ao desregistrar %s: %v", serviceID, err)
	}
}
