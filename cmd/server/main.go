package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/caarlos0/env/v11"

	"bottomline/internal/game/card"
	"bottomline/internal/network"
	"bottomline/internal/services/cluster"
	"bottomline/internal/services/events"
	"bottomline/internal/session"
)

// Config reúne toda a configuração do servidor, carregada do ambiente.
// NATS e Consul são opcionais: sem endereço configurado o servidor roda
// sozinho, sem eventos nem registro no cluster.
type Config struct {
	ServiceName string `env:"SERVICE_NAME" envDefault:"bottomline"`
	ServicePort int    `env:"SERVICE_PORT" envDefault:"8080"`
	HealthPort  int    `env:"HEALTH_CHECK_PORT" envDefault:"8080"`

	CardsPath string `env:"CARDS_PATH"`

	NATSURL    string `env:"NATS_URL"`
	ConsulAddr string `env:"CONSUL_HTTP_ADDR"`

	RoomSweepInterval time.Duration `env:"ROOM_SWEEP_INTERVAL" envDefault:"1m"`
	RoomMaxIdle       time.Duration `env:"ROOM_MAX_IDLE" envDefault:"30m"`
}

// loadCatalog usa o catálogo embutido, ou o arquivo apontado por CARDS_PATH
// quando configurado.
func loadCatalog(path string) (*card.Catalog, error) {
	if path == "" {
		return card.LoadDefault()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return card.Load(f)
}

func main() {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		log.Fatalf("Fatal: Falha ao carregar configuração: %v", err)
	}
	log.Printf("[Main] Configuração carregada: ServiceName=%s, Port=%d, Consul=%q, NATS=%q",
		cfg.ServiceName, cfg.ServicePort, cfg.ConsulAddr, cfg.NATSURL)

	catalog, err := loadCatalog(cfg.CardsPath)
	if err != nil {
		log.Fatalf("Falha fatal ao carregar o catálogo de cartas: %v", err)
	}
	log.Println("[Main] Catálogo de cartas carregado.")

	var publisher *events.Publisher
	if cfg.NATSURL != "" {
		publisher, err = events.Connect(cfg.NATSURL)
		if err != nil {
			log.Fatalf("Falha ao conectar ao NATS em %s: %v", cfg.NATSURL, err)
		}
		defer publisher.Close()
		log.Println("[Main] Publicador de eventos conectado ao NATS.")
	}

	manager := session.NewManager(catalog, publisher, cfg.RoomSweepInterval, cfg.RoomMaxIdle)
	go manager.Run()

	server := network.NewServer(session.NewHandler(manager))

	health := cluster.NewHealthAggregator()
	if publisher != nil {
		health.AddCheck("nats", func() error {
			if !publisher.Connected() {
				return fmt.Errorf("nats desconectado")
			}
			return nil
		})
	}
	server.Handle("/health", health.Handler())

	if cfg.ConsulAddr != "" {
		consulClient, err := cluster.NewConsulClient(cfg.ConsulAddr)
		if err != nil {
			log.Fatalf("Falha ao conectar ao Consul: %v", err)
		}
		serviceID, err := cluster.Register(consulClient, cfg.ServiceName, cfg.ServicePort, cfg.HealthPort)
		if err != nil {
			log.Fatalf("Fatal: %v", err)
		}
		defer cluster.Deregister(consulClient, serviceID)
	}

	address := fmt.Sprintf("0.0.0.0:%d", cfg.ServicePort)
	log.Printf("[Main] Servidor iniciado em %s.", address)

	if err := server.Listen(address); err != nil {
		log.Fatalf("Falha fatal ao iniciar o servidor de rede: %v", err)
	}
}
