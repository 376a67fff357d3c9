package cluster

import (
	"encoding/json"
	"net/http"
	"sync"
)

// CheckFunc é uma verificação de saúde. Retorna erro quando o componente
// verificado está indisponível.
type CheckFunc func() error

// HealthAggregator junta várias verificações de saúde em um único endpoint.
// Se todas passarem o endpoint responde 200; qualquer falha vira 503 com o
// detalhe de cada verificação que falhou.
type HealthAggregator struct {
	mu     sync.RWMutex
	checks map[string]CheckFunc
}

// NewHealthAggregator cria um agregador vazio. Sem verificações registradas
// o endpoint sempre responde saudável, o que serve como liveness check.
func NewHealthAggregator() *HealthAggregator {
	return &HealthAggregator{
		checks: make(map[string]CheckFunc),
	}
}

// AddCheck registra uma verificação sob um nome.
func (h *HealthAggregator) AddCheck(name string, check CheckFunc) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.checks[name] = check
}

// Handler devolve o http.HandlerFunc que executa todas as verificações.
func (h *HealthAggregator) Handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.mu.RLock()
		defer h.mu.RUnlock()

		failures := make(map[string]string)
		for name, check := range h.checks {
			if err := check(); err != nil {
				failures[name] = err.Error()
			}
		}

		w.Header().Set("Content-Type", "application/json; charset=utf-8")

		if len(failures) > 0 {
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(failures)
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{"status": "healthy"})
	}
}
