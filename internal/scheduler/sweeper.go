package scheduler

import (
	"context"
	"time"

	"Ecclesia/internal/domain/recurrence"
	"Ecclesia/internal/logger"
)

// Sweeper reavalia periodicamente o status das recorrências vencidas
type Sweeper struct {
	Recurrences *recurrence.Service
	Interval    time.Duration

	stop chan struct{}
	done chan struct{}
}

func NewSweeper(recurrenceSvc *recurrence.Service, interval time.Duration) *Sweeper {
	return &Sweeper{
		Recurrences: recurrenceSvc,
		Interval:    interval,
		stop:        make(chan struct{}),
		done:        make(chan struct{}),
	}
}

// Start executa a varredura em background até Stop ser chamado
func (s *Sweeper) Start() {
	go s.run()
}

func (s *Sweeper) run() {
	defer close(s.done)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	s.sweep()

	for {
		select {
		case <-ticker.C:
			s.sweep()
		case <-s.stop:
			return
		}
	}
}

func (s *Sweeper) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	changed, err := s.Recurrences.SweepExpired(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Falha na varredura de recorrências expiradas")
		return
	}

	if changed > 0 {
		logger.Info().
			Int("changed", changed).
			Msg("Recorrências expiradas atualizadas")
	}
}

// Stop encerra a varredura e aguarda a iteração corrente terminar
func (s *Sweeper) Stop(ctx context.Context) error {
	close(s.stop)
	select {
	case <-s.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
