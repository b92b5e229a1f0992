package workers

import (
	"context"
	"time"

	"buddymatch_backend/internal/logger"
	"buddymatch_backend/internal/repositories"
)

// ProposalWorker closes open proposals past their deadline. Expiry is also
// checked lazily on access; the worker sweeps the ones nobody touches.
type ProposalWorker struct {
	proposalRepo repositories.ProposalRepository
	interval     time.Duration
}

func NewProposalWorker(proposalRepo repositories.ProposalRepository) *ProposalWorker {
	return &ProposalWorker{
		proposalRepo: proposalRepo,
		interval:     15 * time.Minute,
	}
}

func (w *ProposalWorker) Start(ctx context.Context) {
	go w.closeExpiredProposals(ctx)
}

func (w *ProposalWorker) closeExpiredProposals(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Proposal worker stopped")
			return
		case <-ticker.C:
			closed, err := w.proposalRepo.CloseExpired(time.Now())
			if err != nil {
				logger.WorkerLog("proposal", "close_expired", err)
			} else if closed > 0 {
				logger.Info("Closed expired proposals", "count", closed)
			}
		}
	}
}
