package services

import (
	"context"
	"log"
	"time"

	"creditdesk/internal/adapters/persistence/repositories"
	"creditdesk/internal/config"

	"github.com/robfig/cron/v3"
)

// CronService schedules the recurring jobs: the nightly loan
// lifecycle sweep and refresh token cleanup.
type CronService struct {
	cron             *cron.Cron
	loanService      *LoanService
	refreshTokenRepo repositories.RefreshTokenRepository
	cfg              *config.Config
}

// NewCronService creates a new cron service
func NewCronService(
	loanService *LoanService,
	refreshTokenRepo repositories.RefreshTokenRepository,
	cfg *config.Config,
) *CronService {
	return &CronService{
		cron:             cron.New(),
		loanService:      loanService,
		refreshTokenRepo: refreshTokenRepo,
		cfg:              cfg,
	}
}

// Start registers and launches all scheduled jobs
func (s *CronService) Start() error {
	// Nightly loan sweep (default 02:00)
	if _, err := s.cron.AddFunc(s.cfg.Cron.LoanSweepSpec, s.runLoanSweep); err != nil {
		return err
	}

	// Expired refresh token cleanup (default 03:00)
	if _, err := s.cron.AddFunc(s.cfg.Cron.TokenCleanupSpec, s.runTokenCleanup); err != nil {
		return err
	}

	s.cron.Start()
	log.Printf("🚀 CronService started (loan sweep: %q, token cleanup: %q)",
		s.cfg.Cron.LoanSweepSpec, s.cfg.Cron.TokenCleanupSpec)
	return nil
}

// Stop stops the scheduler and waits for running jobs
func (s *CronService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Println("🛑 CronService stopped")
}

func (s *CronService) runLoanSweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	if _, err := s.loanService.CheckLoans(ctx); err != nil {
		log.Printf("❌ Scheduled loan sweep failed: %v", err)
	}
}

func (s *CronService) runTokenCleanup() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if err := s.refreshTokenRepo.DeleteExpired(ctx); err != nil {
		log.Printf("❌ Refresh token cleanup failed: %v", err)
	}
}
