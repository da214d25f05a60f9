package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/pastryvapors/promohub/backend/internal/repositories"
	"github.com/pastryvapors/promohub/backend/pkg/config"
	"github.com/robfig/cron/v3"
)

// Scheduler runs the background maintenance jobs: counter reconciliation
// and the suspension sweep.
type Scheduler struct {
	cron           *cron.Cron
	userRepository repositories.UserRepository
	submissionRepo repositories.SubmissionRepository
	cfg            *config.Config
}

// New creates a Scheduler with the jobs registered but not running
func New(cfg *config.Config, userRepo repositories.UserRepository, submissionRepo repositories.SubmissionRepository) (*Scheduler, error) {
	s := &Scheduler{
		cron:           cron.New(),
		userRepository: userRepo,
		submissionRepo: submissionRepo,
		cfg:            cfg,
	}

	if _, err := s.cron.AddFunc(cfg.ReconcileCron, s.ReconcileCounters); err != nil {
		return nil, err
	}
	if _, err := s.cron.AddFunc(cfg.SuspensionSweepCron, s.SweepSuspensions); err != nil {
		return nil, err
	}
	return s, nil
}

// Start launches the cron loop in its own goroutine
func (s *Scheduler) Start() {
	s.cron.Start()
	log.Println("Scheduler started")
}

// Stop halts the cron loop and waits for running jobs
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

// ReconcileCounters recomputes each promoter's points and approved-post
// counters from the approved submissions. The maintained counters can drift
// if a credit and its submission update ever land apart; this job restores
// the submission log as the source of truth.
func (s *Scheduler) ReconcileCounters() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	totals, err := s.submissionRepo.ApprovedTotals(ctx)
	if err != nil {
		log.Println("reconciliation: failed to aggregate submissions:", err)
		return
	}

	promoters, err := s.userRepository.GetPromoters()
	if err != nil {
		log.Println("reconciliation: failed to list promoters:", err)
		return
	}

	fixed := 0
	for _, p := range promoters {
		want := totals[p.ID]
		if p.Points == want.Points && p.TotalApprovedPosts == want.Count {
			continue
		}
		if err := s.userRepository.SetCounters(p.ID, want.Points, want.Count); err != nil {
			log.Printf("reconciliation: failed to fix counters for user %d: %v", p.ID, err)
			continue
		}
		fixed++
	}
	if fixed > 0 {
		log.Printf("reconciliation: corrected counters for %d promoters", fixed)
	}
}

// SweepSuspensions clears suspensions whose end time has passed, so the
// flag goes away even for promoters who never log back in
func (s *Scheduler) SweepSuspensions() {
	cleared, err := s.userRepository.ClearExpiredSuspensions(time.Now())
	if err != nil {
		log.Println("suspension sweep failed:", err)
		return
	}
	if cleared > 0 {
		log.Printf("suspension sweep: cleared %d expired suspensions", cleared)
	}
}
