package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/jobtracker-app/jobtracker/internal/database"
)

// SnapshotService periodically copies the live collection value into the
// snapshot table. Best effort: failures are logged and never touch the
// tracker itself.
type SnapshotService struct {
	kv   *database.KV
	expr string
	cron *cron.Cron
}

func NewSnapshotService(kv *database.KV, expr string) *SnapshotService {
	return &SnapshotService{kv: kv, expr: expr}
}

// Start schedules the snapshot job. An empty expression disables snapshots.
func (s *SnapshotService) Start() error {
	if s.expr == "" {
		log.Println("[snapshot] disabled (no cron expression)")
		return nil
	}

	s.cron = cron.New()
	if _, err := s.cron.AddFunc(s.expr, s.run); err != nil {
		return fmt.Errorf("invalid snapshot cron %q: %w", s.expr, err)
	}
	s.cron.Start()
	log.Printf("[snapshot] scheduled with %q", s.expr)
	return nil
}

func (s *SnapshotService) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

func (s *SnapshotService) run() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.kv.Snapshot(ctx, ApplicationsKey); err != nil {
		log.Printf("[snapshot] failed: %v", err)
		return
	}
	log.Println("[snapshot] collection snapshot taken")
}
