package services

import (
	"time"

	log "github.com/sirupsen/logrus"
)

// SessionSweeper periodically unmounts idle view sessions
type SessionSweeper struct {
	ticker   *time.Ticker
	stopChan chan bool
	views    *ViewService
	interval time.Duration
	idle     time.Duration
}

func NewSessionSweeper(views *ViewService, interval, idle time.Duration) *SessionSweeper {
	if interval <= 0 {
		interval = time.Minute
	}
	return &SessionSweeper{
		stopChan: make(chan bool),
		views:    views,
		interval: interval,
		idle:     idle,
	}
}

func (s *SessionSweeper) Start() {
	s.ticker = time.NewTicker(s.interval)

	go func() {
		for {
			select {
			case <-s.ticker.C:
				s.sweep()
			case <-s.stopChan:
				return
			}
		}
	}()

	log.WithFields(log.Fields{
		"interval": s.interval.String(),
		"idle":     s.idle.String(),
	}).Info("[sweeper] Session sweeper started")
}

func (s *SessionSweeper) Stop() {
	if s.ticker != nil {
		s.ticker.Stop()
	}
	close(s.stopChan)
	log.Info("[sweeper] Session sweeper stopped")
}

func (s *SessionSweeper) sweep() {
	if removed := s.views.Sweep(s.idle); removed > 0 {
		log.WithFields(log.Fields{
			"removed": removed,
			"active":  s.views.ActiveSessions(),
		}).Debug("[sweeper] Unmounted idle view sessions")
	}
}
