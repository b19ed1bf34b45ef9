package health

import (
	"context"
	"time"
)

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Status is the health payload.
type Status struct {
	OK          bool   `json:"ok"`
	ObjectStore string `json:"objectStore"`
	Ledger      string `json:"ledger"`
}

// Service encapsulates health-related checks.
type Service struct {
	db        Pinger
	storeType string
}

// NewService constructs a new health service. db may be nil when the run
// ledger is kept in memory.
func NewService(db Pinger, storeType string) *Service {
	return &Service{db: db, storeType: storeType}
}

// Status reports whether the ledger database answers. Storage is only named,
// not probed.
func (s *Service) Status(ctx context.Context) Status {
	st := Status{OK: true, ObjectStore: s.storeType, Ledger: "memory"}
	if s.db == nil {
		return st
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := s.db.PingContext(ctx); err != nil {
		st.OK = false
		st.Ledger = "unreachable"
		return st
	}
	st.Ledger = "postgres"
	return st
}
