package response

import (
	"time"

	"hotel-reservation/internal/pkg/resilience"
)

type BreakerResponse struct {
	Name          string     `json:"name"`
	State         string     `json:"state"`
	Failures      int        `json:"failures"`
	Threshold     int        `json:"threshold"`
	TimeoutMs     int64      `json:"timeoutMs"`
	CooldownMs    int64      `json:"cooldownMs"`
	LastFailureAt *time.Time `json:"lastFailureAt,omitempty"`
	NextAttemptAt *time.Time `json:"nextAttemptAt,omitempty"`
}

func FromBreakerSnapshot(s resilience.Snapshot) BreakerResponse {
	resp := BreakerResponse{
		Name:       s.Name,
		State:      s.State.String(),
		Failures:   s.Failures,
		Threshold:  s.Threshold,
		TimeoutMs:  s.Timeout.Milliseconds(),
		CooldownMs: s.Cooldown.Milliseconds(),
	}
	if !s.LastFailureAt.IsZero() {
		t := s.LastFailureAt
		resp.LastFailureAt = &t
	}
	if !s.NextAttemptAt.IsZero() {
		t := s.NextAttemptAt
		resp.NextAttemptAt = &t
	}
	return resp
}
