package tests

import (
	"tripfund/internal/repository/memory"
	"tripfund/internal/service"
)

// fixture wires the services against a fresh in-memory store and a mock
// payment authority. Every test gets its own; nothing is shared.
type fixture struct {
	tripRepo       *CountingTripRepository
	commitmentRepo *memory.CommitmentRepository
	authority      *MockAuthority
	trips          *service.TripService
	commitments    *service.CommitmentService
}

func newFixture() *fixture {
	store := memory.NewStore()
	tripRepo := NewCountingTripRepository(memory.NewTripRepository(store))
	commitmentRepo := memory.NewCommitmentRepository(store)
	authority := NewMockAuthority()

	return &fixture{
		tripRepo:       tripRepo,
		commitmentRepo: commitmentRepo,
		authority:      authority,
		trips:          service.NewTripService(tripRepo, commitmentRepo),
		commitments:    service.NewCommitmentService(tripRepo, commitmentRepo, authority, nil),
	}
}
