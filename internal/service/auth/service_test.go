package auth

import (
	"context"
	"errors"
	"testing"

	domrepo "InvestAgent/internal/domain/repository"
	internalrepo "InvestAgent/internal/repository"
)

type nopMetrics struct{}

func (nopMetrics) RecordSeed(string, int)          {}
func (nopMetrics) RecordAuthFailure(string)        {}
func (nopMetrics) RecordTokenIssued()              {}
func (nopMetrics) RecordBarsGenerated(string, int) {}
func (nopMetrics) RecordLatency(string, float64)   {}

func newTestService() *Service {
	store := internalrepo.NewMemoryStore(
		internalrepo.WithUniqueIndex(domrepo.ColUsers, "username", "email"),
	)
	// Minimum cost keeps the hash rounds cheap in tests.
	return NewService(store, nopMetrics{}, 4)
}

func TestRegisterAndAuthenticate(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	user, err := svc.Register(ctx, "alice", "alice@example.com", "s3cretpass")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.HashedPassword == "s3cretpass" || user.HashedPassword == "" {
		t.Fatal("password must be stored hashed")
	}
	if !user.IsActive {
		t.Fatal("new users must be active")
	}

	got, err := svc.Authenticate(ctx, "alice", "s3cretpass")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if got.ID != user.ID {
		t.Fatalf("authenticated wrong user: %s vs %s", got.ID, user.ID)
	}
}

func TestRegisterInjective(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	if _, err := svc.Register(ctx, "alice", "alice@example.com", "s3cretpass"); err != nil {
		t.Fatalf("first register: %v", err)
	}

	if _, err := svc.Register(ctx, "alice", "other@example.com", "s3cretpass"); !errors.Is(err, ErrDuplicateUsername) {
		t.Fatalf("duplicate username: got %v, want ErrDuplicateUsername", err)
	}
	if _, err := svc.Register(ctx, "bob", "alice@example.com", "s3cretpass"); !errors.Is(err, ErrDuplicateEmail) {
		t.Fatalf("duplicate email: got %v, want ErrDuplicateEmail", err)
	}
}

func TestAuthenticateFailuresIndistinguishable(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	if _, err := svc.Register(ctx, "alice", "alice@example.com", "s3cretpass"); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, unknownErr := svc.Authenticate(ctx, "nobody", "whatever1")
	_, badPassErr := svc.Authenticate(ctx, "alice", "wrongpass1")

	if !errors.Is(unknownErr, ErrAuthFailed) || !errors.Is(badPassErr, ErrAuthFailed) {
		t.Fatalf("both failures must be ErrAuthFailed, got %v / %v", unknownErr, badPassErr)
	}
	if unknownErr.Error() != badPassErr.Error() {
		t.Fatal("failure causes must be indistinguishable")
	}
}

func TestGetUser(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	if _, err := svc.Register(ctx, "alice", "alice@example.com", "s3cretpass"); err != nil {
		t.Fatalf("register: %v", err)
	}

	user, err := svc.GetUser(ctx, "alice")
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if user.Email != "alice@example.com" {
		t.Fatalf("wrong user: %+v", user)
	}

	if _, err := svc.GetUser(ctx, "nobody"); !errors.Is(err, domrepo.ErrNotFound) {
		t.Fatalf("missing user: got %v, want ErrNotFound", err)
	}
}
