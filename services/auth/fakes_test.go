package auth

import (
	"context"
	"fmt"
	"sync"

	"adminpanel/database/repository"
	"adminpanel/models"
	"adminpanel/services/otp"
)

type fakeUserRepo struct {
	mu        sync.Mutex
	byID      map[string]models.User
	createErr error
	updates   int
	// afterGet runs under the lock once GetByID has copied the record,
	// standing in for a concurrent writer.
	afterGet func(byID map[string]models.User)
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byID: map[string]models.User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, u *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	for _, existing := range r.byID {
		if existing.Email == u.Email {
			return repository.ErrDuplicate
		}
	}
	r.byID[u.ID] = *u
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", id, repository.ErrNotFound)
	}
	u.PasswordHash = ""
	if r.afterGet != nil {
		r.afterGet(r.byID)
	}
	return &u, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.byID {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) List(context.Context, models.PageRequest) ([]models.User, int64, error) {
	return nil, 0, nil
}

func (r *fakeUserRepo) MarkVerified(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.IsVerified = true
	r.byID[id] = u
	return nil
}

func (r *fakeUserRepo) Update(_ context.Context, u *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.updates++
	existing, ok := r.byID[u.ID]
	if !ok {
		return repository.ErrNotFound
	}
	updated := *u
	if updated.PasswordHash == "" {
		updated.PasswordHash = existing.PasswordHash
	}
	r.byID[u.ID] = updated
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *fakeUserRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byID)
}

type fakeAdminRepo struct {
	byID map[string]models.Admin
}

func newFakeAdminRepo() *fakeAdminRepo {
	return &fakeAdminRepo{byID: map[string]models.Admin{}}
}

func (r *fakeAdminRepo) Create(_ context.Context, a *models.Admin) error {
	for _, existing := range r.byID {
		if existing.Email == a.Email {
			return repository.ErrDuplicate
		}
	}
	r.byID[a.ID] = *a
	return nil
}

func (r *fakeAdminRepo) GetByID(_ context.Context, id string) (*models.Admin, error) {
	a, ok := r.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	a.PasswordHash = ""
	return &a, nil
}

func (r *fakeAdminRepo) GetByEmail(_ context.Context, email string) (*models.Admin, error) {
	for _, a := range r.byID {
		if a.Email == email {
			return &a, nil
		}
	}
	return nil, nil
}

func (r *fakeAdminRepo) CountAdmins(context.Context) (int64, error) {
	var n int64
	for _, a := range r.byID {
		if a.IsAdmin {
			n++
		}
	}
	return n, nil
}

// fakeGateway accepts the code "123456" for every order it sent.
type fakeGateway struct {
	sendErr   error
	resendErr error
	sent      []otp.SendRequest
	verified  []otp.VerifyRequest
}

const validCode = "123456"

func (g *fakeGateway) Send(_ context.Context, req otp.SendRequest) (string, error) {
	if g.sendErr != nil {
		return "", g.sendErr
	}
	g.sent = append(g.sent, req)
	return req.OrderID, nil
}

func (g *fakeGateway) Resend(_ context.Context, orderID string) (string, error) {
	if g.resendErr != nil {
		return "", g.resendErr
	}
	return orderID, nil
}

func (g *fakeGateway) Verify(_ context.Context, req otp.VerifyRequest) error {
	for _, s := range g.sent {
		if s.OrderID == req.OrderID && req.OTP == validCode {
			g.verified = append(g.verified, req)
			return nil
		}
	}
	return &otp.GatewayError{Op: "verify", Message: "Invalid OTP"}
}

type fakeOrderStore struct {
	bindings map[string]string
	touched  []string
}

func newFakeOrderStore() *fakeOrderStore {
	return &fakeOrderStore{bindings: map[string]string{}}
}

func (s *fakeOrderStore) Bind(_ context.Context, orderID, accountID string) error {
	s.bindings[orderID] = accountID
	return nil
}

func (s *fakeOrderStore) Resolve(_ context.Context, orderID string) (string, error) {
	id, ok := s.bindings[orderID]
	if !ok {
		return "", ErrOrderNotFound
	}
	return id, nil
}

func (s *fakeOrderStore) Touch(_ context.Context, orderID string) error {
	s.touched = append(s.touched, orderID)
	return nil
}

func (s *fakeOrderStore) Release(_ context.Context, orderID string) error {
	delete(s.bindings, orderID)
	return nil
}
