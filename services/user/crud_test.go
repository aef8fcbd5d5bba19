package user

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"adminpanel/database/repository"
	"adminpanel/models"

	"golang.org/x/crypto/bcrypt"
)

type memUserRepo struct {
	byID map[string]*models.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{byID: map[string]*models.User{}}
}

func (r *memUserRepo) Create(_ context.Context, u *models.User) error {
	for _, existing := range r.byID {
		if existing.Email == u.Email {
			return fmt.Errorf("insert: %w", repository.ErrDuplicate)
		}
	}
	cp := *u
	r.byID[u.ID] = &cp
	return nil
}

func (r *memUserRepo) GetByID(_ context.Context, id string) (*models.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", id, repository.ErrNotFound)
	}
	cp := *u
	cp.PasswordHash = ""
	return &cp, nil
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range r.byID {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) List(_ context.Context, page models.PageRequest) ([]models.User, int64, error) {
	out := make([]models.User, 0, len(r.byID))
	for _, u := range r.byID {
		out = append(out, *u)
	}
	return out, int64(len(out)), nil
}

func (r *memUserRepo) Update(_ context.Context, u *models.User) error {
	stored, ok := r.byID[u.ID]
	if !ok {
		return repository.ErrNotFound
	}
	cp := *u
	if cp.PasswordHash == "" {
		cp.PasswordHash = stored.PasswordHash
	}
	r.byID[u.ID] = &cp
	return nil
}

func (r *memUserRepo) MarkVerified(_ context.Context, id string) error {
	u, ok := r.byID[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.IsVerified = true
	return nil
}

func (r *memUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func ptr[T any](v T) *T { return &v }

func createReq(email string) models.CreateUserRequest {
	return models.CreateUserRequest{
		Name:         "Ann",
		Email:        email,
		Password:     "secret1",
		MobileNumber: "5550001",
		Coins:        10,
	}
}

func TestCreateUserIsVerifiedAndHidesHash(t *testing.T) {
	repo := newMemUserRepo()
	svc := &DefaultUserService{Repo: repo}

	usr, err := svc.CreateUser(context.Background(), createReq(" Ann@Example.com "))
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if !usr.IsVerified {
		t.Fatal("admin-created user should be verified")
	}
	if usr.PasswordHash != "" {
		t.Fatal("returned user must not carry the password hash")
	}
	if usr.Email != "ann@example.com" {
		t.Fatalf("email = %q", usr.Email)
	}

	stored := repo.byID[usr.ID]
	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secret1")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}

	if _, err := svc.CreateUser(context.Background(), createReq("ann@example.com")); !errors.Is(err, ErrUserExists) {
		t.Fatalf("duplicate: err = %v, want ErrUserExists", err)
	}
}

func TestUpdateUser(t *testing.T) {
	ctx := context.Background()
	repo := newMemUserRepo()
	svc := &DefaultUserService{Repo: repo}

	ann, _ := svc.CreateUser(ctx, createReq("ann@example.com"))
	bob, _ := svc.CreateUser(ctx, createReq("bob@example.com"))

	tests := []struct {
		name string
		id   string
		req  models.UserUpdateRequest
		want error
	}{
		{"nothing to edit", ann.ID, models.UserUpdateRequest{}, ErrNothingToEdit},
		{"email taken", ann.ID, models.UserUpdateRequest{Email: ptr("BOB@example.com")}, ErrEmailTaken},
		{"unknown user", "missing", models.UserUpdateRequest{Name: ptr("x")}, ErrUserNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.UpdateUser(ctx, tt.id, tt.req); !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
		})
	}

	got, err := svc.UpdateUser(ctx, bob.ID, models.UserUpdateRequest{Email: ptr("bob@example.com"), Coins: ptr(int64(99))})
	if err != nil {
		t.Fatalf("UpdateUser: %v", err)
	}
	if got.Coins != 99 || got.Name != "Ann" || got.Email != "bob@example.com" {
		t.Fatalf("unexpected user %+v", got)
	}
	if repo.byID[bob.ID].PasswordHash == "" {
		t.Fatal("partial update must keep the password hash")
	}
}

func TestDeleteUser(t *testing.T) {
	ctx := context.Background()
	svc := &DefaultUserService{Repo: newMemUserRepo()}

	usr, _ := svc.CreateUser(ctx, createReq("ann@example.com"))
	if err := svc.DeleteUser(ctx, usr.ID); err != nil {
		t.Fatalf("DeleteUser: %v", err)
	}
	if _, err := svc.GetUserByID(ctx, usr.ID); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("GetUserByID after delete: err = %v", err)
	}
	if err := svc.DeleteUser(ctx, usr.ID); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("second delete: err = %v", err)
	}
}
