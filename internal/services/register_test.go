package services

import (
	"context"
	"errors"
	"testing"

	"rubjai/internal/core"
)

func TestDecideRegistration(t *testing.T) {
	stored := &core.User{ID: 1, LineID: "U-x", Name: "สมชาย"}

	cases := []struct {
		name     string
		existing *core.User
		newName  string
		want     RegistrationAction
	}{
		{"unknown line id", nil, "สมชาย", RegisterCreate},
		{"unknown line id without name", nil, "", RegisterCreate},
		{"name changed", stored, "สมหญิง", RegisterUpdateName},
		{"same name", stored, "สมชาย", RegisterKeep},
		{"empty name keeps stored name", stored, "", RegisterKeep},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := DecideRegistration(tc.existing, tc.newName); got != tc.want {
				t.Errorf("DecideRegistration() = %v, want %v", got, tc.want)
			}
		})
	}
}

type fakeUserStore struct {
	users   map[string]*core.User
	nextID  int64
	findErr error
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[string]*core.User{}, nextID: 1}
}

func (f *fakeUserStore) FindUserByLineID(ctx context.Context, lineID string) (*core.User, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.users[lineID], nil
}

func (f *fakeUserStore) CreateUser(ctx context.Context, lineID, name string) (*core.User, error) {
	u := &core.User{ID: f.nextID, LineID: lineID, Name: name}
	f.nextID++
	f.users[lineID] = u
	return u, nil
}

func (f *fakeUserStore) UpdateUserName(ctx context.Context, lineID, name string) (*core.User, error) {
	u, ok := f.users[lineID]
	if !ok {
		return nil, errors.New("no such user")
	}
	u.Name = name
	return u, nil
}

func TestRegisterCreatesNewUser(t *testing.T) {
	store := newFakeUserStore()
	svc := NewRegisterService(store)

	res, err := svc.Register(context.Background(), "U-new", "สมชาย")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if !res.IsNewUser {
		t.Error("first registration must report a new user")
	}
	if res.User == nil || res.User.LineID != "U-new" || res.User.Name != "สมชาย" {
		t.Errorf("user = %+v", res.User)
	}
}

func TestRegisterExistingUserIsIdempotent(t *testing.T) {
	store := newFakeUserStore()
	svc := NewRegisterService(store)

	first, err := svc.Register(context.Background(), "U-x", "สมชาย")
	if err != nil {
		t.Fatalf("first Register: %v", err)
	}

	again, err := svc.Register(context.Background(), "U-x", "สมชาย")
	if err != nil {
		t.Fatalf("second Register: %v", err)
	}
	if again.IsNewUser {
		t.Error("re-registration must not report a new user")
	}
	if again.User.ID != first.User.ID {
		t.Errorf("re-registration must return the stored user, got id %d", again.User.ID)
	}
}

func TestRegisterRefreshesChangedName(t *testing.T) {
	store := newFakeUserStore()
	svc := NewRegisterService(store)

	if _, err := svc.Register(context.Background(), "U-x", "สมชาย"); err != nil {
		t.Fatalf("Register: %v", err)
	}

	res, err := svc.Register(context.Background(), "U-x", "สมหญิง")
	if err != nil {
		t.Fatalf("Register with new name: %v", err)
	}
	if res.IsNewUser {
		t.Error("rename must not report a new user")
	}
	if res.User.Name != "สมหญิง" {
		t.Errorf("name = %q, want updated", res.User.Name)
	}
}

func TestRegisterRequiresLineID(t *testing.T) {
	svc := NewRegisterService(newFakeUserStore())

	if _, err := svc.Register(context.Background(), "", "สมชาย"); !errors.Is(err, core.ErrMissingLineID) {
		t.Fatalf("error = %v, want ErrMissingLineID", err)
	}
}

func TestRegisterSurfacesLookupErrors(t *testing.T) {
	store := newFakeUserStore()
	store.findErr = errors.New("db gone")
	svc := NewRegisterService(store)

	if _, err := svc.Register(context.Background(), "U-x", ""); err == nil {
		t.Fatal("lookup failure must propagate")
	}
}
