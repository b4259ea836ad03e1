package docstore

import (
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/Shad0wcrushers/IDGuides/internal/models"
)

// UserInput holds the fields for a new user account.
type UserInput struct {
	Email  string
	Name   string
	Role   models.Role
	Avatar string
}

// UserPatch is a partial update. Nil fields are left unchanged.
type UserPatch struct {
	Email  *string
	Name   *string
	Role   *models.Role
	Avatar *string
}

// AddUser assigns a fresh ID, appends the account, and persists the user
// collection.
func (s *Store) AddUser(in UserInput) models.User {
	s.mu.Lock()
	u := models.User{
		ID:     uuid.NewString(),
		Email:  in.Email,
		Name:   in.Name,
		Role:   in.Role,
		Avatar: in.Avatar,
	}
	s.users = append(s.users, u)
	s.persistUsersLocked()
	snap, subs := s.commitLocked()
	s.mu.Unlock()

	s.deliver(snap, Change{Op: OpUserAdd, ID: u.ID}, subs)
	s.notifySuccess("User %q has been created", u.DisplayName())
	return u
}

// UpdateUser shallow-merges patch onto the matching user and persists. An
// unknown id is a silent no-op.
func (s *Store) UpdateUser(id string, patch UserPatch) {
	s.mu.Lock()
	var updated *models.User
	for i := range s.users {
		if s.users[i].ID != id {
			continue
		}
		u := &s.users[i]
		if patch.Email != nil {
			u.Email = *patch.Email
		}
		if patch.Name != nil {
			u.Name = *patch.Name
		}
		if patch.Role != nil {
			u.Role = *patch.Role
		}
		if patch.Avatar != nil {
			u.Avatar = *patch.Avatar
		}
		updated = u
		break
	}
	s.persistUsersLocked()
	snap, subs := s.commitLocked()
	s.mu.Unlock()

	s.deliver(snap, Change{Op: OpUserUpdate, ID: id}, subs)
	if updated != nil && patch.Role != nil {
		s.notifySuccess("%s is now a %s", updated.DisplayName(), *patch.Role)
	} else {
		s.notifySuccess("User has been updated")
	}
}

// DeleteUser removes the account unconditionally and persists. Deleting
// the signed-in principal does not log them out — the session pointer is
// its own record.
func (s *Store) DeleteUser(id string) {
	s.mu.Lock()
	for i := range s.users {
		if s.users[i].ID == id {
			s.users = append(s.users[:i], s.users[i+1:]...)
			break
		}
	}
	s.persistUsersLocked()
	snap, subs := s.commitLocked()
	s.mu.Unlock()

	s.deliver(snap, Change{Op: OpUserDelete, ID: id}, subs)
	s.notifySuccess("User has been deleted")
}

// Login authenticates against the user collection with the shared demo
// credential. On success the principal is set and persisted; on failure
// the principal is unchanged and ErrInvalidCredentials is returned. The
// error never reveals whether the email exists.
func (s *Store) Login(email, password string) (models.User, error) {
	s.mu.Lock()
	var user *models.User
	for i := range s.users {
		if s.users[i].Email == email {
			user = &s.users[i]
			break
		}
	}

	if user == nil || bcrypt.CompareHashAndPassword(s.demoHash, []byte(password)) != nil {
		s.mu.Unlock()
		s.notifyError("Invalid email or password")
		return models.User{}, ErrInvalidCredentials
	}

	u := *user
	s.currentUser = &u
	s.persistSessionLocked()
	snap, subs := s.commitLocked()
	s.mu.Unlock()

	s.deliver(snap, Change{Op: OpLogin, ID: u.ID}, subs)
	s.notifySuccess("Welcome back, %s!", u.DisplayName())
	return u, nil
}

// Logout clears the principal and its durable record.
func (s *Store) Logout() {
	s.mu.Lock()
	s.currentUser = nil
	s.persistSessionLocked()
	snap, subs := s.commitLocked()
	s.mu.Unlock()

	s.deliver(snap, Change{Op: OpLogout}, subs)
	s.notifySuccess("You've been logged out successfully")
}
