// Package directory maps login identifiers to user accounts.
package directory

import (
	"errors"
	"sort"

	"github.com/carson-networks/ledger-server/internal/wallet"
)

var (
	ErrDuplicateLogin       = errors.New("login already registered")
	ErrAuthenticationFailed = errors.New("invalid login or secret")
	ErrUserNotFound         = errors.New("user not found")
)

// User is a registered account: an immutable login, a credential secret
// compared by exact equality, and exactly one wallet.
type User struct {
	Login  string
	Secret string
	Wallet *wallet.Wallet
}

// Directory holds all registered users keyed by login. Logins are unique and
// case-sensitive.
type Directory struct {
	users map[string]*User
}

func New() *Directory {
	return &Directory{users: make(map[string]*User)}
}

// RestoreFromUsers rebuilds a directory from persisted users.
func RestoreFromUsers(users []*User) *Directory {
	d := New()
	for _, u := range users {
		d.users[u.Login] = u
	}
	return d
}

// Register creates a user with an empty wallet. Login format constraints are
// the caller's concern; this only enforces uniqueness.
func (d *Directory) Register(login, secret string) (*User, error) {
	if _, ok := d.users[login]; ok {
		return nil, ErrDuplicateLogin
	}
	u := &User{Login: login, Secret: secret, Wallet: wallet.New()}
	d.users[login] = u
	return u, nil
}

// Deregister removes a user by login and reports whether one existed.
// Corrective flows only (registration rollback); no normal operation deletes
// users.
func (d *Directory) Deregister(login string) bool {
	if _, ok := d.users[login]; !ok {
		return false
	}
	delete(d.users, login)
	return true
}

// Authenticate returns the user when the login exists and the secret matches
// exactly. No lockout or rate limiting is applied.
func (d *Directory) Authenticate(login, secret string) (*User, error) {
	u, ok := d.users[login]
	if !ok || u.Secret != secret {
		return nil, ErrAuthenticationFailed
	}
	return u, nil
}

// Resolve returns the user for a login; used for transfer counterparty lookup.
func (d *Directory) Resolve(login string) (*User, error) {
	u, ok := d.users[login]
	if !ok {
		return nil, ErrUserNotFound
	}
	return u, nil
}

func (d *Directory) Len() int {
	return len(d.users)
}

// Users returns all users sorted by login.
func (d *Directory) Users() []*User {
	out := make([]*User, 0, len(d.users))
	for _, u := range d.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Login < out[j].Login })
	return out
}
