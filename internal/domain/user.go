package domain

import (
	"context"
	"regexp"
	"strings"
	"time"
)

// Roles a user may hold. The role is stored but not yet consulted by the
// login flow; see the auth notes in DESIGN.md.
var Roles = []string{"admin", "user", "manager"}

// DefaultRole is assigned when a create request omits the role.
const DefaultRole = "user"

// ValidRole reports whether r is one of the allowed roles.
func ValidRole(r string) bool {
	for _, v := range Roles {
		if r == v {
			return true
		}
	}
	return false
}

var emailPattern = regexp.MustCompile(`^\w+([.-]?\w+)*@\w+([.-]?\w+)*(\.\w{2,3})+$`)

// ValidEmail reports whether s has a plausible email shape.
func ValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// User represents a stored user account. Username and email are unique
// across the collection; the store enforces that.
type User struct {
	ID        string    `json:"_id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Validate checks the full record against the schema rules.
func (u User) Validate() error {
	var errs FieldErrors
	if n := len(strings.TrimSpace(u.Username)); n < 3 || n > 30 {
		errs = errs.Add("username", "Username must be between 3 and 30 characters")
	}
	if !ValidEmail(strings.TrimSpace(u.Email)) {
		errs = errs.Add("email", "Please enter a valid email")
	}
	if !ValidRole(u.Role) {
		errs = errs.Add("role", "Role must be one of: admin, user, manager")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// UserPatch carries the fields supplied to a partial update.
type UserPatch struct {
	Username *string
	Email    *string
	Role     *string
}

// Validate checks only the supplied fields against the schema rules.
func (p UserPatch) Validate() error {
	var errs FieldErrors
	if p.Username != nil {
		if n := len(strings.TrimSpace(*p.Username)); n < 3 || n > 30 {
			errs = errs.Add("username", "Username must be between 3 and 30 characters")
		}
	}
	if p.Email != nil && !ValidEmail(strings.TrimSpace(*p.Email)) {
		errs = errs.Add("email", "Please enter a valid email")
	}
	if p.Role != nil && !ValidRole(*p.Role) {
		errs = errs.Add("role", "Role must be one of: admin, user, manager")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// UserRepository is the port for user persistence. Create and Update
// return FieldErrors when a unique index rejects the write.
type UserRepository interface {
	List(ctx context.Context) ([]User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	Create(ctx context.Context, user *User) error
	Update(ctx context.Context, id string, patch UserPatch, updatedAt time.Time) (*User, error)
	Delete(ctx context.Context, id string) (*User, error)
}
