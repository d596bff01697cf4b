package domain

import "time"

const (
	RoleAdmin   = "Admin"
	RoleTrainer = "Trainer"
	RoleStudent = "Student"
)

// ValidRole reports whether role is one of the platform roles.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleTrainer, RoleStudent:
		return true
	}
	return false
}

// User models a platform account. PasswordHash is never serialized.
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	Name         string    `json:"name,omitempty"`
	Phone        string    `json:"phone,omitempty"`
	Location     string    `json:"location,omitempty"`
	About        string    `json:"about,omitempty"`
	Skills       []string  `json:"skills"`
	ProfilePic   *string   `json:"profilePic"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Redacted returns a copy safe to hand to callers: the password hash is
// cleared and a nil skills slice is normalised to an empty one so the JSON
// form is always an array.
func (u User) Redacted() User {
	u.PasswordHash = ""
	if u.Skills == nil {
		u.Skills = []string{}
	}
	return u
}

// UserPatch is a partial update: only non-nil fields are applied.
// Skills carries the already-coerced value; nil means "leave unchanged".
type UserPatch struct {
	Name       *string
	Phone      *string
	Location   *string
	About      *string
	Skills     []string
	ProfilePic *string
}

// Empty reports whether the patch would change nothing.
func (p UserPatch) Empty() bool {
	return p.Name == nil && p.Phone == nil && p.Location == nil &&
		p.About == nil && p.Skills == nil && p.ProfilePic == nil
}

// Apply overlays the patch onto u.
func (p UserPatch) Apply(u *User) {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Phone != nil {
		u.Phone = *p.Phone
	}
	if p.Location != nil {
		u.Location = *p.Location
	}
	if p.About != nil {
		u.About = *p.About
	}
	if p.Skills != nil {
		u.Skills = p.Skills
	}
	if p.ProfilePic != nil {
		u.ProfilePic = p.ProfilePic
	}
}
