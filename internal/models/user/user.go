package user

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const RoleAdmin Role = "Admin"
const RoleManager Role = "Manager"
const RoleUser Role = "User"

// роль всегда одна из трёх, никакого дефолта с правами
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleManager || r == RoleUser
}

type User struct {
	ID           uuid.UUID  `json:"id" db:"id"`
	Name         string     `json:"name" db:"name"`
	Email        string     `json:"email" db:"email"`
	PasswordHash string     `json:"-" db:"password_hash"`
	Role         Role       `json:"role" db:"role"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt    *time.Time `json:"updated_at,omitempty" db:"updated_at,omitempty"`
	DeletedAt    *time.Time `json:"deleted_at,omitempty" db:"deleted_at,omitempty"`
}

func (u *User) IsDeleted() bool {
	return u.DeletedAt != nil
}

// Update - явный список полей, которые можно менять через API.
// nil-поле не трогается, пароль приходит уже захешированным.
type Update struct {
	Name         *string
	Email        *string
	PasswordHash *string
	Role         *Role
}

func (u *User) Apply(upd Update) {
	if upd.Name != nil {
		u.Name = *upd.Name
	}
	if upd.Email != nil {
		u.Email = *upd.Email
	}
	if upd.PasswordHash != nil {
		u.PasswordHash = *upd.PasswordHash
	}
	if upd.Role != nil {
		u.Role = *upd.Role
	}
}
