package user

import (
	"time"

	userDatamodel "github.com/frahmantamala/skill-exchange/internal/core/datamodel/user"
)

// User is the public profile of an account. The password hash never leaves
// the auth package.
type User struct {
	ID         int64     `json:"id" db:"id"`
	Name       string    `json:"name" db:"name"`
	Email      string    `json:"email" db:"email"`
	Mobile     string    `json:"mobile,omitempty" db:"mobile"`
	Age        *int      `json:"age,omitempty" db:"age"`
	Profession string    `json:"profession,omitempty" db:"profession"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}

func FromDataModel(u *userDatamodel.User) *User {
	return &User{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		Mobile:     u.Mobile,
		Age:        u.Age,
		Profession: u.Profession,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
}
