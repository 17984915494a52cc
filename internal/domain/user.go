package domain

import (
	"time"

	"github.com/google/uuid"
)

// Роли аккаунтов: обычный пользователь (турист) и администратор
// (охотничья ассоциация, публикующая зоны)
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User - аккаунт пользователя или ассоциации
type User struct {
	ID               uuid.UUID `json:"id" db:"id"`
	Email            string    `json:"email" db:"email"`
	PasswordHash     string    `json:"-" db:"password_hash"`
	Name             string    `json:"name" db:"name"`
	Role             string    `json:"role" db:"role"`
	OrganizationName string    `json:"organization_name,omitempty" db:"organization_name"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
}

// IsAdmin - true для аккаунтов ассоциаций
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// AssociationName - отображаемое имя ассоциации (fallback на имя пользователя)
func (u *User) AssociationName() string {
	if u.OrganizationName != "" {
		return u.OrganizationName
	}
	return u.Name
}
