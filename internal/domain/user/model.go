package user

import "time"

type Role string

const (
	RoleAdmin     Role = "admin"
	RoleManager   Role = "manager"
	RoleEngineer  Role = "engineer"
	RoleRequester Role = "requester"
)

type User struct {
	UID       uint      `gorm:"primaryKey;column:u_id" json:"u_id"`
	Username  string    `gorm:"size:50;not null;unique" json:"username"`
	Password  string    `gorm:"size:255;not null" json:"-"`
	Email     *string   `gorm:"size:100" json:"email,omitempty"`
	FullName  *string   `gorm:"size:100" json:"full_name,omitempty"`
	Role      Role      `gorm:"size:20;not null;default:'requester'" json:"role"`
	CreatedAt time.Time `gorm:"column:create_at;autoCreateTime" json:"create_at"`
	UpdatedAt time.Time `gorm:"column:update_at;autoUpdateTime" json:"update_at"`
}

func (User) TableName() string {
	return "users"
}

// DisplayName is the name recorded on ledger entries.
func (u *User) DisplayName() string {
	if u.FullName != nil && *u.FullName != "" {
		return *u.FullName
	}
	return u.Username
}

// IsManagerOrAdmin reports whether the role may approve budgets and transitions.
func (r Role) IsManagerOrAdmin() bool {
	return r == RoleAdmin || r == RoleManager
}

func IsValidRole(r string) bool {
	switch Role(r) {
	case RoleAdmin, RoleManager, RoleEngineer, RoleRequester:
		return true
	}
	return false
}
