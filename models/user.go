package models

import "time"

type Role string
type EmployeeRole string

const (
	RoleAdmin           Role = "Admin"
	RoleRestaurantOwner Role = "RestaurantOwner"
	RoleStaff           Role = "Staff"
	RoleCustomer        Role = "Customer"

	EmployeeCashier      EmployeeRole = "Cashier"
	EmployeeKitchenStaff EmployeeRole = "KitchenStaff"
)

type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Email        string    `gorm:"unique;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Name         string    `json:"name"`
	Phone        string    `json:"phone"`
	Role         Role      `gorm:"type:VARCHAR(20);default:'Customer'" json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Employee binds a staff user to a branch with a kitchen-side role.
type Employee struct {
	ID          uint         `gorm:"primaryKey" json:"id"`
	UserID      uint         `gorm:"not null;index" json:"user_id"`
	User        User         `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user"`
	BranchID    uint         `gorm:"not null;index" json:"branch_id"`
	Branch      Branch       `gorm:"foreignKey:BranchID;constraint:OnDelete:CASCADE" json:"-"`
	Role        EmployeeRole `gorm:"type:VARCHAR(20)" json:"role"`
	Permissions string       `gorm:"type:text" json:"permissions"`
	CreatedAt   time.Time    `json:"created_at"`
}
