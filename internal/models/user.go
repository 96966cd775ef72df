package models

// User is an agent user. Managed outside this service.
type User struct {
	ID         uint    `gorm:"primaryKey" json:"id"`
	Username   string  `gorm:"uniqueIndex;not null" json:"username"`
	Role       string  `gorm:"not null" json:"role"`
	Department *string `json:"department"`
	EmployeeID *uint   `json:"employee_id,omitempty"`
}

// Employee is the HR record a user may be linked to.
type Employee struct {
	ID         uint    `gorm:"primaryKey" json:"id"`
	Name       string  `gorm:"not null" json:"name"`
	Email      string  `json:"email"`
	Department string  `json:"department"`
	Role       string  `json:"role"`
	Salary     float64 `json:"-"`
	ManagerID  *uint   `json:"manager_id,omitempty"`
}

// UserSummary is a user joined with their employee name.
type UserSummary struct {
	ID           uint    `json:"id"`
	Username     string  `json:"username"`
	Role         string  `json:"role"`
	Department   *string `json:"department"`
	EmployeeName *string `json:"employee_name"`
}
