package models

// Employee is the domain entity managed by the employee CRUD resource.
// IDs are assigned by the repository on create.
type Employee struct {
	ID       int64  `json:"id" db:"id"`
	Name     string `json:"name" db:"name"`
	Position string `json:"position" db:"position"`
}

// TableName returns the table name for the Employee model
func (Employee) TableName() string {
	return "employees"
}
