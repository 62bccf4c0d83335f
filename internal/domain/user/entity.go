package user

import "time"

type Role string

const (
	RoleAdmin    Role = "admin"    // Sees and manages every employee's records
	RoleEmployee Role = "employee" // Own records only
)

type Department string

const (
	DepartmentHR          Department = "HR"
	DepartmentFinance     Department = "Finance"
	DepartmentOperations  Department = "Operations"
	DepartmentEngineering Department = "Engineering"
	DepartmentSupport     Department = "Support"
	DepartmentSales       Department = "Sales"
	DepartmentMarketing   Department = "Marketing"
	DepartmentAdmin       Department = "Admin"
	DepartmentManagement  Department = "Management"
)

var Departments = []Department{
	DepartmentHR,
	DepartmentFinance,
	DepartmentOperations,
	DepartmentEngineering,
	DepartmentSupport,
	DepartmentSales,
	DepartmentMarketing,
	DepartmentAdmin,
	DepartmentManagement,
}

func (d Department) IsValid() bool {
	for _, dep := range Departments {
		if dep == d {
			return true
		}
	}
	return false
}

type User struct {
	ID                   string
	EmployeeID           string
	Email                string
	FullName             string
	Department           Department
	Role                 Role
	PasswordHash         *string
	OAuthProvider        *string
	OAuthProviderID      *string
	PendingEmail         *string
	EmailChangeToken     *string
	EmailChangeExpiresAt *time.Time
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// IsAdmin checks if user holds the admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
