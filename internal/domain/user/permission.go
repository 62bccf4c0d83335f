package user

type Permission string

const (
	PermissionUsersSelect Permission = "users.select"
	PermissionUsersDelete Permission = "users.delete"

	PermissionAttendanceRecordsSelect Permission = "attendance_records.select"
	PermissionAttendanceRecordsDelete Permission = "attendance_records.delete"
	PermissionAttendanceRecordsUpdate Permission = "attendance_records.update"

	PermissionAttendanceSummariesSelect Permission = "attendance_summaries.select"
	PermissionAttendanceSummariesDelete Permission = "attendance_summaries.delete"
)

// RolePermissions maps roles to their permissions.
// Permissions grant access to other employees' data; everyone can always act on their own.
var RolePermissions = map[Role][]Permission{
	RoleAdmin: {
		PermissionUsersSelect,
		PermissionUsersDelete,
		PermissionAttendanceRecordsSelect,
		PermissionAttendanceRecordsDelete,
		PermissionAttendanceRecordsUpdate,
		PermissionAttendanceSummariesSelect,
		PermissionAttendanceSummariesDelete,
	},
	RoleEmployee: {},
}

// HasPermission checks if a role has a specific permission
func HasPermission(role Role, permission Permission) bool {
	permissions, exists := RolePermissions[role]
	if !exists {
		return false
	}

	for _, p := range permissions {
		if p == permission {
			return true
		}
	}

	return false
}
