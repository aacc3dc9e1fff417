package model

// Permission represents a string code for a specific system action.
type Permission string

const (
	// PermissionEvaluationsRead allows viewing any student's submission lines and history.
	PermissionEvaluationsRead Permission = "evaluations:read"

	// PermissionEvaluationsWrite allows submitting an evaluation on behalf of a student.
	PermissionEvaluationsWrite Permission = "evaluations:write"

	// PermissionEvaluationsReadClass allows viewing a class's aggregated evaluations.
	PermissionEvaluationsReadClass Permission = "evaluations:read_class"

	// PermissionUsersRead allows viewing user lists and details across roles.
	PermissionUsersRead Permission = "users:read"

	// PermissionUsersWrite allows creating, updating, and deactivating users.
	PermissionUsersWrite Permission = "users:write"

	// PermissionUsersImport allows bulk provisioning of accounts from a spreadsheet.
	PermissionUsersImport Permission = "users:import"

	// PermissionClassesRead allows viewing classes.
	PermissionClassesRead Permission = "classes:read"

	// PermissionClassesWrite allows creating, updating, and deleting classes.
	PermissionClassesWrite Permission = "classes:write"

	// PermissionDepartmentsRead allows viewing departments.
	PermissionDepartmentsRead Permission = "departments:read"

	// PermissionDepartmentsWrite allows creating, updating, and deleting departments.
	PermissionDepartmentsWrite Permission = "departments:write"

	// PermissionSemestersRead allows viewing semesters.
	PermissionSemestersRead Permission = "semesters:read"

	// PermissionSemestersWrite allows creating, updating, and deleting semesters.
	PermissionSemestersWrite Permission = "semesters:write"

	// PermissionQuestionsRead allows viewing the question catalogue.
	PermissionQuestionsRead Permission = "questions:read"

	// PermissionQuestionsWrite allows editing questions, answers, and their categories.
	PermissionQuestionsWrite Permission = "questions:write"

	// PermissionRolesRead allows viewing roles and permissions.
	PermissionRolesRead Permission = "roles:read"

	// PermissionRolesWrite allows editing role permission assignments.
	PermissionRolesWrite Permission = "roles:write"

	// PermissionDashboardRead allows viewing the admin dashboard.
	PermissionDashboardRead Permission = "dashboard:read"
)

// AllPermissions is a slice of all available permissions.
var AllPermissions = []Permission{
	PermissionEvaluationsRead,
	PermissionEvaluationsWrite,
	PermissionEvaluationsReadClass,
	PermissionUsersRead,
	PermissionUsersWrite,
	PermissionUsersImport,
	PermissionClassesRead,
	PermissionClassesWrite,
	PermissionDepartmentsRead,
	PermissionDepartmentsWrite,
	PermissionSemestersRead,
	PermissionSemestersWrite,
	PermissionQuestionsRead,
	PermissionQuestionsWrite,
	PermissionRolesRead,
	PermissionRolesWrite,
	PermissionDashboardRead,
}
