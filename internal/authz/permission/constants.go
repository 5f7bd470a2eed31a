package permission

// Subject groups permissions for display. Membership is informational only.
type Subject string

const (
	SubjectUser       Subject = "user"
	SubjectRole       Subject = "role"
	SubjectPermission Subject = "permission"
	SubjectBlog       Subject = "blog"
	SubjectCourse     Subject = "course"
	SubjectService    Subject = "service"
	SubjectMisc       Subject = "misc"
)

// Permission describes one entry of the registry.
type Permission struct {
	ID          string
	Subject     Subject
	Description string
}

// Permission ID constants
const (
	// User permissions
	UserView         = "user_view"
	UserViewOthers   = "user_view_others"
	UserAdd          = "user_add"
	UserEdit         = "user_edit"
	UserEditOthers   = "user_edit_others"
	UserDelete       = "user_delete"
	UserDeleteOthers = "user_delete_others"

	// Role permissions
	RoleView   = "role_view"
	RoleAdd    = "role_add"
	RoleEdit   = "role_edit"
	RoleDelete = "role_delete"

	// Permission permissions
	PermissionView = "permission_view"

	// Blog permissions
	BlogsView          = "blogs_view"
	BlogsViewPublished = "blogs_view_published"
	BlogsAdd           = "blogs_add"
	BlogsEdit          = "blogs_edit"
	BlogsEditOthers    = "blogs_edit_others"
	BlogsPublish       = "blogs_publish"
	BlogsDelete        = "blogs_delete"

	// Course permissions
	CourseView          = "course_view"
	CourseViewPublished = "course_view_published"
	CourseAdd           = "course_add"
	CourseEdit          = "course_edit"
	CourseDelete        = "course_delete"
	CourseScrape        = "course_scrape"

	// Service permissions
	ServiceView          = "service_view"
	ServiceViewPublished = "service_view_published"
	ServiceAdd           = "service_add"
	ServiceEdit          = "service_edit"
	ServiceDelete        = "service_delete"

	// Misc permissions
	DashboardView = "dashboard_view"
	StaticDBView  = "static_db_view"
	StaticDBEdit  = "static_db_edit"
)

// ordered is the registry in its canonical order. Everything else is derived
// from it, so adding a permission is a one-line edit here.
var ordered = []Permission{
	{ID: UserView, Subject: SubjectUser, Description: "View own user profile"},
	{ID: UserViewOthers, Subject: SubjectUser, Description: "View other users"},
	{ID: UserAdd, Subject: SubjectUser, Description: "Create users"},
	{ID: UserEdit, Subject: SubjectUser, Description: "Edit own user profile"},
	{ID: UserEditOthers, Subject: SubjectUser, Description: "Edit other users, including their roles"},
	{ID: UserDelete, Subject: SubjectUser, Description: "Delete own account"},
	{ID: UserDeleteOthers, Subject: SubjectUser, Description: "Delete other users"},

	{ID: RoleView, Subject: SubjectRole, Description: "View roles"},
	{ID: RoleAdd, Subject: SubjectRole, Description: "Create roles"},
	{ID: RoleEdit, Subject: SubjectRole, Description: "Edit roles and change their status"},
	{ID: RoleDelete, Subject: SubjectRole, Description: "Delete roles"},

	{ID: PermissionView, Subject: SubjectPermission, Description: "View the permission registry"},

	{ID: BlogsView, Subject: SubjectBlog, Description: "View all blog posts, including drafts"},
	{ID: BlogsViewPublished, Subject: SubjectBlog, Description: "View published blog posts"},
	{ID: BlogsAdd, Subject: SubjectBlog, Description: "Create blog posts"},
	{ID: BlogsEdit, Subject: SubjectBlog, Description: "Edit own blog posts"},
	{ID: BlogsEditOthers, Subject: SubjectBlog, Description: "Edit blog posts of other authors"},
	{ID: BlogsPublish, Subject: SubjectBlog, Description: "Publish and unpublish blog posts"},
	{ID: BlogsDelete, Subject: SubjectBlog, Description: "Delete blog posts"},

	{ID: CourseView, Subject: SubjectCourse, Description: "View all courses"},
	{ID: CourseViewPublished, Subject: SubjectCourse, Description: "View published courses"},
	{ID: CourseAdd, Subject: SubjectCourse, Description: "Create courses"},
	{ID: CourseEdit, Subject: SubjectCourse, Description: "Edit courses"},
	{ID: CourseDelete, Subject: SubjectCourse, Description: "Delete courses"},
	{ID: CourseScrape, Subject: SubjectCourse, Description: "Run the course scraper"},

	{ID: ServiceView, Subject: SubjectService, Description: "View all services"},
	{ID: ServiceViewPublished, Subject: SubjectService, Description: "View published services"},
	{ID: ServiceAdd, Subject: SubjectService, Description: "Create services"},
	{ID: ServiceEdit, Subject: SubjectService, Description: "Edit services"},
	{ID: ServiceDelete, Subject: SubjectService, Description: "Delete services"},

	{ID: DashboardView, Subject: SubjectMisc, Description: "Open the admin dashboard"},
	{ID: StaticDBView, Subject: SubjectMisc, Description: "View static databases"},
	{ID: StaticDBEdit, Subject: SubjectMisc, Description: "Edit static database schemas and rows"},
}

// registry indexes ordered by ID
var registry = func() map[string]Permission {
	m := make(map[string]Permission, len(ordered))
	for _, p := range ordered {
		if _, dup := m[p.ID]; dup {
			panic("permission registered twice: " + p.ID)
		}
		m[p.ID] = p
	}
	return m
}()

// userBundle is the published-content subset granted to every user.
var userBundle = []string{
	BlogsViewPublished,
	CourseViewPublished,
	ServiceViewPublished,
}

// All returns every registered permission in registry order.
func All() []Permission {
	return append([]Permission(nil), ordered...)
}

// IDs returns every permission ID in registry order.
func IDs() []string {
	ids := make([]string, len(ordered))
	for i, p := range ordered {
		ids[i] = p.ID
	}
	return ids
}

// Subjects returns each subject once, in the order it first appears in the
// registry.
func Subjects() []Subject {
	var subjects []Subject
	seen := make(map[Subject]bool)
	for _, p := range ordered {
		if !seen[p.Subject] {
			seen[p.Subject] = true
			subjects = append(subjects, p.Subject)
		}
	}
	return subjects
}

// BySubject returns the permissions of one subject in registry order.
func BySubject(subject Subject) []Permission {
	var result []Permission
	for _, p := range ordered {
		if p.Subject == subject {
			result = append(result, p)
		}
	}
	return result
}

// IsValid checks if a permission ID exists in the registry
func IsValid(permissionID string) bool {
	_, exists := registry[permissionID]
	return exists
}

// Invalid returns the entries of ids that are not in the registry, in input order.
func Invalid(ids []string) []string {
	var bad []string
	for _, id := range ids {
		if !IsValid(id) {
			bad = append(bad, id)
		}
	}
	return bad
}

// OperatorPermissions is the bundle of the operator role: the whole registry,
// computed at call time.
func OperatorPermissions() []string {
	return IDs()
}

// UserPermissions is the bundle of the user role.
func UserPermissions() []string {
	return append([]string(nil), userBundle...)
}
