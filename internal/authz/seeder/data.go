package seeder

import "github.com/philly/member-admin/internal/authz/permission"

// SampleRole is a custom role created on first seed
type SampleRole struct {
	Name        string
	Description string
	Rank        int
	Permissions []string
}

// SampleRoles are inserted below the two default roles. Ranks leave gaps
// so operators can slot roles in between.
var SampleRoles = []SampleRole{
	{
		Name:        "moderator",
		Description: "Reviews and publishes content written by others",
		Rank:        2,
		Permissions: []string{
			permission.UserViewOthers,
			permission.BlogsView,
			permission.BlogsEditOthers,
			permission.BlogsPublish,
			permission.DashboardView,
		},
	},
	{
		Name:        "editor",
		Description: "Writes and edits blog posts",
		Rank:        3,
		Permissions: []string{
			permission.BlogsView,
			permission.BlogsAdd,
			permission.BlogsEdit,
			permission.DashboardView,
		},
	},
	{
		Name:        "course_manager",
		Description: "Manages the course catalog",
		Rank:        4,
		Permissions: []string{
			permission.CourseView,
			permission.CourseAdd,
			permission.CourseEdit,
			permission.CourseDelete,
			permission.CourseScrape,
			permission.DashboardView,
		},
	},
}
