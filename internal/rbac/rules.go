package rbac

// Simple default policy. Expand as needed.
var RolePermissions = map[string][]string{
	"learner": {
		"course:view",
		"course:enroll",
		"course:rate",
		"exam:view",
		"exam:submit",
		"exam:result",
	},
	"instructor": {
		"course:view",
		"course:create",
		"lesson:create",
		"exam:author",
		"exam:view",
	},
	"admin": {
		"*", // everything
	},
}
