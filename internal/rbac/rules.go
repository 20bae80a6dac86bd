package rbac

// Simple default policy. Expand as needed.
var RolePermissions = map[string][]string{
	"student": {
		"grades:view-own",
	},
	"teacher": {
		"sources:upload",
		"runs:create",
		"grades:view-own",
		"grades:view-all",
		"summary:view",
	},
	"admin": {
		"*", // everything
	},
}
