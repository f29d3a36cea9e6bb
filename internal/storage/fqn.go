package storage

import "strings"

// SplitFQN splits a dotted table name into its namespace and table parts.
// Empty segments are ignored; with more than two segments the last two are
// returned.
//
//	"users"        -> "", "users"
//	"app.users"    -> "app", "users"
//	"db.app.users" -> "app", "users"
func SplitFQN(fqn string) (namespace, table string) {
	parts := make([]string, 0, 2)
	for _, p := range strings.Split(fqn, ".") {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	switch len(parts) {
	case 0:
		return "", ""
	case 1:
		return "", parts[0]
	default:
		return parts[len(parts)-2], parts[len(parts)-1]
	}
}
