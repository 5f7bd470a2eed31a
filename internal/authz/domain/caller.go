package domain

// PermissionMap is a caller's resolved permissions. A missing key and an
// explicit false both mean "not granted".
type PermissionMap map[string]bool

// Has is the single lookup used by the gate. Safe on a nil map.
func (m PermissionMap) Has(permissionID string) bool {
	return m[permissionID]
}

// PermissionMapFrom builds a map granting every id.
func PermissionMapFrom(ids ...string) PermissionMap {
	m := make(PermissionMap, len(ids))
	for _, id := range ids {
		m[id] = true
	}
	return m
}

// Caller is the authenticated identity of a request as handed over by the
// identity provider. Union across the user's roles already happened upstream.
type Caller struct {
	UserID      string
	Permissions PermissionMap
}

// NewCaller builds a Caller. A nil map is treated as "nothing granted".
func NewCaller(userID string, permissions PermissionMap) *Caller {
	if permissions == nil {
		permissions = PermissionMap{}
	}
	return &Caller{UserID: userID, Permissions: permissions}
}

// Has reports whether the caller holds permissionID. Nil callers hold nothing.
func (c *Caller) Has(permissionID string) bool {
	if c == nil {
		return false
	}
	return c.Permissions.Has(permissionID)
}
