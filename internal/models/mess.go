package models

// Role is a member's permission level inside a mess.
type Role string

const (
	RoleMember  Role = "member"
	RoleManager Role = "manager"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleMember || r == RoleManager
}

// Mess is a shared household whose members pool meal expenses.
type Mess struct {
	// ID is the unique identifier for the mess (UUID format).
	ID string

	// Name is the display name of the mess (e.g., "Hall 4 Block B").
	Name string `validate:"required,max=100"`

	// Code is the 6-character uppercase alphanumeric join code shared with new members.
	Code string `validate:"required,len=6,alphanum,uppercase"`

	// CreatedBy is the user ID of the founder, who becomes its first manager.
	CreatedBy string `validate:"required"`

	// CreatedAt is the Unix timestamp when the mess was created.
	CreatedAt int64
}

// Member is one user's membership in a mess.
type Member struct {
	MessID string
	UserID string
	Role   Role

	// JoinedAt is the Unix timestamp when the user joined.
	JoinedAt int64
}

// MessContext is the resolved (mess, user, role) triple a caller acts under.
// It replaces any notion of a process-wide "current mess".
type MessContext struct {
	MessID string `validate:"required"`
	UserID string `validate:"required"`
	Role   Role
}

// IsManager reports whether the caller may perform manager-only actions.
func (mc MessContext) IsManager() bool {
	return mc.Role == RoleManager
}
