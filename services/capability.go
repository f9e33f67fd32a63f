package services

// Role is the caller's capability, threaded explicitly through every gated
// operation instead of being read from ambient session state.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleOffice Role = "office"
	RoleWorker Role = "worker"
)

// CanOverridePrice reports whether the role may set or clear a manual price.
func (r Role) CanOverridePrice() bool {
	return r == RoleAdmin
}

// CanConfigure reports whether the role may edit taxonomy, price lists and
// status vocabularies.
func (r Role) CanConfigure() bool {
	return r == RoleAdmin
}
