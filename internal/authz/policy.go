package authz

// Actor is an authenticated account reduced to what policy decisions need.
type Actor struct {
	ID          uint
	Role        Role
	IsSuperuser bool
}

func (a Actor) isSuperAdmin() bool {
	return a.Role == RoleSuperAdmin || a.IsSuperuser
}

// Decision is the outcome of a policy check. A denied Decision carries a
// stable reason string suitable for the HTTP response body.
type Decision struct {
	Allowed bool
	Reason  string
}

func Allow() Decision {
	return Decision{Allowed: true}
}

func Deny(reason string) Decision {
	return Decision{Reason: reason}
}

// Config carries the tunable policy defaults.
type Config struct {
	// DefaultRole is assigned to accounts that register without any role
	// grant. Empty means RoleBuyer.
	DefaultRole Role `conf:"default_role" yaml:"default_role" json:"default_role"`
}

// Policy is the central authorization authority. One instance serves the
// whole process; it holds no per-request state.
type Policy struct {
	defaultRole Role
}

func NewPolicy(cfg Config) *Policy {
	defaultRole := cfg.DefaultRole
	if defaultRole == "" {
		defaultRole = RoleBuyer
	}

	return &Policy{defaultRole: defaultRole}
}

// DefaultRole returns the role assigned to newly registered accounts.
func (p *Policy) DefaultRole() Role {
	return p.defaultRole
}

// CanAdministerRoles decides whether actor may change roles at all,
// independent of any target. Callers consult it before resolving the
// target so a denied actor learns nothing about which accounts exist.
func (p *Policy) CanAdministerRoles(actor Actor) Decision {
	if actor.Role != RoleSuperAdmin {
		return Deny("permission denied")
	}

	return Allow()
}

// CanChangeRole decides whether actor may move target to a new role. The
// superadmin lock is checked regardless of who the actor is, so the
// superadmin role is terminal once granted.
func (p *Policy) CanChangeRole(actor Actor, target Actor) Decision {
	if decision := p.CanAdministerRoles(actor); !decision.Allowed {
		return decision
	}

	if target.isSuperAdmin() {
		return Deny("cannot change role of a superadmin")
	}

	return Allow()
}

// CanSubmitApplication decides whether actor may submit a seller
// application. hasApplication reports whether one already exists for the
// account, whatever its status.
func (p *Policy) CanSubmitApplication(actor Actor, hasApplication bool) Decision {
	if hasApplication {
		return Deny("already applied")
	}

	if actor.Role == RoleSeller {
		return Deny("account is already a seller")
	}

	return Allow()
}

// CanReviewApplication decides whether actor may approve or reject seller
// applications.
func (p *Policy) CanReviewApplication(actor Actor) Decision {
	if !actor.Role.IsAdmin() {
		return Deny("permission denied")
	}

	return Allow()
}

// CanListAccounts decides whether actor may list all registered accounts.
func (p *Policy) CanListAccounts(actor Actor) Decision {
	if !actor.Role.IsAdmin() {
		return Deny("permission denied")
	}

	return Allow()
}

// CanModifyProperty decides whether actor may update or delete a property
// owned by ownerID.
func (p *Policy) CanModifyProperty(actor Actor, ownerID uint) Decision {
	if actor.ID == ownerID || actor.Role.IsAdmin() {
		return Allow()
	}

	return Deny("permission denied")
}

// CanReviewProperty decides whether actor may move a property through the
// Pending -> Approved/Rejected workflow.
func (p *Policy) CanReviewProperty(actor Actor) Decision {
	if !actor.Role.IsAdmin() {
		return Deny("permission denied")
	}

	return Allow()
}

// CanPublishProperty decides whether actor may toggle the published flag of
// a property owned by ownerID.
func (p *Policy) CanPublishProperty(actor Actor, ownerID uint) Decision {
	return p.CanModifyProperty(actor, ownerID)
}
