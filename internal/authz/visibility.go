package authz

// InquiryScope is the subset of inquiries an actor may observe.
type InquiryScope int

const (
	// InquiryScopeNone means the actor may not list inquiries at all. This
	// is distinct from an empty-but-authorized result.
	InquiryScopeNone InquiryScope = iota
	// InquiryScopeAll covers every inquiry in the marketplace.
	InquiryScopeAll
	// InquiryScopeOwnedProperties covers inquiries on properties the actor owns.
	InquiryScopeOwnedProperties
	// InquiryScopeRequested covers inquiries the actor created.
	InquiryScopeRequested
)

// String returns string representation of InquiryScope.
func (s InquiryScope) String() string {
	switch s {
	case InquiryScopeAll:
		return "all"
	case InquiryScopeOwnedProperties:
		return "owned-properties"
	case InquiryScopeRequested:
		return "requested"
	default:
		return "none"
	}
}

// InquiryVisibility maps an actor's role to the inquiries it may list.
// Unknown role values get InquiryScopeNone so callers can answer with a
// forbidden signal instead of an empty list.
func (p *Policy) InquiryVisibility(actor Actor) InquiryScope {
	switch actor.Role {
	case RoleSuperAdmin, RoleAdmin:
		return InquiryScopeAll
	case RoleSeller:
		return InquiryScopeOwnedProperties
	case RoleBuyer:
		return InquiryScopeRequested
	default:
		return InquiryScopeNone
	}
}

// CanViewProperty decides whether actor (nil for anonymous callers) may see
// a property's detail. Published and approved listings are public; anything
// else is visible to its owner and to admins only.
func (p *Policy) CanViewProperty(actor *Actor, ownerID uint, approved, published bool) Decision {
	if approved && published {
		return Allow()
	}

	if actor == nil {
		return Deny("permission denied")
	}

	if actor.ID == ownerID || actor.Role.IsAdmin() {
		return Allow()
	}

	return Deny("permission denied")
}
