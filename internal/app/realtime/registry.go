package realtime

import (
	"sync"

	"orderdash/internal/adapter/metrics"
	"orderdash/internal/domain"
	"orderdash/internal/interfaces"
)

type identity struct {
	userID string
	role   domain.Role
}

// Registry tracks every live connection and its scope membership. Customers
// are grouped per owner id (several simultaneous connections per owner are
// allowed); staff and admins each share one scope. A single lock guards all
// maps so a connection is never observable in a partial state, e.g. removed
// from one scope but not yet added to another.
type Registry struct {
	mu        sync.RWMutex
	conns     map[interfaces.ConnID]identity
	customers map[string]map[interfaces.ConnID]struct{}
	staff     map[interfaces.ConnID]struct{}
	admins    map[interfaces.ConnID]struct{}

	metrics *metrics.Metrics
}

func NewRegistry(m *metrics.Metrics) *Registry {
	return &Registry{
		conns:     make(map[interfaces.ConnID]identity),
		customers: make(map[string]map[interfaces.ConnID]struct{}),
		staff:     make(map[interfaces.ConnID]struct{}),
		admins:    make(map[interfaces.ConnID]struct{}),
		metrics:   m,
	}
}

// Connect records a new live connection with identity still undeclared.
func (r *Registry) Connect(id interfaces.ConnID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.conns[id] = identity{}
}

// DeclareIdentity binds a user id and role to the connection and places it
// in the matching scope. A redeclaration first clears the previous scope
// membership so a connection is never registered in two scopes at once.
// An unrecognized role records no membership and reports false.
func (r *Registry) DeclareIdentity(id interfaces.ConnID, userID string, role domain.Role) bool {
	if !role.Valid() {
		return false
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.removeLocked(id)

	r.conns[id] = identity{userID: userID, role: role}
	switch role {
	case domain.RoleCustomer:
		set, ok := r.customers[userID]
		if !ok {
			set = make(map[interfaces.ConnID]struct{})
			r.customers[userID] = set
		}
		set[id] = struct{}{}
	case domain.RoleStaff:
		r.staff[id] = struct{}{}
	case domain.RoleAdmin:
		r.admins[id] = struct{}{}
	}

	if r.metrics != nil {
		r.metrics.ConnectedClients.WithLabelValues(string(role)).Inc()
	}

	return true
}

// Disconnect removes the connection from whichever scope it was placed in.
// Idempotent: a second call, or a call for a connection that never declared
// identity, is a no-op.
func (r *Registry) Disconnect(id interfaces.ConnID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.removeLocked(id)
	delete(r.conns, id)
}

// removeLocked clears scope membership for id. Caller holds r.mu.
func (r *Registry) removeLocked(id interfaces.ConnID) {
	ident, ok := r.conns[id]
	if !ok || !ident.role.Valid() {
		return
	}

	switch ident.role {
	case domain.RoleCustomer:
		if set, ok := r.customers[ident.userID]; ok {
			delete(set, id)
			if len(set) == 0 {
				delete(r.customers, ident.userID)
			}
		}
	case domain.RoleStaff:
		delete(r.staff, id)
	case domain.RoleAdmin:
		delete(r.admins, id)
	}

	r.conns[id] = identity{}
	if r.metrics != nil {
		r.metrics.ConnectedClients.WithLabelValues(string(ident.role)).Dec()
	}
}

// Identity returns the declared user id and role for a connection. ok is
// false when the connection is unknown or has not joined yet.
func (r *Registry) Identity(id interfaces.ConnID) (string, domain.Role, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ident, ok := r.conns[id]
	if !ok || !ident.role.Valid() {
		return "", "", false
	}
	return ident.userID, ident.role, true
}

// CustomerScope resolves the connections of one owner's customer scope.
func (r *Registry) CustomerScope(customerID string) []interfaces.ConnID {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return connIDs(r.customers[customerID])
}

// StaffAdminScope resolves the union of the staff and admin scopes. The two
// sets are disjoint (a connection holds exactly one role) so the union is a
// plain concatenation.
func (r *Registry) StaffAdminScope() []interfaces.ConnID {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]interfaces.ConnID, 0, len(r.staff)+len(r.admins))
	for id := range r.staff {
		ids = append(ids, id)
	}
	for id := range r.admins {
		ids = append(ids, id)
	}
	return ids
}

func connIDs(set map[interfaces.ConnID]struct{}) []interfaces.ConnID {
	if len(set) == 0 {
		return nil
	}
	ids := make([]interfaces.ConnID, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	return ids
}
