package realtime

import (
	"fmt"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orderdash/internal/adapter/metrics"
	"orderdash/internal/domain"
	"orderdash/internal/interfaces"
)

func newTestRegistry(t *testing.T) *Registry {
	t.Helper()
	return NewRegistry(metrics.New(prometheus.NewRegistry()))
}

func TestRegistryDeclareIdentity(t *testing.T) {
	r := newTestRegistry(t)

	r.Connect("conn-1")
	require.True(t, r.DeclareIdentity("conn-1", "c1", domain.RoleCustomer))

	userID, role, ok := r.Identity("conn-1")
	require.True(t, ok)
	assert.Equal(t, "c1", userID)
	assert.Equal(t, domain.RoleCustomer, role)

	assert.ElementsMatch(t, []interfaces.ConnID{"conn-1"}, r.CustomerScope("c1"))
	assert.Empty(t, r.CustomerScope("c2"))
	assert.Empty(t, r.StaffAdminScope())
}

func TestRegistryMultipleConnectionsPerOwner(t *testing.T) {
	r := newTestRegistry(t)

	r.Connect("conn-1")
	r.Connect("conn-2")
	require.True(t, r.DeclareIdentity("conn-1", "c1", domain.RoleCustomer))
	require.True(t, r.DeclareIdentity("conn-2", "c1", domain.RoleCustomer))

	assert.ElementsMatch(t, []interfaces.ConnID{"conn-1", "conn-2"}, r.CustomerScope("c1"))

	r.Disconnect("conn-1")
	assert.ElementsMatch(t, []interfaces.ConnID{"conn-2"}, r.CustomerScope("c1"))
}

func TestRegistryStaffAdminUnion(t *testing.T) {
	r := newTestRegistry(t)

	r.Connect("staff-1")
	r.Connect("admin-1")
	require.True(t, r.DeclareIdentity("staff-1", "s1", domain.RoleStaff))
	require.True(t, r.DeclareIdentity("admin-1", "a1", domain.RoleAdmin))

	assert.ElementsMatch(t, []interfaces.ConnID{"staff-1", "admin-1"}, r.StaffAdminScope())
}

func TestRegistryInvalidRoleRecordsNothing(t *testing.T) {
	r := newTestRegistry(t)

	r.Connect("conn-1")
	assert.False(t, r.DeclareIdentity("conn-1", "u1", domain.Role("manager")))

	_, _, ok := r.Identity("conn-1")
	assert.False(t, ok)
	assert.Empty(t, r.StaffAdminScope())
	assert.Empty(t, r.CustomerScope("u1"))
}

func TestRegistryRedeclareClearsPriorScope(t *testing.T) {
	r := newTestRegistry(t)

	r.Connect("conn-1")
	require.True(t, r.DeclareIdentity("conn-1", "c1", domain.RoleCustomer))
	require.True(t, r.DeclareIdentity("conn-1", "s1", domain.RoleStaff))

	assert.Empty(t, r.CustomerScope("c1"))
	assert.ElementsMatch(t, []interfaces.ConnID{"conn-1"}, r.StaffAdminScope())
}

func TestRegistryDisconnectIdempotent(t *testing.T) {
	r := newTestRegistry(t)

	r.Connect("conn-1")
	require.True(t, r.DeclareIdentity("conn-1", "s1", domain.RoleStaff))

	r.Disconnect("conn-1")
	r.Disconnect("conn-1")

	assert.Empty(t, r.StaffAdminScope())
	_, _, ok := r.Identity("conn-1")
	assert.False(t, ok)
}

func TestRegistryDisconnectBeforeJoin(t *testing.T) {
	r := newTestRegistry(t)

	r.Connect("conn-1")
	r.Disconnect("conn-1")

	assert.Empty(t, r.StaffAdminScope())
}

func TestRegistryConcurrentChurn(t *testing.T) {
	r := newTestRegistry(t)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			id := interfaces.ConnID(fmt.Sprintf("conn-%d", n))
			r.Connect(id)
			r.DeclareIdentity(id, "c1", domain.RoleCustomer)
			r.CustomerScope("c1")
			r.Disconnect(id)
		}(i)
	}
	wg.Wait()

	assert.Empty(t, r.CustomerScope("c1"))
}
