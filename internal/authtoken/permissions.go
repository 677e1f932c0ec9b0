// Copyright (c) 2026 John Dewey

// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to
// deal in the Software without restriction, including without limitation the
// rights to use, copy, modify, merge, publish, distribute, sublicense, and/or
// sell copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:

// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.

// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING
// FROM, OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER
// DEALINGS IN THE SOFTWARE.

package authtoken

import (
	"sort"

	"github.com/carehome-io/carehome/internal/validation"
)

// Role is one of the closed set of staff roles.
type Role string

// Staff roles, lowest privilege first.
const (
	RoleStaff  Role = "staff"
	RoleSenior Role = "senior"
	RoleAdmin  Role = "admin"
)

// AllRoles lists every role from lowest to highest rank.
var AllRoles = []Role{RoleStaff, RoleSenior, RoleAdmin}

// roleRank orders roles for escalation checks.
var roleRank = map[Role]int{
	RoleStaff:  1,
	RoleSenior: 2,
	RoleAdmin:  3,
}

// EscalationRole is the lowest role allowed to act on resources it does not own.
const EscalationRole = RoleSenior

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	_, ok := roleRank[r]
	return ok
}

// Rank returns the ordering position of r; unknown roles rank 0.
func (r Role) Rank() int {
	return roleRank[r]
}

// AtLeast reports whether r ranks at or above other.
func (r Role) AtLeast(
	other Role,
) bool {
	return r.Valid() && r.Rank() >= other.Rank()
}

// Capability is a named permission a role may hold.
type Capability string

// Capability constants using resource:verb format.
const (
	CapViewOwnAssignments Capability = "assignments:view-own"
	CapCreateLog          Capability = "logs:create"
	CapViewCarePlan       Capability = "care-plans:view"
	CapCompleteTask       Capability = "tasks:complete"
	CapAuthorCarePlan     Capability = "care-plans:author"
	CapViewReports        Capability = "reports:view"
	CapManageTasks        Capability = "tasks:manage"
	CapManageResidents    Capability = "residents:manage"
	CapManageStaff        Capability = "staff:manage"
	CapReadAudit          Capability = "audit:read"
)

// AllCapabilities is the full set of known capabilities.
var AllCapabilities = []Capability{
	CapViewOwnAssignments,
	CapCreateLog,
	CapViewCarePlan,
	CapCompleteTask,
	CapAuthorCarePlan,
	CapViewReports,
	CapManageTasks,
	CapManageResidents,
	CapManageStaff,
	CapReadAudit,
}

var baseCapabilities = []Capability{
	CapViewOwnAssignments,
	CapCreateLog,
	CapViewCarePlan,
	CapCompleteTask,
}

var seniorCapabilities = append(
	append([]Capability{}, baseCapabilities...),
	CapAuthorCarePlan,
	CapViewReports,
	CapManageTasks,
)

// CapabilitiesFor returns the capabilities granted to role. The admin role
// is a wildcard and returns every known capability. Unknown roles get none.
func CapabilitiesFor(
	role Role,
) []Capability {
	var caps []Capability
	switch role {
	case RoleStaff:
		caps = baseCapabilities
	case RoleSenior:
		caps = seniorCapabilities
	case RoleAdmin:
		caps = AllCapabilities
	default:
		return nil
	}

	out := make([]Capability, len(caps))
	copy(out, caps)
	return out
}

// HasCapability reports whether role holds capability.
func HasCapability(
	role Role,
	capability Capability,
) bool {
	if role == RoleAdmin {
		return true
	}

	for _, c := range CapabilitiesFor(role) {
		if c == capability {
			return true
		}
	}

	return false
}

// GenerateAllowedRoles returns the role names sorted alphabetically.
func GenerateAllowedRoles() []string {
	roles := make([]string, 0, len(AllRoles))
	for _, r := range AllRoles {
		roles = append(roles, string(r))
	}
	sort.Strings(roles)

	return roles
}

func init() {
	validation.RegisterEnum("staff_role", GenerateAllowedRoles()...)
}
