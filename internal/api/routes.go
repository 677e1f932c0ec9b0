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

package api

import (
	"github.com/carehome-io/carehome/internal/api/gate"
	"github.com/carehome-io/carehome/internal/authtoken"
)

// Target types named in audit entries.
const (
	targetStaff    = "staff"
	targetResident = "resident"
	targetReport   = "report"
	targetAudit    = "audit-entry"
	targetHealth   = "health"
)

// Route declarations. Owner lookups are bound by the handler groups since
// they need the group's store.
var (
	routePasswordChange = gate.Route{
		Action:     "auth.password-change",
		TargetType: targetStaff,
		Mutation:   true,
	}

	routeStaffCreate = gate.Route{
		Action:     "staff.create",
		TargetType: targetStaff,
		Capability: authtoken.CapManageStaff,
		Mutation:   true,
	}
	routeStaffView = gate.Route{
		Action:     "staff.view",
		TargetType: targetStaff,
		Capability: authtoken.CapManageStaff,
	}
	routeStaffStatus = gate.Route{
		Action:     "staff.status-change",
		TargetType: targetStaff,
		Capability: authtoken.CapManageStaff,
		Mutation:   true,
	}

	routeResidentList = gate.Route{
		Action:     "resident.list",
		TargetType: targetResident,
		Capability: authtoken.CapViewOwnAssignments,
	}
	routeResidentCreate = gate.Route{
		Action:     "resident.create",
		TargetType: targetResident,
		Capability: authtoken.CapManageResidents,
		Mutation:   true,
	}
	routeResidentView = gate.Route{
		Action:     "resident.view",
		TargetType: targetResident,
		Capability: authtoken.CapViewOwnAssignments,
	}
	routeLogCreate = gate.Route{
		Action:     "care-log.create",
		TargetType: targetResident,
		Capability: authtoken.CapCreateLog,
		Mutation:   true,
	}
	routeLogList = gate.Route{
		Action:     "care-log.list",
		TargetType: targetResident,
		Capability: authtoken.CapViewOwnAssignments,
	}
	routeCarePlanView = gate.Route{
		Action:     "care-plan.view",
		TargetType: targetResident,
		Capability: authtoken.CapViewCarePlan,
	}
	routeCarePlanUpdate = gate.Route{
		Action:     "care-plan.update",
		TargetType: targetResident,
		Capability: authtoken.CapAuthorCarePlan,
		Mutation:   true,
	}
	routeDailyLogReport = gate.Route{
		Action:     "report.daily-logs",
		TargetType: targetReport,
		Capability: authtoken.CapViewReports,
	}

	routeAuditList = gate.Route{
		Action:     "audit.list",
		TargetType: targetAudit,
		Capability: authtoken.CapReadAudit,
	}
	routeAuditView = gate.Route{
		Action:     "audit.view",
		TargetType: targetAudit,
		Capability: authtoken.CapReadAudit,
	}

	routeHealthDetailed = gate.Route{
		Action:     "health.detailed",
		TargetType: targetHealth,
	}
)

// withOwner returns route with its owner lookup bound.
func withOwner(
	route gate.Route,
	owner gate.OwnerLookup,
) gate.Route {
	route.Owner = owner
	return route
}
