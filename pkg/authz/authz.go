// Package authz answers whether a role may perform an action on a resource.
package authz

import (
	"errors"
	"fmt"

	casbin "github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
)

var ErrInvalidArgs = errors.New("invalid authorization arguments")

type Resource string

type Action string

const (
	ResourceUsers          Resource = "users"
	ResourceDepartments    Resource = "departments"
	ResourceRooms          Resource = "rooms"
	ResourcePatients       Resource = "patients"
	ResourceAppointments   Resource = "appointments"
	ResourceMedicalRecords Resource = "medical_records"
	ResourcePrescriptions  Resource = "prescriptions"
	ResourceStatistics     Resource = "statistics"
	ResourceReports        Resource = "reports"
	ResourceSettings       Resource = "settings"
	ResourceAuditLogs      Resource = "audit_logs"
	ResourceDashboard      Resource = "dashboard"
	ResourceExport         Resource = "export"
	ResourceSystem         Resource = "system"

	WildcardResource Resource = "*"
)

const (
	ActionRead   Action = "read"
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"

	WildcardAction Action = "*"
)

const modelText = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub == p.sub && (p.obj == "*" || r.obj == p.obj) && (p.act == "*" || r.act == p.act)
`

// AdminScope names the administrative view of a resource, which spans every
// doctor's data. A grant on the plain resource does not reach it.
func AdminScope(resource Resource) Resource {
	return adminScopePrefix + resource
}

const adminScopePrefix Resource = "admin:"

// Policy grants role the action on a resource.
type Policy struct {
	Role     string
	Resource Resource
	Action   Action
}

// DefaultPolicies lets administrators do anything. Doctors work with the
// clinical side and may register and read patients.
var DefaultPolicies = []Policy{
	{Role: "ADMIN", Resource: WildcardResource, Action: WildcardAction},
	{Role: "DOCTOR", Resource: ResourcePatients, Action: ActionRead},
	{Role: "DOCTOR", Resource: ResourcePatients, Action: ActionCreate},
	{Role: "DOCTOR", Resource: ResourceAppointments, Action: WildcardAction},
	{Role: "DOCTOR", Resource: ResourceMedicalRecords, Action: WildcardAction},
	{Role: "DOCTOR", Resource: ResourcePrescriptions, Action: WildcardAction},
	{Role: "DOCTOR", Resource: ResourceDashboard, Action: ActionRead},
}

type Authorizer interface {
	Enforce(role string, resource Resource, action Action) (bool, error)
}

type casbinAuthorizer struct {
	enforcer *casbin.Enforcer
}

// NewAuthorizer builds an in-memory enforcer loaded with policies.
func NewAuthorizer(policies []Policy) (Authorizer, error) {
	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, fmt.Errorf("load authorization model: %w", err)
	}

	e, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("create enforcer: %w", err)
	}

	rules := make([][]string, 0, len(policies))
	for _, p := range policies {
		if p.Role == "" || p.Resource == "" || p.Action == "" {
			return nil, fmt.Errorf("%w: incomplete policy %+v", ErrInvalidArgs, p)
		}
		rules = append(rules, []string{p.Role, string(p.Resource), string(p.Action)})
	}
	if len(rules) > 0 {
		if _, err := e.AddPolicies(rules); err != nil {
			return nil, fmt.Errorf("add policies: %w", err)
		}
	}

	return &casbinAuthorizer{enforcer: e}, nil
}

func (a *casbinAuthorizer) Enforce(role string, resource Resource, action Action) (bool, error) {
	if role == "" {
		return false, nil
	}
	if resource == "" || action == "" {
		return false, fmt.Errorf("%w: resource and action are required", ErrInvalidArgs)
	}
	return a.enforcer.Enforce(role, string(resource), string(action))
}
