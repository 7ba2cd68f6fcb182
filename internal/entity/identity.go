package entity

import "encoding/json"

// AdminAPIKeySubjectID marks sessions authenticated with the static admin
// key instead of a provider-issued token.
const AdminAPIKeySubjectID = "admin_api_key"

// Subject is the provider-side user record. It is fetched per request and
// never stored.
type Subject struct {
	ID          string `json:"subject_id"`
	Email       string `json:"email,omitempty"`
	DisplayName string `json:"display_name,omitempty"`
	Disabled    bool   `json:"disabled,omitempty"`
}

// ResolvedIdentity is the request-scoped result of the auth pipeline:
// verified subject, deduplicated role set, deduplicated permission set.
// It is built once per request and must not be mutated afterwards.
type ResolvedIdentity struct {
	SubjectID   string
	Subject     *Subject
	Roles       RoleSet
	Permissions PermissionSet
}

// AdminIdentity is the admin-key bypass result: role set {admin}, no
// provider record, no aggregated permissions, no store lookup behind it.
func AdminIdentity() ResolvedIdentity {
	return ResolvedIdentity{
		SubjectID:   AdminAPIKeySubjectID,
		Roles:       NewRoleSet(RoleAdmin),
		Permissions: NewPermissionSet(),
	}
}

func (id ResolvedIdentity) HasRole(name RoleName) bool {
	return id.Roles.Has(name)
}

func (id ResolvedIdentity) MarshalJSON() ([]byte, error) {
	out := struct {
		SubjectID   string       `json:"subject_id"`
		Subject     *Subject     `json:"subject,omitempty"`
		Roles       []RoleName   `json:"roles"`
		Permissions []Permission `json:"permissions"`
	}{
		SubjectID:   id.SubjectID,
		Subject:     id.Subject,
		Roles:       id.Roles.Names(),
		Permissions: id.Permissions.List(),
	}

	if out.Roles == nil {
		out.Roles = []RoleName{}
	}

	if out.Permissions == nil {
		out.Permissions = []Permission{}
	}

	return json.Marshal(out)
}
