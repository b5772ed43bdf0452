package collection

import "github.com/google/uuid"

// DepartmentScope says which departments a collection request may draw from.
// It is either pinned to one department or spans every department of the
// hotel (elevated actors such as hotel administrators). An explicit value
// type avoids the ambiguity of a nil department meaning both "unknown" and
// "intentionally unscoped".
type DepartmentScope struct {
	departmentID uuid.UUID
	all          bool
}

// ScopedTo returns a scope restricted to a single department
func ScopedTo(departmentID uuid.UUID) DepartmentScope {
	return DepartmentScope{departmentID: departmentID}
}

// AllDepartments returns a hotel-wide scope
func AllDepartments() DepartmentScope {
	return DepartmentScope{all: true}
}

// IsAllDepartments returns true for a hotel-wide scope
func (s DepartmentScope) IsAllDepartments() bool {
	return s.all
}

// DepartmentID returns the department and true for a scoped request,
// or the zero UUID and false for a hotel-wide one.
func (s DepartmentScope) DepartmentID() (uuid.UUID, bool) {
	if s.all {
		return uuid.Nil, false
	}
	return s.departmentID, true
}

// IsValid returns true when the scope is hotel-wide or names a department
func (s DepartmentScope) IsValid() bool {
	return s.all || s.departmentID != uuid.Nil
}
