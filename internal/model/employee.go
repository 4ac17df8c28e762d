package model

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// employeeValidate is shared by every Employee; validator caches struct metadata.
var employeeValidate = validator.New()

// Employee is a single row of the organization: who they are, what they earn,
// and who they report to. Values are never mutated after NewEmployee returns.
type Employee struct {
	ID        int64   `json:"id" validate:"gt=0"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Salary    float64 `json:"salary" validate:"gt=0"`
	ManagerID *int64  `json:"manager_id,omitempty"` // nil means no manager (root candidate)
}

// NewEmployee builds a validated Employee. managerID may be nil.
func NewEmployee(id int64, firstName, lastName string, salary float64, managerID *int64) (Employee, error) {
	e := Employee{
		ID:        id,
		FirstName: firstName,
		LastName:  lastName,
		Salary:    salary,
	}
	if managerID != nil {
		m := *managerID
		e.ManagerID = &m
	}
	if err := e.Validate(); err != nil {
		return Employee{}, err
	}
	return e, nil
}

// Validate checks the id and salary invariants.
func (e Employee) Validate() error {
	err := employeeValidate.Struct(e)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("%w: %v", ErrInvalidEmployee, err)
	}

	// Report the first failing field, id before salary.
	switch verrs[0].StructField() {
	case "ID":
		return fmt.Errorf("%w: employee ID must be positive: %d", ErrInvalidEmployee, e.ID)
	case "Salary":
		return fmt.Errorf("%w: salary must be positive: %v", ErrInvalidEmployee, e.Salary)
	default:
		return fmt.Errorf("%w: %s", ErrInvalidEmployee, verrs[0].Error())
	}
}

// HasManager reports whether the employee references a manager.
func (e Employee) HasManager() bool {
	return e.ManagerID != nil
}

// Manager returns the referenced manager id, if any.
func (e Employee) Manager() (int64, bool) {
	if e.ManagerID == nil {
		return 0, false
	}
	return *e.ManagerID, true
}

func (e Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}

func (e Employee) String() string {
	role := ", CEO"
	if mgr, ok := e.Manager(); ok {
		role = fmt.Sprintf(", reports to %d", mgr)
	}
	return fmt.Sprintf("%d: %s %s ($%.0f%s)", e.ID, e.FirstName, e.LastName, e.Salary, role)
}
