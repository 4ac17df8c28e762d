package audit

import (
	"go.uber.org/zap"

	"github.com/kumar0311chandan/company-org-analyzer/internal/model"
)

// Repository indexes a flat employee list as a reporting hierarchy.
//
// The hierarchy is stored by id (an arena) rather than as linked objects:
// byID maps id to employee, subordinates maps manager id to direct reports.
// It is built once by NewRepository and is read-only afterwards.
//
// Duplicate ids are reported, and the last occurrence replaces the stored
// employee while keeping the position of the first one. Edges are derived from
// the stored employees, so a duplicate that names a different manager changes
// the hierarchy.
type Repository struct {
	byID         map[int64]model.Employee
	order        []int64 // iteration order: first insertion of each id
	subordinates map[int64][]model.Employee

	invalidManagers []model.Diagnostic
	duplicateIDs    []model.Diagnostic

	root    model.Employee
	hasRoot bool
}

// RepositoryOption configures NewRepository.
type RepositoryOption func(*repositoryOptions)

type repositoryOptions struct {
	logger *zap.Logger
}

// WithRepositoryLogger sets the logger used to report anomalies at debug level.
func WithRepositoryLogger(l *zap.Logger) RepositoryOption {
	return func(o *repositoryOptions) {
		if l != nil {
			o.logger = l
		}
	}
}

// NewRepository builds the id index, the subordinate adjacency and the root.
func NewRepository(employees []model.Employee, opts ...RepositoryOption) *Repository {
	o := repositoryOptions{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}

	r := &Repository{
		byID:         make(map[int64]model.Employee, len(employees)),
		order:        make([]int64, 0, len(employees)),
		subordinates: make(map[int64][]model.Employee),
	}

	for _, e := range employees {
		if _, seen := r.byID[e.ID]; seen {
			o.logger.Debug("duplicate employee id", zap.Int64("id", e.ID))
			r.duplicateIDs = append(r.duplicateIDs, model.DuplicateIDDiagnostic(e.ID))
		} else {
			r.order = append(r.order, e.ID)
		}
		r.byID[e.ID] = e
	}

	// Link from the stored values, not the raw input.
	for _, id := range r.order {
		e := r.byID[id]
		mgr, ok := e.Manager()
		if !ok {
			continue
		}
		if _, exists := r.byID[mgr]; !exists {
			o.logger.Debug("unresolved manager reference",
				zap.Int64("employee", e.ID), zap.Int64("manager", mgr))
			r.invalidManagers = append(r.invalidManagers, model.InvalidManagerDiagnostic(e.ID, mgr))
			continue
		}
		r.subordinates[mgr] = append(r.subordinates[mgr], e)
	}

	for _, id := range r.order {
		if e := r.byID[id]; !e.HasManager() {
			r.root = e
			r.hasRoot = true
			break
		}
	}

	return r
}

// Root returns the first employee without a manager, if any.
func (r *Repository) Root() (model.Employee, bool) {
	return r.root, r.hasRoot
}

// Get looks up an employee by id.
func (r *Repository) Get(id int64) (model.Employee, bool) {
	e, ok := r.byID[id]
	return e, ok
}

// Employees returns every stored employee in iteration order.
func (r *Repository) Employees() []model.Employee {
	out := make([]model.Employee, len(r.order))
	for i, id := range r.order {
		out[i] = r.byID[id]
	}
	return out
}

// Subordinates returns the direct reports of id in encounter order.
func (r *Repository) Subordinates(id int64) []model.Employee {
	return append([]model.Employee(nil), r.subordinates[id]...)
}

func (r *Repository) InvalidManagerRefs() []model.Diagnostic {
	return append([]model.Diagnostic(nil), r.invalidManagers...)
}

func (r *Repository) DuplicateIDs() []model.Diagnostic {
	return append([]model.Diagnostic(nil), r.duplicateIDs...)
}

// Len returns the number of distinct ids.
func (r *Repository) Len() int {
	return len(r.order)
}
