package audit

import (
	"go.uber.org/zap"

	"github.com/kumar0311chandan/company-org-analyzer/internal/config"
	"github.com/kumar0311chandan/company-org-analyzer/internal/model"
)

// Analyzer evaluates a Repository against a Policy: it finds circular
// reporting chains, reporting lines that are too long, and managers paid
// outside the compensation band.
type Analyzer struct {
	repo         *Repository
	policy       config.Policy
	logger       *zap.Logger
	circularRefs []model.Diagnostic
}

// AnalyzerOption configures an Analyzer.
type AnalyzerOption func(*Analyzer)

// WithPolicy overrides the default policy.
func WithPolicy(p config.Policy) AnalyzerOption {
	return func(a *Analyzer) {
		a.policy = p
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(l *zap.Logger) AnalyzerOption {
	return func(a *Analyzer) {
		if l != nil {
			a.logger = l
		}
	}
}

func NewAnalyzer(repo *Repository, opts ...AnalyzerOption) *Analyzer {
	a := &Analyzer{
		repo:   repo,
		policy: config.DefaultPolicy(),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze runs the full audit. Calling it again over the same repository
// yields the same report; the circular reference list is rebuilt each call.
func (a *Analyzer) Analyze(totalProcessed, invalidEntries int) *model.AnalysisReport {
	a.circularRefs = nil

	cycles := a.DetectCycles()
	if len(cycles) > 0 {
		a.circularRefs = append(a.circularRefs, model.CircularReferenceDiagnostic(cycles))
	}
	excluded := make(map[int64]bool, len(cycles))
	for _, id := range cycles {
		excluded[id] = true
	}

	underpaid, overpaid := a.compensation(excluded)
	tooDeep := a.tooDeep(excluded)

	a.logger.Debug("analysis complete",
		zap.Int("employees", a.repo.Len()),
		zap.Int("cycle_members", len(cycles)),
		zap.Int("underpaid", len(underpaid)),
		zap.Int("overpaid", len(overpaid)),
		zap.Int("too_deep", len(tooDeep)))

	return model.NewAnalysisReport(model.ReportData{
		Underpaid:          underpaid,
		Overpaid:           overpaid,
		TooDeep:            tooDeep,
		InvalidManagerRefs: a.repo.InvalidManagerRefs(),
		DuplicateIDs:       a.repo.DuplicateIDs(),
		CircularRefs:       a.circularRefs,
		TotalProcessed:     totalProcessed,
		InvalidEntries:     invalidEntries,
		Policy:             a.policy,
	})
}

// CircularReferences returns the circular reference diagnostics of the last Analyze call.
func (a *Analyzer) CircularReferences() []model.Diagnostic {
	return append([]model.Diagnostic(nil), a.circularRefs...)
}

// DetectCycles returns the ids of employees caught in a circular reporting
// chain, in the order they were marked.
//
// Each employee has at most one outgoing edge (its manager), so the DFS is a
// walk up the manager chain. The walk keeps an explicit path stack instead of
// recursing. When the walk reaches a manager that is already on the path, every
// node on the path is marked, including nodes that merely lead into the loop.
// Walks that reach a node finished by an earlier walk stop without marking, so
// the exact boundary depends on iteration order.
func (a *Analyzer) DetectCycles() []int64 {
	visited := make(map[int64]bool, a.repo.Len())
	onPath := make(map[int64]bool)
	marked := make(map[int64]bool)
	var members []int64

	mark := func(id int64) {
		if !marked[id] {
			marked[id] = true
			members = append(members, id)
		}
	}

	for _, start := range a.repo.Employees() {
		if visited[start.ID] {
			continue
		}

		path := []int64{}
		backEdge := int64(0)
		found := false

		cur := start.ID
		for {
			visited[cur] = true
			onPath[cur] = true
			path = append(path, cur)

			e, ok := a.repo.Get(cur)
			if !ok {
				break
			}
			mgr, ok := e.Manager()
			if !ok {
				break
			}
			if !visited[mgr] {
				cur = mgr
				continue
			}
			if onPath[mgr] {
				backEdge = mgr
				found = true
			}
			break
		}

		if found {
			// Unwind deepest first, as the recursive form would.
			mark(path[len(path)-1])
			mark(backEdge)
			for i := len(path) - 2; i >= 0; i-- {
				mark(path[i])
			}
			a.logger.Debug("circular reporting chain", zap.Int64s("path", path), zap.Int64("back_edge", backEdge))
		}

		for _, id := range path {
			delete(onPath, id)
		}
	}

	return members
}

// Depths computes the distance of every reachable, non-excluded employee from
// the root. Returns an empty map when there is no root.
func (a *Analyzer) Depths(excluded map[int64]bool) map[int64]int {
	depth := make(map[int64]int)
	root, ok := a.repo.Root()
	if !ok {
		return depth
	}

	depth[root.ID] = 0
	queue := []int64{root.ID}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		d := depth[id]

		for _, sub := range a.repo.Subordinates(id) {
			if excluded[sub.ID] {
				continue
			}
			if _, seen := depth[sub.ID]; !seen {
				depth[sub.ID] = d + 1
				queue = append(queue, sub.ID)
			}
		}
	}
	return depth
}

func (a *Analyzer) tooDeep(excluded map[int64]bool) []model.DepthFinding {
	depth := a.Depths(excluded)

	var rows []model.DepthFinding
	for _, e := range a.repo.Employees() {
		d, ok := depth[e.ID]
		if !ok || d <= a.policy.MaxDepth {
			continue
		}
		rows = append(rows, model.DepthFinding{Employee: e, Excess: d - a.policy.MaxDepth})
	}
	return rows
}

// compensation compares each manager with the average salary of their direct
// reports. Bounds are compliant; the root is never flagged overpaid.
func (a *Analyzer) compensation(excluded map[int64]bool) (underpaid, overpaid []model.SalaryFinding) {
	for _, m := range a.repo.Employees() {
		if excluded[m.ID] {
			continue
		}

		var total float64
		var n int
		for _, sub := range a.repo.Subordinates(m.ID) {
			if excluded[sub.ID] {
				continue
			}
			total += sub.Salary
			n++
		}
		if n == 0 {
			continue
		}

		avg := total / float64(n)
		lower := avg * a.policy.MinMultiplier
		upper := avg * a.policy.MaxMultiplier

		if m.Salary < lower {
			underpaid = append(underpaid, model.SalaryFinding{Employee: m, Amount: lower - m.Salary})
		}
		if m.HasManager() && m.Salary > upper {
			overpaid = append(overpaid, model.SalaryFinding{Employee: m, Amount: m.Salary - upper})
		}
	}
	return underpaid, overpaid
}
