package directory

import "math"

type (
	GroupStats struct {
		Name   string `json:"name" yaml:"name"`
		Total  int    `json:"total" yaml:"total"`
		Placed int    `json:"placed" yaml:"placed"`
		Rate   int    `json:"rate" yaml:"rate"` // %
	}

	// PlacementStats summarizes placements of approved students.
	PlacementStats struct {
		Total       int          `json:"total" yaml:"total"`
		Placed      int          `json:"placed" yaml:"placed"`
		NotPlaced   int          `json:"not_placed" yaml:"not_placed"`
		Pending     int          `json:"pending" yaml:"pending"` // awaiting approval
		Rate        int          `json:"rate" yaml:"rate"`       // %
		Departments []GroupStats `json:"departments" yaml:"departments"`
		Batches     []GroupStats `json:"batches" yaml:"batches"`
	}
)

func rate(placed, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(placed) / float64(total) * 100))
}

// groupCounter keeps groups in order of first appearance.
type groupCounter struct {
	order  []string
	groups map[string]*GroupStats
}

func newGroupCounter() *groupCounter {
	return &groupCounter{groups: make(map[string]*GroupStats)}
}

func (gc *groupCounter) add(name string, placed bool) {
	g, ok := gc.groups[name]
	if !ok {
		g = &GroupStats{Name: name}
		gc.groups[name] = g
		gc.order = append(gc.order, name)
	}
	g.Total++
	if placed {
		g.Placed++
	}
}

func (gc *groupCounter) list() []GroupStats {
	res := make([]GroupStats, 0, len(gc.order))
	for _, name := range gc.order {
		g := *gc.groups[name]
		g.Rate = rate(g.Placed, g.Total)
		res = append(res, g)
	}
	return res
}

// ComputeStats aggregates the roster. Unapproved students only count as pending.
func ComputeStats(students []Student) PlacementStats {
	var stats PlacementStats
	depts, batches := newGroupCounter(), newGroupCounter()
	for _, s := range students {
		if !s.IsApproved {
			stats.Pending++
			continue
		}
		stats.Total++
		if s.IsPlaced {
			stats.Placed++
		}
		depts.add(s.Department, s.IsPlaced)
		batches.add(s.Batch, s.IsPlaced)
	}
	stats.NotPlaced = stats.Total - stats.Placed
	stats.Rate = rate(stats.Placed, stats.Total)
	stats.Departments = depts.list()
	stats.Batches = batches.list()
	return stats
}

// Stats computes the placement analytics of the current roster.
func (svc *Service) Stats() (PlacementStats, error) {
	students, err := svc.repo.QueryAllStudents()
	if err != nil {
		return PlacementStats{}, err
	}
	return ComputeStats(students), nil
}
