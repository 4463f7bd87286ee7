package directory

import (
	"sort"

	"github.com/pkg/errors"

	"github.com/trezcool/placement/core"
)

var errUnknownOrderingField = errors.New("unknown ordering field")

type studentKey func(a, b Student) int

func cmpString(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func cmpBool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case !a:
		return -1
	}
	return 1
}

// sortable Student keys, by their json name
var studentKeys = map[string]studentKey{
	"id":              func(a, b Student) int { return cmpID(a.ID, b.ID) },
	"name":            func(a, b Student) int { return cmpString(a.Name, b.Name) },
	"email":           func(a, b Student) int { return cmpString(a.Email, b.Email) },
	"register_number": func(a, b Student) int { return cmpString(a.RegisterNumber, b.RegisterNumber) },
	"roll_number":     func(a, b Student) int { return cmpString(a.RollNumber, b.RollNumber) },
	"year":            func(a, b Student) int { return cmpString(a.Year, b.Year) },
	"branch":          func(a, b Student) int { return cmpString(a.Branch, b.Branch) },
	"semester":        func(a, b Student) int { return cmpString(a.Semester, b.Semester) },
	"batch":           func(a, b Student) int { return cmpString(a.Batch, b.Batch) },
	"department":      func(a, b Student) int { return cmpString(a.Department, b.Department) },
	"phone_number":    func(a, b Student) int { return cmpString(a.PhoneNumber, b.PhoneNumber) },
	"has_arrear":      func(a, b Student) int { return cmpBool(a.HasArrear, b.HasArrear) },
	"is_approved":     func(a, b Student) int { return cmpBool(a.IsApproved, b.IsApproved) },
	"is_placed":       func(a, b Student) int { return cmpBool(a.IsPlaced, b.IsPlaced) },
}

// cmpID orders "s<N>" ids numerically, so s10 comes after s9.
func cmpID(a, b string) int {
	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}
		return 1
	}
	return cmpString(a, b)
}

// SortStudents stably sorts students in place by each ordering in turn.
// Ties keep their roster order.
func SortStudents(students []Student, ordering []core.Ordering) error {
	if len(ordering) == 0 {
		return nil
	}
	keys := make([]studentKey, 0, len(ordering))
	for _, ord := range ordering {
		key, ok := studentKeys[ord.Field]
		if !ok {
			err := errors.Wrap(errUnknownOrderingField, ord.Field)
			return core.NewValidationError(err, core.FieldError{Field: "ordering", Error: err.Error()})
		}
		if !ord.Ascending {
			asc := key
			key = func(a, b Student) int { return asc(b, a) }
		}
		keys = append(keys, key)
	}

	sort.SliceStable(students, func(i, j int) bool {
		for _, key := range keys {
			if c := key(students[i], students[j]); c != 0 {
				return c < 0
			}
		}
		return false
	})
	return nil
}
