package directory

import (
	"encoding/json"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/trezcool/placement/core"
)

// Roles
const (
	RoleAdmin   Role = "admin"
	RoleStudent Role = "student"
)

var errUnknownRole = errors.New("unknown account role")

type Role string

func (r Role) Valid() bool { return r == RoleAdmin || r == RoleStudent }

// Identity holds the fields common to every Account.
type Identity struct {
	ID    string `json:"id" yaml:"id"`
	Name  string `json:"name" yaml:"name"`
	Email string `json:"email" yaml:"email"`
	Role  Role   `json:"role" yaml:"role"`
}

// Account is either an Admin or a Student.
type Account interface {
	Ident() Identity
	account()
}

type Admin struct {
	Identity `yaml:",inline"`
}

func NewAdmin(id, name, email string) Admin {
	return Admin{Identity{ID: id, Name: name, Email: email, Role: RoleAdmin}}
}

func (a Admin) Ident() Identity { return a.Identity }
func (Admin) account()          {}

type Student struct {
	Identity `yaml:",inline"`

	RegisterNumber string `json:"register_number" yaml:"register_number"`
	RollNumber     string `json:"roll_number" yaml:"roll_number"`
	Year           string `json:"year" yaml:"year"`
	Branch         string `json:"branch" yaml:"branch"`
	Semester       string `json:"semester" yaml:"semester"`
	Batch          string `json:"batch" yaml:"batch"`
	Department     string `json:"department" yaml:"department"`
	PhoneNumber    string `json:"phone_number" yaml:"phone_number"`
	HasArrear      bool   `json:"has_arrear" yaml:"has_arrear"`
	IsApproved     bool   `json:"is_approved" yaml:"is_approved"`
	IsPlaced       bool   `json:"is_placed" yaml:"is_placed"`
}

func (s Student) Ident() Identity { return s.Identity }
func (Student) account()          {}

// StudentFields are the profile fields supplied on registration or by an admin.
// Absent fields default to "" and false.
// The validation tags only apply to self-registration; admins may add incomplete records.
type StudentFields struct {
	Name           string `json:"name" validate:"required"`
	Email          string `json:"email" validate:"required,email"`
	RegisterNumber string `json:"register_number" validate:"required"`
	RollNumber     string `json:"roll_number" validate:"required"`
	Year           string `json:"year" validate:"required"`
	Branch         string `json:"branch" validate:"required"`
	Semester       string `json:"semester" validate:"required"`
	Batch          string `json:"batch" validate:"required"`
	Department     string `json:"department" validate:"required"`
	PhoneNumber    string `json:"phone_number" validate:"required,phone10"`
	HasArrear      bool   `json:"has_arrear"`
	IsPlaced       bool   `json:"is_placed"` // only honoured on admin add
}

func (f StudentFields) newStudent() Student {
	return Student{
		Identity:       Identity{Name: f.Name, Email: f.Email, Role: RoleStudent},
		RegisterNumber: f.RegisterNumber,
		RollNumber:     f.RollNumber,
		Year:           f.Year,
		Branch:         f.Branch,
		Semester:       f.Semester,
		Batch:          f.Batch,
		Department:     f.Department,
		PhoneNumber:    f.PhoneNumber,
		HasArrear:      f.HasArrear,
	}
}

// NewStudent is the student self-registration form.
type NewStudent struct {
	StudentFields
	Password        string `json:"password" validate:"required,min=6"`
	PasswordConfirm string `json:"password_confirm" validate:"required,eqfield=Password"`
}

// Validate cleans the form and checks it. Emails keep their case: uniqueness is an exact match.
func (ns *NewStudent) Validate(validate *validator.Validate) error {
	ns.Name = core.CleanString(ns.Name)
	ns.Email = core.CleanString(ns.Email)
	ns.RegisterNumber = core.CleanString(ns.RegisterNumber)
	ns.RollNumber = core.CleanString(ns.RollNumber)
	ns.PhoneNumber = core.CleanString(ns.PhoneNumber)
	return validate.Struct(ns)
}

// StudentUpdate defines what information may be provided to modify an existing Student.
// Approval & placement have dedicated operations and cannot be changed here.
type StudentUpdate struct {
	Name           *string `json:"name"`
	Email          *string `json:"email" validate:"omitempty,email"`
	RegisterNumber *string `json:"register_number"`
	RollNumber     *string `json:"roll_number"`
	Year           *string `json:"year"`
	Branch         *string `json:"branch"`
	Semester       *string `json:"semester"`
	Batch          *string `json:"batch"`
	Department     *string `json:"department"`
	PhoneNumber    *string `json:"phone_number" validate:"omitempty,phone10"`
	HasArrear      *bool   `json:"has_arrear"`
}

func (su *StudentUpdate) Validate(validate *validator.Validate) error {
	for _, s := range []*string{su.Name, su.Email, su.RegisterNumber, su.RollNumber, su.PhoneNumber} {
		if s != nil {
			*s = core.CleanString(*s)
		}
	}
	return validate.Struct(su)
}

func (su StudentUpdate) IsEmpty() bool {
	return su.Name == nil && su.Email == nil && su.RegisterNumber == nil && su.RollNumber == nil &&
		su.Year == nil && su.Branch == nil && su.Semester == nil && su.Batch == nil &&
		su.Department == nil && su.PhoneNumber == nil && su.HasArrear == nil
}

// apply shallow-merges the set fields into s.
func (su StudentUpdate) apply(s *Student) {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	set(&s.Name, su.Name)
	set(&s.Email, su.Email)
	set(&s.RegisterNumber, su.RegisterNumber)
	set(&s.RollNumber, su.RollNumber)
	set(&s.Year, su.Year)
	set(&s.Branch, su.Branch)
	set(&s.Semester, su.Semester)
	set(&s.Batch, su.Batch)
	set(&s.Department, su.Department)
	set(&s.PhoneNumber, su.PhoneNumber)
	if su.HasArrear != nil {
		s.HasArrear = *su.HasArrear
	}
}

// QueryFilter applies AND operation on the set fields.
// Search does a case-insensitive match on one of name, email, register number, department or batch.
type QueryFilter struct {
	Search      string   `query:"search"`
	Years       []string `query:"year"`
	Branches    []string `query:"branch"`
	Departments []string `query:"department"`
	Semesters   []string `query:"semester"`
	Batches     []string `query:"batch"`
	HasArrear   *bool    `query:"has_arrear"`
	IsApproved  *bool    `query:"is_approved"`
	IsPlaced    *bool    `query:"is_placed"`
}

func (qf *QueryFilter) Clean() {
	qf.Search = core.CleanString(qf.Search)
}

func (qf *QueryFilter) IsEmpty() bool {
	return qf.Search == "" && qf.Years == nil && qf.Branches == nil && qf.Departments == nil &&
		qf.Semesters == nil && qf.Batches == nil && qf.HasArrear == nil && qf.IsApproved == nil && qf.IsPlaced == nil
}

// Match reports whether s satisfies the filter.
func (qf *QueryFilter) Match(s Student) bool {
	if qf.Search != "" &&
		!(core.ContainsFold(s.Name, qf.Search) ||
			core.ContainsFold(s.Email, qf.Search) ||
			core.ContainsFold(s.RegisterNumber, qf.Search) ||
			core.ContainsFold(s.Department, qf.Search) ||
			core.ContainsFold(s.Batch, qf.Search)) {
		return false
	}
	if !oneOf(s.Year, qf.Years) || !oneOf(s.Branch, qf.Branches) || !oneOf(s.Department, qf.Departments) ||
		!oneOf(s.Semester, qf.Semesters) || !oneOf(s.Batch, qf.Batches) {
		return false
	}
	if qf.HasArrear != nil && s.HasArrear != *qf.HasArrear {
		return false
	}
	if qf.IsApproved != nil && s.IsApproved != *qf.IsApproved {
		return false
	}
	if qf.IsPlaced != nil && s.IsPlaced != *qf.IsPlaced {
		return false
	}
	return true
}

func oneOf(val string, choices []string) bool {
	if len(choices) == 0 {
		return true
	}
	for _, c := range choices {
		if val == c {
			return true
		}
	}
	return false
}

// EncodeAccount serializes an Account; the role field carries the discriminant.
func EncodeAccount(acc Account) ([]byte, error) {
	return json.Marshal(acc)
}

// DecodeAccount restores an Account serialized by EncodeAccount.
func DecodeAccount(data []byte) (Account, error) {
	var ident Identity
	if err := json.Unmarshal(data, &ident); err != nil {
		return nil, errors.Wrap(err, "decoding account identity")
	}
	switch ident.Role {
	case RoleAdmin:
		return Admin{Identity: ident}, nil
	case RoleStudent:
		var s Student
		if err := json.Unmarshal(data, &s); err != nil {
			return nil, errors.Wrap(err, "decoding student")
		}
		return s, nil
	default:
		return nil, errors.Wrapf(errUnknownRole, "role %q", ident.Role)
	}
}
