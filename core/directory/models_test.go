package directory

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeAccount(t *testing.T) {
	student := SampleStudents[1]
	student.ID = "s2"

	tests := []struct {
		name string
		acc  Account
	}{
		{name: "admin", acc: NewAdmin("a1", "Admin User", "admin@example.com")},
		{name: "student", acc: student},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := EncodeAccount(tt.acc)
			require.NoError(t, err)
			got, err := DecodeAccount(data)
			require.NoError(t, err)
			assert.Equal(t, tt.acc, got)
		})
	}
}

func TestEncodeAccount_wireFormat(t *testing.T) {
	data, err := EncodeAccount(NewAdmin("a1", "Admin User", "admin@example.com"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"a1","name":"Admin User","email":"admin@example.com","role":"admin"}`, string(data))

	data, err = EncodeAccount(Student{Identity: Identity{ID: "s9", Role: RoleStudent}, IsApproved: true})
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"id": "s9", "name": "", "email": "", "role": "student",
		"register_number": "", "roll_number": "", "year": "", "branch": "", "semester": "",
		"batch": "", "department": "", "phone_number": "",
		"has_arrear": false, "is_approved": true, "is_placed": false
	}`, string(data))
}

func TestDecodeAccount_invalid(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr error
	}{
		{name: "not json", data: "lol"},
		{name: "no role", data: `{"id":"a1"}`, wantErr: errUnknownRole},
		{name: "unknown role", data: `{"id":"a1","role":"root"}`, wantErr: errUnknownRole},
		{name: "bad student", data: `{"id":"s1","role":"student","is_placed":"yes"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			acc, err := DecodeAccount([]byte(tt.data))
			assert.Error(t, err)
			assert.Nil(t, acc)
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr), "err = %v", err)
			}
		})
	}
}

func TestNewStudent_Validate(t *testing.T) {
	validate, translator := NewValidator()

	valid := func() NewStudent {
		return NewStudent{
			StudentFields: StudentFields{
				Name: "  Jane  ", Email: " Jane@Example.com ", RegisterNumber: "REG9", RollNumber: "CS9",
				Year: "1", Branch: "CS", Semester: "1", Batch: "2024-2028", Department: "CSE", PhoneNumber: "0123456789",
			},
			Password:        "secret",
			PasswordConfirm: "secret",
		}
	}

	ns := valid()
	require.NoError(t, ns.Validate(validate))
	assert.Equal(t, "Jane", ns.Name)
	assert.Equal(t, "Jane@Example.com", ns.Email, "email case is kept")

	tests := []struct {
		name     string
		mutate   func(ns *NewStudent)
		wantFlds map[string]string
	}{
		{
			name:     "missing name",
			mutate:   func(ns *NewStudent) { ns.Name = "   " },
			wantFlds: map[string]string{"name": "this field is required"},
		},
		{
			name:     "bad email",
			mutate:   func(ns *NewStudent) { ns.Email = "lol" },
			wantFlds: map[string]string{"email": "email must be a valid email address"},
		},
		{
			name:     "bad phone",
			mutate:   func(ns *NewStudent) { ns.PhoneNumber = "12345" },
			wantFlds: map[string]string{"phone_number": "phone number must be 10 digits"},
		},
		{
			name:     "passwords mismatch",
			mutate:   func(ns *NewStudent) { ns.PasswordConfirm = "secreT" },
			wantFlds: map[string]string{"password_confirm": "password_confirm must be equal to Password"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ns := valid()
			tt.mutate(&ns)
			err := ns.Validate(validate)
			require.Error(t, err)

			var vErrs validator.ValidationErrors
			require.True(t, errors.As(err, &vErrs))
			got := make(map[string]string, len(vErrs))
			for _, fe := range vErrs {
				got[fe.Field()] = fe.Translate(translator)
			}
			assert.Equal(t, tt.wantFlds, got)
		})
	}
}

func TestStudentUpdate(t *testing.T) {
	validate, _ := NewValidator()
	str := func(s string) *string { return &s }

	assert.True(t, StudentUpdate{}.IsEmpty())

	su := StudentUpdate{Email: str(" new@example.com "), PhoneNumber: str("1234567890")}
	assert.False(t, su.IsEmpty())
	require.NoError(t, su.Validate(validate))
	assert.Equal(t, "new@example.com", *su.Email)

	assert.Error(t, (&StudentUpdate{Email: str("lol")}).Validate(validate))
	assert.Error(t, (&StudentUpdate{PhoneNumber: str("12")}).Validate(validate))

	s := SampleStudents[0]
	su.apply(&s)
	assert.Equal(t, "new@example.com", s.Email)
	assert.Equal(t, "1234567890", s.PhoneNumber)
	assert.Equal(t, SampleStudents[0].Name, s.Name)
}
