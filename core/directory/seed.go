package directory

import "github.com/pkg/errors"

// SampleStudents is the roster every fresh store starts with.
var SampleStudents = []Student{
	{
		Identity:       Identity{Name: "John Doe", Email: "john@example.com", Role: RoleStudent},
		RegisterNumber: "REG001", RollNumber: "CS001", Year: "3", Branch: "Computer Science", Semester: "6",
		Batch: "2020-2024", Department: "CSE", PhoneNumber: "1234567890",
		IsApproved: true,
	},
	{
		Identity:       Identity{Name: "Jane Smith", Email: "jane@example.com", Role: RoleStudent},
		RegisterNumber: "REG002", RollNumber: "CS002", Year: "3", Branch: "Computer Science", Semester: "6",
		Batch: "2020-2024", Department: "CSE", PhoneNumber: "9876543210",
		HasArrear: true, IsApproved: true, IsPlaced: true,
	},
	{
		Identity:       Identity{Name: "Robert Johnson", Email: "robert@example.com", Role: RoleStudent},
		RegisterNumber: "REG003", RollNumber: "EE001", Year: "2", Branch: "Electrical Engineering", Semester: "4",
		Batch: "2021-2025", Department: "EEE", PhoneNumber: "5554443333",
	},
	{
		Identity:       Identity{Name: "Emily Davis", Email: "emily@example.com", Role: RoleStudent},
		RegisterNumber: "REG004", RollNumber: "ME001", Year: "4", Branch: "Mechanical Engineering", Semester: "8",
		Batch: "2019-2023", Department: "MECH", PhoneNumber: "1112223333",
		IsApproved: true, IsPlaced: true,
	},
	{
		Identity:       Identity{Name: "Michael Brown", Email: "michael@example.com", Role: RoleStudent},
		RegisterNumber: "REG005", RollNumber: "CE001", Year: "3", Branch: "Civil Engineering", Semester: "6",
		Batch: "2020-2024", Department: "CIVIL", PhoneNumber: "9998887777",
		HasArrear: true, IsApproved: true,
	},
}

// Seed appends SampleStudents to an empty roster; they get the IDs s1 to s5.
func Seed(repo Repository) error {
	for _, s := range SampleStudents {
		if _, err := repo.CreateStudent(s, true); err != nil {
			return errors.Wrapf(err, "seeding %s", s.Email)
		}
	}
	return nil
}
