package inmemdb

import (
	"strconv"

	"github.com/trezcool/placement/core/directory"
)

const studentIDPrefix = "s"

type studentRepository struct {
	db *studentTable
}

var _ directory.Repository = (*studentRepository)(nil)

func NewStudentRepository(db *DB) directory.Repository {
	return &studentRepository{db: db.student}
}

func (repo *studentRepository) query() []directory.Student {
	students := make([]directory.Student, 0, len(repo.db.rows))
	for _, s := range repo.db.rows {
		students = append(students, *s)
	}
	return students
}

// nextID is monotonic: IDs are never handed out twice, even after deletions.
func (repo *studentRepository) nextID() string {
	repo.db.pk++
	return studentIDPrefix + strconv.Itoa(repo.db.pk)
}

func (repo *studentRepository) CreateStudent(s directory.Student, uniqueEmail bool) (directory.Student, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if uniqueEmail {
		for _, row := range repo.db.rows {
			if row.Email == s.Email {
				return directory.Student{}, directory.ErrDuplicateEmail
			}
		}
	}

	s.ID = repo.nextID()
	s.Role = directory.RoleStudent
	repo.db.index[s.ID] = len(repo.db.rows)
	repo.db.rows = append(repo.db.rows, &s)
	return s, nil
}

func (repo *studentRepository) QueryAllStudents() ([]directory.Student, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	return repo.query(), nil
}

func (repo *studentRepository) FilterStudents(filter directory.QueryFilter) ([]directory.Student, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if filter.IsEmpty() {
		return repo.query(), nil
	}
	students := make([]directory.Student, 0)
	for _, s := range repo.db.rows {
		if filter.Match(*s) {
			students = append(students, *s)
		}
	}
	return students, nil
}

func (repo *studentRepository) GetStudentByID(id string) (directory.Student, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if idx, ok := repo.db.index[id]; ok {
		return *repo.db.rows[idx], nil
	}
	return directory.Student{}, directory.ErrNotFound
}

func (repo *studentRepository) FindApprovedStudentByEmail(email string) (directory.Student, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	for _, s := range repo.db.rows {
		if s.Email == email && s.IsApproved {
			return *s, nil
		}
	}
	return directory.Student{}, directory.ErrNotFound
}

func (repo *studentRepository) ModifyStudent(id string, fn func(s *directory.Student)) (directory.Student, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	idx, ok := repo.db.index[id]
	if !ok {
		return directory.Student{}, directory.ErrNotFound
	}
	s := *repo.db.rows[idx]
	fn(&s)
	// identity is owned by the store
	s.ID = id
	s.Role = directory.RoleStudent
	repo.db.rows[idx] = &s
	return s, nil
}

func (repo *studentRepository) DeleteStudentsByID(ids ...string) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	drop := make(map[string]bool, len(ids))
	for _, id := range ids {
		if _, ok := repo.db.index[id]; ok {
			drop[id] = true
		}
	}
	if len(drop) == 0 {
		return nil
	}

	rows := repo.db.rows[:0]
	for _, s := range repo.db.rows {
		if drop[s.ID] {
			delete(repo.db.index, s.ID)
			continue
		}
		repo.db.index[s.ID] = len(rows)
		rows = append(rows, s)
	}
	for i := len(rows); i < len(repo.db.rows); i++ {
		repo.db.rows[i] = nil
	}
	repo.db.rows = rows
	return nil
}
