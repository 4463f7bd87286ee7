package testutil

import (
	"io/ioutil"
	"log"
	"testing"

	"github.com/pkg/errors"

	"github.com/trezcool/placement/core"
	"github.com/trezcool/placement/core/directory"
	emailsvc "github.com/trezcool/placement/services/email"
	logsvc "github.com/trezcool/placement/services/logger"
	inmemdb "github.com/trezcool/placement/storage/database/inmem"
	"github.com/trezcool/placement/storage/session"
)

// Env is a seeded directory wired to in-memory collaborators.
type Env struct {
	Conf    *core.Config
	Logger  core.Logger
	Repo    directory.Repository
	Slot    directory.SessionSlot
	MailSvc *emailsvc.ConsoleServiceMock
	Svc     *directory.Service
}

// NewLogger returns a quiet Logger that never reports remotely.
func NewLogger() core.Logger {
	logger := logsvc.NewRollbarLogger(log.New(ioutil.Discard, "", 0), core.NewTestConfig())
	logger.Enable(false)
	return logger
}

// NewEnv builds a seeded directory. The session lives in slot when given, in memory otherwise.
func NewEnv(t *testing.T, slot ...directory.SessionSlot) *Env {
	t.Helper()

	conf := core.NewTestConfig()
	logger := NewLogger()
	core.ParseEmailTemplates(conf, logger)

	repo := inmemdb.NewStudentRepository(inmemdb.Open())
	if err := directory.Seed(repo); err != nil {
		t.Fatalf("Seed() failed: %v", err)
	}

	var s directory.SessionSlot = session.NewMemorySlot()
	if len(slot) > 0 {
		s = slot[0]
	}
	mailSvc := emailsvc.NewConsoleServiceMock(conf, logger)

	svc, err := directory.NewService(conf, repo, s, mailSvc, logger)
	if err != nil {
		t.Fatalf("NewService() failed: %v", err)
	}
	return &Env{Conf: conf, Logger: logger, Repo: repo, Slot: s, MailSvc: mailSvc, Svc: svc}
}

// CreateStudent adds a record straight to the repository.
func CreateStudent(t *testing.T, repo directory.Repository, name, email string, isApproved, isPlaced bool) directory.Student {
	t.Helper()
	s := directory.Student{
		Identity:   directory.Identity{Name: name, Email: email},
		Department: "CSE",
		Batch:      "2020-2024",
		IsApproved: isApproved,
		IsPlaced:   isPlaced,
	}
	s, err := repo.CreateStudent(s, true)
	if err != nil {
		t.Fatalf("CreateStudent() failed: %v", err)
	}
	return s
}

// RegistrationFields returns a complete, valid registration form.
func RegistrationFields(name, email string) directory.StudentFields {
	return directory.StudentFields{
		Name:           name,
		Email:          email,
		RegisterNumber: "REG100",
		RollNumber:     "CS100",
		Year:           "2",
		Branch:         "Computer Science",
		Semester:       "3",
		Batch:          "2022-2026",
		Department:     "CSE",
		PhoneNumber:    "0123456789",
	}
}

var ErrBrokenSlot = errors.New("disk full")

// BrokenSlot reads like an empty slot but fails every write.
type BrokenSlot struct{}

func (BrokenSlot) Read() ([]byte, error) { return nil, directory.ErrNoSession }
func (BrokenSlot) Write([]byte) error    { return ErrBrokenSlot }
func (BrokenSlot) Clear() error          { return ErrBrokenSlot }
