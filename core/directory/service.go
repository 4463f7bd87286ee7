package directory

import (
	"context"
	"fmt"
	"net/mail"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/trezcool/placement/core"
)

var (
	// errors
	ErrNotFound           = errors.New("student not found")
	ErrDuplicateEmail     = errors.New("email already in use")
	ErrInvalidCredentials = errors.New("invalid credentials or your account is not approved yet")
	ErrNoSession          = errors.New("no session stored")
)

type (
	// Repository is the roster storage. Students are kept in insertion order.
	Repository interface {
		// CreateStudent assigns a new ID to s and appends it to the roster.
		// With uniqueEmail set, ErrDuplicateEmail is returned if s.Email is already taken (exact match).
		CreateStudent(s Student, uniqueEmail bool) (Student, error)
		QueryAllStudents() ([]Student, error)
		FilterStudents(filter QueryFilter) ([]Student, error)
		GetStudentByID(id string) (Student, error)
		// FindApprovedStudentByEmail returns the first approved Student with this exact email.
		FindApprovedStudentByEmail(email string) (Student, error)
		// ModifyStudent applies fn to the stored Student atomically and returns the result.
		ModifyStudent(id string, fn func(s *Student)) (Student, error)
		DeleteStudentsByID(ids ...string) error
	}

	// SessionSlot is the named local slot holding the serialized session Account.
	SessionSlot interface {
		// Read returns ErrNoSession when the slot is empty.
		Read() ([]byte, error)
		Write(data []byte) error
		Clear() error
	}

	// Dispatch describes a batch of messages handed to the mail service.
	Dispatch struct {
		ID        string `json:"id"`
		Requested int    `json:"requested"`
		Mailed    int    `json:"mailed"`
	}

	// Service is the Directory Store: the single source of truth for the roster and the current session.
	Service struct {
		repo    Repository
		slot    SessionSlot
		mailSvc core.EmailService
		logger  core.Logger
		creds   credentials
		latency time.Duration

		mu      sync.RWMutex
		session Account
	}
)

// NewService builds the store and restores the session persisted in slot, if any.
func NewService(conf *core.Config, repo Repository, slot SessionSlot, mailSvc core.EmailService, logger core.Logger) (*Service, error) {
	creds, err := newCredentials(conf)
	if err != nil {
		return nil, errors.Wrap(err, "preparing credentials")
	}
	svc := &Service{
		repo:    repo,
		slot:    slot,
		mailSvc: mailSvc,
		logger:  logger,
		creds:   creds,
		latency: conf.Directory.Latency,
	}
	if err := svc.restoreSession(); err != nil {
		return nil, errors.Wrap(err, "restoring session")
	}
	return svc, nil
}

func (svc *Service) restoreSession() error {
	data, err := svc.slot.Read()
	if err != nil {
		if errors.Is(err, ErrNoSession) {
			return nil
		}
		return err
	}
	acc, err := DecodeAccount(data)
	if err != nil {
		svc.logger.Warn("discarding unreadable session", err)
		return svc.slot.Clear()
	}
	svc.mu.Lock()
	svc.session = acc
	svc.mu.Unlock()
	return nil
}

// simulateLatency stands in for the round trip of a remote call. Once started, a call always resolves.
func (svc *Service) simulateLatency() {
	if svc.latency > 0 {
		time.Sleep(svc.latency)
	}
}

// slotFailure reports a broken session slot: the session can no longer be kept, so the app must stop.
func slotFailure(err error) error {
	return core.NewShutdownError(err.Error())
}

// Current returns the session Account, if one is logged in.
func (svc *Service) Current() (Account, bool) {
	svc.mu.RLock()
	defer svc.mu.RUnlock()
	return svc.session, svc.session != nil
}

func (svc *Service) setSession(acc Account) error {
	data, err := EncodeAccount(acc)
	if err != nil {
		return errors.Wrap(err, "encoding account")
	}

	svc.mu.Lock()
	defer svc.mu.Unlock()
	if err := svc.slot.Write(data); err != nil {
		return slotFailure(errors.Wrap(err, "persisting session"))
	}
	svc.session = acc
	return nil
}

// Login opens a session. Unknown, unapproved or mismatching accounts all fail with ErrInvalidCredentials
// and leave the current session untouched.
func (svc *Service) Login(ctx context.Context, email, pwd string, role Role) (Account, error) {
	svc.simulateLatency()

	var acc Account
	switch role {
	case RoleAdmin:
		if svc.creds.checkAdmin(email, pwd) {
			acc = svc.creds.admin
		}
	case RoleStudent:
		s, err := svc.repo.FindApprovedStudentByEmail(email)
		if err != nil && !errors.Is(err, ErrNotFound) {
			return nil, errors.Wrap(err, "finding student by email")
		}
		if err == nil && svc.creds.checkStudent(pwd) {
			acc = s
		}
	}
	if acc == nil {
		return nil, ErrInvalidCredentials
	}

	if err := svc.setSession(acc); err != nil {
		return nil, err
	}
	svc.logger.Info(fmt.Sprintf("%s logged in", acc.Ident().Email), acc)
	return acc, nil
}

// Logout clears the session and its persisted copy.
func (svc *Service) Logout() error {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	svc.session = nil
	if err := svc.slot.Clear(); err != nil {
		return slotFailure(errors.Wrap(err, "clearing session"))
	}
	return nil
}

// Register appends a pending Student. Students sign in with the portal's shared student password,
// so pwd is not retained. Register does not open a session.
func (svc *Service) Register(ctx context.Context, fields StudentFields, pwd string) (Student, error) {
	svc.simulateLatency()

	s := fields.newStudent()
	s, err := svc.repo.CreateStudent(s, true)
	if err != nil {
		if errors.Is(err, ErrDuplicateEmail) {
			return Student{}, core.NewValidationError(err, core.FieldError{Field: "email", Error: err.Error()})
		}
		return Student{}, errors.Wrap(err, "creating student")
	}
	svc.logger.Info(fmt.Sprintf("student %s registered", s.ID), s)
	return s, nil
}

// Students returns the whole roster in insertion order, whatever the approval state.
func (svc *Service) Students() ([]Student, error) {
	return svc.repo.QueryAllStudents()
}

func (svc *Service) Filter(filter QueryFilter) ([]Student, error) {
	return svc.repo.FilterStudents(filter)
}

// Query filters the roster, then sorts the matches by ordering.
func (svc *Service) Query(filter QueryFilter, ordering []core.Ordering) ([]Student, error) {
	students, err := svc.Filter(filter)
	if err != nil {
		return nil, err
	}
	if err := SortStudents(students, ordering); err != nil {
		return nil, err
	}
	return students, nil
}

func (svc *Service) Student(id string) (Student, error) {
	return svc.repo.GetStudentByID(id)
}

// modify runs fn on the Student; an unknown id is a silent no-op.
func (svc *Service) modify(id string, fn func(s *Student)) (Student, bool, error) {
	s, err := svc.repo.ModifyStudent(id, fn)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Student{}, false, nil
		}
		return Student{}, false, err
	}
	return s, true, nil
}

// ApproveStudent lets a pending Student log in and mails them about it.
func (svc *Service) ApproveStudent(id string) error {
	var wasPending bool
	s, ok, err := svc.modify(id, func(s *Student) {
		wasPending = !s.IsApproved
		s.IsApproved = true
	})
	if err != nil {
		return errors.Wrap(err, "approving student")
	}
	if ok && wasPending && s.Email != "" {
		svc.mailSvc.SendMessages(&core.EmailMessage{
			To:           []mail.Address{{Name: s.Name, Address: s.Email}},
			Subject:      "Your account has been approved",
			TemplateName: "account_approved",
			TemplateData: s,
		})
	}
	return nil
}

// RejectStudent deletes the registration entirely.
func (svc *Service) RejectStudent(id string) error {
	return errors.Wrap(svc.repo.DeleteStudentsByID(id), "rejecting student")
}

// MarkAsPlaced is idempotent; placement is never revoked.
func (svc *Service) MarkAsPlaced(id string) error {
	_, _, err := svc.modify(id, func(s *Student) { s.IsPlaced = true })
	return errors.Wrap(err, "marking student as placed")
}

// AddStudent creates an approved Student however incomplete fields are.
func (svc *Service) AddStudent(fields StudentFields, pwd string) (Student, error) {
	s := fields.newStudent()
	s.IsApproved = true
	s.IsPlaced = fields.IsPlaced
	s, err := svc.repo.CreateStudent(s, false)
	if err != nil {
		return Student{}, errors.Wrap(err, "creating student")
	}
	return s, nil
}

func (svc *Service) RemoveStudent(id string) error {
	return errors.Wrap(svc.repo.DeleteStudentsByID(id), "removing student")
}

func (svc *Service) UpdateStudent(id string, su StudentUpdate) error {
	_, _, err := svc.modify(id, su.apply)
	return errors.Wrap(err, "updating student")
}

type messageData struct {
	Name    string
	Message string
	Link    string
}

// MessageStudents mails message (and the optional link) to every known student in ids.
// Unknown ids are skipped; nothing about the message is kept.
func (svc *Service) MessageStudents(ctx context.Context, ids []string, message, link string) (Dispatch, error) {
	dispatch := Dispatch{ID: uuid.New().String(), Requested: len(ids)}

	msgs := make([]*core.EmailMessage, 0, len(ids))
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return Dispatch{}, err
		}
		s, err := svc.repo.GetStudentByID(id)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				continue
			}
			return Dispatch{}, errors.Wrap(err, "finding student by ID")
		}
		if s.Email == "" {
			continue
		}
		msgs = append(msgs, &core.EmailMessage{
			To:           []mail.Address{{Name: s.Name, Address: s.Email}},
			Subject:      "New message from the placement cell",
			TemplateName: "student_message",
			TemplateData: messageData{Name: s.Name, Message: message, Link: link},
		})
	}
	dispatch.Mailed = len(msgs)
	if len(msgs) > 0 {
		svc.mailSvc.SendMessages(msgs...)
	}

	svc.logger.Info(
		fmt.Sprintf("message %s sent to %d student(s)", dispatch.ID, dispatch.Requested),
		map[string]interface{}{"ids": ids, "message": message, "link": link},
	)
	return dispatch, nil
}
