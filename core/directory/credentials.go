package directory

import (
	"crypto/subtle"

	"golang.org/x/crypto/bcrypt"

	"github.com/trezcool/placement/core"
)

// credentials are the portal's fixed sign-in secrets: one admin pair and one password shared by all students.
type credentials struct {
	admin          Admin
	adminPwdHash   []byte
	studentPwdHash []byte
}

func newCredentials(conf *core.Config) (credentials, error) {
	cost := bcrypt.DefaultCost
	if conf.TestMode {
		cost = bcrypt.MinCost
	}

	dc := conf.Directory
	adminHash, err := bcrypt.GenerateFromPassword([]byte(dc.AdminPassword), cost)
	if err != nil {
		return credentials{}, err
	}
	studentHash, err := bcrypt.GenerateFromPassword([]byte(dc.StudentPassword), cost)
	if err != nil {
		return credentials{}, err
	}
	return credentials{
		admin:          NewAdmin(dc.AdminID, dc.AdminName, dc.AdminEmail),
		adminPwdHash:   adminHash,
		studentPwdHash: studentHash,
	}, nil
}

func (c credentials) checkAdmin(email, pwd string) bool {
	emailOK := subtle.ConstantTimeCompare([]byte(email), []byte(c.admin.Email)) == 1
	return bcrypt.CompareHashAndPassword(c.adminPwdHash, []byte(pwd)) == nil && emailOK
}

func (c credentials) checkStudent(pwd string) bool {
	return bcrypt.CompareHashAndPassword(c.studentPwdHash, []byte(pwd)) == nil
}
