package types

import "errors"

var ErrAdminNotFound = errors.New("admin not found")

type AdminUser struct {
	Username     string `db:"username"`
	PasswordHash []byte `db:"password_hash"`
}

// AdminSession is the payload carried inside the signed session cookie.
type AdminSession struct {
	LoggedIn bool
	Username string
}
