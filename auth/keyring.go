// Package auth stores and retrieves the platform session cookie.
package auth

import (
	"github.com/zalando/go-keyring"
)

const (
	service = "echodl"
	user    = "session-cookie"
)

// SetCookie persists the session cookie string to the system keyring.
func SetCookie(cookie string) error {
	return keyring.Set(service, user, cookie)
}

// GetCookie retrieves the session cookie string from the system keyring.
func GetCookie() (string, error) {
	return keyring.Get(service, user)
}

// DeleteCookie removes the session cookie string from the system keyring.
func DeleteCookie() error {
	return keyring.Delete(service, user)
}
