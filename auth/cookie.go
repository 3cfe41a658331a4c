package auth

import (
	"errors"
	"fmt"
	"strings"

	"github.com/echodl/echodl/filesystem"
	"github.com/echodl/echodl/key"
	"github.com/spf13/viper"
	"github.com/zalando/go-keyring"
)

// Source tells where a session cookie was found.
type Source string

const (
	FromFile    Source = "file"
	FromKeyring Source = "keyring"
)

// ErrNoCookie is returned when no session cookie is configured.
var ErrNoCookie = errors.New("no session cookie: run `echodl auth set` or set auth.cookie_file")

// Clean strips line breaks and surrounding blanks from a pasted cookie string.
func Clean(cookie string) string {
	cookie = strings.ReplaceAll(cookie, "\r", "")
	cookie = strings.ReplaceAll(cookie, "\n", "")
	return strings.TrimSpace(cookie)
}

// ReadCookieFile reads a cookie string from a file.
func ReadCookieFile(path string) (string, error) {
	data, err := filesystem.API().ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read cookie file: %w", err)
	}

	cookie := Clean(string(data))
	if cookie == "" {
		return "", fmt.Errorf("cookie file %s is empty", path)
	}

	return cookie, nil
}

// Cookie resolves the session cookie: auth.cookie_file when set, the system
// keyring otherwise.
func Cookie() (string, Source, error) {
	if path := viper.GetString(key.AuthCookieFile); path != "" {
		cookie, err := ReadCookieFile(path)
		return cookie, FromFile, err
	}

	cookie, err := GetCookie()
	if errors.Is(err, keyring.ErrNotFound) || (err == nil && cookie == "") {
		return "", FromKeyring, ErrNoCookie
	}
	if err != nil {
		return "", FromKeyring, fmt.Errorf("read keyring: %w", err)
	}

	return cookie, FromKeyring, nil
}

// Import copies the cookie string of a file into the system keyring.
func Import(path string) error {
	cookie, err := ReadCookieFile(path)
	if err != nil {
		return err
	}

	return SetCookie(cookie)
}
