// Package network provides the HTTP session shared by every request made to the lecture platform.
package network

import (
	"net/http"
	"time"

	"github.com/echodl/echodl/key"
	"github.com/spf13/viper"
)

// Client is the HTTP client shared across the application.
// Setup reconfigures it from the loaded configuration.
var Client = &http.Client{
	Timeout:   time.Minute,
	Transport: newTransport(),
}

// DownloadIdleTimeout is the IdleTimeout given to new sessions.
var DownloadIdleTimeout = 30 * time.Second

// Setup applies the network keys to Client and DownloadIdleTimeout.
func Setup() {
	Client.Timeout = time.Duration(viper.GetInt(key.NetworkTimeout)) * time.Second
	DownloadIdleTimeout = time.Duration(viper.GetInt(key.NetworkDownloadIdleTimeout)) * time.Second

	if viper.GetBool(key.NetworkTLSFingerprint) {
		Client.Transport = newFingerprintTransport()
	} else {
		Client.Transport = newTransport()
	}
}

// newTransport initializes a tuned http.Transport with pool and timeout parameters.
func newTransport() *http.Transport {
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.MaxIdleConns = 100
	t.MaxIdleConnsPerHost = 100
	t.MaxConnsPerHost = 200
	t.IdleConnTimeout = 30 * time.Second
	t.ResponseHeaderTimeout = 30 * time.Second
	t.ExpectContinueTimeout = 30 * time.Second
	return t
}
