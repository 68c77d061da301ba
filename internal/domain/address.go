package domain

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// ParseAddress checks that raw is a ws or wss locator with a host and an
// explicit port, and returns it trimmed.
func ParseAddress(raw string) (string, error) {
	address := strings.TrimSpace(raw)
	if address == "" {
		return "", fmt.Errorf("%w: address is empty", ErrInvalidAddress)
	}

	parsed, err := url.Parse(address)
	if err != nil {
		return "", fmt.Errorf("%w %q: %v", ErrInvalidAddress, raw, err)
	}

	switch strings.ToLower(parsed.Scheme) {
	case "ws", "wss":
	case "":
		return "", fmt.Errorf("%w %q: missing scheme (expected ws:// or wss://)", ErrInvalidAddress, raw)
	default:
		return "", fmt.Errorf("%w %q: unsupported scheme %q", ErrInvalidAddress, raw, parsed.Scheme)
	}

	if parsed.Hostname() == "" {
		return "", fmt.Errorf("%w %q: missing host", ErrInvalidAddress, raw)
	}

	port := parsed.Port()
	if port == "" {
		return "", fmt.Errorf("%w %q: missing port", ErrInvalidAddress, raw)
	}
	n, err := strconv.Atoi(port)
	if err != nil || n < 1 || n > 65535 {
		return "", fmt.Errorf("%w %q: port %q out of range", ErrInvalidAddress, raw, port)
	}

	return address, nil
}
