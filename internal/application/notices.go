package application

import (
	"errors"
	"fmt"

	"github.com/camiloAVN/WebSockets-Tester/internal/domain"
)

const (
	noticeDisconnected     = "❌ Disconnected from server"
	noticeEthernetDetected = "🎉 Ethernet detected! Physical link active"
	noticeTestingLink      = "🔍 Testing connectivity..."
)

func connectedNotice(address string) string {
	if address == "" {
		return "✅ Connected to server"
	}
	return "✅ Connected to " + address
}

func attachmentInUseNotice(a domain.NetworkAttachment) string {
	return fmt.Sprintf("%s Connected via %s", a.Type.Icon(), a.Type.Label())
}

func attachmentNotice(a domain.NetworkAttachment) string {
	notice := fmt.Sprintf("%s Network: %s", a.Type.Icon(), a.Type.Label())
	if !a.IsConnected {
		notice += " (no connection)"
	}
	return notice
}

func errorNotice(err error) string {
	var connectErr *domain.ConnectError
	if errors.As(err, &connectErr) {
		if connectErr.Err == nil {
			return fmt.Sprintf("⚠️ Could not connect to %s", connectErr.Address)
		}
		return fmt.Sprintf("⚠️ Could not connect to %s: %v", connectErr.Address, connectErr.Err)
	}

	var transportErr *domain.TransportError
	if errors.As(err, &transportErr) && transportErr.Err != nil {
		return fmt.Sprintf("⚠️ Connection error: %v", transportErr.Err)
	}

	return "⚠️ " + err.Error()
}

// AnnounceMessage is the text sent to the server right after connecting to
// tell it which attachment the client is using.
func AnnounceMessage(a domain.NetworkAttachment) string {
	return "Connected from: " + a.Type.Label()
}
