package host

import (
	"net/netip"
	"runtime"
	"slices"
	"strings"

	"github.com/camiloAVN/WebSockets-Tester/internal/domain"
	gnet "github.com/shirou/gopsutil/v4/net"
)

var virtualPrefixes = []string{"lo", "docker", "veth", "br-", "virbr", "vmnet", "vboxnet", "cni", "flannel", "cali"}

// typePrefixes follows Linux interface naming (systemd predictable names
// and the older eth/wlan scheme).
var typePrefixes = []struct {
	prefix string
	kind   domain.AttachmentType
}{
	{"wlp", domain.AttachmentWiFi},
	{"wlan", domain.AttachmentWiFi},
	{"wl", domain.AttachmentWiFi},
	{"wwan", domain.AttachmentCellular},
	{"ww", domain.AttachmentCellular},
	{"rmnet", domain.AttachmentCellular},
	{"eth", domain.AttachmentEthernet},
	{"en", domain.AttachmentEthernet},
	{"em", domain.AttachmentEthernet},
	{"usb", domain.AttachmentOther},
	{"rndis", domain.AttachmentOther},
	{"tun", domain.AttachmentOther},
	{"tap", domain.AttachmentOther},
	{"ppp", domain.AttachmentOther},
	{"wg", domain.AttachmentOther},
}

var priority = map[domain.AttachmentType]int{
	domain.AttachmentEthernet: 4,
	domain.AttachmentWiFi:     3,
	domain.AttachmentCellular: 2,
	domain.AttachmentOther:    1,
}

// classifyName maps an interface name to an attachment type. ok is false for
// loopback and virtual bridges, which never count as an attachment.
func classifyName(name string) (kind domain.AttachmentType, ok bool) {
	return classifyNameOn(runtime.GOOS, name)
}

// classifyNameOn applies the Linux prefixes everywhere except that macOS
// names every physical port enN, wired or Wi-Fi, and gopsutil does not say
// which. Those report as other rather than claiming ethernet.
func classifyNameOn(goos, name string) (kind domain.AttachmentType, ok bool) {
	lower := strings.ToLower(name)
	if goos == "darwin" && strings.HasPrefix(lower, "en") {
		return domain.AttachmentOther, true
	}
	for _, prefix := range virtualPrefixes {
		if strings.HasPrefix(lower, prefix) {
			return "", false
		}
	}
	for _, tp := range typePrefixes {
		if strings.HasPrefix(lower, tp.prefix) {
			return tp.kind, true
		}
	}

	return domain.AttachmentOther, true
}

func isUp(iface gnet.InterfaceStat) bool {
	return slices.Contains(iface.Flags, "up")
}

func isLoopback(iface gnet.InterfaceStat) bool {
	return slices.Contains(iface.Flags, "loopback")
}

// hasRoutableAddr reports whether iface holds an address other than a
// loopback or link-local one.
func hasRoutableAddr(iface gnet.InterfaceStat) bool {
	for _, a := range iface.Addrs {
		addr, err := parseAddr(a.Addr)
		if err != nil {
			continue
		}
		if addr.IsLoopback() || addr.IsLinkLocalUnicast() || addr.IsUnspecified() {
			continue
		}
		return true
	}

	return false
}

func parseAddr(raw string) (netip.Addr, error) {
	if prefix, err := netip.ParsePrefix(raw); err == nil {
		return prefix.Addr(), nil
	}
	return netip.ParseAddr(raw)
}

// Select picks the attachment that best describes the host. Connected
// interfaces win over disconnected ones; ties go to ethernet, then wifi,
// cellular and other.
func Select(ifaces gnet.InterfaceStatList) domain.NetworkAttachment {
	best := domain.UnknownAttachment()
	bestScore := -1

	for _, iface := range ifaces {
		if isLoopback(iface) {
			continue
		}
		kind, ok := classifyName(iface.Name)
		if !ok {
			continue
		}

		connected := isUp(iface) && hasRoutableAddr(iface)
		score := priority[kind]
		if connected {
			score += 10
		}
		if score > bestScore {
			bestScore = score
			best = domain.NetworkAttachment{Type: kind, IsConnected: connected, Interface: iface.Name}
		}
	}

	return best
}
