package domain

type AttachmentType string

const (
	AttachmentEthernet AttachmentType = "ethernet"
	AttachmentWiFi     AttachmentType = "wifi"
	AttachmentCellular AttachmentType = "cellular"
	AttachmentOther    AttachmentType = "other"
	AttachmentUnknown  AttachmentType = "unknown"
)

// NetworkAttachment is replaced wholesale on every observation.
type NetworkAttachment struct {
	Type        AttachmentType
	IsConnected bool
	Interface   string
}

func UnknownAttachment() NetworkAttachment {
	return NetworkAttachment{Type: AttachmentUnknown}
}

func (t AttachmentType) Label() string {
	switch t {
	case AttachmentEthernet:
		return "Ethernet"
	case AttachmentWiFi:
		return "WiFi"
	case AttachmentCellular:
		return "Cellular"
	case AttachmentOther:
		return "Cable/USB"
	default:
		return "Unknown"
	}
}

func (t AttachmentType) Icon() string {
	switch t {
	case AttachmentEthernet, AttachmentOther:
		return "🔌"
	case AttachmentWiFi:
		return "📶"
	case AttachmentCellular:
		return "📱"
	default:
		return "❓"
	}
}

// StatusLabel renders the attachment the way the network panel shows it,
// flagging attachments that have no usable link.
func (a NetworkAttachment) StatusLabel() string {
	label := a.Type.Icon() + " " + a.Type.Label()
	if !a.IsConnected {
		label += " (no connection)"
	}

	return label
}
