package session

// MessageType identifies a display-surface signal
type MessageType string

// Inbound signals (display surface -> session)
const (
	// MessageReady is sent once the display surface has loaded and is able
	// to receive commands
	MessageReady MessageType = "ready"
	// MessageRetryCheck is the user-initiated retry after installing the
	// converter
	MessageRetryCheck MessageType = "retryLibreOfficeCheck"
	// MessageError reports a render failure from the display surface
	// (inbound) or a conversion failure to it (outbound)
	MessageError MessageType = "error"
)

// Outbound signals (session -> display surface)
const (
	// MessageNotInstalled tells the surface to show the installation prompt
	// with a retry affordance
	MessageNotInstalled MessageType = "libreOfficeNotInstalled"
	// MessageLoadPDF tells the surface to render the PDF at Location
	MessageLoadPDF MessageType = "loadPDF"
)

// Inbound is a message received from the display surface
type Inbound struct {
	Type MessageType `json:"type"`
	Text string      `json:"text,omitempty"`
}

// Outbound is a message sent to the display surface
type Outbound struct {
	Type     MessageType `json:"type"`
	Location string      `json:"location,omitempty"`
	Text     string      `json:"text,omitempty"`
}
