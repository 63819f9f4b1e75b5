package tracking

const (
	eventSession uint16 = 0
	eventPage    uint16 = 1
	eventToggle  uint16 = 2
)

type BaseEvent struct {
	SessionId string `json:"session_id"`
	Chain     string `json:"chain,omitempty"`
	Event     uint16 `json:"event"`
}

type Session struct {
	*BaseEvent
	UserAgent    string `json:"user_agent,omitempty"`
	Ip           string `json:"ip,omitempty"`
	Language     string `json:"language,omitempty"`
	PragmaHeader string `json:"pragma,omitempty"`
}

type PageEvent struct {
	*BaseEvent
	CollectionId    string `json:"collection"`
	Query           string `json:"query"`
	NumberOfResults int    `json:"noi"`
	Referer         string `json:"referer,omitempty"`
}

type ToggleEventData struct {
	*BaseEvent
	CollectionId string `json:"collection"`
	Key          string `json:"key"`
	Value        string `json:"value"`
	Added        bool   `json:"added"`
}
