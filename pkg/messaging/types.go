package messaging

type ChangeTopic string

const (
	CollectionsChanged ChangeTopic = "collection_changed"
	Tracking           ChangeTopic = "tracking"
)
