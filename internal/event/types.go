// internal/event/types.go
package event

const (
	MapChanged  EventType = "MapChanged"  // Карта изменилась
	ToolChanged EventType = "ToolChanged" // Data: the new tool name
	MapSaved    EventType = "MapSaved"    // Data: number of tiles written
	SaveFailed  EventType = "SaveFailed"  // Data: error
)
