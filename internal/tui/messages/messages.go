package messages

import (
	"time"

	"speedread/internal/reader"
)

// TickMsg drives one frame of the reader
type TickMsg struct {
	Time time.Time
}

// DropMsg hands a file to the reader as if it was dropped
type DropMsg struct {
	File reader.File
	// Inbox is set for files delivered by the directory watcher
	Inbox bool
}

// WatchClosedMsg reports that the drop inbox stopped delivering
type WatchClosedMsg struct{}
