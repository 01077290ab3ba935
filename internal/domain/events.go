package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventFrameAdded           EventType = "FrameAdded"
	EventFramesDeleted        EventType = "FramesDeleted"
	EventLoopChanged          EventType = "LoopChanged"
	EventSelectionChanged     EventType = "SelectionChanged"
	EventContextMenuRequested EventType = "ContextMenuRequested"
	EventClipboardChanged     EventType = "ClipboardChanged"
	EventError                EventType = "Error"
	EventConfigLoaded         EventType = "ConfigLoaded"
	EventConfigSaved          EventType = "ConfigSaved"
	EventDocumentLoaded       EventType = "DocumentLoaded"
	EventDocumentSaved        EventType = "DocumentSaved"
	EventSpriteScanCompleted  EventType = "SpriteScanCompleted"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// FrameAddedEvent is emitted after a frame has been inserted into a loop
type FrameAddedEvent struct {
	Loop  *Loop
	Frame int // ID of the new frame
}

func (e FrameAddedEvent) Type() EventType { return EventFrameAdded }

// FramesDeletedEvent is emitted after frames have been removed from a loop
type FramesDeletedEvent struct {
	Loop   *Loop
	Frames []int // pre-deletion IDs, ascending
}

func (e FramesDeletedEvent) Type() EventType { return EventFramesDeleted }

// Change reasons carried by LoopChangedEvent
const (
	ChangeCleared  = "cleared"
	ChangeFlipped  = "flipped"
	ChangePasted   = "pasted"
	ChangeImported = "imported"
	ChangeEdited   = "edited"
)

// LoopChangedEvent is emitted when a loop's frame contents change without
// an insert or delete
type LoopChangedEvent struct {
	Loop   *Loop
	Reason string
}

func (e LoopChangedEvent) Type() EventType { return EventLoopChanged }

// SelectionChangedEvent is emitted on every selection transition
type SelectionChangedEvent struct {
	Loop   *Loop
	Frame  int // target frame, NoFrame for none
	Action MultiSelectAction
}

func (e SelectionChangedEvent) Type() EventType { return EventSelectionChanged }

// ContextMenuRequestedEvent is emitted before a loop's context menu is built.
// Subscribers may fill Menu and set Menu.ItemsOverridden.
type ContextMenuRequestedEvent struct {
	Loop  *Loop
	Frame int // frame under the pointer, NoFrame for none
	Menu  *ContextMenu
}

func (e ContextMenuRequestedEvent) Type() EventType { return EventContextMenuRequested }

// ClipboardChangedEvent is emitted when a loop is copied or cut
type ClipboardChangedEvent struct {
	Frames int
}

func (e ClipboardChangedEvent) Type() EventType { return EventClipboardChanged }

// ErrorEvent is emitted when an I/O operation fails
type ErrorEvent struct {
	Message string
	Err     error
}

func (e ErrorEvent) Type() EventType { return EventError }

// ConfigLoadedEvent is emitted when configuration is loaded
type ConfigLoadedEvent struct {
	Path string
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted when configuration is saved
type ConfigSavedEvent struct {
	Path string
}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }

// DocumentLoadedEvent is emitted when a view document is read from disk
type DocumentLoadedEvent struct {
	Path string
	View *View
}

func (e DocumentLoadedEvent) Type() EventType { return EventDocumentLoaded }

// DocumentSavedEvent is emitted when a view document is written to disk
type DocumentSavedEvent struct {
	Path string
}

func (e DocumentSavedEvent) Type() EventType { return EventDocumentSaved }

// SpriteScanCompletedEvent is emitted when a sprite directory scan finishes
type SpriteScanCompletedEvent struct {
	Root    string
	Folders int
	Sprites int
}

func (e SpriteScanCompletedEvent) Type() EventType { return EventSpriteScanCompleted }
