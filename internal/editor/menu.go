package editor

import (
	"loopedit/internal/domain"
)

// Context menu item IDs
const (
	MenuDeleteFrame        = "DeleteFrame"
	MenuFlipFrame          = "FlipFrame"
	MenuInsertBefore       = "InsertBefore"
	MenuInsertAfter        = "InsertAfter"
	MenuCutLoop            = "CutLoop"
	MenuCopyLoop           = "CopyLoop"
	MenuPasteOverLoop      = "PasteLoop"
	MenuPasteOverFlipped   = "PasteLoopFlipped"
	MenuFlipAll            = "FlipAll"
	MenuQuickImport        = "QuickImport"
	MenuQuickImportReplace = "QuickImportReplace"
)

// ContextMenu builds the menu for frame (NoFrame when the pointer is not
// over a frame). Subscribers to ContextMenuRequested may fill the menu and
// mark it overridden, in which case no default items are added.
func (e *LoopEditor) ContextMenu(frame int) *domain.ContextMenu {
	if !e.seq.Valid(frame) {
		frame = domain.NoFrame
	}

	menu := &domain.ContextMenu{}
	e.bus.Publish(domain.ContextMenuRequestedEvent{
		Loop:  e.Loop(),
		Frame: frame,
		Menu:  menu,
	})
	if menu.ItemsOverridden {
		return menu
	}

	if frame >= 0 {
		menu.Add(MenuFlipFrame, "Flip selected frame(s)")
		menu.Add(MenuDeleteFrame, "Delete selected frame(s)")
		if e.sel.Count() == 1 {
			menu.AddSeparator()
			menu.Add(MenuInsertBefore, "Insert frame before this")
			menu.Add(MenuInsertAfter, "Insert frame after this")
		}
		menu.AddSeparator()
	}
	menu.Add(MenuCutLoop, "Cut loop")
	menu.Add(MenuCopyLoop, "Copy loop")
	canPaste := e.CanPaste()
	menu.Items = append(menu.Items,
		domain.MenuItem{ID: MenuPasteOverLoop, Label: "Paste over this loop", Enabled: canPaste},
		domain.MenuItem{ID: MenuPasteOverFlipped, Label: "Paste over this loop flipped", Enabled: canPaste},
	)
	menu.Add(MenuFlipAll, "Flip all frames in loop")
	menu.Add(MenuQuickImport, "Add all sprites from folder...")
	menu.Add(MenuQuickImportReplace, "Replace with all sprites from folder...")
	return menu
}

// Invoke runs the default command behind a context menu item ID and
// reports whether the ID was recognised
func (e *LoopEditor) Invoke(id string) bool {
	switch id {
	case MenuDeleteFrame:
		e.DeleteSelectedFrames()
	case MenuFlipFrame:
		e.FlipSelectedFrames()
	case MenuInsertAfter:
		e.InsertAfterSelection()
	case MenuInsertBefore:
		e.InsertBeforeSelection()
	case MenuCutLoop:
		e.CutLoop()
	case MenuCopyLoop:
		e.CopyLoop()
	case MenuPasteOverLoop:
		e.PasteLoop(false)
	case MenuPasteOverFlipped:
		e.PasteLoop(true)
	case MenuFlipAll:
		e.FlipAllFrames()
	case MenuQuickImport:
		e.ImportFromFolder(false)
	case MenuQuickImportReplace:
		e.ImportFromFolder(true)
	default:
		return false
	}
	return true
}
