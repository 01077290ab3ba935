package editor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loopedit/internal/domain"
	"loopedit/internal/editor"
	"loopedit/internal/eventbus"
	"loopedit/internal/selection"
)

func menuIDs(m *domain.ContextMenu) []string {
	var ids []string
	for _, item := range m.Items {
		if !item.Separator {
			ids = append(ids, item.ID)
		}
	}
	return ids
}

func findItem(t *testing.T, m *domain.ContextMenu, id string) domain.MenuItem {
	t.Helper()
	for _, item := range m.Items {
		if item.ID == id {
			return item
		}
	}
	require.Failf(t, "menu item missing", "no item %q in %v", id, menuIDs(m))
	return domain.MenuItem{}
}

func TestContextMenu_OverFrameWithSingleSelection(t *testing.T) {
	e, tb := newEditor(t, 3, editor.Options{})
	e.ChangeSelectedFrame(1, selection.Set)

	menu := e.ContextMenu(1)

	assert.Equal(t, []string{
		editor.MenuFlipFrame,
		editor.MenuDeleteFrame,
		editor.MenuInsertBefore,
		editor.MenuInsertAfter,
		editor.MenuCutLoop,
		editor.MenuCopyLoop,
		editor.MenuPasteOverLoop,
		editor.MenuPasteOverFlipped,
		editor.MenuFlipAll,
		editor.MenuQuickImport,
		editor.MenuQuickImportReplace,
	}, menuIDs(menu))

	events := tb.OfType(eventbus.EventContextMenuRequested)
	require.Len(t, events, 1)
	ev := events[0].(eventbus.ContextMenuRequestedEvent)
	assert.Equal(t, 1, ev.Frame)
	assert.Same(t, menu, ev.Menu)
}

func TestContextMenu_InsertItemsNeedExactlyOneSelected(t *testing.T) {
	e, _ := newEditor(t, 3, editor.Options{})
	e.ChangeSelectedFrame(0, selection.Set)
	e.ChangeSelectedFrame(2, selection.Add)

	ids := menuIDs(e.ContextMenu(0))

	assert.Contains(t, ids, editor.MenuDeleteFrame)
	assert.NotContains(t, ids, editor.MenuInsertBefore)
	assert.NotContains(t, ids, editor.MenuInsertAfter)
}

func TestContextMenu_OutsideFrames(t *testing.T) {
	e, tb := newEditor(t, 2, editor.Options{})

	ids := menuIDs(e.ContextMenu(7))

	assert.NotContains(t, ids, editor.MenuFlipFrame)
	assert.Equal(t, editor.MenuCutLoop, ids[0])
	ev := tb.Last().(eventbus.ContextMenuRequestedEvent)
	assert.Equal(t, domain.NoFrame, ev.Frame)
}

func TestContextMenu_PasteNeedsClipboard(t *testing.T) {
	e, _ := newEditor(t, 2, editor.Options{})

	menu := e.ContextMenu(domain.NoFrame)
	assert.False(t, findItem(t, menu, editor.MenuPasteOverLoop).Enabled)
	assert.False(t, findItem(t, menu, editor.MenuPasteOverFlipped).Enabled)

	e.CopyLoop()
	menu = e.ContextMenu(domain.NoFrame)
	assert.True(t, findItem(t, menu, editor.MenuPasteOverLoop).Enabled)
	assert.True(t, findItem(t, menu, editor.MenuPasteOverFlipped).Enabled)
}

func TestContextMenu_Overridden(t *testing.T) {
	e, tb := newEditor(t, 2, editor.Options{})
	tb.Subscribe(eventbus.EventContextMenuRequested, func(ev eventbus.DomainEvent) {
		menu := ev.(eventbus.ContextMenuRequestedEvent).Menu
		menu.Add("Custom", "Do something else")
		menu.ItemsOverridden = true
	})

	menu := e.ContextMenu(0)

	assert.Equal(t, []string{"Custom"}, menuIDs(menu))
}

func TestContextMenu_ExtendedBySubscriber(t *testing.T) {
	e, tb := newEditor(t, 2, editor.Options{})
	tb.Subscribe(eventbus.EventContextMenuRequested, func(ev eventbus.DomainEvent) {
		ev.(eventbus.ContextMenuRequestedEvent).Menu.Add("Extra", "Extra")
	})

	ids := menuIDs(e.ContextMenu(0))

	assert.Equal(t, "Extra", ids[0])
	assert.Contains(t, ids, editor.MenuFlipAll)
}

func TestInvoke(t *testing.T) {
	e, _ := newEditor(t, 3, editor.Options{})
	e.ChangeSelectedFrame(1, selection.Set)

	require.True(t, e.Invoke(editor.MenuInsertAfter))
	assert.Equal(t, 4, e.Sequence().Count())
	assert.Equal(t, []int{2}, e.SelectedFrames())

	require.True(t, e.Invoke(editor.MenuFlipFrame))
	assert.True(t, e.Loop().Frames[2].Flipped)

	require.True(t, e.Invoke(editor.MenuDeleteFrame))
	assert.Equal(t, 3, e.Sequence().Count())

	require.True(t, e.Invoke(editor.MenuCopyLoop))
	require.True(t, e.Invoke(editor.MenuCutLoop))
	assert.Zero(t, e.Sequence().Count())
	require.True(t, e.Invoke(editor.MenuPasteOverFlipped))
	assert.Equal(t, 3, e.Sequence().Count())
	assert.True(t, e.Loop().Frames[0].Flipped)

	assert.False(t, e.Invoke("Unknown"))
}
