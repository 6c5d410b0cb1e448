package dynatlas

import "github.com/cellgl/cellgl/cell"

// slots.go lays out the dynamic atlas's flat 4096-slot index space (§3.5,
// §4.3): a permanent ASCII region that is never evicted, a Normal-width
// LRU region, and a Wide-pair LRU region where every admission consumes
// two contiguous slots (left half, right half).

const (
	// AsciiSlotStart/AsciiSlotCount preload the printable ASCII range
	// 0x20-0x7E (95 codepoints) in Normal style at construction. Slot 0
	// is permanently space, referenced directly by the clear path.
	AsciiSlotStart = 0
	AsciiSlotCount = 95

	// NormalSlotStart/NormalSlotCount is the LRU-managed region for every
	// other single-cell grapheme+style pairing (non-ASCII runes, and
	// ASCII runes in Bold/Italic/BoldItalic style).
	NormalSlotStart = AsciiSlotStart + AsciiSlotCount
	NormalSlotCount = 1953

	// WideSlotStart/WideSlotCount is the LRU-managed region for
	// double-cell graphemes (CJK, emoji). Every admission here consumes
	// a contiguous (even, odd) pair, so WideSlotCount must be even.
	WideSlotStart = NormalSlotStart + NormalSlotCount
	WideSlotCount = 4096 - WideSlotStart

	widePairCount = WideSlotCount / 2
)

// slotKey is the cache key for the dynamic atlas: a grapheme is cached
// independently per base style (Normal/Bold/Italic/BoldItalic), so each
// style occupies its own slot (§4.3 "cache key"). Underline and
// strikethrough are not part of the key; they are render-time bits.
// rasterizeGrapheme draws every style with the same font face, so the
// per-style slots hold identical pixels.
type slotKey struct {
	grapheme string
	style    cell.Style
}

// slotTable owns slot allocation and LRU order for the Normal and Wide
// regions. The ASCII region is addressed arithmetically and never
// recorded here.
type slotTable struct {
	entries map[slotKey]*slotEntry

	normalUsed []bool
	wideUsed   []bool // indexed by pair number, not absolute slot

	normalLRU *lruList[slotKey]
	wideLRU   *lruList[slotKey]
}

type slotEntry struct {
	slot      int // absolute first slot (left half, for wide entries)
	wide      bool
	colorGlyf bool
	node      *lruNode[slotKey]
}

func newSlotTable() *slotTable {
	return &slotTable{
		entries:    make(map[slotKey]*slotEntry),
		normalUsed: make([]bool, NormalSlotCount),
		wideUsed:   make([]bool, widePairCount),
		normalLRU:  newLRUList[slotKey](),
		wideLRU:    newLRUList[slotKey](),
	}
}

func (t *slotTable) lookup(key slotKey) (*slotEntry, bool) {
	e, ok := t.entries[key]
	return e, ok
}

// touch moves key's node to the front of its region's LRU list, recording
// it as most recently used.
func (t *slotTable) touch(e *slotEntry) {
	if e.wide {
		t.wideLRU.MoveToFront(e.node)
	} else {
		t.normalLRU.MoveToFront(e.node)
	}
}

// admitNormal allocates a Normal-region slot for key, evicting the least
// recently used occupant if the region is full. Returns the allocated
// entry and, if an eviction occurred, the evicted key.
func (t *slotTable) admitNormal(key slotKey) (entry *slotEntry, evicted slotKey, didEvict bool) {

	slot, ok := t.allocNormal()
	if !ok {
		oldKey, _ := t.normalLRU.RemoveOldest()
		oldEntry := t.entries[oldKey]
		delete(t.entries, oldKey)
		t.freeNormal(oldEntry.slot)
		evicted, didEvict = oldKey, true

		slot, _ = t.allocNormal()
	}

	node := t.normalLRU.PushFront(key)
	entry = &slotEntry{slot: slot, wide: false, node: node}
	t.entries[key] = entry
	return entry, evicted, didEvict
}

// admitWide allocates a Wide-region slot pair for key, evicting the least
// recently used pair if the region is full.
func (t *slotTable) admitWide(key slotKey) (entry *slotEntry, evicted slotKey, didEvict bool) {

	slot, ok := t.allocWide()
	if !ok {
		oldKey, _ := t.wideLRU.RemoveOldest()
		oldEntry := t.entries[oldKey]
		delete(t.entries, oldKey)
		t.freeWide(oldEntry.slot)
		evicted, didEvict = oldKey, true

		slot, _ = t.allocWide()
	}

	node := t.wideLRU.PushFront(key)
	entry = &slotEntry{slot: slot, wide: true, node: node}
	t.entries[key] = entry
	return entry, evicted, didEvict
}

func (t *slotTable) allocNormal() (slot int, ok bool) {
	for i, used := range t.normalUsed {
		if !used {
			t.normalUsed[i] = true
			return NormalSlotStart + i, true
		}
	}
	return 0, false
}

func (t *slotTable) freeNormal(slot int) {
	t.normalUsed[slot-NormalSlotStart] = false
}

func (t *slotTable) allocWide() (slot int, ok bool) {
	for i, used := range t.wideUsed {
		if !used {
			t.wideUsed[i] = true
			return WideSlotStart + i*2, true
		}
	}
	return 0, false
}

func (t *slotTable) freeWide(slot int) {
	t.wideUsed[(slot-WideSlotStart)/2] = false
}
