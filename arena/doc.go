// Package arena implements an owned, growable byte block addressed by a
// cursor.
//
// Capacity is the size of the block, length is the number of meaningful
// bytes and the cursor is the position of the next read or write:
//
//	0 <= cursor <= length <= capacity
//
// Writes past the capacity grow the block to the next power of two. Reads
// never pass the length. Every failing operation leaves the arena as it was.
//
//	a := arena.New()              // capacity 8
//	_ = a.WriteSlice([]byte{1, 2, 3, 4, 5, 6, 7, 8, 9})
//	a.Cap()                       // 16
//	a.MoveCursorToStart()
//	p, _ := a.ReadSlice(4)        // aliases the block
//
// Slices returned by ReadSlice, SliceFrom and Bytes alias the block and
// become void after Resize, Expand, Shrink, a growing WriteSlice or Release.
package arena
