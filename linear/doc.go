// Package linear moves arenas across the boundary of a WebAssembly module
// running under wazero.
//
// Memory copies the logical content of an arena to or from a guest's linear
// memory, optionally framed by a little-endian u64 length. Allocator reserves
// guest buffers through the module's exported realloc function, and Transfer
// combines both:
//
//	mem := linear.NewMemory(mod.ExportedMemory("memory"))
//	alloc := linear.NewAllocator(ctx, mod.ExportedFunction("cabi_realloc"))
//	ptr, n, err := linear.Transfer(mem, alloc, a)
//
// Guest memory is little-endian, so arenas shared with a guest are normally
// written with codec.WriteLE.
package linear
