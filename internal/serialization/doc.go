// Package serialization saves and loads tensors in the SafeTensors format.
//
//	Format Structure:
//	  [8 bytes: Header Size N (uint64 LE)]
//	  [N bytes: JSON header, space padded to a multiple of 8]
//	  [Tensor data: raw little-endian bytes, C order]
//
// The JSON header maps each tensor name to its dtype, shape and byte range
// within the data section. The optional "__metadata__" entry holds string
// pairs; the writer stores the SHA-256 of the data section there under
// "sha256" and the reader verifies it when present.
//
// Strided views are written in C order, so any tensor round-trips to a dense
// C-ordered tensor with the same values.
//
// Example usage:
//
//	a := serialization.NewArchive()
//	_ = serialization.Put(a, "weights", w)
//	_ = a.Save("model.safetensors")
//
//	b, _ := serialization.Open("model.safetensors")
//	w2, _ := serialization.Get[float32](b, "weights", backend)
package serialization
