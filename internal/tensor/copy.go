package tensor

// copyLayout copies every element of src (read through srcLayout) into dst
// (written through dstLayout), scanning both in order.
func copyLayout[T DType](k Kernels[T], src []T, srcLayout StrideLayout, dst []T, dstLayout StrideLayout, order Order) {
	loops, err := NewJointLoop(order, srcLayout, dstLayout)
	if err != nil {
		panic(err)
	}
	s, d := loops[0], loops[1]
	for j := range s.Offsets {
		k.Copy(dst, d.Offsets[j], d.Step, src, s.Offsets[j], s.Step, s.Size)
	}
}

// tile is one rectangular block of a tiled copy.
type tile struct {
	src, dst StrideLayout
}

// splitTiles halves the largest axis of src and dst in lockstep until each
// tile holds at most budget elements. Tiles partition the index space, so
// their destination regions are disjoint.
func splitTiles(src, dst StrideLayout, budget int, out *[]tile) {
	if src.Size() <= budget {
		*out = append(*out, tile{src: src, dst: dst})
		return
	}
	axis, dim := -1, 1
	for i, d := range src.shape.dims {
		if d > dim {
			axis, dim = i, d
		}
	}
	if axis < 0 {
		*out = append(*out, tile{src: src, dst: dst})
		return
	}
	mid := dim / 2
	for _, r := range [][2]int{{0, mid}, {mid, dim}} {
		s, err := src.Narrow(axis, r[0], r[1])
		if err != nil {
			panic(err)
		}
		d, err := dst.Narrow(axis, r[0], r[1])
		if err != nil {
			panic(err)
		}
		splitTiles(s, d, budget, out)
	}
}
