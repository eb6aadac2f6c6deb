package serialization

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"

	"github.com/born-ml/narray/internal/tensor"
)

// entry is one encoded tensor held by an Archive.
type entry struct {
	dtype string
	shape []int
	data  []byte
}

// Archive is an in-memory set of named tensors plus string metadata.
type Archive struct {
	entries  map[string]entry
	metadata map[string]string
}

// NewArchive creates an empty archive.
func NewArchive() *Archive {
	return &Archive{
		entries:  make(map[string]entry),
		metadata: make(map[string]string),
	}
}

// Put encodes the logical values of t in C order under name.
// Views are accepted; their layout is not preserved.
func Put[T tensor.DType, B tensor.Backend](a *Archive, name string, t *tensor.Tensor[T, B]) error {
	if err := ValidateTensorName(name); err != nil {
		return err
	}
	if _, ok := a.entries[name]; ok {
		return &ValidationError{Err: ErrDuplicateTensor, Tensor: name, Details: "already in archive"}
	}

	var buf bytes.Buffer
	buf.Grow(t.Size() * t.DType().Size())
	if err := binary.Write(&buf, binary.LittleEndian, t.Values()); err != nil {
		return fmt.Errorf("failed to encode tensor %q: %w", name, err)
	}

	a.entries[name] = entry{
		dtype: dtypeToString(t.DType()),
		shape: t.Shape().Dims(),
		data:  buf.Bytes(),
	}
	return nil
}

// SetMetadata stores a metadata key/value pair. The checksum key is
// overwritten on every write.
func (a *Archive) SetMetadata(key, value string) {
	a.metadata[key] = value
}

// Metadata returns a copy of the archive metadata.
func (a *Archive) Metadata() map[string]string {
	return maps.Clone(a.metadata)
}

// Names returns the tensor names in sorted order.
func (a *Archive) Names() []string {
	return slices.Sorted(maps.Keys(a.entries))
}

// Len returns the number of tensors.
func (a *Archive) Len() int {
	return len(a.entries)
}

// Info returns the header description of the named tensor.
func (a *Archive) Info(name string) (TensorMeta, error) {
	e, ok := a.entries[name]
	if !ok {
		return TensorMeta{}, fmt.Errorf("%w: %q", ErrTensorNotFound, name)
	}
	return TensorMeta{
		Name:  name,
		DType: e.dtype,
		Shape: slices.Clone(e.shape),
		Size:  int64(len(e.data)),
	}, nil
}

// WriteTo writes the archive in SafeTensors format:
//
//	[8 bytes: header size (uint64 LE)]
//	[N bytes: JSON header, space padded to 8 bytes]
//	[M bytes: tensor data, sorted by name]
//
// The SHA-256 of the data section is recorded under the checksum key.
func (a *Archive) WriteTo(w io.Writer) (int64, error) {
	names := a.Names()

	header := make(map[string]any, len(names)+1)
	var offset int64
	var data bytes.Buffer
	for _, name := range names {
		e := a.entries[name]
		shape := make([]int64, len(e.shape))
		for i, d := range e.shape {
			shape[i] = int64(d)
		}
		size := int64(len(e.data))
		header[name] = tensorHeader{
			DType:       e.dtype,
			Shape:       shape,
			DataOffsets: [2]int64{offset, offset + size},
		}
		data.Write(e.data)
		offset += size
	}

	sum := ComputeChecksum(data.Bytes())
	a.metadata[ChecksumKey] = hex.EncodeToString(sum[:])
	header[MetadataKey] = a.metadata

	headerJSON, err := json.Marshal(header)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal header: %w", err)
	}
	if pad := len(headerJSON) % HeaderAlignment; pad != 0 {
		headerJSON = append(headerJSON, bytes.Repeat([]byte(" "), HeaderAlignment-pad)...)
	}

	var n int64
	if err := binary.Write(w, binary.LittleEndian, uint64(len(headerJSON))); err != nil {
		return n, fmt.Errorf("failed to write header size: %w", err)
	}
	n += 8

	m, err := w.Write(headerJSON)
	n += int64(m)
	if err != nil {
		return n, fmt.Errorf("failed to write header: %w", err)
	}

	d, err := data.WriteTo(w)
	n += d
	if err != nil {
		return n, fmt.Errorf("failed to write tensor data: %w", err)
	}
	return n, nil
}

// Save writes the archive to path.
func (a *Archive) Save(path string) error {
	f, err := os.Create(path) //nolint:gosec // G304: File path provided by user for saving
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}

	bw := bufio.NewWriter(f)
	if _, err := a.WriteTo(bw); err != nil {
		_ = f.Close()
		return err
	}
	if err := bw.Flush(); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to flush file: %w", err)
	}
	return f.Close()
}
