package serialization

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/born-ml/narray/internal/tensor"
)

// Read parses a SafeTensors stream with strict validation.
func Read(r io.Reader) (*Archive, error) {
	return ReadWithLevel(r, ValidationStrict)
}

// ReadWithLevel parses a SafeTensors stream. The level selects which header
// checks run; the checksum is verified only under ValidationStrict and only
// when the file carries one.
func ReadWithLevel(r io.Reader, level ValidationLevel) (*Archive, error) {
	var headerSize uint64
	if err := binary.Read(r, binary.LittleEndian, &headerSize); err != nil {
		return nil, fmt.Errorf("failed to read header size: %w", err)
	}
	if headerSize > MaxHeaderSize {
		return nil, &ValidationError{
			Err:     ErrHeaderTooLarge,
			Details: fmt.Sprintf("%d bytes, max %d", headerSize, MaxHeaderSize),
		}
	}

	headerJSON := make([]byte, headerSize)
	if _, err := io.ReadFull(r, headerJSON); err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(headerJSON, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse header JSON: %w", err)
	}

	a := NewArchive()
	metas := make([]TensorMeta, 0, len(raw))
	for name, msg := range raw {
		if name == MetadataKey {
			if err := json.Unmarshal(msg, &a.metadata); err != nil {
				return nil, fmt.Errorf("failed to parse metadata: %w", err)
			}
			continue
		}
		var h tensorHeader
		if err := json.Unmarshal(msg, &h); err != nil {
			return nil, fmt.Errorf("failed to parse tensor %q: %w", name, err)
		}
		shape := make([]int, len(h.Shape))
		for i, d := range h.Shape {
			shape[i] = int(d)
		}
		metas = append(metas, TensorMeta{
			Name:   name,
			DType:  h.DType,
			Shape:  shape,
			Offset: h.DataOffsets[0],
			Size:   h.DataOffsets[1] - h.DataOffsets[0],
		})
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read tensor data: %w", err)
	}

	if err := ValidateHeader(metas, int64(len(data)), level); err != nil {
		return nil, err
	}
	if stored, ok := a.metadata[ChecksumKey]; ok && level == ValidationStrict {
		if err := ValidateChecksum(data, stored); err != nil {
			return nil, err
		}
	}

	for _, m := range metas {
		if m.Offset < 0 || m.Size < 0 || m.Offset+m.Size > int64(len(data)) {
			return nil, &ValidationError{
				Err:     ErrOutOfBounds,
				Tensor:  m.Name,
				Details: fmt.Sprintf("offset=%d, size=%d, data_size=%d", m.Offset, m.Size, len(data)),
			}
		}
		a.entries[m.Name] = entry{
			dtype: m.DType,
			shape: m.Shape,
			data:  data[m.Offset : m.Offset+m.Size],
		}
	}
	return a, nil
}

// Open reads a SafeTensors file with strict validation.
func Open(path string) (*Archive, error) {
	f, err := os.Open(path) //nolint:gosec // G304: File path provided by user for loading
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return Read(bufio.NewReader(f))
}

// Get decodes the named tensor into a new C-ordered tensor on b. T must
// match the stored dtype.
func Get[T tensor.DType, B tensor.Backend](a *Archive, name string, b B) (*tensor.Tensor[T, B], error) {
	e, ok := a.entries[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrTensorNotFound, name)
	}

	want := tensor.DataTypeOf[T]()
	got, ok := stringToDtype(e.dtype)
	if !ok {
		return nil, &ValidationError{Err: ErrUnknownDType, Tensor: name, Details: e.dtype}
	}
	if got != want {
		return nil, &ValidationError{
			Err:     ErrDTypeMismatch,
			Tensor:  name,
			Details: fmt.Sprintf("stored %s, requested %s", got, want),
		}
	}

	shape, err := tensor.NewShape(e.shape...)
	if err != nil {
		return nil, fmt.Errorf("tensor %q: %w", name, err)
	}
	if len(e.data) != shape.Size()*want.Size() {
		return nil, &ValidationError{
			Err:     ErrSizeMismatch,
			Tensor:  name,
			Details: fmt.Sprintf("%d bytes for shape %s", len(e.data), shape),
		}
	}

	values := make([]T, shape.Size())
	if err := binary.Read(bytes.NewReader(e.data), binary.LittleEndian, values); err != nil {
		return nil, fmt.Errorf("failed to decode tensor %q: %w", name, err)
	}
	return tensor.FromSlice(values, shape, b)
}
