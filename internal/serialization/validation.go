package serialization

import (
	"fmt"
	"sort"
	"strings"

	"github.com/born-ml/narray/internal/tensor"
)

// Validation limits for security and resource protection.
const (
	MaxHeaderSize    = 100 * 1024 * 1024 // 100MB - maximum header size
	MaxTensorCount   = 100_000           // Maximum number of tensors in a file
	MaxTensorNameLen = 4096              // Maximum tensor name length
)

// ValidationLevel controls the strictness of validation.
type ValidationLevel int

const (
	// ValidationStrict performs all validation checks (default, recommended for production).
	ValidationStrict ValidationLevel = iota
	// ValidationNormal checks names, dtypes and sizes but not offsets or the checksum.
	ValidationNormal
	// ValidationNone skips validation (dangerous! Use only with trusted input).
	ValidationNone
)

// ValidateTensorOffsets checks for overlapping tensor offsets and out-of-bounds access.
func ValidateTensorOffsets(tensors []TensorMeta, dataSize int64) error {
	if len(tensors) > MaxTensorCount {
		return &ValidationError{
			Err:     ErrTooManyTensors,
			Details: fmt.Sprintf("got %d, max %d", len(tensors), MaxTensorCount),
		}
	}

	sorted := make([]TensorMeta, len(tensors))
	copy(sorted, tensors)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Offset < sorted[j].Offset
	})

	for i, t := range sorted {
		if t.Offset < 0 || t.Size < 0 {
			return &ValidationError{
				Err:     ErrNegativeOffset,
				Tensor:  t.Name,
				Details: fmt.Sprintf("offset=%d, size=%d", t.Offset, t.Size),
			}
		}

		if t.Offset+t.Size > dataSize {
			return &ValidationError{
				Err:     ErrOutOfBounds,
				Tensor:  t.Name,
				Details: fmt.Sprintf("offset %d + size %d > data_size %d", t.Offset, t.Size, dataSize),
			}
		}

		if i < len(sorted)-1 {
			next := sorted[i+1]
			if t.Offset+t.Size > next.Offset {
				return &ValidationError{
					Err:     ErrOffsetOverlap,
					Tensor:  t.Name,
					Tensor2: next.Name,
					Details: fmt.Sprintf("regions [%d-%d] and [%d-%d] overlap",
						t.Offset, t.Offset+t.Size, next.Offset, next.Offset+next.Size),
				}
			}
		}
	}

	return nil
}

// ValidateTensorName rejects empty, reserved, oversized and path-like names.
func ValidateTensorName(name string) error {
	bad := func(details string) error {
		return &ValidationError{Err: ErrInvalidTensorName, Tensor: name, Details: details}
	}
	switch {
	case name == "":
		return bad("empty name")
	case name == MetadataKey:
		return bad("reserved name")
	case len(name) > MaxTensorNameLen:
		return bad(fmt.Sprintf("length %d > max %d", len(name), MaxTensorNameLen))
	case strings.Contains(name, ".."):
		return bad("contains '..' (path traversal attempt)")
	case strings.ContainsAny(name, "/\\"):
		return bad("contains path separator (/ or \\)")
	case strings.Contains(name, "\x00"):
		return bad("contains null byte")
	}
	return nil
}

// ValidateTensorMeta checks that the dtype is known and the byte range
// matches the shape.
func ValidateTensorMeta(t TensorMeta) error {
	dt, ok := stringToDtype(t.DType)
	if !ok {
		return &ValidationError{Err: ErrUnknownDType, Tensor: t.Name, Details: t.DType}
	}
	shape, err := tensor.NewShape(t.Shape...)
	if err != nil {
		return &ValidationError{Err: ErrSizeMismatch, Tensor: t.Name, Details: err.Error()}
	}
	if want := int64(shape.Size() * dt.Size()); want != t.Size {
		return &ValidationError{
			Err:     ErrSizeMismatch,
			Tensor:  t.Name,
			Details: fmt.Sprintf("shape %s of %s needs %d bytes, range holds %d", shape, dt, want, t.Size),
		}
	}
	return nil
}

// ValidateHeader performs comprehensive header validation.
func ValidateHeader(tensors []TensorMeta, dataSize int64, level ValidationLevel) error {
	if level == ValidationNone {
		return nil
	}

	if len(tensors) > MaxTensorCount {
		return &ValidationError{
			Err:     ErrTooManyTensors,
			Details: fmt.Sprintf("got %d, max %d", len(tensors), MaxTensorCount),
		}
	}

	for _, t := range tensors {
		if err := ValidateTensorName(t.Name); err != nil {
			return err
		}
		if err := ValidateTensorMeta(t); err != nil {
			return err
		}
	}

	if level == ValidationStrict {
		if err := ValidateTensorOffsets(tensors, dataSize); err != nil {
			return err
		}
	}

	return nil
}
