package serialization

import (
	"github.com/born-ml/narray/internal/tensor"
)

// Format constants.
const (
	HeaderAlignment = 8              // The JSON header is padded to this multiple.
	MetadataKey     = "__metadata__" // Reserved header entry for string metadata.
	ChecksumKey     = "sha256"       // Metadata key holding the data section checksum.
)

// SafeTensors dtype strings.
const (
	DTypeU8  = "U8"
	DTypeI32 = "I32"
	DTypeF32 = "F32"
	DTypeF64 = "F64"
)

// TensorMeta describes a tensor in the file.
type TensorMeta struct {
	Name   string // Tensor name (e.g., "layer.0.weight")
	DType  string // SafeTensors dtype (e.g., "F32")
	Shape  []int  // Tensor shape
	Offset int64  // Offset in the data section
	Size   int64  // Size in bytes
}

// tensorHeader is the JSON form of a TensorMeta.
type tensorHeader struct {
	DType       string   `json:"dtype"`
	Shape       []int64  `json:"shape"`
	DataOffsets [2]int64 `json:"data_offsets"`
}

// dtypeToString converts tensor.DataType to its SafeTensors name.
func dtypeToString(dt tensor.DataType) string {
	switch dt {
	case tensor.Byte:
		return DTypeU8
	case tensor.Int:
		return DTypeI32
	case tensor.Float:
		return DTypeF32
	case tensor.Double:
		return DTypeF64
	default:
		return "unknown"
	}
}

// stringToDtype converts a SafeTensors name to tensor.DataType.
func stringToDtype(s string) (tensor.DataType, bool) {
	switch s {
	case DTypeU8:
		return tensor.Byte, true
	case DTypeI32:
		return tensor.Int, true
	case DTypeF32:
		return tensor.Float, true
	case DTypeF64:
		return tensor.Double, true
	default:
		return 0, false
	}
}
