// Package tensor provides the strided N-dimensional tensor engine: shapes,
// layouts, loop descriptors, typed storage and the kernels built on them.
package tensor

import "fmt"

// DType is a constraint for supported tensor element kinds.
// It uses Go generics so kernels are monomorphised per kind.
type DType interface {
	~uint8 | ~int32 | ~float32 | ~float64
}

// DataType represents runtime type information for tensors.
type DataType int

// Supported data types for tensors.
const (
	Byte DataType = iota
	Int
	Float
	Double
)

// Size returns the byte size of the data type.
func (dt DataType) Size() int {
	switch dt {
	case Byte:
		return 1
	case Int, Float:
		return 4
	case Double:
		return 8
	default:
		panic(fmt.Sprintf("unknown data type %d", int(dt)))
	}
}

// String returns a human-readable name for the data type.
func (dt DataType) String() string {
	switch dt {
	case Byte:
		return "byte"
	case Int:
		return "int"
	case Float:
		return "float"
	case Double:
		return "double"
	default:
		return "unknown"
	}
}

// IsInteger reports whether the kind is integral.
func (dt DataType) IsInteger() bool {
	switch dt {
	case Byte, Int:
		return true
	case Float, Double:
		return false
	default:
		panic(fmt.Sprintf("unknown data type %d", int(dt)))
	}
}

// IsFloat reports whether the kind is a floating point kind.
func (dt DataType) IsFloat() bool {
	return !dt.IsInteger()
}

// DataTypes lists every supported kind in declaration order.
func DataTypes() []DataType {
	return []DataType{Byte, Int, Float, Double}
}

// dataTypeOf infers DataType from a generic type T.
func dataTypeOf[T DType]() DataType {
	var dummy T
	switch any(dummy).(type) {
	case uint8:
		return Byte
	case int32:
		return Int
	case float32:
		return Float
	case float64:
		return Double
	default:
		panic(fmt.Sprintf("unsupported element type %T", dummy))
	}
}

// DataTypeOf returns the DataType of the element kind T.
func DataTypeOf[T DType]() DataType {
	return dataTypeOf[T]()
}

// IsNaN reports whether v is an IEEE NaN. Integral kinds never are.
func IsNaN[T DType](v T) bool {
	return v != v //nolint:gocritic // self comparison is the generic NaN test
}

// Convert casts a value of one kind into another following Go conversion
// rules: floating to integral truncates toward zero, float64 to float32
// rounds to nearest.
func Convert[D, S DType](v S) D {
	return D(v)
}

// FromFloat64 casts a float64 into the kind T.
func FromFloat64[T DType](v float64) T {
	return T(v)
}
