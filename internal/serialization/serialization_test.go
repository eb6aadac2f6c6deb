package serialization

import (
	"bytes"
	"encoding/binary"
	"path/filepath"
	"testing"

	"github.com/born-ml/narray/internal/tensor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func roundTrip(t *testing.T, a *Archive) *Archive {
	t.Helper()
	var buf bytes.Buffer
	n, err := a.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, int64(buf.Len()), n)

	got, err := Read(&buf)
	require.NoError(t, err)
	return got
}

func TestArchive_RoundTripView(t *testing.T) {
	backend := tensor.NewMockBackend()
	x, err := tensor.Seq[float32](0, 1, 12, backend)
	require.NoError(t, err)
	x, err = x.Reshape(tensor.MustShape(3, 4), tensor.C)
	require.NoError(t, err)
	view, err := x.T().Narrow(0, 1, 3)
	require.NoError(t, err)

	a := NewArchive()
	require.NoError(t, Put(a, "view", view))

	got, err := Get[float32](roundTrip(t, a), "view", backend)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 3}, got.Shape().Dims())
	assert.Equal(t, []float32{1, 5, 9, 2, 6, 10}, got.Values())
	assert.Equal(t, []int{3, 1}, got.Layout().Strides())
}

func TestArchive_AllDTypes(t *testing.T) {
	backend := tensor.NewMockBackend()
	a := NewArchive()

	u8, err := tensor.FromSlice([]uint8{0, 7, 255}, tensor.MustShape(3), backend)
	require.NoError(t, err)
	i32, err := tensor.FromSlice([]int32{-2147483648, -1, 0, 2147483647}, tensor.MustShape(2, 2), backend)
	require.NoError(t, err)
	f32, err := tensor.FromSlice([]float32{1.5, -0.25}, tensor.MustShape(1, 2), backend)
	require.NoError(t, err)
	f64, err := tensor.FromSlice([]float64{3.141592653589793}, tensor.MustShape(), backend)
	require.NoError(t, err)

	require.NoError(t, Put(a, "u8", u8))
	require.NoError(t, Put(a, "i32", i32))
	require.NoError(t, Put(a, "f32", f32))
	require.NoError(t, Put(a, "f64", f64))

	b := roundTrip(t, a)
	assert.Equal(t, []string{"f32", "f64", "i32", "u8"}, b.Names())
	assert.Equal(t, 4, b.Len())

	gu8, err := Get[uint8](b, "u8", backend)
	require.NoError(t, err)
	assert.Equal(t, u8.Values(), gu8.Values())

	gi32, err := Get[int32](b, "i32", backend)
	require.NoError(t, err)
	assert.Equal(t, i32.Values(), gi32.Values())
	assert.Equal(t, []int{2, 2}, gi32.Shape().Dims())

	gf32, err := Get[float32](b, "f32", backend)
	require.NoError(t, err)
	assert.Equal(t, f32.Values(), gf32.Values())

	gf64, err := Get[float64](b, "f64", backend)
	require.NoError(t, err)
	assert.Equal(t, 0, gf64.Rank())
	assert.Equal(t, 3.141592653589793, gf64.Item())

	info, err := b.Info("i32")
	require.NoError(t, err)
	assert.Equal(t, DTypeI32, info.DType)
	assert.Equal(t, int64(16), info.Size)
}

func TestArchive_Metadata(t *testing.T) {
	a := NewArchive()
	a.SetMetadata("format", "pt")
	x := tensor.Full(tensor.MustShape(2), 1.0, tensor.NewMockBackend())
	require.NoError(t, Put(a, "x", x))

	md := roundTrip(t, a).Metadata()
	assert.Equal(t, "pt", md["format"])
	assert.Len(t, md[ChecksumKey], 64)
}

func TestArchive_Layout(t *testing.T) {
	a := NewArchive()
	x := tensor.Full(tensor.MustShape(3), int32(5), tensor.NewMockBackend())
	require.NoError(t, Put(a, "x", x))

	var buf bytes.Buffer
	_, err := a.WriteTo(&buf)
	require.NoError(t, err)

	raw := buf.Bytes()
	headerSize := binary.LittleEndian.Uint64(raw[:8])
	assert.Zero(t, headerSize%HeaderAlignment)
	assert.Equal(t, uint64(len(raw)-8-12), headerSize)
	assert.Equal(t, []byte{5, 0, 0, 0, 5, 0, 0, 0, 5, 0, 0, 0}, raw[len(raw)-12:])
}

func TestArchive_SaveOpen(t *testing.T) {
	backend := tensor.NewMockBackend()
	path := filepath.Join(t.TempDir(), "x.safetensors")

	x, err := tensor.Seq[float64](1, 0.5, 6, backend)
	require.NoError(t, err)
	a := NewArchive()
	require.NoError(t, Put(a, "x", x))
	require.NoError(t, a.Save(path))

	b, err := Open(path)
	require.NoError(t, err)
	got, err := Get[float64](b, "x", backend)
	require.NoError(t, err)
	assert.Equal(t, x.Values(), got.Values())

	_, err = Open(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestArchive_PutErrors(t *testing.T) {
	a := NewArchive()
	x := tensor.Full(tensor.MustShape(2), uint8(1), tensor.NewMockBackend())

	assert.ErrorIs(t, Put(a, "../x", x), ErrInvalidTensorName)
	assert.ErrorIs(t, Put(a, MetadataKey, x), ErrInvalidTensorName)
	require.NoError(t, Put(a, "x", x))
	assert.ErrorIs(t, Put(a, "x", x), ErrDuplicateTensor)
}

func TestArchive_GetErrors(t *testing.T) {
	backend := tensor.NewMockBackend()
	a := NewArchive()
	require.NoError(t, Put(a, "x", tensor.Full(tensor.MustShape(2), float32(1), backend)))

	_, err := Get[float64](a, "x", backend)
	assert.ErrorIs(t, err, ErrDTypeMismatch)

	_, err = Get[float32](a, "y", backend)
	assert.ErrorIs(t, err, ErrTensorNotFound)

	_, err = a.Info("y")
	assert.ErrorIs(t, err, ErrTensorNotFound)
}

// encode builds a file from a literal header and data section.
func encode(header string, data []byte) *bytes.Reader {
	var buf bytes.Buffer
	_ = binary.Write(&buf, binary.LittleEndian, uint64(len(header)))
	buf.WriteString(header)
	buf.Write(data)
	return bytes.NewReader(buf.Bytes())
}

func TestRead_Corruption(t *testing.T) {
	a := NewArchive()
	x := tensor.Full(tensor.MustShape(4), float32(2), tensor.NewMockBackend())
	require.NoError(t, Put(a, "x", x))
	var buf bytes.Buffer
	_, err := a.WriteTo(&buf)
	require.NoError(t, err)

	raw := buf.Bytes()
	raw[len(raw)-1] ^= 0xff

	_, err = Read(bytes.NewReader(raw))
	assert.ErrorIs(t, err, ErrChecksumMismatch)

	_, err = ReadWithLevel(bytes.NewReader(raw), ValidationNormal)
	assert.NoError(t, err)
}

func TestRead_Malformed(t *testing.T) {
	data := make([]byte, 16)

	_, err := Read(encode(`{"a":{"dtype":"U8","shape":[8],"data_offsets":[0,8]},`+
		`"b":{"dtype":"U8","shape":[8],"data_offsets":[4,12]}}`, data))
	assert.ErrorIs(t, err, ErrOffsetOverlap)

	_, err = Read(encode(`{"a":{"dtype":"U8","shape":[32],"data_offsets":[0,32]}}`, data))
	assert.ErrorIs(t, err, ErrOutOfBounds)

	_, err = Read(encode(`{"a":{"dtype":"F64","shape":[4],"data_offsets":[0,16]}}`, data))
	assert.ErrorIs(t, err, ErrSizeMismatch)

	_, err = Read(encode(`{"a":{"dtype":"BF16","shape":[8],"data_offsets":[0,16]}}`, data))
	assert.ErrorIs(t, err, ErrUnknownDType)

	_, err = Read(encode(`{"a/b":{"dtype":"U8","shape":[1],"data_offsets":[0,1]}}`, data))
	assert.ErrorIs(t, err, ErrInvalidTensorName)

	_, err = Read(encode(`not json`, data))
	assert.Error(t, err)

	var big bytes.Buffer
	_ = binary.Write(&big, binary.LittleEndian, uint64(MaxHeaderSize+1))
	_, err = Read(&big)
	assert.ErrorIs(t, err, ErrHeaderTooLarge)

	_, err = Read(bytes.NewReader([]byte{1, 2}))
	assert.Error(t, err)
}

func TestRead_NoChecksum(t *testing.T) {
	data := []byte{1, 2, 3, 4}
	a, err := Read(encode(`{"__metadata__":{"format":"np"},"a":{"dtype":"U8","shape":[2,2],"data_offsets":[0,4]}}`, data))
	require.NoError(t, err)

	x, err := Get[uint8](a, "a", tensor.NewMockBackend())
	require.NoError(t, err)
	assert.Equal(t, uint8(3), x.Get(1, 0))
	assert.Equal(t, "np", a.Metadata()["format"])
}
