package fbx

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode_RoundTrip(t *testing.T) {
	data, err := Marshal(Version7400, sampleTree())
	require.NoError(t, err)

	f, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, Version7400, f.Version)
	require.Len(t, f.Nodes, 2)

	model := f.Nodes[0]
	assert.Equal(t, "Model", model.Name())
	assert.Equal(t, 150, model.TotalSize())
	require.Len(t, model.Properties(), 3)
	assert.Equal(t, int64(1), model.Properties()[0].Value())
	assert.Equal(t, "Model::Cube", model.Properties()[1].Value())

	flags := model.Child("Flags")
	require.NotNil(t, flags)
	assert.Equal(t, int16(-2), flags.Properties()[0].Value())
	assert.Equal(t, float32(0.25), flags.Properties()[1].Value())
	assert.Equal(t, []byte{0xde, 0xad}, flags.Properties()[2].Value())

	lcl := model.Child("Lcl")
	require.NotNil(t, lcl)
	assert.Equal(t, 1.5, lcl.Properties()[0].Value())
	assert.Equal(t, true, lcl.Properties()[1].Value())

	again, err := Marshal(f.Version, f.Nodes)
	require.NoError(t, err)
	assert.Equal(t, data, again)
}

func TestDecode_PreambleOnly(t *testing.T) {
	f, err := Decode(AppendPreamble(nil, Version7400))
	require.NoError(t, err)
	assert.Empty(t, f.Nodes)
}

func TestDecode_StopsAtTopLevelNullRecord(t *testing.T) {
	data, err := Marshal(Version7400, []*Node{NewNode("X", Int32(42))})
	require.NoError(t, err)
	data = append(data, make([]byte, NullRecordSize)...)
	data = append(data, []byte("footer")...)

	f, err := Decode(data)
	require.NoError(t, err)
	require.Len(t, f.Nodes, 1)
	assert.Equal(t, "X", f.Nodes[0].Name())
}

func TestDecode_Errors(t *testing.T) {
	valid, err := Marshal(Version7400, sampleTree())
	require.NoError(t, err)

	tests := []struct {
		name   string
		mutate func([]byte) []byte
		msg    string
	}{
		{
			name:   "truncated preamble",
			mutate: func(b []byte) []byte { return b[:10] },
			msg:    "truncated preamble",
		},
		{
			name: "bad magic",
			mutate: func(b []byte) []byte {
				b[0] = 'k'
				return b
			},
			msg: "bad magic",
		},
		{
			name: "bad marker",
			mutate: func(b []byte) []byte {
				b[21] = 0
				return b
			},
			msg: "bad preamble marker",
		},
		{
			name: "end offset past data",
			mutate: func(b []byte) []byte {
				binary.LittleEndian.PutUint32(b[PreambleSize:], uint32(len(b)+1))
				return b
			},
			msg: "outside",
		},
		{
			name: "end offset short of subtree",
			mutate: func(b []byte) []byte {
				end := binary.LittleEndian.Uint32(b[PreambleSize:])
				binary.LittleEndian.PutUint32(b[PreambleSize:], end-1)
				return b
			},
			msg: `node "Model"`,
		},
		{
			name: "property list length lies",
			mutate: func(b []byte) []byte {
				binary.LittleEndian.PutUint32(b[PreambleSize+8:], 1)
				return b
			},
			msg: "header says 1",
		},
		{
			name: "unknown type code",
			mutate: func(b []byte) []byte {
				b[PreambleSize+recordHeaderSize+len("Model")] = 'Z'
				return b
			},
			msg: "unknown property type code",
		},
		{
			name:   "truncated body",
			mutate: func(b []byte) []byte { return b[:PreambleSize+20] },
			msg:    "outside",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := tt.mutate(append([]byte{}, valid...))
			_, err := Decode(data)

			var de *DecodeError
			require.ErrorAs(t, err, &de)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestDecode_RejectsArrayProperties(t *testing.T) {
	data, err := Marshal(Version7400, []*Node{NewNode("V", Int32(1))})
	require.NoError(t, err)
	data[PreambleSize+recordHeaderSize+1] = 'd'

	_, err = Decode(data)
	require.ErrorIs(t, err, ErrArrayProperty)
}

func TestDecode_UnterminatedChildList(t *testing.T) {
	parent := NewNode("A")
	parent.AddChild(NewNode("B"))
	data, err := Marshal(Version7400, []*Node{parent})
	require.NoError(t, err)

	// Corrupt the first trailer byte.
	data[len(data)-NullRecordSize] = 1

	_, err = Decode(data)
	var de *DecodeError
	require.ErrorAs(t, err, &de)
}
