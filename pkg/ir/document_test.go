package ir

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDocument() *Document {
	doc := NewDocument(Component{
		ID:          1,
		Type:        TypeColumn,
		Width:       "100%",
		Gap:         Float(20),
		Padding:     Float(0),
		WindowTitle: "Demo",
		Children: []Component{
			{ID: 2, Type: TypeText, Content: "Hi", FontSize: Float(24)},
			{ID: 3, Type: TypeButton, Text: "+", FlexGrow: Uint8(1)},
		},
	})
	doc.Logic = &Logic{
		Events: []EventBinding{{ComponentID: 3, Event: "click", Handler: "increment"}},
		Bindings: []PropertyBinding{{
			ComponentID:  2,
			Property:     "content",
			Expression:   `"Count: " + count.get()`,
			Dependencies: []string{"count"},
		}},
	}
	doc.ReactiveManifest = []ReactiveVariable{{ID: "count", Type: "int", Initial: float64(0)}}
	return doc
}

func TestDocument_RoundTrip(t *testing.T) {
	doc := sampleDocument()

	data, err := doc.Marshal()
	require.NoError(t, err)

	parsed, err := ParseDocument(data)
	require.NoError(t, err)

	assert.Equal(t, doc, parsed)
}

func TestDocument_OmitsAbsentFields(t *testing.T) {
	doc := NewDocument(Component{ID: 1, Type: TypeText, Content: "x"})

	data, err := doc.Marshal()
	require.NoError(t, err)
	s := string(data)

	assert.NotContains(t, s, "width")
	assert.NotContains(t, s, "padding")
	assert.NotContains(t, s, "logic")
	assert.NotContains(t, s, "reactive_manifest")
	assert.Contains(t, s, `"format_version": "3.0"`)
}

func TestDocument_ZeroSurvivesRoundTrip(t *testing.T) {
	// A set zero is distinct from absent; pointers keep that distinction.
	doc := NewDocument(Component{ID: 1, Type: TypeColumn, Padding: Float(0)})

	data, err := doc.Marshal()
	require.NoError(t, err)

	parsed, err := ParseDocument(data)
	require.NoError(t, err)
	require.NotNil(t, parsed.Root.Padding)
	assert.Equal(t, 0.0, *parsed.Root.Padding)
	assert.Nil(t, parsed.Root.Margin)
}

func TestParseDocument_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{
			name:    "invalid json",
			input:   `{`,
			wantErr: "invalid IR document",
		},
		{
			name:    "missing format version",
			input:   `{"root": {"id": 1, "type": "Text"}}`,
			wantErr: "missing format_version",
		},
		{
			name:    "missing root",
			input:   `{"format_version": "3.0"}`,
			wantErr: "missing root component",
		},
		{
			name:    "unknown component type",
			input:   `{"format_version": "3.0", "root": {"id": 1, "type": "Blink"}}`,
			wantErr: `unknown component type "Blink"`,
		},
		{
			name:    "unknown alignment",
			input:   `{"format_version": "3.0", "root": {"id": 1, "type": "Row", "justifyContent": "sideways"}}`,
			wantErr: `unknown alignment "sideways"`,
		},
		{
			name:    "empty alignment reference",
			input:   `{"format_version": "3.0", "root": {"id": 1, "type": "Row", "alignItems": "$"}}`,
			wantErr: "empty name",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseDocument([]byte(tt.input))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestParseDocument_MissingSectionsDecodeEmpty(t *testing.T) {
	doc, err := ParseDocument([]byte(`{"format_version": "3.0", "root": {"id": 1, "type": "Container"}}`))
	require.NoError(t, err)

	assert.True(t, doc.Logic.IsEmpty())
	assert.Empty(t, doc.ReactiveManifest)
	assert.Empty(t, doc.ComponentDefinitions)
}

func TestAlignmentValue_Serialization(t *testing.T) {
	doc := NewDocument(Component{
		ID:             1,
		Type:           TypeRow,
		JustifyContent: AlignConst(AlignSpaceBetween),
		AlignItems:     AlignSignal("tabAlign"),
	})

	data, err := doc.Marshal()
	require.NoError(t, err)
	s := string(data)
	assert.Contains(t, s, `"justifyContent": "space-between"`)
	assert.Contains(t, s, `"alignItems": "$tabAlign"`)

	parsed, err := ParseDocument(data)
	require.NoError(t, err)
	assert.False(t, parsed.Root.JustifyContent.IsSignal())
	assert.Equal(t, AlignSpaceBetween, parsed.Root.JustifyContent.Constant)
	assert.True(t, parsed.Root.AlignItems.IsSignal())
	assert.Equal(t, "tabAlign", parsed.Root.AlignItems.Signal)
}

func TestCheckVersion(t *testing.T) {
	assert.NoError(t, CheckVersion("3.0"))
	err := CheckVersion("2.0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"2.0"`)
}

func TestDocument_Find(t *testing.T) {
	doc := sampleDocument()

	c := doc.Find(3)
	require.NotNil(t, c)
	assert.Equal(t, TypeButton, c.Type)

	// Find returns a live pointer into the tree.
	c.Text = "changed"
	assert.Equal(t, "changed", doc.Root.Children[1].Text)

	assert.Nil(t, doc.Find(99))
}

func TestDocument_CountAndWalk(t *testing.T) {
	doc := sampleDocument()
	assert.Equal(t, 3, doc.Count())

	var ids []uint32
	doc.Root.Walk(func(c *Component) { ids = append(ids, c.ID) })
	assert.Equal(t, []uint32{1, 2, 3}, ids)
}

func TestReadDocument(t *testing.T) {
	data, err := sampleDocument().Marshal()
	require.NoError(t, err)

	doc, err := ReadDocument(strings.NewReader(string(data)))
	require.NoError(t, err)
	assert.Equal(t, "Demo", doc.Root.WindowTitle)
}
