package output

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

type item struct {
	ID   string `json:"id"`
	Name string `json:"displayName"`
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{
		"":      FormatTable,
		"table": FormatTable,
		"JSON":  FormatJSON,
		"yml":   FormatYAML,
		"yaml":  FormatYAML,
	} {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseFormat("xml")
	assert.Error(t, err)
}

func TestPrint_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewPrinter(&buf, FormatJSON).Print([]item{{ID: "1", Name: "Shor"}}, Table{}))

	var got []item
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, []item{{ID: "1", Name: "Shor"}}, got)
}

func TestPrint_YAMLUsesJSONNames(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewPrinter(&buf, FormatYAML).Print(item{ID: "1", Name: "Grover"}, Table{}))

	var got map[string]string
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "Grover", got["displayName"])
	assert.Equal(t, "1", got["id"])
}

func TestPrint_Table(t *testing.T) {
	var buf bytes.Buffer
	err := NewPrinter(&buf, FormatTable).Print(nil, Table{
		Headers: []string{"ID", "Name"},
		Rows:    [][]string{{"a1", "Shor"}, {"a2", "Grover"}},
		Footer:  "Page 1 of 1 (2 total)",
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Shor")
	assert.Contains(t, out, "Grover")
	assert.Contains(t, out, "Page 1 of 1 (2 total)")
}

func TestPrint_EmptyTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewPrinter(&buf, FormatTable).Print(nil, Table{Headers: []string{"ID"}}))
	assert.Equal(t, "No results.\n", buf.String())
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "abcd…", Truncate("abcdefgh", 5))
	assert.Equal(t, "Grö…", Truncate("Größenordnung", 4))
}
