package dictionary

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeDict(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_FullEntry(t *testing.T) {
	path := writeDict(t, "claims_dictionary.csv",
		"column,required,type,pattern,allowed_values,enum_mode,unique,references,description\n"+
			`claim_id,true,id,^B-\d{3}$,,,true,,stable claim identifier`+"\n"+
			"test_type,yes,string,,straw_in_the_wind|hoop|smoking_gun|doubly_decisive,closed,,,\n"+
			"source_id,false,string,,,,,sources.source_id,provenance link\n")

	d, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "claims", d.Name)
	require.Len(t, d.Entries, 3)

	id, ok := d.Entry("claim_id")
	require.True(t, ok)
	assert.True(t, id.Required)
	assert.Equal(t, TypeID, id.Type)
	assert.True(t, id.Unique)
	require.NotNil(t, id.Pattern)
	assert.Equal(t, "B-123", id.Pattern.FindString("B-123"))

	tt, ok := d.Entry("test_type")
	require.True(t, ok)
	assert.True(t, tt.Required)
	assert.Equal(t, EnumClosed, tt.EnumMode)
	assert.True(t, tt.Allows("hoop"))
	assert.False(t, tt.Allows("Hoop")) // case-sensitive

	src, ok := d.Entry("source_id")
	require.True(t, ok)
	require.NotNil(t, src.References)
	assert.Equal(t, "sources", src.References.Table)
	assert.Equal(t, "source_id", src.References.Column)

	assert.Equal(t, []string{"claim_id", "test_type"}, d.RequiredColumns())
}

func TestLoad_EnumModeDefaultsToRecommended(t *testing.T) {
	path := writeDict(t, "abbr_dictionary.csv",
		"column,required,allowed_values\nscope,false,Law|Agency|NGO\n")

	d, err := Load(path)
	require.NoError(t, err)

	e, ok := d.Entry("scope")
	require.True(t, ok)
	assert.Equal(t, EnumRecommended, e.EnumMode)
	assert.Equal(t, []string{"Law", "Agency", "NGO"}, e.Allowed)
}

func TestLoad_RejectsUnknownType(t *testing.T) {
	path := writeDict(t, "bad_dictionary.csv",
		"column,type\nfoo,integer\n")

	_, err := Load(path)
	require.Error(t, err)

	var eerr *EntryError
	require.ErrorAs(t, err, &eerr)
	assert.Equal(t, "foo", eerr.Column)
	assert.Equal(t, 2, eerr.Line)
}

func TestLoad_RejectsUnknownEnumMode(t *testing.T) {
	path := writeDict(t, "bad_dictionary.csv",
		"column,allowed_values,enum_mode\nfoo,a|b,open\n")

	_, err := Load(path)
	var eerr *EntryError
	require.ErrorAs(t, err, &eerr)
}

func TestLoad_RejectsInvalidPattern(t *testing.T) {
	path := writeDict(t, "bad_dictionary.csv",
		"column,pattern\nfoo,^[unclosed\n")

	_, err := Load(path)
	var eerr *EntryError
	require.ErrorAs(t, err, &eerr)
	assert.Contains(t, eerr.Error(), "invalid pattern")
}

func TestLoad_RejectsMalformedReference(t *testing.T) {
	path := writeDict(t, "bad_dictionary.csv",
		"column,references\nfoo,sources\n")

	_, err := Load(path)
	var eerr *EntryError
	require.ErrorAs(t, err, &eerr)
	assert.Contains(t, eerr.Error(), "table.column")
}

func TestLoad_RejectsDuplicateColumn(t *testing.T) {
	path := writeDict(t, "bad_dictionary.csv",
		"column,required\nfoo,true\nfoo,false\n")

	_, err := Load(path)
	var eerr *EntryError
	require.ErrorAs(t, err, &eerr)
	assert.Contains(t, eerr.Error(), "declared twice")
}

func TestLoad_RejectsMissingColumnHeader(t *testing.T) {
	path := writeDict(t, "bad_dictionary.csv",
		"name,required\nfoo,true\n")

	_, err := Load(path)
	var eerr *EntryError
	require.ErrorAs(t, err, &eerr)
}

func TestParseBool(t *testing.T) {
	for _, v := range []string{"true", "TRUE", "yes", "Y", "1"} {
		assert.True(t, parseBool(v), v)
	}
	for _, v := range []string{"", "false", "no", "0", "maybe"} {
		assert.False(t, parseBool(v), v)
	}
}
