package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const indicatorDict = "column,required,references\n" +
	"indicator,true,\n" +
	"source_id,true,sources.source_id\n"

func refKeySets() map[string]map[string]struct{} {
	return map[string]map[string]struct{}{
		"sources.source_id": {"S-001": {}, "S-002": {}},
	}
}

func TestCheckReferences_Resolved(t *testing.T) {
	ds := makeTable(t, "indicators.csv", "indicator,source_id\ngdp,S-001\ncpi,S-002\n")
	dict := makeDict(t, "indicators_dictionary.csv", indicatorDict)

	assert.Empty(t, CheckReferences(ds, dict, refKeySets(), false))
}

func TestCheckReferences_UnresolvedWarningThenError(t *testing.T) {
	ds := makeTable(t, "indicators.csv", "indicator,source_id\ngdp,S-999\n")
	dict := makeDict(t, "indicators_dictionary.csv", indicatorDict)

	lax := CheckReferences(ds, dict, refKeySets(), false)
	require.Len(t, lax, 1)
	assert.Equal(t, SeverityWarning, lax[0].Severity)
	assert.Equal(t, 2, lax[0].Line)
	assert.Contains(t, lax[0].Message, "S-999")

	strict := CheckReferences(ds, dict, refKeySets(), true)
	require.Len(t, strict, 1)
	assert.Equal(t, SeverityError, strict[0].Severity)
}

func TestCheckReferences_EmptyValueSkipped(t *testing.T) {
	ds := makeTable(t, "indicators.csv", "indicator,source_id\ngdp,\n")
	dict := makeDict(t, "indicators_dictionary.csv", indicatorDict)

	assert.Empty(t, CheckReferences(ds, dict, refKeySets(), true))
}

func TestCheckReferences_MissingTargetTable(t *testing.T) {
	ds := makeTable(t, "indicators.csv", "indicator,source_id\ngdp,S-001\n")
	dict := makeDict(t, "indicators_dictionary.csv", indicatorDict)

	none := map[string]map[string]struct{}{}

	lax := CheckReferences(ds, dict, none, false)
	require.Len(t, lax, 1)
	assert.Equal(t, SeverityWarning, lax[0].Severity)
	assert.Equal(t, 0, lax[0].Line) // file-level finding
	assert.Contains(t, lax[0].Message, "sources.source_id")

	strict := CheckReferences(ds, dict, none, true)
	require.Len(t, strict, 1)
	assert.Equal(t, SeverityError, strict[0].Severity)
}
