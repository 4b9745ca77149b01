package validation

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckHygiene_FlagsStrayWhitespace(t *testing.T) {
	ds := makeTable(t, "claims.csv", "a,b\nclean, padded \n")

	violations := CheckHygiene(ds)

	require.Len(t, violations, 1)
	assert.Equal(t, SeverityWarning, violations[0].Severity)
	assert.Equal(t, RuleHygiene, violations[0].Rule)
	assert.Equal(t, 2, violations[0].Line)
	assert.Equal(t, "b", violations[0].Column)
}

func TestCheckHygiene_CapsFindings(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("a\n")
	for i := 0; i < 15; i++ {
		sb.WriteString(fmt.Sprintf("value%d \n", i))
	}
	ds := makeTable(t, "claims.csv", sb.String())

	violations := CheckHygiene(ds)

	// 10 individual findings plus one rollup line.
	require.Len(t, violations, maxHygieneFindings+1)
	last := violations[len(violations)-1]
	assert.Contains(t, last.Message, "5 further cells")
}

func TestCheckHygiene_CleanTable(t *testing.T) {
	ds := makeTable(t, "claims.csv", "a,b\nx,y\n")
	assert.Empty(t, CheckHygiene(ds))
}
