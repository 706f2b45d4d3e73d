package report

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMerge_PreservesCollectorOrder(t *testing.T) {
	var structural, hygiene Collector
	hygiene.Warnf(CodeFixedPageLayout, "", "", 0, "page mode")
	structural.Errorf(CodeMissingRootCell, "", "", 0, "no root")
	structural.Errorf(CodeDanglingParent, "", "5", 3, "bad parent")

	r := Merge(&structural, &hygiene)

	require.Len(t, r.Issues, 3)
	assert.Equal(t, CodeMissingRootCell, r.Issues[0].Code)
	assert.Equal(t, CodeDanglingParent, r.Issues[1].Code)
	assert.Equal(t, CodeFixedPageLayout, r.Issues[2].Code)
	assert.False(t, r.Passed())
	assert.Equal(t, 2, r.Count(SeverityError))
	assert.Equal(t, 1, r.Count(SeverityWarning))
}

func TestPassed_WarningsDoNotBlock(t *testing.T) {
	var c Collector
	c.Warnf(CodeLiteralNewlineInValue, "", "2", 4, "literal")

	r := Merge(&c)

	assert.True(t, r.Passed())
	assert.True(t, r.Has(CodeLiteralNewlineInValue, "2"))
	assert.False(t, r.Has(CodeLiteralNewlineInValue, "3"))
}

func TestMerge_Empty(t *testing.T) {
	r := Merge()
	assert.NotNil(t, r.Issues)
	assert.Empty(t, r.Issues)
	assert.True(t, r.Passed())
}

func TestSeverity_TextRoundTrip(t *testing.T) {
	b, err := json.Marshal(Issue{Severity: SeverityWarning, Code: CodeFixedPageLayout})
	require.NoError(t, err)
	assert.Contains(t, string(b), `"severity":"warning"`)

	var s Severity
	require.NoError(t, s.UnmarshalText([]byte("ERROR")))
	assert.Equal(t, SeverityError, s)
	assert.Error(t, s.UnmarshalText([]byte("fatal")))
}

func TestIssue_String(t *testing.T) {
	i := Issue{Code: CodeDanglingEdgeSource, Message: "source 'x' not found", CellID: "e1", Diagram: "Page-1", Line: 7}
	assert.Equal(t, "[Page-1] line 7: cell 'e1': source 'x' not found (dangling-edge-source)", i.String())
}

func TestIsWarningCode(t *testing.T) {
	assert.True(t, IsWarningCode(CodeFixedPageLayout))
	assert.False(t, IsWarningCode(CodeDuplicateID))
}
