package mapping

import (
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	interrors "github.com/fleetglass/agentmap/internal/errors"
)

func TestAnalyzeHeaders_IdentityMapping(t *testing.T) {
	analyzer := New(nil)

	headers := []string{"name", "model", "workspace", "tags", "memoryLimit", "cpuCores", "autoStart"}
	result, err := analyzer.AnalyzeHeaders(headers, nil)
	require.NoError(t, err)

	require.Len(t, result.RecommendedMapping, len(headers))
	for _, h := range headers {
		assert.Equal(t, h, result.RecommendedMapping[h])
	}
	for _, col := range result.DetectedColumns {
		assert.Equal(t, 1.0, col.Confidence, "header %q", col.Header)
		assert.Equal(t, StrategyExact, col.Strategy)
		assert.True(t, col.Mapped)
	}
	assert.Equal(t, 1.0, result.Confidence)
}

func TestAnalyzeHeaders_BusinessPhrasings(t *testing.T) {
	analyzer := New(nil)

	headers := []string{"Agent Name", "AI Model", "Directory Path", "Labels", "Memory MB", "CPU Count", "Auto Start"}
	result, err := analyzer.AnalyzeHeaders(headers, nil)
	require.NoError(t, err)

	want := map[string]string{
		"Agent Name":     "name",
		"AI Model":       "model",
		"Directory Path": "workspace",
		"Labels":         "tags",
		"Memory MB":      "memoryLimit",
		"CPU Count":      "cpuCores",
		"Auto Start":     "autoStart",
	}
	assert.Equal(t, want, result.RecommendedMapping)

	for _, col := range result.DetectedColumns {
		assert.GreaterOrEqual(t, col.Confidence, 0.6, "header %q", col.Header)
	}
	assert.GreaterOrEqual(t, result.Confidence, 0.8)
}

func TestAnalyzeHeaders_GenericColumnsUnmapped(t *testing.T) {
	analyzer := New(nil)

	result, err := analyzer.AnalyzeHeaders([]string{"Column 1", "Column 2"}, nil)
	require.NoError(t, err)

	assert.Empty(t, result.RecommendedMapping)
	require.Len(t, result.DetectedColumns, 2)
	for _, col := range result.DetectedColumns {
		assert.False(t, col.Mapped)
		assert.Less(t, col.Confidence, DefaultConfidenceFloor)
	}
	assert.Zero(t, result.Confidence)
}

func TestAnalyzeHeaders_CollisionResolved(t *testing.T) {
	analyzer := New(nil)

	result, err := analyzer.AnalyzeHeaders([]string{"Name", "Full Name"}, nil)
	require.NoError(t, err)

	claimed := 0
	for _, field := range result.RecommendedMapping {
		if field == "name" {
			claimed++
		}
	}
	assert.Equal(t, 1, claimed, "exactly one column may claim the name field")
	assert.Equal(t, "name", result.RecommendedMapping["Name"], "the exact match wins the collision")
}

func TestAnalyzeHeaders_Deterministic(t *testing.T) {
	analyzer := New(nil)
	headers := []string{"Agent Name", "AI Model", "Memory MB", "Column 4", "Full Name", "Labels"}
	rows := [][]string{{"a1", "claude", "2048", "x", "Alice Smith", "prod,eu"}}

	first, err := analyzer.AnalyzeHeaders(headers, rows)
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		again, err := analyzer.AnalyzeHeaders(headers, rows)
		require.NoError(t, err)
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("analysis is not deterministic:\nfirst: %+v\nagain: %+v", first, again)
		}
	}
}

func TestAnalyzeHeaders_EmptyInput(t *testing.T) {
	analyzer := New(nil)

	_, err := analyzer.AnalyzeHeaders(nil, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, interrors.ErrEmptyInput)
}

func TestAnalyzeHeaders_InvalidUTF8(t *testing.T) {
	analyzer := New(nil)

	_, err := analyzer.AnalyzeHeaders([]string{"name", string([]byte{0xff, 0xfe})}, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, interrors.ErrInvalidInput)

	var impErr *interrors.ImportError
	require.ErrorAs(t, err, &impErr)
	assert.Equal(t, interrors.ErrorTypeValidation, impErr.Type)
}

func TestAnalyzeHeaders_BlankHeaderUnmapped(t *testing.T) {
	analyzer := New(nil)

	result, err := analyzer.AnalyzeHeaders([]string{"name", ""}, nil)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"name": "name"}, result.RecommendedMapping)
	assert.False(t, result.DetectedColumns[1].Mapped)
}

func TestAnalyzeHeaders_FloorRespected(t *testing.T) {
	analyzer := New(nil)

	headers := []string{"Agent Name", "AI Model", "wrkspce", "Labels", "xyzzy"}
	result, err := analyzer.AnalyzeHeaders(headers, nil)
	require.NoError(t, err)

	byHeader := make(map[string]DetectedColumn)
	for _, col := range result.DetectedColumns {
		byHeader[col.Header] = col
	}
	for header := range result.RecommendedMapping {
		assert.GreaterOrEqual(t, byHeader[header].Confidence, DefaultConfidenceFloor,
			"mapped header %q must clear the floor", header)
	}
}

func TestAnalyzeHeaders_CustomFloor(t *testing.T) {
	strict := New(nil, WithConfidenceFloor(0.99))

	result, err := strict.AnalyzeHeaders([]string{"name", "CPU Count"}, nil)
	require.NoError(t, err)

	assert.Equal(t, map[string]string{"name": "name"}, result.RecommendedMapping,
		"a 0.99 floor admits only exact matches")
}

func TestAnalyzeCSV(t *testing.T) {
	analyzer := New(nil)

	csvText := "Agent Name,AI Model,Auto Start\n\"alpha\",claude,true\nbeta,gpt,false\n"
	result, err := analyzer.AnalyzeCSV(strings.NewReader(csvText))
	require.NoError(t, err)

	assert.Equal(t, map[string]string{
		"Agent Name": "name",
		"AI Model":   "model",
		"Auto Start": "autoStart",
	}, result.RecommendedMapping)
}

func TestAnalyzeCSV_QuotedCommaHeader(t *testing.T) {
	analyzer := New(nil)

	result, err := analyzer.AnalyzeCSV(strings.NewReader("\"Name, Agent\",model\n"))
	require.NoError(t, err)
	require.Len(t, result.DetectedColumns, 2)
	assert.Equal(t, "Name, Agent", result.DetectedColumns[0].Header)
}

func TestAnalyzeCSV_Empty(t *testing.T) {
	analyzer := New(nil)

	_, err := analyzer.AnalyzeCSV(strings.NewReader(""))
	require.Error(t, err)
	assert.ErrorIs(t, err, interrors.ErrEmptyInput)
}

func TestAnalyzeCSV_BOMStripped(t *testing.T) {
	analyzer := New(nil)

	result, err := analyzer.AnalyzeCSV(strings.NewReader("\ufeffname,model\n"))
	require.NoError(t, err)
	assert.Equal(t, "name", result.DetectedColumns[0].Header)
	assert.Equal(t, "name", result.RecommendedMapping["name"])
}

func TestAnalyzeCSV_HeaderlessHint(t *testing.T) {
	analyzer := New(nil)

	// First row is data, not headers: numeric and boolean cells.
	result, err := analyzer.AnalyzeCSV(strings.NewReader("2048,4,true\n1024,2,false\n"))
	require.NoError(t, err)

	assert.Empty(t, result.RecommendedMapping)
	assert.True(t, result.HeaderlessHint)
}

func TestAnalyzeCSV_NoHintForNamedHeaders(t *testing.T) {
	analyzer := New(nil)

	result, err := analyzer.AnalyzeCSV(strings.NewReader("name,model\nalpha,claude\n"))
	require.NoError(t, err)
	assert.False(t, result.HeaderlessHint)
}

func TestReadHeader(t *testing.T) {
	headers, _, err := ReadHeader(strings.NewReader("a,b,c\n1,2,3\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, headers)
}
