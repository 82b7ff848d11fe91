package skipgram_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// writeFile writes content under dir and returns its path.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// writeWorkbook writes rows to the first sheet of a new xlsx file.
func writeWorkbook(t *testing.T, dir, name string, rows [][]any) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetList()[0]
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	path := filepath.Join(dir, name)
	require.NoError(t, f.SaveAs(path))
	return path
}

// scenarioInputs writes the two-code vocabulary and the single subject dataset.
func scenarioInputs(t *testing.T) (dataPath, vocabPath string) {
	t.Helper()
	dir := t.TempDir()
	dataPath = writeFile(t, dir, "DIAGNOSES_ICD.csv", strings.Join([]string{
		"ROW_ID,SUBJECT_ID,HADM_ID,SEQ_NUM,ICD9_CODE",
		"1,S1,100,1,401.9",
		"2,S1,100,2,250.0",
		"3,S1,100,3,401.9",
	}, "\n")+"\n")
	vocabPath = writeWorkbook(t, dir, "CMS32_DESC_LONG_SHORT_DX.xlsx", [][]any{
		{"DIAGNOSIS CODE", "LONG DESCRIPTION", "SHORT DESCRIPTION"},
		{"401.9", "Hypertension", "HTN"},
		{"250.0", "Diabetes", "DM"},
	})
	return dataPath, vocabPath
}

func readLines(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
}
