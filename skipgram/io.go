package skipgram

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ReadRecords parses the subject/code table at path. Comma separated files are
// expected; a .tsv extension switches to tabs. Rows without a subject are dropped,
// rows without a code are kept and resolved by the unknown-code policy later.
func ReadRecords(path string, opts ReaderConfig) ([]Record, error) {
	rows, err := readTable(path, "")
	if err != nil {
		return nil, err
	}
	candidates := opts.Columns.resolve()
	header := cleanHeader(rows[0])
	subjectCol, err := pickColumn(header, opts.SubjectColumn, candidates.Subject)
	if err != nil {
		return nil, &ParseError{Path: path, Err: fmt.Errorf("subject column: %w", err)}
	}
	codeCol, err := pickColumn(header, opts.CodeColumn, candidates.Code)
	if err != nil {
		return nil, &ParseError{Path: path, Err: fmt.Errorf("code column: %w", err)}
	}
	records := make([]Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		subject := cellAt(row, subjectCol)
		if subject == "" {
			continue
		}
		records = append(records, Record{
			SubjectID: subject,
			Code:      NormalizeCode(cellAt(row, codeCol)),
		})
	}
	return records, nil
}

// ReadVocabulary parses the code/description table at path. Spreadsheets are read
// from opts.VocabSheet or the first sheet; .csv and .tsv files are accepted too.
// Rows without a code are skipped.
func ReadVocabulary(path string, opts ReaderConfig) ([]VocabularyEntry, error) {
	rows, err := readTable(path, opts.VocabSheet)
	if err != nil {
		return nil, err
	}
	candidates := opts.Columns.resolve()
	header := cleanHeader(rows[0])
	codeCol, err := pickColumn(header, opts.VocabCodeColumn, candidates.VocabCode)
	if err != nil {
		return nil, &ParseError{Path: path, Err: fmt.Errorf("code column: %w", err)}
	}
	descCol, err := pickColumn(header, opts.DescriptionColumn, candidates.Description)
	if err != nil {
		return nil, &ParseError{Path: path, Err: fmt.Errorf("description column: %w", err)}
	}
	entries := make([]VocabularyEntry, 0, len(rows)-1)
	for _, row := range rows[1:] {
		code := NormalizeCode(cellAt(row, codeCol))
		if code == "" {
			continue
		}
		entries = append(entries, VocabularyEntry{
			Code:        code,
			Description: NormalizeDescription(cellAt(row, descCol)),
		})
	}
	return entries, nil
}

func readTable(path, sheet string) ([][]string, error) {
	var (
		rows [][]string
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm", ".xltx", ".xltm":
		rows, err = readSpreadsheet(path, sheet)
	case ".tsv":
		rows, err = readDelimited(path, '\t')
	default:
		rows, err = readDelimited(path, ',')
	}
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	if len(rows) == 0 {
		return nil, parseErrorf(path, "empty file")
	}
	return rows, nil
}

func readDelimited(path string, comma rune) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", filepath.Base(path), err)
	}
	defer f.Close()
	reader := csv.NewReader(f)
	reader.Comma = comma
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}
	return rows, nil
}

func readSpreadsheet(path, sheet string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", filepath.Base(path), err)
	}
	defer f.Close()
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, errors.New("workbook has no sheets")
		}
		sheet = sheets[0]
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	return rows, nil
}

func cleanHeader(row []string) []string {
	header := make([]string, len(row))
	for i, cell := range row {
		header[i] = cleanCell(cell)
	}
	return header
}

func cellAt(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return cleanCell(row[idx])
}

func findColumn(header []string, candidates []string) int {
	for _, cand := range candidates {
		for i, col := range header {
			if strings.EqualFold(col, cand) {
				return i
			}
		}
	}
	return -1
}

// pickColumn resolves an explicit column (header name or 1-based "#N") or falls
// back to the first matching candidate. A required column that cannot be found
// is an error.
func pickColumn(header []string, explicit string, candidates []string) (int, error) {
	trimmed := strings.TrimSpace(explicit)
	if trimmed != "" {
		return matchExplicitColumn(header, trimmed)
	}
	if idx := findColumn(header, candidates); idx >= 0 {
		return idx, nil
	}
	return -1, fmt.Errorf("none of %q found in header", candidates)
}

func matchExplicitColumn(header []string, explicit string) (int, error) {
	for i, col := range header {
		if strings.EqualFold(col, explicit) {
			return i, nil
		}
	}
	if strings.HasPrefix(explicit, "#") {
		idx, err := parseColumnIndex(explicit)
		if err != nil {
			return -1, err
		}
		if idx >= len(header) {
			return -1, fmt.Errorf("column index %s is out of range", explicit)
		}
		return idx, nil
	}
	return -1, fmt.Errorf("column %q not found", explicit)
}

func parseColumnIndex(token string) (int, error) {
	trimmed := strings.TrimSpace(strings.TrimPrefix(token, "#"))
	idx, err := strconv.Atoi(trimmed)
	if err != nil {
		return -1, fmt.Errorf("invalid column index %q", token)
	}
	if idx <= 0 {
		return -1, fmt.Errorf("column indices are 1-based: %q", token)
	}
	return idx - 1, nil
}
