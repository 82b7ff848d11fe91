package skipgram

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
)

const (
	VocabFileName        = "vocab.tsv"
	DescriptionsFileName = "vocab_descs.tsv"
)

// Dictionary maps vocabulary codes to dense indices. It is populated once by
// BuildVocabulary and read-only afterwards.
type Dictionary struct {
	index      map[string]int
	codes      []string
	duplicates []string
}

// NewDictionary assigns each code its position in codes. A repeated code keeps
// the index of its last occurrence.
func NewDictionary(codes []string) *Dictionary {
	d := &Dictionary{
		index: make(map[string]int, len(codes)),
		codes: make([]string, len(codes)),
	}
	copy(d.codes, codes)
	for i, code := range codes {
		if _, seen := d.index[code]; seen {
			d.duplicates = append(d.duplicates, code)
		}
		d.index[code] = i
	}
	return d
}

// Index returns the index assigned to code.
func (d *Dictionary) Index(code string) (int, bool) {
	idx, ok := d.index[code]
	return idx, ok
}

// Code returns the code written at position idx of the vocabulary file.
func (d *Dictionary) Code(idx int) (string, bool) {
	if idx < 0 || idx >= len(d.codes) {
		return "", false
	}
	return d.codes[idx], true
}

// Len is the number of assigned indices, duplicates included.
func (d *Dictionary) Len() int {
	return len(d.codes)
}

// Unique is the number of distinct codes.
func (d *Dictionary) Unique() int {
	return len(d.index)
}

// Codes returns the codes in index order.
func (d *Dictionary) Codes() []string {
	return cloneStrings(d.codes)
}

// Duplicates lists codes that appeared more than once, once per extra occurrence.
func (d *Dictionary) Duplicates() []string {
	return cloneStrings(d.duplicates)
}

// Inverse maps every surviving index back to its code. For unique input it is the
// exact inverse of Index.
func (d *Dictionary) Inverse() map[int]string {
	out := make(map[int]string, len(d.index))
	for code, idx := range d.index {
		out[idx] = code
	}
	return out
}

// BuildVocabulary assigns indices in entry order and writes one code per line to
// targetDir/vocab.tsv, creating targetDir when missing.
func BuildVocabulary(entries []VocabularyEntry, targetDir string) (*Dictionary, map[int]string, error) {
	dict := NewVocabularyDictionary(entries)
	if err := WriteVocabulary(dict, targetDir); err != nil {
		return nil, nil, err
	}
	return dict, dict.Inverse(), nil
}

// NewVocabularyDictionary indexes entries in order without touching disk.
func NewVocabularyDictionary(entries []VocabularyEntry) *Dictionary {
	codes := make([]string, len(entries))
	for i, entry := range entries {
		codes[i] = entry.Code
	}
	return NewDictionary(codes)
}

// WriteVocabulary writes the codes of dict in index order to targetDir/vocab.tsv.
func WriteVocabulary(dict *Dictionary, targetDir string) error {
	return writeLines(targetDir, VocabFileName, dict.codes)
}

// WriteDescriptions writes one description per line to targetDir/vocab_descs.tsv.
// Line i describes the code on line i of vocab.tsv only if both were built from
// the same entry order.
func WriteDescriptions(descriptions []string, targetDir string) error {
	return writeLines(targetDir, DescriptionsFileName, descriptions)
}

// Descriptions extracts the description column in entry order.
func Descriptions(entries []VocabularyEntry) []string {
	out := make([]string, len(entries))
	for i, entry := range entries {
		out[i] = entry.Description
	}
	return out
}

// writeLines replaces dir/name with lines via a temp file and rename so readers
// never observe a partially written table.
func writeLines(dir, name string, lines []string) (err error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create target dir: %w", err)
	}
	path := filepath.Join(dir, name)
	tmp, err := os.CreateTemp(dir, name+".*.tmp")
	if err != nil {
		return fmt.Errorf("create %s: %w", name, err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()
	w := bufio.NewWriter(tmp)
	for _, line := range lines {
		if _, err = w.WriteString(line); err != nil {
			return fmt.Errorf("write %s: %w", name, err)
		}
		if err = w.WriteByte('\n'); err != nil {
			return fmt.Errorf("write %s: %w", name, err)
		}
	}
	if err = w.Flush(); err != nil {
		return fmt.Errorf("flush %s: %w", name, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", name, err)
	}
	if err = os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("chmod %s: %w", name, err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename %s: %w", name, err)
	}
	return nil
}
