package skipgram

import "encoding/json"

// Record is one (subject, raw diagnosis code) row of the source dataset.
type Record struct {
	SubjectID string `json:"subjectId"`
	Code      string `json:"code"`
}

// VocabularyEntry is a code and its long description. Entry order decides the index.
type VocabularyEntry struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// IndexedRecord is a Record with the vocabulary index resolved for its code.
type IndexedRecord struct {
	Record
	Index int `json:"index"`
}

// SubjectGroup holds the indices of all records sharing a subject, in input order.
type SubjectGroup struct {
	SubjectID string
	Indices   []int
}

// Pair is an ordered (center, target) skip-gram training pair.
type Pair struct {
	Center int
	Target int
}

// Batch holds parallel center and target columns. Every target is wrapped in a
// single element array to match the [batch, 1] label shape used by embedding models.
type Batch struct {
	Centers []int32
	Targets [][1]float64
}

// Len reports the number of pairs in the batch.
func (b Batch) Len() int {
	return len(b.Centers)
}

// ReaderConfig selects input columns and the spreadsheet sheet.
type ReaderConfig struct {
	SubjectColumn     string `json:"subjectColumn" yaml:"subject_column"`
	CodeColumn        string `json:"codeColumn" yaml:"code_column"`
	VocabCodeColumn   string `json:"vocabCodeColumn" yaml:"vocab_code_column"`
	DescriptionColumn string `json:"descriptionColumn" yaml:"description_column"`
	VocabSheet        string `json:"vocabSheet" yaml:"vocab_sheet"`

	// Columns replaces the header names tried when no explicit column is set.
	// Empty lists keep the built-in names.
	Columns ColumnCandidates `json:"columns" yaml:"columns"`
}

// Config aggregates runtime settings for a pipeline run.
type Config struct {
	DataPath  string `json:"dataPath" yaml:"data_path"`
	VocabPath string `json:"vocabPath" yaml:"vocab_path"`
	TargetDir string `json:"targetDir" yaml:"target_dir"`

	// VocabSize is accepted for compatibility but never truncates the vocabulary.
	// A mismatch with the built vocabulary is only logged.
	VocabSize int `json:"vocabSize" yaml:"vocab_size"`
	BatchSize int `json:"batchSize" yaml:"batch_size"`

	UnknownPolicy UnknownCodePolicy `json:"unknownPolicy" yaml:"unknown_policy"`

	// Restart makes batch generation rewind the pair stream instead of
	// failing with ErrExhausted.
	Restart bool `json:"restart" yaml:"restart"`

	Reader ReaderConfig `json:"reader" yaml:"reader"`
}

const (
	DefaultDataPath  = "data/DIAGNOSES_ICD.csv"
	DefaultVocabPath = "data/CMS32_DESC_LONG_SHORT_DX.xlsx"
	DefaultTargetDir = "visualization"
	DefaultBatchSize = 128
)

// Clone creates a deep copy of the configuration so callers can mutate safely.
func (c Config) Clone() Config {
	buf, _ := json.Marshal(c)
	var out Config
	_ = json.Unmarshal(buf, &out)
	return out
}

// ApplyDefaults populates zero values with the stock dataset locations and folds
// the unknown-code policy to its canonical spelling.
func (c *Config) ApplyDefaults() {
	if c.DataPath == "" {
		c.DataPath = DefaultDataPath
	}
	if c.VocabPath == "" {
		c.VocabPath = DefaultVocabPath
	}
	if c.TargetDir == "" {
		c.TargetDir = DefaultTargetDir
	}
	if c.BatchSize == 0 {
		c.BatchSize = DefaultBatchSize
	}
	// Unrecognized policies are left for Validate to report.
	if p, err := ParseUnknownCodePolicy(string(c.UnknownPolicy)); err == nil {
		c.UnknownPolicy = p
	}
}
