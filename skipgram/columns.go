package skipgram

// ColumnCandidates lists the header names tried, in order, for each input column.
type ColumnCandidates struct {
	Subject     []string `json:"subject,omitempty" yaml:"subject,omitempty"`
	Code        []string `json:"code,omitempty" yaml:"code,omitempty"`
	VocabCode   []string `json:"vocabCode,omitempty" yaml:"vocab_code,omitempty"`
	Description []string `json:"description,omitempty" yaml:"description,omitempty"`
}

// DefaultColumnCandidates returns the MIMIC-III and CMS header names.
func DefaultColumnCandidates() ColumnCandidates {
	return ColumnCandidates{
		Subject:     []string{"SUBJECT_ID", "subject", "patient_id"},
		Code:        []string{"ICD9_CODE", "icd9", "code"},
		VocabCode:   []string{"DIAGNOSIS CODE", "DIAGNOSIS_CODE", "code"},
		Description: []string{"LONG DESCRIPTION", "LONG_DESCRIPTION", "description"},
	}
}

// resolve fills every empty list from the defaults.
func (c ColumnCandidates) resolve() ColumnCandidates {
	d := DefaultColumnCandidates()
	if len(c.Subject) > 0 {
		d.Subject = cloneStrings(c.Subject)
	}
	if len(c.Code) > 0 {
		d.Code = cloneStrings(c.Code)
	}
	if len(c.VocabCode) > 0 {
		d.VocabCode = cloneStrings(c.VocabCode)
	}
	if len(c.Description) > 0 {
		d.Description = cloneStrings(c.Description)
	}
	return d
}

func cloneStrings(values []string) []string {
	if values == nil {
		return nil
	}
	out := make([]string, len(values))
	copy(out, values)
	return out
}
