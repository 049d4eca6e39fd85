package history

import "time"

// MaxEntries bounds each user's ledger.
const MaxEntries = 50

type Record struct {
	OriginalText   string    `json:"originalText"`
	TranslatedText string    `json:"translatedText"`
	SourceLang     string    `json:"sourceLang"`
	TargetLang     string    `json:"targetLang"`
	Timestamp      time.Time `json:"timestamp"`
}

// Ledger is a newest-first list that never grows past MaxEntries.
type Ledger struct {
	entries []Record
}

// NewLedger wraps stored entries, which are expected newest-first. Anything past the bound is dropped.
func NewLedger(entries []Record) *Ledger {
	if len(entries) > MaxEntries {
		entries = entries[:MaxEntries]
	}
	out := make([]Record, len(entries), MaxEntries)
	copy(out, entries)
	return &Ledger{entries: out}
}

// Prepend inserts rec as the newest entry and evicts the oldest one when the bound is exceeded.
func (l *Ledger) Prepend(rec Record) {
	n := len(l.entries)
	if n < MaxEntries {
		l.entries = append(l.entries, Record{})
		n++
	}
	copy(l.entries[1:n], l.entries[:n-1])
	l.entries[0] = rec
}

func (l *Ledger) Entries() []Record {
	out := make([]Record, len(l.entries))
	copy(out, l.entries)
	return out
}

func (l *Ledger) Len() int {
	return len(l.entries)
}

func (l *Ledger) Reset() {
	l.entries = l.entries[:0]
}
