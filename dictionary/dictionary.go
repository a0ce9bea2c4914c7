package dictionary

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode/utf8"
)

// progressEvery is how many records are read between progress log lines.
const progressEvery = 1000

// Entry is one weighted word of a corpus.
type Entry struct {
	Word   string
	Weight uint64
}

// Corpus holds words and their frequencies in the order they were read.
// The same word may appear more than once; each entry counts on its own.
type Corpus struct {
	Entries []Entry
	Total   uint64
	MaxLen  int
	Logger  *slog.Logger

	index map[string]uint64
}

// NewCorpus creates a new empty corpus.
func NewCorpus() *Corpus {
	return &Corpus{
		index: make(map[string]uint64),
	}
}

// Add appends a word with its weight.
func (c *Corpus) Add(word string, weight uint64) error {
	if c.Total > math.MaxUint64-weight {
		return fmt.Errorf("%w: total weight overflows at %q", ErrMalformedRecord, word)
	}
	if c.index == nil {
		c.index = make(map[string]uint64)
	}
	c.Entries = append(c.Entries, Entry{Word: word, Weight: weight})
	c.index[word] += weight
	c.Total += weight
	if n := utf8.RuneCountInString(word); n > c.MaxLen {
		c.MaxLen = n
	}
	return nil
}

// Len returns the number of entries.
func (c *Corpus) Len() int {
	return len(c.Entries)
}

// Frequency returns the summed weight of a word.
func (c *Corpus) Frequency(word string) (uint64, bool) {
	val, ok := c.index[word]
	return val, ok
}

// Contains checks if a word exists in the corpus.
func (c *Corpus) Contains(word string) bool {
	_, ok := c.index[word]
	return ok
}

// Load appends the records of the file at path.
// Loading several files into one corpus accumulates their entries.
func (c *Corpus) Load(path string, format Format) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open corpus: %w", err)
	}
	defer file.Close()

	if format == FormatAuto {
		format = FormatFor(path)
	}
	if err := c.Read(file, format); err != nil {
		var ie *IngestError
		if errors.As(err, &ie) {
			ie.Path = path
		}
		return err
	}
	c.logger().Info("loaded corpus",
		slog.String("path", path),
		slog.Int("entries", len(c.Entries)),
		slog.Uint64("total", c.Total),
	)
	return nil
}

// Read appends the records read from r.
func (c *Corpus) Read(r io.Reader, format Format) error {
	switch format {
	case FormatCSV, FormatAuto:
		return c.readCSV(r)
	case FormatFields:
		return c.readFields(r)
	default:
		return fmt.Errorf("unknown corpus format %d", format)
	}
}

// readCSV reads "word,count" records, after an optional "word,count" header.
func (c *Corpus) readCSV(r io.Reader) error {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.LazyQuotes = true

	parsed := 0
	header := true
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			if header {
				return &IngestError{Line: 1, Err: fmt.Errorf("%w: missing header", ErrUnexpectedEOF)}
			}
			return nil
		}
		if err != nil {
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				return &IngestError{Line: pe.Line, Err: fmt.Errorf("%w: %v", ErrMalformedRecord, pe.Err)}
			}
			return fmt.Errorf("read corpus: %w", err)
		}
		line, _ := cr.FieldPos(0)

		if header {
			header = false
			if isHeader(rec) {
				continue
			}
		}

		switch len(rec) {
		case 2:
		case 1:
			// A word with no count is only a truncation if nothing follows it.
			if _, err := cr.Read(); err == io.EOF {
				return &IngestError{Line: line, Err: fmt.Errorf("%w: record %q has no count", ErrUnexpectedEOF, rec[0])}
			}
			return &IngestError{Line: line, Err: fmt.Errorf("%w: record %q has no count", ErrMalformedRecord, rec[0])}
		default:
			return &IngestError{Line: line, Err: fmt.Errorf("%w: expected 2 fields, got %d", ErrMalformedRecord, len(rec))}
		}

		if err := c.addRecord(rec[0], rec[1]); err != nil {
			return &IngestError{Line: line, Err: err}
		}
		parsed++
		if parsed%progressEvery == 0 {
			c.logger().Debug("parsing corpus", slog.Int("parsed", parsed))
		}
	}
}

// readFields reads whitespace separated "word freq" lines.
// Blank lines and lines starting with '#' are skipped.
func (c *Corpus) readFields(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	const maxCapacity = 1024 * 1024
	scanner.Buffer(make([]byte, 64*1024), maxCapacity)

	parsed, line := 0, 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		parts := strings.Fields(text)
		if len(parts) != 2 {
			return &IngestError{Line: line, Err: fmt.Errorf("%w: expected 2 fields, got %d", ErrMalformedRecord, len(parts))}
		}
		if err := c.addRecord(parts[0], parts[1]); err != nil {
			return &IngestError{Line: line, Err: err}
		}
		parsed++
		if parsed%progressEvery == 0 {
			c.logger().Debug("parsing corpus", slog.Int("parsed", parsed))
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read corpus: %w", err)
	}
	return nil
}

func (c *Corpus) addRecord(word, count string) error {
	word = strings.TrimSpace(word)
	if word == "" {
		return fmt.Errorf("%w: empty word", ErrMalformedRecord)
	}
	if !utf8.ValidString(word) {
		return fmt.Errorf("%w: word is not valid UTF-8", ErrMalformedRecord)
	}
	weight, err := strconv.ParseUint(strings.TrimSpace(count), 10, 64)
	if err != nil {
		return fmt.Errorf("%w: bad count %q for %q", ErrMalformedRecord, count, word)
	}
	return c.Add(word, weight)
}

func (c *Corpus) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}

func isHeader(rec []string) bool {
	return len(rec) == 2 &&
		strings.EqualFold(strings.TrimSpace(rec[0]), "word") &&
		strings.EqualFold(strings.TrimSpace(rec[1]), "count")
}

// Format selects how a corpus file is parsed.
type Format int

const (
	FormatAuto   Format = iota // FormatAuto picks CSV for .csv files and Fields otherwise.
	FormatCSV                  // FormatCSV reads "word,count" records after a header.
	FormatFields               // FormatFields reads "word freq" lines.
)

// ParseFormat resolves a format name as used in configuration and flags.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(name) {
	case "", "auto":
		return FormatAuto, nil
	case "csv":
		return FormatCSV, nil
	case "fields", "txt":
		return FormatFields, nil
	}
	return FormatAuto, fmt.Errorf("unknown corpus format %q", name)
}

// FormatFor guesses the format from a file extension.
func FormatFor(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		return FormatCSV
	}
	return FormatFields
}

func (f Format) String() string {
	switch f {
	case FormatCSV:
		return "csv"
	case FormatFields:
		return "fields"
	default:
		return "auto"
	}
}
