// Package batch applies a mask to every line of text and JSONL files.
package batch

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"unicode/utf8"

	"github.com/schollz/progressbar/v3"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
	"go.uber.org/zap"

	"github.com/gnoswap-labs/inputmask/mask"
)

const maxLineSize = 1 << 20

// Record is the outcome of masking one input line.
type Record struct {
	File      string
	Line      int
	Input     string
	Formatted string
	Value     string
	Complete  bool
	// Output is the rewritten line: the formatted text for plain files, the
	// record with the field replaced for JSONL files.
	Output string
	// Missing reports a JSONL record without the configured field. Output
	// then holds the original line.
	Missing bool
}

// Options tune how files are read and reported.
type Options struct {
	// Field is a gjson path selecting the value to mask in JSONL records.
	// An empty Field masks the whole line.
	Field string
	// Progress receives the progress bar for directory runs. Nil hides it.
	Progress io.Writer
}

// Processor masks the lines of a single file.
type Processor func(ctx context.Context, m mask.Masker, path string, opts Options) ([]Record, error)

// ProcessFiles runs ProcessPath for every path and returns all records
// sorted by file and line.
func ProcessFiles(
	ctx context.Context,
	logger *zap.Logger,
	m mask.Masker,
	paths []string,
	opts Options,
	processor Processor,
) ([]Record, error) {
	var all []Record
	for _, path := range paths {
		records, err := ProcessPath(ctx, logger, m, path, opts, processor)
		all = append(all, records...)
		if err != nil {
			if logger != nil {
				logger.Error("Error processing path", zap.String("path", path), zap.Error(err))
			}
			sortRecords(all)
			return all, err
		}
	}

	sortRecords(all)
	return all, nil
}

type fileResult struct {
	path    string
	records []Record
	err     error
}

// ProcessPath masks a single file, or every file with a supported extension
// below a directory using one worker per CPU. Files that fail are logged and
// skipped. A cancelled ctx stops dispatching and returns the records
// finished so far together with ctx.Err().
func ProcessPath(
	ctx context.Context,
	logger *zap.Logger,
	m mask.Masker,
	path string,
	opts Options,
	processor Processor,
) ([]Record, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("error accessing %s: %w", path, err)
	}

	if !info.IsDir() {
		if !hasDesiredExtension(path) {
			return nil, nil
		}
		return processor(ctx, m, path, opts)
	}

	files, err := collectFiles(path)
	if err != nil {
		return nil, err
	}

	progress := opts.Progress
	if progress == nil {
		progress = io.Discard
	}
	bar := progressbar.NewOptions(len(files),
		progressbar.OptionSetWriter(progress),
		progressbar.OptionSetDescription(path),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))

	results := make(chan fileResult, len(files))
	sem := make(chan struct{}, runtime.NumCPU())

	dispatched := 0
	var ctxErr error
dispatch:
	for _, fp := range files {
		if ctxErr = ctx.Err(); ctxErr != nil {
			break
		}
		select {
		case <-ctx.Done():
			ctxErr = ctx.Err()
			break dispatch
		case sem <- struct{}{}:
		}
		dispatched++
		go func(fp string) {
			defer func() { <-sem }()
			records, err := processor(ctx, m, fp, opts)
			_ = bar.Add(1)
			results <- fileResult{path: fp, records: records, err: err}
		}(fp)
	}

	records := []Record{}
	for i := 0; i < dispatched; i++ {
		res := <-results
		if res.err != nil {
			if logger != nil {
				logger.Error("Error processing file", zap.String("file", res.path), zap.Error(res.err))
			}
			continue
		}
		records = append(records, res.records...)
	}
	_ = bar.Finish()

	sortRecords(records)
	return records, ctxErr
}

func collectFiles(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && hasDesiredExtension(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error walking %s: %w", root, err)
	}
	sort.Strings(files)
	return files, nil
}

// ProcessFile masks every non-empty line of path.
func ProcessFile(ctx context.Context, m mask.Masker, path string, opts Options) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	jsonl := filepath.Ext(path) == ".jsonl"

	var records []Record
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for lineNo := 1; scanner.Scan(); lineNo++ {
		if err := ctx.Err(); err != nil {
			return records, err
		}
		line := scanner.Text()
		if line == "" {
			continue
		}

		var rec Record
		if jsonl && opts.Field != "" {
			rec, err = ProcessRecord(m, line, opts.Field)
			if err != nil {
				return records, fmt.Errorf("%s:%d: %w", path, lineNo, err)
			}
		} else {
			rec = ProcessLine(m, line)
		}
		rec.File = path
		rec.Line = lineNo
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return records, fmt.Errorf("error reading %s: %w", path, err)
	}
	return records, nil
}

// ProcessLine masks line as if it had been typed with the caret at its end.
func ProcessLine(m mask.Masker, line string) Record {
	r := m.Apply(mask.NewCaretString(line, utf8.RuneCountInString(line), mask.Forward(false)))
	return Record{
		Input:     line,
		Formatted: r.FormattedText.Text,
		Value:     r.ExtractedValue,
		Complete:  r.Complete,
		Output:    r.FormattedText.Text,
	}
}

// ProcessRecord masks the value at field in a JSON document and writes the
// formatted text back in its place.
func ProcessRecord(m mask.Masker, doc, field string) (Record, error) {
	if !gjson.Valid(doc) {
		return Record{}, errors.New("invalid JSON record")
	}
	v := gjson.Get(doc, field)
	if !v.Exists() {
		return Record{Output: doc, Missing: true}, nil
	}

	rec := ProcessLine(m, v.String())
	out, err := sjson.Set(doc, field, rec.Formatted)
	if err != nil {
		return Record{}, fmt.Errorf("failed to set %q: %w", field, err)
	}
	rec.Output = out
	return rec, nil
}

// JSON encodes r as one JSON object.
func (r Record) JSON() string {
	doc := "{}"
	set := func(path string, value any) {
		doc, _ = sjson.Set(doc, path, value)
	}
	set("file", r.File)
	set("line", r.Line)
	set("input", r.Input)
	set("formatted", r.Formatted)
	set("value", r.Value)
	set("complete", r.Complete)
	if r.Missing {
		set("missing", true)
	}
	return doc
}

// WriteOutput writes the rewritten line of every record to w.
func WriteOutput(w io.Writer, records []Record) error {
	for _, r := range records {
		if _, err := fmt.Fprintln(w, r.Output); err != nil {
			return err
		}
	}
	return nil
}

// WriteJSON writes one JSON object per record to w.
func WriteJSON(w io.Writer, records []Record) error {
	for _, r := range records {
		if _, err := fmt.Fprintln(w, r.JSON()); err != nil {
			return err
		}
	}
	return nil
}

func sortRecords(records []Record) {
	sort.SliceStable(records, func(i, j int) bool {
		if records[i].File != records[j].File {
			return records[i].File < records[j].File
		}
		return records[i].Line < records[j].Line
	})
}

var desiredExtensions = map[string]bool{
	".txt":   true,
	".jsonl": true,
}

func hasDesiredExtension(path string) bool {
	return desiredExtensions[filepath.Ext(path)]
}
