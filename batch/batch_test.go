package batch

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/gnoswap-labs/inputmask/mask"
)

type mockMasker struct {
	mock.Mock
}

func (m *mockMasker) Apply(text mask.CaretString) mask.Result {
	args := m.Called(text.Text)
	return args.Get(0).(mask.Result)
}

func (m *mockMasker) Placeholder() string {
	return m.Called().String(0)
}

func result(text, value string, complete bool) mask.Result {
	return mask.Result{
		FormattedText:  mask.NewCaretString(text, len([]rune(text)), mask.Forward(false)),
		ExtractedValue: value,
		Complete:       complete,
	}
}

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return dir
}

func TestProcessLine(t *testing.T) {
	t.Parallel()
	m := new(mockMasker)
	m.On("Apply", "9001234567").Return(result("900 123-45-67", "9001234567", true)).Once()

	rec := ProcessLine(m, "9001234567")

	assert.Equal(t, "9001234567", rec.Input)
	assert.Equal(t, "900 123-45-67", rec.Formatted)
	assert.Equal(t, "900 123-45-67", rec.Output)
	assert.Equal(t, "9001234567", rec.Value)
	assert.True(t, rec.Complete)
	m.AssertExpectations(t)
}

func TestProcessRecord(t *testing.T) {
	t.Parallel()
	m := new(mockMasker)
	m.On("Apply", "4111111111111111").Return(result("4111 1111 1111 1111", "4111111111111111", true))

	tests := []struct {
		name    string
		doc     string
		field   string
		want    string
		missing bool
		wantErr bool
	}{
		{
			name:  "top level",
			doc:   `{"id":1,"card":"4111111111111111"}`,
			field: "card",
			want:  `{"id":1,"card":"4111 1111 1111 1111"}`,
		},
		{
			name:  "nested",
			doc:   `{"payment":{"card":"4111111111111111"}}`,
			field: "payment.card",
			want:  `{"payment":{"card":"4111 1111 1111 1111"}}`,
		},
		{
			name:    "missing field",
			doc:     `{"id":1}`,
			field:   "card",
			want:    `{"id":1}`,
			missing: true,
		},
		{
			name:    "invalid json",
			doc:     `{"id":`,
			field:   "card",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec, err := ProcessRecord(m, tt.doc, tt.field)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, rec.Output)
			assert.Equal(t, tt.missing, rec.Missing)
		})
	}
}

func TestProcessFileSkipsBlankLines(t *testing.T) {
	t.Parallel()
	dir := writeFiles(t, map[string]string{"phones.txt": "12\n\n34\n"})
	m := new(mockMasker)
	m.On("Apply", "12").Return(result("1-2", "12", true))
	m.On("Apply", "34").Return(result("3-4", "34", true))

	records, err := ProcessFile(context.Background(), m, filepath.Join(dir, "phones.txt"), Options{})
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, 1, records[0].Line)
	assert.Equal(t, 3, records[1].Line)
	assert.Equal(t, "3-4", records[1].Output)
	m.AssertNumberOfCalls(t, "Apply", 2)
}

func TestProcessFileJSONL(t *testing.T) {
	t.Parallel()
	dir := writeFiles(t, map[string]string{
		"rows.jsonl": `{"phone":"12"}` + "\n" + `{"phone":"34"}` + "\n",
	})
	m := new(mockMasker)
	m.On("Apply", "12").Return(result("1-2", "12", true))
	m.On("Apply", "34").Return(result("3-4", "34", true))

	records, err := ProcessFile(context.Background(), m, filepath.Join(dir, "rows.jsonl"), Options{Field: "phone"})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteOutput(&buf, records))
	assert.Equal(t, `{"phone":"1-2"}`+"\n"+`{"phone":"3-4"}`+"\n", buf.String())
}

func TestProcessPathDirectory(t *testing.T) {
	t.Parallel()
	files := map[string]string{"skip.md": "ignored\n"}
	for i := 0; i < 8; i++ {
		files[fmt.Sprintf("sub/in%d.txt", i)] = fmt.Sprintf("%d\n%d\n", i, i+10)
	}
	dir := writeFiles(t, files)

	m := new(mockMasker)
	m.On("Apply", mock.Anything).Return(result("x", "x", false))

	var progress bytes.Buffer
	records, err := ProcessPath(context.Background(), nil, m, dir, Options{Progress: &progress}, ProcessFile)
	require.NoError(t, err)
	require.Len(t, records, 16)

	for i := 1; i < len(records); i++ {
		prev, cur := records[i-1], records[i]
		ordered := prev.File < cur.File || (prev.File == cur.File && prev.Line < cur.Line)
		assert.True(t, ordered, "records out of order at %d", i)
	}
	assert.NotEmpty(t, progress.String())
}

func TestProcessPathUnsupportedFile(t *testing.T) {
	t.Parallel()
	dir := writeFiles(t, map[string]string{"notes.md": "123\n"})
	m := new(mockMasker)

	records, err := ProcessPath(context.Background(), nil, m, filepath.Join(dir, "notes.md"), Options{}, ProcessFile)
	require.NoError(t, err)
	assert.Empty(t, records)
	m.AssertNotCalled(t, "Apply", mock.Anything)
}

func TestProcessPathMissing(t *testing.T) {
	t.Parallel()
	_, err := ProcessPath(context.Background(), nil, new(mockMasker), filepath.Join(t.TempDir(), "absent"), Options{}, ProcessFile)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestProcessPathContextCancellation(t *testing.T) {
	t.Parallel()
	files := map[string]string{}
	for i := 0; i < 10; i++ {
		files[fmt.Sprintf("in%d.txt", i)] = "1\n"
	}
	dir := writeFiles(t, files)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	processor := func(ctx context.Context, m mask.Masker, path string, opts Options) ([]Record, error) {
		return []Record{{File: path, Line: 1}}, nil
	}
	records, err := ProcessPath(ctx, nil, new(mockMasker), dir, Options{}, processor)
	assert.ErrorIs(t, err, context.Canceled)
	assert.NotNil(t, records)
}

func TestProcessPathSkipsFailingFiles(t *testing.T) {
	t.Parallel()
	dir := writeFiles(t, map[string]string{"a.txt": "1\n", "b.txt": "2\n"})

	processor := func(ctx context.Context, m mask.Masker, path string, opts Options) ([]Record, error) {
		if strings.HasSuffix(path, "a.txt") {
			return nil, fmt.Errorf("boom")
		}
		return []Record{{File: path, Line: 1}}, nil
	}
	records, err := ProcessPath(context.Background(), nil, new(mockMasker), dir, Options{}, processor)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.True(t, strings.HasSuffix(records[0].File, "b.txt"))
}

func TestProcessFilesWithRealMask(t *testing.T) {
	t.Parallel()
	dir := writeFiles(t, map[string]string{
		"b.txt": "9001234567\n",
		"a.txt": "900\n",
	})
	m, err := mask.New("[000] [000]-[00]-[00]")
	require.NoError(t, err)

	records, err := ProcessFiles(context.Background(), nil, m,
		[]string{filepath.Join(dir, "b.txt"), filepath.Join(dir, "a.txt")}, Options{}, ProcessFile)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "900", records[0].Formatted)
	assert.False(t, records[0].Complete)
	assert.Equal(t, "900 123-45-67", records[1].Formatted)
	assert.True(t, records[1].Complete)
}

func TestRecordJSON(t *testing.T) {
	t.Parallel()
	rec := Record{File: "a.txt", Line: 2, Input: "12", Formatted: "1-2", Value: "12", Complete: true}
	assert.JSONEq(t,
		`{"file":"a.txt","line":2,"input":"12","formatted":"1-2","value":"12","complete":true}`,
		rec.JSON())

	rec.Missing = true
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, []Record{rec}))
	assert.Contains(t, buf.String(), `"missing":true`)
}
