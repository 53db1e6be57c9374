package ingestion

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func readFixture(t *testing.T) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("..", "parsing", "testdata", "groepsplan.md"))
	require.NoError(t, err)
	return data
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		filename string
		want     Format
		wantErr  bool
	}{
		{filename: "plan.md", want: FormatMarkdown},
		{filename: "PLAN.MD", want: FormatMarkdown},
		{filename: "plan.txt", want: FormatText},
		{filename: "plan.htm", want: FormatHTML},
		{filename: "plan.html", want: FormatHTML},
		{filename: "overzicht.xlsx", want: FormatXLSX},
		{filename: "plan.docx", wantErr: true},
		{filename: "plan", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			got, err := DetectFormat(tt.filename)
			if tt.wantErr {
				var ufe *UnsupportedFormatError
				require.True(t, errors.As(err, &ufe))
				assert.Contains(t, err.Error(), ".xlsx")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtract_Markdown(t *testing.T) {
	data := readFixture(t)

	ext, err := Extract("groepsplan.md", data)
	require.NoError(t, err)

	assert.Equal(t, FormatMarkdown, ext.Source.Format)
	assert.Equal(t, len(data), ext.Source.Bytes)
	assert.Len(t, ext.Source.Hash, 64)
	assert.True(t, strings.HasPrefix(ext.Text, "# Groepsplan rekenen groep 5"))

	assert.Equal(t, 5, ext.Prefill.Groep)
	assert.Equal(t, "rekenen", ext.Prefill.Vakgebied)
	assert.Equal(t, "februari 2025 - juni 2025", ext.Prefill.PreviousPeriode)
	assert.NotEmpty(t, ext.Prefill.PreviousGoals)
	assert.NotEmpty(t, ext.Prefill.PreviousResults)
}

func TestExtract_Empty(t *testing.T) {
	_, err := Extract("leeg.txt", []byte("  \n\n "))
	assert.ErrorIs(t, err, ErrEmptyDocument)

	_, err = Extract("leeg.html", []byte("<html><body><nav>Menu</nav><script>x()</script></body></html>"))
	assert.ErrorIs(t, err, ErrEmptyDocument)
}

func TestExtract_Unsupported(t *testing.T) {
	_, err := Extract("plan.pdf", []byte("%PDF"))
	var ufe *UnsupportedFormatError
	require.True(t, errors.As(err, &ufe))
	assert.Equal(t, ".pdf", ufe.Extension)
}

func TestExtract_HTML(t *testing.T) {
	page := `<!doctype html>
<html>
<head><title>Groepsplan spelling</title><style>body{}</style></head>
<body>
  <nav><a href="/">Home</a> <a href="/plannen">Plannen</a></nav>
  <main>
    <h1>Groepsplan spelling groep 6</h1>
    <p><strong>Periode:</strong> september 2024 - januari 2025</p>
    <h2>Doelen</h2>
    <p>80% van de leerlingen beheerst de werkwoordspelling in de tegenwoordige tijd.</p>
    <h2>Evaluatie</h2>
    <p>In januari is het doel door 20 van de 26 leerlingen behaald.</p>
    <table>
      <tr><th>Groep</th><th>Aantal</th></tr>
      <tr><td>Basis</td><td>16</td></tr>
    </table>
  </main>
  <script>track()</script>
  <footer>Schoolnaam</footer>
</body>
</html>`

	ext, err := Extract("plan.html", []byte(page))
	require.NoError(t, err)

	assert.Equal(t, "Groepsplan spelling", ext.Title)
	assert.Contains(t, ext.Text, "# Groepsplan spelling groep 6")
	assert.Contains(t, ext.Text, "## Doelen")
	assert.Regexp(t, `\|\s*Basis\s*\|\s*16\s*\|`, ext.Text)
	assert.NotContains(t, ext.Text, "Home")
	assert.NotContains(t, ext.Text, "track()")
	assert.NotContains(t, ext.Text, "Schoolnaam")

	assert.Equal(t, 6, ext.Prefill.Groep)
	assert.Equal(t, "spelling", ext.Prefill.Vakgebied)
	assert.Equal(t, "september 2024 - januari 2025", ext.Prefill.PreviousPeriode)
	assert.Contains(t, ext.Prefill.PreviousGoals, "werkwoordspelling")
	assert.Contains(t, ext.Prefill.PreviousResults, "20 van de 26")
}

func TestExtract_XLSX(t *testing.T) {
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetName("Sheet1", "Groepsindeling"))
	require.NoError(t, f.SetSheetRow("Groepsindeling", "A1", &[]any{"Subgroep", "Aantal", "Toets"}))
	require.NoError(t, f.SetSheetRow("Groepsindeling", "A2", &[]any{"Basis", 16, "B"}))
	require.NoError(t, f.SetSheetRow("Groepsindeling", "A3", &[]any{"Intensief", 6, "D"}))
	_, err := f.NewSheet("Leeg")
	require.NoError(t, err)
	_, err = f.NewSheet("Doelen")
	require.NoError(t, err)
	require.NoError(t, f.SetCellValue("Doelen", "A1", "In juni automatiseert 85% de tafels tot en met 10."))

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	ext, err := Extract("overzicht.xlsx", buf.Bytes())
	require.NoError(t, err)

	assert.Equal(t, FormatXLSX, ext.Source.Format)
	assert.Contains(t, ext.Text, "## Groepsindeling\n\nSubgroep | Aantal | Toets\nBasis | 16 | B")
	assert.Contains(t, ext.Text, "## Doelen")
	assert.NotContains(t, ext.Text, "## Leeg")
	assert.Contains(t, ext.Prefill.PreviousGroepsindeling, "Intensief | 6 | D")
	assert.Contains(t, ext.Prefill.PreviousGoals, "tafels")
}

func TestExtract_CorruptXLSX(t *testing.T) {
	_, err := Extract("kapot.xlsx", []byte("not a zip"))
	var ee *ExtractionError
	require.True(t, errors.As(err, &ee))
	assert.Equal(t, FormatXLSX, ee.Format)
}

func TestExtractFile(t *testing.T) {
	ext, err := ExtractFile(filepath.Join("..", "parsing", "testdata", "groepsplan.md"))
	require.NoError(t, err)
	assert.Equal(t, "groepsplan.md", ext.Source.Filename)

	_, err = ExtractFile(filepath.Join(t.TempDir(), "missing.md"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "file not found")
}
