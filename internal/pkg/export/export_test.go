package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleTable() Table {
	return Table{
		Title:   "Applied Students",
		Headers: []string{"Enrollment No", "Name", "Email"},
		Rows: [][]string{
			{"2103031050", "Asha Patel", "asha@example.com"},
			{"2103031051", "Ravi Shah", "ravi@example.com"},
		},
	}
}

func TestXLSX(t *testing.T) {
	buf, err := XLSX(sampleTable())
	require.NoError(t, err)
	require.NotZero(t, buf.Len())

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Applied Students")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Enrollment No", "Name", "Email"}, rows[0])
	assert.Equal(t, "2103031050", rows[1][0])
}

func TestXLSX_LongSheetName(t *testing.T) {
	tbl := sampleTable()
	tbl.Title = "A report title that is clearly longer than thirty one characters"

	buf, err := XLSX(tbl)
	require.NoError(t, err)
	assert.NotZero(t, buf.Len())
}

func TestPDF(t *testing.T) {
	buf, err := PDF(sampleTable())
	require.NoError(t, err)
	require.NotZero(t, buf.Len())
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
}

func TestPDF_EmptyRows(t *testing.T) {
	tbl := sampleTable()
	tbl.Rows = nil

	buf, err := PDF(tbl)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
}
