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
		Title:   "Patients",
		Headers: []string{"Patient ID", "Name", "Notes"},
		Rows: [][]string{
			{"P0001", "Ann Smith", "allergic to penicillin, latex"},
			{"P0002", "Bo Li", `says "hi"`},
		},
	}
}

func TestForFormat(t *testing.T) {
	enc, err := ForFormat(" CSV ")
	require.NoError(t, err)
	assert.Equal(t, "text/csv", enc.ContentType())

	enc, err = ForFormat("excel")
	require.NoError(t, err)
	assert.Equal(t, "xlsx", enc.Extension())

	_, err = ForFormat("docx")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestCSVEncode(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, CSV{}.Encode(&buf, sampleTable()))

	want := "Patient ID,Name,Notes\n" +
		"P0001,Ann Smith,\"allergic to penicillin, latex\"\n" +
		"P0002,Bo Li,\"says \"\"hi\"\"\"\n"
	assert.Equal(t, want, buf.String())
}

func TestEncodeRejectsRaggedRows(t *testing.T) {
	table := Table{Headers: []string{"a", "b"}, Rows: [][]string{{"only one"}}}

	for _, enc := range []Encoder{CSV{}, XLSX{}, PDF{}} {
		assert.Error(t, enc.Encode(&bytes.Buffer{}, table))
	}
}

func TestXLSXEncode(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, XLSX{}.Encode(&buf, sampleTable()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Patients")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Patient ID", "Name", "Notes"}, rows[0])
	assert.Equal(t, []string{"P0002", "Bo Li", `says "hi"`}, rows[2])
}

func TestPDFEncode(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PDF{}.Encode(&buf, sampleTable()))

	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}

func TestSheetName(t *testing.T) {
	assert.Equal(t, "Sheet1", SheetName("  "))
	assert.Equal(t, "Users_Admins", SheetName("Users/Admins"))
	assert.Len(t, []rune(SheetName("A very long worksheet title that overflows")), 31)
}
