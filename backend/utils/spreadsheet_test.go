package utils

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadTableCSV(t *testing.T) {
	data := "\xef\xbb\xbffull_name, email ,group\nИванов Иван,ivanov@example.com,ПИ-21\n,,\nПетров Петр,petrov@example.com\n"

	table, err := ReadTable("students.csv", strings.NewReader(data))
	require.NoError(t, err)

	assert.Equal(t, []string{"full_name", "email", "group"}, table.Header)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "ivanov@example.com", table.Rows[0]["email"])
	assert.Equal(t, "ПИ-21", table.Rows[0]["group"])
	assert.Equal(t, "", table.Rows[1]["group"])
	assert.Empty(t, table.HasColumns("full_name", "email", "group"))
	assert.Equal(t, []string{"position"}, table.HasColumns("full_name", "position"))
}

func TestReadTableEmpty(t *testing.T) {
	_, err := ReadTable("empty.csv", strings.NewReader(""))
	assert.ErrorIs(t, err, ErrEmptyTable)
}

func TestReadTableBadCSV(t *testing.T) {
	_, err := ReadTable("bad.csv", strings.NewReader("a,\"b\nc"))
	assert.Error(t, err)
}

func TestReadTableBadXLSX(t *testing.T) {
	_, err := ReadTable("bad.xlsx", strings.NewReader("not a zip"))
	assert.Error(t, err)
}

func TestWriteTableRoundTrip(t *testing.T) {
	data, err := WriteTable("Report", []string{"full_name", "email", "position"}, [][]string{
		{"Сидоров С.С.", "sidorov@example.com", "доцент"},
		{"Кузнецова А.А.", "kuz@example.com", ""},
	})
	require.NoError(t, err)
	require.NotEmpty(t, data)

	table, err := ReadTable("teachers.XLSX", bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, []string{"full_name", "email", "position"}, table.Header)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "Сидоров С.С.", table.Rows[0]["full_name"])
	assert.Equal(t, "доцент", table.Rows[0]["position"])
	assert.Equal(t, "", table.Rows[1]["position"])
}
