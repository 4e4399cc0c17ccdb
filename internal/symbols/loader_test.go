package symbols

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const equityList = `SYMBOL,NAME OF COMPANY, SERIES
20MICRONS,20 Microns Limited,EQ
INFY,Infosys Limited,EQ
,Blank Row,EQ
TCS,Tata Consultancy Services Limited,EQ
INFY,Infosys Limited,BE
`

func TestRead(t *testing.T) {
	list, err := Read(strings.NewReader(equityList), "SYMBOL")
	require.NoError(t, err)
	assert.Equal(t, List{"20MICRONS", "INFY", "TCS"}, list)
	assert.True(t, list.Contains("TCS"))
	assert.False(t, list.Contains("tcs"))
}

func TestRead_ColumnIsCaseInsensitive(t *testing.T) {
	list, err := Read(strings.NewReader("\ufeffsymbol\nABB\n"), "SYMBOL")
	require.NoError(t, err)
	assert.Equal(t, List{"ABB"}, list)
}

func TestRead_MissingColumn(t *testing.T) {
	_, err := Read(strings.NewReader("TICKER\nABB\n"), "SYMBOL")
	assert.ErrorIs(t, err, ErrColumnNotFound)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "EQUITY_L.csv")
	require.NoError(t, os.WriteFile(path, []byte(equityList), 0o644))

	list, err := Load(path, "SYMBOL")
	require.NoError(t, err)
	assert.Len(t, list, 3)

	_, err = Load(filepath.Join(t.TempDir(), "missing.csv"), "SYMBOL")
	assert.Error(t, err)
}
