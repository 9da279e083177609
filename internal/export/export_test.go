package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/robux-must-flow/internal/model"
)

func sample() []model.Transaction {
	id := int64(42)
	return []model.Transaction{
		{Date: time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), Item: "VIP", Type: "Game Pass", Category: model.CategoryGame, Amount: 100},
		{Date: time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC), Item: "Blue Shirt", Type: "Asset", Category: model.CategoryCosmetics, Amount: 1500.7, ExternalID: &id},
		{Date: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), Item: "Trade, big", Type: "Trade", Category: model.CategoryTrading, Amount: 10},
	}
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("CSV")
	require.NoError(t, err)
	assert.Equal(t, FormatCSV, f)

	f, err = ParseFormat("json")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, f)

	_, err = ParseFormat("xlsx")
	assert.Error(t, err)
}

func TestWrite_CSV(t *testing.T) {
	var buf bytes.Buffer
	n, err := Write(&buf, sample(), Options{Format: FormatCSV})
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, Header, rows[0])
	assert.Equal(t, []string{"March 09, 2024", "Blue Shirt", "Cosmetics", "Asset", "-1500 R$"}, rows[1])
	assert.Equal(t, []string{"February 01, 2024", "Trade, big", "Trading", "Trade", "-10 R$"}, rows[2])
	assert.Equal(t, "January 05, 2024", rows[3][0])
}

func TestWrite_JSONWithFilter(t *testing.T) {
	var buf bytes.Buffer
	n, err := Write(&buf, sample(), Options{
		Format:     FormatJSON,
		Categories: []model.Category{model.CategoryGame, model.CategoryCosmetics},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	var records []Record
	require.NoError(t, json.Unmarshal(buf.Bytes(), &records))
	require.Len(t, records, 2)
	assert.Equal(t, "Blue Shirt", records[0].Item)
	require.NotNil(t, records[0].UniverseID)
	assert.Equal(t, int64(42), *records[0].UniverseID)
	assert.Nil(t, records[1].UniverseID)
	assert.Equal(t, "January 05, 2024", records[1].Date)
}

func TestWrite_UnknownFormat(t *testing.T) {
	_, err := Write(&bytes.Buffer{}, sample(), Options{Format: "xml"})
	assert.Error(t, err)
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "out.csv")

	n, err := WriteFile(path, sample(), Options{Format: FormatCSV})
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "DATE,ITEM,CATEGORY,SOURCE,AMOUNT")
	assert.Contains(t, string(data), `"Trade, big"`)
}

func TestWrite_DoesNotReorderInput(t *testing.T) {
	txs := sample()
	_, err := Write(&bytes.Buffer{}, txs, Options{Format: FormatCSV})
	require.NoError(t, err)
	assert.Equal(t, "VIP", txs[0].Item)
}
