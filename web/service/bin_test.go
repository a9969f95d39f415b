package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/scan2earn/panel/database"
	"github.com/scan2earn/panel/database/model"
)

func TestBinLifecycle(t *testing.T) {
	setup()
	defer teardown()

	service := BinService{}

	bin, err := service.CreateBin("gen-010", model.General, "Lobby")
	assert.NoError(t, err)
	assert.Equal(t, "GEN-010", bin.Code)
	assert.True(t, bin.Active)

	// duplicate codes are rejected, case-insensitively
	_, err = service.CreateBin("GEN-010", model.Recycle, "Elsewhere")
	assert.ErrorIs(t, err, ErrDuplicateBinId)

	_, err = service.CreateBin("BAD-001", model.BinType("plasma"), "Nowhere")
	assert.Error(t, err)

	err = service.UpdateBin("GEN-010", model.Recycle, "Lobby east")
	assert.NoError(t, err)
	got, err := service.GetBin("gen-010")
	assert.NoError(t, err)
	assert.Equal(t, model.Recycle, got.Type)
	assert.Equal(t, "Lobby east", got.Location)

	err = service.SetActive("GEN-010", false)
	assert.NoError(t, err)

	// inactive bins stop resolving for scans but stay visible
	_, err = service.Lookup("GEN-010")
	assert.ErrorIs(t, err, ErrBinNotFound)
	_, err = service.GetBin("GEN-010")
	assert.NoError(t, err)

	err = service.DeleteBin("GEN-010")
	assert.NoError(t, err)
	_, err = service.GetBin("GEN-010")
	assert.ErrorIs(t, err, ErrBinNotFound)
}

func TestSeededBins(t *testing.T) {
	setup()
	defer teardown()

	assert.NoError(t, database.SeedBins())

	service := BinService{}
	bins, err := service.ListBins(true)
	assert.NoError(t, err)
	assert.Len(t, bins, 4)

	bin, err := service.Lookup("REC-001")
	assert.NoError(t, err)
	assert.Equal(t, model.Recycle, bin.Type)
	assert.Equal(t, 20, bin.Type.Points())
}

func TestManualScanUsesBinRegistry(t *testing.T) {
	setup()
	defer teardown()

	assert.NoError(t, database.SeedBins())

	user := createTestUser(t, "manualscan")
	ledger := LedgerService{}

	result, err := ledger.RecordScanForBin(user.Id, "haz-001")
	assert.NoError(t, err)
	assert.Equal(t, "HAZ-001", result.Transaction.BinCode)
	assert.Equal(t, 30, result.Transaction.Points)

	_, err = ledger.RecordScanForBin(user.Id, "NOPE-404")
	assert.ErrorIs(t, err, ErrBinNotFound)
}
