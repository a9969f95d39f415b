package service

import (
	"strings"

	"github.com/scan2earn/panel/database"
	"github.com/scan2earn/panel/database/model"
)

// BinService manages the registry of physical bins.
type BinService struct{}

// CreateBin registers a bin. Codes are stored uppercase and must be
// unique.
func (s *BinService) CreateBin(code string, binType model.BinType, location string) (*model.Bin, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, ErrBinNotFound
	}
	if !binType.Valid() {
		return nil, ErrInvalidBinType
	}

	db := database.GetDB()
	var count int64
	if err := db.Model(model.Bin{}).Where("code = ?", code).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrDuplicateBinId
	}

	bin := &model.Bin{
		Code:     code,
		Type:     binType,
		Location: location,
		Active:   true,
	}
	if err := db.Create(bin).Error; err != nil {
		return nil, err
	}
	return bin, nil
}

// ListBins returns every bin, optionally only the active ones.
func (s *BinService) ListBins(activeOnly bool) ([]model.Bin, error) {
	db := database.GetDB().Model(model.Bin{})
	if activeOnly {
		db = db.Where("active = ?", true)
	}
	var bins []model.Bin
	err := db.Order("code ASC").Find(&bins).Error
	return bins, err
}

// GetBin fetches a bin by code regardless of active state.
func (s *BinService) GetBin(code string) (*model.Bin, error) {
	db := database.GetDB()
	bin := &model.Bin{}
	err := db.Model(model.Bin{}).
		Where("code = ?", strings.ToUpper(code)).
		First(bin).Error
	if database.IsNotFound(err) {
		return nil, ErrBinNotFound
	} else if err != nil {
		return nil, err
	}
	return bin, nil
}

// Lookup resolves a bin code for scanning. Inactive bins do not resolve.
func (s *BinService) Lookup(code string) (*model.Bin, error) {
	bin, err := s.GetBin(code)
	if err != nil {
		return nil, err
	}
	if !bin.Active {
		return nil, ErrBinNotFound
	}
	return bin, nil
}

// SetActive flips a bin in or out of service without losing its history.
func (s *BinService) SetActive(code string, active bool) error {
	bin, err := s.GetBin(code)
	if err != nil {
		return err
	}
	return database.GetDB().Model(model.Bin{}).
		Where("code = ?", bin.Code).
		Update("active", active).Error
}

// UpdateBin edits a bin's type and location.
func (s *BinService) UpdateBin(code string, binType model.BinType, location string) error {
	if !binType.Valid() {
		return ErrInvalidBinType
	}
	bin, err := s.GetBin(code)
	if err != nil {
		return err
	}
	return database.GetDB().Model(model.Bin{}).
		Where("code = ?", bin.Code).
		Updates(map[string]any{"type": binType, "location": location}).Error
}

// DeleteBin removes a bin from the registry. Existing transactions keep
// referencing the code.
func (s *BinService) DeleteBin(code string) error {
	bin, err := s.GetBin(code)
	if err != nil {
		return err
	}
	db := database.GetDB()
	if err := db.Where("bin_code = ?", bin.Code).Delete(model.QRCode{}).Error; err != nil {
		return err
	}
	return db.Delete(bin).Error
}
