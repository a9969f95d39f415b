package service

import (
	"time"

	"github.com/goccy/go-json"
	"github.com/skip2/go-qrcode"
	"gorm.io/gorm/clause"

	"github.com/scan2earn/panel/database"
	"github.com/scan2earn/panel/database/model"
)

// QRCodeService renders the printable QR code for each bin and caches
// the payload it encodes.
type QRCodeService struct {
	binService BinService
}

// payloadFor builds the JSON document a bin's QR code carries.
func (s *QRCodeService) payloadFor(bin *model.Bin) (string, error) {
	payload := ScanPayload{
		BinCode:  bin.Code,
		Type:     string(bin.Type),
		Points:   bin.Type.Points(),
		Location: bin.Location,
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// GeneratePNG renders the QR image for a bin and refreshes its cached
// payload record.
func (s *QRCodeService) GeneratePNG(binCode string, size int) ([]byte, error) {
	bin, err := s.binService.GetBin(binCode)
	if err != nil {
		return nil, err
	}
	payload, err := s.payloadFor(bin)
	if err != nil {
		return nil, err
	}
	if size <= 0 {
		size = 256
	}
	png, err := qrcode.Encode(payload, qrcode.Medium, size)
	if err != nil {
		return nil, err
	}

	db := database.GetDB()
	record := &model.QRCode{
		BinCode:   bin.Code,
		Type:      bin.Type,
		Location:  bin.Location,
		UpdatedAt: time.Now(),
	}
	err = db.Clauses(clause.OnConflict{UpdateAll: true}).Create(record).Error
	if err != nil {
		return nil, err
	}
	return png, nil
}

// ListQRCodes returns the cached payload records.
func (s *QRCodeService) ListQRCodes() ([]model.QRCode, error) {
	db := database.GetDB()
	var codes []model.QRCode
	err := db.Model(model.QRCode{}).Order("bin_code ASC").Find(&codes).Error
	return codes, err
}

// DeleteQRCode drops a cached payload record.
func (s *QRCodeService) DeleteQRCode(binCode string) error {
	return database.GetDB().
		Where("bin_code = ?", binCode).
		Delete(model.QRCode{}).Error
}
