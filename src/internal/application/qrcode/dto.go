package qrcode

import (
	"time"

	"github.com/jackyeh168/qr_points/src/internal/domain/qrcode"
)

// QRCodeDTO QR Code 資料
type QRCodeDTO struct {
	ID         string
	Name       string
	Tags       []string
	Mode       string
	Points     int
	Status     string
	OwnerEmail string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func toDTO(code *qrcode.QRCode) QRCodeDTO {
	return QRCodeDTO{
		ID:         code.ID().String(),
		Name:       code.Name(),
		Tags:       code.Tags().Values(),
		Mode:       code.Mode().String(),
		Points:     code.Points().Value(),
		Status:     code.Status().String(),
		OwnerEmail: code.Owner().String(),
		CreatedAt:  code.CreatedAt(),
		UpdatedAt:  code.UpdatedAt(),
	}
}
