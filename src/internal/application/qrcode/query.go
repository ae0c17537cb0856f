package qrcode

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackyeh168/qr_points/src/internal/domain/qrcode"
	"github.com/jackyeh168/qr_points/src/internal/domain/shared"
)

// Queries QR Code 查詢接口（任何已登入的呼叫者）
type Queries interface {
	Get(ctx context.Context, id string) (*QRCodeDTO, error)
	List(ctx context.Context, query ListQuery) ([]QRCodeDTO, error)
}

// ListQuery 列出查詢
type ListQuery struct {
	Mode string // 空字串表示全部
}

// QueryService Queries 實現
type QueryService struct {
	codeRepo  qrcode.QRCodeRepository
	txManager shared.TransactionManager
}

// NewQueryService 創建 QR Code 查詢服務
func NewQueryService(codeRepo qrcode.QRCodeRepository, txManager shared.TransactionManager) *QueryService {
	return &QueryService{codeRepo: codeRepo, txManager: txManager}
}

// Get 依 ID 查詢（不分大小寫）
func (s *QueryService) Get(ctx context.Context, rawID string) (*QRCodeDTO, error) {
	id, err := qrcode.NewCodeID(rawID)
	if err != nil {
		return nil, err
	}
	code, err := s.codeRepo.FindByID(s.txManager.Reader(ctx), id)
	if err != nil {
		return nil, err
	}
	dto := toDTO(code)
	return &dto, nil
}

// List 依建立順序列出
func (s *QueryService) List(ctx context.Context, query ListQuery) ([]QRCodeDTO, error) {
	var mode *qrcode.Mode
	if strings.TrimSpace(query.Mode) != "" {
		m, err := qrcode.ParseMode(query.Mode)
		if err != nil {
			return nil, err
		}
		mode = &m
	}

	codes, err := s.codeRepo.List(s.txManager.Reader(ctx), mode)
	if err != nil {
		return nil, fmt.Errorf("failed to list qr codes: %w", err)
	}
	result := make([]QRCodeDTO, 0, len(codes))
	for _, c := range codes {
		result = append(result, toDTO(c))
	}
	return result, nil
}
