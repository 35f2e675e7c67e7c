package logic

import (
	"errors"
	"fmt"
	"time"

	"github.com/cropchain/sync-service/internal/model"
	"gorm.io/gorm"
)

// ErrNotFound 联查结果为空（合同不存在或外键悬空）
var ErrNotFound = errors.New("investment record not found")

// ErrIncompleteRecord 必填字段缺失，该记录不能上链
var ErrIncompleteRecord = errors.New("investment record incomplete")

// InvestmentLogic 投资记录抽取逻辑：把合同、代币、农作物三表联查
// 组装为一条规范化的同步单元。只读，不产生副作用。
type InvestmentLogic struct {
	db *gorm.DB
}

// NewInvestmentLogic 创建投资记录抽取逻辑
func NewInvestmentLogic(db *gorm.DB) *InvestmentLogic {
	return &InvestmentLogic{db: db}
}

// BuildInvestment 按合同ID组装规范投资记录
func (l *InvestmentLogic) BuildInvestment(contractId int64) (*model.Investment, error) {
	var contract model.ContractModel
	if err := l.db.First(&contract, contractId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("contract %d: %w", contractId, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load contract %d: %w", contractId, err)
	}

	var token model.TokenModel
	if err := l.db.First(&token, contract.TokenId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("contract %d references missing token %d: %w",
				contractId, contract.TokenId, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load token %d: %w", contract.TokenId, err)
	}

	var crop model.CropModel
	if err := l.db.First(&crop, token.CropId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("token %d references missing crop %d: %w",
				token.Id, token.CropId, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load crop %d: %w", token.CropId, err)
	}

	// 农户钱包地址可能尚未登记，留空交给编码层降级处理
	var farmerAddress string
	var farmer model.FarmerModel
	if err := l.db.First(&farmer, contract.FarmerId).Error; err == nil {
		farmerAddress = farmer.WalletAddress
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to load farmer %d: %w", contract.FarmerId, err)
	}

	if err := validateRequiredFields(&contract, &token, &crop); err != nil {
		return nil, err
	}

	// 代币没有募资截止日时退回合同创建时间
	fundingDeadline := contract.CreatedAt
	if token.FundingDeadline != nil {
		fundingDeadline = *token.FundingDeadline
	}

	return &model.Investment{
		ContractId:          contract.Id,
		TokenId:             token.Id,
		FarmerId:            contract.FarmerId,
		InvestorId:          contract.InvestorId,
		FarmerAddress:       farmerAddress,
		CropName:            crop.CropName,
		CropVariety:         crop.Variety,
		PricePerToken:       contract.PricePerToken,
		TokenCount:          contract.Quantity,
		TokensSold:          token.TokensSold,
		ExpectedROI:         token.ExpectedROI,
		FundingDeadline:     fundingDeadline,
		ExpectedHarvestDate: contract.ExpectedHarvestDate,
		DeliveryType:        contract.DeliveryType,
	}, nil
}

// validateRequiredFields 校验上链必填字段
func validateRequiredFields(contract *model.ContractModel, token *model.TokenModel, crop *model.CropModel) error {
	if crop.CropName == "" {
		return fmt.Errorf("contract %d: crop name is empty: %w", contract.Id, ErrIncompleteRecord)
	}
	if crop.Variety == "" {
		return fmt.Errorf("contract %d: crop variety is empty: %w", contract.Id, ErrIncompleteRecord)
	}
	if contract.PricePerToken <= 0 {
		return fmt.Errorf("contract %d: price per token is not set: %w", contract.Id, ErrIncompleteRecord)
	}
	if contract.Quantity <= 0 {
		return fmt.Errorf("contract %d: quantity is not set: %w", contract.Id, ErrIncompleteRecord)
	}
	return nil
}

// SyncCandidate 批量同步候选：合同ID及其上链标记
type SyncCandidate struct {
	Id     int64
	Synced bool
}

// ListSyncCandidates 获取所有合同的同步候选列表，按ID升序
func (l *InvestmentLogic) ListSyncCandidates() ([]SyncCandidate, error) {
	var candidates []SyncCandidate
	err := l.db.Model(&model.ContractModel{}).
		Select("id", "synced").
		Order("id").
		Find(&candidates).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list sync candidates: %w", err)
	}
	return candidates, nil
}

// ListSyncedIds 获取所有已上链的合同ID，按ID升序
func (l *InvestmentLogic) ListSyncedIds() ([]int64, error) {
	var ids []int64
	err := l.db.Model(&model.ContractModel{}).
		Where("synced = ?", true).
		Order("id").
		Pluck("id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list synced contracts: %w", err)
	}
	return ids, nil
}

// MarkSynced 写入成功后记录交易哈希并标记已上链
func (l *InvestmentLogic) MarkSynced(contractId int64, txHash string) error {
	now := time.Now()
	updates := map[string]interface{}{
		"synced":        true,
		"chain_tx_hash": txHash,
		"synced_at":     &now,
	}
	if err := l.db.Model(&model.ContractModel{}).
		Where("id = ?", contractId).
		Updates(updates).Error; err != nil {
		return fmt.Errorf("failed to mark contract %d synced: %w", contractId, err)
	}
	return nil
}
