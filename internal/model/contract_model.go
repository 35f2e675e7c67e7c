package model

import (
	"time"
)

// ContractModel 投资合同模型
type ContractModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// 关联信息
	TokenId    int64 `json:"token_id" gorm:"not null"`
	FarmerId   int64 `json:"farmer_id" gorm:"not null"`
	InvestorId int64 `json:"investor_id" gorm:"not null"`

	// 交易信息
	Quantity      int64        `json:"quantity"`
	PricePerToken int64        `json:"price_per_token"`
	TotalValue    int64        `json:"total_value"`
	DeliveryType  DeliveryType `json:"delivery_type"` // money 或 product

	// 收获信息（为空时由同步策略推导）
	ExpectedHarvestDate *time.Time `json:"expected_harvest_date"`

	// 履约状态
	PayoutStatus PayoutStatus `json:"payout_status" gorm:"default:'pending'"`

	// 上链信息
	Synced      bool       `json:"synced" gorm:"default:false;index"`
	ChainTxHash string     `json:"chain_tx_hash"`
	SyncedAt    *time.Time `json:"synced_at"`
}

// DeliveryType 交付方式
type DeliveryType string

const (
	DeliveryTypeMoney   DeliveryType = "money"   // 货币结算
	DeliveryTypeProduct DeliveryType = "product" // 实物交付
)

// PayoutStatus 履约状态
type PayoutStatus string

const (
	PayoutStatusPending   PayoutStatus = "pending"   // 待交付
	PayoutStatusDelivered PayoutStatus = "delivered" // 已交付
	PayoutStatusDefaulted PayoutStatus = "defaulted" // 已违约
)

// TableName 自定义表名
func (ContractModel) TableName() string {
	return "contract"
}
