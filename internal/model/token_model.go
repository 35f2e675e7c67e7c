package model

import (
	"time"
)

// TokenModel 农作物代币模型
type TokenModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// 关联信息
	CropId   int64 `json:"crop_id" gorm:"not null"`
	FarmerId int64 `json:"farmer_id" gorm:"not null"`

	// 发行信息
	TokenCount    int64   `json:"token_count"`
	PricePerToken int64   `json:"price_per_token"` // 最小货币单位
	TokensSold    int64   `json:"tokens_sold" gorm:"default:0"`
	ExpectedROI   float64 `json:"expected_roi"` // 百分比，如 9.5 表示 9.5%
	Currency      string  `json:"currency" gorm:"default:'USDT'"`

	// 时间信息
	FundingDeadline *time.Time `json:"funding_deadline"`

	// 状态
	IsFunded bool        `json:"is_funded" gorm:"default:false"`
	Status   TokenStatus `json:"status" gorm:"default:'pending'"`
}

// TokenStatus 代币审核状态
type TokenStatus string

const (
	TokenStatusPending  TokenStatus = "pending"  // 待审核
	TokenStatusVerified TokenStatus = "verified" // 已审核
	TokenStatusRejected TokenStatus = "rejected" // 已拒绝
)

// TableName 自定义表名
func (TokenModel) TableName() string {
	return "token"
}
