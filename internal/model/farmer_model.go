package model

import (
	"time"
)

// FarmerModel 农户模型
type FarmerModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// 基本信息
	Name    string `json:"name" gorm:"not null" binding:"required"`
	Country string `json:"country"`
	Region  string `json:"region"`
	Contact string `json:"contact"`

	// 链上收款地址（注册时可能为空）
	WalletAddress string `json:"wallet_address"`
}

// TableName 自定义表名
func (FarmerModel) TableName() string {
	return "farmer"
}
