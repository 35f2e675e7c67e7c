package model

import (
	"time"
)

// CropModel 农作物模型
type CropModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// 基本信息
	CropName string `json:"crop_name" gorm:"not null" binding:"required"`
	Variety  string `json:"variety"`

	// 关联信息
	FarmerId         int64  `json:"farmer_id" gorm:"not null"`
	FarmLocation     string `json:"farm_location"`
	OrganicCertified bool   `json:"organic_certified" gorm:"default:false"`
}

// TableName 自定义表名
func (CropModel) TableName() string {
	return "crop"
}
