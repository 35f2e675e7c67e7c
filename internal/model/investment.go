package model

import (
	"time"
)

// Investment 同步单元：合同、代币、农作物联查后的规范化投资记录。
// 仅在一次同步过程中短暂存在，不落库。
type Investment struct {
	ContractId int64
	TokenId    int64
	FarmerId   int64
	InvestorId int64

	// 农户链上收款地址，可能为空（见 codec 的占位地址处理）
	FarmerAddress string

	CropName    string
	CropVariety string

	PricePerToken int64
	TokenCount    int64
	TokensSold    int64

	ExpectedROI float64 // 百分比，如 9.5 表示 9.5%

	FundingDeadline     time.Time
	ExpectedHarvestDate *time.Time // 为空时由收获日期策略推导

	DeliveryType DeliveryType

	// 链上维护的字段，只在读路径出现
	IsFunded          bool
	CreationTimestamp time.Time
}
