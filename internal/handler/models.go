package handler

import (
	"time"

	"github.com/cropchain/sync-service/internal/model"
)

// InvestmentResponse 链上投资记录响应模型
type InvestmentResponse struct {
	ContractId          int64     `json:"contractId"`
	TokenId             int64     `json:"tokenId"`
	FarmerId            int64     `json:"farmerId"`
	InvestorId          int64     `json:"investorId"`
	FarmerAddress       string    `json:"farmerAddress"`
	CropName            string    `json:"cropName"`
	CropVariety         string    `json:"cropVariety"`
	PricePerToken       int64     `json:"pricePerToken"`
	TokenCount          int64     `json:"tokenCount"`
	TokensSold          int64     `json:"tokensSold"`
	ExpectedROI         float64   `json:"expectedRoi"`
	FundingDeadline     time.Time `json:"fundingDeadline"`
	ExpectedHarvestDate time.Time `json:"expectedHarvestDate"`
	DeliveryType        string    `json:"deliveryType"`
	IsFunded            bool      `json:"isFunded"`
	CreationTimestamp   time.Time `json:"creationTimestamp"`
}

// ToInvestmentResponse 将规范记录转换为响应模型
func ToInvestmentResponse(inv *model.Investment) InvestmentResponse {
	resp := InvestmentResponse{
		ContractId:        inv.ContractId,
		TokenId:           inv.TokenId,
		FarmerId:          inv.FarmerId,
		InvestorId:        inv.InvestorId,
		FarmerAddress:     inv.FarmerAddress,
		CropName:          inv.CropName,
		CropVariety:       inv.CropVariety,
		PricePerToken:     inv.PricePerToken,
		TokenCount:        inv.TokenCount,
		TokensSold:        inv.TokensSold,
		ExpectedROI:       inv.ExpectedROI,
		FundingDeadline:   inv.FundingDeadline,
		DeliveryType:      string(inv.DeliveryType),
		IsFunded:          inv.IsFunded,
		CreationTimestamp: inv.CreationTimestamp,
	}
	if inv.ExpectedHarvestDate != nil {
		resp.ExpectedHarvestDate = *inv.ExpectedHarvestDate
	}
	return resp
}
