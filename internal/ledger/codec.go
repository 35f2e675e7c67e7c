package ledger

import (
	"math"
	"math/big"
	"time"

	"github.com/cropchain/sync-service/internal/model"
	"github.com/ethereum/go-ethereum/common"
)

// PlaceholderAddress 农户钱包地址未知时使用的占位地址。
// 这是一个公认的黑洞地址，不可能作为真实的收款目标，
// 写入前调用方必须显式记录降级日志（见 sync 包）。
var PlaceholderAddress = common.HexToAddress("0x000000000000000000000000000000000000dEaD")

// roi 以基点存储，uint 上限之外的值视为数据错误
const maxROIBasisPoints = 1_000_000

// HarvestDatePolicy 收获日期推导策略：记录没有明确收获日期时由募资截止日推导
type HarvestDatePolicy func(fundingDeadline time.Time) time.Time

// DefaultHarvestDate 默认策略：募资截止日次年的1月1日（UTC）
func DefaultHarvestDate(fundingDeadline time.Time) time.Time {
	year := fundingDeadline.UTC().Year() + 1
	return time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
}

// EncodedInvestment 按合约参数类型编码后的投资记录
type EncodedInvestment struct {
	ContractId          *big.Int
	TokenId             *big.Int
	FarmerId            *big.Int
	InvestorId          *big.Int
	FarmerAddress       common.Address
	CropName            string
	CropVariety         string
	PricePerToken       *big.Int
	TokenCount          *big.Int
	ExpectedROI         *big.Int // 基点，9.5% -> 950
	FundingDeadline     *big.Int // UNIX 秒
	ExpectedHarvestDate *big.Int // UNIX 秒
	DeliveryType        uint8    // 0 = money, 1 = product
}

// Args 按 createInvestment 的参数顺序展开，顺序是链上接口的一部分
func (e *EncodedInvestment) Args() []interface{} {
	return []interface{}{
		e.ContractId,
		e.TokenId,
		e.FarmerId,
		e.InvestorId,
		e.FarmerAddress,
		e.CropName,
		e.CropVariety,
		e.PricePerToken,
		e.TokenCount,
		e.ExpectedROI,
		e.FundingDeadline,
		e.ExpectedHarvestDate,
		e.DeliveryType,
	}
}

// UsedPlaceholderAddress 是否使用了占位地址
func (e *EncodedInvestment) UsedPlaceholderAddress() bool {
	return e.FarmerAddress == PlaceholderAddress
}

// Codec 规范记录与链上编码之间的确定性转换
type Codec struct {
	harvestDatePolicy HarvestDatePolicy
}

// NewCodec 创建编解码器，policy 为空时使用默认收获日期策略
func NewCodec(policy HarvestDatePolicy) *Codec {
	if policy == nil {
		policy = DefaultHarvestDate
	}
	return &Codec{harvestDatePolicy: policy}
}

// Encode 把规范投资记录编码为合约参数
func (c *Codec) Encode(inv *model.Investment) (*EncodedInvestment, error) {
	if inv.ContractId <= 0 {
		return nil, &EncodingError{Field: "contract_id", Reason: "must be positive"}
	}

	roi, err := encodeROI(inv.ExpectedROI)
	if err != nil {
		return nil, err
	}

	deliveryType, err := encodeDeliveryType(inv.DeliveryType)
	if err != nil {
		return nil, err
	}

	deadline, err := encodeDate("funding_deadline", inv.FundingDeadline)
	if err != nil {
		return nil, err
	}

	// 没有明确收获日期时按策略推导
	harvestDate := c.harvestDatePolicy(inv.FundingDeadline)
	if inv.ExpectedHarvestDate != nil {
		harvestDate = *inv.ExpectedHarvestDate
	}
	harvest, err := encodeDate("expected_harvest_date", harvestDate)
	if err != nil {
		return nil, err
	}
	if harvest.Cmp(deadline) <= 0 {
		return nil, &EncodingError{Field: "expected_harvest_date", Reason: "must postdate funding deadline"}
	}

	farmerAddress := PlaceholderAddress
	if inv.FarmerAddress != "" {
		if !common.IsHexAddress(inv.FarmerAddress) {
			return nil, &EncodingError{Field: "farmer_address", Reason: "not a valid chain address"}
		}
		farmerAddress = common.HexToAddress(inv.FarmerAddress)
	}

	return &EncodedInvestment{
		ContractId:          big.NewInt(inv.ContractId),
		TokenId:             big.NewInt(inv.TokenId),
		FarmerId:            big.NewInt(inv.FarmerId),
		InvestorId:          big.NewInt(inv.InvestorId),
		FarmerAddress:       farmerAddress,
		CropName:            inv.CropName,
		CropVariety:         inv.CropVariety,
		PricePerToken:       big.NewInt(inv.PricePerToken),
		TokenCount:          big.NewInt(inv.TokenCount),
		ExpectedROI:         roi,
		FundingDeadline:     deadline,
		ExpectedHarvestDate: harvest,
		DeliveryType:        deliveryType,
	}, nil
}

// encodeROI 百分比转基点，四舍五入
func encodeROI(roi float64) (*big.Int, error) {
	if math.IsNaN(roi) || math.IsInf(roi, 0) {
		return nil, &EncodingError{Field: "expected_roi", Reason: "not a finite number"}
	}
	scaled := math.Round(roi * 100)
	if scaled < 0 {
		return nil, &EncodingError{Field: "expected_roi", Reason: "must not be negative"}
	}
	if scaled > maxROIBasisPoints {
		return nil, &EncodingError{Field: "expected_roi", Reason: "exceeds ledger integer width"}
	}
	return big.NewInt(int64(scaled)), nil
}

// encodeDeliveryType 交付方式转枚举值
func encodeDeliveryType(dt model.DeliveryType) (uint8, error) {
	switch dt {
	case model.DeliveryTypeMoney:
		return 0, nil
	case model.DeliveryTypeProduct:
		return 1, nil
	default:
		return 0, &EncodingError{Field: "delivery_type", Reason: "unknown value " + string(dt)}
	}
}

// encodeDate 日期转 UTC 零点的 UNIX 秒
func encodeDate(field string, t time.Time) (*big.Int, error) {
	if t.IsZero() {
		return nil, &EncodingError{Field: field, Reason: "date is not set"}
	}
	utc := t.UTC()
	midnight := time.Date(utc.Year(), utc.Month(), utc.Day(), 0, 0, 0, 0, time.UTC)
	epoch := midnight.Unix()
	if epoch < 0 {
		return nil, &EncodingError{Field: field, Reason: "date predates the UNIX epoch"}
	}
	return big.NewInt(epoch), nil
}

// Decode 把 investments 视图返回的定长元组解码为规范记录。
// 全零哨兵元组返回 ErrRecordNotFound。
func (c *Codec) Decode(values []interface{}) (*model.Investment, error) {
	if len(values) != 16 {
		return nil, &EncodingError{Field: "tuple", Reason: "unexpected field count"}
	}

	contractId, err := decodeUint(values[0], "contract_id")
	if err != nil {
		return nil, err
	}
	tokenId, err := decodeUint(values[1], "token_id")
	if err != nil {
		return nil, err
	}
	farmerId, err := decodeUint(values[2], "farmer_id")
	if err != nil {
		return nil, err
	}
	investorId, err := decodeUint(values[3], "investor_id")
	if err != nil {
		return nil, err
	}
	farmerAddress, ok := values[4].(common.Address)
	if !ok {
		return nil, &EncodingError{Field: "farmer_address", Reason: "not an address"}
	}
	cropName, ok := values[5].(string)
	if !ok {
		return nil, &EncodingError{Field: "crop_name", Reason: "not a string"}
	}
	cropVariety, ok := values[6].(string)
	if !ok {
		return nil, &EncodingError{Field: "crop_variety", Reason: "not a string"}
	}
	pricePerToken, err := decodeUint(values[7], "price_per_token")
	if err != nil {
		return nil, err
	}
	tokenCount, err := decodeUint(values[8], "token_count")
	if err != nil {
		return nil, err
	}
	tokensSold, err := decodeUint(values[9], "tokens_sold")
	if err != nil {
		return nil, err
	}
	roi, err := decodeUint(values[10], "expected_roi")
	if err != nil {
		return nil, err
	}
	deadline, err := decodeUint(values[11], "funding_deadline")
	if err != nil {
		return nil, err
	}
	harvest, err := decodeUint(values[12], "expected_harvest_date")
	if err != nil {
		return nil, err
	}
	deliveryRaw, ok := values[13].(uint8)
	if !ok {
		return nil, &EncodingError{Field: "delivery_type", Reason: "not a uint8"}
	}
	isFunded, ok := values[14].(bool)
	if !ok {
		return nil, &EncodingError{Field: "is_funded", Reason: "not a bool"}
	}
	createdAt, err := decodeUint(values[15], "creation_timestamp")
	if err != nil {
		return nil, err
	}

	// 合同ID为0且其余数值字段全零说明该ID从未写入
	if contractId == 0 && tokenId == 0 && farmerId == 0 && investorId == 0 &&
		pricePerToken == 0 && tokenCount == 0 && tokensSold == 0 &&
		roi == 0 && deadline == 0 && harvest == 0 && createdAt == 0 {
		return nil, ErrRecordNotFound
	}

	deliveryType, err := decodeDeliveryType(deliveryRaw)
	if err != nil {
		return nil, err
	}

	harvestDate := time.Unix(harvest, 0).UTC()

	return &model.Investment{
		ContractId:          contractId,
		TokenId:             tokenId,
		FarmerId:            farmerId,
		InvestorId:          investorId,
		FarmerAddress:       farmerAddress.Hex(),
		CropName:            cropName,
		CropVariety:         cropVariety,
		PricePerToken:       pricePerToken,
		TokenCount:          tokenCount,
		TokensSold:          tokensSold,
		ExpectedROI:         float64(roi) / 100,
		FundingDeadline:     time.Unix(deadline, 0).UTC(),
		ExpectedHarvestDate: &harvestDate,
		DeliveryType:        deliveryType,
		IsFunded:            isFunded,
		CreationTimestamp:   time.Unix(createdAt, 0).UTC(),
	}, nil
}

// decodeDeliveryType 枚举值转交付方式
func decodeDeliveryType(raw uint8) (model.DeliveryType, error) {
	switch raw {
	case 0:
		return model.DeliveryTypeMoney, nil
	case 1:
		return model.DeliveryTypeProduct, nil
	default:
		return "", &EncodingError{Field: "delivery_type", Reason: "unknown enum value"}
	}
}

// decodeUint 解析 uint256 字段
func decodeUint(v interface{}, field string) (int64, error) {
	b, ok := v.(*big.Int)
	if !ok {
		return 0, &EncodingError{Field: field, Reason: "not a uint"}
	}
	if !b.IsInt64() || b.Sign() < 0 {
		return 0, &EncodingError{Field: field, Reason: "out of range"}
	}
	return b.Int64(), nil
}
