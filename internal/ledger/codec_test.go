package ledger

import (
	"math/big"
	"testing"
	"time"

	"github.com/cropchain/sync-service/internal/model"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validInvestment() *model.Investment {
	deadline := time.Date(2025, time.August, 15, 0, 0, 0, 0, time.UTC)
	return &model.Investment{
		ContractId:      1,
		TokenId:         3,
		FarmerId:        4,
		InvestorId:      2,
		FarmerAddress:   "0x70997970C51812dc3A010C7d01b50e0d17dc79C8",
		CropName:        "Oranges",
		CropVariety:     "Red",
		PricePerToken:   10,
		TokenCount:      50,
		ExpectedROI:     9.5,
		FundingDeadline: deadline,
		DeliveryType:    model.DeliveryTypeMoney,
	}
}

func TestEncodeScalesROIToBasisPoints(t *testing.T) {
	codec := NewCodec(nil)

	inv := validInvestment()
	inv.ExpectedROI = 9.5
	enc, err := codec.Encode(inv)
	require.NoError(t, err)
	assert.Equal(t, int64(950), enc.ExpectedROI.Int64())

	// 四舍五入到最近的基点
	inv.ExpectedROI = 7.126
	enc, err = codec.Encode(inv)
	require.NoError(t, err)
	assert.Equal(t, int64(713), enc.ExpectedROI.Int64())
}

func TestEncodeRejectsInvalidROI(t *testing.T) {
	codec := NewCodec(nil)

	inv := validInvestment()
	inv.ExpectedROI = -1.5
	_, err := codec.Encode(inv)
	var encErr *EncodingError
	require.ErrorAs(t, err, &encErr)
	assert.Equal(t, "expected_roi", encErr.Field)

	inv.ExpectedROI = 1e12
	_, err = codec.Encode(inv)
	require.ErrorAs(t, err, &encErr)
}

func TestEncodeDeliveryType(t *testing.T) {
	codec := NewCodec(nil)

	inv := validInvestment()
	inv.DeliveryType = model.DeliveryTypeMoney
	enc, err := codec.Encode(inv)
	require.NoError(t, err)
	assert.Equal(t, uint8(0), enc.DeliveryType)

	inv.DeliveryType = model.DeliveryTypeProduct
	enc, err = codec.Encode(inv)
	require.NoError(t, err)
	assert.Equal(t, uint8(1), enc.DeliveryType)

	inv.DeliveryType = "barter"
	_, err = codec.Encode(inv)
	var encErr *EncodingError
	require.ErrorAs(t, err, &encErr)
	assert.Equal(t, "delivery_type", encErr.Field)
}

func TestEncodeDatesAsUTCMidnightEpoch(t *testing.T) {
	codec := NewCodec(nil)

	inv := validInvestment()
	// 带时区和时刻的输入也要落到 UTC 零点
	loc := time.FixedZone("UTC+8", 8*3600)
	inv.FundingDeadline = time.Date(2025, time.August, 15, 18, 30, 0, 0, loc)

	enc, err := codec.Encode(inv)
	require.NoError(t, err)

	want := time.Date(2025, time.August, 15, 0, 0, 0, 0, time.UTC).Unix()
	assert.Equal(t, want, enc.FundingDeadline.Int64())
}

func TestEncodeDefaultHarvestDate(t *testing.T) {
	codec := NewCodec(nil)

	inv := validInvestment()
	inv.FundingDeadline = time.Date(2025, time.August, 15, 0, 0, 0, 0, time.UTC)
	inv.ExpectedHarvestDate = nil

	enc, err := codec.Encode(inv)
	require.NoError(t, err)

	// 募资截止日次年的1月1日
	want := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC).Unix()
	assert.Equal(t, want, enc.ExpectedHarvestDate.Int64())
}

func TestEncodeExplicitHarvestDateWins(t *testing.T) {
	codec := NewCodec(nil)

	inv := validInvestment()
	harvest := time.Date(2025, time.November, 20, 0, 0, 0, 0, time.UTC)
	inv.ExpectedHarvestDate = &harvest

	enc, err := codec.Encode(inv)
	require.NoError(t, err)
	assert.Equal(t, harvest.Unix(), enc.ExpectedHarvestDate.Int64())
}

func TestEncodeHarvestDatePolicyOverride(t *testing.T) {
	fixed := time.Date(2027, time.March, 1, 0, 0, 0, 0, time.UTC)
	codec := NewCodec(func(time.Time) time.Time { return fixed })

	inv := validInvestment()
	enc, err := codec.Encode(inv)
	require.NoError(t, err)
	assert.Equal(t, fixed.Unix(), enc.ExpectedHarvestDate.Int64())
}

func TestEncodeRejectsHarvestBeforeDeadline(t *testing.T) {
	codec := NewCodec(nil)

	inv := validInvestment()
	harvest := inv.FundingDeadline.AddDate(0, -1, 0)
	inv.ExpectedHarvestDate = &harvest

	_, err := codec.Encode(inv)
	var encErr *EncodingError
	require.ErrorAs(t, err, &encErr)
	assert.Equal(t, "expected_harvest_date", encErr.Field)
}

func TestEncodeRejectsUnsetDeadline(t *testing.T) {
	codec := NewCodec(nil)

	inv := validInvestment()
	inv.FundingDeadline = time.Time{}

	_, err := codec.Encode(inv)
	var encErr *EncodingError
	require.ErrorAs(t, err, &encErr)
	assert.Equal(t, "funding_deadline", encErr.Field)
}

func TestEncodeSubstitutesPlaceholderAddress(t *testing.T) {
	codec := NewCodec(nil)

	inv := validInvestment()
	inv.FarmerAddress = ""

	enc, err := codec.Encode(inv)
	require.NoError(t, err)
	assert.Equal(t, PlaceholderAddress, enc.FarmerAddress)
	assert.True(t, enc.UsedPlaceholderAddress())
}

func TestEncodeRejectsMalformedAddress(t *testing.T) {
	codec := NewCodec(nil)

	inv := validInvestment()
	inv.FarmerAddress = "not-an-address"

	_, err := codec.Encode(inv)
	var encErr *EncodingError
	require.ErrorAs(t, err, &encErr)
	assert.Equal(t, "farmer_address", encErr.Field)
}

func TestArgsOrderMatchesWireContract(t *testing.T) {
	codec := NewCodec(nil)

	enc, err := codec.Encode(validInvestment())
	require.NoError(t, err)

	args := enc.Args()
	require.Len(t, args, 13)
	assert.Equal(t, enc.ContractId, args[0])
	assert.Equal(t, enc.TokenId, args[1])
	assert.Equal(t, enc.FarmerId, args[2])
	assert.Equal(t, enc.InvestorId, args[3])
	assert.Equal(t, enc.FarmerAddress, args[4])
	assert.Equal(t, enc.CropName, args[5])
	assert.Equal(t, enc.CropVariety, args[6])
	assert.Equal(t, enc.PricePerToken, args[7])
	assert.Equal(t, enc.TokenCount, args[8])
	assert.Equal(t, enc.ExpectedROI, args[9])
	assert.Equal(t, enc.FundingDeadline, args[10])
	assert.Equal(t, enc.ExpectedHarvestDate, args[11])
	assert.Equal(t, enc.DeliveryType, args[12])
}

// tupleFromEncoded 模拟 investments 视图的返回元组
func tupleFromEncoded(enc *EncodedInvestment, tokensSold int64, isFunded bool, createdAt int64) []interface{} {
	return []interface{}{
		enc.ContractId,
		enc.TokenId,
		enc.FarmerId,
		enc.InvestorId,
		enc.FarmerAddress,
		enc.CropName,
		enc.CropVariety,
		enc.PricePerToken,
		enc.TokenCount,
		big.NewInt(tokensSold),
		enc.ExpectedROI,
		enc.FundingDeadline,
		enc.ExpectedHarvestDate,
		enc.DeliveryType,
		isFunded,
		big.NewInt(createdAt),
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	codec := NewCodec(nil)

	inv := validInvestment()
	inv.DeliveryType = model.DeliveryTypeProduct
	enc, err := codec.Encode(inv)
	require.NoError(t, err)

	createdAt := time.Date(2025, time.July, 1, 12, 0, 0, 0, time.UTC).Unix()
	decoded, err := codec.Decode(tupleFromEncoded(enc, 7, true, createdAt))
	require.NoError(t, err)

	assert.Equal(t, inv.ContractId, decoded.ContractId)
	assert.Equal(t, inv.TokenId, decoded.TokenId)
	assert.Equal(t, inv.FarmerId, decoded.FarmerId)
	assert.Equal(t, inv.InvestorId, decoded.InvestorId)
	assert.Equal(t, common.HexToAddress(inv.FarmerAddress).Hex(), decoded.FarmerAddress)
	assert.Equal(t, inv.CropName, decoded.CropName)
	assert.Equal(t, inv.CropVariety, decoded.CropVariety)
	assert.Equal(t, inv.PricePerToken, decoded.PricePerToken)
	assert.Equal(t, inv.TokenCount, decoded.TokenCount)
	assert.Equal(t, int64(7), decoded.TokensSold)
	assert.Equal(t, inv.ExpectedROI, decoded.ExpectedROI)
	assert.Equal(t, inv.FundingDeadline, decoded.FundingDeadline)
	require.NotNil(t, decoded.ExpectedHarvestDate)
	assert.Equal(t, DefaultHarvestDate(inv.FundingDeadline), *decoded.ExpectedHarvestDate)
	assert.Equal(t, model.DeliveryTypeProduct, decoded.DeliveryType)
	assert.True(t, decoded.IsFunded)
	assert.Equal(t, createdAt, decoded.CreationTimestamp.Unix())
}

func TestDecodeZeroTupleIsRecordNotFound(t *testing.T) {
	codec := NewCodec(nil)

	zero := []interface{}{
		big.NewInt(0), big.NewInt(0), big.NewInt(0), big.NewInt(0),
		common.Address{}, "", "",
		big.NewInt(0), big.NewInt(0), big.NewInt(0), big.NewInt(0),
		big.NewInt(0), big.NewInt(0),
		uint8(0), false, big.NewInt(0),
	}

	_, err := codec.Decode(zero)
	assert.ErrorIs(t, err, ErrRecordNotFound)
}

func TestDecodeRejectsMalformedTuple(t *testing.T) {
	codec := NewCodec(nil)

	// 字段数量不对
	_, err := codec.Decode([]interface{}{big.NewInt(1)})
	var encErr *EncodingError
	require.ErrorAs(t, err, &encErr)

	// 未知的交付方式枚举值
	enc, err := codec.Encode(validInvestment())
	require.NoError(t, err)
	tuple := tupleFromEncoded(enc, 0, false, 100)
	tuple[13] = uint8(9)
	_, err = codec.Decode(tuple)
	require.ErrorAs(t, err, &encErr)
	assert.Equal(t, "delivery_type", encErr.Field)
}
