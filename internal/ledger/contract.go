package ledger

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
)

// 投资合约ABI定义（写入函数与查询视图）。
// 参数顺序是链上接口的一部分，不能调整。
const investmentABI = `[
	{
		"inputs": [
			{"internalType": "uint256", "name": "contractId", "type": "uint256"},
			{"internalType": "uint256", "name": "tokenId", "type": "uint256"},
			{"internalType": "uint256", "name": "farmerId", "type": "uint256"},
			{"internalType": "uint256", "name": "investorId", "type": "uint256"},
			{"internalType": "address", "name": "farmerAddress", "type": "address"},
			{"internalType": "string", "name": "cropName", "type": "string"},
			{"internalType": "string", "name": "cropVariety", "type": "string"},
			{"internalType": "uint256", "name": "pricePerToken", "type": "uint256"},
			{"internalType": "uint256", "name": "tokenCount", "type": "uint256"},
			{"internalType": "uint256", "name": "expectedROI", "type": "uint256"},
			{"internalType": "uint256", "name": "fundingDeadline", "type": "uint256"},
			{"internalType": "uint256", "name": "expectedHarvestDate", "type": "uint256"},
			{"internalType": "uint8", "name": "deliveryType", "type": "uint8"}
		],
		"name": "createInvestment",
		"outputs": [],
		"stateMutability": "nonpayable",
		"type": "function"
	},
	{
		"inputs": [{"internalType": "uint256", "name": "", "type": "uint256"}],
		"name": "investments",
		"outputs": [
			{"internalType": "uint256", "name": "contractId", "type": "uint256"},
			{"internalType": "uint256", "name": "tokenId", "type": "uint256"},
			{"internalType": "uint256", "name": "farmerId", "type": "uint256"},
			{"internalType": "uint256", "name": "investorId", "type": "uint256"},
			{"internalType": "address", "name": "farmerAddress", "type": "address"},
			{"internalType": "string", "name": "cropName", "type": "string"},
			{"internalType": "string", "name": "cropVariety", "type": "string"},
			{"internalType": "uint256", "name": "pricePerToken", "type": "uint256"},
			{"internalType": "uint256", "name": "tokenCount", "type": "uint256"},
			{"internalType": "uint256", "name": "tokensSold", "type": "uint256"},
			{"internalType": "uint256", "name": "expectedROI", "type": "uint256"},
			{"internalType": "uint256", "name": "fundingDeadline", "type": "uint256"},
			{"internalType": "uint256", "name": "expectedHarvestDate", "type": "uint256"},
			{"internalType": "uint8", "name": "deliveryType", "type": "uint8"},
			{"internalType": "bool", "name": "isFunded", "type": "bool"},
			{"internalType": "uint256", "name": "creationTimestamp", "type": "uint256"}
		],
		"stateMutability": "view",
		"type": "function"
	}
]`

// Contract 投资合约包装器
type Contract struct {
	contract *bind.BoundContract
	address  common.Address
	abi      abi.ABI
}

// NewContract 创建合约实例
func NewContract(client *ethclient.Client, address string) (*Contract, error) {
	if !common.IsHexAddress(address) {
		return nil, fmt.Errorf("invalid contract address: %s", address)
	}

	// 解析ABI
	parsedABI, err := abi.JSON(strings.NewReader(investmentABI))
	if err != nil {
		return nil, fmt.Errorf("failed to parse contract ABI: %w", err)
	}

	// 解析合约地址
	contractAddr := common.HexToAddress(address)

	// 创建合约绑定
	contract := bind.NewBoundContract(contractAddr, parsedABI, client, client, client)

	return &Contract{
		contract: contract,
		address:  contractAddr,
		abi:      parsedABI,
	}, nil
}

// GetAddress 获取合约地址
func (c *Contract) GetAddress() common.Address {
	return c.address
}

// GetABI 获取合约ABI
func (c *Contract) GetABI() abi.ABI {
	return c.abi
}
