package chain

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"strings"

	"github.com/cropchain/sync-service/internal/config"
	"github.com/cropchain/sync-service/internal/logger"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
)

// Client 单链客户端，持有唯一的签名身份
type Client struct {
	client     *ethclient.Client
	privateKey *ecdsa.PrivateKey
	chainId    int64
}

// Init 初始化链客户端
func Init(cfg config.ChainConfig) (*Client, error) {
	// 验证链类型
	supportedTypes := []string{"ethereum", "polygon", "bsc", "arbitrum", "optimism"}
	isSupported := false
	for _, supportedType := range supportedTypes {
		if cfg.ChainType == supportedType {
			isSupported = true
			break
		}
	}
	if !isSupported {
		return nil, fmt.Errorf("unsupported chain type %s, supported types: %s",
			cfg.ChainType, strings.Join(supportedTypes, ", "))
	}

	if cfg.RpcUrl == "" {
		return nil, fmt.Errorf("no RPC URL configured")
	}

	// 连接链客户端
	logger.Info("Creating %s client connection (RPC: %s)", cfg.ChainType, cfg.RpcUrl)
	client, err := ethclient.Dial(cfg.RpcUrl)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s client: %w", cfg.ChainType, err)
	}

	// 测试连接
	if _, err := client.BlockNumber(context.Background()); err != nil {
		client.Close()
		return nil, fmt.Errorf("client connection test failed (%s): %w", cfg.ChainType, err)
	}

	// 解析私钥
	privateKey, err := crypto.HexToECDSA(strings.TrimPrefix(cfg.PrivateKey, "0x"))
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to parse private key: %w", err)
	}

	logger.Info("Successfully created %s client (chain id: %d)", cfg.ChainType, cfg.ChainId)

	return &Client{
		client:     client,
		privateKey: privateKey,
		chainId:    cfg.ChainId,
	}, nil
}

// GetClient 获取底层客户端
func (c *Client) GetClient() *ethclient.Client {
	return c.client
}

// GetAuth 获取交易授权
func (c *Client) GetAuth() (*bind.TransactOpts, error) {
	auth, err := bind.NewKeyedTransactorWithChainID(c.privateKey, big.NewInt(c.chainId))
	if err != nil {
		return nil, fmt.Errorf("failed to create transactor: %w", err)
	}
	return auth, nil
}

// GetAccountAddress 获取签名账户地址
func (c *Client) GetAccountAddress() common.Address {
	return crypto.PubkeyToAddress(c.privateKey.PublicKey)
}

// Close 关闭客户端
func (c *Client) Close() {
	if c.client != nil {
		c.client.Close()
	}
	logger.Info("Chain client closed")
}
