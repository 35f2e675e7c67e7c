package main

import (
	"fmt"
	"time"

	"github.com/cropchain/sync-service/internal/chain"
	"github.com/cropchain/sync-service/internal/config"
	"github.com/cropchain/sync-service/internal/ledger"
	"github.com/cropchain/sync-service/internal/logger"
	"github.com/cropchain/sync-service/internal/logic"
	"github.com/cropchain/sync-service/internal/repository"
	"github.com/cropchain/sync-service/internal/sync"
	"gorm.io/gorm"
)

// app 按配置组装好的服务组件
type app struct {
	cfg         *config.Config
	db          *gorm.DB
	chainClient *chain.Client
	reader      ledger.Reader
	syncer      *sync.Syncer
	verifier    *sync.Verifier
}

// newApp 加载配置并初始化所有组件
func newApp() (*app, error) {
	cfg := config.Load()
	setupLogger(cfg.Log)

	// 初始化数据库
	db, err := repository.Init(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// 初始化链客户端
	chainClient, err := chain.Init(cfg.Chain)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize chain client: %w", err)
	}

	logger.Info("Using signing identity %s", chainClient.GetAccountAddress().Hex())

	// 初始化合约绑定
	contract, err := ledger.NewContract(chainClient.GetClient(), cfg.Chain.ContractAddress)
	if err != nil {
		chainClient.Close()
		return nil, fmt.Errorf("failed to initialize contract: %w", err)
	}

	codec := ledger.NewCodec(nil)
	writer := ledger.NewContractWriter(chainClient, contract,
		time.Duration(cfg.Chain.ConfirmTimeout)*time.Second)
	reader := ledger.NewContractReader(contract, codec,
		time.Duration(cfg.Chain.CallTimeout)*time.Second)

	investmentLogic := logic.NewInvestmentLogic(db)
	syncer := sync.NewSyncer(
		investmentLogic,
		codec,
		writer,
		cfg.Sync.RetryCount,
		time.Duration(cfg.Sync.RetryBackoff)*time.Second,
		cfg.Sync.RequireFarmerAddress,
	)
	verifier := sync.NewVerifier(investmentLogic, reader, 0)

	return &app{
		cfg:         cfg,
		db:          db,
		chainClient: chainClient,
		reader:      reader,
		syncer:      syncer,
		verifier:    verifier,
	}, nil
}

// Close 释放资源
func (a *app) Close() {
	if a.chainClient != nil {
		a.chainClient.Close()
	}
	logger.Sync()
}

// setupLogger 按配置切换默认日志器
func setupLogger(cfg config.LogConfig) {
	level := logger.ParseLogLevel(cfg.Level)

	var l *logger.Logger
	var err error
	if cfg.Output == "file" {
		l, err = logger.NewWithFileRotation(level, cfg.File)
	} else {
		l, err = logger.New(level)
	}
	if err != nil {
		logger.Fatal("Failed to configure logger: %v", err)
	}

	logger.SetDefaultLogger(l)
}
