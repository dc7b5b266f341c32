package bootstrap

import (
	"context"
	"fmt"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"mellow-ai/internal/ai"
	"mellow-ai/internal/config"
	"mellow-ai/internal/model"
	mysqlclient "mellow-ai/internal/platform/mysql"
	rabbitmqclient "mellow-ai/internal/platform/rabbitmq"
	redisclient "mellow-ai/internal/platform/redis"
	"mellow-ai/internal/rag"
	"mellow-ai/internal/repository"
	"mellow-ai/internal/worker"
)

type App struct {
	Config     *config.Config
	MySQL      *gorm.DB
	Redis      *redis.Client
	MQConn     *amqp.Connection
	LLMClient  *ai.OpenAICompatibleClient
	Index      *rag.Index
	TurnWorker *worker.TurnPersistWorker

	StartedAt time.Time
}

func New(ctx context.Context) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config failed: %w", err)
	}

	mysqlDB, err := mysqlclient.New(ctx, cfg.MySQLDSN())
	if err != nil {
		return nil, err
	}
	if err := mysqlDB.AutoMigrate(&model.User{}, &model.Conversation{}, &model.DocumentChunk{}); err != nil {
		return nil, fmt.Errorf("auto migrate tables failed: %w", err)
	}

	redisCli, err := redisclient.New(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		return nil, err
	}

	mqConn, err := rabbitmqclient.New(cfg.RabbitMQ.URL)
	if err != nil {
		return nil, err
	}

	providerTimeout := time.Duration(cfg.RAG.ProviderTimeoutSeconds) * time.Second
	llmClient := ai.NewOpenAICompatibleClient(providerTimeout)
	embedder := ai.NewEmbeddingClient(llmClient, ai.EmbeddingConfig{
		BaseURL: cfg.OpenAI.BaseURL,
		APIKey:  cfg.OpenAI.APIKey,
		Model:   cfg.OpenAI.EmbeddingModel,
	})
	index := rag.NewIndex(embedder, repository.NewChunkRepository(mysqlDB))

	turnRepo := repository.NewConversationRepository(mysqlDB)
	turnWorker := worker.NewTurnPersistWorker(mqConn, turnRepo, cfg.RabbitMQ.PersistQueue)
	if err := turnWorker.Start(ctx); err != nil {
		return nil, fmt.Errorf("start turn worker failed: %w", err)
	}

	log.Printf("bootstrap complete: app=%s env=%s", cfg.App.Name, cfg.App.Env)
	return &App{
		Config:     cfg,
		MySQL:      mysqlDB,
		Redis:      redisCli,
		MQConn:     mqConn,
		LLMClient:  llmClient,
		Index:      index,
		TurnWorker: turnWorker,
		StartedAt:  time.Now(),
	}, nil
}

func (a *App) Close() error {
	var closeErr error
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			closeErr = err
		}
	}
	if a.TurnWorker != nil {
		a.TurnWorker.Close()
	}
	if a.MQConn != nil {
		if err := a.MQConn.Close(); err != nil {
			closeErr = err
		}
	}
	if a.MySQL != nil {
		sqlDB, err := a.MySQL.DB()
		if err == nil {
			if err := sqlDB.Close(); err != nil {
				closeErr = err
			}
		}
	}
	return closeErr
}
