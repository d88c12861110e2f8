package bootstrap

import (
	"context"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"gorm.io/gorm"

	"github.com/Sandip75/backend-task/internal/config"
	"github.com/Sandip75/backend-task/internal/model"
	mysqlClient "github.com/Sandip75/backend-task/internal/platform/mysql"
	rabbitmqClient "github.com/Sandip75/backend-task/internal/platform/rabbitmq"
	"github.com/Sandip75/backend-task/internal/repository"
	"github.com/Sandip75/backend-task/internal/worker"
)

type App struct {
	Config            *config.Config
	MySQL             *gorm.DB
	MQConn            *amqp.Connection
	LoginRecordWorker *worker.LoginRecordWorker

	StartedAt time.Time
}

func New(ctx context.Context) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config failed: %w", err)
	}

	mysqlDB, err := mysqlClient.New(ctx, cfg.MySQLDSN())
	if err != nil {
		return nil, err
	}
	if err := mysqlDB.AutoMigrate(
		&model.User{},
		&model.LoginRecord{},
		&model.Post{},
		&model.Comment{},
	); err != nil {
		return nil, fmt.Errorf("auto migrate tables failed: %w", err)
	}

	mqConn, err := rabbitmqClient.New(ctx, cfg.RabbitMQ.URL)
	if err != nil {
		return nil, err
	}

	loginRecordRepo := repository.NewLoginRecordRepository(mysqlDB)
	loginRecordWorker := worker.NewLoginRecordWorker(mqConn, loginRecordRepo, cfg.RabbitMQ.LoginRecordQueue)
	if err := loginRecordWorker.Start(ctx); err != nil {
		return nil, fmt.Errorf("start login record worker failed: %w", err)
	}

	return &App{
		Config:            cfg,
		MySQL:             mysqlDB,
		MQConn:            mqConn,
		LoginRecordWorker: loginRecordWorker,
		StartedAt:         time.Now(),
	}, nil
}

func (a *App) Close() error {
	var closeErr error
	if a.LoginRecordWorker != nil {
		a.LoginRecordWorker.Close()
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
