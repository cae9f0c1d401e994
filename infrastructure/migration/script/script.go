package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/c4-store-api/infrastructure/database/postgres"
	"github.com/vfg2006/c4-store-api/internal/config"
	"github.com/vfg2006/c4-store-api/internal/domain"
	"github.com/vfg2006/c4-store-api/pkg/utils"
)

const healthCheckTable = "_health_check"

func setupLogger() {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
	logrus.Info("Iniciando script de migração...")
}

// createTable cria a tabela com as colunas reservadas. Os demais campos ficam em data.
func createTable(ctx context.Context, tx *sql.Tx, table string) error {
	logrus.Infof("Criando tabela %s...", table)
	startTime := time.Now()

	statements := []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			id         TEXT PRIMARY KEY,
			user_id    TEXT NOT NULL DEFAULT '%s',
			data       JSONB NOT NULL DEFAULT '{}'::jsonb,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`, table, domain.DemoUserID),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS idx_%s_user_id ON %s (user_id)`, table, table),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS idx_%s_created_at ON %s (created_at DESC)`, table, table),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS idx_%s_data ON %s USING GIN (data)`, table, table),
	}

	for _, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return errors.Wrapf(err, "erro ao criar tabela %s", table)
		}
	}

	logrus.Infof("Tabela %s pronta em %v", table, time.Since(startTime))
	return nil
}

// createHealthCheck cria a tabela lida no teste de conexão com um registro
func createHealthCheck(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		id         TEXT PRIMARY KEY,
		checked_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`, healthCheckTable))
	if err != nil {
		return errors.Wrap(err, "erro ao criar tabela de verificação")
	}

	var count int
	if err := tx.QueryRowContext(ctx, fmt.Sprintf(`SELECT COUNT(*) FROM %s`, healthCheckTable)).Scan(&count); err != nil {
		return errors.Wrap(err, "erro ao consultar tabela de verificação")
	}
	if count > 0 {
		logrus.Info("Tabela de verificação já possui registro")
		return nil
	}

	id, err := utils.GenerateID("health")
	if err != nil {
		return errors.Wrap(err, "erro ao gerar id")
	}

	if _, err := tx.ExecContext(ctx, fmt.Sprintf(`INSERT INTO %s (id) VALUES ($1)`, healthCheckTable), id); err != nil {
		return errors.Wrap(err, "erro ao inserir registro de verificação")
	}

	logrus.Info("Registro de verificação inserido")
	return nil
}

func main() {
	setupLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao carregar configuração")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	conn, err := postgres.NewConnection(ctx, cfg.Database)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}
	defer conn.Close()

	logrus.Info("Conexão com o banco de dados estabelecida com sucesso")

	err = conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		for _, table := range domain.Tables() {
			if err := createTable(ctx, tx, table); err != nil {
				return err
			}
		}
		return createHealthCheck(ctx, tx)
	})
	if err != nil {
		logrus.WithError(err).Fatal("Migração falhou, transação revertida")
	}

	logrus.Infof("Migração concluída: %d tabelas", len(domain.Tables()))
}
