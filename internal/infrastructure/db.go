package infrastructure

import (
	"Ecclesia/config"
	"Ecclesia/internal/domain/audit"
	"Ecclesia/internal/domain/category"
	"Ecclesia/internal/domain/church"
	"Ecclesia/internal/domain/dailycash"
	"Ecclesia/internal/domain/member"
	"Ecclesia/internal/domain/notification"
	"Ecclesia/internal/domain/payable"
	"Ecclesia/internal/domain/receivable"
	"Ecclesia/internal/domain/recurrence"
	"Ecclesia/internal/domain/transaction"
	"Ecclesia/internal/domain/user"
	"Ecclesia/internal/logger"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func NewDb(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{})
	if err != nil {
		logger.Error().
			Err(err).
			Str("host", cfg.Database.Host).
			Int("port", cfg.Database.Port).
			Str("database", cfg.Database.DBName).
			Msg("Falha ao conectar ao banco de dados")
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Error().Err(err).Msg("Falha ao obter instância do banco de dados")
		return nil, err
	}

	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	logger.Info().
		Str("host", cfg.Database.Host).
		Int("port", cfg.Database.Port).
		Str("database", cfg.Database.DBName).
		Msg("Conexão com banco de dados estabelecida com sucesso")

	if err := runMigrations(db); err != nil {
		return nil, err
	}

	return db, nil
}

func runMigrations(db *gorm.DB) error {
	logger.Info().Msg("Executando migrations...")

	entities := []interface{}{
		&church.Church{},
		&user.User{},
		&member.Member{},
		&category.Category{},
		&transaction.Transaction{},
		&dailycash.DailyCash{},
		&recurrence.Recurrence{},
		&payable.AccountPayable{},
		&receivable.AccountReceivable{},
		&audit.AuditLog{},
		&notification.Notification{},
	}

	for _, entity := range entities {
		if err := db.AutoMigrate(entity); err != nil {
			logger.Error().
				Err(err).
				Str("entity", getEntityName(entity)).
				Msg("Erro ao migrar entidade")
			return err
		}
	}

	logger.Info().Msg("Migrations executadas com sucesso!")
	return nil
}

func getEntityName(entity interface{}) string {
	switch entity.(type) {
	case *church.Church:
		return "Church"
	case *user.User:
		return "User"
	case *member.Member:
		return "Member"
	case *category.Category:
		return "Category"
	case *transaction.Transaction:
		return "Transaction"
	case *dailycash.DailyCash:
		return "DailyCash"
	case *recurrence.Recurrence:
		return "Recurrence"
	case *payable.AccountPayable:
		return "AccountPayable"
	case *receivable.AccountReceivable:
		return "AccountReceivable"
	case *audit.AuditLog:
		return "AuditLog"
	case *notification.Notification:
		return "Notification"
	default:
		return "Unknown"
	}
}
