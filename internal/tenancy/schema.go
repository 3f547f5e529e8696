package tenancy

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/echodesk/echodesk-api/internal/domain"
	"github.com/echodesk/echodesk-api/pkg/logger"
)

var ErrInvalidSchemaName = errors.New("invalid schema name")

// Postgres identifier grammar for schema names; also what tenant registration
// enforces, so anything else here is an attack or a bug.
var schemaNamePattern = regexp.MustCompile(`^[a-z][a-z0-9_]{0,62}$`)

// ValidSchemaName reports whether a candidate schema name is acceptable for
// tenant registration and schema binding.
func ValidSchemaName(name string) bool {
	return name != domain.PublicSchemaName && schemaNamePattern.MatchString(name)
}

// SchemaSwitcher binds a request to a tenant's schema. Each bind opens a
// transaction and applies SET LOCAL search_path, so the binding is scoped to
// that transaction and can never leak onto a pooled connection.
type SchemaSwitcher struct {
	db     *gorm.DB
	logger *logger.Logger
}

func NewSchemaSwitcher(db *gorm.DB, log *logger.Logger) *SchemaSwitcher {
	return &SchemaSwitcher{
		db:     db,
		logger: log,
	}
}

// Bind returns a transaction-scoped handle with the tenant's schema first on
// the search path. On failure the transaction is rolled back before the error
// is returned, so an aborted transaction cannot poison the connection for
// later requests on other tenants.
func (s *SchemaSwitcher) Bind(ctx context.Context, schemaName string) (*gorm.DB, error) {
	if !schemaNamePattern.MatchString(schemaName) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSchemaName, schemaName)
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, fmt.Errorf("failed to begin schema transaction: %w", tx.Error)
	}

	if err := tx.Exec(fmt.Sprintf(`SET LOCAL search_path TO %q, public`, schemaName)).Error; err != nil {
		s.logger.Error("failed to bind tenant schema", err, zap.String("schema", schemaName))
		if rbErr := tx.Rollback().Error; rbErr != nil {
			s.logger.Error("rollback after failed schema bind", rbErr, zap.String("schema", schemaName))
		}
		return nil, err
	}

	return tx, nil
}

// Release ends a schema binding: commit when the request succeeded, rollback
// otherwise.
func (s *SchemaSwitcher) Release(tx *gorm.DB, ok bool) {
	if tx == nil {
		return
	}
	if ok {
		if err := tx.Commit().Error; err != nil {
			s.logger.Error("failed to commit tenant schema transaction", err)
		}
		return
	}
	if err := tx.Rollback().Error; err != nil {
		s.logger.Error("failed to roll back tenant schema transaction", err)
	}
}
