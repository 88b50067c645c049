package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockDB creates a GORM DB backed by sqlmock
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
		TranslateError:         true,
	})
	require.NoError(t, err)

	return gormDB, mock, mockDB
}

func TestGormBrandRepository_FindByID(t *testing.T) {
	t.Run("finds existing brand", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormBrandRepository(gormDB)

		brandID := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "name", "handle", "logo_url", "description"}).
			AddRow(brandID, "Acme", "acme", "", "")

		mock.ExpectQuery(`SELECT \* FROM "brands" WHERE id = \$1 AND "brands"\."deleted_at" IS NULL ORDER BY .* LIMIT .*`).
			WithArgs(brandID, 1).
			WillReturnRows(rows)

		brand, err := repo.FindByID(context.Background(), brandID)

		assert.NoError(t, err)
		assert.NotNil(t, brand)
		assert.Equal(t, brandID, brand.ID)
		assert.Equal(t, "acme", brand.Handle)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrNotFound for missing brand", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormBrandRepository(gormDB)

		brandID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "brands" WHERE id = \$1 AND "brands"\."deleted_at" IS NULL ORDER BY .* LIMIT .*`).
			WithArgs(brandID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		brand, err := repo.FindByID(context.Background(), brandID)

		assert.Error(t, err)
		assert.Nil(t, brand)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormBrandRepository_FindByHandle(t *testing.T) {
	t.Run("finds brand by handle", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormBrandRepository(gormDB)

		brandID := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "name", "handle"}).
			AddRow(brandID, "Blue Mountain Coffee", "blue-mountain-coffee")

		mock.ExpectQuery(`SELECT \* FROM "brands" WHERE handle = \$1 AND "brands"\."deleted_at" IS NULL ORDER BY .* LIMIT .*`).
			WithArgs("blue-mountain-coffee", 1).
			WillReturnRows(rows)

		brand, err := repo.FindByHandle(context.Background(), "blue-mountain-coffee")

		assert.NoError(t, err)
		assert.NotNil(t, brand)
		assert.Equal(t, "Blue Mountain Coffee", brand.Name)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormBrandRepository_FindAll(t *testing.T) {
	t.Run("returns page and unpaginated count", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormBrandRepository(gormDB)

		mock.ExpectQuery(`SELECT count\(\*\) FROM "brands" WHERE "brands"\."deleted_at" IS NULL`).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

		rows := sqlmock.NewRows([]string{"id", "name", "handle"}).
			AddRow(uuid.New(), "Acme", "acme").
			AddRow(uuid.New(), "Globex", "globex")

		mock.ExpectQuery(`SELECT \* FROM "brands" WHERE "brands"\."deleted_at" IS NULL ORDER BY name ASC LIMIT .*`).
			WithArgs(2).
			WillReturnRows(rows)

		brands, count, err := repo.FindAll(context.Background(), shared.Filter{Limit: 2})

		assert.NoError(t, err)
		assert.Len(t, brands, 2)
		assert.Equal(t, int64(3), count)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormBrandRepository_Delete(t *testing.T) {
	t.Run("soft-deletes existing brand", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormBrandRepository(gormDB)

		brandID := uuid.New()

		mock.ExpectExec(`UPDATE "brands" SET "deleted_at"=.* WHERE id = \$2 AND "brands"\."deleted_at" IS NULL`).
			WithArgs(sqlmock.AnyArg(), brandID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Delete(context.Background(), brandID)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrNotFound when nothing deleted", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormBrandRepository(gormDB)

		brandID := uuid.New()

		mock.ExpectExec(`UPDATE "brands" SET "deleted_at"=.* WHERE id = \$2 AND "brands"\."deleted_at" IS NULL`).
			WithArgs(sqlmock.AnyArg(), brandID).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Delete(context.Background(), brandID)

		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
