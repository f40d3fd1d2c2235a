package repository

import (
	"context"
	"strconv"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockStore(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

var recommendCols = []string{"id", "product_name", "price", "discount_price", "brand_name", "pictures"}

func TestTierSQLSameBrand(t *testing.T) {
	sql, args, err := buildTierSQL(2, 5, 10, true, 4)
	require.NoError(t, err)

	assert.Contains(t, sql, "product.category_id = ?")
	assert.Contains(t, sql, "product.brand_id = ?")
	assert.Contains(t, sql, "product.id <> ?")
	assert.Contains(t, sql, "ORDER BY RANDOM()")
	assert.Contains(t, sql, "LIMIT 4")
	assert.Equal(t, []interface{}{2, 10, 5}, args)
}

func TestTierSQLOtherBrands(t *testing.T) {
	sql, _, err := buildTierSQL(2, 5, 10, false, 3)
	require.NoError(t, err)

	assert.Contains(t, sql, "product.brand_id <> ?")
	assert.NotContains(t, sql, "product.brand_id = ?")
	assert.Contains(t, sql, "LIMIT 3")
}

func TestTierBudgetShrinks(t *testing.T) {
	for budget := 1; budget <= RecommendLimit; budget++ {
		sql, _, err := buildTierSQL(1, 1, 1, false, budget)
		require.NoError(t, err)
		assert.Contains(t, sql, "LIMIT "+strconv.Itoa(budget))
	}
}

func TestFillTierZeroBudgetSkipsStore(t *testing.T) {
	// a nil db would panic if the query ran; a spent budget must short-circuit
	recs, err := fillTier(context.Background(), nil, 1, 1, 1, true, 0)
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestRecommendUnknownSourceProduct(t *testing.T) {
	db, mock := newMockStore(t)

	mock.ExpectQuery(`SELECT product.category_id, product.brand_id FROM product`).
		WithArgs(42).
		WillReturnRows(sqlmock.NewRows([]string{"category_id", "brand_id"}))

	_, err := Recommend(context.Background(), db, 42)
	assert.ErrorIs(t, err, ErrProductNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecommendTierOneRowsPrecedeTierTwo(t *testing.T) {
	db, mock := newMockStore(t)

	mock.ExpectQuery(`SELECT product.category_id, product.brand_id FROM product`).
		WithArgs(10).
		WillReturnRows(sqlmock.NewRows([]string{"category_id", "brand_id"}).AddRow(2, 5))

	// tier 1: same brand, full budget
	mock.ExpectQuery(`product\.brand_id = \$3.*LIMIT 4`).
		WithArgs(2, 10, 5).
		WillReturnRows(sqlmock.NewRows(recommendCols).
			AddRow(11, "Stentor Student I 小提琴", 5200.0, 4680.0, "Stentor", "p001-1.jpg,p001-2.jpg").
			AddRow(12, "Stentor Conservatoire 小提琴", 12800.0, nil, "Stentor", nil))

	// tier 2: other brands, budget shrunk by the tier 1 rows
	mock.ExpectQuery(`product\.brand_id <> \$3.*LIMIT 2`).
		WithArgs(2, 10, 5).
		WillReturnRows(sqlmock.NewRows(recommendCols).
			AddRow(21, "Yamaha V5 小提琴", 15600.0, 13900.0, "Yamaha", "p003-1.jpg").
			AddRow(22, "GEWA Allegro 小提琴", 22500.0, nil, "GEWA", nil))

	recs, err := Recommend(context.Background(), db, 10)
	require.NoError(t, err)
	require.Len(t, recs, 4)

	ids := []int{recs[0].ID, recs[1].ID, recs[2].ID, recs[3].ID}
	assert.Equal(t, []int{11, 12, 21, 22}, ids, "same-brand rows come before other-brand rows")
	assert.Equal(t, []string{"p001-1.jpg", "p001-2.jpg"}, recs[0].Pictures)
	require.NotNil(t, recs[0].DiscountPrice)
	assert.Equal(t, 4680.0, *recs[0].DiscountPrice)
	assert.Nil(t, recs[1].DiscountPrice)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecommendEmptyTiersIsNotAnError(t *testing.T) {
	db, mock := newMockStore(t)

	mock.ExpectQuery(`SELECT product.category_id, product.brand_id FROM product`).
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"category_id", "brand_id"}).AddRow(3, 1))

	mock.ExpectQuery(`product\.brand_id = \$3`).
		WillReturnRows(sqlmock.NewRows(recommendCols))
	mock.ExpectQuery(`product\.brand_id <> \$3.*LIMIT 4`).
		WillReturnRows(sqlmock.NewRows(recommendCols))

	recs, err := Recommend(context.Background(), db, 7)
	require.NoError(t, err)
	assert.Empty(t, recs)
	assert.NoError(t, mock.ExpectationsWereMet())
}
