package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"pixel-kart/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockCartRepository is a mock implementation of CartRepository.
type MockCartRepository struct {
	mock.Mock
}

func (m *MockCartRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	// Return a MockTx interface value, not a pointer
	if tx, ok := args.Get(0).(pgx.Tx); ok {
		return tx, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCartRepository) AddItem(ctx context.Context, userID int64, ref model.ProductRef, quantity int) error {
	args := m.Called(ctx, userID, ref, quantity)
	return args.Error(0)
}

func (m *MockCartRepository) SetQuantity(ctx context.Context, userID int64, ref model.ProductRef, quantity int) error {
	args := m.Called(ctx, userID, ref, quantity)
	return args.Error(0)
}

func (m *MockCartRepository) DeleteItem(ctx context.Context, userID int64, ref model.ProductRef) error {
	args := m.Called(ctx, userID, ref)
	return args.Error(0)
}

func (m *MockCartRepository) ListByUser(ctx context.Context, userID int64) ([]model.CartLine, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.CartLine), args.Error(1)
}

func (m *MockCartRepository) ListByUserForUpdate(ctx context.Context, tx pgx.Tx, userID int64) ([]model.CartLine, error) {
	args := m.Called(ctx, tx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.CartLine), args.Error(1)
}

func (m *MockCartRepository) DeleteLines(ctx context.Context, tx pgx.Tx, userID int64, ids []uuid.UUID) error {
	args := m.Called(ctx, tx, userID, ids)
	return args.Error(0)
}

// MockPurchaseRepository is a mock implementation of PurchaseRepository.
type MockPurchaseRepository struct {
	mock.Mock
}

func (m *MockPurchaseRepository) CreateBatch(ctx context.Context, tx pgx.Tx, purchases []model.Purchase) error {
	args := m.Called(ctx, tx, purchases)
	return args.Error(0)
}

func (m *MockPurchaseRepository) ListByUser(ctx context.Context, userID int64) ([]model.Purchase, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Purchase), args.Error(1)
}

// MockTx is a minimal mock implementation of pgx.Tx for testing.
type MockTx struct {
	mock.Mock
	committed  bool
	rolledBack bool
}

func (m *MockTx) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	m.committed = true
	return args.Error(0)
}

func (m *MockTx) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	m.rolledBack = true
	return args.Error(0)
}

// Stub methods to satisfy pgx.Tx interface - these are not used in our tests
func (m *MockTx) Begin(ctx context.Context) (pgx.Tx, error) { return nil, nil }
func (m *MockTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	return 0, nil
}
func (m *MockTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults { return nil }
func (m *MockTx) LargeObjects() pgx.LargeObjects                               { return pgx.LargeObjects{} }
func (m *MockTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	return nil, nil
}
func (m *MockTx) Exec(ctx context.Context, sql string, arguments ...any) (commandTag pgconn.CommandTag, err error) {
	return
}
func (m *MockTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}
func (m *MockTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row { return nil }
func (m *MockTx) Conn() *pgx.Conn                                               { return nil }

func testCartLines(userID int64) []model.CartLine {
	now := time.Now()
	return []model.CartLine{
		{
			Item: model.CartItem{
				ID:       uuid.New(),
				UserID:   userID,
				Product:  model.GameRef(1),
				Quantity: 2,
				AddedAt:  now,
			},
			ProductName: "Galaxy Racer",
			UnitPrice:   decimal.RequireFromString("19.99"),
			Resolved:    true,
		},
		{
			Item: model.CartItem{
				ID:       uuid.New(),
				UserID:   userID,
				Product:  model.HardwareRef(3),
				Quantity: 1,
				AddedAt:  now,
			},
			ProductName: "Arcade Stick",
			UnitPrice:   decimal.RequireFromString("59.00"),
			Resolved:    true,
		},
	}
}

func TestCheckoutService_Checkout_Success(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()
	userID := int64(7)

	mockCartRepo := new(MockCartRepository)
	mockPurchaseRepo := new(MockPurchaseRepository)
	mockTx := new(MockTx)

	service := NewCheckoutService(mockCartRepo, mockPurchaseRepo, logger)

	lines := testCartLines(userID)

	mockCartRepo.On("BeginTx", ctx).Return(mockTx, nil)
	mockCartRepo.On("ListByUserForUpdate", ctx, mockTx, userID).Return(lines, nil)
	mockPurchaseRepo.On("CreateBatch", ctx, mockTx, mock.AnythingOfType("[]model.Purchase")).Return(nil)
	mockCartRepo.On("DeleteLines", ctx, mockTx, userID,
		[]uuid.UUID{lines[0].Item.ID, lines[1].Item.ID}).Return(nil)
	mockTx.On("Commit", ctx).Return(nil)

	result, err := service.Checkout(ctx, userID)

	require.NoError(t, err)
	require.NotNil(t, result)
	require.Len(t, result.Purchases, 2)

	// 19.99 * 2 + 59.00 * 1 = 98.98
	assert.True(t, result.Total.Equal(decimal.RequireFromString("98.98")),
		"expected total 98.98, got %s", result.Total)
	assert.True(t, result.Purchases[0].TotalPrice.Equal(decimal.RequireFromString("39.98")))
	assert.True(t, result.Purchases[1].TotalPrice.Equal(decimal.RequireFromString("59.00")))
	assert.Equal(t, model.GameRef(1), result.Purchases[0].Product)
	assert.Equal(t, model.HardwareRef(3), result.Purchases[1].Product)
	assert.Equal(t, result.Purchases[0].PurchasedAt, result.Purchases[1].PurchasedAt)

	for _, p := range result.Purchases {
		assert.NotEqual(t, uuid.Nil, p.ID)
		assert.Equal(t, userID, p.UserID)
	}

	mockCartRepo.AssertExpectations(t)
	mockPurchaseRepo.AssertExpectations(t)
	mockTx.AssertExpectations(t)
	assert.True(t, mockTx.committed)
	assert.False(t, mockTx.rolledBack)
}

func TestCheckoutService_Checkout_EmptyCart(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()
	userID := int64(7)

	mockCartRepo := new(MockCartRepository)
	mockPurchaseRepo := new(MockPurchaseRepository)
	mockTx := new(MockTx)

	service := NewCheckoutService(mockCartRepo, mockPurchaseRepo, logger)

	mockCartRepo.On("BeginTx", ctx).Return(mockTx, nil)
	mockCartRepo.On("ListByUserForUpdate", ctx, mockTx, userID).Return([]model.CartLine{}, nil)
	mockTx.On("Commit", ctx).Return(nil)

	result, err := service.Checkout(ctx, userID)

	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Empty(t, result.Purchases)
	assert.True(t, result.Total.IsZero())

	mockPurchaseRepo.AssertNotCalled(t, "CreateBatch")
	mockCartRepo.AssertNotCalled(t, "DeleteLines")
	mockTx.AssertExpectations(t)
}

func TestCheckoutService_Checkout_SkipsUnresolvedLines(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()
	userID := int64(7)

	mockCartRepo := new(MockCartRepository)
	mockPurchaseRepo := new(MockPurchaseRepository)
	mockTx := new(MockTx)

	service := NewCheckoutService(mockCartRepo, mockPurchaseRepo, logger)

	lines := testCartLines(userID)
	lines = append(lines, model.CartLine{
		Item: model.CartItem{
			ID:       uuid.New(),
			UserID:   userID,
			Product:  model.GameRef(999),
			Quantity: 4,
			AddedAt:  time.Now(),
		},
		ProductName: model.MissingProductName,
		UnitPrice:   decimal.Zero,
		Resolved:    false,
	})

	mockCartRepo.On("BeginTx", ctx).Return(mockTx, nil)
	mockCartRepo.On("ListByUserForUpdate", ctx, mockTx, userID).Return(lines, nil)
	mockPurchaseRepo.On("CreateBatch", ctx, mockTx, mock.AnythingOfType("[]model.Purchase")).Return(nil)
	// The unresolvable line is cleared along with the purchased ones
	mockCartRepo.On("DeleteLines", ctx, mockTx, userID,
		[]uuid.UUID{lines[0].Item.ID, lines[1].Item.ID, lines[2].Item.ID}).Return(nil)
	mockTx.On("Commit", ctx).Return(nil)

	result, err := service.Checkout(ctx, userID)

	require.NoError(t, err)
	require.Len(t, result.Purchases, 2)
	assert.True(t, result.Total.Equal(decimal.RequireFromString("98.98")))

	mockCartRepo.AssertExpectations(t)
	mockPurchaseRepo.AssertExpectations(t)
}

func TestCheckoutService_Checkout_RollbackOnCreateBatchFailure(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()
	userID := int64(7)

	mockCartRepo := new(MockCartRepository)
	mockPurchaseRepo := new(MockPurchaseRepository)
	mockTx := new(MockTx)

	service := NewCheckoutService(mockCartRepo, mockPurchaseRepo, logger)

	dbErr := errors.New("connection reset")

	mockCartRepo.On("BeginTx", ctx).Return(mockTx, nil)
	mockCartRepo.On("ListByUserForUpdate", ctx, mockTx, userID).Return(testCartLines(userID), nil)
	mockPurchaseRepo.On("CreateBatch", ctx, mockTx, mock.AnythingOfType("[]model.Purchase")).Return(dbErr)
	mockTx.On("Rollback", ctx).Return(nil)

	result, err := service.Checkout(ctx, userID)

	require.Error(t, err)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, dbErr)

	mockCartRepo.AssertNotCalled(t, "DeleteLines")
	mockTx.AssertNotCalled(t, "Commit")
	assert.True(t, mockTx.rolledBack)
}

func TestCheckoutService_Checkout_RollbackOnClearFailure(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()
	userID := int64(7)

	mockCartRepo := new(MockCartRepository)
	mockPurchaseRepo := new(MockPurchaseRepository)
	mockTx := new(MockTx)

	service := NewCheckoutService(mockCartRepo, mockPurchaseRepo, logger)

	dbErr := errors.New("connection reset")

	mockCartRepo.On("BeginTx", ctx).Return(mockTx, nil)
	mockCartRepo.On("ListByUserForUpdate", ctx, mockTx, userID).Return(testCartLines(userID), nil)
	mockPurchaseRepo.On("CreateBatch", ctx, mockTx, mock.AnythingOfType("[]model.Purchase")).Return(nil)
	mockCartRepo.On("DeleteLines", ctx, mockTx, userID, mock.AnythingOfType("[]uuid.UUID")).Return(dbErr)
	mockTx.On("Rollback", ctx).Return(nil)

	result, err := service.Checkout(ctx, userID)

	require.Error(t, err)
	assert.Nil(t, result)

	mockTx.AssertNotCalled(t, "Commit")
	assert.True(t, mockTx.rolledBack)
}

func TestCheckoutService_Checkout_BeginTxFailure(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	mockCartRepo := new(MockCartRepository)
	mockPurchaseRepo := new(MockPurchaseRepository)

	service := NewCheckoutService(mockCartRepo, mockPurchaseRepo, logger)

	mockCartRepo.On("BeginTx", ctx).Return(nil, errors.New("pool exhausted"))

	result, err := service.Checkout(ctx, int64(7))

	require.Error(t, err)
	assert.Nil(t, result)
	mockCartRepo.AssertNotCalled(t, "ListByUserForUpdate")
}

func TestCheckoutService_History(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()
	userID := int64(7)

	purchases := []model.Purchase{
		{
			ID:          uuid.New(),
			UserID:      userID,
			Product:     model.GameRef(1),
			Quantity:    2,
			TotalPrice:  decimal.RequireFromString("39.98"),
			PurchasedAt: time.Now(),
		},
	}

	mockCartRepo := new(MockCartRepository)
	mockPurchaseRepo := new(MockPurchaseRepository)

	service := NewCheckoutService(mockCartRepo, mockPurchaseRepo, logger)

	mockPurchaseRepo.On("ListByUser", ctx, userID).Return(purchases, nil)

	got, err := service.History(ctx, userID)

	require.NoError(t, err)
	assert.Equal(t, purchases, got)
	mockPurchaseRepo.AssertExpectations(t)
}

func TestCheckoutService_History_Error(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	mockCartRepo := new(MockCartRepository)
	mockPurchaseRepo := new(MockPurchaseRepository)

	service := NewCheckoutService(mockCartRepo, mockPurchaseRepo, logger)

	mockPurchaseRepo.On("ListByUser", ctx, int64(7)).Return(nil, errors.New("connection reset"))

	got, err := service.History(ctx, int64(7))

	require.Error(t, err)
	assert.Nil(t, got)
}
