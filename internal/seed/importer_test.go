package seed

import (
	"context"
	"testing"

	"pixel-kart/internal/model"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockCatalogRepository is a mock implementation of repository.CatalogRepository.
type MockCatalogRepository struct {
	mock.Mock
}

func (m *MockCatalogRepository) ListGames(ctx context.Context) ([]model.Game, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Game), args.Error(1)
}

func (m *MockCatalogRepository) ListHardware(ctx context.Context) ([]model.Hardware, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Hardware), args.Error(1)
}

func (m *MockCatalogRepository) GetGame(ctx context.Context, id int64) (*model.Game, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Game), args.Error(1)
}

func (m *MockCatalogRepository) GetHardware(ctx context.Context, id int64) (*model.Hardware, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Hardware), args.Error(1)
}

func (m *MockCatalogRepository) Resolve(ctx context.Context, ref model.ProductRef) (*model.ProductInfo, error) {
	args := m.Called(ctx, ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ProductInfo), args.Error(1)
}

func (m *MockCatalogRepository) UpdateGame(ctx context.Context, id int64, req model.UpdateGameRequest) error {
	args := m.Called(ctx, id, req)
	return args.Error(0)
}

func (m *MockCatalogRepository) UpdateHardware(ctx context.Context, id int64, req model.UpdateHardwareRequest) error {
	args := m.Called(ctx, id, req)
	return args.Error(0)
}

func (m *MockCatalogRepository) UpsertGame(ctx context.Context, game model.Game) error {
	args := m.Called(ctx, game)
	return args.Error(0)
}

func (m *MockCatalogRepository) UpsertHardware(ctx context.Context, hw model.Hardware) error {
	args := m.Called(ctx, hw)
	return args.Error(0)
}

func (m *MockCatalogRepository) EnsureGenre(ctx context.Context, name string) (int64, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCatalogRepository) EnsurePublisher(ctx context.Context, name string) (int64, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCatalogRepository) EnsureRating(ctx context.Context, name string) (int64, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCatalogRepository) EnsurePlayerCount(ctx context.Context, name string) (int64, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(int64), args.Error(1)
}

// stubLoader returns a fixed record set.
type stubLoader struct {
	records []Record
	err     error
	path    string
}

func (l *stubLoader) Load(ctx context.Context, filePath string) ([]Record, error) {
	l.path = filePath
	return l.records, l.err
}

func TestImporter_Run(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	loader := &stubLoader{records: []Record{
		{
			Kind:          model.KindGame,
			Name:          "Galaxy Racer",
			Description:   "Fast",
			Price:         decimal.RequireFromString("19.99"),
			ReleaseDate:   "2024-03-01",
			Genre:         "Racing",
			Publisher:     "Nova",
			Rating:        "E",
			Players:       "1-4",
			StockQuantity: 10,
		},
		{
			Kind:          model.KindHardware,
			Name:          "Arcade Stick",
			Price:         decimal.RequireFromString("59.00"),
			Manufacturer:  "Acme",
			SKU:           "SKU-001",
			UPC:           "000000000001",
			StockQuantity: 5,
		},
	}}

	mockRepo := new(MockCatalogRepository)
	mockRepo.On("EnsureGenre", ctx, "Racing").Return(int64(1), nil)
	mockRepo.On("EnsurePublisher", ctx, "Nova").Return(int64(2), nil)
	mockRepo.On("EnsureRating", ctx, "E").Return(int64(3), nil)
	mockRepo.On("EnsurePlayerCount", ctx, "1-4").Return(int64(4), nil)
	mockRepo.On("UpsertGame", ctx, mock.MatchedBy(func(g model.Game) bool {
		return g.Name == "Galaxy Racer" &&
			g.GenreID == 1 && g.PublisherID == 2 && g.ESRBID == 3 && g.PlayersID == 4 &&
			g.ReleaseDate.Year() == 2024
	})).Return(nil)
	mockRepo.On("UpsertHardware", ctx, mock.MatchedBy(func(h model.Hardware) bool {
		return h.Name == "Arcade Stick" && h.SKU == "SKU-001"
	})).Return(nil)

	importer := NewImporter(mockRepo, loader, logger)
	err := importer.Run(ctx, "/seeds")

	require.NoError(t, err)
	assert.Equal(t, "/seeds/"+CatalogFile, loader.path)
	mockRepo.AssertExpectations(t)
}

func TestImporter_Run_LoaderError(t *testing.T) {
	logger := zerolog.Nop()

	loader := &stubLoader{err: assert.AnError}
	mockRepo := new(MockCatalogRepository)

	importer := NewImporter(mockRepo, loader, logger)
	err := importer.Run(context.Background(), "/seeds")

	require.Error(t, err)
	mockRepo.AssertNotCalled(t, "UpsertGame")
}

func TestImporter_Run_InvalidReleaseDate(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	loader := &stubLoader{records: []Record{
		{
			Kind:        model.KindGame,
			Name:        "Galaxy Racer",
			Price:       decimal.RequireFromString("19.99"),
			ReleaseDate: "not-a-date",
			Genre:       "Racing",
			Publisher:   "Nova",
			Rating:      "E",
			Players:     "1-4",
		},
	}}

	mockRepo := new(MockCatalogRepository)
	mockRepo.On("EnsureGenre", ctx, "Racing").Return(int64(1), nil)
	mockRepo.On("EnsurePublisher", ctx, "Nova").Return(int64(2), nil)
	mockRepo.On("EnsureRating", ctx, "E").Return(int64(3), nil)
	mockRepo.On("EnsurePlayerCount", ctx, "1-4").Return(int64(4), nil)

	importer := NewImporter(mockRepo, loader, logger)
	err := importer.Run(ctx, "/seeds")

	require.Error(t, err)
	mockRepo.AssertNotCalled(t, "UpsertGame")
}

func TestImporter_Run_UpsertError(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	loader := &stubLoader{records: []Record{
		{
			Kind:  model.KindHardware,
			Name:  "Arcade Stick",
			Price: decimal.RequireFromString("59.00"),
		},
	}}

	mockRepo := new(MockCatalogRepository)
	mockRepo.On("UpsertHardware", ctx, mock.AnythingOfType("model.Hardware")).Return(assert.AnError)

	importer := NewImporter(mockRepo, loader, logger)
	err := importer.Run(ctx, "/seeds")

	require.Error(t, err)
}
