package ledger_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/tally/internal/ledger"
)

func TestService_CreateDebt(t *testing.T) {
	userID := uuid.New()
	personID := uuid.New()

	type testCase struct {
		name      string
		setupMock func(m *ledger.MockRepository)
		wantErr   string
	}

	tests := []testCase{
		{
			name: "Success",
			setupMock: func(m *ledger.MockRepository) {
				m.EXPECT().
					GetPerson(gomock.Any(), personID).
					Return(&ledger.Person{ID: personID, TotalOwed: decimal.NewFromInt(30)}, nil)
				m.EXPECT().
					CreateDebt(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, d *ledger.Debt) error {
						d.ID = uuid.New()
						d.CreatedAt = time.Now()
						return nil
					})
				m.EXPECT().
					UpdateTotalOwed(gomock.Any(), personID, decimal.NewFromInt(80)).
					Return(nil)
			},
		},
		{
			name: "PersonMissing",
			setupMock: func(m *ledger.MockRepository) {
				m.EXPECT().
					GetPerson(gomock.Any(), personID).
					Return(nil, ledger.ErrPersonNotFound)
			},
			wantErr: "reading person",
		},
		{
			name: "InsertFails",
			setupMock: func(m *ledger.MockRepository) {
				m.EXPECT().
					GetPerson(gomock.Any(), personID).
					Return(&ledger.Person{ID: personID, TotalOwed: decimal.NewFromInt(30)}, nil)
				m.EXPECT().
					CreateDebt(gomock.Any(), gomock.Any()).
					Return(errors.New("db error"))
			},
			wantErr: "inserting debt",
		},
		{
			// The debt row is already inserted when the total write fails;
			// no rollback is attempted, the error just says which step broke.
			name: "TotalWriteFails",
			setupMock: func(m *ledger.MockRepository) {
				m.EXPECT().
					GetPerson(gomock.Any(), personID).
					Return(&ledger.Person{ID: personID, TotalOwed: decimal.NewFromInt(30)}, nil)
				m.EXPECT().
					CreateDebt(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, d *ledger.Debt) error {
						d.ID = uuid.New()
						return nil
					})
				m.EXPECT().
					UpdateTotalOwed(gomock.Any(), personID, decimal.NewFromInt(80)).
					Return(errors.New("db error"))
			},
			wantErr: "updating total owed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := ledger.NewMockRepository(ctrl)
			tt.setupMock(repo)

			svc := ledger.NewService(repo)
			got, err := svc.CreateDebt(context.Background(), ledger.CreateDebtParams{
				UserID:      userID,
				PersonID:    personID,
				Amount:      decimal.NewFromInt(50),
				Description: "lunch",
			})

			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			assert.NotEmpty(t, got.ID)
			assert.Equal(t, personID, got.PersonID)
			assert.True(t, got.Amount.Equal(decimal.NewFromInt(50)))
		})
	}
}

func TestService_DeleteDebt(t *testing.T) {
	debtID := uuid.New()
	personID := uuid.New()

	type testCase struct {
		name      string
		setupMock func(m *ledger.MockRepository)
		wantErr   error
	}

	tests := []testCase{
		{
			name: "Success",
			setupMock: func(m *ledger.MockRepository) {
				m.EXPECT().
					GetDebt(gomock.Any(), debtID).
					Return(&ledger.Debt{ID: debtID, PersonID: personID, Amount: decimal.NewFromInt(50)}, nil)
				m.EXPECT().
					GetPerson(gomock.Any(), personID).
					Return(&ledger.Person{ID: personID, TotalOwed: decimal.NewFromInt(70)}, nil)
				m.EXPECT().
					UpdateTotalOwed(gomock.Any(), personID, decimal.NewFromInt(20)).
					Return(nil)
				m.EXPECT().
					DeleteDebt(gomock.Any(), debtID).
					Return(nil)
			},
		},
		{
			// A missing debt fails before any person row is touched.
			name: "DebtMissing",
			setupMock: func(m *ledger.MockRepository) {
				m.EXPECT().
					GetDebt(gomock.Any(), debtID).
					Return(nil, ledger.ErrDebtNotFound)
			},
			wantErr: ledger.ErrDebtNotFound,
		},
		{
			name: "PersonMissing",
			setupMock: func(m *ledger.MockRepository) {
				m.EXPECT().
					GetDebt(gomock.Any(), debtID).
					Return(&ledger.Debt{ID: debtID, PersonID: personID, Amount: decimal.NewFromInt(50)}, nil)
				m.EXPECT().
					GetPerson(gomock.Any(), personID).
					Return(nil, ledger.ErrPersonNotFound)
			},
			wantErr: ledger.ErrPersonNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := ledger.NewMockRepository(ctrl)
			tt.setupMock(repo)

			svc := ledger.NewService(repo)
			err := svc.DeleteDebt(context.Background(), debtID)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestService_MarkPaid(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	debtID := uuid.New()

	repo := ledger.NewMockRepository(ctrl)
	repo.EXPECT().
		SetDebtPaid(gomock.Any(), debtID, true).
		Return(&ledger.Debt{ID: debtID, Paid: true}, nil)
	repo.EXPECT().
		SetDebtPaid(gomock.Any(), debtID, false).
		Return(&ledger.Debt{ID: debtID, Paid: false}, nil)

	svc := ledger.NewService(repo)

	d, err := svc.MarkPaid(context.Background(), debtID)
	require.NoError(t, err)
	assert.True(t, d.Paid)

	require.NoError(t, svc.MarkUnpaid(context.Background(), debtID))
}

func TestService_Outstanding(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()

	repo := ledger.NewMockRepository(ctrl)
	repo.EXPECT().
		ListDebts(gomock.Any(), userID).
		Return([]*ledger.Debt{
			{Amount: decimal.NewFromInt(50)},
			{Amount: decimal.NewFromInt(20), Paid: true},
			{Amount: decimal.RequireFromString("12.50")},
		}, nil)

	svc := ledger.NewService(repo)

	total, err := svc.Outstanding(context.Background(), userID)
	require.NoError(t, err)
	assert.True(t, total.Equal(decimal.RequireFromString("62.50")), "got %s", total)
}

func TestService_History(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	personID := uuid.New()
	newer := time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)
	older := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	repo := ledger.NewMockRepository(ctrl)
	repo.EXPECT().
		ListDebtsForPerson(gomock.Any(), personID).
		Return([]*ledger.Debt{
			{Amount: decimal.NewFromInt(20), CreatedAt: newer},
			{Amount: decimal.NewFromInt(50), CreatedAt: older},
		}, nil)

	svc := ledger.NewService(repo)

	points, err := svc.History(context.Background(), personID)
	require.NoError(t, err)
	require.Len(t, points, 2)

	assert.Equal(t, older, points[0].Date)
	assert.True(t, points[0].Amount.Equal(decimal.NewFromInt(50)))
	assert.Equal(t, newer, points[1].Date)
	assert.True(t, points[1].Amount.Equal(decimal.NewFromInt(20)))
}
