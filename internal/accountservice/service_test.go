package accountservice

import (
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"github.com/vm-it-consulting/moneyapp/internal/domain"
)

func TestCreate(t *testing.T) {
	created := domain.Account{
		ID:        1,
		Name:      "checking",
		Amount:    "2000",
		UserID:    3,
		CreatedAt: time.Now(),
	}

	testCases := []struct {
		name       string
		amount     string
		buildStubs func(repo *MockRepo)
		wantErr    error
	}{
		{
			name:   "OK",
			amount: "2000",
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().
					Create(gomock.Any(), gomock.Eq(domain.CreateAccountParams{
						Name:   "checking",
						Amount: "2000",
						UserID: 3,
					})).
					Times(1).
					Return(created, nil)
			},
		},
		{
			name:   "MalformedAmount",
			amount: "lots",
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().
					Create(gomock.Any(), gomock.Any()).
					Times(0)
			},
			wantErr: domain.ErrInvalidAmount,
		},
		{
			name:   "UnknownUser",
			amount: "2000",
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().
					Create(gomock.Any(), gomock.Any()).
					Times(1).
					Return(domain.Account{}, domain.ErrUserNotFound)
			},
			wantErr: domain.ErrUserNotFound,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := NewMockRepo(ctrl)
			tc.buildStubs(repo)

			service := New(repo)

			got, err := service.Create(context.Background(), "checking", tc.amount, 3)

			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}

			require.NoError(t, err)
			require.Equal(t, created, got)
		})
	}
}

func TestListByUser(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	accounts := []domain.Account{
		{ID: 1, Name: "checking", Amount: "2000", UserID: 3},
		{ID: 2, Name: "savings", Amount: "100", UserID: 3},
	}

	repo := NewMockRepo(ctrl)
	repo.EXPECT().
		ListByUser(gomock.Any(), gomock.Eq(int64(3))).
		Times(1).
		Return(accounts, nil)

	service := New(repo)

	got, err := service.ListByUser(context.Background(), 3)

	require.NoError(t, err)
	require.Equal(t, accounts, got)
}
