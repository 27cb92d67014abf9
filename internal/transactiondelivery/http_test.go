package transactiondelivery

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"

	"github.com/vm-it-consulting/moneyapp/internal/domain"
	"github.com/vm-it-consulting/moneyapp/pkg/errorspkg"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func newServer(service Service) *gin.Engine {
	handler := NewHandler(service)

	engine := gin.New()
	engine.POST("/transactions", handler.Create)
	engine.GET("/transactions/:id", handler.Get)
	engine.PUT("/transactions/:id", handler.Update)
	engine.DELETE("/transactions/:id", handler.Delete)
	engine.GET("/accounts/:id/transactions", handler.ListByAccount)
	engine.GET("/accounts/:id/budgets/:amount", handler.ListWithinBudget)

	return engine
}

type transactionData struct {
	Transaction domain.Transaction `json:"transaction"`
}

type transactionResponse struct {
	Data  transactionData `json:"data"`
	Error string          `json:"error"`
}

type transactionsData struct {
	Transactions []domain.Transaction `json:"transactions"`
}

type transactionsResponse struct {
	Data  transactionsData `json:"data"`
	Error string           `json:"error"`
}

func TestCreate(t *testing.T) {
	transaction := domain.Transaction{
		ID:        1,
		Name:      "T0-RENT",
		Amount:    "500",
		Type:      domain.TypeOut,
		AccountID: 7,
		CreatedAt: time.Now().UTC(),
	}

	testCases := []struct {
		name           string
		body           gin.H
		buildStubs     func(service *MockService)
		wantStatusCode int
		wantError      bool
	}{
		{
			name: "OK",
			body: gin.H{
				"name":       "rent",
				"amount":     "500",
				"type":       0,
				"account_id": 7,
			},
			buildStubs: func(service *MockService) {
				service.EXPECT().
					Create(gomock.Any(), gomock.Eq("rent"), gomock.Eq("500"),
						gomock.Eq(domain.TypeOut), gomock.Eq(int64(7))).
					Times(1).
					Return(transaction, nil)
			},
			wantStatusCode: http.StatusOK,
		},
		{
			name: "InvalidType",
			body: gin.H{
				"name":       "rent",
				"amount":     "500",
				"type":       9,
				"account_id": 7,
			},
			buildStubs: func(service *MockService) {
				service.EXPECT().
					Create(gomock.Any(), gomock.Any(), gomock.Any(),
						gomock.Eq(domain.TransactionType(9)), gomock.Any()).
					Times(1).
					Return(domain.Transaction{}, domain.ErrInvalidTransactionType)
			},
			wantStatusCode: http.StatusBadRequest,
			wantError:      true,
		},
		{
			name: "MissingName",
			body: gin.H{
				"amount":     "500",
				"type":       0,
				"account_id": 7,
			},
			buildStubs: func(service *MockService) {
				service.EXPECT().
					Create(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Times(0)
			},
			wantStatusCode: http.StatusBadRequest,
			wantError:      true,
		},
		{
			name: "AccountNotFound",
			body: gin.H{
				"name":       "rent",
				"amount":     "500",
				"type":       0,
				"account_id": 404,
			},
			buildStubs: func(service *MockService) {
				service.EXPECT().
					Create(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Eq(int64(404))).
					Times(1).
					Return(domain.Transaction{}, domain.ErrAccountNotFound)
			},
			wantStatusCode: http.StatusNotFound,
			wantError:      true,
		},
		{
			name: "InternalError",
			body: gin.H{
				"name":       "rent",
				"amount":     "500",
				"type":       0,
				"account_id": 7,
			},
			buildStubs: func(service *MockService) {
				service.EXPECT().
					Create(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Times(1).
					Return(domain.Transaction{}, errorspkg.ErrInternal)
			},
			wantStatusCode: http.StatusInternalServerError,
			wantError:      true,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			service := NewMockService(ctrl)
			tc.buildStubs(service)

			server := newServer(service)

			body, err := json.Marshal(tc.body)
			require.NoError(t, err)

			req := httptest.NewRequest(http.MethodPost, "/transactions", bytes.NewReader(body))
			recorder := httptest.NewRecorder()

			server.ServeHTTP(recorder, req)

			require.Equal(t, tc.wantStatusCode, recorder.Code)

			var res transactionResponse
			require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &res))

			if tc.wantError {
				require.NotEmpty(t, res.Error)
				return
			}

			compareCreatedAt := cmpopts.EquateApproxTime(time.Second)
			if diff := cmp.Diff(transaction, res.Data.Transaction, compareCreatedAt); diff != "" {
				t.Errorf("res.Data.Transaction mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestUpdate(t *testing.T) {
	amended := domain.Transaction{
		ID:        1,
		Name:      "T1-RENT",
		Amount:    "750",
		Type:      domain.TypeIn,
		AccountID: 7,
		CreatedAt: time.Now().UTC(),
	}

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service := NewMockService(ctrl)
	service.EXPECT().
		Update(gomock.Any(), gomock.Eq(int64(1)), gomock.Eq("750"), gomock.Eq(domain.TypeIn)).
		Times(1).
		Return(amended, nil)

	server := newServer(service)

	body, err := json.Marshal(gin.H{"amount": "750", "type": 1})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPut, "/transactions/1", bytes.NewReader(body))
	recorder := httptest.NewRecorder()

	server.ServeHTTP(recorder, req)

	require.Equal(t, http.StatusOK, recorder.Code)

	var res transactionResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &res))
	require.Equal(t, "750", res.Data.Transaction.Amount)
}

func TestDelete(t *testing.T) {
	testCases := []struct {
		name           string
		id             string
		buildStubs     func(service *MockService)
		wantStatusCode int
	}{
		{
			name: "OK",
			id:   "1",
			buildStubs: func(service *MockService) {
				service.EXPECT().
					Delete(gomock.Any(), gomock.Eq(int64(1))).
					Times(1).
					Return(domain.Transaction{ID: 1}, nil)
			},
			wantStatusCode: http.StatusOK,
		},
		{
			name: "NotFound",
			id:   "404",
			buildStubs: func(service *MockService) {
				service.EXPECT().
					Delete(gomock.Any(), gomock.Eq(int64(404))).
					Times(1).
					Return(domain.Transaction{}, domain.ErrTransactionNotFound)
			},
			wantStatusCode: http.StatusNotFound,
		},
		{
			name: "InvalidID",
			id:   "0",
			buildStubs: func(service *MockService) {
				service.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Times(0)
			},
			wantStatusCode: http.StatusBadRequest,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			service := NewMockService(ctrl)
			tc.buildStubs(service)

			server := newServer(service)

			req := httptest.NewRequest(http.MethodDelete, "/transactions/"+tc.id, nil)
			recorder := httptest.NewRecorder()

			server.ServeHTTP(recorder, req)

			require.Equal(t, tc.wantStatusCode, recorder.Code)
		})
	}
}

func TestListWithinBudget(t *testing.T) {
	transactions := []domain.Transaction{
		{
			ID:        1,
			Name:      "T0-RENT",
			Amount:    "500",
			Type:      domain.TypeOut,
			AccountID: 7,
			CreatedAt: time.Now().UTC(),
		},
	}

	testCases := []struct {
		name           string
		target         string
		buildStubs     func(service *MockService)
		wantStatusCode int
		wantCount      int
	}{
		{
			name:   "OK",
			target: "/accounts/7/budgets/500",
			buildStubs: func(service *MockService) {
				service.EXPECT().
					ListWithinBudget(gomock.Any(), gomock.Eq(int64(7)), gomock.Eq("500")).
					Times(1).
					Return(transactions, nil)
			},
			wantStatusCode: http.StatusOK,
			wantCount:      1,
		},
		{
			name:   "EmptyResult",
			target: "/accounts/7/budgets/499",
			buildStubs: func(service *MockService) {
				service.EXPECT().
					ListWithinBudget(gomock.Any(), gomock.Eq(int64(7)), gomock.Eq("499")).
					Times(1).
					Return([]domain.Transaction{}, nil)
			},
			wantStatusCode: http.StatusOK,
			wantCount:      0,
		},
		{
			name:   "MalformedBudget",
			target: "/accounts/7/budgets/lots",
			buildStubs: func(service *MockService) {
				service.EXPECT().
					ListWithinBudget(gomock.Any(), gomock.Eq(int64(7)), gomock.Eq("lots")).
					Times(1).
					Return(nil, domain.ErrInvalidAmount)
			},
			wantStatusCode: http.StatusBadRequest,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			service := NewMockService(ctrl)
			tc.buildStubs(service)

			server := newServer(service)

			req := httptest.NewRequest(http.MethodGet, tc.target, nil)
			recorder := httptest.NewRecorder()

			server.ServeHTTP(recorder, req)

			require.Equal(t, tc.wantStatusCode, recorder.Code)

			if tc.wantStatusCode != http.StatusOK {
				return
			}

			var res transactionsResponse
			require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &res))
			require.Len(t, res.Data.Transactions, tc.wantCount)
		})
	}
}
