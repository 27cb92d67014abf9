package userdelivery

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"github.com/vm-it-consulting/moneyapp/internal/domain"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func newServer(service Service, accounts AccountLister) *gin.Engine {
	handler := NewHandler(service, accounts)

	engine := gin.New()
	engine.POST("/users", handler.Create)
	engine.GET("/users/:id", handler.Get)
	engine.GET("/users", handler.List)
	engine.GET("/users/:id/accounts", handler.ListAccounts)

	return engine
}

func TestCreate(t *testing.T) {
	created := domain.User{
		ID:    1,
		Name:  "Valentin Montagne",
		Email: "contact@vm-it-consulting.com",
	}

	testCases := []struct {
		name           string
		body           gin.H
		buildStubs     func(service *MockService)
		wantStatusCode int
	}{
		{
			name: "OK",
			body: gin.H{"name": created.Name, "email": created.Email},
			buildStubs: func(service *MockService) {
				service.EXPECT().
					Create(gomock.Any(), gomock.Eq(created.Name), gomock.Eq(created.Email)).
					Times(1).
					Return(created, nil)
			},
			wantStatusCode: http.StatusOK,
		},
		{
			name: "DuplicateEmail",
			body: gin.H{"name": created.Name, "email": created.Email},
			buildStubs: func(service *MockService) {
				service.EXPECT().
					Create(gomock.Any(), gomock.Eq(created.Name), gomock.Eq(created.Email)).
					Times(1).
					Return(domain.User{}, domain.ErrEmailAlreadyExists)
			},
			wantStatusCode: http.StatusConflict,
		},
		{
			name: "InvalidEmail",
			body: gin.H{"name": created.Name, "email": "not-an-email"},
			buildStubs: func(service *MockService) {
				service.EXPECT().
					Create(gomock.Any(), gomock.Any(), gomock.Any()).
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

			server := newServer(service, NewMockAccountLister(ctrl))

			body, err := json.Marshal(tc.body)
			require.NoError(t, err)

			req := httptest.NewRequest(http.MethodPost, "/users", bytes.NewReader(body))
			recorder := httptest.NewRecorder()

			server.ServeHTTP(recorder, req)

			require.Equal(t, tc.wantStatusCode, recorder.Code)
		})
	}
}

func TestListAccounts(t *testing.T) {
	accounts := []domain.Account{
		{ID: 1, Name: "checking", Amount: "2000", UserID: 3},
		{ID: 2, Name: "savings", Amount: "100", UserID: 3},
	}

	testCases := []struct {
		name           string
		target         string
		buildStubs     func(service *MockService, lister *MockAccountLister)
		wantStatusCode int
		wantCount      int
	}{
		{
			name:   "OK",
			target: "/users/3/accounts",
			buildStubs: func(service *MockService, lister *MockAccountLister) {
				service.EXPECT().
					Get(gomock.Any(), gomock.Eq(int64(3))).
					Times(1).
					Return(domain.User{ID: 3}, nil)
				lister.EXPECT().
					ListByUser(gomock.Any(), gomock.Eq(int64(3))).
					Times(1).
					Return(accounts, nil)
			},
			wantStatusCode: http.StatusOK,
			wantCount:      2,
		},
		{
			name:   "UnknownUser",
			target: "/users/404/accounts",
			buildStubs: func(service *MockService, lister *MockAccountLister) {
				service.EXPECT().
					Get(gomock.Any(), gomock.Eq(int64(404))).
					Times(1).
					Return(domain.User{}, domain.ErrUserNotFound)
				lister.EXPECT().
					ListByUser(gomock.Any(), gomock.Any()).
					Times(0)
			},
			wantStatusCode: http.StatusNotFound,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			service := NewMockService(ctrl)
			lister := NewMockAccountLister(ctrl)
			tc.buildStubs(service, lister)

			server := newServer(service, lister)

			req := httptest.NewRequest(http.MethodGet, tc.target, nil)
			recorder := httptest.NewRecorder()

			server.ServeHTTP(recorder, req)

			require.Equal(t, tc.wantStatusCode, recorder.Code)

			if tc.wantStatusCode != http.StatusOK {
				return
			}

			var res struct {
				Data struct {
					Accounts []domain.Account `json:"accounts"`
				} `json:"data"`
			}
			require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &res))
			require.Len(t, res.Data.Accounts, tc.wantCount)
		})
	}
}
