package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/cowork_membership_app/internal/apperrors"
	"github.com/SscSPs/cowork_membership_app/internal/core/domain"
	"github.com/SscSPs/cowork_membership_app/internal/dto"
	"github.com/SscSPs/cowork_membership_app/internal/handlers"
	"github.com/SscSPs/cowork_membership_app/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type AccessRequestHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockService *MockAccessRequestService
	token       string
	userID      string
}

func (suite *AccessRequestHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	secret := "access-request-secret"
	suite.userID = uuid.NewString()
	token, err := signTestToken(secret, suite.userID)
	suite.Require().NoError(err)
	suite.token = token

	suite.router = gin.New()
	suite.router.Use(middleware.AuthMiddleware(secret, testJWTIssuer))
	suite.mockService = new(MockAccessRequestService)
	handlers.RegisterAccessRequestRoutes(suite.router.Group("/api/v1"), suite.mockService)
}

func TestAccessRequestHandler(t *testing.T) {
	suite.Run(t, new(AccessRequestHandlerTestSuite))
}

func (suite *AccessRequestHandlerTestSuite) do(method, url string, body any) *httptest.ResponseRecorder {
	var payload bytes.Buffer
	if body != nil {
		suite.Require().NoError(json.NewEncoder(&payload).Encode(body))
	}
	req, _ := http.NewRequest(method, url, &payload)
	req.Header.Set("Authorization", "Bearer "+suite.token)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *AccessRequestHandlerTestSuite) TestCreate_SchedulingConflict() {
	start := time.Date(2026, time.March, 2, 10, 0, 0, 0, time.UTC)
	suite.mockService.On("CreateAccessRequest", mock.Anything, mock.MatchedBy(func(r dto.CreateAccessRequestRequest) bool {
		return r.ServiceID == "svc-1" && r.DurationHours.Equal(decimal.NewFromInt(2))
	}), suite.userID).Return(nil, fmt.Errorf("%w: slot overlaps AR-00001", apperrors.ErrSchedulingConflict)).Once()

	w := suite.do(http.MethodPost, "/api/v1/access-requests", dto.CreateAccessRequestRequest{
		MembershipID:   "m-1",
		ServiceID:      "svc-1",
		ScheduledStart: start,
		DurationHours:  decimal.NewFromInt(2),
		PaymentMethod:  domain.PaymentCredits,
	})

	suite.Equal(http.StatusConflict, w.Code)
	var resp dto.ErrorResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Contains(resp.Error, "AR-00001")
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *AccessRequestHandlerTestSuite) TestCreate_RejectsUnknownPaymentMethod() {
	w := suite.do(http.MethodPost, "/api/v1/access-requests", map[string]any{
		"membershipID":   "m-1",
		"serviceID":      "svc-1",
		"scheduledStart": "2026-03-02T10:00:00Z",
		"paymentMethod":  "cash",
	})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockService.AssertNotCalled(suite.T(), "CreateAccessRequest")
}

func (suite *AccessRequestHandlerTestSuite) TestApprove_Success() {
	requestID := uuid.NewString()
	approved := &domain.AccessRequest{
		AccessRequestID: requestID,
		Reference:       "AR-00002",
		State:           domain.AccessRequestApproved,
		PaymentMethod:   domain.PaymentCredits,
		CreditsUsed:     decimal.NewFromInt(4),
	}
	suite.mockService.On("Approve", mock.AnythingOfType("*context.valueCtx"), requestID, suite.userID).Return(approved, nil).Once()

	w := suite.do(http.MethodPost, fmt.Sprintf("/api/v1/access-requests/%s/approve", requestID), nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.AccessRequestResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(domain.AccessRequestApproved, resp.State)
	suite.True(decimal.NewFromInt(4).Equal(resp.CreditsUsed))
}

func (suite *AccessRequestHandlerTestSuite) TestApprove_InsufficientEntitlement() {
	requestID := uuid.NewString()
	suite.mockService.On("Approve", mock.Anything, requestID, suite.userID).
		Return(nil, fmt.Errorf("%w: 2 credits remaining, 4 needed", apperrors.ErrInsufficientEntitlement)).Once()

	w := suite.do(http.MethodPost, fmt.Sprintf("/api/v1/access-requests/%s/approve", requestID), nil)

	suite.Equal(http.StatusUnprocessableEntity, w.Code)
}

func (suite *AccessRequestHandlerTestSuite) TestList_BindsFilters() {
	suite.mockService.On("ListAccessRequests", mock.Anything, mock.MatchedBy(func(p dto.ListAccessRequestsParams) bool {
		return p.MembershipID == "m-1" && p.State == domain.AccessRequestPending && p.Limit == 5
	})).Return(&dto.ListAccessRequestsResponse{}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/access-requests?membershipID=m-1&state=pending&limit=5", nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.mockService.AssertExpectations(suite.T())
}
