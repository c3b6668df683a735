// internal/tests/order_test.go
package tests

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/gigworks/gigworks-backend/internal/models"
)

type OrderTestSuite struct {
	suite.Suite
	env       *testEnv
	business  testAccount
	customer  testAccount
	offerID   string
	detailIDs map[string]string
}

func (s *OrderTestSuite) SetupTest() {
	s.env = newTestEnv(s.T())
	s.business = s.env.registerAccount("business")
	s.customer = s.env.registerAccount("customer")
	s.offerID, s.detailIDs = createOffer(s.env, s.business.Token)
}

func (s *OrderTestSuite) placeOrder() string {
	w := s.env.request(http.MethodPost, "/v1/orders", s.customer.Token, map[string]interface{}{
		"offer_detail_id": s.detailIDs["standard"],
	})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	return decodeData(s.T(), w)["id"].(string)
}

func (s *OrderTestSuite) TestCreateOrderSnapshotsBusinessParty() {
	w := s.env.request(http.MethodPost, "/v1/orders", s.customer.Token, map[string]interface{}{
		"offer_detail_id": s.detailIDs["standard"],
	})
	s.Equal(http.StatusCreated, w.Code, w.Body.String())

	data := decodeData(s.T(), w)
	s.Equal(s.customer.UserID, data["customer_user"])
	s.Equal(s.business.UserID, data["business_user"])
	s.Equal("in_progress", data["status"])
	s.Equal("Standard Logo", data["title"])
	s.Equal(120.0, data["price"])
	s.Equal(7.0, data["delivery_time_in_days"])
}

func (s *OrderTestSuite) TestBusinessPartySurvivesOfferReassignment() {
	s.placeOrder()

	// Hand the offer to a different business; the order keeps the party
	// recorded at creation time.
	newOwner := s.env.registerAccount("business")
	s.Require().NoError(s.env.db.Model(&models.Offer{}).
		Where("id = ?", s.offerID).
		Update("user_id", newOwner.UserID).Error)

	w := s.env.request(http.MethodGet, "/v1/orders", s.business.Token, nil)
	s.Equal(http.StatusOK, w.Code)
	orders := decodeList(s.T(), w)
	s.Require().Len(orders, 1)
	order := orders[0].(map[string]interface{})
	s.Equal(s.business.UserID, order["business_user"])

	w = s.env.request(http.MethodGet, "/v1/orders", newOwner.Token, nil)
	s.Equal(http.StatusOK, w.Code)
	s.Empty(decodeList(s.T(), w))
}

func (s *OrderTestSuite) TestCreateOrderRequiresAuth() {
	w := s.env.request(http.MethodPost, "/v1/orders", "", map[string]interface{}{
		"offer_detail_id": s.detailIDs["basic"],
	})
	s.Equal(http.StatusUnauthorized, w.Code)
}

func (s *OrderTestSuite) TestCreateOrderUnknownTierNotFound() {
	w := s.env.request(http.MethodPost, "/v1/orders", s.customer.Token, map[string]interface{}{
		"offer_detail_id": "00000000-0000-0000-0000-000000000000",
	})
	s.Equal(http.StatusNotFound, w.Code)
}

func (s *OrderTestSuite) TestCreateOrderBusinessForbidden() {
	w := s.env.request(http.MethodPost, "/v1/orders", s.business.Token, map[string]interface{}{
		"offer_detail_id": s.detailIDs["basic"],
	})
	s.Equal(http.StatusForbidden, w.Code)
}

func (s *OrderTestSuite) TestListOrdersScopedToParticipants() {
	s.placeOrder()
	bystander := s.env.registerAccount("customer")

	w := s.env.request(http.MethodGet, "/v1/orders", s.customer.Token, nil)
	s.Equal(http.StatusOK, w.Code)
	s.Len(decodeList(s.T(), w), 1)

	w = s.env.request(http.MethodGet, "/v1/orders", s.business.Token, nil)
	s.Equal(http.StatusOK, w.Code)
	s.Len(decodeList(s.T(), w), 1)

	w = s.env.request(http.MethodGet, "/v1/orders", bystander.Token, nil)
	s.Equal(http.StatusOK, w.Code)
	s.Empty(decodeList(s.T(), w))
}

func (s *OrderTestSuite) TestUpdateStatusByBusinessParty() {
	orderID := s.placeOrder()

	w := s.env.request(http.MethodPatch, "/v1/orders/"+orderID, s.business.Token, map[string]interface{}{
		"status": "completed",
	})
	s.Equal(http.StatusOK, w.Code, w.Body.String())
	s.Equal("completed", decodeData(s.T(), w)["status"])
}

func (s *OrderTestSuite) TestUpdateStatusRejectsExtraKeys() {
	orderID := s.placeOrder()

	// A valid status does not save a payload carrying more than status
	w := s.env.request(http.MethodPatch, "/v1/orders/"+orderID, s.business.Token, map[string]interface{}{
		"status": "completed",
		"price":  1.0,
	})
	s.Equal(http.StatusBadRequest, w.Code)

	var order models.Order
	s.NoError(s.env.db.First(&order).Error)
	s.Equal(models.OrderStatusInProgress, order.Status)
}

func (s *OrderTestSuite) TestUpdateStatusUnknownState() {
	orderID := s.placeOrder()

	w := s.env.request(http.MethodPatch, "/v1/orders/"+orderID, s.business.Token, map[string]interface{}{
		"status": "shipped",
	})
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *OrderTestSuite) TestUpdateStatusCustomerForbidden() {
	orderID := s.placeOrder()

	w := s.env.request(http.MethodPatch, "/v1/orders/"+orderID, s.customer.Token, map[string]interface{}{
		"status": "completed",
	})
	s.Equal(http.StatusForbidden, w.Code)
}

func (s *OrderTestSuite) TestDeleteOrderStaffOnly() {
	orderID := s.placeOrder()

	w := s.env.request(http.MethodDelete, "/v1/orders/"+orderID, s.business.Token, nil)
	s.Equal(http.StatusForbidden, w.Code)

	staff := s.env.promoteToStaff(s.env.registerAccount("customer"))
	w = s.env.request(http.MethodDelete, "/v1/orders/"+orderID, staff.Token, nil)
	s.Equal(http.StatusOK, w.Code, w.Body.String())

	var count int64
	s.env.db.Model(&models.Order{}).Count(&count)
	s.Zero(count)
}

func (s *OrderTestSuite) TestOrderCounts() {
	s.placeOrder()
	s.placeOrder()
	completed := s.placeOrder()

	w := s.env.request(http.MethodPatch, "/v1/orders/"+completed, s.business.Token, map[string]interface{}{
		"status": "completed",
	})
	s.Equal(http.StatusOK, w.Code)

	w = s.env.request(http.MethodGet, "/v1/orders/count/"+s.business.UserID, s.customer.Token, nil)
	s.Equal(http.StatusOK, w.Code)
	s.Equal(2.0, decodeData(s.T(), w)["order_count"])

	w = s.env.request(http.MethodGet, "/v1/orders/completed-count/"+s.business.UserID, s.customer.Token, nil)
	s.Equal(http.StatusOK, w.Code)
	s.Equal(1.0, decodeData(s.T(), w)["completed_order_count"])
}

func (s *OrderTestSuite) TestOrderCountNonBusinessNotFound() {
	w := s.env.request(http.MethodGet, "/v1/orders/count/"+s.customer.UserID, s.customer.Token, nil)
	s.Equal(http.StatusNotFound, w.Code)

	w = s.env.request(http.MethodGet, "/v1/orders/completed-count/00000000-0000-0000-0000-000000000000", s.customer.Token, nil)
	s.Equal(http.StatusNotFound, w.Code)
}

func TestOrderTestSuite(t *testing.T) {
	suite.Run(t, new(OrderTestSuite))
}
