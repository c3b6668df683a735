// internal/tests/offer_test.go
package tests

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/gigworks/gigworks-backend/internal/models"
)

type OfferTestSuite struct {
	suite.Suite
	env      *testEnv
	business testAccount
	customer testAccount
}

func (s *OfferTestSuite) SetupTest() {
	s.env = newTestEnv(s.T())
	s.business = s.env.registerAccount("business")
	s.customer = s.env.registerAccount("customer")
}

// createOffer posts a standard three-tier offer and returns its id plus a
// map of tier label to detail id.
func createOffer(env *testEnv, token string) (string, map[string]string) {
	env.t.Helper()

	w := env.request(http.MethodPost, "/v1/offers", token, map[string]interface{}{
		"title":       "Logo Design",
		"description": "Professional logo design in three packages",
		"details": []map[string]interface{}{
			{
				"title":                 "Basic Logo",
				"revisions":             2,
				"delivery_time_in_days": 5,
				"price":                 50.0,
				"features":              []string{"1 concept", "PNG export"},
				"offer_type":            "basic",
			},
			{
				"title":                 "Standard Logo",
				"revisions":             5,
				"delivery_time_in_days": 7,
				"price":                 120.0,
				"features":              []string{"3 concepts", "Vector files"},
				"offer_type":            "standard",
			},
			{
				"title":                 "Premium Logo",
				"revisions":             10,
				"delivery_time_in_days": 10,
				"price":                 300.0,
				"features":              []string{"5 concepts", "Full brand kit"},
				"offer_type":            "premium",
			},
		},
	})
	require.Equal(env.t, http.StatusCreated, w.Code, w.Body.String())

	data := decodeData(env.t, w)
	offerID := data["id"].(string)

	detailIDs := make(map[string]string)
	for _, d := range data["details"].([]interface{}) {
		detail := d.(map[string]interface{})
		detailIDs[detail["offer_type"].(string)] = detail["id"].(string)
	}
	return offerID, detailIDs
}

func offerViews(t *testing.T, w *httptest.ResponseRecorder) []map[string]interface{} {
	t.Helper()
	items := decodeList(t, w)
	views := make([]map[string]interface{}, 0, len(items))
	for _, item := range items {
		views = append(views, item.(map[string]interface{}))
	}
	return views
}

func (s *OfferTestSuite) TestCreateOfferDerivesMinima() {
	offerID, detailIDs := createOffer(s.env, s.business.Token)
	s.Len(detailIDs, 3)

	w := s.env.request(http.MethodGet, "/v1/offers/"+offerID, s.customer.Token, nil)
	s.Equal(http.StatusOK, w.Code)

	data := decodeData(s.T(), w)
	s.Equal(50.0, data["min_price"])
	s.Equal(5.0, data["min_delivery_time"])
}

func (s *OfferTestSuite) TestCreateOfferCustomerForbidden() {
	w := s.env.request(http.MethodPost, "/v1/offers", s.customer.Token, map[string]interface{}{
		"title":       "Nope",
		"description": "customers cannot sell",
		"details":     []map[string]interface{}{},
	})
	s.Equal(http.StatusForbidden, w.Code)
}

func (s *OfferTestSuite) TestCreateOfferInvalidTierRollsBack() {
	w := s.env.request(http.MethodPost, "/v1/offers", s.business.Token, map[string]interface{}{
		"title":       "Broken",
		"description": "one tier has a bad label",
		"details": []map[string]interface{}{
			{
				"title":                 "Basic",
				"revisions":             1,
				"delivery_time_in_days": 3,
				"price":                 10.0,
				"features":              []string{},
				"offer_type":            "deluxe",
			},
		},
	})
	s.Equal(http.StatusBadRequest, w.Code)

	var offers, details int64
	s.env.db.Model(&models.Offer{}).Count(&offers)
	s.env.db.Model(&models.OfferDetail{}).Count(&details)
	s.Zero(offers)
	s.Zero(details)
}

func (s *OfferTestSuite) TestListOffersPublicWithFilters() {
	createOffer(s.env, s.business.Token)

	other := s.env.registerAccount("business")
	w := s.env.request(http.MethodPost, "/v1/offers", other.Token, map[string]interface{}{
		"title":       "Fast Banner",
		"description": "Quick banner design",
		"details": []map[string]interface{}{
			{
				"title":                 "Banner Basic",
				"revisions":             1,
				"delivery_time_in_days": 2,
				"price":                 25.0,
				"features":              []string{"1 banner"},
				"offer_type":            "basic",
			},
		},
	})
	s.Equal(http.StatusCreated, w.Code)

	// No auth needed for listing
	w = s.env.request(http.MethodGet, "/v1/offers", "", nil)
	s.Equal(http.StatusOK, w.Code)
	s.Len(offerViews(s.T(), w), 2)

	// Exact tier price match
	w = s.env.request(http.MethodGet, "/v1/offers?min_price=120", "", nil)
	s.Equal(http.StatusOK, w.Code)
	views := offerViews(s.T(), w)
	s.Len(views, 1)
	s.Equal("Logo Design", views[0]["title"])

	// A price between tiers matches nothing
	w = s.env.request(http.MethodGet, "/v1/offers?min_price=60", "", nil)
	s.Empty(offerViews(s.T(), w))

	// Fastest tier must be within the bound
	w = s.env.request(http.MethodGet, "/v1/offers?max_delivery_time=3", "", nil)
	views = offerViews(s.T(), w)
	s.Len(views, 1)
	s.Equal("Fast Banner", views[0]["title"])

	// Search over title and description
	w = s.env.request(http.MethodGet, "/v1/offers?search=banner", "", nil)
	s.Len(offerViews(s.T(), w), 1)

	// Filter by creator
	w = s.env.request(http.MethodGet, "/v1/offers?creator_id="+other.UserID, "", nil)
	views = offerViews(s.T(), w)
	s.Len(views, 1)
	s.Equal(other.UserID, views[0]["user"])
}

func (s *OfferTestSuite) TestListOffersOrderByMinPrice() {
	createOffer(s.env, s.business.Token) // min 50

	w := s.env.request(http.MethodPost, "/v1/offers", s.business.Token, map[string]interface{}{
		"title":       "Cheap Sketch",
		"description": "A very small job",
		"details": []map[string]interface{}{
			{
				"title":                 "Sketch",
				"revisions":             0,
				"delivery_time_in_days": 1,
				"price":                 5.0,
				"features":              []string{},
				"offer_type":            "basic",
			},
		},
	})
	s.Equal(http.StatusCreated, w.Code)

	w = s.env.request(http.MethodGet, "/v1/offers?ordering=min_price", "", nil)
	views := offerViews(s.T(), w)
	s.Require().Len(views, 2)
	s.Equal("Cheap Sketch", views[0]["title"])
	s.Equal("Logo Design", views[1]["title"])

	w = s.env.request(http.MethodGet, "/v1/offers?ordering=-min_price", "", nil)
	views = offerViews(s.T(), w)
	s.Require().Len(views, 2)
	s.Equal("Logo Design", views[0]["title"])
}

func (s *OfferTestSuite) TestGetOfferRequiresAuth() {
	offerID, _ := createOffer(s.env, s.business.Token)

	w := s.env.request(http.MethodGet, "/v1/offers/"+offerID, "", nil)
	s.Equal(http.StatusUnauthorized, w.Code)
}

func (s *OfferTestSuite) TestUpdateOfferByLabel() {
	offerID, _ := createOffer(s.env, s.business.Token)

	w := s.env.request(http.MethodPatch, "/v1/offers/"+offerID, s.business.Token, map[string]interface{}{
		"title": "Logo Design Pro",
		"details": []map[string]interface{}{
			{
				"title":                 "Basic Logo Plus",
				"revisions":             3,
				"delivery_time_in_days": 4,
				"price":                 60.0,
				"features":              []string{"2 concepts"},
				"offer_type":            "basic",
			},
		},
	})
	s.Equal(http.StatusOK, w.Code, w.Body.String())

	data := decodeData(s.T(), w)
	s.Equal("Logo Design Pro", data["title"])
	s.Equal(60.0, data["min_price"])
	s.Equal(4.0, data["min_delivery_time"])
	s.Len(data["details"].([]interface{}), 3, "untouched tiers survive the patch")
}

func (s *OfferTestSuite) TestUpdateOfferUnknownLabelFails() {
	offerID, _ := createOffer(s.env, s.business.Token)

	// Remove the premium tier, then try to patch it
	s.NoError(s.env.db.Where("offer_type = ?", "premium").Delete(&models.OfferDetail{}).Error)

	w := s.env.request(http.MethodPatch, "/v1/offers/"+offerID, s.business.Token, map[string]interface{}{
		"title": "Should Not Stick",
		"details": []map[string]interface{}{
			{
				"title":                 "Premium",
				"revisions":             1,
				"delivery_time_in_days": 1,
				"price":                 500.0,
				"features":              []string{},
				"offer_type":            "premium",
			},
		},
	})
	s.Equal(http.StatusBadRequest, w.Code)

	var body map[string]interface{}
	s.NoError(json.Unmarshal(w.Body.Bytes(), &body))
	s.Contains(w.Body.String(), "premium", "error names the offending label")

	var offer models.Offer
	s.NoError(s.env.db.First(&offer).Error)
	s.Equal("Logo Design", offer.Title, "title change rolls back with the tier failure")
}

func (s *OfferTestSuite) TestUpdateOfferNonOwnerForbidden() {
	offerID, _ := createOffer(s.env, s.business.Token)

	other := s.env.registerAccount("business")
	w := s.env.request(http.MethodPatch, "/v1/offers/"+offerID, other.Token, map[string]interface{}{
		"title": "Hijacked",
	})
	s.Equal(http.StatusForbidden, w.Code)
}

func (s *OfferTestSuite) TestDeleteOffer() {
	offerID, _ := createOffer(s.env, s.business.Token)

	w := s.env.request(http.MethodDelete, "/v1/offers/"+offerID, s.customer.Token, nil)
	s.Equal(http.StatusForbidden, w.Code)

	w = s.env.request(http.MethodDelete, "/v1/offers/"+offerID, s.business.Token, nil)
	s.Equal(http.StatusOK, w.Code)

	w = s.env.request(http.MethodGet, "/v1/offers/"+offerID, s.business.Token, nil)
	s.Equal(http.StatusNotFound, w.Code)

	var details int64
	s.env.db.Model(&models.OfferDetail{}).Count(&details)
	s.Zero(details, "tiers go with the offer")
}

func (s *OfferTestSuite) TestGetOfferDetail() {
	_, detailIDs := createOffer(s.env, s.business.Token)

	w := s.env.request(http.MethodGet, "/v1/offer-details/"+detailIDs["standard"], s.customer.Token, nil)
	s.Equal(http.StatusOK, w.Code)

	data := decodeData(s.T(), w)
	s.Equal("standard", data["offer_type"])
	s.Equal(120.0, data["price"])

	w = s.env.request(http.MethodGet, "/v1/offer-details/00000000-0000-0000-0000-000000000000", s.customer.Token, nil)
	s.Equal(http.StatusNotFound, w.Code)
}

func TestOfferTestSuite(t *testing.T) {
	suite.Run(t, new(OfferTestSuite))
}
