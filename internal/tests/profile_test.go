// internal/tests/profile_test.go
package tests

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/gigworks/gigworks-backend/internal/models"
)

type ProfileTestSuite struct {
	suite.Suite
	env      *testEnv
	business testAccount
	customer testAccount
}

func (s *ProfileTestSuite) SetupTest() {
	s.env = newTestEnv(s.T())
	s.business = s.env.registerAccount("business")
	s.customer = s.env.registerAccount("customer")
}

func (s *ProfileTestSuite) TestGetProfileRequiresAuth() {
	w := s.env.request(http.MethodGet, "/v1/profile/"+s.business.UserID, "", nil)
	s.Equal(http.StatusUnauthorized, w.Code)

	w = s.env.request(http.MethodGet, "/v1/profile/"+s.business.UserID, s.customer.Token, nil)
	s.Equal(http.StatusOK, w.Code)

	data := decodeData(s.T(), w)
	s.Equal(s.business.UserID, data["user"])
	s.Equal(s.business.Username, data["username"])
	s.Equal("business", data["type"])
}

func (s *ProfileTestSuite) TestGetProfileUnknownUser() {
	w := s.env.request(http.MethodGet, "/v1/profile/00000000-0000-0000-0000-000000000000", s.customer.Token, nil)
	s.Equal(http.StatusNotFound, w.Code)
}

func (s *ProfileTestSuite) TestUpdateProfileOwnerOnly() {
	w := s.env.request(http.MethodPatch, "/v1/profile/"+s.business.UserID, s.customer.Token, map[string]interface{}{
		"first_name": "Mallory",
	})
	s.Equal(http.StatusForbidden, w.Code)

	w = s.env.request(http.MethodPatch, "/v1/profile/"+s.business.UserID, s.business.Token, map[string]interface{}{
		"first_name":    "Anna",
		"last_name":     "Berg",
		"location":      "Hamburg",
		"tel":           "+49 40 123456",
		"working_hours": "9-17",
	})
	s.Equal(http.StatusOK, w.Code, w.Body.String())

	var profile models.Profile
	s.NoError(s.env.db.Where("user_id = ?", s.business.UserID).First(&profile).Error)
	s.Equal("Anna", profile.FirstName)
	s.Equal("Hamburg", profile.Location)
	s.Nil(profile.UploadedAt, "uploaded_at only moves with the avatar file")
}

func (s *ProfileTestSuite) TestUpdateProfileEmail() {
	w := s.env.request(http.MethodPatch, "/v1/profile/"+s.customer.UserID, s.customer.Token, map[string]interface{}{
		"email": "new-address@example.com",
	})
	s.Equal(http.StatusOK, w.Code, w.Body.String())

	var user models.User
	s.NoError(s.env.db.Where("username = ?", s.customer.Username).First(&user).Error)
	s.Equal("new-address@example.com", user.Email)

	// Taking another account's email fails
	w = s.env.request(http.MethodPatch, "/v1/profile/"+s.customer.UserID, s.customer.Token, map[string]interface{}{
		"email": s.business.Username + "@example.com",
	})
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *ProfileTestSuite) TestRoleFilteredListings() {
	s.env.registerAccount("business")

	w := s.env.request(http.MethodGet, "/v1/profiles/business", s.customer.Token, nil)
	s.Equal(http.StatusOK, w.Code)
	s.Len(decodeList(s.T(), w), 2)

	w = s.env.request(http.MethodGet, "/v1/profiles/customer", s.customer.Token, nil)
	s.Equal(http.StatusOK, w.Code)
	items := decodeList(s.T(), w)
	s.Require().Len(items, 1)
	s.Equal(s.customer.UserID, items[0].(map[string]interface{})["user"])

	w = s.env.request(http.MethodGet, "/v1/profiles/business", "", nil)
	s.Equal(http.StatusUnauthorized, w.Code)
}

func TestProfileTestSuite(t *testing.T) {
	suite.Run(t, new(ProfileTestSuite))
}
