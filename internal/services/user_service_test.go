package services

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/suite"

	"amarthrift-backend/database"
	"amarthrift-backend/internal/models"
)

type UserServiceTestSuite struct {
	suite.Suite
	db      *sql.DB
	service *UserService
}

func (suite *UserServiceTestSuite) SetupTest() {
	db, err := database.Initialize(":memory:")
	suite.Require().NoError(err)
	suite.Require().NoError(database.Migrate(db))

	suite.db = db
	suite.service = NewUserService(db)
}

func (suite *UserServiceTestSuite) TearDownTest() {
	suite.db.Close()
}

func (suite *UserServiceTestSuite) TestRegisterAndAuthenticate() {
	user, err := suite.service.Register(&models.UserRegistration{
		Email:    "Shopper@Example.com",
		FullName: "Test Shopper",
		Password: "password123",
	})
	suite.NoError(err)
	suite.Equal("shopper@example.com", user.Email)
	suite.Equal(models.UserRoleCustomer, user.Role)
	suite.NotEqual("password123", user.PasswordHash)

	authed, err := suite.service.Authenticate(&models.UserLogin{
		Email:    "shopper@example.com",
		Password: "password123",
	})
	suite.NoError(err)
	suite.Equal(user.ID, authed.ID)

	_, err = suite.service.Authenticate(&models.UserLogin{
		Email:    "shopper@example.com",
		Password: "wrong-password",
	})
	suite.ErrorIs(err, ErrInvalidCredentials)

	_, err = suite.service.Authenticate(&models.UserLogin{
		Email:    "nobody@example.com",
		Password: "password123",
	})
	suite.ErrorIs(err, ErrInvalidCredentials)
}

func (suite *UserServiceTestSuite) TestRegisterRejectsDuplicates() {
	registration := &models.UserRegistration{
		Email:    "shopper@example.com",
		FullName: "Test Shopper",
		Password: "password123",
	}
	_, err := suite.service.Register(registration)
	suite.Require().NoError(err)

	_, err = suite.service.Register(registration)
	suite.Error(err)
}

func (suite *UserServiceTestSuite) TestRegisterValidation() {
	_, err := suite.service.Register(&models.UserRegistration{
		Email:    "not-an-email",
		FullName: "Test Shopper",
		Password: "password123",
	})
	suite.Error(err)

	_, err = suite.service.Register(&models.UserRegistration{
		Email:    "shopper@example.com",
		FullName: "Test Shopper",
		Password: "short",
	})
	suite.Error(err)
}

func (suite *UserServiceTestSuite) TestFederatedProfile() {
	user, err := suite.service.EnsureFederatedProfile("shopper@example.com", "Test Shopper")
	suite.NoError(err)
	suite.Equal("Test Shopper", user.FullName)
	suite.False(user.HasPassword())

	// Second sign-in returns the same profile
	again, err := suite.service.EnsureFederatedProfile("shopper@example.com", "Renamed")
	suite.NoError(err)
	suite.Equal(user.ID, again.ID)
	suite.Equal("Test Shopper", again.FullName)

	// Password login is rejected for a profile with no local credential
	_, err = suite.service.Authenticate(&models.UserLogin{
		Email:    "shopper@example.com",
		Password: "password123",
	})
	suite.ErrorIs(err, ErrInvalidCredentials)
}

func (suite *UserServiceTestSuite) TestFederatedProfileNameFallback() {
	user, err := suite.service.EnsureFederatedProfile("shopper@example.com", "")
	suite.NoError(err)
	suite.Equal("shopper", user.FullName)

	_, err = suite.service.EnsureFederatedProfile("", "No Email")
	suite.Error(err)
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
