package services

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/suite"

	"amarthrift-backend/database"
	"amarthrift-backend/internal/models"
)

type ReviewServiceTestSuite struct {
	suite.Suite
	db      *sql.DB
	service *ReviewService
}

func (suite *ReviewServiceTestSuite) SetupTest() {
	db, err := database.Initialize(":memory:")
	suite.Require().NoError(err)
	suite.Require().NoError(database.Migrate(db))

	suite.db = db
	suite.service = NewReviewService(db, NewActivityService(db))
}

func (suite *ReviewServiceTestSuite) TearDownTest() {
	suite.db.Close()
}

func (suite *ReviewServiceTestSuite) TestCreateAndList() {
	review, err := suite.service.Create(&models.ReviewCreation{
		AuthorName: "Fatema Begum",
		Rating:     5,
		Message:    "Great quality for the price",
	})
	suite.NoError(err)
	suite.NotEmpty(review.ID)

	reviews, err := suite.service.List(50, 0)
	suite.NoError(err)
	suite.Len(reviews, 1)
	suite.Equal("Fatema Begum", reviews[0].AuthorName)
	suite.Equal(5, reviews[0].Rating)
}

func (suite *ReviewServiceTestSuite) TestCreateValidatesRating() {
	for _, rating := range []int{0, -1, 6, 100} {
		_, err := suite.service.Create(&models.ReviewCreation{
			AuthorName: "Fatema Begum",
			Rating:     rating,
			Message:    "out of range",
		})
		suite.Error(err, "rating %d", rating)
	}

	for rating := 1; rating <= 5; rating++ {
		_, err := suite.service.Create(&models.ReviewCreation{
			AuthorName: "Fatema Begum",
			Rating:     rating,
			Message:    "in range",
		})
		suite.NoError(err, "rating %d", rating)
	}
}

func (suite *ReviewServiceTestSuite) TestCreateSanitizesInput() {
	review, err := suite.service.Create(&models.ReviewCreation{
		AuthorName: "<b>Fatema</b>",
		Rating:     4,
		Message:    "  nice <script>x</script> shop  ",
	})
	suite.NoError(err)
	suite.Equal("Fatema", review.AuthorName)
	suite.NotContains(review.Message, "<script>")
}

func (suite *ReviewServiceTestSuite) TestDelete() {
	review, err := suite.service.Create(&models.ReviewCreation{
		AuthorName: "Fatema Begum",
		Rating:     3,
		Message:    "average",
	})
	suite.Require().NoError(err)

	suite.NoError(suite.service.Delete(review.ID))
	suite.ErrorIs(suite.service.Delete(review.ID), ErrReviewNotFound)
}

func TestReviewServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReviewServiceTestSuite))
}
