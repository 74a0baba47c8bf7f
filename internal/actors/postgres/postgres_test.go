package postgres

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/go-pg/pg/v10"
	"github.com/stretchr/testify/suite"

	"github.com/douglatornell/randopony-tetra-sub000/internal/core/model"
	"github.com/douglatornell/randopony-tetra-sub000/internal/core/ports"
)

type PostgresDBTestSuite struct {
	suite.Suite
	db        *pg.DB
	pgAdapter *PostgresDB
}

var dummyTime = time.Now().Truncate(time.Second).UTC()

func (suite *PostgresDBTestSuite) SetupSuite() {
	url := os.Getenv("POSTGRESQL_URL")
	if url == "" {
		suite.T().Skip("POSTGRESQL_URL not set, skipping storage suite")
	}

	opts, err := pg.ParseURL(url)
	suite.Require().NoError(err)
	db := pg.Connect(opts)
	timeoutCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	suite.Require().NoError(db.Ping(timeoutCtx))

	dummyTimeFunc := func() time.Time {
		return dummyTime
	}
	pgAdapter, err := NewPostgresDB(PostgresDBArgs{DB: db}, WithNowFunc(dummyTimeFunc))
	suite.Require().NoError(err)
	suite.pgAdapter = pgAdapter
	suite.db = db
}

func (suite *PostgresDBTestSuite) SetupTest() {
	_, err := suite.db.Exec("TRUNCATE randopony.riders, randopony.brevets, randopony.populaires")
	suite.Require().NoError(err)
}

func (suite *PostgresDBTestSuite) TearDownSuite() {
	if suite.db != nil {
		suite.Require().NoError(suite.db.Close())
	}
}

func TestPostgresDBTestSuite(t *testing.T) {
	suite.Run(t, new(PostgresDBTestSuite))
}

func (suite *PostgresDBTestSuite) newBrevet() *model.Brevet {
	return &model.Brevet{
		Region:         "LM",
		Distance:       200,
		StartTime:      time.Date(2012, time.November, 11, 7, 0, 0, 0, time.UTC),
		RouteName:      "Langley Loop",
		OrganizerEmail: "mcroy@example.com",
	}
}

func (suite *PostgresDBTestSuite) TestSaveBrevetInsertAndUpdate() {
	brevet := suite.newBrevet()

	suite.Require().NoError(suite.pgAdapter.SaveBrevet(context.Background(), brevet))
	suite.NotZero(brevet.ID)
	suite.Equal(dummyTime, brevet.CreatedAt)

	brevet.RouteName = "Fraser Valley Loop"
	suite.Require().NoError(suite.pgAdapter.SaveBrevet(context.Background(), brevet))

	found, err := suite.pgAdapter.FindBrevet(context.Background(), ports.FindBrevetQuery{
		Region:   "LM",
		Distance: 200,
		Day:      time.Date(2012, time.November, 11, 0, 0, 0, 0, time.UTC),
	})
	suite.Require().NoError(err)
	suite.Equal(brevet.ID, found.ID)
	suite.Equal("Fraser Valley Loop", found.RouteName)
}

func (suite *PostgresDBTestSuite) TestFindBrevetDayInterval() {
	brevet := suite.newBrevet()
	suite.Require().NoError(suite.pgAdapter.SaveBrevet(context.Background(), brevet))

	// A start time with a time of day still matches its calendar day.
	found, err := suite.pgAdapter.FindBrevet(context.Background(), ports.FindBrevetQuery{
		Region:   "LM",
		Distance: 200,
		Day:      time.Date(2012, time.November, 11, 0, 0, 0, 0, time.UTC),
	})
	suite.Require().NoError(err)
	suite.Equal(brevet.ID, found.ID)

	// The neighboring day does not.
	_, err = suite.pgAdapter.FindBrevet(context.Background(), ports.FindBrevetQuery{
		Region:   "LM",
		Distance: 200,
		Day:      time.Date(2012, time.November, 12, 0, 0, 0, 0, time.UTC),
	})
	suite.ErrorIs(err, model.ErrNotFound)
}

func (suite *PostgresDBTestSuite) TestFindPopulaire() {
	populaire := &model.Populaire{
		ShortName:      "VicPop",
		DisplayName:    "Victoria Populaire",
		StartTime:      time.Date(2013, time.March, 24, 10, 0, 0, 0, time.UTC),
		Distance:       "50 km, 100 km",
		OrganizerEmail: "mjansson@example.com",
	}
	suite.Require().NoError(suite.pgAdapter.SavePopulaire(context.Background(), populaire))

	found, err := suite.pgAdapter.FindPopulaire(context.Background(), "VicPop")
	suite.Require().NoError(err)
	suite.Equal(populaire.ID, found.ID)
	suite.Equal("Victoria Populaire", found.DisplayName)

	_, err = suite.pgAdapter.FindPopulaire(context.Background(), "NoSuchPop")
	suite.ErrorIs(err, model.ErrNotFound)
}

func (suite *PostgresDBTestSuite) TestSaveRiderDuplicateKey() {
	brevet := suite.newBrevet()
	suite.Require().NoError(suite.pgAdapter.SaveBrevet(context.Background(), brevet))

	rider := &model.Rider{
		EventKind:         model.KindBrevet,
		EventID:           brevet.ID,
		Email:             "tom@example.com",
		FirstName:         "Tom",
		LastName:          "Dickson",
		LowercaseLastName: "dickson",
	}
	suite.Require().NoError(suite.pgAdapter.SaveRider(context.Background(), rider))
	suite.NotZero(rider.ID)

	duplicate := &model.Rider{
		EventKind:         model.KindBrevet,
		EventID:           brevet.ID,
		Email:             "tom@example.com",
		FirstName:         "Tom",
		LastName:          "Dickson",
		LowercaseLastName: "dickson",
	}
	err := suite.pgAdapter.SaveRider(context.Background(), duplicate)
	suite.ErrorIs(err, model.ErrAlreadyRegistered)

	// A case variant of the same triple is a distinct row.
	variant := &model.Rider{
		EventKind:         model.KindBrevet,
		EventID:           brevet.ID,
		Email:             "Tom@Example.com",
		FirstName:         "Tom",
		LastName:          "Dickson",
		LowercaseLastName: "dickson",
	}
	suite.Require().NoError(suite.pgAdapter.SaveRider(context.Background(), variant))
}

func (suite *PostgresDBTestSuite) TestFindRiderRawEquality() {
	brevet := suite.newBrevet()
	suite.Require().NoError(suite.pgAdapter.SaveBrevet(context.Background(), brevet))
	rider := &model.Rider{
		EventKind:         model.KindBrevet,
		EventID:           brevet.ID,
		Email:             "tom@example.com",
		FirstName:         "Tom",
		LastName:          "Dickson",
		LowercaseLastName: "dickson",
	}
	suite.Require().NoError(suite.pgAdapter.SaveRider(context.Background(), rider))

	key := ports.RiderKey{
		EventKind: model.KindBrevet,
		EventID:   brevet.ID,
		Email:     "tom@example.com",
		FirstName: "Tom",
		LastName:  "Dickson",
	}
	found, err := suite.pgAdapter.FindRider(context.Background(), key)
	suite.Require().NoError(err)
	suite.Equal(rider.ID, found.ID)

	key.Email = "TOM@example.com"
	_, err = suite.pgAdapter.FindRider(context.Background(), key)
	suite.ErrorIs(err, model.ErrNotFound)
}

func (suite *PostgresDBTestSuite) TestListRidersOrder() {
	brevet := suite.newBrevet()
	suite.Require().NoError(suite.pgAdapter.SaveBrevet(context.Background(), brevet))
	for _, r := range []struct{ first, last, lower string }{
		{"Tom", "Dickson", "dickson"},
		{"Zoe", "aalders", "aalders"},
		{"Ann", "Baker", "baker"},
	} {
		rider := &model.Rider{
			EventKind:         model.KindBrevet,
			EventID:           brevet.ID,
			Email:             r.first + "@example.com",
			FirstName:         r.first,
			LastName:          r.last,
			LowercaseLastName: r.lower,
		}
		suite.Require().NoError(suite.pgAdapter.SaveRider(context.Background(), rider))
	}

	riders, err := suite.pgAdapter.ListRiders(context.Background(), model.KindBrevet, brevet.ID)
	suite.Require().NoError(err)
	suite.Require().Len(riders, 3)
	suite.Equal("aalders", riders[0].LastName)
	suite.Equal("Baker", riders[1].LastName)
	suite.Equal("Dickson", riders[2].LastName)
}

func (suite *PostgresDBTestSuite) TestUpdateRiderMemberStatus() {
	brevet := suite.newBrevet()
	suite.Require().NoError(suite.pgAdapter.SaveBrevet(context.Background(), brevet))
	rider := &model.Rider{
		EventKind:         model.KindBrevet,
		EventID:           brevet.ID,
		Email:             "tom@example.com",
		FirstName:         "Tom",
		LastName:          "Dickson",
		LowercaseLastName: "dickson",
	}
	suite.Require().NoError(suite.pgAdapter.SaveRider(context.Background(), rider))
	suite.Nil(rider.MemberStatus)

	suite.Require().NoError(suite.pgAdapter.UpdateRiderMemberStatus(context.Background(), rider.ID, true))

	riders, err := suite.pgAdapter.ListRiders(context.Background(), model.KindBrevet, brevet.ID)
	suite.Require().NoError(err)
	suite.Require().Len(riders, 1)
	suite.Require().NotNil(riders[0].MemberStatus)
	suite.True(*riders[0].MemberStatus)
}

func (suite *PostgresDBTestSuite) TestSetRosterDoc() {
	brevet := suite.newBrevet()
	suite.Require().NoError(suite.pgAdapter.SaveBrevet(context.Background(), brevet))

	err := suite.pgAdapter.SetRosterDoc(context.Background(), model.KindBrevet, brevet.ID, "spreadsheet-key-123")
	suite.Require().NoError(err)

	found, err := suite.pgAdapter.FindBrevet(context.Background(), ports.FindBrevetQuery{
		Region:   "LM",
		Distance: 200,
		Day:      time.Date(2012, time.November, 11, 0, 0, 0, 0, time.UTC),
	})
	suite.Require().NoError(err)
	suite.Equal("spreadsheet-key-123", found.RosterDocID)

	err = suite.pgAdapter.SetRosterDoc(context.Background(), model.KindBrevet, brevet.ID+999, "other")
	suite.ErrorIs(err, model.ErrNotFound)
}

func (suite *PostgresDBTestSuite) TestDeleteBrevetRemovesRiders() {
	brevet := suite.newBrevet()
	suite.Require().NoError(suite.pgAdapter.SaveBrevet(context.Background(), brevet))
	rider := &model.Rider{
		EventKind:         model.KindBrevet,
		EventID:           brevet.ID,
		Email:             "tom@example.com",
		FirstName:         "Tom",
		LastName:          "Dickson",
		LowercaseLastName: "dickson",
	}
	suite.Require().NoError(suite.pgAdapter.SaveRider(context.Background(), rider))

	suite.Require().NoError(suite.pgAdapter.DeleteBrevet(context.Background(), brevet.ID))

	_, err := suite.pgAdapter.FindBrevet(context.Background(), ports.FindBrevetQuery{
		Region:   "LM",
		Distance: 200,
		Day:      time.Date(2012, time.November, 11, 0, 0, 0, 0, time.UTC),
	})
	suite.ErrorIs(err, model.ErrNotFound)
	riders, err := suite.pgAdapter.ListRiders(context.Background(), model.KindBrevet, brevet.ID)
	suite.Require().NoError(err)
	suite.Empty(riders)
}
