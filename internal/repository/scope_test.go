package repository_test

import (
	"testing"

	"crm-backend/internal/database/models"
	"crm-backend/internal/repository"
	"crm-backend/internal/testutils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

// ScopeTestSuite verifies tenant and role scoping against a real
// Postgres, because the subqueries involved are exactly the kind of SQL
// an in-memory fake would get wrong.
type ScopeTestSuite struct {
	*testutils.BaseTestSuite
	accounts *repository.AccountRepository

	org1   *models.Organization
	org2   *models.Organization
	admin  *models.Profile // org1 admin
	member *models.Profile // org1 plain member
	other  *models.Profile // org2 admin

	acctByAdmin  *models.Account // org1, only the admin should see it
	acctByMember *models.Account // org1, created by the member
	acctAssigned *models.Account // org1, member directly assigned
	acctViaTeam  *models.Account // org1, assigned to the member's team
	acctOrg2     *models.Account // other tenant
}

func (s *ScopeTestSuite) SetupTest() {
	s.CleanTestDB()
	s.accounts = repository.NewAccountRepository(s.DB)

	orgFactory := testutils.NewOrganizationFactory()
	userFactory := testutils.NewUserFactory()
	profileFactory := testutils.NewProfileFactory()

	s.org1 = orgFactory.Create()
	s.org2 = orgFactory.Create()
	s.Require().NoError(s.DB.Create(s.org1).Error)
	s.Require().NoError(s.DB.Create(s.org2).Error)

	adminUser := userFactory.Create()
	memberUser := userFactory.Create()
	otherUser := userFactory.Create()
	s.Require().NoError(s.DB.Create(adminUser).Error)
	s.Require().NoError(s.DB.Create(memberUser).Error)
	s.Require().NoError(s.DB.Create(otherUser).Error)

	s.admin = profileFactory.WithRole(adminUser.ID, s.org1.ID, models.ProfileRoleAdmin)
	s.member = profileFactory.WithMembership(memberUser.ID, s.org1.ID)
	s.other = profileFactory.WithRole(otherUser.ID, s.org2.ID, models.ProfileRoleAdmin)
	s.Require().NoError(s.DB.Create(s.admin).Error)
	s.Require().NoError(s.DB.Create(s.member).Error)
	s.Require().NoError(s.DB.Create(s.other).Error)

	team := testutils.NewTeamFactory().Create(s.org1.ID)
	s.Require().NoError(s.DB.Create(team).Error)
	s.Require().NoError(s.DB.Model(team).Association("Users").Append(s.member))

	accountFactory := testutils.NewAccountFactory()
	s.acctByAdmin = accountFactory.Create(s.org1.ID, &s.admin.ID)
	s.acctByMember = accountFactory.Create(s.org1.ID, &s.member.ID)
	s.acctAssigned = accountFactory.Create(s.org1.ID, &s.admin.ID)
	s.acctViaTeam = accountFactory.Create(s.org1.ID, &s.admin.ID)
	s.acctOrg2 = accountFactory.Create(s.org2.ID, &s.other.ID)
	for _, a := range []*models.Account{s.acctByAdmin, s.acctByMember, s.acctAssigned, s.acctViaTeam, s.acctOrg2} {
		s.Require().NoError(s.DB.Create(a).Error)
	}

	s.Require().NoError(s.accounts.ReplaceAssignedTo(s.acctAssigned, []models.Profile{*s.member}))
	s.Require().NoError(s.accounts.ReplaceTeams(s.acctViaTeam, []models.Team{*team}))
}

func (s *ScopeTestSuite) listIDs(p *models.Profile) []uuid.UUID {
	accounts, total, err := s.accounts.List(p, repository.AccountFilter{}, 100, 0)
	s.Require().NoError(err)
	s.Require().Equal(int64(len(accounts)), total)
	ids := make([]uuid.UUID, 0, len(accounts))
	for _, a := range accounts {
		ids = append(ids, a.ID)
	}
	return ids
}

func (s *ScopeTestSuite) TestAdminSeesWholeOrganization() {
	ids := s.listIDs(s.admin)
	s.Len(ids, 4)
	s.Contains(ids, s.acctByAdmin.ID)
	s.Contains(ids, s.acctByMember.ID)
	s.NotContains(ids, s.acctOrg2.ID)
}

func (s *ScopeTestSuite) TestMemberSeesCreatedAssignedAndTeamRows() {
	ids := s.listIDs(s.member)
	s.Len(ids, 3)
	s.Contains(ids, s.acctByMember.ID)
	s.Contains(ids, s.acctAssigned.ID)
	s.Contains(ids, s.acctViaTeam.ID)
	s.NotContains(ids, s.acctByAdmin.ID)
}

func (s *ScopeTestSuite) TestOtherTenantSeesNothing() {
	ids := s.listIDs(s.other)
	s.Equal([]uuid.UUID{s.acctOrg2.ID}, ids)
}

func (s *ScopeTestSuite) TestCrossTenantLookupBehavesLikeMissingRow() {
	_, err := s.accounts.GetByID(s.org2.ID, s.acctByAdmin.ID)
	s.ErrorIs(err, gorm.ErrRecordNotFound)
}

func (s *ScopeTestSuite) TestFiltersApplyAfterScoping() {
	// A name filter matching an invisible row must not reveal it.
	accounts, total, err := s.accounts.List(s.member, repository.AccountFilter{Name: s.acctByAdmin.Name}, 100, 0)
	s.NoError(err)
	s.Empty(accounts)
	s.Zero(total)

	accounts, total, err = s.accounts.List(s.member, repository.AccountFilter{Name: s.acctByMember.Name}, 100, 0)
	s.NoError(err)
	s.Equal(int64(1), total)
	s.Require().Len(accounts, 1)
	s.Equal(s.acctByMember.ID, accounts[0].ID)
}

func (s *ScopeTestSuite) TestSuperuserBypassesRoleScoping() {
	superUser := testutils.NewUserFactory().Create()
	superUser.IsSuperuser = true
	s.Require().NoError(s.DB.Create(superUser).Error)
	profile := testutils.NewProfileFactory().WithMembership(superUser.ID, s.org1.ID)
	profile.User = *superUser
	s.Require().NoError(s.DB.Create(profile).Error)

	ids := s.listIDs(profile)
	s.Len(ids, 4)
}

// TestScopeTestSuite runs the test suite
func TestScopeTestSuite(t *testing.T) {
	suite.Run(t, &ScopeTestSuite{BaseTestSuite: testutils.SetupTestSuite(t)})
}
