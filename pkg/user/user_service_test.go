package user

import (
	"context"
	"testing"

	"bloodbank/domain"
	"bloodbank/internal/metrics"
	"bloodbank/internal/testutil/inmem"
	"bloodbank/internal/utils"
	"bloodbank/pkg/jwt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"
)

type UserServiceSuite struct {
	suite.Suite

	ctx     context.Context
	store   *inmem.Store
	jwt     jwt.JWTService
	metrics *metrics.Metrics
	service UserService
}

func TestUserServiceSuite(t *testing.T) {
	suite.Run(t, new(UserServiceSuite))
}

func (s *UserServiceSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = inmem.New()
	s.jwt = jwt.NewJWTService("test-secret")
	s.metrics = metrics.New(prometheus.NewRegistry())
	s.service = NewUserService(s.store, s.jwt, utils.NewValidator(), s.metrics)
}

func registration(username, email string) domain.RegisterRequest {
	return domain.RegisterRequest{
		Username:  username,
		Email:     email,
		Password:  "supersecret",
		FirstName: "John",
		LastName:  "Doe",
	}
}

func (s *UserServiceSuite) TestRegisterCreatesDonor() {
	user, err := s.service.Register(s.ctx, registration(" john ", "John@Example.com"))
	s.Require().NoError(err)

	s.Equal("john", user.Username)
	s.Equal("john@example.com", user.Email)
	s.Equal(domain.RoleDonor, user.Role)
	s.False(user.HasProfile)
	s.Equal(1.0, testutil.ToFloat64(s.metrics.UsersRegistered))

	stored, err := s.store.GetUserByUsername(s.ctx, "john")
	s.Require().NoError(err)
	s.NotEqual("supersecret", stored.PasswordHash)
}

func (s *UserServiceSuite) TestRegisterRejectsDuplicates() {
	_, err := s.service.Register(s.ctx, registration("john", "john@example.com"))
	s.Require().NoError(err)

	_, err = s.service.Register(s.ctx, registration("john", "other@example.com"))
	s.ErrorIs(err, domain.ErrConflict)
	s.ErrorIs(err, domain.ErrUsernameTaken)

	_, err = s.service.Register(s.ctx, registration("johnny", "JOHN@example.com"))
	s.ErrorIs(err, domain.ErrEmailTaken)
}

func (s *UserServiceSuite) TestRegisterValidation() {
	cases := map[string]domain.RegisterRequest{
		"short password":   {Username: "john", Email: "john@example.com", Password: "short"},
		"bad email":        {Username: "john", Email: "john", Password: "supersecret"},
		"bad username":     {Username: "john doe!", Email: "john@example.com", Password: "supersecret"},
		"missing username": {Email: "john@example.com", Password: "supersecret"},
	}

	for name, req := range cases {
		s.Run(name, func() {
			_, err := s.service.Register(s.ctx, req)
			s.ErrorIs(err, domain.ErrValidation)
		})
	}
}

func (s *UserServiceSuite) TestCreateAdmin() {
	admin, err := s.service.CreateAdmin(s.ctx, registration("root", "root@example.com"))
	s.Require().NoError(err)
	s.Equal(domain.RoleAdmin, admin.Role)
	s.Equal(0.0, testutil.ToFloat64(s.metrics.UsersRegistered))
}

func (s *UserServiceSuite) TestLogin() {
	registered, err := s.service.Register(s.ctx, registration("john", "john@example.com"))
	s.Require().NoError(err)

	res, err := s.service.Login(s.ctx, domain.LoginRequest{Username: "john", Password: "supersecret"})
	s.Require().NoError(err)
	s.Equal(domain.RoleDonor, res.Role)
	s.Equal(registered.ID, res.User.ID)

	principal, err := s.jwt.GetPrincipalByToken(res.Token)
	s.Require().NoError(err)
	s.Equal(registered.ID, principal.UserID)
	s.Equal(domain.RoleDonor, principal.Role)
}

func (s *UserServiceSuite) TestLoginFailures() {
	_, err := s.service.Register(s.ctx, registration("john", "john@example.com"))
	s.Require().NoError(err)

	_, err = s.service.Login(s.ctx, domain.LoginRequest{Username: "john", Password: "wrong-password"})
	s.ErrorIs(err, domain.ErrInvalidCredentials)

	_, err = s.service.Login(s.ctx, domain.LoginRequest{Username: "nobody", Password: "supersecret"})
	s.ErrorIs(err, domain.ErrInvalidCredentials)

	_, err = s.service.Login(s.ctx, domain.LoginRequest{Username: "john"})
	s.ErrorIs(err, domain.ErrValidation)
}

func (s *UserServiceSuite) TestMe() {
	registered, err := s.service.Register(s.ctx, registration("john", "john@example.com"))
	s.Require().NoError(err)
	p := domain.Principal{UserID: registered.ID, Role: domain.RoleDonor}

	me, err := s.service.Me(s.ctx, p)
	s.Require().NoError(err)
	s.Equal("john", me.Username)
	s.False(me.HasProfile)

	_, err = s.service.Me(s.ctx, domain.Principal{})
	s.ErrorIs(err, domain.ErrUnauthenticated)
}
