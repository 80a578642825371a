package application

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/linskybing/simtrack/internal/api/middleware"
	"github.com/linskybing/simtrack/internal/config"
	"github.com/linskybing/simtrack/internal/domain/audit"
	"github.com/linskybing/simtrack/internal/domain/user"
	"github.com/linskybing/simtrack/internal/repository"
	"github.com/linskybing/simtrack/pkg/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrUserNotFound        = errors.New("user not found")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrIncorrectPassword   = errors.New("old password is incorrect")
	ErrMissingOldPassword  = errors.New("old password is required to change password")
	ErrPasswordHashFailure = errors.New("failed to hash new password")
	ErrUsernameTaken       = errors.New("username already taken")
	ErrInvalidRole         = errors.New("invalid role")
	ErrLastAdmin           = errors.New("cannot remove the last admin")
)

type UserService struct {
	Repos *repository.Repos
}

func NewUserService(repos *repository.Repos) *UserService {
	return &UserService{
		Repos: repos,
	}
}

// RegisterUser creates a requester account. The very first account becomes
// the admin so a fresh install can be bootstrapped.
func (s *UserService) RegisterUser(input user.CreateUserInput) (*user.User, error) {
	_, err := s.Repos.User.GetUserByUsername(input.Username)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if err == nil {
		return nil, ErrUsernameTaken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrPasswordHashFailure
	}

	usr := user.User{
		Username: input.Username,
		Password: string(hashed),
		Email:    input.Email,
		FullName: input.FullName,
		Role:     user.RoleRequester,
	}

	count, err := s.Repos.User.CountUsers()
	if err != nil {
		return nil, err
	}
	if count == 0 {
		usr.Role = user.RoleAdmin
	}

	if err := s.Repos.User.SaveUser(&usr); err != nil {
		return nil, err
	}
	return &usr, nil
}

func (s *UserService) LoginUser(username, password string) (user.User, string, error) {
	usr, err := s.Repos.User.GetUserByUsername(username)
	if err != nil {
		return user.User{}, "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(usr.Password), []byte(password)); err != nil {
		return user.User{}, "", ErrInvalidCredentials
	}

	token, err := middleware.GenerateToken(usr.UID, usr.Username, usr.Role, config.TokenTTL)
	if err != nil {
		return user.User{}, "", err
	}

	return usr, token, nil
}

func (s *UserService) ListUsers() ([]user.User, error) {
	return s.Repos.User.GetAllUsers()
}

func (s *UserService) FindUserByID(id uint) (user.User, error) {
	usr, err := s.Repos.User.GetUserByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return user.User{}, ErrUserNotFound
	}
	return usr, err
}

func (s *UserService) UpdateUser(id uint, input user.UpdateUserInput) (user.User, error) {
	usr, err := s.FindUserByID(id)
	if err != nil {
		return user.User{}, err
	}

	if input.Password != nil {
		if input.OldPassword == nil {
			return user.User{}, ErrMissingOldPassword
		}
		if err := bcrypt.CompareHashAndPassword([]byte(usr.Password), []byte(*input.OldPassword)); err != nil {
			return user.User{}, ErrIncorrectPassword
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
		if err != nil {
			return user.User{}, ErrPasswordHashFailure
		}
		usr.Password = string(hashed)
	}
	if input.Email != nil {
		usr.Email = input.Email
	}
	if input.FullName != nil {
		usr.FullName = input.FullName
	}

	if err := s.Repos.User.SaveUser(&usr); err != nil {
		return user.User{}, err
	}
	return usr, nil
}

// UpdateRole changes a user's role. The last admin cannot be demoted.
func (s *UserService) UpdateRole(c *gin.Context, id uint, input user.UpdateRoleInput) (user.User, error) {
	if !user.IsValidRole(input.Role) {
		return user.User{}, ErrInvalidRole
	}
	usr, err := s.FindUserByID(id)
	if err != nil {
		return user.User{}, err
	}
	old := usr

	role := user.Role(input.Role)
	if usr.Role == user.RoleAdmin && role != user.RoleAdmin {
		if err := s.ensureAnotherAdmin(usr.UID); err != nil {
			return user.User{}, err
		}
	}

	usr.Role = role
	if err := s.Repos.User.SaveUser(&usr); err != nil {
		return user.User{}, err
	}
	utils.LogAuditWithConsole(c, audit.ActionUpdate, "user", usr.Username, old, usr, "role change", s.Repos.Audit)
	return usr, nil
}

func (s *UserService) RemoveUser(c *gin.Context, id uint) error {
	usr, err := s.FindUserByID(id)
	if err != nil {
		return err
	}
	if usr.Role == user.RoleAdmin {
		if err := s.ensureAnotherAdmin(usr.UID); err != nil {
			return err
		}
	}

	if err := s.Repos.User.DeleteUser(id); err != nil {
		return err
	}
	utils.LogAuditWithConsole(c, audit.ActionDelete, "user", usr.Username, usr, nil, "", s.Repos.Audit)
	return nil
}

func (s *UserService) ensureAnotherAdmin(uid uint) error {
	users, err := s.Repos.User.GetAllUsers()
	if err != nil {
		return err
	}
	for _, u := range users {
		if u.Role == user.RoleAdmin && u.UID != uid {
			return nil
		}
	}
	return ErrLastAdmin
}
