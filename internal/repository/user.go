package repository

import (
	"github.com/linskybing/simtrack/internal/domain/user"
	"gorm.io/gorm"
)

type UserRepo interface {
	GetAllUsers() ([]user.User, error)
	GetUserByID(id uint) (user.User, error)
	GetUserByUsername(username string) (user.User, error)
	CountUsers() (int64, error)
	SaveUser(u *user.User) error
	DeleteUser(id uint) error
	WithTx(tx *gorm.DB) UserRepo
}

type DBUserRepo struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) *DBUserRepo {
	return &DBUserRepo{
		db: db,
	}
}

func (r *DBUserRepo) GetAllUsers() ([]user.User, error) {
	var users []user.User
	err := r.db.Order("u_id ASC").Find(&users).Error
	return users, err
}

func (r *DBUserRepo) GetUserByID(id uint) (user.User, error) {
	var u user.User
	err := r.db.First(&u, id).Error
	return u, err
}

func (r *DBUserRepo) GetUserByUsername(username string) (user.User, error) {
	var u user.User
	if err := r.db.Where("username = ?", username).First(&u).Error; err != nil {
		return u, err
	}
	return u, nil
}

func (r *DBUserRepo) CountUsers() (int64, error) {
	var total int64
	err := r.db.Model(&user.User{}).Count(&total).Error
	return total, err
}

func (r *DBUserRepo) SaveUser(u *user.User) error {
	return r.db.Save(u).Error
}

func (r *DBUserRepo) DeleteUser(id uint) error {
	return r.db.Delete(&user.User{}, id).Error
}

func (r *DBUserRepo) WithTx(tx *gorm.DB) UserRepo {
	if tx == nil {
		return r
	}
	return &DBUserRepo{
		db: tx,
	}
}
