package mappers

import (
	"fmt"

	"storefix/internal/domain/user"
	"storefix/internal/domain/workflow"
	"storefix/internal/infrastructure/persistence/models"
)

// UserMapper handles the conversion between User domain entities and persistence models.
type UserMapper interface {
	ToModel(u *user.User) *models.UserModel
	ToDomain(model *models.UserModel) (*user.User, error)
}

type UserMapperImpl struct{}

func NewUserMapper() UserMapper {
	return &UserMapperImpl{}
}

func (m *UserMapperImpl) ToModel(u *user.User) *models.UserModel {
	return &models.UserModel{
		ID:        u.ID(),
		Name:      u.Name(),
		Role:      string(u.Role()),
		CompanyID: u.CompanyID(),
		Active:    u.Active(),
	}
}

func (m *UserMapperImpl) ToDomain(model *models.UserModel) (*user.User, error) {
	role := workflow.NormalizeRole(model.Role)
	if !role.IsValid() {
		return nil, fmt.Errorf("invalid user role (id=%d): %s", model.ID, model.Role)
	}
	return user.ReconstructUser(model.ID, model.Name, role, model.CompanyID, model.Active)
}
