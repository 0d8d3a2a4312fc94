package usecase

import (
	"context"
	"net/http"

	repo "storefront/internal/repository"
)

// 管理画面の顧客一覧・更新。
type AdminUserUsecase struct {
	users repo.UserRepository
}

func NewAdminUserUsecase(users repo.UserRepository) *AdminUserUsecase {
	return &AdminUserUsecase{users: users}
}

type CustomerDTO struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	IsActive bool   `json:"is_active"`
	IsStaff  bool   `json:"is_staff"`
}

type AdminUpdateCustomerInput struct {
	IsActive *bool
}

// 顧客一覧
func (u *AdminUserUsecase) ListCustomers(ctx context.Context) ([]CustomerDTO, error) {
	users, err := u.users.List(ctx)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	out := make([]CustomerDTO, 0, len(users))
	for i := range users {
		out = append(out, CustomerDTO{
			ID:       users[i].ID,
			Username: users[i].Username,
			IsActive: users[i].IsActive,
			IsStaff:  users[i].IsStaff(),
		})
	}
	return out, nil
}

// 顧客の有効/停止切り替え
func (u *AdminUserUsecase) UpdateCustomer(ctx context.Context, userID int64, in AdminUpdateCustomerInput) (CustomerDTO, error) {
	if userID <= 0 {
		return CustomerDTO{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		return CustomerDTO{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if user == nil {
		return CustomerDTO{}, NewHTTPError(http.StatusNotFound, "user not found")
	}

	if in.IsActive != nil {
		user.IsActive = *in.IsActive
		if err := u.users.Update(ctx, user); err != nil {
			return CustomerDTO{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
	}

	return CustomerDTO{
		ID:       user.ID,
		Username: user.Username,
		IsActive: user.IsActive,
		IsStaff:  user.IsStaff(),
	}, nil
}
