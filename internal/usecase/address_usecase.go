package usecase

import (
	"context"
	"net/http"
	"strings"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
)

type AddressCreateInput struct {
	FullName   string
	Phone      string
	Line1      string
	Line2      string
	City       string
	PostalCode string
}

type AddressUsecase struct {
	addresses repo.AddressRepository
}

func NewAddressUsecase(addresses repo.AddressRepository) *AddressUsecase {
	return &AddressUsecase{addresses: addresses}
}

// 自分の住所一覧
func (u *AddressUsecase) List(ctx context.Context, userID int64) ([]model.Address, error) {
	if userID <= 0 {
		return nil, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	list, err := u.addresses.ListByUserID(ctx, userID)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return list, nil
}

// 住所作成（作成ユーザーに紐づく）
func (u *AddressUsecase) Create(ctx context.Context, userID int64, in AddressCreateInput) (model.Address, error) {
	if userID <= 0 {
		return model.Address{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	//入力チェック
	if strings.TrimSpace(in.FullName) == "" ||
		strings.TrimSpace(in.Line1) == "" ||
		strings.TrimSpace(in.City) == "" ||
		strings.TrimSpace(in.PostalCode) == "" {
		return model.Address{}, NewHTTPError(http.StatusBadRequest, "validation error")
	}

	a, err := u.addresses.Create(ctx, model.Address{
		UserID:     userID,
		FullName:   in.FullName,
		Phone:      in.Phone,
		Line1:      in.Line1,
		Line2:      in.Line2,
		City:       in.City,
		PostalCode: in.PostalCode,
	})
	if err != nil {
		return model.Address{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return a, nil
}
