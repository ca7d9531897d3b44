package sheets

import (
	"context"
	"time"

	domainErrors "github.com/dokonbot/dokonbot/internal/domain/errors"
	"github.com/dokonbot/dokonbot/internal/domain/model"
)

type userRepository struct {
	storage *Storage
}

func encodeUser(user model.User) []interface{} {
	return []interface{}{
		user.ID,
		user.Username,
		user.FirstName,
		user.LastName,
		string(user.Role),
		formatBool(user.Active),
		user.Language,
		formatTime(user.CreatedAt),
	}
}

func decodeUser(row []interface{}) model.User {
	return model.User{
		ID:        cellString(row, 0),
		Username:  cellString(row, 1),
		FirstName: cellString(row, 2),
		LastName:  cellString(row, 3),
		Role:      model.UserRole(cellString(row, 4)),
		Active:    cellBool(row, 5),
		Language:  cellString(row, 6),
		CreatedAt: cellTime(row, 7),
	}
}

// Create stores the user under its chat platform identifier; no id is
// generated here.
func (r *userRepository) Create(ctx context.Context, user model.User) (*model.User, error) {
	user.CreatedAt = time.Now()
	if err := r.storage.appendRow(ctx, tabUsers, encodeUser(user)); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByID(ctx context.Context, userID string) (*model.User, error) {
	_, row, found, err := r.storage.findRow(ctx, tabUsers, userID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, domainErrors.ErrNotFound
	}
	user := decodeUser(row)
	return &user, nil
}

func (r *userRepository) ListAll(ctx context.Context, activeOnly bool) ([]model.User, error) {
	rows, err := r.storage.allRows(ctx, tabUsers)
	if err != nil {
		return nil, err
	}
	var result []model.User
	for _, row := range rows {
		if cellString(row, 0) == "" {
			continue
		}
		user := decodeUser(row)
		if activeOnly && !user.Active {
			continue
		}
		result = append(result, user)
	}
	return result, nil
}

func (r *userRepository) Update(ctx context.Context, user *model.User) error {
	rowNum, _, found, err := r.storage.findRow(ctx, tabUsers, user.ID)
	if err != nil {
		return err
	}
	if !found {
		return domainErrors.ErrNotFound
	}
	return r.storage.updateRow(ctx, tabUsers, rowNum, encodeUser(*user))
}
