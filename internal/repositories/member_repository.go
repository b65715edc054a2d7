package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	model "task-tracker.com/task-tracker/internal/models"
)

type MemberRepository struct {
	db  *gorm.DB
	now func() time.Time
}

var (
	ErrMemberNotFound  = errors.New("member not found")
	ErrMemberNameTaken = errors.New("member name already taken")
	ErrMemberHasTasks  = errors.New("member still has tasks")
)

func NewMemberRepository(db *gorm.DB) *MemberRepository {
	return &MemberRepository{db: db, now: utcNow}
}

func (r *MemberRepository) Create(ctx context.Context, member *model.Member) error {
	member.CreatedAt = r.now()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		taken, err := nameTaken(tx, member.Name, 0)
		if err != nil {
			return err
		}
		if taken {
			return ErrMemberNameTaken
		}

		return tx.Omit(clause.Associations).Create(member).Error
	})

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrMemberNameTaken
	}
	if err == nil {
		member.Tasks = []model.Task{}
	}
	return err
}

func (r *MemberRepository) FindByID(ctx context.Context, id uint) (*model.Member, error) {
	var member model.Member
	err := r.db.WithContext(ctx).
		Preload("Tasks", newestFirst).
		First(&member, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}
	return &member, nil
}

func (r *MemberRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Member{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *MemberRepository) List(ctx context.Context) ([]model.Member, error) {
	members := make([]model.Member, 0)
	err := r.db.WithContext(ctx).
		Preload("Tasks", newestFirst).
		Order("id asc").
		Find(&members).Error
	return members, err
}

func (r *MemberRepository) Update(ctx context.Context, id uint, changes map[string]any) (*model.Member, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current model.Member
		if err := tx.First(&current, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrMemberNotFound
			}
			return err
		}

		if name, ok := changes["name"].(string); ok && name != current.Name {
			taken, err := nameTaken(tx, name, current.ID)
			if err != nil {
				return err
			}
			if taken {
				return ErrMemberNameTaken
			}
		}

		if len(changes) == 0 {
			return nil
		}
		return tx.Model(&current).Updates(changes).Error
	})

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, ErrMemberNameTaken
	}
	if err != nil {
		return nil, err
	}

	return r.FindByID(ctx, id)
}

// Delete refuses to remove a member while any task still references it. The
// member is returned alongside ErrMemberHasTasks so callers can name it.
func (r *MemberRepository) Delete(ctx context.Context, id uint) (*model.Member, error) {
	var member model.Member

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&member, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrMemberNotFound
			}
			return err
		}

		var assigned int64
		if err := tx.Model(&model.Task{}).Where("member_id = ?", id).Count(&assigned).Error; err != nil {
			return err
		}
		if assigned > 0 {
			return ErrMemberHasTasks
		}

		return tx.Delete(&model.Member{}, id).Error
	})

	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		err = ErrMemberHasTasks
	}
	if errors.Is(err, ErrMemberNotFound) {
		return nil, err
	}
	return &member, err
}

func nameTaken(tx *gorm.DB, name string, excludeID uint) (bool, error) {
	var count int64
	err := tx.Model(&model.Member{}).
		Where("name = ? AND id <> ?", name, excludeID).
		Count(&count).Error
	return count > 0, err
}

func newestFirst(db *gorm.DB) *gorm.DB {
	return db.Order("created_at desc").Order("id desc")
}
