package crud

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"wtfSpaces/domain"
)

// FollowingService manages Following edges: the idempotent follow upsert
// and the followed-spaces listing. It implements the
// domain.FollowingService interface.
type FollowingService struct {
	followingGorm
}

type followingGorm struct {
	db *gorm.DB
}

// NewFollowingService returns an instance of FollowingService.
func NewFollowingService(db *gorm.DB) *FollowingService {
	return &FollowingService{
		followingGorm{
			db: db,
		},
	}
}

// Ensure the FollowingService struct properly implements the domain.FollowingService interface.
// If it does not, then this expression becomes invalid and won't compile.
var _ domain.FollowingService = &FollowingService{}

// Upsert creates the Following for (spaceID, userID), or bumps UpdatedAt if
// the edge already exists. The unique index on (space_id, user_id) makes
// concurrent upserts for the same pair converge on one row.
func (fg *followingGorm) Upsert(ctx context.Context, spaceID, userID string) (*domain.Following, error) {
	following := domain.Following{
		SpaceID: spaceID,
		UserID:  userID,
	}
	err := fg.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "space_id"}, {Name: "user_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"updated_at": time.Now(),
			}),
		}).
		Create(&following).Error
	if err != nil {
		return nil, storeErr(ctx, err)
	}

	// On a conflict the insert's generated id never hits the table, so
	// read the edge back by its unique pair.
	var out domain.Following
	err = fg.db.WithContext(ctx).
		Where("space_id = ?", spaceID).
		Where("user_id = ?", userID).
		First(&out).Error
	if err != nil {
		return nil, storeErr(ctx, err)
	}
	return &out, nil
}

// IsFollowing reports whether the user currently follows the space.
func (fg *followingGorm) IsFollowing(ctx context.Context, userID, spaceID string) (bool, error) {
	var following domain.Following
	err := fg.db.WithContext(ctx).
		Where("space_id = ?", spaceID).
		Where("user_id = ?", userID).
		First(&following).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, storeErr(ctx, err)
	}
	return true, nil
}

// FollowedSpaces pages through the user's followings whose space matches
// the finished filter. The sort key is (updated_at, id) on the following
// edge itself; a continuation resumes strictly after the cursor row.
func (fg *followingGorm) FollowedSpaces(ctx context.Context, userID string, req domain.PageRequest, finished bool, order domain.SortOrder) (*domain.Page, error) {
	take, cursor, err := normalizePage(req)
	if err != nil {
		return nil, err
	}
	cmp, err := keysetCompare(order)
	if err != nil {
		return nil, err
	}

	scope := func() *gorm.DB {
		return fg.db.WithContext(ctx).
			Model(&domain.Following{}).
			Joins("JOIN spaces ON spaces.id = followings.space_id").
			Where("followings.user_id = ?", userID).
			Where("spaces.finished = ?", finished)
	}

	query := scope()
	if cursor != "" {
		var after domain.Following
		err := scope().
			Select("followings.id", "followings.updated_at").
			First(&after, "followings.id = ?", cursor).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, invalidCursor()
			}
			return nil, storeErr(ctx, err)
		}
		query = query.Where(
			fmt.Sprintf("(followings.updated_at, followings.id) %s (?, ?)", cmp),
			after.UpdatedAt, after.ID,
		)
	}

	var followings []domain.Following
	err = query.
		Select("followings.id", "followings.space_id", "followings.user_id").
		Order(fmt.Sprintf("followings.updated_at %s, followings.id %s", order, order)).
		Limit(take).
		Find(&followings).Error
	if err != nil {
		return nil, storeErr(ctx, err)
	}

	edges := make([]domain.Edge, 0, len(followings))
	for _, following := range followings {
		edges = append(edges, domain.Edge{
			Cursor: following.ID,
			Node: domain.EdgeNode{
				ID:      following.ID,
				SpaceID: following.SpaceID,
				UserID:  following.UserID,
			},
		})
	}
	return buildPage(edges, take), nil
}
