package crud

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"wtfSpaces/domain"
	"wtfSpaces/errs"
)

// SpaceService reads Spaces and answers the hosted-spaces listing. Space
// lifecycle is managed elsewhere; nothing here writes the spaces table.
// It implements the domain.SpaceService interface.
type SpaceService struct {
	spaceGorm
}

type spaceGorm struct {
	db *gorm.DB
}

// NewSpaceService returns an instance of SpaceService.
func NewSpaceService(db *gorm.DB) *SpaceService {
	return &SpaceService{
		spaceGorm{
			db: db,
		},
	}
}

// Ensure the SpaceService struct properly implements the domain.SpaceService interface.
// If it does not, then this expression becomes invalid and won't compile.
var _ domain.SpaceService = &SpaceService{}

// ByID retrieves a Space database record by ID.
func (sg *spaceGorm) ByID(ctx context.Context, id string) (*domain.Space, error) {
	var space domain.Space
	err := sg.db.WithContext(ctx).First(&space, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.Errorf(errs.ENOTFOUND, "The space does not exist.")
		}
		return nil, storeErr(ctx, err)
	}
	return &space, nil
}

// HostUserID returns the host of the given space. A missing space is
// ENOTFOUND, never an empty host, so callers can tell "no such space"
// apart from "not the host".
func (sg *spaceGorm) HostUserID(ctx context.Context, spaceID string) (string, error) {
	var space domain.Space
	err := sg.db.WithContext(ctx).
		Select("id", "host_user_id").
		First(&space, "id = ?", spaceID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", errs.Errorf(errs.ENOTFOUND, "The space does not exist.")
		}
		return "", storeErr(ctx, err)
	}
	return space.HostUserID, nil
}

// HostedSpaces pages through the spaces hosted by the given user. The sort
// key is (open_date, id); a continuation resumes strictly after the cursor
// row, so pages stay stable when rows are inserted or deleted elsewhere in
// the sequence.
func (sg *spaceGorm) HostedSpaces(ctx context.Context, hostUserID string, req domain.PageRequest, finished bool, order domain.SortOrder) (*domain.Page, error) {
	take, cursor, err := normalizePage(req)
	if err != nil {
		return nil, err
	}
	cmp, err := keysetCompare(order)
	if err != nil {
		return nil, err
	}

	scope := func() *gorm.DB {
		return sg.db.WithContext(ctx).
			Model(&domain.Space{}).
			Where("host_user_id = ?", hostUserID).
			Where("finished = ?", finished)
	}

	query := scope()
	if cursor != "" {
		// The cursor must resolve to a row under the current filter,
		// otherwise the caller holds a stale or foreign cursor.
		var after domain.Space
		err := scope().Select("id", "open_date").First(&after, "id = ?", cursor).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, invalidCursor()
			}
			return nil, storeErr(ctx, err)
		}
		query = query.Where(fmt.Sprintf("(open_date, id) %s (?, ?)", cmp), after.OpenDate, after.ID)
	}

	var spaces []domain.Space
	err = query.
		Select("id", "host_user_id").
		Order(fmt.Sprintf("open_date %s, id %s", order, order)).
		Limit(take).
		Find(&spaces).Error
	if err != nil {
		return nil, storeErr(ctx, err)
	}

	edges := make([]domain.Edge, 0, len(spaces))
	for _, space := range spaces {
		edges = append(edges, domain.Edge{
			Cursor: space.ID,
			Node: domain.EdgeNode{
				SpaceID: space.ID,
				UserID:  space.HostUserID,
			},
		})
	}
	return buildPage(edges, take), nil
}
