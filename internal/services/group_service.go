package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"nudgeup/internal/models/db_models"
	"nudgeup/internal/repositories"
	"nudgeup/pkg/memcache"
	"nudgeup/pkg/utils"
)

const inviteCacheTTL = 5 * time.Minute

const maxInviteCodeAttempts = 5

type CreateGroupRequest struct {
	Name       string `json:"name"`
	Icon       string `json:"icon"`
	TotalDays  int    `json:"totalDays"`
	MemberName string `json:"memberName"`
	Avatar     string `json:"avatar"`
}

type GroupServiceInterface interface {
	CreateGroup(ctx context.Context, ownerID string, req CreateGroupRequest) (*db_models.Group, error)
	ListGroups(ctx context.Context, userID string) ([]db_models.Group, error)
	JoinGroup(ctx context.Context, userID, codeOrLink, memberName, avatar string) (*db_models.Group, error)
}

type GroupService struct {
	groupRepo   repositories.GroupRepositoryInterface
	propagation PropagationServiceInterface
	inviteCache memcache.InviteCodeCache
	logger      *zap.Logger
	now         func() time.Time
	newCode     func() string
}

func NewGroupService(
	groupRepo repositories.GroupRepositoryInterface,
	propagation PropagationServiceInterface,
	inviteCache memcache.InviteCodeCache,
	logger *zap.Logger,
) *GroupService {
	return &GroupService{
		groupRepo:   groupRepo,
		propagation: propagation,
		inviteCache: inviteCache,
		logger:      logger,
		now:         time.Now,
		newCode:     utils.NewInviteCode,
	}
}

func (s *GroupService) CreateGroup(ctx context.Context, ownerID string, req CreateGroupRequest) (*db_models.Group, error) {
	if req.Name == "" {
		return nil, utils.ErrInvalidInput
	}
	code, err := s.uniqueInviteCode(ctx)
	if err != nil {
		return nil, err
	}
	group := &db_models.Group{
		ID:         uuid.New().String(),
		Name:       req.Name,
		Icon:       req.Icon,
		TotalDays:  req.TotalDays,
		InviteCode: code,
		CreatedAt:  s.now().UnixMilli(),
	}
	if err := s.groupRepo.SaveGroup(ctx, ownerID, group); err != nil {
		return nil, err
	}

	// The creator's own record lives in their partition under the
	// self alias; it is canonicalized at merge time.
	member := &db_models.GroupMember{
		ID:       db_models.SelfRef(),
		Name:     req.MemberName,
		Avatar:   req.Avatar,
		JoinedAt: s.now().UnixMilli(),
	}
	if err := s.groupRepo.SaveMember(ctx, ownerID, group.ID, member); err != nil {
		return nil, err
	}

	s.inviteCache.Remember(group.InviteCode, group.ID, inviteCacheTTL)
	return group, nil
}

func (s *GroupService) ListGroups(ctx context.Context, userID string) ([]db_models.Group, error) {
	return s.groupRepo.ListGroups(ctx, userID)
}

// JoinGroup resolves an invite code or /join/<code> link, copies the
// group into the joiner's partition, records their membership, and
// pulls any habits already shared into the group. Everything written
// lands in the joiner's own partition; existing members learn of the
// new member on their next roster merge.
func (s *GroupService) JoinGroup(ctx context.Context, userID, codeOrLink, memberName, avatar string) (*db_models.Group, error) {
	code := utils.ParseInviteCode(codeOrLink)
	if code == "" {
		return nil, utils.ErrInvalidInput
	}

	group, err := s.findGroupByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, utils.ErrGroupNotFound
	}

	if err := s.groupRepo.SaveGroup(ctx, userID, group); err != nil {
		return nil, err
	}
	member := &db_models.GroupMember{
		ID:       db_models.SelfRef(),
		Name:     memberName,
		Avatar:   avatar,
		JoinedAt: s.now().UnixMilli(),
	}
	if err := s.groupRepo.SaveMember(ctx, userID, group.ID, member); err != nil {
		return nil, err
	}

	if err := s.propagation.ReconcileForUser(ctx, userID); err != nil {
		// The join itself succeeded; missing shared habits arrive on
		// the next reconciliation trigger.
		s.logger.Warn("post-join reconciliation incomplete",
			zap.String("user", userID), zap.String("group", group.ID), zap.Error(err))
	}
	return group, nil
}

// uniqueInviteCode regenerates until the code matches no existing
// group anywhere; codes must resolve to exactly one group.
func (s *GroupService) uniqueInviteCode(ctx context.Context) (string, error) {
	for attempt := 0; attempt < maxInviteCodeAttempts; attempt++ {
		code := s.newCode()
		existing, err := s.findGroupByCode(ctx, code)
		if err != nil {
			return "", err
		}
		if existing == nil {
			return code, nil
		}
	}
	return "", utils.ErrDatabaseError
}

func (s *GroupService) findGroupByCode(ctx context.Context, code string) (*db_models.Group, error) {
	if groupID, ok := s.inviteCache.Lookup(code); ok {
		if group := s.findGroupByID(ctx, groupID); group != nil {
			return group, nil
		}
	}

	owners, err := s.groupRepo.ListPartitions(ctx)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	for _, owner := range owners {
		groups, err := s.groupRepo.ListGroups(ctx, owner)
		if err != nil {
			s.logger.Warn("skipping unreadable partition during invite lookup",
				zap.String("partition", owner), zap.Error(err))
			continue
		}
		for i := range groups {
			if groups[i].InviteCode == code {
				s.inviteCache.Remember(code, groups[i].ID, inviteCacheTTL)
				return &groups[i], nil
			}
		}
	}
	return nil, nil
}

func (s *GroupService) findGroupByID(ctx context.Context, groupID string) *db_models.Group {
	owners, err := s.groupRepo.ListPartitions(ctx)
	if err != nil {
		return nil
	}
	for _, owner := range owners {
		group, err := s.groupRepo.GetGroup(ctx, owner, groupID)
		if err == nil && group != nil {
			return group
		}
	}
	return nil
}
